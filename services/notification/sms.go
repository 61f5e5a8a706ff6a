package notification

import (
	"context"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// SMSGateway delivers one-time passcodes. Delivery mechanics are external to
// the discovery core; this interface is the boundary.
type SMSGateway interface {
	SendSMS(ctx context.Context, to, message string) error
}

// TwilioGateway sends SMS through Twilio.
type TwilioGateway struct {
	client     *twilio.RestClient
	fromNumber string
}

func NewTwilioGateway(accountSID, authToken, fromNumber string) *TwilioGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioGateway{client: client, fromNumber: fromNumber}
}

func (t *TwilioGateway) SendSMS(ctx context.Context, to, message string) error {
	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	_, err := t.client.Api.CreateMessage(params)
	return err
}

// LogGateway writes outgoing messages to the log instead of sending them.
// Used in development when no Twilio credentials are configured.
type LogGateway struct {
	Logger *zap.Logger
}

func (g *LogGateway) SendSMS(ctx context.Context, to, message string) error {
	g.Logger.Sugar().Infof("Sending SMS to %s: %s", to, message)
	return nil
}
