package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Identity is the verified subject a credential carries.
type Identity struct {
	CustomerID   string
	MobileNumber string
}

// TokenIssuer is the capability boundary for credential issuance. The
// concrete mechanism (signed token vs. opaque server-side session) is
// swappable behind it.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
	Verify(credential string) (Identity, error)
}

// JWTIssuer issues HS256-signed bearer tokens.
type JWTIssuer struct {
	Secret   []byte
	Duration time.Duration
}

func NewJWTIssuer(secret string, duration time.Duration) *JWTIssuer {
	return &JWTIssuer{Secret: []byte(secret), Duration: duration}
}

func (i *JWTIssuer) Issue(identity Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":    identity.CustomerID,
		"mobile": identity.MobileNumber,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(i.Duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.Secret)
}

func (i *JWTIssuer) Verify(credential string) (Identity, error) {
	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.Secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, errors.New("token does not contain a valid 'sub' claim")
	}
	mobile, _ := claims["mobile"].(string)
	return Identity{CustomerID: sub, MobileNumber: mobile}, nil
}
