package models

import (
	"fmt"
	"time"
)

// Filter types. Selection types carry an option list; text and date are free-form.
const (
	FilterTypeSingleSelect = "single_select"
	FilterTypeMultiSelect  = "multi_select"
	FilterTypeDropdown     = "dropdown"
	FilterTypeText         = "text"
	FilterTypeDate         = "date"
)

// FilterOption is one selectable value of a selection-type filter.
// PriceModifier is an additive surcharge and is never negative.
type FilterOption struct {
	Value         string  `bson:"value" json:"value"`
	PriceModifier float64 `bson:"priceModifier" json:"priceModifier"`
}

// ServiceFilter is an attribute filter belonging to a service, grouped into a
// display section on the client.
type ServiceFilter struct {
	ID        string         `bson:"id" json:"id"`
	ServiceID int            `bson:"serviceId" json:"serviceId"`
	Name      string         `bson:"name" json:"name"`
	Type      string         `bson:"type" json:"type"`
	Section   string         `bson:"section" json:"section"`
	Options   []FilterOption `bson:"options,omitempty" json:"options,omitempty"`
}

// OptionByValue looks up a selection option by its value.
func (f *ServiceFilter) OptionByValue(value string) (FilterOption, bool) {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return FilterOption{}, false
}

// CustomerFilterSelection is one entry of the filter array a customer submits
// with a search or booking. SelectedValues is non-empty for an included filter.
type CustomerFilterSelection struct {
	FilterID       string   `bson:"filterId" json:"filter_id"`
	FilterName     string   `bson:"filterName" json:"filter_name"`
	SelectedValues []string `bson:"selectedValues" json:"selected_values"`
}

// ValidateSelection checks a customer selection against the filter's declared
// type: selection types must pick known option values (single_select exactly
// one), text takes a single free value, date must parse as YYYY-MM-DD.
func ValidateSelection(filter ServiceFilter, sel CustomerFilterSelection) error {
	if len(sel.SelectedValues) == 0 {
		return fmt.Errorf("filter %q: no values selected", sel.FilterName)
	}
	switch filter.Type {
	case FilterTypeSingleSelect, FilterTypeDropdown:
		if len(sel.SelectedValues) != 1 {
			return fmt.Errorf("filter %q: expected exactly one value, got %d", sel.FilterName, len(sel.SelectedValues))
		}
		if _, ok := filter.OptionByValue(sel.SelectedValues[0]); !ok {
			return fmt.Errorf("filter %q: unknown option %q", sel.FilterName, sel.SelectedValues[0])
		}
	case FilterTypeMultiSelect:
		for _, v := range sel.SelectedValues {
			if _, ok := filter.OptionByValue(v); !ok {
				return fmt.Errorf("filter %q: unknown option %q", sel.FilterName, v)
			}
		}
	case FilterTypeText:
		if len(sel.SelectedValues) != 1 {
			return fmt.Errorf("filter %q: text filter takes a single value", sel.FilterName)
		}
	case FilterTypeDate:
		if len(sel.SelectedValues) != 1 {
			return fmt.Errorf("filter %q: date filter takes a single value", sel.FilterName)
		}
		if _, err := time.Parse("2006-01-02", sel.SelectedValues[0]); err != nil {
			return fmt.Errorf("filter %q: invalid date %q", sel.FilterName, sel.SelectedValues[0])
		}
	default:
		return fmt.Errorf("filter %q: unsupported filter type %q", sel.FilterName, filter.Type)
	}
	return nil
}

// Match types summarising filter overlap between a customer and a provider.
const (
	MatchTypeExact   = "exact"
	MatchTypePartial = "partial"
	MatchTypeNone    = "none"
)

// MatchResult aggregates the outcome of comparing a customer's filter
// selections against one provider's offered values.
type MatchResult struct {
	Matched         int    `json:"matched"`
	Total           int    `json:"total"`
	MatchPercentage int    `json:"match_percentage"`
	MatchType       string `json:"match_type"`
}
