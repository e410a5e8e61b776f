package domain

import (
	"strings"
	"testing"
)

func TestValidateDetail(t *testing.T) {
	tests := []struct {
		name    string
		detail  string
		wantErr bool
	}{
		{name: "valid", detail: "catering deposit", wantErr: false},
		{name: "single char", detail: "x", wantErr: false},
		{name: "empty", detail: "", wantErr: true},
		{name: "whitespace only", detail: "   ", wantErr: true},
		{name: "at limit", detail: strings.Repeat("a", 300), wantErr: false},
		{name: "over limit", detail: strings.Repeat("a", 301), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDetail(tt.detail)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateMoneyPair(t *testing.T) {
	if err := ValidateMoneyPair(pair("100", "100")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	huge := pair("2000000000000", "0")
	if err := ValidateMoneyPair(huge); err == nil {
		t.Error("expected error for amount above maximum")
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "negative offset", limit: 10, offset: -5, wantLimit: 10, wantOffset: 0},
		{name: "limit capped", limit: 5000, offset: 20, wantLimit: 1000, wantOffset: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
