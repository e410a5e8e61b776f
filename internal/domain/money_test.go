package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pair(ars, usd string) MoneyPair {
	return MoneyPair{ARS: dec(ars), USD: dec(usd)}
}

func TestNewMoneyPair(t *testing.T) {
	tests := []struct {
		name    string
		ars     string
		usd     string
		wantErr bool
	}{
		{name: "both positive", ars: "100.50", usd: "10", wantErr: false},
		{name: "both zero", ars: "0", usd: "0", wantErr: false},
		{name: "negative ars", ars: "-1", usd: "0", wantErr: true},
		{name: "negative usd", ars: "0", usd: "-0.01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMoneyPair(dec(tt.ars), dec(tt.usd))
			if tt.wantErr && !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMoneyPair_Add(t *testing.T) {
	got := pair("100.10", "5").Add(pair("0.90", "2.50"))

	if !got.ARS.Equal(dec("101.00")) {
		t.Errorf("expected ARS 101.00, got %s", got.ARS)
	}
	if !got.USD.Equal(dec("7.50")) {
		t.Errorf("expected USD 7.50, got %s", got.USD)
	}
}

func TestMoneyPair_Subtract(t *testing.T) {
	t.Run("valid subtraction", func(t *testing.T) {
		got, err := pair("100", "10").Subtract(pair("40", "10"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.ARS.Equal(dec("60")) || !got.USD.Equal(dec("0")) {
			t.Errorf("expected (60, 0), got (%s, %s)", got.ARS, got.USD)
		}
	})

	t.Run("underflow is a caller error", func(t *testing.T) {
		_, err := pair("100", "0").Subtract(pair("100.01", "0"))
		if !errors.Is(err, ErrInsufficientPair) {
			t.Errorf("expected ErrInsufficientPair, got %v", err)
		}
	})
}

func TestNet_MayBeNegative(t *testing.T) {
	net := Net(pair("50", "0"), pair("80", "120"))

	if !net.ARS.Equal(dec("-30")) {
		t.Errorf("expected net ARS -30, got %s", net.ARS)
	}
	if !net.USD.Equal(dec("-120")) {
		t.Errorf("expected net USD -120, got %s", net.USD)
	}
}

func TestMoneyPair_Round(t *testing.T) {
	got := pair("10.005", "3.014").Round()

	if !got.ARS.Equal(dec("10.01")) {
		t.Errorf("expected ARS 10.01, got %s", got.ARS)
	}
	if !got.USD.Equal(dec("3.01")) {
		t.Errorf("expected USD 3.01, got %s", got.USD)
	}
}
