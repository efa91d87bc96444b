package app

import (
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/primpoly/factorcalc/internal/errors"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValue string
		wantP     uint
		wantE     uint
	}{
		{name: "plain decimal", raw: "25852", wantValue: "25852"},
		{name: "zero", raw: "0", wantValue: "0"},
		{name: "surrounding whitespace", raw: "  7919 ", wantValue: "7919"},
		{name: "power expression", raw: "3^20", wantValue: "3486784400", wantP: 3, wantE: 20},
		{name: "power of two", raw: "2^20", wantValue: "1048575", wantP: 2, wantE: 20},
		{name: "exponent one", raw: "5^1", wantValue: "4", wantP: 5, wantE: 1},
		{name: "beyond machine words", raw: "2^100", wantValue: "1267650600228229401496703205375", wantP: 2, wantE: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseInput(tt.raw)
			if err != nil {
				t.Fatalf("ParseInput(%q) returned error: %v", tt.raw, err)
			}
			if got := in.Value.String(); got != tt.wantValue {
				t.Errorf("value = %s, want %s", got, tt.wantValue)
			}
			if in.P != tt.wantP || in.Exponent != tt.wantE {
				t.Errorf("hint = (%d, %d), want (%d, %d)", in.P, in.Exponent, tt.wantP, tt.wantE)
			}
			if in.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", in.Raw, tt.raw)
			}
		})
	}
}

func TestParseInput_Rejections(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"-5",
		"twelve",
		"3.5",
		"1^5",    // base below 2
		"0^3",    // base below 2
		"x^3",    // non-numeric base
		"3^0",    // exponent below 1
		"3^-2",   // negative exponent
		"3^huge", // non-numeric exponent
		"3^10001",
		"3^",
		"^20",
	}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseInput(raw)
			if err == nil {
				t.Fatalf("ParseInput(%q) succeeded, want error", raw)
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error type = %T, want ConfigError", err)
			}
		})
	}
}

func TestParseInput_PowerMeansPredecessor(t *testing.T) {
	in, err := ParseInput("7^3")
	if err != nil {
		t.Fatalf("ParseInput returned error: %v", err)
	}
	want := big.NewInt(342) // 7^3 - 1
	if in.Value.Cmp(want) != 0 {
		t.Errorf("value = %s, want %s", in.Value, want)
	}
}
