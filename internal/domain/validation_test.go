package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Checking", false},
		{"empty name", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 121), true},
		{"max length", strings.Repeat("a", 120), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAccountName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		currency string
		wantErr  bool
	}{
		{"USD", false},
		{"usd", false},
		{"RUB", false},
		{"XYZ", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			err := ValidateCurrency(tt.currency)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCurrency(%q) error = %v, wantErr %v", tt.currency, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"valid", "10.50", nil},
		{"minimum", "0.01", nil},
		{"zero", "0", ErrInvalidAmount},
		{"negative", "-5", ErrInvalidAmount},
		{"below minimum", "0.001", ErrAmountTooSmall},
		{"too large", "10000000000.00", ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAmount(%s) error = %v, want %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEntryType(t *testing.T) {
	if err := ValidateEntryType(EntryTypeIncome); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateEntryType(EntryType("savings")); !errors.Is(err, ErrInvalidEntryType) {
		t.Errorf("expected ErrInvalidEntryType, got %v", err)
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
		{"defaults", 0, 0, 50, 0},
		{"capped", 5000, 10, 1000, 10},
		{"negative offset", 20, -1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("ValidatePagination(%d, %d) = (%d, %d), want (%d, %d)",
					tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
