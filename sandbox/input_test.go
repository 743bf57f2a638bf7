package sandbox

import (
	"errors"
	"testing"
)

func TestParseVelocity(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantErr bool
	}{
		{name: "integer", text: "250", want: 250},
		{name: "float", text: "12.5", want: 12.5},
		{name: "whitespace", text: "  40 \n", want: 40},
		{name: "zero", text: "0", want: 0},
		{name: "at max", text: "5000", want: 5000},
		{name: "empty", text: "", wantErr: true},
		{name: "blank", text: "   ", wantErr: true},
		{name: "letters", text: "fast", wantErr: true},
		{name: "trailing junk", text: "12abc", wantErr: true},
		{name: "negative", text: "-5", wantErr: true},
		{name: "nan", text: "NaN", wantErr: true},
		{name: "inf", text: "+Inf", wantErr: true},
		{name: "above max", text: "5000.1", wantErr: true},
		{name: "hex float", text: "0x1p4", wantErr: true},
		{name: "hex with underscore", text: "0x1_0p0", wantErr: true},
		{name: "upper hex", text: "0X10", wantErr: true},
		{name: "signed hex", text: "+0x10", wantErr: true},
		{name: "decimal underscore", text: "1_000", wantErr: true},
		{name: "exponent", text: "1e3", want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVelocity(tt.text, 5000)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVelocity(%q): %v", tt.text, err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseVelocityNoMax(t *testing.T) {
	if _, err := ParseVelocity("1e9", 0); err != nil {
		t.Fatalf("expected no upper bound, got %v", err)
	}
}
