package token

import (
	"errors"
	"testing"
	"time"
)

func TestParseTTL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "seconds", input: "30s", want: 30 * time.Second},
		{name: "minutes", input: "15m", want: 15 * time.Minute},
		{name: "hours", input: "2h", want: 2 * time.Hour},
		{name: "days", input: "7d", want: 7 * 24 * time.Hour},
		{name: "single digit", input: "1s", want: time.Second},
		{name: "large value", input: "365d", want: 365 * 24 * time.Hour},
		{name: "empty", input: "", wantErr: true},
		{name: "no unit", input: "15", wantErr: true},
		{name: "unknown unit", input: "15w", wantErr: true},
		{name: "negative", input: "-5m", wantErr: true},
		{name: "unit first", input: "m15", wantErr: true},
		{name: "go duration syntax", input: "1h30m", wantErr: true},
		{name: "whitespace", input: " 15m", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTTL(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTTL) {
					t.Errorf("ParseTTL(%q) error = %v, want ErrInvalidTTL", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTTL(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTTL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
