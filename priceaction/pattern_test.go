package priceaction

import (
	"testing"

	"github.com/somwatee/HATS-v4/shared"
)

func TestConfirmPattern(t *testing.T) {
	tests := []struct {
		name    string
		prev2   shared.Bar
		prev    shared.Bar
		bullish bool
		want    bool
	}{
		{
			name:    "bullish engulfing",
			prev2:   newBar(0, 10, 10.5, 7.5, 8),
			prev:    newBar(1, 7.5, 11, 7, 10.5),
			bullish: true,
			want:    true,
		},
		{
			name:    "hammer",
			prev2:   newBar(0, 10, 11, 9.5, 10.5),
			prev:    newBar(1, 10, 10.3, 9, 10.2),
			bullish: true,
			want:    true,
		},
		{
			name:    "no bullish pattern",
			prev2:   newBar(0, 10, 11, 9.5, 10.5),
			prev:    newBar(1, 10, 12.1, 9.9, 12),
			bullish: true,
			want:    false,
		},
		{
			name:    "bearish engulfing",
			prev2:   newBar(0, 8, 10.5, 7.5, 10),
			prev:    newBar(1, 10.5, 11, 7, 7.5),
			bullish: false,
			want:    true,
		},
		{
			name:    "shooting star",
			prev2:   newBar(0, 10, 11, 9.5, 10.5),
			prev:    newBar(1, 10.2, 11.3, 9.95, 10),
			bullish: false,
			want:    true,
		},
		{
			name:    "hammer in bearish context",
			prev2:   newBar(0, 10, 11, 9.5, 10.5),
			prev:    newBar(1, 10, 10.3, 9, 10.2),
			bullish: false,
			want:    false,
		},
		{
			name:    "bullish engulfing in bearish context",
			prev2:   newBar(0, 10, 10.5, 7.5, 8),
			prev:    newBar(1, 7.5, 11, 7, 10.5),
			bullish: false,
			want:    false,
		},
	}

	for _, test := range tests {
		got := ConfirmPattern(&test.prev2, &test.prev, test.bullish)
		if got != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, got)
		}
	}
}
