package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestFetchSentiment(t *testing.T) {
	tests := []struct {
		name string
		bar  Bar
		want Sentiment
	}{
		{
			name: "neutral bar",
			bar: Bar{
				Open:  5,
				Close: 5,
				High:  9,
				Low:   1,
			},
			want: Neutral,
		},
		{
			name: "bullish bar",
			bar: Bar{
				Open:  5,
				Close: 15,
				High:  20,
				Low:   1,
			},
			want: Bullish,
		},
		{
			name: "bearish bar",
			bar: Bar{
				Open:  15,
				Close: 5,
				High:  20,
				Low:   1,
			},
			want: Bearish,
		},
	}

	for _, test := range tests {
		sentiment := test.bar.FetchSentiment()
		if sentiment != test.want {
			t.Errorf("%s: expected %s sentiment, got %s",
				test.name, test.want.String(), sentiment.String())
		}
	}
}

func TestBarAnatomy(t *testing.T) {
	// Ensure a bullish bar's anatomy is measured accurately.
	bull := Bar{Open: 10, Close: 12, High: 15, Low: 4}
	assert.Equal(t, bull.Body(), float64(2))
	assert.Equal(t, bull.Range(), float64(11))
	assert.Equal(t, bull.UpperWick(), float64(3))
	assert.Equal(t, bull.LowerWick(), float64(6))
	assert.Equal(t, bull.TypicalPrice(), float64(31)/3)

	// Ensure a bearish bar's anatomy is measured accurately.
	bear := Bar{Open: 12, Close: 10, High: 15, Low: 4}
	assert.Equal(t, bear.Body(), float64(2))
	assert.Equal(t, bear.UpperWick(), float64(3))
	assert.Equal(t, bear.LowerWick(), float64(6))
}

func TestSentimentString(t *testing.T) {
	assert.Equal(t, Neutral.String(), "neutral")
	assert.Equal(t, Bullish.String(), "bullish")
	assert.Equal(t, Bearish.String(), "bearish")
	assert.Equal(t, Sentiment(999).String(), "unknown")
}
