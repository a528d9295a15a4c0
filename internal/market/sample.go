package market

import "fmt"

// Timeframes lists the sample series in display order.
var Timeframes = []string{"3m", "6m", "12m"}

var sampleTrends = map[string][]Point{
	"3m": {
		{"Mar", 42, 1250, 5.8, 68},
		{"Apr", 38, 980, 5.6, 65},
		{"May", 45, 1320, 5.9, 72},
	},
	"6m": {
		{"Dec", 32, 870, 5.4, 62},
		{"Jan", 35, 940, 5.5, 63},
		{"Feb", 38, 1050, 5.7, 65},
		{"Mar", 42, 1250, 5.8, 68},
		{"Apr", 38, 980, 5.6, 65},
		{"May", 45, 1320, 5.9, 72},
	},
	"12m": {
		{"Jun 24", 28, 780, 5.2, 59},
		{"Jul 24", 30, 820, 5.3, 60},
		{"Aug 24", 33, 850, 5.3, 61},
		{"Sep 24", 30, 810, 5.2, 58},
		{"Oct 24", 35, 890, 5.3, 60},
		{"Nov 24", 34, 920, 5.4, 61},
		{"Dec 24", 32, 870, 5.4, 62},
		{"Jan 25", 35, 940, 5.5, 63},
		{"Feb 25", 38, 1050, 5.7, 65},
		{"Mar 25", 42, 1250, 5.8, 68},
		{"Apr 25", 38, 980, 5.6, 65},
		{"May 25", 45, 1320, 5.9, 72},
	},
}

// SampleSeries returns a copy of the reference series for a timeframe.
func SampleSeries(timeframe string) ([]Point, error) {
	series, ok := sampleTrends[timeframe]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeframe, timeframe)
	}
	out := make([]Point, len(series))
	copy(out, series)
	return out, nil
}
