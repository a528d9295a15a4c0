// Package market derives month-over-month deal market indicators from a time series.
package market

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientData = errors.New("at least two data points are required")
	ErrDivisionByZero   = errors.New("previous period has zero deals or value")
	ErrUnknownTimeframe = errors.New("unknown timeframe")
)

// Point is one month of aggregate deal activity. Value is in thousands.
type Point struct {
	Month       string  `json:"month"`
	Deals       int     `json:"deals"`
	Value       float64 `json:"value"`
	AvgMultiple float64 `json:"avgMultiple"`
	Sentiment   float64 `json:"sentiment"`
}

// Indicators compares the latest point of a series with the one before it.
type Indicators struct {
	DealVolumeChangePct float64 `json:"dealVolumeChangePct"`
	ValueChangePct      float64 `json:"valueChangePct"`
	MultipleChange      float64 `json:"multipleChange"`
	SentimentChange     float64 `json:"sentimentChange"`
	Latest              Point   `json:"latest"`
	Previous            Point   `json:"previous"`
}

// Compute returns the indicators for the last two points of series.
func Compute(series []Point) (*Indicators, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientData, len(series))
	}
	latest, previous := series[len(series)-1], series[len(series)-2]
	if previous.Deals == 0 || previous.Value == 0 {
		return nil, fmt.Errorf("%w: month %q", ErrDivisionByZero, previous.Month)
	}

	return &Indicators{
		DealVolumeChangePct: float64(latest.Deals-previous.Deals) / float64(previous.Deals) * 100,
		ValueChangePct:      (latest.Value - previous.Value) / previous.Value * 100,
		MultipleChange:      latest.AvgMultiple - previous.AvgMultiple,
		SentimentChange:     latest.Sentiment - previous.Sentiment,
		Latest:              latest,
		Previous:            previous,
	}, nil
}

// Trend labels the direction of a change.
func Trend(change float64) string {
	switch {
	case change > 0:
		return "up"
	case change < 0:
		return "down"
	default:
		return "flat"
	}
}
