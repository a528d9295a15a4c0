// internal/workers/market/compute-market-indicators/models.go
package computemarketindicators

import "business-advisor/internal/market"

type Input struct {
	Series []market.Point `json:"series"`
}

type Output struct {
	Indicators Indicators `json:"indicators"`
}

type Indicators struct {
	DealVolumeChangePct float64      `json:"dealVolumeChangePct"`
	ValueChangePct      float64      `json:"valueChangePct"`
	MultipleChange      float64      `json:"multipleChange"`
	SentimentChange     float64      `json:"sentimentChange"`
	DealTrend           string       `json:"dealTrend"`
	ValueTrend          string       `json:"valueTrend"`
	Latest              market.Point `json:"latest"`
	Previous            market.Point `json:"previous"`
}
