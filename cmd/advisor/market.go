// cmd/advisor/market.go
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"business-advisor/internal/market"
)

func (c *cli) newMarketCommand() *cobra.Command {
	var timeframe string

	cmd := &cobra.Command{
		Use:   "market",
		Short: "Show deal market indicators for a reference timeframe",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := market.SampleSeries(timeframe)
			if err != nil {
				return fmt.Errorf("%w (choose one of %v)", err, market.Timeframes)
			}
			ind, err := market.Compute(series)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), ind)
			}
			printIndicators(cmd.OutOrStdout(), timeframe, ind)
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "3m", "sample timeframe: 3m, 6m or 12m")
	return cmd
}

func printIndicators(w io.Writer, timeframe string, ind *market.Indicators) {
	fmt.Fprintf(w, "%s %s\n\n", headingText("Market pulse"), mutedText(fmt.Sprintf("(%s, %s vs %s)", timeframe, ind.Latest.Month, ind.Previous.Month)))
	fmt.Fprintf(w, "  Deal volume      %-4d %s\n", ind.Latest.Deals, trendText(ind.DealVolumeChangePct, formatChange(ind.DealVolumeChangePct, 1, "%")))
	fmt.Fprintf(w, "  Deal value (£m)  %-4.0f %s\n", ind.Latest.Value, trendText(ind.ValueChangePct, formatChange(ind.ValueChangePct, 1, "%")))
	fmt.Fprintf(w, "  Avg multiple     %-4.1f %s\n", ind.Latest.AvgMultiple, trendText(ind.MultipleChange, formatChange(ind.MultipleChange, 1, "x")))
	fmt.Fprintf(w, "  Sentiment        %-4.0f %s\n", ind.Latest.Sentiment, trendText(ind.SentimentChange, formatChange(ind.SentimentChange, 0, "")))
}

func trendText(change float64, text string) string {
	switch market.Trend(change) {
	case "up":
		return valueText(text)
	case "down":
		return errorText(text)
	default:
		return mutedText(text)
	}
}
