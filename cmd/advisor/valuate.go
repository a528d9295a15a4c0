// cmd/advisor/valuate.go
package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"business-advisor/internal/valuation"
)

func (c *cli) newValuateCommand() *cobra.Command {
	var (
		industry string
		year     int
		profile  valuation.BusinessProfile
	)

	// Defaults mirror the calculator's starting figures.
	defaults := valuation.NewWizard(nil, 0).Profile()

	cmd := &cobra.Command{
		Use:   "valuate",
		Short: "Estimate business value and a five year projection",
		Example: `  advisor valuate --industry technology --revenue 1000000 --ebitda 250000 --growth 15 \
    --employees 10 --years-operating 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.multipliers()
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().Year()
			}

			code, err := valuation.ParseIndustry(industry)
			if err != nil {
				return fmt.Errorf("%w (choose one of %v)", err, valuation.Industries)
			}

			wizard := valuation.NewWizard(table, year)
			if err := wizard.SetIndustry(code); err != nil {
				return err
			}
			wizard.SetProfile(profile)
			for wizard.CanAdvance() {
				if err := wizard.Next(); err != nil {
					return err
				}
			}
			result, err := wizard.Result()
			if err != nil {
				return err
			}

			c.log.Debug("valuation computed", map[string]interface{}{
				"industry":   string(code),
				"totalValue": result.TotalValue,
			})

			if c.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return printValuation(cmd.OutOrStdout(), code, result)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&industry, "industry", "i", "", "industry code: technology, manufacturing, healthcare, retail, services")
	flags.Float64Var(&profile.Revenue, "revenue", defaults.Revenue, "annual revenue (GBP)")
	flags.Float64Var(&profile.EBITDA, "ebitda", defaults.EBITDA, "annual EBITDA (GBP)")
	flags.Float64Var(&profile.GrowthRatePercent, "growth", defaults.GrowthRatePercent, "annual revenue growth rate (percent)")
	flags.IntVar(&profile.EmployeeCount, "employees", defaults.EmployeeCount, "number of employees")
	flags.IntVar(&profile.YearsOperating, "years-operating", defaults.YearsOperating, "years in operation")
	flags.IntVar(&year, "year", 0, "first projection year (default: current year)")
	_ = cmd.MarkFlagRequired("industry")

	return cmd
}

func printValuation(w io.Writer, code valuation.IndustryCode, r *valuation.Result) error {
	fmt.Fprintf(w, "%s %s\n\n", headingText("Estimated business value"), mutedText("("+code.Label()+")"))
	fmt.Fprintf(w, "  Total value       %s\n", valueText(formatGBP(r.TotalValue)))
	fmt.Fprintf(w, "  EBITDA multiple   %.2fx\n", r.EBITDAMultiple)
	fmt.Fprintf(w, "  Revenue multiple  %.0f%%\n\n", r.RevenuePercentage)

	fmt.Fprintln(w, headingText("Five year projection"))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tRevenue\tEBITDA\tValue\t")
	for _, p := range r.Projection {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", p.Year, formatGBP(p.Revenue), formatGBP(p.EBITDA), formatGBP(p.Value))
	}
	return tw.Flush()
}
