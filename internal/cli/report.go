package cli

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/producttracker/internal/calculator"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newStatsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show this month's production",
		Args:  cobra.NoArgs,
		RunE: withApp(open, func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()
			stats, err := a.stats.ComputeProductionStats(ctx)
			if err != nil {
				return err
			}
			s := a.styles(ctx, cmd)

			summary := newTable("Production this month", "Metric", "Value")
			summary.addRow("Total produced", stats.TotalProduction.String())
			summary.addRow("Total amount", money(stats.TotalAmount))
			summary.addRow("Records", strconv.Itoa(stats.RecordsCount))
			summary.addRow("Average per record", money(stats.AvgPerRecord))
			if best := calculator.BestProduct(stats); best != "" {
				summary.addRow("Best product", best)
			}

			top := newTable(fmt.Sprintf("Top %d products", calculator.TopProductsLimit), "#", "Product", "Quantity", "Amount", "Records")
			for i, p := range stats.TopProducts {
				top.addRow(strconv.Itoa(i+1), p.Name, p.Quantity.String(), money(p.Amount), strconv.Itoa(p.Count))
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, summary.render(s))
			fmt.Fprintln(out)
			fmt.Fprint(out, top.render(s))
			return nil
		}),
	}
}

func newSalaryCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "salary",
		Short: "Show this month's salary calculation",
		Args:  cobra.NoArgs,
		RunE: withApp(open, func(cmd *cobra.Command, _ []string, a *app) error {
			ctx := cmd.Context()
			salary, err := a.stats.ComputeSalary(ctx)
			if err != nil {
				return err
			}
			s := a.styles(ctx, cmd)

			t := newTable("Salary this month", "Item", "Amount")
			t.addRow("Sales", money(salary.SalesAmount))
			t.addRow("Base salary", money(salary.BaseSalary))
			t.addRow("Before tax", money(salary.BeforeTax))
			t.addRow(fmt.Sprintf("Tax (%s%%)", salary.TaxRate.String()), money(salary.TaxAmount))
			t.addRow("After tax", money(salary.AfterTax))
			t.addRow("Advance paid", money(salary.AdvancePayment))

			net := s.Good
			if salary.NetSalary.IsNegative() {
				net = s.Bad
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, t.render(s))
			fmt.Fprintf(out, "%s %s\n", s.Title.Render("Net salary:"), net.Render(money(salary.NetSalary)))
			return nil
		}),
	}
}
