package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
	"github.com/warp/inventory-engine/config"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/report"
)

// printMarkdown renders markdown for the terminal, falling back to
// the raw text when the renderer cannot run (e.g. no TTY detection).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func money(cfg config.Config, d decimal.Decimal) string {
	return cfg.Currency + d.StringFixed(2)
}

// recordMarkdown is the one-line confirmation after a mutation.
func recordMarkdown(verb string, rec ledger.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** %s `%s` on %s",
		verb, rec.Delta.Abs().String(), rec.Dimension, rec.EffectiveDate)
	fmt.Fprintf(&b, " — balance now **%s**", rec.BalanceAfter)
	if rec.Note != "" {
		fmt.Fprintf(&b, " _(%s)_", rec.Note)
	}
	b.WriteString("\n")
	return b.String()
}

func inventoryMarkdown(cfg config.Config, levels, low []report.StockLevel) string {
	var b strings.Builder
	b.WriteString("# Inventory\n\n")
	if len(levels) == 0 {
		b.WriteString("The ledger is empty.\n")
		return b.String()
	}

	b.WriteString("| Dimension | Stock |\n|---|---:|\n")
	for _, lv := range levels {
		fmt.Fprintf(&b, "| %s | %s |\n", lv.Dimension, lv.Stock)
	}

	if len(low) > 0 {
		fmt.Fprintf(&b, "\n## Running low (under %s)\n\n", cfg.LowStockThreshold)
		for _, lv := range low {
			fmt.Fprintf(&b, "- `%s`: %s left\n", lv.Dimension, lv.Stock)
		}
	}
	return b.String()
}

func historyMarkdown(dimension string, records []ledger.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# History of %s\n\n", dimension)
	if len(records) == 0 {
		b.WriteString("No movements recorded.\n")
		return b.String()
	}

	b.WriteString("| Date | Kind | Delta | Balance | Actor | Note |\n|---|---|---:|---:|---|---|\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			rec.EffectiveDate, rec.Kind, rec.Delta, rec.BalanceAfter, rec.Actor, rec.Note)
	}
	return b.String()
}

func reportMarkdown(cfg config.Config, sum *report.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Sales report %s\n\n", sum.Window)

	if len(sum.Sales) == 0 {
		b.WriteString("No sales in this window.\n")
		return b.String()
	}

	b.WriteString("| Dimension | Sold | Revenue |\n|---|---:|---:|\n")
	for _, s := range sum.Sales {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Dimension, s.QtySold, money(cfg, s.Revenue))
	}

	if cfg.EnableProfitTracking {
		fmt.Fprintf(&b, "\n**Total:** %s sold, %s revenue, %s purchases, %s profit (margin %s%%)\n",
			sum.TotalSold, money(cfg, sum.TotalRevenue), money(cfg, sum.TotalCost),
			money(cfg, sum.Profit), sum.Margin)
	} else {
		fmt.Fprintf(&b, "\n**Total:** %s sold, %s revenue\n", sum.TotalSold, money(cfg, sum.TotalRevenue))
	}

	b.WriteString("\n## Velocity\n\n| Dimension | Per day | Stock | Days left |\n|---|---:|---:|---:|\n")
	for _, v := range sum.Velocity {
		left := "-"
		if v.DaysLeft != nil {
			left = v.DaysLeft.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", v.Dimension, v.PerDay, v.Stock, left)
	}
	return b.String()
}
