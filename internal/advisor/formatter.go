package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"fareadvisor/internal/cache"
	"fareadvisor/internal/model"
)

var optionLabels = map[model.OptionKey]string{
	model.OptionSingle:            "Single tickets",
	model.OptionSeries10:          "10-journey series",
	model.OptionSeries20:          "20-journey series",
	model.OptionSeason:            "30-day season ticket",
	model.OptionContinuousMonthly: "Continuous monthly order",
}

// FormatComparison renders the ranked comparison as a plain-text report.
func FormatComparison(c *model.Comparison) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Fare comparison | zone %s | %g trips/week | %s\n\n",
		c.ZoneLetters, c.TripsPerWeek, time.Now().Format("2006-01-02")))

	for i, ranked := range c.Optimal.Ranking {
		res := c.Optimal.Results[ranked.Key]
		marker := "  "
		if ranked.Key == c.Optimal.Optimal {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%d. %s: €%.2f/month (€%.2f/year)\n",
			marker, i+1, optionLabels[ranked.Key], res.MonthlyCost, res.AnnualCost))
		b.WriteString(fmt.Sprintf("     %s\n", res.Calculation))
		if res.WasteWarning != "" {
			b.WriteString(fmt.Sprintf("     warning: %d journeys wasted, %s\n",
				res.JourneysWasted, res.WasteWarning))
		}
		if i < len(c.Optimal.Ranking)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n─────────────────\n")
	rec := c.Recommendation
	b.WriteString(fmt.Sprintf("Recommended: %s\n", optionLabels[rec.Recommended]))
	b.WriteString(fmt.Sprintf("Break-even: %d trips/month\n", rec.BreakEvenTrips))
	if rec.MonthlySavings > 0 {
		b.WriteString(fmt.Sprintf("Savings: €%.2f/month\n", rec.MonthlySavings))
	}
	b.WriteString(rec.Reasoning)
	b.WriteString("\n")

	return b.String()
}

// FormatCacheStats renders the cache footer appended in watch mode.
func FormatCacheStats(stats cache.Stats) string {
	return fmt.Sprintf("cache: %d items (%d expired), %s",
		stats.TotalItems, stats.ExpiredItems, humanize.Bytes(uint64(stats.TotalSizeBytes)))
}
