package admin

import (
	"sort"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

const topCategories = 5

// Bar is one row of a horizontal bar chart, scaled against the largest value.
type Bar struct {
	Label   string
	Value   decimal.Decimal
	Percent int
}

// StatusCount is one row of the orders-by-status breakdown.
type StatusCount struct {
	Status enums.OrderStatus
	Label  string
	Count  int64
}

// DailyBars scales each day's revenue to the busiest day. The divisor never drops below 1.
func DailyBars(days []DailySales) []Bar {
	ceiling := decimal.NewFromInt(1)
	for _, d := range days {
		if d.Revenue.GreaterThan(ceiling) {
			ceiling = d.Revenue
		}
	}
	bars := make([]Bar, 0, len(days))
	for _, d := range days {
		bars = append(bars, Bar{Label: d.Date, Value: d.Revenue, Percent: percentOf(d.Revenue, ceiling)})
	}
	return bars
}

// CategoryBars returns the five best selling categories, largest first.
func CategoryBars(sales map[string]decimal.Decimal) []Bar {
	if len(sales) == 0 {
		return nil
	}
	bars := make([]Bar, 0, len(sales))
	ceiling := decimal.Zero
	for name, revenue := range sales {
		bars = append(bars, Bar{Label: name, Value: revenue})
		if revenue.GreaterThan(ceiling) {
			ceiling = revenue
		}
	}
	sort.SliceStable(bars, func(i, j int) bool {
		if !bars[i].Value.Equal(bars[j].Value) {
			return bars[i].Value.GreaterThan(bars[j].Value)
		}
		return bars[i].Label < bars[j].Label
	})
	if len(bars) > topCategories {
		bars = bars[:topCategories]
	}
	for i := range bars {
		bars[i].Percent = percentOf(bars[i].Value, ceiling)
	}
	return bars
}

// StatusBreakdown lists known statuses in lifecycle order, then anything unknown by name.
func StatusBreakdown(counts map[string]int64) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, status := range enums.OrderStatuses() {
		count, ok := counts[string(status)]
		if !ok {
			continue
		}
		seen[string(status)] = true
		out = append(out, StatusCount{Status: status, Label: statusLabel(string(status)), Count: count})
	}
	var rest []string
	for raw := range counts {
		if !seen[raw] {
			rest = append(rest, raw)
		}
	}
	sort.Strings(rest)
	for _, raw := range rest {
		out = append(out, StatusCount{Status: enums.OrderStatus(raw), Label: statusLabel(raw), Count: counts[raw]})
	}
	return out
}

func statusLabel(raw string) string {
	return strings.ReplaceAll(strings.ToLower(raw), "_", " ")
}

func percentOf(value, ceiling decimal.Decimal) int {
	if !ceiling.IsPositive() || value.IsNegative() {
		return 0
	}
	return int(value.Div(ceiling).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}
