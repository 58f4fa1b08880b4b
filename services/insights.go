package services

import (
	"fmt"
	"sort"
	"strings"

	"realestate-agent/models"
	"realestate-agent/utils"
)

// InsightService computes the derived numbers the system produces itself
// rather than delegating to the model: simple price statistics and the
// price-per-square-foot series for the supplementary chart.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Compute derives PriceMetrics from the normalized records. Only records with
// a known positive area contribute a price-per-sqft entry.
func (s *InsightService) Compute(records []models.PropertyRecord) *models.PriceMetrics {
	metrics := &models.PriceMetrics{TotalProperties: len(records)}
	if len(records) == 0 {
		return metrics
	}

	var priced []models.PropertyRecord
	for _, r := range records {
		if r.Price > 0 {
			priced = append(priced, r)
		}
		if r.SquareFeet > 0 && r.Price > 0 {
			metrics.PricePerSqft = append(metrics.PricePerSqft, models.PricePerSqft{
				Address: r.Address,
				Value:   round2(r.Price / r.SquareFeet),
			})
		}
	}

	if len(priced) > 0 {
		metrics.MinPrice = priced[0].Price
		metrics.MaxPrice = priced[0].Price
		var total float64
		mostExpensive := priced[0]
		for _, r := range priced {
			total += r.Price
			if r.Price < metrics.MinPrice {
				metrics.MinPrice = r.Price
			}
			if r.Price > metrics.MaxPrice {
				metrics.MaxPrice = r.Price
				mostExpensive = r
			}
		}
		metrics.AveragePrice = round2(total / float64(len(priced)))
		metrics.MostExpensive = &mostExpensive
	}

	// Chart reads best sorted by price descending.
	sort.Slice(metrics.PricePerSqft, func(i, j int) bool {
		return metrics.PricePerSqft[i].Value > metrics.PricePerSqft[j].Value
	})

	return metrics
}

// Print renders the analysis and derived metrics to stdout for the CLI flow.
// The model text is shown verbatim.
func (s *InsightService) Print(analysis *models.MarketAnalysis) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n%s\n  🏠 PROPERTY MARKET ANALYSIS\n%s\n\n", sep, sep)

	if analysis.Warning != "" {
		fmt.Printf("  ⚠ %s\n\n", analysis.Warning)
	}

	fmt.Println(analysis.Analysis)
	fmt.Println()

	m := analysis.Metrics
	if m == nil {
		fmt.Printf("%s\n\n", sep)
		return
	}

	fmt.Printf("  Derived Metrics\n  %s\n", thin)
	fmt.Printf("  Properties analyzed : %d\n", m.TotalProperties)
	if m.AveragePrice > 0 {
		fmt.Printf("  Average price       : $%.2f\n", m.AveragePrice)
		fmt.Printf("  Price range         : $%.2f – $%.2f\n", m.MinPrice, m.MaxPrice)
	}
	if m.MostExpensive != nil {
		fmt.Printf("  Most expensive      : %s ($%.0f)\n",
			truncate(m.MostExpensive.Address, 40), m.MostExpensive.Price)
	}
	fmt.Println()

	if len(m.PricePerSqft) > 0 {
		fmt.Printf("  Price per Square Foot\n  %s\n", thin)
		maxVal := m.PricePerSqft[0].Value
		for _, p := range m.PricePerSqft {
			width := 1
			if maxVal > 0 {
				width = int(p.Value/maxVal*30) + 1
			}
			bar := strings.Repeat("█", width)
			fmt.Printf("  %-32s %s $%.0f/sqft\n", truncate(p.Address, 30), bar, p.Value)
		}
		fmt.Println()
	}

	fmt.Printf("%s\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// truncate shortens s to at most max runes, never splitting a multibyte
// character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
