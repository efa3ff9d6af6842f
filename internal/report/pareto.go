package report

import (
	"sort"

	"github.com/japapin/martcon9/internal/domain"
)

// ParetoSeries extracts one branch's percent distribution sorted descending
// by percentage, together with the running cumulative percentage. It is a
// pure derivation over already-normalized data; chart rendering happens
// elsewhere. Returns ok=false when the branch is absent.
func ParetoSeries(pct []domain.PercentDistributionRow, branch string) ([]domain.ParetoPoint, bool) {
	var row *domain.PercentDistributionRow
	for i := range pct {
		if pct[i].Branch == branch {
			row = &pct[i]
			break
		}
	}
	if row == nil {
		return nil, false
	}

	points := make([]domain.ParetoPoint, 0, len(domain.Buckets))
	for _, b := range domain.Buckets {
		points = append(points, domain.ParetoPoint{Bucket: b, Percent: row.Values[b]})
	}
	// Stable keeps the ascending bucket order among equal percentages.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Percent > points[j].Percent
	})

	cumulative := 0.0
	for i := range points {
		cumulative += points[i].Percent
		points[i].Cumulative = roundFloat(cumulative, 2)
	}

	return points, true
}
