package report

import (
	"math"
	"sort"

	"github.com/japapin/martcon9/internal/domain"
)

// Aggregate groups rows by branch and produces the coverage summary and the
// absolute pending-order distribution. Branches are emitted in ascending
// lexicographic order, so identical input always yields identical output.
//
// The weighted average uses stock value as the weight and only counts rows
// with a positive stock value; a branch where no such row exists gets 0. The
// simple average covers all rows of the branch, zero and negative coverage
// included. Both averages are rounded to two decimals.
func Aggregate(rows []domain.StockRow) ([]domain.CoverageSummary, []domain.DistributionRow) {
	groups := make(map[string][]domain.StockRow)
	for _, row := range rows {
		groups[row.Branch] = append(groups[row.Branch], row)
	}

	branches := make([]string, 0, len(groups))
	for branch := range groups {
		branches = append(branches, branch)
	}
	sort.Strings(branches)

	summaries := make([]domain.CoverageSummary, 0, len(branches))
	dist := make([]domain.DistributionRow, 0, len(branches))

	for _, branch := range branches {
		group := groups[branch]

		var (
			weightedSum  float64
			weightTotal  float64
			coverageSum  float64
			pendingTotal float64
		)
		for _, row := range group {
			if row.StockValue > 0 {
				weightedSum += row.CoverageDays * row.StockValue
				weightTotal += row.StockValue
			}
			coverageSum += row.CoverageDays
			pendingTotal += row.PendingOrder
		}

		weightedAvg := 0.0
		if weightTotal > 0 {
			weightedAvg = weightedSum / weightTotal
		}
		simpleAvg := coverageSum / float64(len(group))

		summaries = append(summaries, domain.CoverageSummary{
			Branch:            branch,
			WeightedAvgDays:   roundFloat(weightedAvg, 2),
			SimpleAvgDays:     roundFloat(simpleAvg, 2),
			PendingOrderTotal: pendingTotal,
		})

		// Dense matrix: every branch carries every bucket, zero-filled.
		values := make(map[domain.Bucket]float64, len(domain.Buckets))
		for _, b := range domain.Buckets {
			values[b] = 0
		}
		total := 0.0
		for _, row := range group {
			values[Classify(row.CoverageDays)] += row.PendingOrder
			total += row.PendingOrder
		}

		dist = append(dist, domain.DistributionRow{
			Branch: branch,
			Values: values,
			Total:  total,
		})
	}

	return summaries, dist
}

// roundFloat rounds v to the given number of decimal places, half away from
// zero.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
