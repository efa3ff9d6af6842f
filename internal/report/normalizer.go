package report

import "github.com/japapin/martcon9/internal/domain"

// Normalize derives the percent distribution from the absolute one. Each
// bucket value becomes its share of the branch total, rounded to two
// decimals; a branch with a zero total gets 0 for every bucket instead of a
// division by zero. Branch and bucket order carry over from the input.
func Normalize(dist []domain.DistributionRow) []domain.PercentDistributionRow {
	out := make([]domain.PercentDistributionRow, 0, len(dist))
	for _, row := range dist {
		values := make(map[domain.Bucket]float64, len(domain.Buckets))
		for _, b := range domain.Buckets {
			if row.Total != 0 {
				values[b] = roundFloat(row.Values[b]/row.Total*100, 2)
			} else {
				values[b] = 0
			}
		}
		out = append(out, domain.PercentDistributionRow{
			Branch: row.Branch,
			Values: values,
		})
	}
	return out
}
