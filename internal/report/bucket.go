package report

import "github.com/japapin/martcon9/internal/domain"

// Classify maps a coverage value in days to its range bucket. Intervals are
// half-open with the lower bound inclusive, so 15 already belongs to
// "16-30 days" and 60 to ">60 days". Every float maps to exactly one bucket.
func Classify(coverageDays float64) domain.Bucket {
	switch {
	case coverageDays < 0:
		return domain.BucketNonPositive
	case coverageDays < 15:
		return domain.Bucket1To15
	case coverageDays < 30:
		return domain.Bucket16To30
	case coverageDays < 45:
		return domain.Bucket31To45
	case coverageDays < 60:
		return domain.Bucket46To60
	default:
		return domain.BucketOver60
	}
}
