package domain

// StockRow is a single validated record from the inventory export, after the
// source column names have been mapped to canonical field names.
type StockRow struct {
	Branch       string  `json:"branch"`
	CoverageDays float64 `json:"coverage_days"`
	StockValue   float64 `json:"stock_value"`
	Merchandise  string  `json:"merchandise"`
	PendingOrder float64 `json:"pending_order"`
}

// CoverageSummary holds the per-branch coverage averages. Averages are
// rounded to two decimals; the pending-order total is the unfiltered sum.
type CoverageSummary struct {
	Branch            string  `json:"branch"`
	WeightedAvgDays   float64 `json:"weighted_avg_days"`
	SimpleAvgDays     float64 `json:"simple_avg_days"`
	PendingOrderTotal float64 `json:"pending_order_total"`
}

// Bucket is a coverage range label. The set of buckets is fixed, totally
// ordered and covers every real coverage value exactly once.
type Bucket string

const (
	BucketNonPositive Bucket = "<=0 days"
	Bucket1To15       Bucket = "1-15 days"
	Bucket16To30      Bucket = "16-30 days"
	Bucket31To45      Bucket = "31-45 days"
	Bucket46To60      Bucket = "46-60 days"
	BucketOver60      Bucket = ">60 days"
)

// Buckets lists every bucket in ascending range order. Distribution rows
// carry one value per entry, in this order.
var Buckets = []Bucket{
	BucketNonPositive,
	Bucket1To15,
	Bucket16To30,
	Bucket31To45,
	Bucket46To60,
	BucketOver60,
}

// DistributionRow is one branch of the absolute pending-order distribution.
// Values holds one entry per bucket (dense, zero-filled) and Total is exactly
// their sum.
type DistributionRow struct {
	Branch string             `json:"branch"`
	Values map[Bucket]float64 `json:"values"`
	Total  float64            `json:"total"`
}

// PercentDistributionRow mirrors DistributionRow with values rescaled to
// percent of the branch total. A branch with a zero total carries 0 for
// every bucket.
type PercentDistributionRow struct {
	Branch string             `json:"branch"`
	Values map[Bucket]float64 `json:"values"`
}

// ParetoPoint is one bucket of a branch's Pareto series.
type ParetoPoint struct {
	Bucket     Bucket  `json:"bucket"`
	Percent    float64 `json:"percent"`
	Cumulative float64 `json:"cumulative"`
}

// Report bundles everything one build produces: the three display tables and
// the serialized spreadsheet.
type Report struct {
	Summary         []CoverageSummary        `json:"summary"`
	DistributionAbs []DistributionRow        `json:"distribution_abs"`
	DistributionPct []PercentDistributionRow `json:"distribution_pct"`
	DocumentBytes   []byte                   `json:"-"`
}

// ReportFileName is the fixed download name for the serialized report.
const ReportFileName = "relatorio_estoque_formatado.xlsx"

// ReportMIMEType is the spreadsheet MIME type used for downloads.
const ReportMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
