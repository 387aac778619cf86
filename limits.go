package goshape

// Page sizes accepted by Pager.
const (
	// NoLimit disables the page size, see Pager.WithUnlimited.
	NoLimit = -1
	// MaxLimit is the largest page size NormalizeLimit lets through.
	MaxLimit = 100
	// DefaultLimit replaces a missing or non-positive page size.
	DefaultLimit = 10
)

// IsNormalizedLimitMax fits limit into 1..maxLimit. A non-positive limit
// becomes DefaultLimit, itself capped by maxLimit. The second result reports
// whether limit was already in range.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	switch {
	case limit <= 0:
		return min(DefaultLimit, maxLimit), false
	case limit > maxLimit:
		return maxLimit, false
	default:
		return limit, true
	}
}

// NormalizeLimitMax is IsNormalizedLimitMax without the report.
func NormalizeLimitMax(limit int, maxLimit int) int {
	n, _ := IsNormalizedLimitMax(limit, maxLimit)

	return n
}

// NormalizeLimit fits limit into 1..MaxLimit.
func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}
