package usecase

const (
	// DefaultListLimit caps list endpoints when the caller passes none.
	DefaultListLimit = 20
	// MaxListLimit is the hard ceiling for one page.
	MaxListLimit = 100
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
