package market

import (
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/random"
)

var (
	// ErrZeroTotalWeight means the selector ran over entries that should
	// have been sanitized away.
	ErrZeroTotalWeight = apperrors.New(apperrors.CodeZeroTotalWeight, "selector total weight is not positive")
	// ErrNoEligibleEntries means a table had nothing left after sanitizing.
	ErrNoEligibleEntries = apperrors.New(apperrors.CodeRuleTableEmpty, "rule table has no eligible entries")
	// ErrFallbackMissing means a fallback chain named an absent profession.
	ErrFallbackMissing = apperrors.New(apperrors.CodeFallbackMissing, "fallback profession is missing")
	// ErrFallbackExhausted means a fallback chain ran out of hops.
	ErrFallbackExhausted = apperrors.New(apperrors.CodeFallbackExhausted, "fallback chain exhausted")
)

// Select draws one item with probability proportional to its weight. Items
// must be in a deterministic order; weights are expected to be positive.
func Select[T any](src random.Source, items []T, weight func(T) int) (T, error) {
	var zero T
	total := 0
	for _, item := range items {
		if w := weight(item); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return zero, ErrZeroTotalWeight
	}
	draw := src.IntN(total)
	cumulative := 0
	for _, item := range items {
		w := weight(item)
		if w <= 0 {
			continue
		}
		cumulative += w
		if cumulative > draw {
			return item, nil
		}
	}
	return zero, ErrZeroTotalWeight
}

// SelectEntry draws one entry by selection weight.
func SelectEntry(src random.Source, entries []Entry) (Entry, error) {
	return Select(src, entries, func(e Entry) int { return e.Weight })
}
