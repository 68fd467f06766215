package discovery

import (
	"strings"

	"github.com/WanderingWalnut/Grantly/internal/model"
)

// PostFilter applies the province, deadline and amount constraints of
// filters, in that order, keeping input order. A nil filters keeps everything.
func PostFilter(grants []model.Grant, filters *model.SearchFilters) []model.Grant {
	if !filters.HasPostFilter() {
		return grants
	}

	out := make([]model.Grant, 0, len(grants))
	for _, g := range grants {
		if filters.Province != "" && !matchesProvince(g, filters.Province) {
			continue
		}
		if filters.DeadlineBefore != nil && !deadlineBefore(g, *filters.DeadlineBefore) {
			continue
		}
		if filters.MinAmount != nil && !meetsMinAmount(g, *filters.MinAmount) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// matchesProvince passes national grants, grants whose region normalizes to
// the requested province, and grants whose link host belongs to it. A
// province outside the alias table only matches a region with the same name.
func matchesProvince(g model.Grant, requested string) bool {
	if isNationalRegion(g.Region) {
		return true
	}
	want, ok := NormalizeProvince(requested)
	if !ok {
		return strings.EqualFold(strings.TrimSpace(g.Region), strings.TrimSpace(requested))
	}
	if got, ok := NormalizeProvince(g.Region); ok && got == want {
		return true
	}
	if j, ok := InferJurisdiction(g.Link); ok {
		if got, ok := NormalizeProvince(j.Region); ok && got == want {
			return true
		}
	}
	return false
}

// deadlineBefore passes grants without a deadline.
func deadlineBefore(g model.Grant, cutoff model.Date) bool {
	if g.Deadline == nil {
		return true
	}
	return g.Deadline.Before(cutoff)
}

// meetsMinAmount compares the larger of the two amount bounds against the
// threshold. Grants with no amounts pass.
func meetsMinAmount(g model.Grant, threshold int64) bool {
	switch {
	case g.AmountMin == nil && g.AmountMax == nil:
		return true
	case g.AmountMin == nil:
		return *g.AmountMax >= threshold
	case g.AmountMax == nil:
		return *g.AmountMin >= threshold
	default:
		return max(*g.AmountMin, *g.AmountMax) >= threshold
	}
}

// Truncate returns the first n grants.
func Truncate(grants []model.Grant, n int) []model.Grant {
	if n < 0 {
		n = 0
	}
	if len(grants) <= n {
		return grants
	}
	return grants[:n]
}
