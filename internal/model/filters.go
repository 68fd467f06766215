package model

const (
	DefaultMaxResults = 10
	MinMaxResults     = 1
	MaxMaxResults     = 50
)

// SearchFilters narrows a discovery request. A nil *SearchFilters means no
// filtering and the default result cap.
type SearchFilters struct {
	Province       string `json:"province,omitempty"`
	MinAmount      *int64 `json:"min_amount,omitempty"`
	DeadlineBefore *Date  `json:"deadline_before,omitempty"`
	MaxResults     *int   `json:"max_results,omitempty"`
}

// ResultCap returns the requested result cap or DefaultMaxResults when unset.
// It does not range-check; see discovery.ValidateFilters.
func (f *SearchFilters) ResultCap() int {
	if f == nil || f.MaxResults == nil {
		return DefaultMaxResults
	}
	return *f.MaxResults
}

// HasPostFilter reports whether any province, deadline or amount constraint
// is configured.
func (f *SearchFilters) HasPostFilter() bool {
	if f == nil {
		return false
	}
	return f.Province != "" || f.MinAmount != nil || f.DeadlineBefore != nil
}
