package search

import (
	"encoding/json"
	"slices"
)

// Query is the search payload the provider accepts: either one query string
// or an ordered batch of query strings submitted in a single call.
type Query struct {
	texts   []string
	batched bool
}

// Single builds a one-string query.
func Single(q string) Query {
	return Query{texts: []string{q}}
}

// Batch builds a multi-query payload. Order is preserved.
func Batch(qs []string) Query {
	return Query{texts: slices.Clone(qs), batched: true}
}

func (q Query) IsBatch() bool {
	return q.batched
}

// Strings returns the query strings in order. A single query yields one element.
func (q Query) Strings() []string {
	return slices.Clone(q.texts)
}

func (q Query) IsZero() bool {
	return len(q.texts) == 0
}

func (q Query) MarshalJSON() ([]byte, error) {
	if q.batched {
		return json.Marshal(q.texts)
	}
	if len(q.texts) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(q.texts[0])
}
