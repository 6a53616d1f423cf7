// Package query builds store-agnostic filter descriptors from list-query
// parameters. No execution happens here; the repository translates the
// descriptor into SQL.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/eduverse/portal-api/internal/schema"
)

const (
	// DefaultLimit applies when no usable limit is supplied.
	DefaultLimit = 50
	// MaxLimit is the hard cap regardless of the requested value.
	MaxLimit = 100
)

// Match is one exact-match predicate, typed per the schema field.
type Match struct {
	Field schema.Field
	Value interface{}
}

// Filter combines the free-text search clause, exact-match predicates and
// pagination for one list request. Sort order is fixed by the entity schema
// and therefore not part of the descriptor.
type Filter struct {
	Search string
	Equals []Match
	Limit  int
	Offset int
}

// Build translates list-query parameters into a Filter for the entity.
// Exact-match values that cannot be parsed into the field's type are
// silently skipped rather than rejected; the type bounds are a write-side
// concern only.
func Build(e schema.Entity, params url.Values) Filter {
	f := Filter{
		Search: strings.TrimSpace(params.Get("search")),
		Limit:  clampLimit(params.Get("limit")),
		Offset: parseOffset(params.Get("offset")),
	}

	for _, name := range e.ExactMatch {
		raw := params.Get(name)
		if raw == "" {
			continue
		}
		field, ok := e.Field(name)
		if !ok {
			continue
		}
		switch field.Kind {
		case schema.KindInt, schema.KindNullInt:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				continue
			}
			f.Equals = append(f.Equals, Match{Field: field, Value: n})
		default:
			f.Equals = append(f.Equals, Match{Field: field, Value: raw})
		}
	}

	return f
}

func clampLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

func parseOffset(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
