package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduverse/portal-api/internal/schema"
)

func TestBuildDefaults(t *testing.T) {
	f := Build(schema.Lookup("assignments"), url.Values{})

	assert.Empty(t, f.Search)
	assert.Empty(t, f.Equals)
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)
}

func TestBuildClampsLimitAndOffset(t *testing.T) {
	cases := []struct {
		limit  string
		offset string
		wantL  int
		wantO  int
	}{
		{"500", "10", MaxLimit, 10},
		{"abc", "-2", DefaultLimit, 0},
		{"-5", "xyz", DefaultLimit, 0},
		{"0", "", DefaultLimit, 0},
		{"25", "100", 25, 100},
	}

	for _, tc := range cases {
		params := url.Values{"limit": {tc.limit}, "offset": {tc.offset}}
		f := Build(schema.Lookup("notices"), params)
		assert.Equal(t, tc.wantL, f.Limit, "limit=%q", tc.limit)
		assert.Equal(t, tc.wantO, f.Offset, "offset=%q", tc.offset)
	}
}

func TestBuildTrimsSearch(t *testing.T) {
	f := Build(schema.Lookup("resources"), url.Values{"search": {"  dbms notes "}})
	assert.Equal(t, "dbms notes", f.Search)
}

func TestBuildTypedExactMatches(t *testing.T) {
	params := url.Values{
		"subject":    {"DBMS"},
		"year":       {"3"},
		"department": {"CSE"},
	}
	f := Build(schema.Lookup("assignments"), params)

	require.Len(t, f.Equals, 3)
	values := map[string]interface{}{}
	for _, m := range f.Equals {
		values[m.Field.Name] = m.Value
	}
	assert.Equal(t, "DBMS", values["subject"])
	assert.Equal(t, int64(3), values["year"])
	assert.Equal(t, "CSE", values["department"])
}

func TestBuildSkipsUnparseableIntFilter(t *testing.T) {
	params := url.Values{"year": {"third"}, "subject": {"DBMS"}}
	f := Build(schema.Lookup("assignments"), params)

	require.Len(t, f.Equals, 1)
	assert.Equal(t, "subject", f.Equals[0].Field.Name)
}

func TestBuildIgnoresUnknownParameters(t *testing.T) {
	params := url.Values{"color": {"blue"}, "priority": {"high"}}
	f := Build(schema.Lookup("notices"), params)

	require.Len(t, f.Equals, 1)
	assert.Equal(t, "priority", f.Equals[0].Field.Name)
	assert.Equal(t, "high", f.Equals[0].Value)
}
