package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query builds URL query parameters from filter structs. Zero values are
// never serialized, so an unset filter field is absent from the URL.
type Query struct {
	values url.Values
}

// NewQuery returns an empty Query.
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// String sets key to v unless v is empty.
func (q *Query) String(key, v string) *Query {
	if v != "" {
		q.values.Set(key, v)
	}
	return q
}

// Int sets key to v unless v is zero.
func (q *Query) Int(key string, v int) *Query {
	if v != 0 {
		q.values.Set(key, strconv.Itoa(v))
	}
	return q
}

// Bool sets key when v is non-nil.
func (q *Query) Bool(key string, v *bool) *Query {
	if v != nil {
		q.values.Set(key, strconv.FormatBool(*v))
	}
	return q
}

// Time sets key to v in RFC 3339 unless v is the zero time.
func (q *Query) Time(key string, v time.Time) *Query {
	if !v.IsZero() {
		q.values.Set(key, v.Format(time.RFC3339))
	}
	return q
}

// List joins vs with commas into a single parameter unless vs is empty.
func (q *Query) List(key string, vs []string) *Query {
	if len(vs) > 0 {
		q.values.Set(key, strings.Join(vs, ","))
	}
	return q
}

// Values returns the accumulated parameters, or nil when there are none.
func (q *Query) Values() url.Values {
	if len(q.values) == 0 {
		return nil
	}
	return q.values
}

// Strings converts a slice of string-typed values for use with List.
func Strings[T ~string](vs []T) []string {
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
