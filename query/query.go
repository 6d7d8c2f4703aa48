// Package query builds the wire-shaped request structures the
// validation entry points accept.
//
// Builders mirror the request dialect one clause at a time and compose
// by nesting:
//
//	q := query.Query{
//		Filters: query.And(
//			query.ContainsFold("title", "go"),
//			query.Has("author", query.EQ("name", "gopher")),
//		),
//		Sort:     query.SortBy(query.Desc("publishedAt"), query.Asc("title")),
//		Fields:   query.Select("title", "body"),
//		Populate: query.Populate("author", "seo"),
//	}
//
// Everything a builder returns is plain map/slice/string data; handing
// hand-written structures to the validators works just as well.
package query

import "strings"

// Query is one content-API request. Nil members are absent from the
// request and skipped by the validators.
type Query struct {
	Filters  any
	Sort     any
	Fields   any
	Populate any
}

// Clause is one filter clause keyed by attribute or operator.
type Clause = map[string]any

// And groups clauses so every one of them must hold.
func And(clauses ...Clause) Clause {
	return Clause{"$and": anySlice(clauses)}
}

// Or groups clauses so at least one of them must hold.
func Or(clauses ...Clause) Clause {
	return Clause{"$or": anySlice(clauses)}
}

// Not negates a clause.
func Not(clause Clause) Clause {
	return Clause{"$not": clause}
}

// EQ matches records whose field equals v.
func EQ(field string, v any) Clause {
	return op(field, "$eq", v)
}

// NEQ matches records whose field differs from v.
func NEQ(field string, v any) Clause {
	return op(field, "$ne", v)
}

// GT matches records whose field is greater than v.
func GT(field string, v any) Clause {
	return op(field, "$gt", v)
}

// GTE matches records whose field is greater than or equal to v.
func GTE(field string, v any) Clause {
	return op(field, "$gte", v)
}

// LT matches records whose field is less than v.
func LT(field string, v any) Clause {
	return op(field, "$lt", v)
}

// LTE matches records whose field is less than or equal to v.
func LTE(field string, v any) Clause {
	return op(field, "$lte", v)
}

// In matches records whose field equals one of vs.
func In(field string, vs ...any) Clause {
	return op(field, "$in", vs)
}

// NotIn matches records whose field equals none of vs.
func NotIn(field string, vs ...any) Clause {
	return op(field, "$notIn", vs)
}

// Between matches records whose field lies in [lo, hi].
func Between(field string, lo, hi any) Clause {
	return op(field, "$between", []any{lo, hi})
}

// Contains matches substrings case-sensitively.
func Contains(field, sub string) Clause {
	return op(field, "$contains", sub)
}

// NotContains is the negation of Contains.
func NotContains(field, sub string) Clause {
	return op(field, "$notContains", sub)
}

// ContainsFold matches substrings case-insensitively.
func ContainsFold(field, sub string) Clause {
	return op(field, "$containsi", sub)
}

// NotContainsFold is the negation of ContainsFold.
func NotContainsFold(field, sub string) Clause {
	return op(field, "$notContainsi", sub)
}

// HasPrefix matches fields starting with prefix.
func HasPrefix(field, prefix string) Clause {
	return op(field, "$startsWith", prefix)
}

// HasSuffix matches fields ending with suffix.
func HasSuffix(field, suffix string) Clause {
	return op(field, "$endsWith", suffix)
}

// IsNull matches records whose field is null.
func IsNull(field string) Clause {
	return op(field, "$null", true)
}

// NotNull matches records whose field is not null.
func NotNull(field string) Clause {
	return op(field, "$notNull", true)
}

// Has scopes a clause to a relation, component or nested attribute.
func Has(field string, clause Clause) Clause {
	return Clause{field: clause}
}

func op(field, operator string, v any) Clause {
	return Clause{field: Clause{operator: v}}
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// Asc sorts by field in ascending order.
func Asc(field string) string {
	return field + ":asc"
}

// Desc sorts by field in descending order.
func Desc(field string) string {
	return field + ":desc"
}

// SortBy combines sort entries into one clause, first entry most
// significant.
func SortBy(entries ...string) string {
	return strings.Join(entries, ",")
}

// Select lists the fields a request projects.
func Select(fields ...string) []any {
	return anySlice(fields)
}

// Populate names the relations a request loads eagerly.
func Populate(relations ...string) string {
	return strings.Join(relations, ",")
}

// PopulateAll loads every first-level relation. Validation bypasses
// wildcard population entirely.
func PopulateAll() string {
	return "*"
}

// PopulateWith attaches a nested query to a populated relation.
func PopulateWith(relation string, q Query) Clause {
	nested := Clause{}
	if q.Filters != nil {
		nested["filters"] = q.Filters
	}
	if q.Sort != nil {
		nested["sort"] = q.Sort
	}
	if q.Fields != nil {
		nested["fields"] = q.Fields
	}
	if q.Populate != nil {
		nested["populate"] = q.Populate
	}
	return Clause{relation: nested}
}

// On scopes nested queries to the named components of a dynamic zone.
func On(fragments Clause) Clause {
	return Clause{"on": fragments}
}
