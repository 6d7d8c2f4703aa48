// Package fieldgate enforces field-level authorization on structured
// content-API requests against a dynamically described content schema.
//
// A principal's ability is an ordered set of permission rules, each
// scoped by an action, a subject type, and an optional explicit list of
// allowed fields. From it, fieldgate resolves the concrete set of fields
// the principal may read or write, and recursively validates arbitrarily
// nested request structures against it: query filters, sort clauses,
// field-selection lists, relation-population directives, and entity
// payloads. Any reference to a field outside the permitted set, to a
// field hidden from the administrative surface, to a password-like
// sensitive field, or to a disallowed sub-field of a privileged subject
// is rejected with a [ValidationError].
//
// # Package Layout
//
//   - [github.com/syssam/fieldgate/schema]: content models, attribute
//     metadata, and the registry the traversal consults
//   - [github.com/syssam/fieldgate/schema/attr]: attribute builders
//   - [github.com/syssam/fieldgate/schema/mixin]: reusable attribute sets
//   - [github.com/syssam/fieldgate/schema/load]: model definition files,
//     live reload, and compiled-registry snapshots
//   - [github.com/syssam/fieldgate/ability]: permission rules and
//     permitted-field resolution
//   - [github.com/syssam/fieldgate/ability/celcond]: CEL-backed rule
//     conditions
//   - [github.com/syssam/fieldgate/traverse]: schema-aware walkers over
//     the five request shapes
//   - [github.com/syssam/fieldgate/validate]: visitor pipelines and the
//     ValidateQuery/ValidateInput entry points
//   - [github.com/syssam/fieldgate/query]: typed builders for the wire
//     query shapes
//
// # Basic Usage
//
//	reg := schema.NewRegistry()
//	reg.Add(articleModel, authorModel, adminUserModel)
//
//	ab := ability.New(
//	    ability.NewRule(fieldgate.ActionRead, "api::article.article").
//	        WithFields("title", "body"),
//	)
//
//	checker, err := validate.NewChecker(reg, "api::article.article", ab)
//	if err != nil { ... }
//
//	err = checker.ValidateQuery(ctx, query.Query{
//	    Filters: query.EQ("title", "hello"),
//	    Sort:    query.Asc("createdAt"),
//	})
//
// A nil error means every field reference in the request is permitted.
// Violations surface as a [ValidationError] identifying the offending
// key and its attribute path.
package fieldgate
