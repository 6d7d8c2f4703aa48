// Package validate enforces field-level authorization on content-API
// requests.
//
// A Checker is bound once to a model, a schema lookup, and a
// principal's ability, and then checks or cleans requests on behalf of
// that principal:
//
//	ab := ability.New(
//		ability.NewRule(fieldgate.ActionRead, "api::article.article").
//			WithFields("title", "author"),
//	)
//	checker, err := validate.NewChecker(registry, "api::article.article", ab)
//	if err != nil {
//		return err
//	}
//	err = checker.ValidateQuery(ctx, query.Query{
//		Filters: query.ContainsFold("title", "go"),
//		Sort:    query.Desc("publishedAt"),
//	})
//
// ValidateQuery and ValidateInput fail fast with a
// *fieldgate.ValidationError naming the first offending key and its
// dotted path. The sanitize counterparts, SanitizeQuery, SanitizeInput
// and SanitizeOutput, apply the same policies but remove offending
// members instead of failing.
//
// # Policies
//
// Four policies apply beyond the permitted-field set, in every
// pipeline that concerns them:
//
//   - hidden attributes never cross the administration surface;
//   - sensitive attributes (passwords and the like) are never readable,
//     regardless of how permissive the ability is;
//   - administration-user records reached through relations expose only
//     a fixed safe list of identification fields;
//   - empty relation clauses in filters and sort are malformed.
//
// Permitted fields are resolved per call and per record, never cached:
// a rule's condition may match one subject instance and not another.
package validate
