// Package schema provides the compiled content-type model and the
// registry that resolves model UIDs during traversal.
//
// This package is the hub for schema definition, consuming its
// subpackages:
//
//   - [attr]: Attribute builders with authorization flags
//   - [mixin]: Reusable attribute sets (document identity, timestamps,
//     publish state, creator tracking)
//   - [load]: Registry construction from definition files, live reload,
//     and compiled snapshots
//
// # Quick Start
//
// Define models with attribute builders and register them:
//
//	article, err := schema.NewModel("api::article.article",
//	    schema.Mixins(mixin.Document{}, mixin.Timestamps{}),
//	    schema.Attributes(
//	        attr.String("title").Required(),
//	        attr.Text("body"),
//	        attr.Relation("author", "api::author.author"),
//	    ),
//	)
//
//	reg := schema.NewRegistry()
//	if err := reg.Add(article, author); err != nil { ... }
//	if err := reg.Validate(); err != nil { ... }
//
// # Derived Names
//
// Display and collection names are derived from the UID unless
// overridden:
//
//	schema.MustModel("api::article.article")  // "Article", article/articles
//	schema.MustModel("admin::user")           // "User", user/users
//
//	schema.NewModel("api::staff.staff",
//	    schema.DisplayName("Staff Member"),
//	    schema.Collection("staffMember"),
//	)
//
// # Lookup
//
// Traversal consumes the Lookup interface; Registry implements it, and
// LookupFunc adapts plain functions for tests:
//
//	var lk schema.Lookup = reg
//	lk = schema.LookupFunc(func(uid string) (*schema.Model, bool) {
//	    return reg.Model(uid)
//	})
//
// # Validation
//
// Registry.Validate checks that every relation target, component target
// and dynamic-zone member resolves to a registered model, and reports
// all dangling references together.
package schema
