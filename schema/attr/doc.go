// Package attr provides fluent builders for describing content-type
// attributes.
//
// Attribute names are the exact keys request payloads use (camelCase by
// convention):
//
//	attr.String("title")
//	attr.Relation("author", "api::author.author")
//
// # Attribute Kinds
//
// Attributes divide into four kinds. Scalars hold plain values;
// relations, components and dynamic zones address other registered
// models and are descended into during traversal:
//
//	// Scalar attributes
//	attr.String("title")
//	attr.Text("body")
//	attr.Integer("views")
//	attr.Float("rating")
//	attr.Boolean("featured")
//	attr.Date("publishDate")
//	attr.DateTime("reviewedAt")
//	attr.JSON("metadata")
//	attr.Email("contact")
//	attr.UID("slug")
//	attr.Enum("status").Values("draft", "published")
//	attr.Password("secret")
//	attr.Media("cover")
//
//	// Relational attributes
//	attr.Relation("author", "api::author.author")
//	attr.Relation("tags", "api::tag.tag").Many()
//	attr.Component("seo", "shared.seo")
//	attr.Component("sections", "shared.section").Repeatable()
//	attr.DynamicZone("blocks", "blocks.hero", "blocks.quote")
//
// # Authorization Flags
//
// Three flags drive field-level authorization; they are independent of
// each other:
//
//	// Hidden: never exposed through the admin surface. Rejected in
//	// entity payloads and populate directives regardless of the
//	// principal's rules.
//	attr.String("internalRef").Hidden()
//
//	// Sensitive: password-like. Never permitted, even when a rule
//	// names the attribute explicitly. Password attributes are
//	// sensitive by default.
//	attr.String("resetToken").Sensitive()
//
//	// NonVisible: presentation-level only. A non-visible attribute
//	// that stays writable is a system field (createdBy, updatedBy)
//	// and is implicitly permitted in restricted entity payloads.
//	attr.Relation("createdBy", "admin::user").NonVisible()
//
// # Other Options
//
//	attr.String("title").
//	    Required().              // Required on create
//	    Default("untitled").     // Default value
//	    Comment("Article title") // Schema comment
//
//	attr.DateTime("createdAt").ReadOnly()   // Not accepted in payloads
//	attr.UID("documentId").DefaultFunc(uuid.NewString)
//
// Builders defer construction problems into Descriptor().Err; schema.New
// reports them when the model is built.
package attr
