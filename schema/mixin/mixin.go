// Package mixin provides reusable attribute sets for content-type models.
//
// These mixins are OPTIONAL and provided as convenient starting points.
// Users are encouraged to create their own mixins tailored to their needs.
//
// Available mixins:
//   - Document: id and documentId identity attributes
//   - Timestamps: createdAt and updatedAt attributes
//   - Publishable: publishedAt attribute
//   - Creators: createdBy and updatedBy admin-user relations
//   - Content: Combines all of the above
//
// Usage:
//
//	import "github.com/syssam/fieldgate/schema/mixin"
//
//	article, err := schema.NewModel("api::article.article",
//	    schema.Mixins(mixin.Content{}),
//	    schema.Attributes(attr.String("title")),
//	)
//
// Custom mixins:
//
// For project-specific needs, embed Schema and override Attributes:
//
//	type Localized struct {
//	    mixin.Schema
//	}
//
//	func (Localized) Attributes() []schema.Attr {
//	    return []schema.Attr{
//	        attr.String("locale").ReadOnly(),
//	    }
//	}
package mixin

import (
	"github.com/google/uuid"

	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/schema/attr"
)

// Schema is the default implementation of the schema.Mixin interface.
// It should be embedded in all custom mixin definitions.
type Schema struct{}

// Attributes returns the attributes of the mixin.
// Override this method to add custom attributes.
func (Schema) Attributes() []schema.Attr { return nil }

// schema mixin must implement `Mixin` interface.
var _ schema.Mixin = (*Schema)(nil)

// Document adds the identity attributes every stored entity carries: a
// numeric id and a generated documentId. Both are system-maintained and
// read-only; restricted payloads may still reference them because they
// are input statics.
type Document struct{ Schema }

// Attributes of the document mixin.
func (Document) Attributes() []schema.Attr {
	return []schema.Attr{
		attr.Integer(fieldgate.FieldID).
			ReadOnly().
			Comment("Numeric entity identifier"),
		attr.UID(fieldgate.FieldDocumentID).
			DefaultFunc(uuid.NewString).
			ReadOnly().
			Comment("Stable document identifier shared across versions"),
	}
}

// document mixin must implement `Mixin` interface.
var _ schema.Mixin = (*Document)(nil)

// Timestamps adds createdAt and updatedAt attributes. Both are
// system-maintained and read-only; restricted queries may still filter
// and sort on them because they are query statics.
type Timestamps struct{ Schema }

// Attributes of the timestamps mixin.
func (Timestamps) Attributes() []schema.Attr {
	return []schema.Attr{
		attr.DateTime(fieldgate.FieldCreatedAt).
			ReadOnly().
			Comment("Set when the entity is created"),
		attr.DateTime(fieldgate.FieldUpdatedAt).
			ReadOnly().
			Comment("Set on every update"),
	}
}

// timestamps mixin must implement `Mixin` interface.
var _ schema.Mixin = (*Timestamps)(nil)

// Publishable adds the publishedAt attribute driven by the publish and
// unpublish actions. A nil value means draft.
type Publishable struct{ Schema }

// Attributes of the publishable mixin.
func (Publishable) Attributes() []schema.Attr {
	return []schema.Attr{
		attr.DateTime(fieldgate.FieldPublishedAt).
			ReadOnly().
			Comment("Publication timestamp; nil while draft"),
	}
}

// publishable mixin must implement `Mixin` interface.
var _ schema.Mixin = (*Publishable)(nil)

// Creators adds the createdBy and updatedBy relations to the admin user
// model. They are writable system fields that stay out of the admin
// presentation, which makes them input statics for restricted payloads.
type Creators struct{ Schema }

// Attributes of the creators mixin.
func (Creators) Attributes() []schema.Attr {
	return []schema.Attr{
		attr.Relation(fieldgate.FieldCreatedBy, fieldgate.AdminUserUID).
			NonVisible().
			Comment("Admin user who created the entity"),
		attr.Relation(fieldgate.FieldUpdatedBy, fieldgate.AdminUserUID).
			NonVisible().
			Comment("Admin user who last updated the entity"),
	}
}

// creators mixin must implement `Mixin` interface.
var _ schema.Mixin = (*Creators)(nil)

// Content composes Document, Timestamps, Publishable and Creators.
// This is the standard base for content-type models.
type Content struct{ Schema }

// Attributes of the content mixin.
func (Content) Attributes() []schema.Attr {
	out := Document{}.Attributes()
	out = append(out, Timestamps{}.Attributes()...)
	out = append(out, Publishable{}.Attributes()...)
	out = append(out, Creators{}.Attributes()...)
	return out
}

// content mixin must implement `Mixin` interface.
var _ schema.Mixin = (*Content)(nil)
