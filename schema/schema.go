package schema

import (
	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/schema/attr"
)

// Attr is the interface implemented by all attribute builders.
type Attr interface {
	Descriptor() *attr.Descriptor
}

// Mixin groups reusable attributes that can be composed into models.
// Mixed-in attributes precede the model's own attributes.
type Mixin interface {
	Attributes() []Attr
}

// Lookup resolves model UIDs. Traversal consumes this interface; the
// Registry is the default implementation.
type Lookup interface {
	// Model returns the model registered under uid, and whether it exists.
	Model(uid string) (*Model, bool)
}

// LookupFunc is an adapter that allows an ordinary function to be used
// as a Lookup.
type LookupFunc func(uid string) (*Model, bool)

// Model calls f(uid).
func (f LookupFunc) Model(uid string) (*Model, bool) {
	return f(uid)
}

// Attribute is the compiled form of an attribute descriptor. It is
// immutable after the model is built and safe for concurrent reads.
type Attribute struct {
	name       string
	kind       attr.Kind
	typ        attr.Type
	target     string
	components []string
	many       bool
	hidden     bool
	sensitive  bool
	visible    bool
	writable   bool
	required   bool
	defaultVal any
	comment    string
	values     []string
}

func newAttribute(uid string, d *attr.Descriptor) (*Attribute, error) {
	if d.Err != nil {
		return nil, fieldgate.NewSchemaError(uid, d.Name, d.Err)
	}
	if !d.Kind.Valid() {
		return nil, fieldgate.NewSchemaError(uid, d.Name, errInvalidKind)
	}
	return &Attribute{
		name:       d.Name,
		kind:       d.Kind,
		typ:        d.Type,
		target:     d.Target,
		components: append([]string(nil), d.Components...),
		many:       d.Many,
		hidden:     d.Hidden,
		sensitive:  d.Sensitive,
		visible:    d.Visible,
		writable:   d.Writable,
		required:   d.Required,
		defaultVal: d.Default,
		comment:    d.Comment,
		values:     append([]string(nil), d.Values...),
	}, nil
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// Kind returns the attribute kind.
func (a *Attribute) Kind() attr.Kind { return a.kind }

// Type returns the scalar type; TypeInvalid for relational kinds.
func (a *Attribute) Type() attr.Type { return a.typ }

// Target returns the target model UID of a relation or component.
func (a *Attribute) Target() string { return a.target }

// Components returns the allowed component UIDs of a dynamic zone.
func (a *Attribute) Components() []string {
	return append([]string(nil), a.components...)
}

// Many reports whether the attribute is multi-valued.
func (a *Attribute) Many() bool { return a.many }

// Hidden reports whether the attribute is hidden from the admin surface.
func (a *Attribute) Hidden() bool { return a.hidden }

// Sensitive reports whether the attribute is password-like.
func (a *Attribute) Sensitive() bool { return a.sensitive }

// Visible reports the presentation flag.
func (a *Attribute) Visible() bool { return a.visible }

// Writable reports whether the attribute is accepted in entity payloads.
func (a *Attribute) Writable() bool { return a.writable }

// Required reports whether the attribute is required on create.
func (a *Attribute) Required() bool { return a.required }

// Default returns the default value or generator function, if any.
func (a *Attribute) Default() any { return a.defaultVal }

// Comment returns the attribute comment.
func (a *Attribute) Comment() string { return a.comment }

// Values returns the allowed values of an enumeration.
func (a *Attribute) Values() []string {
	return append([]string(nil), a.values...)
}

// Relational reports whether values of the attribute address another model.
func (a *Attribute) Relational() bool { return a.kind.Relational() }
