package attr

import "errors"

// Builder is the builder for scalar attributes.
type Builder struct {
	desc *Descriptor
}

func newScalar(name string, t Type) *Builder {
	b := &Builder{desc: &Descriptor{
		Name:     name,
		Kind:     KindScalar,
		Type:     t,
		Visible:  true,
		Writable: true,
	}}
	if name == "" {
		b.desc.Err = errors.New("attribute name cannot be empty")
	}
	return b
}

// String returns a new short-string attribute.
func String(name string) *Builder {
	return newScalar(name, TypeString)
}

// Text returns a new long-text attribute.
func Text(name string) *Builder {
	return newScalar(name, TypeText)
}

// Integer returns a new integer attribute.
func Integer(name string) *Builder {
	return newScalar(name, TypeInteger)
}

// Float returns a new float attribute.
func Float(name string) *Builder {
	return newScalar(name, TypeFloat)
}

// Boolean returns a new boolean attribute.
func Boolean(name string) *Builder {
	return newScalar(name, TypeBoolean)
}

// Date returns a new date attribute.
func Date(name string) *Builder {
	return newScalar(name, TypeDate)
}

// DateTime returns a new datetime attribute.
func DateTime(name string) *Builder {
	return newScalar(name, TypeDateTime)
}

// JSON returns a new json attribute. Its values are opaque to traversal.
func JSON(name string) *Builder {
	return newScalar(name, TypeJSON)
}

// Email returns a new email attribute.
func Email(name string) *Builder {
	return newScalar(name, TypeEmail)
}

// UID returns a new uid attribute (unique, url-safe identifier strings
// such as slugs).
func UID(name string) *Builder {
	return newScalar(name, TypeUID)
}

// Password returns a new password attribute. Passwords are sensitive by
// default: no permission rule can expose them.
func Password(name string) *Builder {
	b := newScalar(name, TypePassword)
	b.desc.Sensitive = true
	return b
}

// Media returns a new media attribute (uploaded files). Media values are
// opaque to traversal; selecting or populating the attribute is still
// permission-checked by name.
func Media(name string) *Builder {
	return newScalar(name, TypeMedia)
}

// Hidden hides the attribute from the admin surface entirely. Hidden
// attributes are rejected in entity payloads and populate directives
// regardless of the ability.
func (b *Builder) Hidden() *Builder {
	b.desc.Hidden = true
	return b
}

// Sensitive marks the attribute password-like. Sensitive attributes are
// never permitted, even when a rule names them explicitly.
func (b *Builder) Sensitive() *Builder {
	b.desc.Sensitive = true
	return b
}

// NonVisible clears the presentation flag. Non-visible attributes that
// remain writable (system fields such as createdBy) are implicitly
// permitted in restricted entity payloads.
func (b *Builder) NonVisible() *Builder {
	b.desc.Visible = false
	return b
}

// ReadOnly marks the attribute as not accepted in entity payloads.
func (b *Builder) ReadOnly() *Builder {
	b.desc.Writable = false
	return b
}

// Required marks the attribute required on create.
func (b *Builder) Required() *Builder {
	b.desc.Required = true
	return b
}

// Default sets the default value of the attribute.
func (b *Builder) Default(v any) *Builder {
	b.desc.Default = v
	return b
}

// DefaultFunc sets a function that generates the default value.
func (b *Builder) DefaultFunc(fn any) *Builder {
	b.desc.Default = fn
	return b
}

// Comment sets the attribute comment.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the shared descriptor interface.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
