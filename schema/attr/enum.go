package attr

import "errors"

// EnumBuilder is the builder for enumeration attributes.
type EnumBuilder struct {
	desc *Descriptor
}

// Enum returns a new enumeration attribute. The allowed values are set
// with Values.
func Enum(name string) *EnumBuilder {
	b := &EnumBuilder{desc: &Descriptor{
		Name:     name,
		Kind:     KindScalar,
		Type:     TypeEnum,
		Visible:  true,
		Writable: true,
	}}
	if name == "" {
		b.desc.Err = errors.New("attribute name cannot be empty")
	}
	return b
}

// Values adds the given values to the enumeration.
func (b *EnumBuilder) Values(values ...string) *EnumBuilder {
	b.desc.Values = append(b.desc.Values, values...)
	return b
}

// Hidden hides the attribute from the admin surface entirely.
func (b *EnumBuilder) Hidden() *EnumBuilder {
	b.desc.Hidden = true
	return b
}

// Sensitive marks the attribute password-like.
func (b *EnumBuilder) Sensitive() *EnumBuilder {
	b.desc.Sensitive = true
	return b
}

// NonVisible clears the presentation flag.
func (b *EnumBuilder) NonVisible() *EnumBuilder {
	b.desc.Visible = false
	return b
}

// ReadOnly marks the attribute as not accepted in entity payloads.
func (b *EnumBuilder) ReadOnly() *EnumBuilder {
	b.desc.Writable = false
	return b
}

// Required marks the attribute required on create.
func (b *EnumBuilder) Required() *EnumBuilder {
	b.desc.Required = true
	return b
}

// Default sets the default value of the enumeration.
func (b *EnumBuilder) Default(v string) *EnumBuilder {
	b.desc.Default = v
	return b
}

// Comment sets the attribute comment.
func (b *EnumBuilder) Comment(c string) *EnumBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the shared descriptor interface.
func (b *EnumBuilder) Descriptor() *Descriptor {
	if b.desc.Err == nil && len(b.desc.Values) == 0 {
		b.desc.Err = errors.New("enumeration needs at least one value")
	}
	return b.desc
}
