package attr

import "errors"

// RelationBuilder is the builder for relation attributes.
type RelationBuilder struct {
	desc *Descriptor
}

// Relation returns a new relation attribute addressing the model
// identified by target. Traversal of the relation's value continues in
// the target model's schema.
func Relation(name, target string) *RelationBuilder {
	b := &RelationBuilder{desc: &Descriptor{
		Name:     name,
		Kind:     KindRelation,
		Target:   target,
		Visible:  true,
		Writable: true,
	}}
	switch {
	case name == "":
		b.desc.Err = errors.New("attribute name cannot be empty")
	case target == "":
		b.desc.Err = errors.New("relation target cannot be empty")
	}
	return b
}

// Many marks the relation multi-valued.
func (b *RelationBuilder) Many() *RelationBuilder {
	b.desc.Many = true
	return b
}

// Hidden hides the attribute from the admin surface entirely.
func (b *RelationBuilder) Hidden() *RelationBuilder {
	b.desc.Hidden = true
	return b
}

// NonVisible clears the presentation flag. Non-visible writable
// relations (createdBy, updatedBy) are implicitly permitted in
// restricted entity payloads.
func (b *RelationBuilder) NonVisible() *RelationBuilder {
	b.desc.Visible = false
	return b
}

// ReadOnly marks the relation as not accepted in entity payloads.
func (b *RelationBuilder) ReadOnly() *RelationBuilder {
	b.desc.Writable = false
	return b
}

// Required marks the relation required on create.
func (b *RelationBuilder) Required() *RelationBuilder {
	b.desc.Required = true
	return b
}

// Comment sets the attribute comment.
func (b *RelationBuilder) Comment(c string) *RelationBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the shared descriptor interface.
func (b *RelationBuilder) Descriptor() *Descriptor {
	return b.desc
}

// ComponentBuilder is the builder for component attributes.
type ComponentBuilder struct {
	desc *Descriptor
}

// Component returns a new component attribute. Components are reusable
// attribute groups registered as models under their own UID; traversal
// of the component's value continues in that model's schema.
func Component(name, target string) *ComponentBuilder {
	b := &ComponentBuilder{desc: &Descriptor{
		Name:     name,
		Kind:     KindComponent,
		Target:   target,
		Visible:  true,
		Writable: true,
	}}
	switch {
	case name == "":
		b.desc.Err = errors.New("attribute name cannot be empty")
	case target == "":
		b.desc.Err = errors.New("component target cannot be empty")
	}
	return b
}

// Repeatable marks the component as a list of entries.
func (b *ComponentBuilder) Repeatable() *ComponentBuilder {
	b.desc.Many = true
	return b
}

// Hidden hides the attribute from the admin surface entirely.
func (b *ComponentBuilder) Hidden() *ComponentBuilder {
	b.desc.Hidden = true
	return b
}

// NonVisible clears the presentation flag.
func (b *ComponentBuilder) NonVisible() *ComponentBuilder {
	b.desc.Visible = false
	return b
}

// ReadOnly marks the component as not accepted in entity payloads.
func (b *ComponentBuilder) ReadOnly() *ComponentBuilder {
	b.desc.Writable = false
	return b
}

// Required marks the component required on create.
func (b *ComponentBuilder) Required() *ComponentBuilder {
	b.desc.Required = true
	return b
}

// Comment sets the attribute comment.
func (b *ComponentBuilder) Comment(c string) *ComponentBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the shared descriptor interface.
func (b *ComponentBuilder) Descriptor() *Descriptor {
	return b.desc
}

// DynamicZoneBuilder is the builder for dynamic-zone attributes.
type DynamicZoneBuilder struct {
	desc *Descriptor
}

// DynamicZone returns a new dynamic-zone attribute: an ordered list
// whose entries may be instances of any of the given component models,
// discriminated per entry by the component key.
func DynamicZone(name string, components ...string) *DynamicZoneBuilder {
	b := &DynamicZoneBuilder{desc: &Descriptor{
		Name:       name,
		Kind:       KindDynamicZone,
		Components: components,
		Visible:    true,
		Writable:   true,
	}}
	switch {
	case name == "":
		b.desc.Err = errors.New("attribute name cannot be empty")
	case len(components) == 0:
		b.desc.Err = errors.New("dynamic zone needs at least one component")
	}
	return b
}

// Hidden hides the attribute from the admin surface entirely.
func (b *DynamicZoneBuilder) Hidden() *DynamicZoneBuilder {
	b.desc.Hidden = true
	return b
}

// NonVisible clears the presentation flag.
func (b *DynamicZoneBuilder) NonVisible() *DynamicZoneBuilder {
	b.desc.Visible = false
	return b
}

// ReadOnly marks the dynamic zone as not accepted in entity payloads.
func (b *DynamicZoneBuilder) ReadOnly() *DynamicZoneBuilder {
	b.desc.Writable = false
	return b
}

// Required marks the dynamic zone required on create.
func (b *DynamicZoneBuilder) Required() *DynamicZoneBuilder {
	b.desc.Required = true
	return b
}

// Comment sets the attribute comment.
func (b *DynamicZoneBuilder) Comment(c string) *DynamicZoneBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the shared descriptor interface.
func (b *DynamicZoneBuilder) Descriptor() *Descriptor {
	return b.desc
}
