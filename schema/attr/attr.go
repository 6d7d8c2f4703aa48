package attr

import "fmt"

// Kind partitions attributes by how traversal treats their values.
// The set is closed: walkers dispatch on it with an exhaustive switch.
type Kind int

// Attribute kinds.
const (
	KindScalar Kind = iota
	KindRelation
	KindComponent
	KindDynamicZone
)

var kindNames = [...]string{
	KindScalar:      "scalar",
	KindRelation:    "relation",
	KindComponent:   "component",
	KindDynamicZone: "dynamiczone",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("invalid(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports if the kind is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindScalar && k <= KindDynamicZone
}

// Relational reports whether values of this kind address another model.
func (k Kind) Relational() bool {
	return k == KindRelation || k == KindComponent || k == KindDynamicZone
}

// Type is the scalar value type of an attribute. Relational kinds carry
// TypeInvalid; their shape is described by Target or Components instead.
type Type int

// Scalar attribute types.
const (
	TypeInvalid Type = iota
	TypeString
	TypeText
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeDate
	TypeDateTime
	TypeJSON
	TypeEmail
	TypeUID
	TypeEnum
	TypePassword
	TypeMedia
)

var typeNames = [...]string{
	TypeInvalid:  "invalid",
	TypeString:   "string",
	TypeText:     "text",
	TypeInteger:  "integer",
	TypeFloat:    "float",
	TypeBoolean:  "boolean",
	TypeDate:     "date",
	TypeDateTime: "datetime",
	TypeJSON:     "json",
	TypeEmail:    "email",
	TypeUID:      "uid",
	TypeEnum:     "enumeration",
	TypePassword: "password",
	TypeMedia:    "media",
}

// String returns the type name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[TypeInvalid]
	}
	return typeNames[t]
}

// Valid reports if the type is one of the declared scalar types.
func (t Type) Valid() bool {
	return t > TypeInvalid && t <= TypeMedia
}

// A Descriptor for attribute configuration. Builders produce descriptors;
// schema.New consumes them. Construction problems are deferred into Err
// and surfaced when the model is built.
type Descriptor struct {
	Name       string   // attribute name in request payloads
	Kind       Kind     // scalar, relation, component or dynamiczone
	Type       Type     // scalar value type; TypeInvalid for relational kinds
	Target     string   // target model UID for relations and components
	Components []string // allowed component UIDs for dynamic zones
	Many       bool     // multi-valued relation or repeatable component
	Hidden     bool     // never exposed through the admin surface
	Sensitive  bool     // password-like; never permitted, regardless of rules
	Visible    bool     // presentation flag; non-visible writable fields stay writable
	Writable   bool     // accepted in entity payloads
	Required   bool     // required on create
	Default    any      // default value or generator function
	Comment    string   // optional comment
	Values     []string // allowed values for enumerations
	Err        error    // deferred construction error
}
