package traverse

import (
	"strconv"

	"github.com/syssam/fieldgate/schema"
)

// Path locates a node within the walked input. Raw grows at every step
// including structural wrappers and list indices; Attribute grows only
// at keys that address a schema attribute, which makes it the dotted
// field path reported in validation failures.
type Path struct {
	Raw       string
	Attribute string
}

// attribute advances both path forms.
func (p Path) attribute(key string) Path {
	return Path{
		Raw:       join(p.Raw, key),
		Attribute: join(p.Attribute, key),
	}
}

// raw advances only the raw path. Used for structural keys such as
// logical operators and nested-query members.
func (p Path) raw(key string) Path {
	p.Raw = join(p.Raw, key)
	return p
}

// index advances the raw path with a list position.
func (p Path) index(i int) Path {
	return p.raw(strconv.Itoa(i))
}

func join(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// Node is what a visitor observes: one key/value pair of the walked
// input, resolved against the model it was reached in. Nodes are
// created per step and owned by the walk; visitors must not retain
// them.
type Node struct {
	// Key is the visited map key or path segment.
	Key string

	// Value is the key's value. Rewrites through the visitor result
	// update it before any descent.
	Value any

	// Attribute is the schema attribute Key names, or nil when the
	// model does not define it.
	Attribute *schema.Attribute

	// Model is the model Key was resolved against. It switches as the
	// walk crosses relations, components and dynamic-zone members.
	Model *schema.Model

	Path Path
}
