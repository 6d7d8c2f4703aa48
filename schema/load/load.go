// Package load builds schema registries from model definition files.
//
// Definitions are neutral documents decoded from JSON or YAML. A YAML
// file may hold several definitions as a multi-document stream; a JSON
// file holds one definition object or an array of them. Dir reads a
// whole directory into a validated registry, Watch keeps a registry in
// sync with one, and the snapshot functions serialize a definition set
// in a compact binary form for fast cold starts.
package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/schema/attr"
	"github.com/syssam/fieldgate/schema/mixin"
)

// Definition is a model definition as it appears in definition files.
type Definition struct {
	UID         string                 `json:"uid" yaml:"uid" msgpack:"uid"`
	DisplayName string                 `json:"displayName,omitempty" yaml:"displayName,omitempty" msgpack:"displayName,omitempty"`
	Collection  string                 `json:"collection,omitempty" yaml:"collection,omitempty" msgpack:"collection,omitempty"`
	Content     bool                   `json:"content,omitempty" yaml:"content,omitempty" msgpack:"content,omitempty"`
	Attributes  []*AttributeDefinition `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
}

// AttributeDefinition is one attribute of a model definition. Type
// names a scalar type (string, text, integer, ...) or one of the
// relational kinds (relation, component, dynamiczone).
type AttributeDefinition struct {
	Name       string   `json:"name" yaml:"name" msgpack:"name"`
	Type       string   `json:"type" yaml:"type" msgpack:"type"`
	Target     string   `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`
	Components []string `json:"components,omitempty" yaml:"components,omitempty" msgpack:"components,omitempty"`
	Many       bool     `json:"many,omitempty" yaml:"many,omitempty" msgpack:"many,omitempty"`
	Hidden     bool     `json:"hidden,omitempty" yaml:"hidden,omitempty" msgpack:"hidden,omitempty"`
	Sensitive  bool     `json:"sensitive,omitempty" yaml:"sensitive,omitempty" msgpack:"sensitive,omitempty"`
	NonVisible bool     `json:"nonVisible,omitempty" yaml:"nonVisible,omitempty" msgpack:"nonVisible,omitempty"`
	ReadOnly   bool     `json:"readOnly,omitempty" yaml:"readOnly,omitempty" msgpack:"readOnly,omitempty"`
	Required   bool     `json:"required,omitempty" yaml:"required,omitempty" msgpack:"required,omitempty"`
	Default    any      `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
	Enum       []string `json:"enum,omitempty" yaml:"enum,omitempty" msgpack:"enum,omitempty"`
	Comment    string   `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}

// NewModel compiles a loaded definition into a schema model. When the
// definition is marked as content, the standard content attributes
// (identity, timestamps, publication, creator relations) are mixed in
// before the definition's own.
func NewModel(d *Definition) (*schema.Model, error) {
	attrs := make([]schema.Attr, 0, len(d.Attributes))
	for _, ad := range d.Attributes {
		a, err := ad.attribute()
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", d.UID, err)
		}
		attrs = append(attrs, a)
	}
	opts := make([]schema.ModelOption, 0, 4)
	if d.Content {
		opts = append(opts, schema.Mixins(mixin.Content{}))
	}
	opts = append(opts, schema.Attributes(attrs...))
	if d.DisplayName != "" {
		opts = append(opts, schema.DisplayName(d.DisplayName))
	}
	if d.Collection != "" {
		opts = append(opts, schema.Collection(d.Collection))
	}
	return schema.NewModel(d.UID, opts...)
}

// scalarTypes maps serialized type names to their builders. Enumerations
// are handled separately because their builder takes the allowed values.
var scalarTypes = map[string]func(string) *attr.Builder{
	attr.TypeString.String():   attr.String,
	attr.TypeText.String():     attr.Text,
	attr.TypeInteger.String():  attr.Integer,
	attr.TypeFloat.String():    attr.Float,
	attr.TypeBoolean.String():  attr.Boolean,
	attr.TypeDate.String():     attr.Date,
	attr.TypeDateTime.String(): attr.DateTime,
	attr.TypeJSON.String():     attr.JSON,
	attr.TypeEmail.String():    attr.Email,
	attr.TypeUID.String():      attr.UID,
	attr.TypePassword.String(): attr.Password,
	attr.TypeMedia.String():    attr.Media,
}

func (d *AttributeDefinition) attribute() (schema.Attr, error) {
	switch d.Type {
	case attr.KindRelation.String():
		if d.Sensitive {
			return nil, fmt.Errorf("attribute %q: relational attributes cannot be sensitive", d.Name)
		}
		b := attr.Relation(d.Name, d.Target)
		if d.Many {
			b = b.Many()
		}
		if d.Hidden {
			b = b.Hidden()
		}
		if d.NonVisible {
			b = b.NonVisible()
		}
		if d.ReadOnly {
			b = b.ReadOnly()
		}
		if d.Required {
			b = b.Required()
		}
		if d.Comment != "" {
			b = b.Comment(d.Comment)
		}
		return b, nil
	case attr.KindComponent.String():
		if d.Sensitive {
			return nil, fmt.Errorf("attribute %q: relational attributes cannot be sensitive", d.Name)
		}
		b := attr.Component(d.Name, d.Target)
		if d.Many {
			b = b.Repeatable()
		}
		if d.Hidden {
			b = b.Hidden()
		}
		if d.NonVisible {
			b = b.NonVisible()
		}
		if d.ReadOnly {
			b = b.ReadOnly()
		}
		if d.Required {
			b = b.Required()
		}
		if d.Comment != "" {
			b = b.Comment(d.Comment)
		}
		return b, nil
	case attr.KindDynamicZone.String():
		if d.Sensitive {
			return nil, fmt.Errorf("attribute %q: relational attributes cannot be sensitive", d.Name)
		}
		b := attr.DynamicZone(d.Name, d.Components...)
		if d.Hidden {
			b = b.Hidden()
		}
		if d.NonVisible {
			b = b.NonVisible()
		}
		if d.ReadOnly {
			b = b.ReadOnly()
		}
		if d.Required {
			b = b.Required()
		}
		if d.Comment != "" {
			b = b.Comment(d.Comment)
		}
		return b, nil
	case attr.TypeEnum.String():
		b := attr.Enum(d.Name).Values(d.Enum...)
		if d.Default != nil {
			s, ok := d.Default.(string)
			if !ok {
				return nil, fmt.Errorf("attribute %q: enumeration default must be a string", d.Name)
			}
			b = b.Default(s)
		}
		if d.Hidden {
			b = b.Hidden()
		}
		if d.Sensitive {
			b = b.Sensitive()
		}
		if d.NonVisible {
			b = b.NonVisible()
		}
		if d.ReadOnly {
			b = b.ReadOnly()
		}
		if d.Required {
			b = b.Required()
		}
		if d.Comment != "" {
			b = b.Comment(d.Comment)
		}
		return b, nil
	default:
		ctor, ok := scalarTypes[d.Type]
		if !ok {
			return nil, fmt.Errorf("attribute %q: unknown type %q", d.Name, d.Type)
		}
		if d.Target != "" {
			return nil, fmt.Errorf("attribute %q: target is only valid for relations and components", d.Name)
		}
		if len(d.Components) > 0 {
			return nil, fmt.Errorf("attribute %q: components are only valid for dynamic zones", d.Name)
		}
		if d.Many {
			return nil, fmt.Errorf("attribute %q: many is only valid for relational attributes", d.Name)
		}
		b := ctor(d.Name)
		if d.Hidden {
			b = b.Hidden()
		}
		if d.Sensitive {
			b = b.Sensitive()
		}
		if d.NonVisible {
			b = b.NonVisible()
		}
		if d.ReadOnly {
			b = b.ReadOnly()
		}
		if d.Required {
			b = b.Required()
		}
		if d.Default != nil {
			b = b.Default(d.Default)
		}
		if d.Comment != "" {
			b = b.Comment(d.Comment)
		}
		return b, nil
	}
}

// Export serializes a compiled model back into a definition. Mixed-in
// attributes are exported like the model's own; a re-imported
// definition compiles to an equivalent model without the content flag.
// Function-generated defaults cannot be serialized and are dropped.
func Export(m *schema.Model) *Definition {
	d := &Definition{
		UID:         m.UID(),
		DisplayName: m.DisplayName(),
		Collection:  m.Singular(),
	}
	for _, a := range m.Attributes() {
		ad := &AttributeDefinition{
			Name:       a.Name(),
			Target:     a.Target(),
			Components: a.Components(),
			Many:       a.Many(),
			Hidden:     a.Hidden(),
			NonVisible: !a.Visible(),
			ReadOnly:   !a.Writable(),
			Required:   a.Required(),
			Enum:       a.Values(),
			Comment:    a.Comment(),
		}
		if a.Kind() == attr.KindScalar {
			ad.Type = a.Type().String()
		} else {
			ad.Type = a.Kind().String()
		}
		// Passwords imply sensitivity; spelling it out would not survive
		// the relational-sensitivity check on re-import.
		ad.Sensitive = a.Sensitive() && a.Type() != attr.TypePassword
		if v := a.Default(); v != nil {
			if _, err := json.Marshal(v); err == nil {
				ad.Default = v
			}
		}
		d.Attributes = append(d.Attributes, ad)
	}
	return d
}

// Decode parses the definitions in data. The format is chosen by the
// extension of name: .json, .yaml or .yml.
func Decode(name string, data []byte) ([]*Definition, error) {
	switch filepath.Ext(name) {
	case ".json":
		return decodeJSON(name, data)
	case ".yaml", ".yml":
		return decodeYAML(name, data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q", name)
	}
}

func decodeJSON(name string, data []byte) ([]*Definition, error) {
	if trim := bytes.TrimLeft(data, " \t\r\n"); len(trim) > 0 && trim[0] == '[' {
		var defs []*Definition
		if err := json.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return defs, nil
	}
	d := &Definition{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return []*Definition{d}, nil
}

func decodeYAML(name string, data []byte) ([]*Definition, error) {
	var defs []*Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		d := &Definition{}
		err := dec.Decode(d)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// ReadFile parses the model definitions in the named file.
func ReadFile(name string) ([]*Definition, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Decode(name, data)
}

// ReadDir parses every definition file in dir, in lexical file order.
// Subdirectories and files with other extensions are skipped.
func ReadDir(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var defs []*Definition
	for _, e := range entries {
		if e.IsDir() || !definitionFile(e.Name()) {
			continue
		}
		fd, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, fd...)
	}
	return defs, nil
}

// Compile builds a validated registry from the given definitions.
func Compile(defs ...*Definition) (*schema.Registry, error) {
	reg := schema.NewRegistry()
	for _, d := range defs {
		m, err := NewModel(d)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(m); err != nil {
			return nil, err
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Dir reads, compiles and validates every model definition in dir.
func Dir(dir string) (*schema.Registry, error) {
	defs, err := ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return Compile(defs...)
}

func definitionFile(name string) bool {
	switch filepath.Ext(name) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
