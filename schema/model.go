package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/fieldgate"
)

var (
	errInvalidKind = errors.New("invalid attribute kind")

	titleCaser = cases.Title(language.English)
)

// Model is a compiled content type: a UID, derived display and
// collection names, and the attribute set with its authorization flags.
// Models are immutable after NewModel returns and safe for concurrent
// reads.
type Model struct {
	uid         string
	displayName string
	singular    string
	plural      string
	attrs       []*Attribute
	byName      map[string]*Attribute

	hidden             []string
	sensitive          []string
	writableNonVisible []string
}

type modelConfig struct {
	attrs       []Attr
	mixins      []Mixin
	displayName string
	singular    string
}

// ModelOption configures model construction.
type ModelOption func(*modelConfig)

// Attributes adds the model's own attributes, after any mixed-in ones.
func Attributes(attrs ...Attr) ModelOption {
	return func(c *modelConfig) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// Mixins composes reusable attribute sets into the model. Mixed-in
// attributes precede the model's own.
func Mixins(ms ...Mixin) ModelOption {
	return func(c *modelConfig) {
		c.mixins = append(c.mixins, ms...)
	}
}

// DisplayName overrides the display name derived from the UID.
func DisplayName(name string) ModelOption {
	return func(c *modelConfig) {
		c.displayName = name
	}
}

// Collection overrides the singular collection name derived from the
// UID; the plural is re-derived from it.
func Collection(singular string) ModelOption {
	return func(c *modelConfig) {
		c.singular = singular
	}
}

// NewModel compiles a model from its UID and attribute options. Builder
// errors deferred in descriptors surface here, wrapped per attribute.
func NewModel(uid string, opts ...ModelOption) (*Model, error) {
	if uid == "" {
		return nil, fieldgate.NewSchemaError(uid, "", errors.New("model uid cannot be empty"))
	}
	cfg := &modelConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	all := make([]Attr, 0, len(cfg.attrs))
	for _, mx := range cfg.mixins {
		all = append(all, mx.Attributes()...)
	}
	all = append(all, cfg.attrs...)

	m := &Model{
		uid:    uid,
		attrs:  make([]*Attribute, 0, len(all)),
		byName: make(map[string]*Attribute, len(all)),
	}
	for _, a := range all {
		ca, err := newAttribute(uid, a.Descriptor())
		if err != nil {
			return nil, err
		}
		if _, ok := m.byName[ca.name]; ok {
			return nil, fieldgate.NewSchemaError(uid, ca.name, errors.New("duplicate attribute"))
		}
		m.attrs = append(m.attrs, ca)
		m.byName[ca.name] = ca
	}

	base := baseName(uid)
	m.singular = cfg.singular
	if m.singular == "" {
		m.singular = inflect.Singularize(base)
	}
	m.plural = inflect.Pluralize(m.singular)
	m.displayName = cfg.displayName
	if m.displayName == "" {
		m.displayName = titleCaser.String(inflect.Humanize(base))
	}

	for _, a := range m.attrs {
		if a.hidden {
			m.hidden = append(m.hidden, a.name)
		}
		if a.sensitive {
			m.sensitive = append(m.sensitive, a.name)
		}
		if a.writable && !a.visible {
			m.writableNonVisible = append(m.writableNonVisible, a.name)
		}
	}
	return m, nil
}

// MustModel is like NewModel but panics on error. Intended for
// statically known model definitions.
func MustModel(uid string, opts ...ModelOption) *Model {
	m, err := NewModel(uid, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// baseName extracts the short model name from a UID:
// "api::article.article" and "shared.seo" yield the part after the last
// dot, "admin::user" the part after the namespace separator.
func baseName(uid string) string {
	s := uid
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	if i := strings.Index(s, "::"); i >= 0 {
		return s[i+2:]
	}
	return s
}

// UID returns the model UID.
func (m *Model) UID() string { return m.uid }

// DisplayName returns the human-readable model name.
func (m *Model) DisplayName() string { return m.displayName }

// Singular returns the singular collection name.
func (m *Model) Singular() string { return m.singular }

// Plural returns the plural collection name.
func (m *Model) Plural() string { return m.plural }

// Attributes returns the model attributes in definition order.
func (m *Model) Attributes() []*Attribute {
	return append([]*Attribute(nil), m.attrs...)
}

// Attribute returns the named attribute, and whether it exists.
func (m *Model) Attribute(name string) (*Attribute, bool) {
	a, ok := m.byName[name]
	return a, ok
}

// AttributeNames returns the attribute names in definition order.
func (m *Model) AttributeNames() []string {
	names := make([]string, len(m.attrs))
	for i, a := range m.attrs {
		names[i] = a.name
	}
	return names
}

// HiddenAttributes returns the names of hidden attributes.
func (m *Model) HiddenAttributes() []string {
	return append([]string(nil), m.hidden...)
}

// SensitiveAttributes returns the names of password-like attributes.
func (m *Model) SensitiveAttributes() []string {
	return append([]string(nil), m.sensitive...)
}

// WritableNonVisible returns the names of system attributes that are
// writable but not visible (createdBy, updatedBy). Restricted entity
// payloads permit these implicitly.
func (m *Model) WritableNonVisible() []string {
	return append([]string(nil), m.writableNonVisible...)
}

// String implements fmt.Stringer.
func (m *Model) String() string {
	return fmt.Sprintf("%s (%d attributes)", m.uid, len(m.attrs))
}
