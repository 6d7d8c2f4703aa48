// Package traverse implements schema-aware walks over the five request
// shapes a content API accepts: query filters, sort clauses, field
// selections, population directives, and entity payloads.
//
// A Walker is bound to a schema.Lookup and threads the current model
// through the walk, switching models when a relation, component or
// dynamic-zone member is crossed. At every key that addresses an
// attribute, the walker builds a Node and runs the composed visitors
// against it, pre-order and fail-fast.
//
// # Shapes
//
// Each shape has its own entry method because each has its own
// structure:
//
//   - Filters treats logical operators ($and, $or, $not) as structural
//     grouping and comparison operators ($eq, $in, ...) as terminals.
//   - Sort accepts "title:desc,author.name" strings, lists, and nested
//     direction maps.
//   - Fields accepts comma strings and lists of selection entries.
//   - Populate accepts relation names, nested queries that re-enter
//     the other shapes against the target model, and per-component
//     fragments for dynamic zones. The "*" wildcard is returned
//     untouched.
//   - Data walks record payloads, following relation long-hands and
//     dispatching dynamic-zone members on their discriminator key.
//
// # Mutation
//
// Visitors may rewrite or remove the node they observe. The walker
// applies both in place: maps are modified directly, list elements are
// replaced, and comma-string entries are dropped by rebuilding the
// string. Callers that need the original input must copy it first.
// Every entry method returns the value to use in place of its input,
// which matters when the root itself is a string or list.
package traverse

import (
	"context"
	"slices"

	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/schema/attr"
)

// Wildcard selects everything at the level it appears on. Population
// wildcards bypass walking entirely.
const Wildcard = "*"

// Walker runs visitors over request structures, resolving keys against
// the models a Lookup supplies.
type Walker struct {
	lookup schema.Lookup
}

// NewWalker returns a walker resolving models through lookup.
func NewWalker(lookup schema.Lookup) *Walker {
	return &Walker{lookup: lookup}
}

// Filters walks a query filter tree rooted at model.
func (w *Walker) Filters(ctx context.Context, visitors []Visitor, model *schema.Model, value any) (any, error) {
	return w.walkFilters(ctx, visitors, model, value, Path{})
}

// Sort walks a sort clause rooted at model.
func (w *Walker) Sort(ctx context.Context, visitors []Visitor, model *schema.Model, value any) (any, error) {
	return w.walkSort(ctx, visitors, model, value, Path{})
}

// Fields walks a field-selection list rooted at model.
func (w *Walker) Fields(ctx context.Context, visitors []Visitor, model *schema.Model, value any) (any, error) {
	return w.walkFields(ctx, visitors, model, value, Path{})
}

// Populate walks a population directive rooted at model.
func (w *Walker) Populate(ctx context.Context, visitors []Visitor, model *schema.Model, value any) (any, error) {
	return w.walkPopulate(ctx, visitors, model, value, Path{})
}

// Data walks an entity payload rooted at model.
func (w *Walker) Data(ctx context.Context, visitors []Visitor, model *schema.Model, value any) (any, error) {
	return w.walkData(ctx, visitors, model, value, Path{})
}

// targetOf resolves the model a relation or component attribute points
// at. Dynamic zones resolve per member, never through this.
func (w *Walker) targetOf(at *schema.Attribute) *schema.Model {
	if at == nil {
		return nil
	}
	if k := at.Kind(); k != attr.KindRelation && k != attr.KindComponent {
		return nil
	}
	m, ok := w.lookup.Model(at.Target())
	if !ok {
		return nil
	}
	return m
}

// sortedKeys fixes the walk order so the first reported violation is
// deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
