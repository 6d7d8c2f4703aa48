package traverse

import (
	"context"
	"strings"

	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/schema/attr"
)

// Nested-query members a population directive may carry. Their keys are
// structural: they extend the raw path only.
const (
	memberFilters  = "filters"
	memberSort     = "sort"
	memberFields   = "fields"
	memberPopulate = "populate"
	memberOn       = "on"
	memberCount    = "count"
)

func (w *Walker) walkPopulate(ctx context.Context, vs []Visitor, model *schema.Model, value any, path Path) (any, error) {
	switch val := value.(type) {
	case string:
		if val == Wildcard {
			return val, nil
		}
		var kept []string
		for _, entry := range strings.Split(val, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			keep, err := w.walkPopulateEntry(ctx, vs, model, entry, path)
			if err != nil {
				return nil, err
			}
			if keep {
				kept = append(kept, entry)
			}
		}
		return strings.Join(kept, ","), nil
	case []any:
		kept := make([]any, 0, len(val))
		for i, el := range val {
			next, err := w.walkPopulate(ctx, vs, model, el, path.index(i))
			if err != nil {
				return nil, err
			}
			if s, ok := next.(string); ok && s == "" {
				continue
			}
			kept = append(kept, next)
		}
		return kept, nil
	case map[string]any:
		for _, key := range sortedKeys(val) {
			if err := w.populateRelation(ctx, vs, model, val, key, path); err != nil {
				return nil, err
			}
		}
		return val, nil
	default:
		return value, nil
	}
}

// walkPopulateEntry visits the dotted segments of one textual populate
// entry, crossing into the target model per segment.
func (w *Walker) walkPopulateEntry(ctx context.Context, vs []Visitor, model *schema.Model, entry string, path Path) (bool, error) {
	segments := strings.Split(entry, ".")
	cur := model
	for i, seg := range segments {
		at, _ := cur.Attribute(seg)
		var value any = true
		if i < len(segments)-1 {
			value = strings.Join(segments[i+1:], ".")
		}
		n := &Node{Key: seg, Value: value, Attribute: at, Model: cur, Path: path.attribute(seg)}
		removed, err := visit(ctx, vs, n)
		if err != nil {
			return false, err
		}
		if removed {
			return false, nil
		}
		path = n.Path
		if cur = w.targetOf(at); cur == nil {
			break
		}
	}
	return true, nil
}

// populateRelation visits one relation key of a populate map and walks
// whatever the directive carries: boolean and wildcard leaves, nested
// queries against the target model, or per-component fragments for
// dynamic zones.
func (w *Walker) populateRelation(ctx context.Context, vs []Visitor, model *schema.Model, parent map[string]any, key string, path Path) error {
	at, _ := model.Attribute(key)
	n := &Node{Key: key, Value: parent[key], Attribute: at, Model: model, Path: path.attribute(key)}
	removed, err := visit(ctx, vs, n)
	if err != nil {
		return err
	}
	if removed {
		delete(parent, key)
		return nil
	}
	parent[key] = n.Value
	nested, ok := n.Value.(map[string]any)
	if !ok || at == nil {
		return nil
	}
	switch at.Kind() {
	case attr.KindRelation, attr.KindComponent:
		target := w.targetOf(at)
		if target == nil {
			return nil
		}
		return w.walkNestedQuery(ctx, vs, target, nested, n.Path)
	case attr.KindDynamicZone:
		return w.walkFragments(ctx, vs, nested, n.Path)
	case attr.KindScalar:
	}
	return nil
}

// walkNestedQuery re-enters the shape walkers for the query members a
// population directive carries. Other members, count among them, are
// leaves.
func (w *Walker) walkNestedQuery(ctx context.Context, vs []Visitor, model *schema.Model, q map[string]any, path Path) error {
	if v, ok := q[memberFilters]; ok {
		next, err := w.walkFilters(ctx, vs, model, v, path.raw(memberFilters))
		if err != nil {
			return err
		}
		q[memberFilters] = next
	}
	if v, ok := q[memberSort]; ok {
		next, err := w.walkSort(ctx, vs, model, v, path.raw(memberSort))
		if err != nil {
			return err
		}
		q[memberSort] = next
	}
	if v, ok := q[memberFields]; ok {
		next, err := w.walkFields(ctx, vs, model, v, path.raw(memberFields))
		if err != nil {
			return err
		}
		q[memberFields] = next
	}
	if v, ok := q[memberPopulate]; ok {
		next, err := w.walkPopulate(ctx, vs, model, v, path.raw(memberPopulate))
		if err != nil {
			return err
		}
		q[memberPopulate] = next
	}
	return nil
}

// walkFragments handles per-component population of a dynamic zone:
// {on: {<component uid>: <nested query>}}. Fragments naming a model the
// lookup does not know are left untouched.
func (w *Walker) walkFragments(ctx context.Context, vs []Visitor, value map[string]any, path Path) error {
	on, ok := value[memberOn].(map[string]any)
	if !ok {
		return nil
	}
	base := path.raw(memberOn)
	for _, uid := range sortedKeys(on) {
		target, found := w.lookup.Model(uid)
		if !found {
			continue
		}
		nested, ok := on[uid].(map[string]any)
		if !ok {
			continue
		}
		if err := w.walkNestedQuery(ctx, vs, target, nested, base.raw(uid)); err != nil {
			return err
		}
	}
	return nil
}
