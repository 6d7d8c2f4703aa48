package traverse

import (
	"context"

	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/schema/attr"
)

// Relation long-hand operations. Their keys are structural and their
// operands are records (or references) of the relation's target model.
var relationOps = []string{"connect", "disconnect", "set"}

func (w *Walker) walkData(ctx context.Context, vs []Visitor, model *schema.Model, value any, path Path) (any, error) {
	switch val := value.(type) {
	case []any:
		for i, el := range val {
			next, err := w.walkData(ctx, vs, model, el, path.index(i))
			if err != nil {
				return nil, err
			}
			val[i] = next
		}
		return val, nil
	case map[string]any:
		for _, key := range sortedKeys(val) {
			if err := w.dataAttribute(ctx, vs, model, val, key, path); err != nil {
				return nil, err
			}
		}
		return val, nil
	default:
		return value, nil
	}
}

// dataAttribute visits one attribute key of a record payload and
// descends according to the attribute kind. Scalar values, json
// documents included, are opaque.
func (w *Walker) dataAttribute(ctx context.Context, vs []Visitor, model *schema.Model, parent map[string]any, key string, path Path) error {
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
	if at == nil {
		return nil
	}
	switch at.Kind() {
	case attr.KindRelation:
		target := w.targetOf(at)
		if target == nil {
			return nil
		}
		next, err := w.walkRelationValue(ctx, vs, target, n.Value, n.Path)
		if err != nil {
			return err
		}
		parent[key] = next
	case attr.KindComponent:
		target := w.targetOf(at)
		if target == nil {
			return nil
		}
		next, err := w.walkData(ctx, vs, target, n.Value, n.Path)
		if err != nil {
			return err
		}
		parent[key] = next
	case attr.KindDynamicZone:
		next, err := w.walkZoneValue(ctx, vs, n.Value, n.Path)
		if err != nil {
			return err
		}
		parent[key] = next
	case attr.KindScalar:
	}
	return nil
}

// walkRelationValue handles the shapes a relation accepts in payloads:
// a related record, a list of records, plain references, and the
// {set|connect|disconnect} long-hand.
func (w *Walker) walkRelationValue(ctx context.Context, vs []Visitor, target *schema.Model, value any, path Path) (any, error) {
	m, ok := value.(map[string]any)
	if ok && hasRelationOps(m) {
		for _, op := range relationOps {
			v, present := m[op]
			if !present {
				continue
			}
			next, err := w.walkData(ctx, vs, target, v, path.raw(op))
			if err != nil {
				return nil, err
			}
			m[op] = next
		}
		return m, nil
	}
	return w.walkData(ctx, vs, target, value, path)
}

func hasRelationOps(m map[string]any) bool {
	for _, op := range relationOps {
		if _, ok := m[op]; ok {
			return true
		}
	}
	return false
}

// walkZoneValue dispatches each member of a dynamic-zone payload on its
// discriminator key. Members without a resolvable discriminator are
// left untouched.
func (w *Walker) walkZoneValue(ctx context.Context, vs []Visitor, value any, path Path) (any, error) {
	elems, ok := value.([]any)
	if !ok {
		return value, nil
	}
	for i, el := range elems {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		uid, _ := m[fieldgate.ComponentKey].(string)
		target, found := w.lookup.Model(uid)
		if !found {
			continue
		}
		next, err := w.walkData(ctx, vs, target, m, path.index(i))
		if err != nil {
			return nil, err
		}
		elems[i] = next
	}
	return elems, nil
}
