package traverse

import (
	"context"

	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/schema/attr"
)

// Logical operators group sub-clauses without addressing an attribute.
// They extend the raw path only and are never visited.
var logicalOperators = map[string]bool{
	"$and": true,
	"$or":  true,
	"$not": true,
}

// Comparison operators take literal operands. Descent stops at them:
// nothing below an operand can reference an attribute.
var comparisonOperators = map[string]bool{
	"$eq":           true,
	"$ne":           true,
	"$in":           true,
	"$notIn":        true,
	"$lt":           true,
	"$lte":          true,
	"$gt":           true,
	"$gte":          true,
	"$between":      true,
	"$contains":     true,
	"$notContains":  true,
	"$containsi":    true,
	"$notContainsi": true,
	"$startsWith":   true,
	"$endsWith":     true,
	"$null":         true,
	"$notNull":      true,
}

func (w *Walker) walkFilters(ctx context.Context, vs []Visitor, model *schema.Model, value any, path Path) (any, error) {
	switch val := value.(type) {
	case []any:
		for i, el := range val {
			next, err := w.walkFilters(ctx, vs, model, el, path.index(i))
			if err != nil {
				return nil, err
			}
			val[i] = next
		}
		return val, nil
	case map[string]any:
		for _, key := range sortedKeys(val) {
			switch {
			case logicalOperators[key]:
				next, err := w.walkFilters(ctx, vs, model, val[key], path.raw(key))
				if err != nil {
					return nil, err
				}
				val[key] = next
			case comparisonOperators[key]:
			default:
				if err := w.filterAttribute(ctx, vs, model, val, key, path); err != nil {
					return nil, err
				}
			}
		}
		return val, nil
	default:
		return value, nil
	}
}

// filterAttribute visits one attribute key of a filter map and descends
// according to the attribute kind.
func (w *Walker) filterAttribute(ctx context.Context, vs []Visitor, model *schema.Model, parent map[string]any, key string, path Path) error {
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
		// Unknown keys cannot be resolved further.
		return nil
	}
	switch at.Kind() {
	case attr.KindRelation, attr.KindComponent:
		target := w.targetOf(at)
		if target == nil {
			return nil
		}
		next, err := w.walkFilters(ctx, vs, target, n.Value, n.Path)
		if err != nil {
			return err
		}
		parent[key] = next
	case attr.KindDynamicZone:
		// A polymorphic member cannot anchor a filter clause.
	case attr.KindScalar:
		if operand, ok := n.Value.(map[string]any); ok {
			next, err := w.walkFilters(ctx, vs, model, operand, n.Path)
			if err != nil {
				return err
			}
			parent[key] = next
		}
	}
	return nil
}
