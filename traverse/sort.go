package traverse

import (
	"context"
	"strings"

	"github.com/syssam/fieldgate/schema"
)

func (w *Walker) walkSort(ctx context.Context, vs []Visitor, model *schema.Model, value any, path Path) (any, error) {
	switch val := value.(type) {
	case string:
		return w.walkSortString(ctx, vs, model, val, path)
	case []any:
		kept := make([]any, 0, len(val))
		for i, el := range val {
			next, err := w.walkSort(ctx, vs, model, el, path.index(i))
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
			at, _ := model.Attribute(key)
			n := &Node{Key: key, Value: val[key], Attribute: at, Model: model, Path: path.attribute(key)}
			removed, err := visit(ctx, vs, n)
			if err != nil {
				return nil, err
			}
			if removed {
				delete(val, key)
				continue
			}
			val[key] = n.Value
			target := w.targetOf(at)
			if target == nil {
				// Scalar directions are leaves.
				continue
			}
			if nested, ok := n.Value.(map[string]any); ok {
				next, err := w.walkSort(ctx, vs, target, nested, n.Path)
				if err != nil {
					return nil, err
				}
				val[key] = next
			}
		}
		return val, nil
	default:
		return value, nil
	}
}

// walkSortString walks the comma entries of a textual sort clause and
// rebuilds it without the entries visitors removed.
func (w *Walker) walkSortString(ctx context.Context, vs []Visitor, model *schema.Model, value string, path Path) (any, error) {
	var kept []string
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		keep, err := w.walkSortEntry(ctx, vs, model, entry, path)
		if err != nil {
			return nil, err
		}
		if keep {
			kept = append(kept, entry)
		}
	}
	return strings.Join(kept, ","), nil
}

// walkSortEntry visits the dotted segments of one "field.path:dir"
// entry, switching models across relational segments. A removal on any
// segment drops the whole entry.
func (w *Walker) walkSortEntry(ctx context.Context, vs []Visitor, model *schema.Model, entry string, path Path) (bool, error) {
	fieldPath, direction, ok := strings.Cut(entry, ":")
	if !ok {
		direction = "asc"
	}
	segments := strings.Split(fieldPath, ".")
	cur := model
	for i, seg := range segments {
		last := i == len(segments)-1
		var value any = direction
		if !last {
			value = strings.Join(segments[i+1:], ".") + ":" + direction
		}
		at, _ := cur.Attribute(seg)
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
			// Segments past a non-relational attribute cannot be
			// resolved; the walk stops at the first such segment.
			break
		}
	}
	return true, nil
}
