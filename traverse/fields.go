package traverse

import (
	"context"
	"strings"

	"github.com/syssam/fieldgate/schema"
)

func (w *Walker) walkFields(ctx context.Context, vs []Visitor, model *schema.Model, value any, path Path) (any, error) {
	switch val := value.(type) {
	case string:
		var kept []string
		for _, entry := range strings.Split(val, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			keep, err := w.walkFieldEntry(ctx, vs, model, entry, path)
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
			next, err := w.walkFields(ctx, vs, model, el, path.index(i))
			if err != nil {
				return nil, err
			}
			if s, ok := next.(string); ok && s == "" {
				continue
			}
			kept = append(kept, next)
		}
		return kept, nil
	default:
		return value, nil
	}
}

// walkFieldEntry visits the dotted segments of one selection entry.
// Selection stays relative to the current model unless a segment
// explicitly crosses a relation.
func (w *Walker) walkFieldEntry(ctx context.Context, vs []Visitor, model *schema.Model, entry string, path Path) (bool, error) {
	segments := strings.Split(entry, ".")
	cur := model
	for i, seg := range segments {
		if seg == Wildcard {
			// The wildcard selector names no attribute.
			continue
		}
		last := i == len(segments)-1
		var value any = seg
		if !last {
			value = strings.Join(segments[i+1:], ".")
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
		if last {
			break
		}
		if cur = w.targetOf(at); cur == nil {
			break
		}
	}
	return true, nil
}
