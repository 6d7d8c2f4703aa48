package validate

import (
	"context"

	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/ability"
	"github.com/syssam/fieldgate/traverse"
)

// rolesKey is the nested member omitted from creator and updater
// references instead of being validated.
const rolesKey = "roles"

// predicate reports whether a node violates one policy.
type predicate func(n *traverse.Node) bool

// rejecting turns a violation predicate into a failing visitor.
func rejecting(p predicate) traverse.Visitor {
	return traverse.Func(func(_ context.Context, n *traverse.Node) (traverse.Result, error) {
		if p(n) {
			return traverse.Result{}, fieldgate.NewValidationErrorAt(n.Key, n.Path.Attribute)
		}
		return traverse.Result{}, nil
	})
}

// stripping turns the same predicate into a removing visitor.
func stripping(p predicate) traverse.Visitor {
	return traverse.Func(func(_ context.Context, n *traverse.Node) (traverse.Result, error) {
		if p(n) {
			return traverse.Remove(), nil
		}
		return traverse.Result{}, nil
	})
}

// isHidden holds for attributes never exposed to the administration
// surface, independent of any permission outcome.
func isHidden(n *traverse.Node) bool {
	return n.Attribute != nil && n.Attribute.Hidden()
}

// isSensitive holds for password-like attributes. Requests never
// reference them, not even under an unrestricted ability.
func isSensitive(n *traverse.Node) bool {
	return n.Attribute != nil && n.Attribute.Sensitive()
}

// isAdminRestricted holds for attributes of the administration-user
// model outside its fixed safe list. Reaching that model through a
// nested relation must not leak credential fields.
func isAdminRestricted(n *traverse.Node) bool {
	if n.Model.UID() != fieldgate.AdminUserUID || n.Attribute == nil {
		return false
	}
	return !adminSafe[n.Key]
}

var adminSafe = func() map[string]bool {
	m := make(map[string]bool)
	for _, f := range fieldgate.AdminUserSafeFields() {
		m[f] = true
	}
	return m
}()

// isEmptyStructural holds for relation, component and dynamic-zone
// clauses without members. An empty nested clause is a malformed
// query, not a no-op.
func isEmptyStructural(n *traverse.Node) bool {
	if n.Attribute == nil || !n.Attribute.Relational() {
		return false
	}
	m, ok := n.Value.(map[string]any)
	return ok && len(m) == 0
}

// disallowedBy holds for attribute paths outside the permitted set.
func disallowedBy(set *ability.FieldSet) predicate {
	return func(n *traverse.Node) bool {
		return !set.AllowsPath(n.Path.Attribute)
	}
}

var (
	rejectHidden                   = rejecting(isHidden)
	rejectSensitive                = rejecting(isSensitive)
	rejectAdminUserRestrictedField = rejecting(isAdminRestricted)
	rejectEmptyStructuralValue     = rejecting(isEmptyStructural)

	stripHidden                   = stripping(isHidden)
	stripSensitive                = stripping(isSensitive)
	stripAdminUserRestrictedField = stripping(isAdminRestricted)
	stripEmptyStructuralValue     = stripping(isEmptyStructural)
)

func rejectDisallowed(set *ability.FieldSet) traverse.Visitor {
	return rejecting(disallowedBy(set))
}

func stripDisallowed(set *ability.FieldSet) traverse.Visitor {
	return stripping(disallowedBy(set))
}

// stripCreatorRoles rewrites creator and updater references without
// their nested role information. Role data is omitted rather than
// rejected so payloads echoing server-populated creator fields stay
// valid.
var stripCreatorRoles = traverse.Func(func(_ context.Context, n *traverse.Node) (traverse.Result, error) {
	if n.Key != fieldgate.FieldCreatedBy && n.Key != fieldgate.FieldUpdatedBy {
		return traverse.Result{}, nil
	}
	if n.Attribute == nil || !n.Attribute.Relational() {
		return traverse.Result{}, nil
	}
	switch v := n.Value.(type) {
	case map[string]any:
		return traverse.Rewrite(withoutRoles(v)), nil
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			if m, ok := el.(map[string]any); ok {
				out[i] = withoutRoles(m)
			} else {
				out[i] = el
			}
		}
		return traverse.Rewrite(out), nil
	}
	return traverse.Result{}, nil
})

func withoutRoles(m map[string]any) map[string]any {
	if _, ok := m[rolesKey]; !ok {
		return m
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != rolesKey {
			out[k] = v
		}
	}
	return out
}
