package ability

import "github.com/syssam/fieldgate"

// Resolve computes the set of fields the ability permits for action on
// subject. A nil result means unrestricted: the permitted union is
// empty and no rule matching the action and subject type carries a
// field list. A non-nil result is the union of field-bearing matching
// rules; call sites augment it with the structural statics of the
// operation before use.
//
// Field-bearing is decided type-level, like RulesFor: a rule whose
// condition rejects the subject instance contributes no fields, but its
// field list still marks the principal as restricted.
//
// Resolution runs on every call. Permitted fields depend on the subject
// instance through rule conditions, so there is nothing stable to cache.
func Resolve(ab Ability, action fieldgate.Action, subject fieldgate.Subject) (*FieldSet, error) {
	fields, err := ab.PermittedFieldsOf(action, subject, func(r Rule) []string { return r.Fields })
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		bearing := false
		for _, r := range ab.RulesFor(action, subject.Type) {
			if r.HasFields() {
				bearing = true
				break
			}
		}
		if !bearing {
			return nil, nil
		}
	}
	return NewFieldSet(fields...), nil
}
