// Package ability provides the declarative permission rules consumed by
// request validation, and the resolution of a principal's permitted
// fields for an action on a subject.
package ability

import (
	"fmt"

	"github.com/syssam/fieldgate"
)

// AnySubject is the rule subject wildcard matching every model UID.
const AnySubject = "*"

type (
	// Condition restricts a rule to subject instances it matches.
	// Type-only subjects present a nil entity.
	Condition interface {
		Match(entity map[string]any) (bool, error)
	}

	// Ability is the permission evaluator consumed by validation.
	// The Rules type is the default implementation.
	Ability interface {
		// RulesFor returns the rules matching the action and subject
		// type, in declaration order. Conditions are not evaluated;
		// the match is type-level.
		RulesFor(action fieldgate.Action, subjectType string) []Rule

		// PermittedFieldsOf unions fieldsFrom(rule) over the rules
		// matching the action, the subject type and, when present, the
		// rule condition against the subject instance. A nil fieldsFrom
		// defaults to the rule's own field list.
		PermittedFieldsOf(action fieldgate.Action, subject fieldgate.Subject, fieldsFrom FieldsFunc) ([]string, error)
	}

	// FieldsFunc extracts a rule's field contribution during
	// PermittedFieldsOf. Returning nil contributes nothing.
	FieldsFunc func(Rule) []string
)

// ConditionFunc is an adapter which allows the use of ordinary
// functions as rule conditions.
type ConditionFunc func(entity map[string]any) (bool, error)

// Match returns f(entity).
func (f ConditionFunc) Match(entity map[string]any) (bool, error) {
	return f(entity)
}

// Rule grants an action on a subject type, optionally restricted to an
// explicit field list and to instances matching a condition.
type Rule struct {
	// Action the rule grants.
	Action fieldgate.Action
	// Subject is the model UID the rule applies to, or AnySubject.
	Subject string
	// Fields restricts the grant to the listed fields. nil imposes no
	// field restriction; an empty non-nil list grants explicitly zero
	// fields, which restricts the principal to structural statics.
	Fields []string
	// Condition restricts the rule to matching subject instances.
	// nil matches any instance.
	Condition Condition
}

// NewRule returns a rule granting action on the given subject type.
func NewRule(action fieldgate.Action, subject string) Rule {
	return Rule{Action: action, Subject: subject}
}

// WithFields returns a copy of the rule restricted to the given fields.
// Calling it with no arguments grants explicitly zero fields; that is
// not the same as never calling it.
func (r Rule) WithFields(fields ...string) Rule {
	r.Fields = make([]string, len(fields))
	copy(r.Fields, fields)
	return r
}

// WithCondition returns a copy of the rule restricted to subject
// instances matching c.
func (r Rule) WithCondition(c Condition) Rule {
	r.Condition = c
	return r
}

// HasFields reports whether the rule carries a field list, even an
// empty one.
func (r Rule) HasFields() bool {
	return r.Fields != nil
}

func (r Rule) matchesType(action fieldgate.Action, subjectType string) bool {
	return r.Action == action && (r.Subject == AnySubject || r.Subject == subjectType)
}

// Rules is the default Ability implementation: an ordered rule list.
type Rules struct {
	rules []Rule
}

// New returns an Ability evaluating the given rules in order.
func New(rules ...Rule) *Rules {
	return &Rules{rules: append([]Rule(nil), rules...)}
}

// RulesFor implements Ability.
func (a *Rules) RulesFor(action fieldgate.Action, subjectType string) []Rule {
	var out []Rule
	for _, r := range a.rules {
		if r.matchesType(action, subjectType) {
			out = append(out, r)
		}
	}
	return out
}

// PermittedFieldsOf implements Ability.
func (a *Rules) PermittedFieldsOf(action fieldgate.Action, subject fieldgate.Subject, fieldsFrom FieldsFunc) ([]string, error) {
	if fieldsFrom == nil {
		fieldsFrom = func(r Rule) []string { return r.Fields }
	}
	var (
		union []string
		seen  = make(map[string]struct{})
	)
	for _, r := range a.rules {
		if !r.matchesType(action, subject.Type) {
			continue
		}
		if r.Condition != nil {
			ok, err := r.Condition.Match(subject.Entity)
			if err != nil {
				return nil, fmt.Errorf("ability: condition for %s on %s: %w", action, subject.Type, err)
			}
			if !ok {
				continue
			}
		}
		for _, f := range fieldsFrom(r) {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			union = append(union, f)
		}
	}
	return union, nil
}

var _ Ability = (*Rules)(nil)
