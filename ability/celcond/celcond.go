// Package celcond provides CEL-backed rule conditions.
//
// A condition is a CEL expression over the subject entity, bound as the
// map variable "entity":
//
//	cond, err := celcond.New(`entity["ownerId"] == 7`)
//	rule := ability.NewRule(fieldgate.ActionUpdate, "api::article.article").
//	    WithFields("title").
//	    WithCondition(cond)
//
// Expressions must evaluate to bool. Compilation happens once per
// distinct expression; compiled programs are cached process-wide.
package celcond

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/syssam/fieldgate/ability"
)

// EntityVar is the name the subject entity is bound to in expressions.
const EntityVar = "entity"

var programCache sync.Map

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable(EntityVar, cel.MapType(cel.StringType, cel.DynType)))
}

// Condition is a compiled CEL rule condition.
type Condition struct {
	expr string
	prg  cel.Program
}

// New compiles the given CEL expression into a condition. The
// expression output type must be bool.
func New(expr string) (*Condition, error) {
	prg, err := loadOrCompile(expr)
	if err != nil {
		return nil, err
	}
	return &Condition{expr: expr, prg: prg}, nil
}

// MustNew is like New but panics on compilation errors. Intended for
// statically known expressions.
func MustNew(expr string) *Condition {
	c, err := New(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Match evaluates the condition against the subject entity. A nil
// entity is presented to the expression as an empty map.
func (c *Condition) Match(entity map[string]any) (bool, error) {
	if entity == nil {
		entity = map[string]any{}
	}
	out, _, err := c.prg.Eval(map[string]any{EntityVar: entity})
	if err != nil {
		return false, fmt.Errorf("celcond: evaluating %q: %w", c.expr, err)
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("celcond: expression %q returned %T, want bool", c.expr, out.Value())
	}
	return v, nil
}

// String returns the source expression.
func (c *Condition) String() string {
	return c.expr
}

func loadOrCompile(expr string) (cel.Program, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("celcond: expression required")
	}
	if cached, ok := programCache.Load(expr); ok {
		return cached.(cel.Program), nil
	}
	env, err := newEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("celcond: compiling %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("celcond: expression %q output type is %s, want bool", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	programCache.Store(expr, prg)
	return prg, nil
}

var _ ability.Condition = (*Condition)(nil)
