package validate

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/ability"
	"github.com/syssam/fieldgate/query"
	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/traverse"
)

// Actions names the ability actions a checker consults per entry
// point.
type Actions struct {
	Read   fieldgate.Action
	Create fieldgate.Action
	Update fieldgate.Action
}

// Checker validates and sanitizes requests addressed to one model
// against a principal's ability.
type Checker struct {
	lookup  schema.Lookup
	model   *schema.Model
	ability ability.Ability
	walker  *traverse.Walker
	logger  *slog.Logger
	actions Actions
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger emits debug records about field-set resolution.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// WithActions overrides the action names consulted per entry point.
func WithActions(a Actions) Option {
	return func(c *Checker) { c.actions = a }
}

// NewChecker binds a checker to the model named by uid. The lookup
// resolves that model now and every relation crossed during walks
// later.
func NewChecker(lookup schema.Lookup, uid string, ab ability.Ability, opts ...Option) (*Checker, error) {
	model, ok := lookup.Model(uid)
	if !ok {
		return nil, fieldgate.NewUnknownModelError(uid)
	}
	c := &Checker{
		lookup:  lookup,
		model:   model,
		ability: ab,
		walker:  traverse.NewWalker(lookup),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		actions: Actions{
			Read:   fieldgate.ActionRead,
			Create: fieldgate.ActionCreate,
			Update: fieldgate.ActionUpdate,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the model the checker is bound to.
func (c *Checker) Model() *schema.Model {
	return c.model
}

// CallOption adjusts a single validation or sanitization call.
type CallOption func(*callConfig)

type callConfig struct {
	action  fieldgate.Action
	subject fieldgate.Subject
}

// WithAction overrides the action permissions are resolved for.
func WithAction(a fieldgate.Action) CallOption {
	return func(cc *callConfig) { cc.action = a }
}

// WithSubject pins the subject instance rule conditions evaluate
// against.
func WithSubject(s fieldgate.Subject) CallOption {
	return func(cc *callConfig) { cc.subject = s }
}

func applyCallOptions(action fieldgate.Action, subject fieldgate.Subject, opts []CallOption) callConfig {
	cc := callConfig{action: action, subject: subject}
	for _, opt := range opts {
		opt(&cc)
	}
	return cc
}

// ValidateQuery checks every member the query carries against the
// principal's permitted fields and returns the first violation, a
// *fieldgate.ValidationError. Permitted fields are re-resolved on
// every call: rule conditions may depend on the subject instance.
// Wildcard population bypasses checking entirely.
func (c *Checker) ValidateQuery(ctx context.Context, q query.Query, opts ...CallOption) error {
	cc := applyCallOptions(c.actions.Read, fieldgate.NewSubject(c.model.UID()), opts)
	set, err := c.resolve(cc.action, cc.subject, fieldgate.QueryStaticFields())
	if err != nil {
		return err
	}
	_, err = c.walkQuery(ctx, q, pipelines{set: set, strict: true})
	return err
}

// ValidateInput checks a record payload, or every element of a list of
// payloads concurrently with first-failure-wins. The default action is
// create, or update when the payload carries an identifier; the
// default subject is the payload itself, so rule conditions can match
// on it. Creator and updater role members are omitted from the
// validated maps in place rather than rejected.
func (c *Checker) ValidateInput(ctx context.Context, data any, opts ...CallOption) error {
	if list, ok := data.([]any); ok {
		g, gctx := errgroup.WithContext(ctx)
		for _, el := range list {
			el := el
			g.Go(func() error {
				return c.validateRecord(gctx, el, opts)
			})
		}
		return g.Wait()
	}
	return c.validateRecord(ctx, data, opts)
}

// SanitizeQuery removes everything ValidateQuery would reject and
// returns the cleaned query. It only fails when resolution itself
// does.
func (c *Checker) SanitizeQuery(ctx context.Context, q query.Query, opts ...CallOption) (query.Query, error) {
	cc := applyCallOptions(c.actions.Read, fieldgate.NewSubject(c.model.UID()), opts)
	set, err := c.resolve(cc.action, cc.subject, fieldgate.QueryStaticFields())
	if err != nil {
		return query.Query{}, err
	}
	return c.walkQuery(ctx, q, pipelines{set: set})
}

// SanitizeInput removes the payload members ValidateInput would reject
// and returns the cleaned payload. Lists are sanitized concurrently,
// element by element.
func (c *Checker) SanitizeInput(ctx context.Context, data any, opts ...CallOption) (any, error) {
	if list, ok := data.([]any); ok {
		g, gctx := errgroup.WithContext(ctx)
		for i, el := range list {
			i, el := i, el
			g.Go(func() error {
				out, err := c.sanitizeRecord(gctx, el, opts)
				if err != nil {
					return err
				}
				list[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return list, nil
	}
	return c.sanitizeRecord(ctx, data, opts)
}

// SanitizeOutput trims response records down to what the principal may
// read: disallowed, hidden and sensitive members are removed, nested
// administration-user records are cut to the safe list, and creator
// role details are dropped.
func (c *Checker) SanitizeOutput(ctx context.Context, data any, opts ...CallOption) (any, error) {
	if list, ok := data.([]any); ok {
		g, gctx := errgroup.WithContext(ctx)
		for i, el := range list {
			i, el := i, el
			g.Go(func() error {
				out, err := c.sanitizeOutputRecord(gctx, el, opts)
				if err != nil {
					return err
				}
				list[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return list, nil
	}
	return c.sanitizeOutputRecord(ctx, data, opts)
}

func (c *Checker) validateRecord(ctx context.Context, data any, opts []CallOption) error {
	record, _ := data.(map[string]any)
	cc := applyCallOptions(c.inputAction(record), fieldgate.SubjectOf(c.model.UID(), record), opts)
	set, err := c.resolve(cc.action, cc.subject, c.inputStatics())
	if err != nil {
		return err
	}
	_, err = c.walker.Data(ctx, pipelines{set: set, strict: true}.input(), c.model, data)
	return err
}

func (c *Checker) sanitizeRecord(ctx context.Context, data any, opts []CallOption) (any, error) {
	record, _ := data.(map[string]any)
	cc := applyCallOptions(c.inputAction(record), fieldgate.SubjectOf(c.model.UID(), record), opts)
	set, err := c.resolve(cc.action, cc.subject, c.inputStatics())
	if err != nil {
		return nil, err
	}
	return c.walker.Data(ctx, pipelines{set: set}.input(), c.model, data)
}

func (c *Checker) sanitizeOutputRecord(ctx context.Context, data any, opts []CallOption) (any, error) {
	record, _ := data.(map[string]any)
	cc := applyCallOptions(c.actions.Read, fieldgate.SubjectOf(c.model.UID(), record), opts)
	set, err := c.resolve(cc.action, cc.subject, fieldgate.QueryStaticFields())
	if err != nil {
		return nil, err
	}
	return c.walker.Data(ctx, pipelines{set: set}.output(), c.model, data)
}

// walkQuery runs the applicable sub-walks in a fixed order so strict
// mode reports a deterministic first violation.
func (c *Checker) walkQuery(ctx context.Context, q query.Query, p pipelines) (query.Query, error) {
	out := q
	if q.Filters != nil {
		v, err := c.walker.Filters(ctx, p.filters(), c.model, q.Filters)
		if err != nil {
			return query.Query{}, err
		}
		out.Filters = v
	}
	if q.Sort != nil {
		v, err := c.walker.Sort(ctx, p.sort(), c.model, q.Sort)
		if err != nil {
			return query.Query{}, err
		}
		out.Sort = v
	}
	if q.Fields != nil {
		v, err := c.walker.Fields(ctx, p.fields(), c.model, q.Fields)
		if err != nil {
			return query.Query{}, err
		}
		out.Fields = v
	}
	if q.Populate != nil && !isWildcard(q.Populate) {
		v, err := c.walker.Populate(ctx, p.populate(), c.model, q.Populate)
		if err != nil {
			return query.Query{}, err
		}
		out.Populate = v
	}
	return out, nil
}

// resolve computes the permitted set for one call, augmenting a
// restricted set with the structural statics of the call site.
func (c *Checker) resolve(action fieldgate.Action, subject fieldgate.Subject, statics []string) (*ability.FieldSet, error) {
	set, err := ability.Resolve(c.ability, action, subject)
	if err != nil {
		return nil, err
	}
	restricted := set.Restricted()
	if restricted {
		set = set.With(statics...)
	}
	c.logger.Debug("resolved permitted fields",
		"model", c.model.UID(),
		"action", string(action),
		"restricted", restricted,
	)
	return set, nil
}

// inputAction is create, or update when the payload carries an
// identifier.
func (c *Checker) inputAction(record map[string]any) fieldgate.Action {
	if record != nil {
		if _, ok := record[fieldgate.FieldID]; ok {
			return c.actions.Update
		}
	}
	return c.actions.Create
}

// inputStatics keeps identifiers and the model's writable system
// fields settable even when no rule lists them.
func (c *Checker) inputStatics() []string {
	return append(fieldgate.InputStaticFields(), c.model.WritableNonVisible()...)
}

func isWildcard(v any) bool {
	s, ok := v.(string)
	return ok && s == traverse.Wildcard
}
