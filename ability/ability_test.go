package ability_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/ability"
)

const articleUID = "api::article.article"

func TestRule(t *testing.T) {
	t.Parallel()

	t.Run("NewRule carries no field list", func(t *testing.T) {
		t.Parallel()

		r := ability.NewRule(fieldgate.ActionRead, articleUID)
		assert.Equal(t, fieldgate.ActionRead, r.Action)
		assert.Equal(t, articleUID, r.Subject)
		assert.False(t, r.HasFields())
		assert.Nil(t, r.Fields)
	})

	t.Run("WithFields", func(t *testing.T) {
		t.Parallel()

		r := ability.NewRule(fieldgate.ActionRead, articleUID).WithFields("title", "body")
		assert.True(t, r.HasFields())
		assert.Equal(t, []string{"title", "body"}, r.Fields)
	})

	t.Run("WithFields empty is explicit zero", func(t *testing.T) {
		t.Parallel()

		r := ability.NewRule(fieldgate.ActionRead, articleUID).WithFields()
		assert.True(t, r.HasFields())
		assert.Empty(t, r.Fields)
	})

	t.Run("WithFields copies its input", func(t *testing.T) {
		t.Parallel()

		fields := []string{"title"}
		r := ability.NewRule(fieldgate.ActionRead, articleUID).WithFields(fields...)
		fields[0] = "mutated"
		assert.Equal(t, []string{"title"}, r.Fields)
	})
}

func TestRulesFor(t *testing.T) {
	t.Parallel()

	ab := ability.New(
		ability.NewRule(fieldgate.ActionRead, articleUID).WithFields("title"),
		ability.NewRule(fieldgate.ActionRead, "api::tag.tag"),
		ability.NewRule(fieldgate.ActionUpdate, articleUID),
		ability.NewRule(fieldgate.ActionRead, ability.AnySubject).WithFields("name"),
	)

	t.Run("filters by action and subject type", func(t *testing.T) {
		t.Parallel()

		rules := ab.RulesFor(fieldgate.ActionRead, articleUID)
		require.Len(t, rules, 2)
		assert.Equal(t, []string{"title"}, rules[0].Fields)
		assert.Equal(t, ability.AnySubject, rules[1].Subject)
	})

	t.Run("wildcard subject matches everything", func(t *testing.T) {
		t.Parallel()

		rules := ab.RulesFor(fieldgate.ActionRead, "api::anything.anything")
		require.Len(t, rules, 1)
		assert.Equal(t, ability.AnySubject, rules[0].Subject)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ab.RulesFor(fieldgate.ActionDelete, articleUID))
	})

	t.Run("ignores conditions", func(t *testing.T) {
		t.Parallel()

		never := ability.ConditionFunc(func(map[string]any) (bool, error) { return false, nil })
		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID).WithCondition(never),
		)
		assert.Len(t, ab.RulesFor(fieldgate.ActionRead, articleUID), 1)
	})
}

func TestPermittedFieldsOf(t *testing.T) {
	t.Parallel()

	subject := fieldgate.NewSubject(articleUID)

	t.Run("unions field lists in order without duplicates", func(t *testing.T) {
		t.Parallel()

		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID).WithFields("title", "body"),
			ability.NewRule(fieldgate.ActionRead, articleUID).WithFields("body", "slug"),
		)
		fields, err := ab.PermittedFieldsOf(fieldgate.ActionRead, subject, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"title", "body", "slug"}, fields)
	})

	t.Run("field-less rules contribute nothing", func(t *testing.T) {
		t.Parallel()

		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID),
			ability.NewRule(fieldgate.ActionRead, articleUID).WithFields("title"),
		)
		fields, err := ab.PermittedFieldsOf(fieldgate.ActionRead, subject, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"title"}, fields)
	})

	t.Run("custom fieldsFrom", func(t *testing.T) {
		t.Parallel()

		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID).WithFields("title"),
		)
		fields, err := ab.PermittedFieldsOf(fieldgate.ActionRead, subject, func(r ability.Rule) []string {
			return append(r.Fields, "extra")
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"title", "extra"}, fields)
	})

	t.Run("condition filters by instance", func(t *testing.T) {
		t.Parallel()

		mineOnly := ability.ConditionFunc(func(entity map[string]any) (bool, error) {
			return entity != nil && entity["ownerId"] == 7, nil
		})
		ab := ability.New(
			ability.NewRule(fieldgate.ActionUpdate, articleUID).WithFields("title").WithCondition(mineOnly),
		)

		fields, err := ab.PermittedFieldsOf(fieldgate.ActionUpdate,
			fieldgate.SubjectOf(articleUID, map[string]any{"ownerId": 7}), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"title"}, fields)

		fields, err = ab.PermittedFieldsOf(fieldgate.ActionUpdate,
			fieldgate.SubjectOf(articleUID, map[string]any{"ownerId": 9}), nil)
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("condition error propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID).
				WithCondition(ability.ConditionFunc(func(map[string]any) (bool, error) {
					return false, boom
				})),
		)
		_, err := ab.PermittedFieldsOf(fieldgate.ActionRead, subject, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom))
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	subject := fieldgate.NewSubject(articleUID)

	t.Run("no matching rules means unrestricted", func(t *testing.T) {
		t.Parallel()

		set, err := ability.Resolve(ability.New(), fieldgate.ActionRead, subject)
		require.NoError(t, err)
		assert.Nil(t, set)
		assert.False(t, set.Restricted())
	})

	t.Run("field-less rules only means unrestricted", func(t *testing.T) {
		t.Parallel()

		ab := ability.New(ability.NewRule(fieldgate.ActionRead, articleUID))
		set, err := ability.Resolve(ab, fieldgate.ActionRead, subject)
		require.NoError(t, err)
		assert.Nil(t, set)
	})

	t.Run("field-bearing rule restricts", func(t *testing.T) {
		t.Parallel()

		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID).WithFields("title", "body"),
		)
		set, err := ability.Resolve(ab, fieldgate.ActionRead, subject)
		require.NoError(t, err)
		require.True(t, set.Restricted())
		assert.True(t, set.Allows("title"))
		assert.False(t, set.Allows("secret"))
	})

	t.Run("field-less rule never widens the union", func(t *testing.T) {
		t.Parallel()

		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID).WithFields("title"),
			ability.NewRule(fieldgate.ActionRead, articleUID),
		)
		set, err := ability.Resolve(ab, fieldgate.ActionRead, subject)
		require.NoError(t, err)
		require.True(t, set.Restricted())
		assert.Equal(t, []string{"title"}, set.Names())
	})

	t.Run("explicit empty list restricts to nothing", func(t *testing.T) {
		t.Parallel()

		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID).WithFields(),
		)
		set, err := ability.Resolve(ab, fieldgate.ActionRead, subject)
		require.NoError(t, err)
		require.True(t, set.Restricted())
		assert.Equal(t, 0, set.Len())
		assert.False(t, set.Allows("title"))
	})

	t.Run("rejected condition still marks restricted", func(t *testing.T) {
		t.Parallel()

		never := ability.ConditionFunc(func(map[string]any) (bool, error) { return false, nil })
		ab := ability.New(
			ability.NewRule(fieldgate.ActionUpdate, articleUID).WithFields("title").WithCondition(never),
		)
		set, err := ability.Resolve(ab, fieldgate.ActionUpdate,
			fieldgate.SubjectOf(articleUID, map[string]any{"ownerId": 9}))
		require.NoError(t, err)
		require.True(t, set.Restricted(), "field-bearing is decided type-level")
		assert.Equal(t, 0, set.Len())
	})

	t.Run("condition error propagates", func(t *testing.T) {
		t.Parallel()

		ab := ability.New(
			ability.NewRule(fieldgate.ActionRead, articleUID).
				WithCondition(ability.ConditionFunc(func(map[string]any) (bool, error) {
					return false, errors.New("boom")
				})),
		)
		_, err := ability.Resolve(ab, fieldgate.ActionRead, subject)
		assert.Error(t, err)
	})
}

func TestFieldSet(t *testing.T) {
	t.Parallel()

	t.Run("nil set is unrestricted", func(t *testing.T) {
		t.Parallel()

		var s *ability.FieldSet
		assert.False(t, s.Restricted())
		assert.True(t, s.Allows("anything"))
		assert.True(t, s.AllowsPath("author.role.name"))
		assert.Nil(t, s.Names())
		assert.Equal(t, 0, s.Len())
		assert.Nil(t, s.With("more"), "unrestricted stays unrestricted")
	})

	t.Run("membership", func(t *testing.T) {
		t.Parallel()

		s := ability.NewFieldSet("title", "body")
		assert.True(t, s.Restricted())
		assert.True(t, s.Allows("title"))
		assert.False(t, s.Allows("slug"))
		assert.Equal(t, []string{"title", "body"}, s.Names())
	})

	t.Run("AllowsPath matches prefixes both ways", func(t *testing.T) {
		t.Parallel()

		s := ability.NewFieldSet("title", "author.name")
		assert.True(t, s.AllowsPath("title"), "exact")
		assert.True(t, s.AllowsPath("title.length"), "descendant of a permitted name")
		assert.True(t, s.AllowsPath("author"), "ancestor of a permitted name")
		assert.True(t, s.AllowsPath("author.name"), "exact nested")
		assert.False(t, s.AllowsPath("author.email"))
		assert.False(t, s.AllowsPath("titles"), "no partial-segment match")
		assert.False(t, s.AllowsPath("auth"), "no partial-segment match")
	})

	t.Run("With extends a copy", func(t *testing.T) {
		t.Parallel()

		s := ability.NewFieldSet("title")
		extended := s.With("id", "documentId")
		assert.Equal(t, []string{"title"}, s.Names())
		assert.Equal(t, []string{"title", "id", "documentId"}, extended.Names())
		assert.True(t, extended.Allows("id"))
		assert.False(t, s.Allows("id"))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()

		s := ability.NewFieldSet("a", "a", "b").With("b", "c")
		assert.Equal(t, []string{"a", "b", "c"}, s.Names())
	})
}
