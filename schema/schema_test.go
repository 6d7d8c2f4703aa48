package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/schema/attr"
)

func TestNewModel(t *testing.T) {
	t.Parallel()

	t.Run("basic", func(t *testing.T) {
		t.Parallel()

		m, err := schema.NewModel("api::article.article",
			schema.Attributes(
				attr.String("title").Required(),
				attr.Text("body"),
				attr.Relation("author", "api::author.author"),
			),
		)
		require.NoError(t, err)
		assert.Equal(t, "api::article.article", m.UID())
		assert.Equal(t, []string{"title", "body", "author"}, m.AttributeNames())

		a, ok := m.Attribute("title")
		require.True(t, ok)
		assert.Equal(t, attr.KindScalar, a.Kind())
		assert.True(t, a.Required())

		a, ok = m.Attribute("author")
		require.True(t, ok)
		assert.Equal(t, attr.KindRelation, a.Kind())
		assert.Equal(t, "api::author.author", a.Target())

		_, ok = m.Attribute("missing")
		assert.False(t, ok)
	})

	t.Run("derived names", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			uid      string
			display  string
			singular string
			plural   string
		}{
			{"api::article.article", "Article", "article", "articles"},
			{"admin::user", "User", "user", "users"},
			{"shared.seo", "Seo", "seo", "seos"},
			{"api::category.category", "Category", "category", "categories"},
		}
		for _, tt := range tests {
			t.Run(tt.uid, func(t *testing.T) {
				m, err := schema.NewModel(tt.uid)
				require.NoError(t, err)
				assert.Equal(t, tt.display, m.DisplayName())
				assert.Equal(t, tt.singular, m.Singular())
				assert.Equal(t, tt.plural, m.Plural())
			})
		}
	})

	t.Run("name overrides", func(t *testing.T) {
		t.Parallel()

		m, err := schema.NewModel("api::staff.staff",
			schema.DisplayName("Staff Member"),
			schema.Collection("staffMember"),
		)
		require.NoError(t, err)
		assert.Equal(t, "Staff Member", m.DisplayName())
		assert.Equal(t, "staffMember", m.Singular())
		assert.Equal(t, "staffMembers", m.Plural())
	})

	t.Run("derived sets", func(t *testing.T) {
		t.Parallel()

		m, err := schema.NewModel("api::article.article",
			schema.Attributes(
				attr.String("title"),
				attr.String("internalRef").Hidden(),
				attr.Password("secret"),
				attr.Relation("createdBy", "admin::user").NonVisible(),
				attr.DateTime("syncedAt").NonVisible().ReadOnly(),
			),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"internalRef"}, m.HiddenAttributes())
		assert.Equal(t, []string{"secret"}, m.SensitiveAttributes())
		assert.Equal(t, []string{"createdBy"}, m.WritableNonVisible(),
			"read-only non-visible attributes are not input statics")
	})

	t.Run("mixins precede attributes", func(t *testing.T) {
		t.Parallel()

		m, err := schema.NewModel("api::article.article",
			schema.Mixins(identMixin{}),
			schema.Attributes(attr.String("title")),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "documentId", "title"}, m.AttributeNames())
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		_, err := schema.NewModel("")
		assert.True(t, fieldgate.IsSchemaError(err))

		// Deferred builder error surfaces at build.
		_, err = schema.NewModel("api::article.article",
			schema.Attributes(attr.Enum("status")),
		)
		require.Error(t, err)
		assert.True(t, fieldgate.IsSchemaError(err))
		assert.Contains(t, err.Error(), "status")

		// Duplicate attribute names.
		_, err = schema.NewModel("api::article.article",
			schema.Attributes(attr.String("title"), attr.Text("title")),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("MustModel panics on error", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			schema.MustModel("", schema.Attributes(attr.String("x")))
		})
	})
}

type identMixin struct{}

func (identMixin) Attributes() []schema.Attr {
	return []schema.Attr{
		attr.Integer("id").ReadOnly(),
		attr.UID("documentId"),
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	article := schema.MustModel("api::article.article",
		schema.Attributes(
			attr.String("title"),
			attr.Relation("author", "api::author.author"),
		),
	)
	author := schema.MustModel("api::author.author",
		schema.Attributes(attr.String("name")),
	)

	t.Run("add and lookup", func(t *testing.T) {
		t.Parallel()

		reg := schema.NewRegistry()
		require.NoError(t, reg.Add(article, author))
		assert.Equal(t, 2, reg.Len())

		m, ok := reg.Model("api::article.article")
		require.True(t, ok)
		assert.Equal(t, article, m)

		_, ok = reg.Model("api::missing.missing")
		assert.False(t, ok)

		models := reg.Models()
		require.Len(t, models, 2)
		assert.Equal(t, "api::article.article", models[0].UID())
		assert.Equal(t, "api::author.author", models[1].UID())
	})

	t.Run("duplicate add fails", func(t *testing.T) {
		t.Parallel()

		reg := schema.NewRegistry()
		require.NoError(t, reg.Add(article))
		err := reg.Add(article)
		require.Error(t, err)
		assert.True(t, fieldgate.IsSchemaError(err))
	})

	t.Run("MustModel panics on unknown", func(t *testing.T) {
		t.Parallel()

		reg := schema.NewRegistry()
		assert.Panics(t, func() {
			reg.MustModel("api::missing.missing")
		})
	})

	t.Run("Reset replaces content", func(t *testing.T) {
		t.Parallel()

		reg := schema.NewRegistry()
		require.NoError(t, reg.Add(article, author))
		reg.Reset(author)
		assert.Equal(t, 1, reg.Len())
		_, ok := reg.Model("api::article.article")
		assert.False(t, ok)
	})

	t.Run("LookupFunc adapter", func(t *testing.T) {
		t.Parallel()

		reg := schema.NewRegistry()
		require.NoError(t, reg.Add(article))
		var lk schema.Lookup = schema.LookupFunc(func(uid string) (*schema.Model, bool) {
			return reg.Model(uid)
		})
		m, ok := lk.Model("api::article.article")
		require.True(t, ok)
		assert.Equal(t, article, m)
	})
}

func TestRegistryValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid graph", func(t *testing.T) {
		t.Parallel()

		reg := schema.NewRegistry()
		reg.MustAdd(
			schema.MustModel("api::article.article",
				schema.Attributes(
					attr.Relation("author", "api::author.author"),
					attr.Component("seo", "shared.seo"),
					attr.DynamicZone("blocks", "blocks.hero"),
				),
			),
			schema.MustModel("api::author.author"),
			schema.MustModel("shared.seo"),
			schema.MustModel("blocks.hero"),
		)
		assert.NoError(t, reg.Validate())
	})

	t.Run("dangling relation target", func(t *testing.T) {
		t.Parallel()

		reg := schema.NewRegistry()
		reg.MustAdd(
			schema.MustModel("api::article.article",
				schema.Attributes(attr.Relation("author", "api::author.author")),
			),
		)
		err := reg.Validate()
		require.Error(t, err)
		assert.True(t, fieldgate.IsSchemaError(err))
		assert.True(t, fieldgate.IsUnknownModel(err))
		assert.Contains(t, err.Error(), "api::author.author")
	})

	t.Run("all problems reported together", func(t *testing.T) {
		t.Parallel()

		reg := schema.NewRegistry()
		reg.MustAdd(
			schema.MustModel("api::article.article",
				schema.Attributes(
					attr.Relation("author", "api::author.author"),
					attr.DynamicZone("blocks", "blocks.hero", "blocks.quote"),
				),
			),
			schema.MustModel("blocks.hero"),
		)
		err := reg.Validate()
		require.Error(t, err)
		var agg *fieldgate.AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 2)
		assert.Contains(t, err.Error(), "api::author.author")
		assert.Contains(t, err.Error(), "blocks.quote")
	})
}
