package load_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/schema"
	"github.com/syssam/fieldgate/schema/attr"
	"github.com/syssam/fieldgate/schema/load"
)

func TestReadFile_YAML(t *testing.T) {
	t.Parallel()
	defs, err := load.ReadFile(filepath.Join("testdata", "article.yaml"))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	article := defs[0]
	assert.Equal(t, "api::article.article", article.UID)
	assert.Equal(t, "Article", article.DisplayName)
	assert.True(t, article.Content)
	require.Len(t, article.Attributes, 8)

	status := article.Attributes[3]
	assert.Equal(t, "status", status.Name)
	assert.Equal(t, "enumeration", status.Type)
	assert.Equal(t, []string{"draft", "review", "published"}, status.Enum)
	assert.Equal(t, "draft", status.Default)

	views := article.Attributes[4]
	assert.True(t, views.Hidden)
	assert.Equal(t, "Maintained by the read counter job", views.Comment)

	author := defs[1]
	assert.Equal(t, "api::author.author", author.UID)
	assert.True(t, author.Attributes[2].Many)
}

func TestReadFile_JSON(t *testing.T) {
	t.Parallel()
	defs, err := load.ReadFile(filepath.Join("testdata", "admin.json"))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	user := defs[0]
	assert.Equal(t, "admin::user", user.UID)
	assert.Equal(t, "password", user.Attributes[4].Type)
	assert.True(t, user.Attributes[5].Hidden)
	assert.Equal(t, "admin::role", user.Attributes[6].Target)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := load.Decode("models.toml", []byte("uid = 'x'"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported definition format")

	_, err = load.Decode("models.json", []byte("{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse models.json")

	_, err = load.Decode("models.yaml", []byte("uid: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse models.yaml")
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	t.Run("content definitions carry the standard attributes", func(t *testing.T) {
		t.Parallel()
		m, err := load.NewModel(&load.Definition{
			UID:     "api::page.page",
			Content: true,
			Attributes: []*load.AttributeDefinition{
				{Name: "title", Type: "string", Required: true},
			},
		})
		require.NoError(t, err)
		for _, name := range []string{"id", "documentId", "createdAt", "updatedAt", "publishedAt", "createdBy", "updatedBy", "title"} {
			_, ok := m.Attribute(name)
			assert.True(t, ok, "missing attribute %s", name)
		}
		assert.Equal(t, []string{"createdBy", "updatedBy"}, m.WritableNonVisible())
	})

	t.Run("flags map onto the builders", func(t *testing.T) {
		t.Parallel()
		m, err := load.NewModel(&load.Definition{
			UID: "api::widget.widget",
			Attributes: []*load.AttributeDefinition{
				{Name: "serial", Type: "string", ReadOnly: true},
				{Name: "token", Type: "string", Sensitive: true, NonVisible: true},
				{Name: "internal", Type: "json", Hidden: true},
				{Name: "owner", Type: "relation", Target: "admin::user", Many: true},
				{Name: "gallery", Type: "component", Target: "shared.media", Many: true},
			},
		})
		require.NoError(t, err)

		serial, _ := m.Attribute("serial")
		assert.False(t, serial.Writable())

		token, _ := m.Attribute("token")
		assert.True(t, token.Sensitive())
		assert.False(t, token.Visible())

		internal, _ := m.Attribute("internal")
		assert.True(t, internal.Hidden())
		assert.Equal(t, attr.TypeJSON, internal.Type())

		owner, _ := m.Attribute("owner")
		assert.Equal(t, attr.KindRelation, owner.Kind())
		assert.True(t, owner.Many())

		gallery, _ := m.Attribute("gallery")
		assert.Equal(t, attr.KindComponent, gallery.Kind())
		assert.True(t, gallery.Many())
	})

	t.Run("rejects malformed attributes", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name string
			def  *load.AttributeDefinition
			want string
		}{
			{
				name: "unknown type",
				def:  &load.AttributeDefinition{Name: "x", Type: "decimal"},
				want: `unknown type "decimal"`,
			},
			{
				name: "scalar with target",
				def:  &load.AttributeDefinition{Name: "x", Type: "string", Target: "api::y.y"},
				want: "target is only valid",
			},
			{
				name: "scalar with many",
				def:  &load.AttributeDefinition{Name: "x", Type: "string", Many: true},
				want: "many is only valid",
			},
			{
				name: "sensitive relation",
				def:  &load.AttributeDefinition{Name: "x", Type: "relation", Target: "api::y.y", Sensitive: true},
				want: "cannot be sensitive",
			},
			{
				name: "enum default kind",
				def:  &load.AttributeDefinition{Name: "x", Type: "enumeration", Enum: []string{"a"}, Default: 1},
				want: "default must be a string",
			},
			{
				name: "relation without target",
				def:  &load.AttributeDefinition{Name: "x", Type: "relation"},
				want: "relation target cannot be empty",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				_, err := load.NewModel(&load.Definition{
					UID:        "api::bad.bad",
					Attributes: []*load.AttributeDefinition{tt.def},
				})
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.want)
			})
		}
	})
}

func TestDir(t *testing.T) {
	t.Parallel()
	reg, err := load.Dir("testdata")
	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())

	article := reg.MustModel("api::article.article")
	assert.Equal(t, "Article", article.DisplayName())
	assert.Equal(t, "articles", article.Plural())

	title, ok := article.Attribute("title")
	require.True(t, ok)
	assert.True(t, title.Required())

	status, ok := article.Attribute("status")
	require.True(t, ok)
	assert.Equal(t, []string{"draft", "review", "published"}, status.Values())
	assert.Equal(t, "draft", status.Default())

	createdBy, ok := article.Attribute("createdBy")
	require.True(t, ok)
	assert.Equal(t, fieldgate.AdminUserUID, createdBy.Target())

	assert.Equal(t, []string{"viewCount"}, article.HiddenAttributes())

	user := reg.MustModel(fieldgate.AdminUserUID)
	assert.Equal(t, []string{"resetToken"}, user.HiddenAttributes())
	assert.Equal(t, []string{"password"}, user.SensitiveAttributes())
}

func TestCompile_DanglingTarget(t *testing.T) {
	t.Parallel()
	_, err := load.Compile(&load.Definition{
		UID: "api::orphan.orphan",
		Attributes: []*load.AttributeDefinition{
			{Name: "parent", Type: "relation", Target: "api::missing.missing"},
		},
	})
	require.Error(t, err)
	assert.True(t, fieldgate.IsSchemaError(err))
	assert.Contains(t, err.Error(), "api::missing.missing")
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()
	src := schema.MustModel("api::event.event",
		schema.Attributes(
			attr.String("name").Required(),
			attr.Enum("kind").Values("meetup", "talk").Default("talk"),
			attr.Password("joinCode"),
			attr.Integer("capacity").Default(50),
			attr.Relation("venue", "api::venue.venue"),
			attr.DynamicZone("agenda", "blocks.slot").Hidden(),
		),
	)

	def := load.Export(src)
	assert.Equal(t, "api::event.event", def.UID)
	require.Len(t, def.Attributes, 6)

	join := def.Attributes[2]
	assert.Equal(t, "password", join.Type)
	assert.False(t, join.Sensitive, "password type implies sensitivity")

	got, err := load.NewModel(def)
	require.NoError(t, err)
	assert.Equal(t, src.AttributeNames(), got.AttributeNames())

	kind, _ := got.Attribute("kind")
	assert.Equal(t, []string{"meetup", "talk"}, kind.Values())

	code, _ := got.Attribute("joinCode")
	assert.True(t, code.Sensitive())

	agenda, _ := got.Attribute("agenda")
	assert.Equal(t, attr.KindDynamicZone, agenda.Kind())
	assert.True(t, agenda.Hidden())
	assert.Equal(t, []string{"blocks.slot"}, agenda.Components())
}

func TestExport_DropsGeneratedDefaults(t *testing.T) {
	t.Parallel()
	m, err := load.NewModel(&load.Definition{
		UID:     "api::note.note",
		Content: true,
	})
	require.NoError(t, err)

	def := load.Export(m)
	for _, ad := range def.Attributes {
		if ad.Name == "documentId" {
			assert.Nil(t, ad.Default)
			assert.True(t, ad.ReadOnly)
			return
		}
	}
	t.Fatal("documentId not exported")
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		defs, err := load.ReadDir("testdata")
		require.NoError(t, err)

		data, err := load.EncodeSnapshot(defs...)
		require.NoError(t, err)

		decoded, err := load.DecodeSnapshot(data)
		require.NoError(t, err)
		require.Len(t, decoded, len(defs))

		reg, err := load.Compile(decoded...)
		require.NoError(t, err)
		assert.Equal(t, 7, reg.Len())
	})

	t.Run("version mismatch", func(t *testing.T) {
		t.Parallel()
		data, err := msgpack.Marshal(map[string]any{"version": 99})
		require.NoError(t, err)

		_, err = load.DecodeSnapshot(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "snapshot version 99")
	})

	t.Run("corrupt data", func(t *testing.T) {
		t.Parallel()
		_, err := load.DecodeSnapshot([]byte{0xc1})
		require.Error(t, err)
	})
}

func TestWatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write("a.yaml", "uid: sandbox.alpha\nattributes:\n  - name: title\n    type: string\n")

	reg := schema.NewRegistry()
	w, err := load.Watch(dir, reg)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, 1, reg.Len())

	write("b.yaml", "uid: sandbox.beta\nattributes:\n  - name: label\n    type: string\n")
	assert.Eventually(t, func() bool { return reg.Len() == 2 }, 3*time.Second, 20*time.Millisecond)

	// A broken set must not clobber the live models.
	write("b.yaml", "uid: sandbox.beta\nattributes:\n  - name: parent\n    type: relation\n    target: sandbox.missing\n")
	assert.Never(t, func() bool { return reg.Len() != 2 }, 500*time.Millisecond, 50*time.Millisecond)
	_, ok := reg.Model("sandbox.beta")
	assert.True(t, ok)

	write("b.yaml", "uid: sandbox.beta\nattributes:\n  - name: label\n    type: string\n---\nuid: sandbox.gamma\nattributes:\n  - name: label\n    type: string\n")
	assert.Eventually(t, func() bool { return reg.Len() == 3 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatch_InitialLoadError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("uid: [broken"), 0o644))

	_, err := load.Watch(dir, schema.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
