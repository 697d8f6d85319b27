package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCatalog(t, `
[[options]]
id = "apple"
label = "Apple"
group = "Fruit"

[[options]]
id = "drinks"
label = "Drinks"

  [[options.submenu]]
  id = "tea"
  label = "Tea"

  [[options.submenu]]
  id = "coffee"
  disabled = true

[[options]]
id = "later"
label = "Coming soon"
menu = true
`)

	opts, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, opts, 3)

	assert.Equal(t, Record{ID: "apple", Label: "Apple", Group: "Fruit"}, opts[0].Value)
	assert.False(t, opts[0].IsMenu())

	drinks := opts[1]
	require.True(t, drinks.IsMenu())
	require.Len(t, drinks.SubMenu, 2)
	assert.Equal(t, "Tea", drinks.SubMenu[0].Value.Label)
	assert.Equal(t, "coffee", drinks.SubMenu[1].Value.Label, "label defaults to id")
	assert.True(t, drinks.SubMenu[1].Disabled)

	assert.True(t, opts[2].IsMenu())
	assert.False(t, opts[2].CanDrill())
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "missing id",
			content: "[[options]]\nlabel = \"No id\"\n",
			want:    ErrMissingID,
		},
		{
			name: "duplicate id across levels",
			content: `
[[options]]
id = "a"

[[options]]
id = "menu"
  [[options.submenu]]
  id = "a"
`,
			want: ErrDuplicateID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeCatalog(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	_, err := LoadFile(writeCatalog(t, "[[options]\n"))
	require.Error(t, err)
}

func TestAccessors(t *testing.T) {
	r := Record{ID: "x", Label: "Ex", Group: "G"}
	assert.Equal(t, "x", Key(r))
	assert.Equal(t, "Ex", Label(r))
	assert.Equal(t, "G", Group(r))
}
