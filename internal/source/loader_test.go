package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestDetectFormat tests extension based format detection.
func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path   string
		expect Format
	}{
		{"items.yaml", FormatYAML},
		{"items.YML", FormatYAML},
		{"items.json", FormatJSON},
		{"items.ndjson", FormatNDJSON},
		{"items.jsonl", FormatNDJSON},
		{"items.txt", FormatText},
		{"items", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expect, DetectFormat(tt.path))
		})
	}
}

// TestDecode tests every supported format.
func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		expect []Entry
	}{
		{
			name:   "yaml mappings and bare strings",
			format: FormatYAML,
			input: `
- title: Fruits
  header: true
- apple
- title: banana
  detail: yellow
  disabled: true
`,
			expect: []Entry{
				{Title: "Fruits", Header: true},
				{Title: "apple"},
				{Title: "banana", Detail: "yellow", Disabled: true},
			},
		},
		{
			name:   "json array",
			format: FormatJSON,
			input:  `["apple", {"title": "banana", "detail": "yellow"}]`,
			expect: []Entry{{Title: "apple"}, {Title: "banana", Detail: "yellow"}},
		},
		{
			name:   "ndjson skips blank lines",
			format: FormatNDJSON,
			input:  "{\"title\":\"apple\"}\n\n\"banana\"\r\n",
			expect: []Entry{{Title: "apple"}, {Title: "banana"}},
		},
		{
			name:   "text headers and details",
			format: FormatText,
			input:  "# Fruits\napple\tred\n  \nbanana\n",
			expect: []Entry{
				{Title: "Fruits", Header: true},
				{Title: "apple", Detail: "red"},
				{Title: "banana"},
			},
		},
		{
			name:   "empty yaml",
			format: FormatYAML,
			input:  "",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Decode(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, entries)
		})
	}
}

// TestDecode_Errors tests malformed input and unknown formats.
func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("{\"title\":\"ok\"}\n{broken\n"), FormatNDJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = Decode(strings.NewReader("{"), FormatJSON)
	require.Error(t, err)

	_, err = Decode(strings.NewReader(""), Format("toml"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

// TestLoad tests reading a file from disk.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "list.yaml", "- one\n- two\n")

	entries, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Title: "one"}, {Title: "two"}}, entries)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoadAll tests that concurrent loading keeps argument order.
func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.txt", "a1\na2\n"),
		writeFile(t, dir, "b.json", `["b1"]`),
		writeFile(t, dir, "c.yaml", "- c1\n- c2\n- c3\n"),
	}

	entries, err := LoadAll(context.Background(), paths)
	require.NoError(t, err)

	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"a1", "a2", "b1", "c1", "c2", "c3"}, titles)
}

// TestLoadAll_Errors tests missing paths and a failing file.
func TestLoadAll_Errors(t *testing.T) {
	_, err := LoadAll(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoPaths)

	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "ok\n")
	_, err = LoadAll(context.Background(), []string{good, filepath.Join(dir, "nope.txt")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestSelectable tests which entries take part in navigation.
func TestSelectable(t *testing.T) {
	assert.True(t, Selectable(Entry{Title: "a"}))
	assert.False(t, Selectable(Entry{Title: "a", Header: true}))
	assert.False(t, Selectable(Entry{Title: "a", Disabled: true}))
}
