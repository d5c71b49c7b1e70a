package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[motion]
selectBehavior = "move"

[motion.scopes.string]
wordChars = "-."

[toast]
origin = "bottomRight"
maxWidth = 40
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"motion.selectBehavior", "move"},
		{"motion.scopes.string.wordChars", "-."},
		{"toast.origin", "bottomRight"},
		{"toast.maxWidth", int64(40)},
	}
	for _, tt := range tests {
		got, ok := GetByPath(config, tt.path)
		if !ok {
			t.Errorf("%s missing", tt.path)
			continue
		}
		if got != tt.want {
			t.Errorf("%s = %#v, want %#v", tt.path, got, tt.want)
		}
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/nope.toml").Load()
	if err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}
	if config != nil {
		t.Errorf("Load() = %v, want nil", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[toast]\norigin = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if !strings.Contains(perr.Error(), "line 2") {
		t.Errorf("Error() = %q, want line number", perr.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[logging]\nlevel = \"debug\"\n"))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if v, _ := GetByPath(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v", v)
	}
}

func TestTOMLLoader_Includes(t *testing.T) {
	t.Setenv("HXMOTION_TEST_SHARED", "shared")

	memfs := NewMemFS()
	memfs.AddFile("/cfg/main.toml", `
"@include" = ["base.toml", "/abs/$HXMOTION_TEST_SHARED.toml"]

[toast]
origin = "bottom"
`)
	memfs.AddFile("/cfg/base.toml", `
[toast]
origin = "bottomRight"
maxWidth = 30
`)
	memfs.AddFile("/abs/shared.toml", `
[logging]
level = "warn"

[toast]
maxWidth = 50
`)

	config, err := NewTOMLLoaderWithFS(memfs, "").LoadWithIncludes("/cfg/main.toml", 4)
	if err != nil {
		t.Fatalf("LoadWithIncludes() error = %v", err)
	}

	if _, ok := config[IncludeKey]; ok {
		t.Error("include key should be removed")
	}
	tests := []struct {
		path string
		want any
	}{
		{"toast.origin", "bottom"},
		{"toast.maxWidth", int64(50)},
		{"logging.level", "warn"},
	}
	for _, tt := range tests {
		if got, _ := GetByPath(config, tt.path); got != tt.want {
			t.Errorf("%s = %#v, want %#v", tt.path, got, tt.want)
		}
	}
}

func TestTOMLLoader_IncludeCycle(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = "b.toml"`)
	memfs.AddFile("/b.toml", `"@include" = "a.toml"`)

	_, err := NewTOMLLoaderWithFS(memfs, "").LoadWithIncludes("/a.toml", 5)
	if !errors.Is(err, ErrIncludeDepth) {
		t.Errorf("error = %v, want ErrIncludeDepth", err)
	}
}

func TestTOMLLoader_BadIncludeType(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = 3`)

	if _, err := NewTOMLLoaderWithFS(memfs, "").LoadWithIncludes("/a.toml", 5); err == nil {
		t.Error("expected error for non-string include")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"toast":   map[string]any{"origin": "bottom", "maxWidth": 60},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"toast": map[string]any{"maxWidth": 20},
		"motion": map[string]any{
			"scopes": map[string]any{"code": map[string]any{"wordChars": "-"}},
		},
	}

	got := DeepMerge(dst, src)

	checks := map[string]any{
		"toast.origin":                 "bottom",
		"toast.maxWidth":               20,
		"logging.level":                "info",
		"motion.scopes.code.wordChars": "-",
	}
	for path, want := range checks {
		if v, _ := GetByPath(got, path); v != want {
			t.Errorf("%s = %#v, want %#v", path, v, want)
		}
	}

	// Merged values are copies.
	src["motion"].(map[string]any)["scopes"].(map[string]any)["code"].(map[string]any)["wordChars"] = "x"
	if v, _ := GetByPath(got, "motion.scopes.code.wordChars"); v != "-" {
		t.Error("DeepMerge should not alias src maps")
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"a": map[string]any{"b": []any{map[string]any{"c": 1}}},
	}
	dst := Clone(src)
	dst["a"].(map[string]any)["b"].([]any)[0].(map[string]any)["c"] = 2

	if v := src["a"].(map[string]any)["b"].([]any)[0].(map[string]any)["c"]; v != 1 {
		t.Errorf("source mutated through clone: %v", v)
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
