package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/errors"
)

// newBaseDir returns a base directory with its exports subdirectory created.
func newBaseDir(t *testing.T) string {
	t.Helper()
	baseDir := t.TempDir()
	if err := os.MkdirAll(ExportsDir(baseDir), 0700); err != nil {
		t.Fatalf("failed to create exports dir: %v", err)
	}
	return baseDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestValidatePath_TraversalRejected(t *testing.T) {
	baseDir := newBaseDir(t)
	cfg := config.DefaultConfig()

	tests := []struct {
		name string
		path string
	}{
		{"parent traversal", "../backup.jsonl"},
		{"deep traversal", "../../etc/backup.jsonl"},
		{"mid-path traversal", filepath.Join(ExportsDir(baseDir), "..", "exports", "x.jsonl")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePath(tc.path, PathCheckWrite, ExtJSONL, baseDir, cfg)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestValidatePath_ExtensionRequired(t *testing.T) {
	baseDir := newBaseDir(t)
	cfg := config.DefaultConfig()
	dir := ExportsDir(baseDir)

	tests := []struct {
		name string
		path string
		ext  string
	}{
		{"no extension", filepath.Join(dir, "backup"), ExtJSONL},
		{"json for jsonl", filepath.Join(dir, "backup.json"), ExtJSONL},
		{"jsonl for html", filepath.Join(dir, "report.jsonl"), ExtHTML},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePath(tc.path, PathCheckWrite, tc.ext, baseDir, cfg)
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got: %v", err)
			}
		})
	}
}

func TestValidatePath_DefaultExportsDir(t *testing.T) {
	baseDir := newBaseDir(t)
	cfg := config.DefaultConfig()

	if err := ValidatePath(filepath.Join(ExportsDir(baseDir), "out.jsonl"), PathCheckWrite, ExtJSONL, baseDir, cfg); err != nil {
		t.Errorf("expected exports dir to be allowed, got: %v", err)
	}
	if err := ValidatePath(filepath.Join(ExportsDir(baseDir), "alex.html"), PathCheckWrite, ExtHTML, baseDir, cfg); err != nil {
		t.Errorf("expected html report in exports dir to be allowed, got: %v", err)
	}

	err := ValidatePath(filepath.Join(t.TempDir(), "out.jsonl"), PathCheckWrite, ExtJSONL, baseDir, cfg)
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest outside allowed dirs, got: %v", err)
	}
}

func TestValidatePath_AllowUnsafePaths(t *testing.T) {
	baseDir := newBaseDir(t)
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	testFile := filepath.Join(tmpDir, "test.jsonl")
	writeFile(t, testFile, "{}")

	if err := ValidatePath(testFile, PathCheckRead, ExtJSONL, baseDir, cfg); err != nil {
		t.Errorf("expected success with AllowUnsafePaths=true, got: %v", err)
	}
	if err := ValidatePath(filepath.Join(tmpDir, "output.jsonl"), PathCheckWrite, ExtJSONL, baseDir, cfg); err != nil {
		t.Errorf("expected success for write with AllowUnsafePaths=true, got: %v", err)
	}
}

func TestValidatePath_AllowedPaths(t *testing.T) {
	baseDir := newBaseDir(t)
	allowed := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{allowed, "relative/ignored"}

	testFile := filepath.Join(allowed, "test.jsonl")
	writeFile(t, testFile, "{}")
	if err := ValidatePath(testFile, PathCheckRead, ExtJSONL, baseDir, cfg); err != nil {
		t.Errorf("expected success for path in AllowedPaths, got: %v", err)
	}

	otherFile := filepath.Join(t.TempDir(), "other.jsonl")
	writeFile(t, otherFile, "{}")
	if err := ValidatePath(otherFile, PathCheckRead, ExtJSONL, baseDir, cfg); err == nil {
		t.Error("expected error for path outside AllowedPaths, got nil")
	}
}

func TestValidatePath_FileNotFound_ReadMode(t *testing.T) {
	baseDir := newBaseDir(t)
	cfg := config.DefaultConfig()

	err := ValidatePath(filepath.Join(ExportsDir(baseDir), "missing.jsonl"), PathCheckRead, ExtJSONL, baseDir, cfg)
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got: %v", err)
	}
}

func TestValidatePath_SymlinkRejected(t *testing.T) {
	baseDir := newBaseDir(t)
	cfg := config.DefaultConfig()

	targetFile := filepath.Join(t.TempDir(), "secret.jsonl")
	writeFile(t, targetFile, "{}")

	symlink := filepath.Join(ExportsDir(baseDir), "link.jsonl")
	if err := os.Symlink(targetFile, symlink); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	for _, mode := range []PathCheckMode{PathCheckRead, PathCheckWrite} {
		err := ValidatePath(symlink, mode, ExtJSONL, baseDir, cfg)
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("mode %d: expected ErrInvalidRequest, got: %v", mode, err)
		}
	}

	// AllowUnsafePaths lifts the directory rule, not the symlink rule
	cfg.AllowUnsafePaths = true
	if err := ValidatePath(symlink, PathCheckRead, ExtJSONL, baseDir, cfg); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest with AllowUnsafePaths, got: %v", err)
	}
}

func TestValidatePath_NestedPathRejected(t *testing.T) {
	baseDir := newBaseDir(t)
	cfg := config.DefaultConfig()

	subDir := filepath.Join(ExportsDir(baseDir), "subdir")
	if err := os.MkdirAll(subDir, 0700); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	nested := filepath.Join(subDir, "test.jsonl")
	writeFile(t, nested, "{}")

	for _, mode := range []PathCheckMode{PathCheckRead, PathCheckWrite} {
		err := ValidatePath(nested, mode, ExtJSONL, baseDir, cfg)
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("mode %d: expected ErrInvalidRequest, got: %v", mode, err)
		}
	}
}

func TestContainsTraversal(t *testing.T) {
	tests := []struct {
		path     string
		contains bool
	}{
		{"/home/user/file.jsonl", false},
		{"../file.jsonl", true},
		{"/home/../etc/passwd", true},
		{"./file.jsonl", false},
		{"file..name.jsonl", false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := containsTraversal(tc.path); got != tc.contains {
				t.Errorf("containsTraversal(%q) = %v, want %v", tc.path, got, tc.contains)
			}
		})
	}
}

func TestSanitizeForFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"alex yeoh", "alex-yeoh"},
		{"path/to/file", "path-to-file"},
		{"path\\to\\file", "path-to-file"},
		{"foo..bar", "foo-bar"},
		{"../../../etc/passwd", "etc-passwd"},
		{"foo\x00bar", "foobar"},
		{"../../..", "unnamed"},
		{"a---b", "a-b"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := SanitizeForFilename(tc.input); got != tc.expected {
				t.Errorf("SanitizeForFilename(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
