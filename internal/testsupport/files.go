package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path, including parent directories, filled with size
// bytes of a repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = 0x42
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MediaTree creates one small file per relative name under a fresh temp
// directory and returns the directory.
func MediaTree(t testing.TB, names ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, name := range names {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), 16)
	}
	return root
}
