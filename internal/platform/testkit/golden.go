package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateGolden reports whether golden files should be rewritten instead of compared
func UpdateGolden() bool { return os.Getenv("UPDATE_GOLDEN") != "" }

// Golden compares got against the golden file at path.
// With UPDATE_GOLDEN set the file is (re)written and the test passes.
func Golden(t *testing.T, path, got string) {
	t.Helper()

	if UpdateGolden() {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("golden write %s: %v", path, err)
		}
		t.Logf("updated golden file %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("golden file %s: %v\nrun with UPDATE_GOLDEN=1 to generate it", path, err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s\nrun with UPDATE_GOLDEN=1 to refresh", path, diff)
	}
}
