package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func relPaths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func TestDiscoverSortedJavaOnly(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/b/Zeta.java":  "class Zeta {}",
		"src/a/Alpha.java": "class Alpha {}",
		"README.md":        "readme",
		"pom.xml":          "<project/>",
	})

	files, err := Discover(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	got := relPaths(files)
	want := []string{"src/a/Alpha.java", "src/b/Zeta.java"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("files = %v, want %v", got, want)
	}
	for _, f := range files {
		if !filepath.IsAbs(f.Path) {
			t.Errorf("path %q not absolute", f.Path)
		}
	}
}

func TestDiscoverSkipsBuildDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Main.java":               "class Main {}",
		"target/classes/Gen.java":     "class Gen {}",
		"build/generated/Stub.java":   "class Stub {}",
		".git/hooks/Fake.java":        "class Fake {}",
		"node_modules/x/Vendor.java":  "class Vendor {}",
	})

	files, err := Discover(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if got := relPaths(files); len(got) != 1 || got[0] != "src/Main.java" {
		t.Errorf("files = %v, want only src/Main.java", got)
	}
}

func TestDiscoverIgnorePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Main.java":          "class Main {}",
		"testdata/Fixture.java":  "class Fixture {}",
		"legacy/v1/Old.java":     "class Old {}",
	})

	files, err := Discover(context.Background(), root, &Options{
		IgnorePatterns: []string{"testdata", "legacy"},
	})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if got := relPaths(files); len(got) != 1 || got[0] != "src/Main.java" {
		t.Errorf("files = %v", got)
	}
}

func TestDiscoverIgnoreFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Main.java":        "class Main {}",
		"vendored/Dep.java":    "class Dep {}",
		".javagraphignore":     "# comment\n\nvendored\n",
	})

	files, err := Discover(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if got := relPaths(files); len(got) != 1 || got[0] != "src/Main.java" {
		t.Errorf("files = %v", got)
	}
}

func TestDiscoverCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"A.java": "class A {}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Discover(ctx, root, nil); err == nil {
		t.Fatal("expected context error")
	}
}
