package testutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmarkko/svcfail/testutils"
)

func TestFindProjectRoot_UsesGoMod(t *testing.T) {
	root := t.TempDir()
	// go.mod is the root marker
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/tmp\n"), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdirs: %v", err)
	}

	got, err := testutils.FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	if got != root {
		t.Fatalf("root = %s; want %s", got, root)
	}
}

func TestLoadDotEnv_FromCWD(t *testing.T) {
	tmp := t.TempDir()
	key := "SVCFAIL_TESTUTILS_CWD"
	writeDotEnv(t, tmp, key, "here")
	chdir(t, tmp)

	if err := testutils.LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv(CWD): %v", err)
	}
	if got := os.Getenv(key); got != "here" {
		t.Fatalf("got %q; want %q", got, "here")
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })
}

func TestLoadDotEnv_FromProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/tmp\n"), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}
	key := "SVCFAIL_TESTUTILS_ROOT"
	writeDotEnv(t, root, key, "found-at-root")

	// deep nested dir without its own .env, so the CWD path fails first
	nested := filepath.Join(root, "x", "y", "z")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdirs: %v", err)
	}
	chdir(t, nested)

	if err := testutils.LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv(project root): %v", err)
	}
	if got := os.Getenv(key); got != "found-at-root" {
		t.Fatalf("got %q; want %q", got, "found-at-root")
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	tmp := t.TempDir()
	key := "SVCFAIL_TESTUTILS_NO_OVERRIDE"
	writeDotEnv(t, tmp, key, "fromfile")
	chdir(t, tmp)

	// pre-set should win; godotenv.Load doesn't override by default
	t.Setenv(key, "preset")

	if err := testutils.LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(key); got != "preset" {
		t.Fatalf("expected pre-set env to win, got %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	key := "SVCFAIL_TESTUTILS_GETENV"
	def := "default"

	if got := testutils.GetEnv(key, def); got != def {
		t.Fatalf("GetEnv when unset: got %q; want %q", got, def)
	}

	t.Setenv(key, "set")
	if got := testutils.GetEnv(key, def); got != "set" {
		t.Fatalf("GetEnv when set: got %q; want %q", got, "set")
	}
}

// --- helpers ---

func writeDotEnv(t *testing.T, dir, key, val string) string {
	t.Helper()
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte(key+"="+val+"\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	return p
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
