package http

import (
	nethttp "net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

const testServerURL = "http://127.0.0.1:5000"

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestPersistentJarSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	u := mustParse(t, testServerURL)

	jar, err := NewPersistentJar(path, testServerURL)
	if err != nil {
		t.Fatalf("NewPersistentJar: %v", err)
	}
	jar.SetCookies(u, []*nethttp.Cookie{{Name: "session", Value: "abc123"}})

	// A fresh jar from the same file sees the cookie, the way a new
	// process invocation would.
	reopened, err := NewPersistentJar(path, testServerURL)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	cookies := reopened.Cookies(u)
	if len(cookies) != 1 || cookies[0].Name != "session" || cookies[0].Value != "abc123" {
		t.Errorf("cookies = %v", cookies)
	}
}

func TestPersistentJarFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	u := mustParse(t, testServerURL)

	jar, err := NewPersistentJar(path, testServerURL)
	if err != nil {
		t.Fatalf("NewPersistentJar: %v", err)
	}
	jar.SetCookies(u, []*nethttp.Cookie{{Name: "session", Value: "abc123"}})

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
}

func TestPersistentJarClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	u := mustParse(t, testServerURL)

	jar, err := NewPersistentJar(path, testServerURL)
	if err != nil {
		t.Fatalf("NewPersistentJar: %v", err)
	}
	jar.SetCookies(u, []*nethttp.Cookie{{Name: "session", Value: "abc123"}})

	jar.Clear()

	if cookies := jar.Cookies(u); len(cookies) != 0 {
		t.Errorf("cookies after clear = %v", cookies)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be removed by Clear")
	}
}

// A corrupt session file must not block startup; it is discarded and
// the user logs in again.
func TestPersistentJarCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	jar, err := NewPersistentJar(path, testServerURL)
	if err != nil {
		t.Fatalf("NewPersistentJar: %v", err)
	}
	if cookies := jar.Cookies(mustParse(t, testServerURL)); len(cookies) != 0 {
		t.Errorf("cookies from corrupt file = %v", cookies)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt session file should be removed")
	}
}

func TestPersistentJarIgnoresOtherHosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")

	jar, err := NewPersistentJar(path, testServerURL)
	if err != nil {
		t.Fatalf("NewPersistentJar: %v", err)
	}
	other := mustParse(t, "http://example.org")
	jar.SetCookies(other, []*nethttp.Cookie{{Name: "tracker", Value: "x"}})

	reopened, err := NewPersistentJar(path, testServerURL)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if cookies := reopened.Cookies(mustParse(t, testServerURL)); len(cookies) != 0 {
		t.Errorf("foreign cookies persisted for the server: %v", cookies)
	}
}
