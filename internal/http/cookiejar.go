package http

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// PersistentJar is a cookie jar that mirrors the server's cookies to a file
// so an authenticated session survives across process invocations. Only
// cookies for the configured server are persisted.
type PersistentJar struct {
	mu        sync.Mutex
	inner     *cookiejar.Jar
	path      string
	serverURL *url.URL
}

// savedCookie is the on-disk representation of one cookie.
type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewPersistentJar creates a jar persisted at path for the given server URL.
// If the file exists, previously saved cookies are loaded into the jar.
func NewPersistentJar(path, serverURL string) (*PersistentJar, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	jar := &PersistentJar{inner: inner, path: path, serverURL: u}
	if err := jar.load(); err != nil {
		// A corrupt session file must not block the client; the user
		// simply has to log in again.
		os.Remove(path)
	}
	return jar, nil
}

// SetCookies stores cookies and persists the server's cookies to disk.
func (j *PersistentJar) SetCookies(u *url.URL, cookies []*nethttp.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
	_ = j.persist()
}

// Cookies returns the cookies to send in a request to u.
func (j *PersistentJar) Cookies(u *url.URL) []*nethttp.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Clear drops all cookies for the server and removes the session file.
// Used by logout, which always tears the local session down.
func (j *PersistentJar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	expired := make([]*nethttp.Cookie, 0, 4)
	for _, c := range j.inner.Cookies(j.serverURL) {
		expired = append(expired, &nethttp.Cookie{Name: c.Name, Value: "", MaxAge: -1})
	}
	j.inner.SetCookies(j.serverURL, expired)
	os.Remove(j.path)
}

func (j *PersistentJar) load() error {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var saved []savedCookie
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	cookies := make([]*nethttp.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &nethttp.Cookie{Name: c.Name, Value: c.Value})
	}
	j.inner.SetCookies(j.serverURL, cookies)
	return nil
}

// persist writes the server's cookies to disk. Caller holds j.mu.
func (j *PersistentJar) persist() error {
	cookies := j.inner.Cookies(j.serverURL)
	saved := make([]savedCookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, savedCookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0700); err != nil {
		return err
	}

	// Temp file + rename keeps the session file whole if we crash mid-write.
	tmpPath := j.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, j.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
