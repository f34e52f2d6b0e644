package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const setCookiePrefix = "Set-Cookie: "

// FilePersister stores the session cookies as Set-Cookie lines in a file,
// mirroring what a browser would keep.
type FilePersister struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path, ttl: CookieTTL, now: time.Now}
}

// Path returns the session file location.
func (f *FilePersister) Path() string {
	return f.path
}

func (f *FilePersister) Save(_ context.Context, p Persisted) error {
	cookies, err := sessionCookies(p, f.now(), f.ttl)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, c := range cookies {
		buf.WriteString(setCookiePrefix)
		buf.WriteString(c.String())
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FilePersister) Load(ctx context.Context) (Persisted, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Persisted{}, ErrNoCredential
		}
		return Persisted{}, fmt.Errorf("read session file: %w", err)
	}

	now := f.now()
	var p Persisted
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, setCookiePrefix) {
			continue
		}
		cookie, err := http.ParseSetCookie(strings.TrimPrefix(line, setCookiePrefix))
		if err != nil {
			slog.Debug("skipping malformed session cookie", "path", f.path, "error", err)
			continue
		}
		if !cookie.Expires.IsZero() && !now.Before(cookie.Expires) {
			continue
		}
		switch cookie.Name {
		case TokenCookie:
			p.Token = cookie.Value
		case UserCookie:
			identity, err := decodeIdentity(cookie.Value)
			if err != nil {
				slog.Debug("ignoring unreadable identity cookie", "error", err)
				continue
			}
			p.Identity = identity
		}
	}

	if p.Token == "" {
		_ = f.Delete(ctx)
		return Persisted{}, ErrNoCredential
	}
	return p, nil
}

func (f *FilePersister) Delete(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
