// Package staging manages the shared staging directory that incoming image
// attachments are written into before a submission is archived. The area is
// an explicit handle passed to the intake and archive stages; it is shared
// by all in-flight submissions, so an interrupted submission can leave
// orphan files behind without corrupting anyone else's namespace.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/metco-eng/fieldvault/internal/filex"
)

// allowedExtensions is the fixed image extension allow-list. Content is not
// sniffed; a disallowed extension means the file is silently skipped.
var allowedExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {},
}

// Allowed reports whether filename carries an allowed image extension.
func Allowed(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[ext]
	return ok
}

// Area is a handle on the shared staging directory.
type Area struct {
	dir string

	mu   sync.Mutex
	last time.Time
}

// New ensures the staging directory exists and returns a handle on it.
func New(dir string) (*Area, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("staging area: %w", err)
	}
	return &Area{dir: abs}, nil
}

// Dir returns the absolute staging directory path.
func (a *Area) Dir() string {
	return a.dir
}

// Path returns the absolute path of a staged filename.
func (a *Area) Path(name string) string {
	return filepath.Join(a.dir, name)
}

// nextStamp issues a strictly increasing timestamp at microsecond
// granularity. Two saves landing in the same microsecond would otherwise
// collide on identical original names.
func (a *Area) nextStamp() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now().Truncate(time.Microsecond)
	if !now.After(a.last) {
		now = a.last.Add(time.Microsecond)
	}
	a.last = now
	return now
}

// StagedName builds the staged filename for an upload: a microsecond
// timestamp prefix plus the sanitized original name.
func (a *Area) StagedName(original string) string {
	ts := a.nextStamp()
	stamp := ts.Format("20060102150405") + fmt.Sprintf("%06d", ts.Nanosecond()/1000)
	return stamp + "_" + filex.SanitizeName(filepath.Base(original))
}

// Stage writes one upload stream into the area under a fresh staged name
// and returns that name. The extension allow-list is not consulted here;
// that is the caller's concern (see Allowed).
func (a *Area) Stage(original string, src io.Reader) (string, error) {
	name := a.StagedName(original)

	dst, err := os.OpenFile(a.Path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return name, nil
}
