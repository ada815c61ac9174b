// Package imagestore persists uploaded tour images on local disk and
// serves them back under a public base URL.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Disk writes images under dir and returns URLs rooted at baseURL
// (e.g. "/uploads"). Keys are "tours/{unix-millis}_{filename}" so
// repeated uploads of the same file never collide.
type Disk struct {
	dir     string
	baseURL string
	now     func() time.Time
}

func NewDisk(dir, baseURL string) *Disk {
	return &Disk{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

func (d *Disk) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := fmt.Sprintf("tours/%d_%s", d.now().UnixMilli(), sanitize(filename))
	dst := filepath.Join(d.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("imagestore: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("imagestore: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("imagestore: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("imagestore: %w", err)
	}
	return d.baseURL + "/" + key, nil
}

// Delete removes the file behind a previously issued URL. Missing files
// and foreign URLs are not errors: the catalog row may reference an
// external image or one already cleaned up.
func (d *Disk) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, ok := strings.CutPrefix(url, d.baseURL+"/")
	if !ok {
		log.Debug().Str("url", url).Msg("skipping delete of external image")
		return nil
	}
	dst := filepath.Join(d.dir, filepath.FromSlash(path.Clean(key)))
	if !strings.HasPrefix(dst, filepath.Clean(d.dir)+string(os.PathSeparator)) {
		return fmt.Errorf("imagestore: key escapes store: %q", key)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("imagestore: %w", err)
	}
	return nil
}

// sanitize keeps only the base name and replaces characters that are
// awkward in URLs or on disk.
func sanitize(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}
