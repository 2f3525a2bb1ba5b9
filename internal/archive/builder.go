// Package archive turns a finished per-submission output directory into a
// single zip blob, pulling the submission's staged images in first.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/metco-eng/fieldvault/internal/filex"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/staging"
)

// Builder archives submissions out of a given staging area.
type Builder struct {
	area *staging.Area
}

func NewBuilder(area *staging.Area) *Builder {
	return &Builder{area: area}
}

// Build moves every staged image referenced by the attachment set into
// outputDir and compresses the whole directory into <base>.zip.
//
// The move is destructive: after a successful Build the staging area no
// longer holds the images. Any failure is fatal for the submission and
// already-moved images are not rolled back.
func (b *Builder) Build(outputDir, base string, att *models.AttachmentSet) (string, []byte, error) {
	for _, name := range att.All() {
		if err := filex.MoveFile(b.area.Path(name), filepath.Join(outputDir, name)); err != nil {
			return "", nil, fmt.Errorf("archive images: %w", err)
		}
	}

	content, err := zipDir(outputDir)
	if err != nil {
		return "", nil, fmt.Errorf("compress %s: %w", outputDir, err)
	}

	return base + ".zip", content, nil
}

// zipDir compresses every regular file under dir (paths relative to dir)
// into an in-memory zip.
func zipDir(dir string) ([]byte, error) {
	if fi, err := os.Stat(dir); err != nil {
		return nil, err
	} else if !fi.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
