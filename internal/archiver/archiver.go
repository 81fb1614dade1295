// Package archiver keeps the uploaded label photos on disk, one file per
// analysis, so a scan can be shown again from the history.
package archiver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotFound  = errors.New("archived image not found")
	ErrInvalidID = errors.New("invalid archive id")
)

// ids are uuids; anything else could escape the directory
var validID = regexp.MustCompile(`^[a-zA-Z0-9-]{1,64}$`)

type Archiver struct {
	dir string
}

func New(dir string) (*Archiver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &Archiver{dir: dir}, nil
}

// Save writes data as <id><ext>, the extension coming from the sniffed type.
// The file is written to a temp file first and renamed into place.
func (a *Archiver) Save(id string, data []byte) (string, error) {
	if !validID.MatchString(id) {
		return "", ErrInvalidID
	}
	path := filepath.Join(a.dir, id+mimetype.Detect(data).Extension())

	tmp, err := os.CreateTemp(a.dir, id+"_*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("finalize %s: %w", path, err)
	}
	return path, nil
}

// Load returns the archived bytes for id and their MIME type.
func (a *Archiver) Load(id string) ([]byte, string, error) {
	if !validID.MatchString(id) {
		return nil, "", ErrInvalidID
	}
	matches, err := filepath.Glob(filepath.Join(a.dir, id+".*"))
	if err != nil {
		return nil, "", err
	}
	for _, m := range matches {
		if filepath.Ext(m) == ".tmp" {
			continue
		}
		data, err := os.ReadFile(m)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", m, err)
		}
		return data, mimetype.Detect(data).String(), nil
	}
	return nil, "", ErrNotFound
}

// Remove deletes the archived file for id, if any.
func (a *Archiver) Remove(id string) error {
	if !validID.MatchString(id) {
		return ErrInvalidID
	}
	matches, err := filepath.Glob(filepath.Join(a.dir, id+".*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
