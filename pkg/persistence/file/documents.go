package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence"
)

// documents is a directory of JSON files named after their record id.
type documents[T any] struct {
	dir string
}

// path rejects ids that are not a single file name inside dir.
func (d documents[T]) path(id string) (string, error) {
	if !models.IsValidID(id) || filepath.Base(id) != id {
		return "", fmt.Errorf("%w: %q", persistence.ErrInvalidID, id)
	}

	return filepath.Join(d.dir, id+".json"), nil
}

// read returns fs.ErrNotExist when no document exists for id, including ids that cannot name one.
func (d documents[T]) read(id string) (*T, error) {
	path, err := d.path(id)
	if err != nil {
		return nil, fs.ErrNotExist
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var record T
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", id, err)
	}

	return &record, nil
}

func (d documents[T]) readAll() ([]*T, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make([]*T, 0), nil
		}

		return nil, fmt.Errorf("failed to list %s: %w", d.dir, err)
	}

	records := make([]*T, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		record, err := d.read(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// write replaces the document atomically through a temporary file in the same directory.
func (d documents[T]) write(id string, record *T) error {
	path, err := d.path(id)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", d.dir, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", id, err)
	}

	tmp, err := os.CreateTemp(d.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write %s: %w", id, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write %s: %w", id, err)
	}

	return os.Rename(tmp.Name(), path)
}

// remove returns fs.ErrNotExist when no document exists for id.
func (d documents[T]) remove(id string) error {
	path, err := d.path(id)
	if err != nil {
		return fs.ErrNotExist
	}

	return os.Remove(path)
}
