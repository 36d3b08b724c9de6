// Package loader reads JSON seed files and saves the documents they hold into a store.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hyperjump/docstore/internal/fileid"
	"github.com/hyperjump/docstore/internal/models"
	"github.com/hyperjump/docstore/internal/store"
	"go.uber.org/zap"
)

// ErrUnsupportedFile indicates a file whose extension is not in the loader's set.
var ErrUnsupportedFile = errors.New("unsupported file")

// Loader saves documents decoded from seed files.
type Loader struct {
	repo       store.Repository
	extensions []string
	logger     *zap.Logger
}

// New creates a loader writing to repo. Only files whose extension is listed are
// loaded; an empty list accepts every file.
func New(repo store.Repository, extensions []string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{repo: repo, extensions: extensions, logger: logger}
}

// Accepts reports whether path has one of the loader's extensions.
func (l *Loader) Accepts(path string) bool {
	return MatchExtension(path, l.extensions)
}

// LoadFile decodes path and saves every document in it, returning how many were saved.
// Documents without an id get one derived from the file path.
func (l *Loader) LoadFile(path string) (int, error) {
	if !l.Accepts(path) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	docs, err := DecodeFile(path)
	if err != nil {
		return 0, err
	}
	saved := 0
	for _, doc := range docs {
		if _, err := l.repo.Save(doc); err != nil {
			return saved, fmt.Errorf("failed to save document from %s: %w", path, err)
		}
		saved++
	}
	l.logger.Debug("loaded seed file", zap.String("path", path), zap.Int("documents", saved))
	return saved, nil
}

// LoadDirectory loads every accepted file under root. Files that fail are logged and
// skipped; their errors are joined into the returned error.
func (l *Loader) LoadDirectory(root string, recursive bool) (int, error) {
	var (
		total int
		errs  []error
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !l.Accepts(path) {
			return nil
		}
		n, err := l.LoadFile(path)
		total += n
		if err != nil {
			l.logger.Warn("seed file failed", zap.String("path", path), zap.Error(err))
			errs = append(errs, err)
		}
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to walk %s: %w", root, err))
	}
	return total, errors.Join(errs...)
}

// DecodeFile reads a file holding one JSON document or an array of them.
// Documents without an id get fileid.ForFile or fileid.ForEntry.
func DecodeFile(path string) ([]*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	docs, isArray, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	for i, doc := range docs {
		if doc.HasID() {
			continue
		}
		if isArray {
			doc.ID = fileid.ForEntry(path, i)
		} else {
			doc.ID = fileid.ForFile(path)
		}
	}
	return docs, nil
}

// Decode parses one JSON document or an array of documents. isArray reports which form was found.
func Decode(data []byte) (docs []*models.Document, isArray bool, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false, errors.New("empty input")
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, true, err
		}
		for i, doc := range docs {
			if doc == nil {
				return nil, true, fmt.Errorf("entry %d is null", i)
			}
		}
		return docs, true, nil
	}
	var doc models.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, false, err
	}
	return []*models.Document{&doc}, false, nil
}

// MatchExtension reports whether path's extension is in extensions, ignoring case
// and a leading dot. An empty list matches everything.
func MatchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range extensions {
		if strings.TrimPrefix(strings.ToLower(e), ".") == ext {
			return true
		}
	}
	return false
}
