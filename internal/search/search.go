// Package search maintains a bleve full-text index over watched text files.
package search

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
)

// maxIndexedFileSize bounds how much of a file is read for indexing.
const maxIndexedFileSize = 1 << 20

// Document is a unit of indexed content.
type Document struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Result is one scored search hit.
type Result struct {
	Path  string
	Title string
	Score float64
}

// Index wraps a bleve index stored in a directory.
type Index struct {
	idx bleve.Index
}

// Open opens the index at path, creating it when absent.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(path, bleve.NewIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("opening search index %s: %w", path, err)
	}
	return &Index{idx: idx}, nil
}

// Add indexes the documents in one batch, keyed by path so re-indexing a
// file replaces its previous entry.
func (i *Index) Add(docs []Document) error {
	batch := i.idx.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.Path, doc); err != nil {
			return fmt.Errorf("adding %s to batch: %w", doc.Path, err)
		}
	}
	if err := i.idx.Batch(batch); err != nil {
		return fmt.Errorf("committing index batch: %w", err)
	}
	return nil
}

// Search runs a match query and returns up to limit scored results.
func (i *Index) Search(query string, limit int) ([]Result, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	req.Fields = []string{"path", "title"}

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r := Result{Path: hit.ID, Score: hit.Score}
		if title, ok := hit.Fields["title"].(string); ok {
			r.Title = title
		}
		results = append(results, r)
	}
	return results, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.idx.Close()
}

var textExtensions = map[string]struct{}{
	"rs": {}, "txt": {}, "md": {}, "json": {}, "toml": {}, "yaml": {},
	"yml": {}, "py": {}, "js": {}, "ts": {}, "html": {}, "css": {},
	"xml": {}, "csv": {}, "sh": {}, "bash": {}, "zsh": {}, "go": {},
	"java": {}, "c": {}, "cpp": {}, "h": {}, "hpp": {}, "rb": {},
	"php": {}, "swift": {}, "kt": {}, "scala": {}, "sql": {},
}

// IsTextFile reports whether the path looks like indexable text, judged by
// extension.
func IsTextFile(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := textExtensions[ext]
	return ok
}

// ReadFileForIndexing reads a file into a Document. Returns nil for
// non-text files, unreadable files, and files above the size cap.
func ReadFileForIndexing(path string) *Document {
	if !IsTextFile(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > maxIndexedFileSize {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	return &Document{
		Path:    path,
		Title:   filepath.Base(path),
		Content: string(content),
	}
}
