// Package linkservice coordinates vault storage, the SQLite index, and the
// suggestion and insertion engines behind one service surface shared by the
// HTTP API, the MCP server, and the CLI commands.
package linkservice

import (
	"context"
	"errors"
	"os"
	"sort"
	"time"

	"github.com/starford/gebo/internal/analyzer"
	"github.com/starford/gebo/internal/apperr"
	"github.com/starford/gebo/internal/checksum"
	"github.com/starford/gebo/internal/index"
	"github.com/starford/gebo/internal/insert"
	"github.com/starford/gebo/internal/models"
	"github.com/starford/gebo/internal/parser"
	"github.com/starford/gebo/internal/storage"
	"github.com/starford/gebo/internal/suggest"
)

// NoteDetail is the full representation of a note.
type NoteDetail struct {
	Path        string         `json:"path"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Checksum    string         `json:"checksum"`
	Tags        []string       `json:"tags"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	Backlinks   []string       `json:"backlinks"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NoteListItem is a lightweight item in a list response.
type NoteListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RelatedNote is one hit from the similarity fallback lookup.
type RelatedNote struct {
	Path       string  `json:"path"`
	Similarity float64 `json:"similarity"`
}

// Service coordinates storage, index, and the link engines.
type Service struct {
	store    storage.Provider
	db       index.NoteIndex
	cfg      suggest.Config
	engine   *suggest.Engine
	inserter *insert.Engine
}

// NewService creates a link service over the given storage and index.
func NewService(store storage.Provider, db index.NoteIndex, cfg suggest.Config) *Service {
	return &Service{
		store:    store,
		db:       db,
		cfg:      cfg,
		engine:   suggest.New(cfg),
		inserter: insert.New(store),
	}
}

// GetNote reads a note from storage, parses it, and enriches with backlinks.
func (s *Service) GetNote(_ context.Context, path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildNoteDetail(path, data)
}

// CreateNote writes a new note and indexes it.
func (s *Service) CreateNote(_ context.Context, path string, content []byte) (*NoteDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(path, content)
}

// UpdateNote writes updated content with optimistic concurrency.
func (s *Service) UpdateNote(_ context.Context, path string, content []byte, ifMatch string) (*NoteDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildNoteDetail(path, content)
}

// DeleteNote removes a note from storage and index.
func (s *Service) DeleteNote(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	return s.db.DeleteNote(path)
}

// ListNotes returns paginated notes with optional tag filter.
func (s *Service) ListNotes(_ context.Context, limit, offset int, tag, sort string) ([]NoteListItem, int, error) {
	rows, total, err := s.db.ListNotes(limit, offset, tag, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]NoteListItem, len(rows))
	for i, r := range rows {
		items[i] = NoteListItem{
			Path:      r.Path,
			Title:     r.Title,
			Checksum:  r.Checksum,
			Tags:      nonNilSlice(r.Tags),
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Graph returns all nodes and links for graph visualization.
func (s *Service) Graph(_ context.Context) ([]index.GraphNode, []index.GraphLink, error) {
	return s.db.Graph()
}

// Backlinks returns all note paths that link to the given target.
func (s *Service) Backlinks(_ context.Context, target string) ([]string, error) {
	return s.db.Backlinks(target)
}

// Suggest generates ranked link suggestions for one note against the whole
// indexed corpus. Suggestions whose link text already appears in the note are
// flagged as duplicates rather than dropped, so callers can report them.
// A non-nil cfg overrides the service thresholds for this call only.
func (s *Service) Suggest(_ context.Context, path string, cfg *suggest.Config) ([]models.LinkSuggestion, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	corpus, err := s.db.Bodies()
	if err != nil {
		return nil, err
	}

	engine := s.engine
	if cfg != nil {
		engine = suggest.New(*cfg)
	}

	suggestions, err := engine.Generate(path, res.Body, corpus)
	if err != nil {
		return nil, err
	}
	suggest.MarkDuplicates(string(data), suggestions)
	return suggestions, nil
}

// Related returns corpus notes whose plain lexical similarity to the note
// meets the similarity threshold, best first. This is the looser fallback for
// when the quality-gated Suggest returns nothing.
func (s *Service) Related(_ context.Context, path string) ([]RelatedNote, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	corpus, err := s.db.Bodies()
	if err != nil {
		return nil, err
	}

	out := []RelatedNote{}
	for p, body := range corpus {
		if p == path {
			continue
		}
		sim := analyzer.Similarity(res.Body, body)
		if sim >= s.cfg.SimilarityThreshold {
			out = append(out, RelatedNote{Path: p, Similarity: sim})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

// Insert applies accepted suggestions through the insertion engine and
// re-indexes every note that was actually modified, so search, graph, and
// future suggestion rounds see the new links immediately.
func (s *Service) Insert(_ context.Context, suggestions []models.LinkSuggestion, opts insert.Options, progress insert.ProgressFunc) ([]models.InsertionResult, error) {
	results := s.inserter.InsertBatch(suggestions, opts, progress)

	for _, r := range results {
		if !r.Success || r.InsertionsMade == 0 {
			continue
		}
		data, err := s.store.Read(r.NotePath)
		if err != nil {
			return results, err
		}
		if err := s.IndexFile(r.NotePath, data); err != nil {
			return results, err
		}
	}
	return results, nil
}

// IndexFile parses data and upserts it into the index.
// Exported so that sync and watcher flows can reuse it.
func (s *Service) IndexFile(path string, data []byte) error {
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}
	cs := checksum.Sum(data)
	return s.db.UpsertNote(index.NoteRow{
		Path:      path,
		Title:     res.Title,
		Checksum:  cs,
		Tags:      nonNilSlice(res.Tags),
		UpdatedAt: time.Now(),
	}, res.Body, res.Links)
}

// buildNoteDetail constructs a NoteDetail from raw data without re-reading the file.
func (s *Service) buildNoteDetail(path string, data []byte) (*NoteDetail, error) {
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	bl, err := s.db.Backlinks(path)
	if err != nil {
		return nil, err
	}
	return &NoteDetail{
		Path:        path,
		Title:       res.Title,
		Content:     string(data),
		Checksum:    checksum.Sum(data),
		Tags:        nonNilSlice(res.Tags),
		Frontmatter: res.Frontmatter,
		Backlinks:   nonNilSlice(bl),
		UpdatedAt:   time.Now(),
	}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
