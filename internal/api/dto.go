package api

import (
	"github.com/starford/gebo/internal/linkservice"
	"github.com/starford/gebo/internal/models"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Content string `json:"content" example:"# Hello\nWorld" validate:"required"`
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content string `json:"content" example:"# Updated\nContent" validate:"required"`
}

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = linkservice.NoteDetail

// NoteListItem is a lightweight item in a list response (aliased from the domain layer).
type NoteListItem = linkservice.NoteListItem

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []NoteListItem `json:"notes" validate:"required"`
	Total int            `json:"total" example:"42" validate:"required"`
}

// SuggestRequest is the request body for generating link suggestions.
type SuggestRequest struct {
	Path             string   `json:"path" example:"notes/machine-learning.md" validate:"required"`
	QualityThreshold *float64 `json:"quality_threshold,omitempty" example:"0.6"`
	MaxSuggestions   *int     `json:"max_suggestions,omitempty" example:"5"`
}

// SuggestResponse wraps ranked link suggestions plus the looser related-note
// fallback, which is populated only when no suggestion cleared the quality bar.
type SuggestResponse struct {
	Suggestions []models.LinkSuggestion   `json:"suggestions" validate:"required"`
	Related     []linkservice.RelatedNote `json:"related,omitempty"`
}

// InsertRequest is the request body for applying accepted suggestions.
type InsertRequest struct {
	Suggestions        []models.LinkSuggestion `json:"suggestions" validate:"required"`
	ValidateTargets    bool                    `json:"validate_targets"`
	CheckDuplicates    bool                    `json:"check_duplicates"`
	Atomic             *bool                   `json:"atomic,omitempty"`
	CreateSections     bool                    `json:"create_sections"`
	AutoDetectLocation bool                    `json:"auto_detect_location"`
}

// InsertResponse wraps per-note insertion results.
type InsertResponse struct {
	Results []models.InsertionResult `json:"results" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Title   string `json:"title" example:"Hello" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// GraphResponse wraps the knowledge graph.
type GraphResponse struct {
	Nodes []GraphNode `json:"nodes" validate:"required"`
	Links []GraphLink `json:"links" validate:"required"`
}

// GraphNode is a node in the knowledge graph.
type GraphNode struct {
	ID    string `json:"id" example:"notes/hello.md" validate:"required"`
	Title string `json:"title,omitempty" example:"Hello"`
}

// GraphLink is an edge in the knowledge graph.
type GraphLink struct {
	Source string `json:"source" example:"notes/hello.md" validate:"required"`
	Target string `json:"target" example:"notes/world.md" validate:"required"`
}

// BacklinksResponse wraps the backlink sources for one target.
type BacklinksResponse struct {
	Target    string   `json:"target" example:"hello" validate:"required"`
	Backlinks []string `json:"backlinks" validate:"required"`
}
