// Package models defines the domain types for Gebo.
package models

import "time"

// Note represents a parsed Markdown file in the vault.
type Note struct {
	Path        string                 `json:"path"`
	Content     []byte                 `json:"-"`
	Body        string                 `json:"body"`
	Frontmatter map[string]interface{} `json:"frontmatter,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Links       []string               `json:"links,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Checksum    string                 `json:"checksum"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Link represents a directed edge between two notes.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"` // "inline" or "frontmatter"
}

// Confidence is the qualitative band derived from a suggestion's quality score.
type Confidence string

// Confidence bands. High is >= 0.8 quality, medium is >= 0.5, low is the rest.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Suggested insertion locations. The concrete values correspond to the known
// section headings scanned in a note body; AutoDetect means no known heading
// was present and the inserter must pick (or create) one.
const (
	LocationRelatedConcepts = "related_concepts"
	LocationSeeAlso         = "see_also"
	LocationRelated         = "related"
	LocationAutoDetect      = "auto_detect"
)

// LinkSuggestion is a candidate connection between two notes produced by the
// suggestion engine and consumed by reviewers and the insertion engine.
type LinkSuggestion struct {
	SourceNote        string     `json:"source_note"`
	TargetNote        string     `json:"target_note"`
	LinkText          string     `json:"link_text"`
	SimilarityScore   float64    `json:"similarity_score"`
	QualityScore      float64    `json:"quality_score"`
	Confidence        Confidence `json:"confidence"`
	Explanation       string     `json:"explanation"`
	InsertionContext  string     `json:"insertion_context,omitempty"`
	SuggestedLocation string     `json:"suggested_location"`
	// Duplicate is set when the link text already occurs verbatim in the
	// source note; such suggestions are skipped rather than re-inserted.
	Duplicate bool `json:"duplicate,omitempty"`
}

// InsertionResult is the outcome of inserting a batch of suggestions into one
// note. When Success is false the note on disk is guaranteed unchanged.
type InsertionResult struct {
	NotePath              string `json:"note_path"`
	Success               bool   `json:"success"`
	InsertionsMade        int    `json:"insertions_made"`
	DuplicatesSkipped     int    `json:"duplicates_skipped"`
	BackupPath            string `json:"backup_path,omitempty"`
	ErrorMessage          string `json:"error_message,omitempty"`
	AutoDetectedLocations int    `json:"auto_detected_locations"`
}
