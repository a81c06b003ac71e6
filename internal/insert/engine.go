// Package insert mutates note files to add accepted link suggestions, with
// mandatory backup-before-write and rollback-on-failure. Operational failures
// (missing targets, I/O errors) never surface as Go errors; they resolve to
// a structured InsertionResult so the file-safety invariant holds for callers
// that only inspect the result.
package insert

import (
	"fmt"
	"strings"

	"github.com/starford/gebo/internal/apperr"
	"github.com/starford/gebo/internal/models"
	"github.com/starford/gebo/internal/parser"
	"github.com/starford/gebo/internal/storage"
)

// autoDetectHeadings is the priority-ordered list scanned when a suggestion
// has no explicit insertion context and AutoDetectLocation is on.
var autoDetectHeadings = []string{"## Related Concepts", "## See Also", "## Related"}

// createdSectionHeading is appended when CreateSections is on and no known
// heading exists.
const createdSectionHeading = "## Related"

// Options controls validation and placement behaviour for one insertion call.
type Options struct {
	// ValidateTargets rejects suggestions whose target note is missing.
	ValidateTargets bool
	// CheckDuplicates skips suggestions whose link text is already present.
	CheckDuplicates bool
	// Atomic rolls the whole batch back when any suggestion fails. This is
	// the only mode the safety invariant is stated for; turning it off gives
	// best-effort partial application.
	Atomic bool
	// CreateSections appends a "## Related" section when no heading exists.
	CreateSections bool
	// AutoDetectLocation scans for known headings when a suggestion carries
	// no explicit insertion context.
	AutoDetectLocation bool
}

// DefaultOptions returns the default insertion behaviour: atomic, with no
// extra validation.
func DefaultOptions() Options {
	return Options{Atomic: true}
}

// ProgressFunc reports batch progress after each note is processed.
type ProgressFunc func(done, total int, path string)

// Engine inserts link suggestions into vault notes.
type Engine struct {
	store storage.Provider
}

// New creates an insertion engine over the given vault storage.
func New(store storage.Provider) *Engine {
	return &Engine{store: store}
}

// InsertIntoNote applies a batch of suggestions to a single note.
//
// The sequence is: read → backup → validate → compute new content in memory →
// single atomic write. Because nothing touches the file before the final
// write, "rollback" in atomic mode means simply not writing; the backup is
// still created and left on disk for the caller.
func (e *Engine) InsertIntoNote(path string, suggestions []models.LinkSuggestion, opts Options) models.InsertionResult {
	res := models.InsertionResult{NotePath: path}

	data, err := e.store.Read(path)
	if err != nil {
		res.ErrorMessage = fmt.Sprintf("read note: %v", err)
		return res
	}

	backupPath, err := e.store.Backup(path)
	if err != nil {
		res.ErrorMessage = fmt.Sprintf("backup failed, aborting before any mutation: %v", err)
		return res
	}
	res.BackupPath = backupPath

	front, body := parser.SplitRaw(data)

	var failures []string
	newBody := body
	for _, s := range suggestions {
		if opts.ValidateTargets {
			if _, readErr := e.store.Read(s.TargetNote); readErr != nil {
				failures = append(failures, fmt.Sprintf("%s: %v: %s", s.LinkText, apperr.ErrInvalidTarget, s.TargetNote))
				continue
			}
		}
		if s.Duplicate || (opts.CheckDuplicates && strings.Contains(newBody, s.LinkText)) {
			res.DuplicatesSkipped++
			continue
		}

		updated, autoDetected, insErr := insertLink(newBody, s, opts)
		if insErr != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", s.LinkText, insErr))
			continue
		}
		newBody = updated
		res.InsertionsMade++
		if autoDetected {
			res.AutoDetectedLocations++
		}
	}

	if len(failures) > 0 {
		res.ErrorMessage = strings.Join(failures, "; ")
		if opts.Atomic {
			// Whole batch rolls back: nothing was written yet, so the file
			// on disk is untouched.
			res.InsertionsMade = 0
			res.AutoDetectedLocations = 0
			return res
		}
	}

	if res.InsertionsMade > 0 {
		if writeErr := e.store.Write(path, []byte(front+newBody)); writeErr != nil {
			res.Success = false
			res.InsertionsMade = 0
			res.AutoDetectedLocations = 0
			res.ErrorMessage = fmt.Sprintf("write note: %v", writeErr)
			return res
		}
	}

	res.Success = len(failures) == 0
	return res
}

// InsertBatch groups suggestions by source note (first-seen order) and applies
// one InsertIntoNote call per group. progress, when non-nil, is invoked after
// each group.
func (e *Engine) InsertBatch(suggestions []models.LinkSuggestion, opts Options, progress ProgressFunc) []models.InsertionResult {
	var order []string
	groups := make(map[string][]models.LinkSuggestion)
	for _, s := range suggestions {
		if _, ok := groups[s.SourceNote]; !ok {
			order = append(order, s.SourceNote)
		}
		groups[s.SourceNote] = append(groups[s.SourceNote], s)
	}

	results := make([]models.InsertionResult, 0, len(order))
	for i, path := range order {
		results = append(results, e.InsertIntoNote(path, groups[path], opts))
		if progress != nil {
			progress(i+1, len(order), path)
		}
	}
	return results
}

// insertLink places the suggestion's link line into body and returns the new
// body. Placement priority: the suggestion's explicit insertion context, then
// a known heading when AutoDetectLocation is on (autoDetected=true), then a
// new section when CreateSections is on. Otherwise the insertion fails.
func insertLink(body string, s models.LinkSuggestion, opts Options) (string, bool, error) {
	linkLine := "- " + s.LinkText

	if s.InsertionContext != "" {
		if updated, ok := insertUnderHeading(body, s.InsertionContext, linkLine); ok {
			return updated, false, nil
		}
	}
	if opts.AutoDetectLocation {
		for _, h := range autoDetectHeadings {
			if updated, ok := insertUnderHeading(body, h, linkLine); ok {
				return updated, true, nil
			}
		}
	}
	if opts.CreateSections {
		return appendSection(body, createdSectionHeading, linkLine), false, nil
	}
	return "", false, fmt.Errorf("%w for %q and section creation disabled", apperr.ErrNoInsertionPoint, s.LinkText)
}

// insertUnderHeading appends linkLine at the end of the section started by
// heading: after any existing list items, before the next heading. Returns
// ok=false when the heading is not present as a full line.
func insertUnderHeading(body, heading, linkLine string) (string, bool) {
	lines := strings.Split(body, "\n")

	headingIdx := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t\r") == heading {
			headingIdx = i
			break
		}
	}
	if headingIdx < 0 {
		return "", false
	}

	// Section ends at the next heading or EOF.
	end := len(lines)
	for i := headingIdx + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "#") {
			end = i
			break
		}
	}

	// Insert before trailing blank lines of the section so the link joins
	// any existing list instead of dangling after it.
	insertAt := end
	for insertAt > headingIdx+1 && strings.TrimSpace(lines[insertAt-1]) == "" {
		insertAt--
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insertAt]...)
	out = append(out, linkLine)
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n"), true
}

// appendSection adds a new section with the link at the end of the body.
func appendSection(body, heading, linkLine string) string {
	trimmed := strings.TrimRight(body, "\n")
	if trimmed == "" {
		return heading + "\n\n" + linkLine + "\n"
	}
	return trimmed + "\n\n" + heading + "\n\n" + linkLine + "\n"
}
