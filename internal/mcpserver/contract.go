package mcpserver

// NoteFormatContract describes the canonical Markdown note format that
// LLM consumers should follow when creating or updating notes.
const NoteFormatContract = `# Gebo Note Format Contract

Every Markdown note stored in Gebo MUST follow this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title        # REQUIRED – used in search, suggestions, graph
tags:                               # OPTIONAL – YAML list; used for filtering
  - tag-one
  - tag-two
created: 2025-01-15                 # OPTIONAL – ISO-8601 date or datetime
---

Body text in standard Markdown.

Use [[wikilinks]] to reference other notes (without .md extension).
Use [[target|alias]] for display text that differs from the target.
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "```" + `---` + "```" + ` fences must be the first
   thing in the file (no leading blank lines).
2. **` + "`" + `title` + "`" + ` field is required.** It is the primary display name everywhere.
3. **Tags** are lowercase, kebab-case (e.g. ` + "`" + `project-x` + "`" + `, ` + "`" + `meeting-notes` + "`" + `).
4. **Wikilinks** use double brackets: ` + "`" + `[[other-note]]` + "`" + `. The target is the
   filename stem (no ` + "`" + `.md` + "`" + ` extension, path separators OK: ` + "`" + `[[folder/note]]` + "`" + `).
5. **File paths** end with ` + "`" + `.md` + "`" + ` and use forward slashes.
6. **Encoding** is UTF-8 with a trailing newline.
7. **No HTML** unless absolutely necessary; prefer Markdown equivalents.

## Link sections

Suggested links are inserted as list items under one of these headings,
checked in priority order:

1. ` + "`" + `## Related Concepts` + "`" + `
2. ` + "`" + `## See Also` + "`" + `
3. ` + "`" + `## Related` + "`" + `

When a note has none of them, the insertion engine can append a
` + "`" + `## Related` + "`" + ` section at the end. Keep link items in the simple list form
` + "`" + `- [[target]]` + "`" + ` so duplicate detection keeps working.

Never edit frontmatter when adding links; only the body changes. Before any
automated modification the engine copies the file into the vault's hidden
backup directory, so manual cleanup is always possible.

## Example

` + "```" + `markdown
---
title: Machine Learning
tags:
  - ai
created: 2025-01-20
---

# Machine Learning

Machine learning is a subset of [[artificial-intelligence]] that learns
patterns from data.

## Related Concepts

- [[deep-learning]]
- [[statistics]]
` + "```" + `
`
