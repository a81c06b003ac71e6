// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Gebo tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/gebo/internal/insert"
	"github.com/starford/gebo/internal/linkservice"
	"github.com/starford/gebo/internal/models"
	"github.com/starford/gebo/internal/suggest"
)

// Server wraps the MCP server with Gebo tools.
type Server struct {
	mcp *server.MCPServer
	svc *linkservice.Service
}

// New creates a new MCP server with all Gebo tools registered.
func New(svc *linkservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Gebo",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("suggest_links",
		mcp.WithDescription("Generate ranked wikilink suggestions for a note, scored against "+
			"every other indexed note. Each suggestion carries a quality score, confidence band, "+
			"relationship explanation, and the section it should be inserted into."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
		mcp.WithNumber("quality_threshold", mcp.Description("Minimum quality score, 0..1 (default 0.6)")),
		mcp.WithNumber("max_suggestions", mcp.Description("Maximum number of suggestions (default 5)")),
	), s.suggestLinks)

	s.mcp.AddTool(mcp.NewTool("insert_links",
		mcp.WithDescription("Insert accepted link suggestions into their source notes. "+
			"The original file is backed up before any change and the whole batch per note "+
			"rolls back if any suggestion fails. Pass the JSON suggestions array returned by suggest_links."),
		mcp.WithString("suggestions", mcp.Required(), mcp.Description("JSON array of link suggestions to apply")),
		mcp.WithBoolean("validate_targets", mcp.Description("Reject suggestions whose target note does not exist")),
		mcp.WithBoolean("create_sections", mcp.Description("Append a '## Related' section when no known heading exists")),
	), s.insertLinks)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search through notes content and titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new Markdown note at the specified path. "+
			"Content MUST follow the canonical note format (YAML frontmatter with title, "+
			"optional tags, Markdown body with [[wikilinks]]). Read the contract first via "+
			"the get_note_contract tool or the gebo://note-format resource."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path for the new note (must end with .md)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content following the Gebo note format contract")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("get_note_contract",
		mcp.WithDescription("Returns the canonical Gebo note format contract. "+
			"Call this before creating or updating notes to ensure correct structure."),
	), s.getNoteContract)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List indexed notes, optionally filtered by tag."),
		mcp.WithString("tag", mcp.Description("Optional tag to filter by (empty for all)")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("Find all notes that link to the specified note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the note to find backlinks for")),
	), s.getBacklinks)

	// Resource: note format contract.
	s.mcp.AddResource(
		mcp.NewResource("gebo://note-format", "Note Format Contract",
			mcp.WithResourceDescription("Canonical Markdown note format that all notes must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) suggestLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var cfg *suggest.Config
	qt := req.GetFloat("quality_threshold", 0)
	ms := req.GetInt("max_suggestions", 0)
	if qt > 0 || ms > 0 {
		c := suggest.DefaultConfig()
		if qt > 0 {
			c.QualityThreshold = qt
		}
		if ms > 0 {
			c.MaxSuggestions = ms
		}
		cfg = &c
	}

	suggestions, err := s.svc.Suggest(ctx, path, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(suggestions) == 0 {
		return mcp.NewToolResultText("no suggestions above the quality threshold"), nil
	}
	out, _ := json.MarshalIndent(suggestions, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) insertLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("suggestions")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var suggestions []models.LinkSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid suggestions JSON: %v", err)), nil
	}
	if len(suggestions) == 0 {
		return mcp.NewToolResultError("suggestions array is empty"), nil
	}

	opts := insert.DefaultOptions()
	opts.ValidateTargets = req.GetBool("validate_targets", false)
	opts.CreateSections = req.GetBool("create_sections", false)
	opts.AutoDetectLocation = true

	results, err := s.svc.Insert(ctx, suggestions, opts, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.GetNote(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(note.Content), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := s.svc.CreateNote(ctx, path, []byte(content)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", path)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := req.GetString("tag", "")

	items, _, err := s.svc.ListNotes(ctx, 500, 0, tag, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var paths []string
	for _, item := range items {
		paths = append(paths, item.Path)
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) getNoteContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteFormatContract), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "gebo://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bl, err := s.svc.Backlinks(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(bl) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	return mcp.NewToolResultText(strings.Join(bl, "\n")), nil
}
