package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/gebo/internal/linkservice"
	"github.com/starford/gebo/internal/models"
	"github.com/starford/gebo/internal/suggest"
	"github.com/starford/gebo/internal/testutil"
)

func testServer(t *testing.T) (*Server, *linkservice.Service) {
	t.Helper()
	_, store := testutil.TestVault(t)
	db := testutil.TestDB(t)
	svc := linkservice.NewService(store, db, suggest.DefaultConfig())
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we invoke
	// the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "suggest_links":
		result, err = srv.suggestLinks(ctx, req)
	case "insert_links":
		result, err = srv.insertLinks(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "get_backlinks":
		result, err = srv.getBacklinks(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndReadNote(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"path":    "test.md",
		"content": "# Test\nHello",
	})
	text := resultText(r)
	if text != "created: test.md" {
		t.Errorf("create result = %q", text)
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{
		"path": "test.md",
	})
	text = resultText(r)
	if text != "# Test\nHello" {
		t.Errorf("read result = %q", text)
	}
}

func TestListNotes(t *testing.T) {
	srv, _ := testServer(t)
	_ = callTool(t, srv, "create_note", map[string]interface{}{"path": "a.md", "content": "# A"})
	_ = callTool(t, srv, "create_note", map[string]interface{}{"path": "b.md", "content": "# B"})

	r := callTool(t, srv, "list_notes", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "a.md") || !strings.Contains(text, "b.md") {
		t.Errorf("list = %q", text)
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestGetBacklinks(t *testing.T) {
	srv, _ := testServer(t)
	_ = callTool(t, srv, "create_note", map[string]interface{}{
		"path":    "a.md",
		"content": "links to [[b]]",
	})

	r := callTool(t, srv, "get_backlinks", map[string]interface{}{"path": "b"})
	text := resultText(r)
	if text != "a.md" {
		t.Errorf("backlinks = %q, want a.md", text)
	}
}

func TestSuggestLinksTool(t *testing.T) {
	srv, _ := testServer(t)
	_ = callTool(t, srv, "create_note", map[string]interface{}{
		"path":    "machine-learning.md",
		"content": "# Machine Learning\n\nMachine learning learns patterns from data.\n\n## Related Concepts\n",
	})
	_ = callTool(t, srv, "create_note", map[string]interface{}{
		"path":    "deep-learning.md",
		"content": "# Deep Learning\n\nDeep learning is a subset of machine learning.",
	})

	r := callTool(t, srv, "suggest_links", map[string]interface{}{
		"path": "machine-learning.md",
	})
	if r.IsError {
		t.Fatalf("suggest failed: %s", resultText(r))
	}

	var suggestions []models.LinkSuggestion
	if err := json.Unmarshal([]byte(resultText(r)), &suggestions); err != nil {
		t.Fatalf("unmarshal suggestions: %v", err)
	}
	if len(suggestions) == 0 || suggestions[0].TargetNote != "deep-learning.md" {
		t.Errorf("suggestions = %+v", suggestions)
	}
}

func TestInsertLinksTool(t *testing.T) {
	srv, svc := testServer(t)
	_ = callTool(t, srv, "create_note", map[string]interface{}{
		"path":    "src.md",
		"content": "# Source\n\n## Related Concepts\n",
	})

	suggestions, _ := json.Marshal([]models.LinkSuggestion{{
		SourceNote:       "src.md",
		TargetNote:       "dst.md",
		LinkText:         "[[dst]]",
		InsertionContext: "## Related Concepts",
	}})

	r := callTool(t, srv, "insert_links", map[string]interface{}{
		"suggestions": string(suggestions),
	})
	if r.IsError {
		t.Fatalf("insert failed: %s", resultText(r))
	}

	var results []models.InsertionResult
	if err := json.Unmarshal([]byte(resultText(r)), &results); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if len(results) != 1 || !results[0].Success || results[0].InsertionsMade != 1 {
		t.Fatalf("results = %+v", results)
	}

	note, err := svc.GetNote(context.Background(), "src.md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(note.Content, "- [[dst]]") {
		t.Errorf("link not written: %q", note.Content)
	}
}

func TestInsertLinksTool_BadJSON(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "insert_links", map[string]interface{}{
		"suggestions": "{not json",
	})
	if !r.IsError {
		t.Error("expected error for invalid JSON")
	}
}
