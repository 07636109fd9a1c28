package markdown

import (
	"strings"
	"testing"
)

func TestRenderHeadingsAndEmphasis(t *testing.T) {
	html, err := Render("# Photosynthesis\n\nPlants make **sugar** from light.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Errorf("missing heading in %q", html)
	}
	if !strings.Contains(html, "<strong>sugar</strong>") {
		t.Errorf("missing emphasis in %q", html)
	}
}

func TestRenderGFMTable(t *testing.T) {
	html, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("missing table in %q", html)
	}
}

func TestRenderCodeBlock(t *testing.T) {
	html, err := Render("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "Println") {
		t.Errorf("missing code content in %q", html)
	}
}
