package webscraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
<title>Test Page</title>
<meta name="author" content="Jane Doe">
<meta name="description" content="A page for testing.">
<meta property="og:site_name" content="Example">
</head>
<body>
<nav>ignore me</nav>
<main>
<h1>Heading</h1>
<p>First paragraph.</p>
</main>
<footer>ignore me too</footer>
</body>
</html>`

func TestScrapePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testPage)
	}))
	defer srv.Close()

	tool := New()
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput(srv.URL), output); err != nil {
		t.Fatalf("Error running webpage reader: %v", err)
	}
	if !strings.Contains(output.Content, "# Heading") {
		t.Errorf("Expect markdown heading, but got:\n%s", output.Content)
	}
	if !strings.Contains(output.Content, "First paragraph.") {
		t.Errorf("Expect paragraph text, but got:\n%s", output.Content)
	}
	if strings.Contains(output.Content, "ignore me") {
		t.Errorf("Expect nav and footer stripped, but got:\n%s", output.Content)
	}
	meta := output.Metadata
	if meta == nil {
		t.Fatal("Expect metadata")
	}
	if meta.Title != "Test Page" {
		t.Errorf("Expect title Test Page, but got %s", meta.Title)
	}
	if meta.Author != "Jane Doe" {
		t.Errorf("Expect author Jane Doe, but got %s", meta.Author)
	}
	if meta.SiteName != "Example" {
		t.Errorf("Expect sitename Example, but got %s", meta.SiteName)
	}
}

func TestScrapeBadURL(t *testing.T) {
	tool := New()
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput("not a url"), output); err == nil {
		t.Error("Expect error for invalid URL")
	}
}

func TestScrapeNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	tool := New()
	output := new(Output)
	if err := tool.Run(context.Background(), NewInput(srv.URL), output); err == nil {
		t.Error("Expect error for non-200 response")
	}
}
