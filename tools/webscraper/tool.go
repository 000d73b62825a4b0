package webscraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/urferr/embabel-agent-examples/schema"
	"github.com/urferr/embabel-agent-examples/tools"
)

// Input is the schema for fetching a webpage as markdown.
type Input struct {
	schema.Base
	// URL of the webpage to read.
	URL string `json:"url" jsonschema:"title=url,description=URL of the webpage to read." validate:"required,url"`
}

func NewInput(link string) *Input {
	return &Input{
		URL: link,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Metadata describes the fetched webpage.
type Metadata struct {
	// Title of the webpage.
	Title string `json:"title,omitempty" jsonschema:"title=title,description=The title of the webpage."`
	// Author of the webpage content.
	Author string `json:"author,omitempty" jsonschema:"title=author,description=The author of the webpage."`
	// Description is the meta description of the webpage.
	Description string `json:"description,omitempty" jsonschema:"title=description,description=The meta description of the webpage."`
	// SiteName is the name of the website.
	SiteName string `json:"sitename,omitempty" jsonschema:"title=sitename,description=The name of the website."`
	// Domain is the domain name of the website.
	Domain string `json:"domain,omitempty" jsonschema:"title=domain,description=The domain name of the website."`
}

// Output is the schema for a fetched webpage.
type Output struct {
	schema.Base
	// Content is the page content in markdown format.
	Content string `json:"content,omitempty" jsonschema:"title=content,description=The page content in markdown format."`
	// Metadata about the fetched webpage.
	Metadata *Metadata `json:"metadata,omitempty" jsonschema:"title=metadata,description=Metadata about the webpage."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Config struct {
	tools.Config
	// userAgent is the user agent string sent with requests
	userAgent string
	// timeout in seconds for HTTP requests
	timeout int
	httpClient *http.Client
}

// Tool fetches a webpage and converts its main content to markdown.
type Tool struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("WebpageReaderTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Reads a webpage and returns its main content as markdown.")
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.timeout == 0 {
		ret.timeout = 30
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{
			Timeout: time.Second * time.Duration(ret.timeout),
		}
	}
	return ret
}

func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	parsedURL, err := url.ParseRequestURI(input.URL)
	if err != nil {
		return err
	}
	doc, err := t.fetch(ctx, input.URL)
	if err != nil {
		return err
	}
	markdown, err := htmltomarkdown.ConvertString(
		t.extractMainContent(doc),
		converter.WithDomain(fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)),
	)
	if err != nil {
		return err
	}
	output.Content = cleanMarkdownContent(markdown)
	meta := new(Metadata)
	meta.Domain = parsedURL.Host
	t.extractMetadata(doc, meta)
	output.Metadata = meta
	return nil
}

// RunAnonymous implements tools.AnonymousTool.
func (t *Tool) RunAnonymous(ctx context.Context, input any) (any, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	out := new(Output)
	if err := t.Run(ctx, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Tool) fetch(ctx context.Context, link string) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("Accept", DefaultAccept)
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response fetching page: %d", httpResp.StatusCode)
	}
	return goquery.NewDocumentFromReader(httpResp.Body)
}

// extractMetadata reads title and meta tags from the page head
func (t *Tool) extractMetadata(doc *goquery.Document, meta *Metadata) {
	meta.Title = doc.Find("head title").Text()
	meta.Author, _ = doc.Find("meta[name='author']").Attr("content")
	meta.Description, _ = doc.Find("meta[name='description']").Attr("content")
	meta.SiteName, _ = doc.Find("meta[property='og:site_name']").Attr("content")
}

// extractMainContent extracts the main content from the page using simple heuristics
func (t *Tool) extractMainContent(doc *goquery.Document) string {
	for _, tag := range []string{"script", "style", "nav", "header", "footer"} {
		doc.Find(tag).Remove()
	}
	for _, selector := range []string{"main", "#content, #main", ".content, .main", "article", "body"} {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			if txt, err := sel.Html(); err == nil {
				return txt
			}
		}
	}
	html, _ := doc.Html()
	return html
}

var blankLines = regexp.MustCompile(`\r?\n{2,}`)

// cleanMarkdownContent removes excessive whitespace and normalizes formatting
func cleanMarkdownContent(content string) string {
	content = blankLines.ReplaceAllString(content, "\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}
