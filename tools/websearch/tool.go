package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/urferr/embabel-agent-examples/schema"
	"github.com/urferr/embabel-agent-examples/tools"
)

type Category = string

const (
	EmptyCategory       Category = ""
	GeneralCategory     Category = "general"
	NewsCategory        Category = "news"
	SocialMediaCategory Category = "social_media"
)

// Input is the schema for searching the web through a SearxNG instance.
// Returns a list of search results with a short content snippet and URLs for
// further exploration.
type Input struct {
	schema.Base
	// Queries is the list of search queries.
	Queries []string `json:"queries" jsonschema:"title=queries,description=List of search queries." validate:"required"`
	// Category of the search queries.
	Category Category `json:"category,omitempty" jsonschema:"title=category,enum=general,enum=news,enum=social_media,default=general,description=Category of the search queries."`
}

func NewInput(category Category, queries []string) *Input {
	if category == "" {
		category = GeneralCategory
	}
	return &Input{
		Queries:  queries,
		Category: category,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SearchResultItem represents a single search result item
type SearchResultItem struct {
	schema.Base
	// URL of the search result
	URL string `json:"url" jsonschema:"title=url,description=The URL of the search result" validate:"required,url"`
	// Title of the search result
	Title string `json:"title" jsonschema:"title=title,description=The title of the search result" validate:"required"`
	// Content snippet of the search result
	Content string `json:"content,omitempty" jsonschema:"title=content,description=The content snippet of the search result"`
	// Query used to obtain this search result
	Query string `json:"query,omitempty" jsonschema:"title=query,description=The query used to obtain this search result"`
	// Category of the search result
	Category Category `json:"category,omitempty" jsonschema:"title=category,description=The category of the search result"`
	// Metadata carries extra engine-specific data such as a date
	Metadata string `json:"metadata,omitempty" jsonschema:"title=metadata,description=Engine specific metadata"`
	// PublishedDate is the publication date when the engine reports one
	PublishedDate string `json:"publishedDate,omitempty" jsonschema:"title=publishedDate,description=The publication date of the search result"`
}

func (s SearchResultItem) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// searchResponse is the raw response from the SearxNG instance
type searchResponse struct {
	Query           string             `json:"query"`
	NumberOfResults int                `json:"number_of_results"`
	Results         []SearchResultItem `json:"results"`
}

// Output represents the output of the web search tool.
type Output struct {
	schema.Base
	// Results is the list of search result items
	Results []SearchResultItem `json:"results,omitempty" jsonschema:"title=results,description=List of search result items"`
	// Category of the search results
	Category Category `json:"category,omitempty" jsonschema:"title=category,enum=general,enum=news,enum=social_media,default=general,description=Category of the search results."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Title implements systemprompt.ContextProvider so search results can be fed
// straight into an agent's system prompt.
func (s Output) Title() string {
	return "Web search results"
}

func (s Output) Info() string {
	var b strings.Builder
	for _, item := range s.Results {
		fmt.Fprintf(&b, "- %s (%s)\n", item.Title, item.URL)
		if item.Content != "" {
			fmt.Fprintf(&b, "  %s\n", item.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

type Config struct {
	tools.Config
	language   string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// Tool searches the web through a SearxNG instance.
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
		ret.SetTitle("WebSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Searches the web for information, news and references.")
	}
	if ret.maxResults == 0 {
		ret.maxResults = 10
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run executes every query and merges the results, deduplicated by URL and
// capped at the configured maximum.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	if len(input.Queries) == 0 {
		return errors.New("missing search queries")
	}
	seen := make(map[string]struct{})
	results := make([]SearchResultItem, 0, t.maxResults)
	for _, query := range input.Queries {
		items, err := t.fetchSearchResults(ctx, query, input.Category)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.URL == "" || item.Title == "" || item.Content == "" {
				continue
			}
			if _, dup := seen[item.URL]; dup {
				continue
			}
			seen[item.URL] = struct{}{}
			results = append(results, item)
		}
	}
	if len(results) > t.maxResults {
		results = results[:t.maxResults]
	}
	output.Results = results
	output.Category = input.Category
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

// fetchSearchResults queries the SearxNG instance and returns parsed items
func (t *Tool) fetchSearchResults(ctx context.Context, query string, category Category) ([]SearchResultItem, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("safesearch", "0")
	values.Set("format", "json")
	values.Set("engines", "bing,duckduckgo,google,startpage,yandex")
	if t.language != "" {
		values.Set("language", t.language)
	}
	if category != "" {
		values.Set("categories", category)
	}
	searchURL := fmt.Sprintf("%s/search?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying search engine: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from search engine: %d", httpResp.StatusCode)
	}
	var resp searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	for idx := range resp.Results {
		resp.Results[idx].Query = query
	}
	return resp.Results, nil
}
