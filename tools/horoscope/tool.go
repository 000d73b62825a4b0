package horoscope

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

// DefaultBaseURL is the public horoscope API endpoint.
const DefaultBaseURL = "https://horoscope-app-api.vercel.app"

// Input is the schema for a daily horoscope lookup.
type Input struct {
	schema.Base
	// Sign is the star sign to look up.
	Sign string `json:"sign" jsonschema:"title=sign,description=The star sign to look up." validate:"required"`
}

func NewInput(sign string) *Input {
	return &Input{
		Sign: sign,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is the schema for a daily horoscope lookup result.
type Output struct {
	schema.Base
	// Sign is the star sign the horoscope is for.
	Sign string `json:"sign" jsonschema:"title=sign,description=The star sign the horoscope is for."`
	// Horoscope is the daily horoscope text.
	Horoscope string `json:"horoscope" jsonschema:"title=horoscope,description=The daily horoscope text."`
	// Date is the date the horoscope applies to.
	Date string `json:"date,omitempty" jsonschema:"title=date,description=The date the horoscope applies to."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Title implements systemprompt.ContextProvider so a lookup result can be
// fed straight into an agent's system prompt.
func (s Output) Title() string {
	return "Daily horoscope"
}

func (s Output) Info() string {
	return fmt.Sprintf("%s (%s): %s", s.Sign, s.Date, s.Horoscope)
}

// apiResponse mirrors the nested payload returned by the horoscope API.
type apiResponse struct {
	Success bool     `json:"success"`
	Status  int      `json:"status"`
	Data    *apiData `json:"data"`
}

type apiData struct {
	Date          string  `json:"date"`
	HoroscopeData *string `json:"horoscope_data"`
}

type Config struct {
	tools.Config
	baseURL    string
	httpClient *http.Client
}

// Tool fetches daily horoscopes from the horoscope-app-api service.
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
		ret.SetTitle("HoroscopeTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Looks up the daily horoscope for a star sign.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run looks up the daily horoscope for the sign in the input. When the
// response lacks the expected nested fields the output carries a fixed
// fallback message instead of an error.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	if input.Sign == "" {
		return errors.New("missing star sign")
	}
	sign := strings.ToLower(input.Sign)
	values := url.Values{}
	values.Set("sign", sign)
	lookupURL := fmt.Sprintf("%s/api/v1/get-horoscope/daily?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error querying horoscope service: %w", err)
	}
	defer httpResp.Body.Close()

	output.Sign = sign
	output.Horoscope = fallbackMessage
	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil
	}
	if resp.Data == nil || resp.Data.HoroscopeData == nil {
		return nil
	}
	output.Horoscope = *resp.Data.HoroscopeData
	output.Date = resp.Data.Date
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

// fallbackMessage is returned whenever the service response lacks the
// horoscope text.
const fallbackMessage = "Unable to retrieve horoscope for $sign today."
