package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/myamashita/regsheet/internal/document"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini generateContent API for PDF transcription and
// structured requirement extraction. It is constructed once at startup
// and shared; a missing credential fails construction, not the first
// request.
type Client struct {
	apiKey      string
	model       string
	visionModel string
	baseURL     string
	httpClient  *http.Client
	log         *slog.Logger

	Stats *CallStats
}

func NewClient(apiKey, model, visionModel string, log *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if visionModel == "" {
		visionModel = model
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		apiKey:      apiKey,
		model:       model,
		visionModel: visionModel,
		baseURL:     defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 180 * time.Second,
		},
		log:   log,
		Stats: NewCallStats(time.Hour),
	}, nil
}

// Model returns the text-extraction model name.
func (c *Client) Model() string { return c.model }

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string        `json:"role,omitempty"`
	Parts []contentPart `json:"parts"`
}

type generationConfig struct {
	Temperature      float32 `json:"temperature"`
	ResponseMIMEType string  `json:"response_mime_type,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// TranscribePDF submits the raw PDF bytes to the vision model and returns
// the reconstructed text. Pages are delimited by PageBreakMarker per the
// transcription instruction; splitting happens in the extract package.
func (c *Client) TranscribePDF(ctx context.Context, data []byte) (string, error) {
	req := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []contentPart{
				{InlineData: &inlineData{
					MIMEType: "application/pdf",
					Data:     base64.StdEncoding.EncodeToString(data),
				}},
				{Text: TranscribePrompt},
			},
		}},
		GenerationConfig: &generationConfig{Temperature: 0},
	}

	start := time.Now()
	text, err := c.generate(ctx, "transcribe", c.visionModel, req)
	c.Stats.Record("transcribe", time.Since(start))
	if err != nil {
		return "", err
	}
	c.log.Info("genai.transcribe.ok",
		"model", c.visionModel,
		"pdf_bytes", len(data),
		"chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// ExtractRequirements sends combined document text to the model and
// returns the structured requirements it produces. The model output is
// schema-validated and lightly cleaned before use.
func (c *Client) ExtractRequirements(ctx context.Context, text string) (document.Requirements, error) {
	req := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []contentPart{{Text: BuildExtractionPrompt(text)}},
		}},
		GenerationConfig: &generationConfig{
			Temperature:      0,
			ResponseMIMEType: "application/json",
		},
	}

	start := time.Now()
	out, err := c.generate(ctx, "extract", c.model, req)
	c.Stats.Record("extract", time.Since(start))
	if err != nil {
		return document.Requirements{}, err
	}

	raw := []byte(stripCodeBlock(out))
	if err := ValidateRequirementsJSON(raw); err != nil {
		return document.Requirements{}, fmt.Errorf("model output failed schema validation: %w (raw: %s)", err, truncate(string(raw), 300))
	}

	var reqs document.Requirements
	if err := json.Unmarshal(raw, &reqs); err != nil {
		return document.Requirements{}, fmt.Errorf("parse requirements json: %w (raw: %s)", err, truncate(string(raw), 300))
	}

	dropped := CleanRequirements(&reqs)
	c.log.Info("genai.extract.ok",
		"model", c.model,
		"items", len(reqs.Items),
		"formulas", len(reqs.Formulas),
		"fees", len(reqs.Fees),
		"tables", len(reqs.Tables),
		"dropped", dropped,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return reqs, nil
}

func (c *Client) generate(ctx context.Context, op, model string, req generateRequest) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	host := hostOf(endpoint)

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		apiErr := classifyTransport(op, host, err)
		c.log.Error("genai.call.transport_error", "op", op, "kind", apiErr.Kind, "error", err)
		return "", apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := classifyStatus(op, host, resp.StatusCode, string(respBody))
		c.log.Error("genai.call.api_error", "op", op, "kind", apiErr.Kind, "status", resp.StatusCode)
		return "", apiErr
	}

	var apiResp generateResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", classifyStatus(op, host, apiResp.Error.Code, apiResp.Error.Message)
	}
	if len(apiResp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from model %s", model)
	}

	var out strings.Builder
	for _, p := range apiResp.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return out.String(), nil
}

func hostOf(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil {
		return u.Host
	}
	return endpoint
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
