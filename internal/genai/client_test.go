package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient("test-key", "test-model", "", nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.baseURL = baseURL
	return c
}

// modelResponse builds the response body by hand so the test does not
// reuse the client's own response structs.
func modelResponse(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "m", "", nil); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestTranscribePDF_ReturnsModelText(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		fmt.Fprint(w, modelResponse("一ページ目\n--- ページ区切り ---\n二ページ目"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	text, err := c.TranscribePDF(context.Background(), []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "一ページ目") {
		t.Errorf("unexpected transcript %q", text)
	}
	if gotKey != "test-key" {
		t.Errorf("expected api key header, got %q", gotKey)
	}
	// Vision model defaults to the text model.
	if gotPath != "/models/test-model:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
}

func TestExtractRequirements_ValidOutput(t *testing.T) {
	payload := `{"items":[{"category":"個人情報","name":"氏名","description":"","input_type":"","required":true}],` +
		`"formulas":[],"fees":[{"name":"住宅費","description":"","amount":"５０，０００","conditions":""}],"tables":[]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse(payload))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	reqs, err := c.ExtractRequirements(context.Background(), "本文")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs.Items) != 1 || reqs.Items[0].Name != "氏名" {
		t.Fatalf("unexpected items %+v", reqs.Items)
	}
	if reqs.Items[0].InputType != "text" {
		t.Errorf("blank input_type must default to text, got %q", reqs.Items[0].InputType)
	}
	if reqs.Fees[0].Amount != "50000" {
		t.Errorf("expected normalized amount 50000, got %q", reqs.Fees[0].Amount)
	}
}

func TestExtractRequirements_CodeFencedOutput(t *testing.T) {
	payload := "```json\n{\"items\":[],\"formulas\":[],\"fees\":[],\"tables\":[]}\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse(payload))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	reqs, err := c.ExtractRequirements(context.Background(), "本文")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reqs.Empty() {
		t.Errorf("expected empty requirements, got %+v", reqs)
	}
}

func TestExtractRequirements_SchemaViolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modelResponse(`{"items":"not an array"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ExtractRequirements(context.Background(), "本文")
	if err == nil {
		t.Fatal("expected schema validation error")
	}
	if !strings.Contains(err.Error(), "schema validation") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_StatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"auth", http.StatusUnauthorized, "API key not valid", KindAuth},
		{"rate limit", http.StatusTooManyRequests, "quota exceeded", KindRateLimit},
		{"server", http.StatusInternalServerError, "oops", KindServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.body, tt.status)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			_, err := c.TranscribePDF(context.Background(), []byte("%PDF"))

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Kind != tt.want {
				t.Errorf("kind = %s, want %s", apiErr.Kind, tt.want)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
		})
	}
}

func TestGenerate_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := newTestClient(t, srv.URL)
	_, err := c.TranscribePDF(context.Background(), []byte("%PDF"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Kind != KindConnectivity {
		t.Errorf("kind = %s, want %s", apiErr.Kind, KindConnectivity)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.httpClient.Timeout = 20 * time.Millisecond
	_, err := c.TranscribePDF(context.Background(), []byte("%PDF"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Kind != KindTimeout {
		t.Errorf("kind = %s, want %s", apiErr.Kind, KindTimeout)
	}
}

func TestGenerate_EmbeddedErrorObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.TranscribePDF(context.Background(), []byte("%PDF"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Kind != KindRateLimit {
		t.Errorf("kind = %s, want %s", apiErr.Kind, KindRateLimit)
	}
}

func TestStripCodeBlock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tt := range tests {
		if got := stripCodeBlock(tt.in); got != tt.want {
			t.Errorf("stripCodeBlock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
