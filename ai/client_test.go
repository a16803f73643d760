package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAI answers chat requests with reply(req) and records what it saw.
type fakeOpenAI struct {
	mu       sync.Mutex
	requests []openai.ChatCompletionRequest
	reply    func(req openai.ChatCompletionRequest) string
	chunks   []string
}

func (f *fakeOpenAI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()

		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			for _, c := range f.chunks {
				payload, _ := json.Marshal(map[string]any{
					"id":      "chunk",
					"object":  "chat.completion.chunk",
					"choices": []map[string]any{{"index": 0, "delta": map[string]string{"content": c}}},
				})
				_, _ = fmt.Fprintf(w, "data: %s\n\n", payload)
			}
			_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": f.reply(req)},
				"finish_reason": "stop",
			}},
		})
	})
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		var req openai.ImageRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, ImageModel, req.Model)
		assert.Contains(t, req.Prompt, "Harbor View")
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"created":1,"data":[{"url":"https://img.example/harbor.png"}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFakeClient(t *testing.T, f *fakeOpenAI) *Client {
	srv := f.server(t)
	return NewClient("sk-test", "", srv.URL+"/v1", nil)
}

func lastUserPrompt(req openai.ChatCompletionRequest) string {
	return req.Messages[len(req.Messages)-1].Content
}

func TestRender(t *testing.T) {
	out := Render(LeadFollowUpMessage, map[string]string{"summary": "Relocating", "stage": "Touring", "agentName": "Dana"})
	assert.Contains(t, out, "Lead summary: Relocating")
	assert.Contains(t, out, "Stage: Touring")
	assert.Contains(t, out, "Agent: Dana")
	assert.NotContains(t, out, "{{")

	assert.Equal(t, "keep {{x}}", Render("keep {{x}}", map[string]string{"y": "z"}))
}

func TestTestingModeUsesFallbacks(t *testing.T) {
	c := NewClient("", "", "", nil)
	ctx := context.Background()
	require.False(t, c.Configured())

	q, err := c.QualifyLead(ctx, map[string]string{"name": "Avery"})
	require.NoError(t, err)
	assert.Equal(t, 86, q.LeadScore)

	msg, err := c.LeadFollowUp(ctx, "s", "engaged", "Agent")
	require.NoError(t, err)
	assert.Equal(t, FallbackLeadFollowUp, msg)

	contract, err := c.SummarizeContract(ctx, "text")
	require.NoError(t, err)
	assert.Len(t, contract.MissingSignatures, 2)
	assert.Len(t, contract.Tasks, 2)

	_, err = c.Complete(ctx, nil, Options{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	c.intn = func(int) int { return 1 }
	url, err := c.GenerateImage(ctx, PropertyDetails{})
	require.NoError(t, err)
	assert.Equal(t, SampleImages[1], url)

	for _, s := range []string{FallbackLeadFollowUp, FallbackInsights, FallbackAssistant, FallbackMarketing} {
		assert.NotContains(t, s, "—")
	}
}

func TestUnknownKindsAreRejected(t *testing.T) {
	c := NewClient("", "", "", nil)
	_, err := c.Marketing(context.Background(), "billboard", "x")
	assert.Error(t, err)
	_, err = c.ClientMessage(context.Background(), "postcard", "A", "B", "C")
	assert.Error(t, err)
}

func TestCompleteSendsModelAndTemperature(t *testing.T) {
	f := &fakeOpenAI{reply: func(openai.ChatCompletionRequest) string { return "  Caption text  " }}
	c := newFakeClient(t, f)

	out, err := c.Marketing(context.Background(), "instagramCaption", "3bd modern loft")
	require.NoError(t, err)
	assert.Equal(t, "Caption text", out)

	require.Len(t, f.requests, 1)
	req := f.requests[0]
	assert.Equal(t, openai.GPT4Turbo, req.Model)
	assert.InDelta(t, 0.85, req.Temperature, 0.001)
	assert.Equal(t, RoleSystem, req.Messages[0].Role)
	assert.Contains(t, lastUserPrompt(req), "3bd modern loft")
}

func TestEmptyCompletionFallsBack(t *testing.T) {
	f := &fakeOpenAI{reply: func(openai.ChatCompletionRequest) string { return "" }}
	c := newFakeClient(t, f)

	out, err := c.ClientMessage(context.Background(), "reviewRequest", "Priya", "Closed", "Dana")
	require.NoError(t, err)
	assert.Equal(t, FallbackClientMessage, out)
}

func TestQualifyLeadParsesJSON(t *testing.T) {
	f := &fakeOpenAI{reply: func(req openai.ChatCompletionRequest) string {
		return `{"intent":"sell","timeline":"immediate","budget":"$2M","lead_score":91,"summary":"Motivated seller","stage":"client"}`
	}}
	c := newFakeClient(t, f)

	res, err := c.QualifyLead(context.Background(), map[string]string{"name": "Marcus Reed"})
	require.NoError(t, err)
	assert.Equal(t, "sell", res.Intent)
	assert.Equal(t, 91, res.LeadScore)

	req := f.requests[0]
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
	assert.Contains(t, lastUserPrompt(req), `"name": "Marcus Reed"`)
}

func TestQualifyLeadBadJSON(t *testing.T) {
	f := &fakeOpenAI{reply: func(openai.ChatCompletionRequest) string { return "not json" }}
	c := newFakeClient(t, f)

	_, err := c.QualifyLead(context.Background(), map[string]string{"name": "x"})
	assert.ErrorIs(t, err, ErrBadJSON)
}

func TestSummarizeContractChainsTwoCalls(t *testing.T) {
	f := &fakeOpenAI{reply: func(req openai.ChatCompletionRequest) string {
		if strings.Contains(lastUserPrompt(req), "deal desk automation") {
			return `{"tasks":[{"title":"Order appraisal","owner":"agent","due_date":null,"priority":"high"}]}`
		}
		return `{"summary":"Purchase of 9 Elm St","missingSignatures":["Buyer page 2"]}`
	}}
	c := newFakeClient(t, f)

	res, err := c.SummarizeContract(context.Background(), strings.Repeat("a", MaxContractChars+500))
	require.NoError(t, err)
	assert.Equal(t, "Purchase of 9 Elm St", res.Summary)
	assert.Equal(t, []string{"Buyer page 2"}, res.MissingSignatures)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "Order appraisal", res.Tasks[0].Title)

	require.Len(t, f.requests, 2)
	assert.Contains(t, lastUserPrompt(f.requests[1]), "Purchase of 9 Elm St")
	assert.NotContains(t, lastUserPrompt(f.requests[0]), strings.Repeat("a", MaxContractChars+1))
}

func TestStreamCollectsChunks(t *testing.T) {
	f := &fakeOpenAI{chunks: []string{"Hel", "lo", " there"}}
	c := newFakeClient(t, f)

	var seen []string
	full, err := c.Stream(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, 0, func(s string) error {
		seen = append(seen, s)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", full)
	assert.Equal(t, []string{"Hel", "lo", " there"}, seen)
	assert.InDelta(t, DefaultTemperature, f.requests[0].Temperature, 0.001)
}

func TestGenerateImage(t *testing.T) {
	c := newFakeClient(t, &fakeOpenAI{})
	url, err := c.GenerateImage(context.Background(), PropertyDetails{Title: "Harbor View", Bedrooms: 3})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/harbor.png", url)
}

func TestImagePrompt(t *testing.T) {
	p := ImagePrompt(PropertyDetails{
		Address:    "12 Bay Rd",
		Bedrooms:   4,
		Highlights: []string{"pool", "dock", "gym", "cellar"},
	})
	assert.Contains(t, p, "Luxury real estate property. Located at 12 Bay Rd. 4 bedrooms")
	assert.Contains(t, p, "Features: pool, dock, gym.")
	assert.NotContains(t, p, "cellar")
}
