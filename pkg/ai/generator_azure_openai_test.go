package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAzureOpenAIGeneratorSendsChatCompletion(t *testing.T) {
	var got oaiChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/deployments/gpt-4o/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if v := r.URL.Query().Get("api-version"); v != DefaultAzureAPIVersion {
			t.Errorf("api-version = %q, want %q", v, DefaultAzureAPIVersion)
		}
		if r.Header.Get("api-key") != "azure-key" {
			t.Errorf("missing api-key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"# Blog\n"}}]}`))
	}))
	defer srv.Close()

	gen := NewAzureOpenAIGenerator(AzureOpenAIConfig{
		Endpoint:   srv.URL + "/",
		APIKey:     "azure-key",
		Deployment: "gpt-4o",
	}, AzureBlogOptions)
	text, err := gen.GenerateText(context.Background(), "system voice", "user prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "# Blog\n" {
		t.Fatalf("text = %q", text)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("messages = %+v, want system and user", got.Messages)
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != "system voice" {
		t.Fatalf("unexpected system message: %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "user prompt" {
		t.Fatalf("unexpected user message: %+v", got.Messages[1])
	}
	if got.Temperature != 0.9 || got.TopP != 0.95 || got.MaxTokens != 2048 {
		t.Fatalf("unexpected sampling params: %+v", got)
	}
}

func TestAzureOpenAIGeneratorErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "provider error message",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`,
			wantErr: "azure openai api error: Access denied due to invalid subscription key.",
		},
		{
			name:    "status only",
			status:  http.StatusBadGateway,
			wantErr: "azure openai api error: 502 Bad Gateway",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: "empty response from azure openai",
		},
		{
			name:    "content filtered with null content",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{"role":"assistant","content":null},"finish_reason":"content_filter"}]}`,
			wantErr: "azure openai response filtered: content_filter",
		},
		{
			name:    "content filtered with empty content",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{"role":"assistant","content":""},"finish_reason":"content_filter"}]}`,
			wantErr: "azure openai response filtered: content_filter",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			gen := NewAzureOpenAIGenerator(AzureOpenAIConfig{Endpoint: srv.URL, APIKey: "k", Deployment: "d"}, AzureBlogOptions)
			_, err := gen.GenerateText(context.Background(), "", "prompt")
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestAzureOpenAIGeneratorRequiresSettings(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AzureOpenAIConfig
		wantErr string
	}{
		{name: "endpoint", cfg: AzureOpenAIConfig{APIKey: "k", Deployment: "d"}, wantErr: "azure openai endpoint required"},
		{name: "key", cfg: AzureOpenAIConfig{Endpoint: "http://x", Deployment: "d"}, wantErr: "azure openai api key required"},
		{name: "deployment", cfg: AzureOpenAIConfig{Endpoint: "http://x", APIKey: "k"}, wantErr: "azure openai deployment required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := NewAzureOpenAIGenerator(tc.cfg, AzureBlogOptions)
			if _, err := gen.GenerateText(context.Background(), "", "p"); err == nil || err.Error() != tc.wantErr {
				t.Fatalf("error = %v, want %q", err, tc.wantErr)
			}
		})
	}
}
