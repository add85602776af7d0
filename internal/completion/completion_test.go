package completion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient("test-key", srv.URL+"/v1", "gpt-3.5-turbo")
}

func TestOpenAIClient_Complete(t *testing.T) {
	var gotBody map[string]any
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "hola!"}, "finish_reason": "stop"}]
		}`))
	})

	reply, err := client.Complete(context.Background(), "Eres Valentina, una mujer venezolana cariñosa y divertida. hola")
	require.NoError(t, err)
	assert.Equal(t, "hola!", reply)

	// One role-tagged user message carrying the assembled prompt.
	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "Eres Valentina, una mujer venezolana cariñosa y divertida. hola", msg["content"])
}

func TestOpenAIClient_Complete_BackendError(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "hola")
	assert.ErrorIs(t, err, ErrCompletionFailed)
}

func TestOpenAIClient_Complete_EmptyChoices(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	})

	_, err := client.Complete(context.Background(), "hola")
	assert.ErrorIs(t, err, ErrCompletionFailed)
}
