package feedback

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codegenius/internal/llm"
)

func postChat(t *testing.T, srv *httptest.Server, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/bot/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return resp.StatusCode, out
}

func newChatServer(t *testing.T, provider llm.Provider) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewHandler(NewService(provider, DefaultConfig(), nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatHandler_BlankPrompt(t *testing.T) {
	srv := newChatServer(t, nil)

	for _, body := range []string{`{}`, `{"prompt":"   "}`, `{"prompt":null}`, ``} {
		status, out := postChat(t, srv, body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, MsgEmptyAnswer, out["error"], body)
	}
}

func TestChatHandler_InvalidJSON(t *testing.T) {
	srv := newChatServer(t, nil)

	status, out := postChat(t, srv, `{"prompt":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid JSON body", out["error"])
}

func TestChatHandler_LocalFallback(t *testing.T) {
	srv := newChatServer(t, nil)

	status, out := postChat(t, srv, `{"prompt":"React renders components"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, NoteLocalFallback, out["note"])
	assert.Equal(t, LocalFeedback("React renders components"), out["answer"])
}

func TestChatHandler_NonStringPrompt(t *testing.T) {
	srv := newChatServer(t, nil)

	status, out := postChat(t, srv, `{"prompt":12345}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, LocalFeedback("12345"), out["answer"])
}

func TestChatHandler_Provider(t *testing.T) {
	mock := llm.NewScriptedProvider(llm.Reply{
		Body: json.RawMessage(`{"summary":"Good.","expertise":6,"communication":9,"tip":"Be specific."}`),
	})
	srv := newChatServer(t, mock)

	status, out := postChat(t, srv, `{"prompt":"answer text","question":"Explain RAII."}`)
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, out, "note")
	assert.Contains(t, out["answer"], "Communication Skills: 9/10")
	require.Equal(t, 1, mock.Calls())
	assert.Contains(t, mock.Prompts()[0].Turns[0].Text, "Question: Explain RAII.")
}

func TestChatHandler_ProviderFailure(t *testing.T) {
	mock := llm.NewScriptedProvider(llm.Reply{Err: &llm.Error{Kind: llm.KindRateLimited, Err: errors.New("slow down")}})
	srv := newChatServer(t, mock)

	status, out := postChat(t, srv, `{"prompt":"answer text"}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "Feedback provider error", out["error"])
	assert.NotEmpty(t, out["message"])
}

func TestChatHandler_CORSPreflight(t *testing.T) {
	srv := newChatServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/bot/chat", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
