package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codegenius/internal/question"
)

type failingRepo struct{}

func (failingRepo) Insert(context.Context, question.Question) (question.Question, error) {
	return question.Question{}, errors.New("connection refused")
}

func (failingRepo) Find(context.Context, string) ([]question.Question, error) {
	return nil, errors.New("connection refused")
}

func newTestServer(t *testing.T, repo question.Repository) (*httptest.Server, *question.Gateway) {
	t.Helper()
	gw := question.NewGateway(repo, question.NewCatalog())
	srv := httptest.NewServer(NewHandler(Config{Gateway: gw}))
	t.Cleanup(srv.Close)
	return srv, gw
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func getQuestions(t *testing.T, url string) []question.Question {
	t.Helper()
	resp, body := doRequest(t, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []question.Question
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func postAdd(t *testing.T, base, body string) string {
	t.Helper()
	resp, data := doRequest(t, http.MethodPost, base+"/questions/add", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg messageResponse
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg.Msg
}

func TestWelcome(t *testing.T) {
	srv, _ := newTestServer(t, question.NewMemoryRepository())

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, welcomeHTML, string(body))
}

func TestAddThenGetHealthyStore(t *testing.T) {
	srv, _ := newTestServer(t, question.NewMemoryRepository())

	msg := postAdd(t, srv.URL, `{"question":"What is JSX?","techStack":"mern"}`)
	assert.Equal(t, MsgAdded, msg)

	all := getQuestions(t, srv.URL+"/questions/get")
	require.Len(t, all, 1)
	assert.Equal(t, "What is JSX?", all[0].Question)
	assert.NotEmpty(t, all[0].ID)

	mern := getQuestions(t, srv.URL+"/questions/get?techStack=MERN")
	require.Len(t, mern, 1)
}

func TestGetEmptyStoreReturnsCatalog(t *testing.T) {
	srv, _ := newTestServer(t, question.NewMemoryRepository())

	all := getQuestions(t, srv.URL+"/questions/get")
	assert.Len(t, all, 16)

	cpp := getQuestions(t, srv.URL+"/questions/get?techStack=CPP")
	require.Len(t, cpp, 4)
	for _, q := range cpp {
		assert.Equal(t, "cpp", q.TechStack)
	}
}

func TestGetUnknownTrackIsEmptyArray(t *testing.T) {
	srv, _ := newTestServer(t, question.NewMemoryRepository())

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/questions/get?techStack=cobol", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestAddFailingStore(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantText  string
		wantTrack string
	}{
		{"empty object", `{}`, question.DefaultQuestionText, question.DefaultTechStack},
		{"no body", "", question.DefaultQuestionText, question.DefaultTechStack},
		{"malformed json", `{"question":`, question.DefaultQuestionText, question.DefaultTechStack},
		{"wrong types", `{"question":42,"techStack":true}`, question.DefaultQuestionText, question.DefaultTechStack},
		{"full body", `{"question":"Explain closures","techStack":"node"}`, "Explain closures", "node"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, gw := newTestServer(t, failingRepo{})

			msg := postAdd(t, srv.URL, tt.body)
			assert.Equal(t, MsgAddedFallback, msg)

			all := gw.Catalog().All()
			require.Len(t, all, 17)
			last := all[len(all)-1]
			assert.Equal(t, tt.wantText, last.Question)
			assert.Equal(t, tt.wantTrack, last.TechStack)
		})
	}
}

func TestDegradedWriteIsReadable(t *testing.T) {
	srv, _ := newTestServer(t, failingRepo{})

	postAdd(t, srv.URL, `{"question":"What is a vtable?","techStack":"cpp"}`)

	cpp := getQuestions(t, srv.URL+"/questions/get?techStack=cpp")
	require.Len(t, cpp, 5)
	assert.Equal(t, "What is a vtable?", cpp[4].Question)

	general := getQuestions(t, srv.URL+"/questions/get?techStack=dsa")
	assert.Len(t, general, 4)
}

func TestGetFailingStoreDefaultGeneralEntries(t *testing.T) {
	srv, _ := newTestServer(t, failingRepo{})

	postAdd(t, srv.URL, `{}`)

	node := getQuestions(t, srv.URL+"/questions/get?techStack=node")
	require.Len(t, node, 5, "node partition plus the general entry")
	assert.Equal(t, question.DefaultTechStack, node[4].TechStack)
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv, _ := newTestServer(t, question.NewMemoryRepository())
		resp, body := doRequest(t, http.MethodGet, srv.URL+"/healthz", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var h healthResponse
		require.NoError(t, json.Unmarshal(body, &h))
		assert.Equal(t, "ok", h.Status)
		assert.Equal(t, 16, h.CatalogSize)
	})

	t.Run("degraded", func(t *testing.T) {
		srv, _ := newTestServer(t, failingRepo{})
		getQuestions(t, srv.URL+"/questions/get")

		_, body := doRequest(t, http.MethodGet, srv.URL+"/healthz", "")
		var h healthResponse
		require.NoError(t, json.Unmarshal(body, &h))
		assert.Equal(t, "degraded", h.Status)
		assert.EqualValues(t, 1, h.Stats.DegradedReads)
		assert.Equal(t, "connection refused", h.Stats.LastDegradedErr)
	})
}

func TestCORSAndMethods(t *testing.T) {
	srv, _ := newTestServer(t, question.NewMemoryRepository())

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/questions/add", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/questions/add", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/questions/get", "")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
