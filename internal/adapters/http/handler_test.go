package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/lmoretti/mockview/internal/adapters/http"
	"github.com/lmoretti/mockview/internal/adapters/llm"
	"github.com/lmoretti/mockview/internal/adapters/storage/memory"
	"github.com/lmoretti/mockview/internal/app/interview"
)

func newTestServer(t *testing.T, gateway *llm.MockGateway) http.Handler {
	t.Helper()

	store := memory.NewInterviewStore()
	svc := interview.NewService(gateway, store)
	return httpadapter.NewServer(svc)
}

func postJSON(t *testing.T, srv http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStartReturnsOpeningQuestion(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway())

	w := postJSON(t, srv, "/api/start", map[string]string{
		"jobRole":   "Backend Engineer",
		"techStack": "Go, Postgres",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		InterviewID string `json:"interviewId"`
		Message     string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.InterviewID)
	assert.Equal(t,
		"Hello! I see you're applying for the Backend Engineer position working with Go, Postgres. Are you ready to begin?",
		resp.Message)
}

func TestStartRejectsMissingFields(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway())

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing jobRole", body: map[string]string{"techStack": "Go"}},
		{name: "missing techStack", body: map[string]string{"jobRole": "Backend Engineer"}},
		{name: "empty body", body: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, srv, "/api/start", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestChatRoundTrip(t *testing.T) {
	gateway := &llm.MockGateway{Reply: "Great — what is a goroutine?"}
	srv := newTestServer(t, gateway)

	w := postJSON(t, srv, "/api/start", map[string]string{
		"jobRole":   "Backend Engineer",
		"techStack": "Go, Postgres",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var started struct {
		InterviewID string `json:"interviewId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	w = postJSON(t, srv, "/api/chat", map[string]string{
		"interviewId": started.InterviewID,
		"userMessage": "Yes, ready.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reply struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "Great — what is a goroutine?", reply.Message)

	// The stored record replays both turns in submission order.
	req := httptest.NewRequest(http.MethodGet, "/api/interviews/"+started.InterviewID, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var iv struct {
		History []struct {
			Speaker string `json:"speaker"`
			Text    string `json:"text"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &iv))
	require.Len(t, iv.History, 3)
	assert.Equal(t, "candidate", iv.History[1].Speaker)
	assert.Equal(t, "Yes, ready.", iv.History[1].Text)
	assert.Equal(t, "interviewer", iv.History[2].Speaker)
	assert.Equal(t, "Great — what is a goroutine?", iv.History[2].Text)
}

func TestChatUnknownInterview(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway())

	w := postJSON(t, srv, "/api/chat", map[string]string{
		"interviewId": "does-not-exist",
		"userMessage": "hello",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Interview not found", resp["error"])
}

func TestChatEmptyMessage(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway())

	w := postJSON(t, srv, "/api/chat", map[string]string{
		"interviewId": "iv-1",
		"userMessage": "  ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatGatewayFailureStillSucceeds(t *testing.T) {
	gateway := llm.NewMockGateway()
	srv := newTestServer(t, gateway)

	w := postJSON(t, srv, "/api/start", map[string]string{
		"jobRole":   "Backend Engineer",
		"techStack": "Go",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var started struct {
		InterviewID string `json:"interviewId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))

	gateway.Err = fmt.Errorf("model unreachable")

	w = postJSON(t, srv, "/api/chat", map[string]string{
		"interviewId": started.InterviewID,
		"userMessage": "my answer",
	})
	require.Equal(t, http.StatusOK, w.Code, "gateway failure must not become an HTTP error")

	var reply struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, interview.FallbackReply, reply.Message)
}

func TestListInterviews(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway())

	for _, role := range []string{"Backend Engineer", "Frontend Developer"} {
		w := postJSON(t, srv, "/api/start", map[string]string{
			"jobRole":   role,
			"techStack": "Go",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/interviews", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Interviews []struct {
			ID      string `json:"id"`
			JobRole string `json:"jobRole"`
		} `json:"interviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Interviews, 2)

	req = httptest.NewRequest(http.MethodGet, "/api/interviews?limit=1", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Interviews, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/interviews?limit=bogus", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetInterviewUnknownID(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway())

	req := httptest.NewRequest(http.MethodGet, "/api/interviews/missing", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, llm.NewMockGateway())

	req := httptest.NewRequest(http.MethodOptions, "/api/start", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
