package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/app"
	"github.com/croxz/croxz-go/internal/domain"
)

// stubRunner returns one canned outcome for every invocation
type stubRunner struct {
	outcome *domain.ProcessOutcome
}

func (s *stubRunner) Run(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessOutcome, error) {
	return s.outcome, nil
}

func newTestRouter(runner domain.ProcessRunner) *gin.Engine {
	log := zap.NewNop()
	cfg := domain.ClassifyConfig{
		CheckPriority:     50,
		MaxFilenameLength: 200,
	}
	bridge := domain.BridgeConfig{
		Script:       "/opt/croxz/croxz_bridge.py",
		PythonBinary: "python3",
		Timeout:      10 * time.Second,
	}

	manager := app.NewClassifyManager(nil, nil, log)
	manager.Register(app.NewMediaClassifier(runner, bridge, cfg, log))
	manager.Register(app.NewPlaylistClassifier(runner, bridge, cfg, log))

	return SetupRouter(manager, nil, bridge.Script, log)
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(&stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Classify(t *testing.T) {
	router := newTestRouter(&stubRunner{})

	w := postJSON(router, "/api/v1/classify", gin.H{"url": "https://example.com/archive.zip"})
	require.Equal(t, http.StatusOK, w.Code)

	var result app.CheckResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.DecisionDirect, result.Decision)
	assert.Equal(t, "zip", result.Extension)
	assert.False(t, result.Supported)
}

func TestRouter_Classify_MissingURL(t *testing.T) {
	router := newTestRouter(&stubRunner{})

	w := postJSON(router, "/api/v1/classify", gin.H{"content_type": "text/html"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Parse_Success(t *testing.T) {
	router := newTestRouter(&stubRunner{outcome: &domain.ProcessOutcome{
		ExitCode: 0,
		Output:   `{"id": "abc", "title": "Some Video", "formats": [{"url": "https://cdn.example.com/v", "ext": "mp4"}]}`,
	}})

	w := postJSON(router, "/api/v1/parse", gin.H{"url": "https://www.youtube.com/watch?v=abc123"})
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.MediaResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Some Video", result.Title)
	require.Len(t, result.Formats, 1)
}

func TestRouter_Parse_ExtractionFailure(t *testing.T) {
	router := newTestRouter(&stubRunner{outcome: &domain.ProcessOutcome{
		ExitCode:    1,
		ErrorOutput: "ERROR: video unavailable",
	}})

	w := postJSON(router, "/api/v1/parse", gin.H{"url": "https://www.youtube.com/watch?v=abc123"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["parse_error"])
	assert.Equal(t, "ERROR: video unavailable", body["error"])
}

func TestRouter_Parse_NoClassifier(t *testing.T) {
	router := newTestRouter(&stubRunner{})

	w := postJSON(router, "/api/v1/parse", gin.H{"url": "https://example.com/about"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_HistoryRoutesAbsentWithoutRepository(t *testing.T) {
	router := newTestRouter(&stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
