package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"interview-pipeline/internal/app/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postEvent(t *testing.T, router *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func envelopeEvent(key string) string {
	return fmt.Sprintf(`{"detail": {"bucket": {"name": "bucket"}, "object": {"key": %q}}}`, key)
}

func TestHandleEvent_ValidUploadReturnsJobID(t *testing.T) {
	key := "videos/uploads/user-1/1700000000-interview.mp4"
	store := taggedStore("bucket", key)
	submitter := &testutil.MockSubmitter{}
	server := NewServer(newTestDispatcher(store, submitter, nil), zap.NewNop())
	router := server.Router()

	w := postEvent(t, router, envelopeEvent(key))

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["jobId"])
	assert.Equal(t, "task-456", body["taskId"])
	assert.Len(t, submitter.Jobs, 1)
}

func TestHandleEvent_NonUploadKeyIsNoOp(t *testing.T) {
	submitter := &testutil.MockSubmitter{}
	server := NewServer(newTestDispatcher(testutil.NewMockObjectStore(), submitter, nil), zap.NewNop())

	w := postEvent(t, server.Router(), envelopeEvent("exports/report.csv"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, submitter.Jobs)
}

func TestHandleEvent_ShortKeyIsBadRequest(t *testing.T) {
	submitter := &testutil.MockSubmitter{}
	server := NewServer(newTestDispatcher(testutil.NewMockObjectStore(), submitter, nil), zap.NewNop())

	w := postEvent(t, server.Router(), envelopeEvent("videos/uploads/orphan.mp4"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, submitter.Jobs)
}

func TestHandleEvent_MissingMetadataIsBadRequest(t *testing.T) {
	key := "videos/uploads/user-1/1700000000-interview.mp4"
	submitter := &testutil.MockSubmitter{}
	server := NewServer(newTestDispatcher(testutil.NewMockObjectStore(), submitter, nil), zap.NewNop())

	w := postEvent(t, server.Router(), envelopeEvent(key))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, submitter.Jobs)
}

func TestHandleEvent_MalformedPayloadIsBadRequest(t *testing.T) {
	server := NewServer(newTestDispatcher(testutil.NewMockObjectStore(), &testutil.MockSubmitter{}, nil), zap.NewNop())

	w := postEvent(t, server.Router(), `{"neither": "shape"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleEvent_SubmitFailureIsServerError(t *testing.T) {
	key := "videos/uploads/user-1/1700000000-interview.mp4"
	store := taggedStore("bucket", key)
	submitter := &testutil.MockSubmitter{Err: fmt.Errorf("queue unavailable")}
	server := NewServer(newTestDispatcher(store, submitter, nil), zap.NewNop())

	w := postEvent(t, server.Router(), envelopeEvent(key))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "queue unavailable")
}

func TestHealthz(t *testing.T) {
	server := NewServer(newTestDispatcher(testutil.NewMockObjectStore(), &testutil.MockSubmitter{}, nil), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
