package web

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

	"adoptme-api/internal/platform/apperr"
	"adoptme-api/internal/platform/logger"
)

// spyLogger captura el último set de fields logueado, para asertar sobre él.
type spyLogger struct {
	lastMsg    string
	lastFields map[string]any
}

func (l *spyLogger) With(map[string]any) logger.Logger { return l }

func (l *spyLogger) Debug(msg string, fields map[string]any) { l.lastMsg, l.lastFields = msg, fields }
func (l *spyLogger) Info(msg string, fields map[string]any)  { l.lastMsg, l.lastFields = msg, fields }
func (l *spyLogger) Warn(msg string, fields map[string]any)  { l.lastMsg, l.lastFields = msg, fields }
func (l *spyLogger) Error(msg string, fields map[string]any) { l.lastMsg, l.lastFields = msg, fields }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestFail_MapsKindsToStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.InvalidArgument("invalid id"), 400},
		{apperr.Unauthorized("invalid credentials"), 401},
		{apperr.NotFound("pet not found"), 404},
		{apperr.Conflict("pet already adopted"), 409},
		{apperr.Internal("db down", errors.New("conn refused")), 500},
		{errors.New("some driver error"), 500}, // no clasificado => internal
	}

	rp := NewResponder(logger.Default(), false)
	for _, c := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/adoptions", nil)
		rp.Fail(rec, req, c.err)

		assert.Equal(t, c.want, rec.Code, "err=%v", c.err)
		body := decode(t, rec)
		assert.Equal(t, StatusError, body["status"])
		assert.NotEmpty(t, body["message"])
	}
}

func TestFail_ProductionHidesInternalDetail(t *testing.T) {
	rp := NewResponder(logger.Default(), true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/adoptions", nil)
	rp.Fail(rec, req, apperr.Internal("insert adoption", errors.New("pq: relation missing")))

	require.Equal(t, 500, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, rec.Body.String(), "pq:")
	_, hasDetails := body["details"]
	assert.False(t, hasDetails)
}

func TestFail_DevIncludesInternalDetail(t *testing.T) {
	rp := NewResponder(logger.Default(), false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/adoptions", nil)
	rp.Fail(rec, req, apperr.Internal("insert adoption", errors.New("pq: relation missing")))

	require.Equal(t, 500, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.Contains(t, body["details"], "pq: relation missing")
}

func TestFail_DomainMessageSurvivesForClientErrors(t *testing.T) {
	rp := NewResponder(logger.Default(), true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/adoptions/xyz", nil)
	rp.Fail(rec, req, apperr.NotFound("adoption not found"))

	body := decode(t, rec)
	assert.Equal(t, "adoption not found", body["message"])
}

func TestSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, 201, map[string]string{"id": "abc"})

	require.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, StatusSuccess, body["status"])
	assert.Equal(t, "abc", body["payload"].(map[string]any)["id"])
}

func TestFail_LogsSanitizedBody(t *testing.T) {
	spy := &spyLogger{}
	rp := NewResponder(spy, true)

	// el handler consume el body como siempre; Fail loguea la copia redactada
	h := CaptureBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Contains(t, string(raw), "coder123", "handler must still read the body")

		rp.Fail(w, r, apperr.Internal("insert user", errors.New("pq: conn refused")))
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users",
		strings.NewReader(`{"email":"ana@example.com","password":"coder123"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	require.Equal(t, 500, rec.Code)
	require.Equal(t, "request failed", spy.lastMsg)

	assert.Equal(t, "POST", spy.lastFields["method"])
	assert.Equal(t, "/api/users", spy.lastFields["path"])
	assert.Equal(t, 500, spy.lastFields["status"])

	body, ok := spy.lastFields["body"].(map[string]any)
	require.True(t, ok, "expected sanitized body in log fields, got %v", spy.lastFields)
	assert.Equal(t, "ana@example.com", body["email"])
	assert.Equal(t, "[REDACTED]", body["password"])
}

func TestFail_NonJSONBodyNotLogged(t *testing.T) {
	spy := &spyLogger{}
	rp := NewResponder(spy, true)

	h := CaptureBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rp.Fail(w, r, apperr.Internal("boom", errors.New("x")))
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader("password=coder123"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(rec, req)

	_, has := spy.lastFields["body"]
	assert.False(t, has, "non-JSON bodies must not be logged")
}

func TestSanitizeFields(t *testing.T) {
	in := map[string]any{
		"email":         "ana@example.com",
		"password":      "coder123",
		"Token":         "abc",
		"authorization": "Bearer xyz",
	}
	out := SanitizeFields(in)

	assert.Equal(t, "ana@example.com", out["email"])
	assert.Equal(t, "[REDACTED]", out["password"])
	assert.Equal(t, "[REDACTED]", out["Token"])
	assert.Equal(t, "[REDACTED]", out["authorization"])
	// el original no se muta
	assert.Equal(t, "coder123", in["password"])
}
