// Package web concentra el envelope de respuesta y el normalizador de errores.
// Todo el API responde {status, payload} o {status, message}; ningún handler
// arma JSON de error a mano.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"adoptme-api/internal/platform/apperr"
	"adoptme-api/internal/platform/logger"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type envelope struct {
	Status  string `json:"status"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSON escribe un cuerpo arbitrario (para respuestas fuera del envelope
// estándar, como los contadores de mocks).
func JSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

// Success escribe el envelope canónico {status:"success", payload}.
func Success(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, envelope{Status: StatusSuccess, Payload: payload})
}

// Responder traduce errores internos a (status HTTP, envelope de error) y
// los loguea con contexto. prod oculta el detalle de los 500.
type Responder struct {
	log  logger.Logger
	prod bool
}

func NewResponder(log logger.Logger, prod bool) *Responder {
	if log == nil {
		log = logger.Default()
	}
	return &Responder{log: log, prod: prod}
}

func statusFromKind(k apperr.Kind) int {
	switch k {
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail resuelve status y mensaje seguro para err y responde el envelope.
func (rp *Responder) Fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromKind(apperr.KindOf(err))

	msg := apperr.Message(err)
	if status == http.StatusInternalServerError {
		// nunca filtramos detalle interno en un 500
		msg = "Internal Server Error"
	}

	fields := map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
		"error":  err.Error(),
	}
	if body, ok := capturedBody(r); ok {
		fields["body"] = SanitizeFields(body)
	}
	if status >= http.StatusInternalServerError {
		rp.log.Error("request failed", fields)
	} else {
		rp.log.Debug("request rejected", fields)
	}

	body := envelope{Status: StatusError, Message: msg}
	if !rp.prod && status == http.StatusInternalServerError {
		body.Details = err.Error()
	}
	writeJSON(w, status, body)
}

type ctxKey int

const bodyKey ctxKey = iota

// los bodies de este API son chicos; el límite es solo un tope de memoria
const maxCapturedBody = 64 << 10

// CaptureBody bufferea el body JSON del request para que Fail pueda loguearlo
// (redactado) junto con método, path y status. El handler lo lee igual que
// siempre: el body se repone intacto.
func CaptureBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody ||
			!strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			next.ServeHTTP(w, r)
			return
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxCapturedBody))
		_ = r.Body.Close()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(raw))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyKey, raw)))
	})
}

func capturedBody(r *http.Request) (map[string]any, bool) {
	raw, _ := r.Context().Value(bodyKey).([]byte)
	if len(raw) == 0 {
		return nil, false
	}
	var m map[string]any
	if json.Unmarshal(raw, &m) != nil {
		return nil, false
	}
	return m, true
}

// Campos sensibles que jamás se loguean en claro.
var sensitiveFields = map[string]struct{}{
	"password":      {},
	"pass":          {},
	"token":         {},
	"authorization": {},
}

// SanitizeFields reemplaza campos sensibles por [REDACTED] antes de loguear
// cuerpos de request. No muta el mapa original.
func SanitizeFields(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if _, ok := sensitiveFields[strings.ToLower(k)]; ok {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = v
	}
	return out
}
