package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	return env
}

func TestRespondErrorUsesErrorMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, http.StatusNotFound, "course_not_found", errors.New("course does not exist"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Error.Message != "course does not exist" {
		t.Fatalf("expected error message, got %q", env.Error.Message)
	}
	if env.Error.Code != "course_not_found" {
		t.Fatalf("expected code course_not_found, got %q", env.Error.Code)
	}
}

func TestRespondErrorFallsBackToCode(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, http.StatusForbidden, "not_enrolled", nil)

	env := decodeEnvelope(t, w)
	if env.Error.Message != "not_enrolled" {
		t.Fatalf("expected code as message, got %q", env.Error.Message)
	}
}

func TestRespondErrorWithNothingToSay(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, http.StatusInternalServerError, "", nil)

	env := decodeEnvelope(t, w)
	if env.Error.Message != "unknown error" {
		t.Fatalf("expected fallback message, got %q", env.Error.Message)
	}
}
