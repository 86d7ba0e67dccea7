package response

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

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	// CreateTestContext bypasses the engine, so a status set via c.Status is
	// never flushed to the recorder on its own.
	c.Writer.WriteHeaderNow()
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"name": "test"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if resp.Message != "ok" {
		t.Errorf("expected message 'ok', got %q", resp.Message)
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, map[string]int{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestNoContent(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		NoContent(c)
	})

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestValidation_FieldMap(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Validation(c, map[string]string{"username": "username already exists"})
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Fields["username"] != "username already exists" {
		t.Errorf("expected field error for username, got %v", resp.Fields)
	}
}

func TestError_AppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewNotFound("project not found"))
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 404 {
		t.Errorf("expected code 404, got %d", resp.Code)
	}
	if resp.Message != "project not found" {
		t.Errorf("expected message 'project not found', got %q", resp.Message)
	}
}

func TestError_FieldError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewFieldError("assignee", "assignee user not found"))
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Fields["assignee"] != "assignee user not found" {
		t.Errorf("expected field error for assignee, got %v", resp.Fields)
	}
}

func TestError_GenericError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("database exploded: secret detail"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Message != "internal server error" {
		t.Errorf("internal detail should not leak, got %q", resp.Message)
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		expected bool
	}{
		{"forbidden matches 403", NewForbidden("no"), http.StatusForbidden, true},
		{"forbidden is not 404", NewForbidden("no"), http.StatusNotFound, false},
		{"not found matches 404", NewNotFound("missing"), http.StatusNotFound, true},
		{"plain error never matches", errors.New("boom"), http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKind(tt.err, tt.status); got != tt.expected {
				t.Errorf("IsKind() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := NewForbidden("only the project owner can do this")
	if err.Error() != "only the project owner can do this" {
		t.Errorf("Error() = %q", err.Error())
	}
}
