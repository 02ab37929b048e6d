package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/growthchart/pkg/errors"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if _, err := uuid.Parse(seen); err != nil {
			t.Errorf("generated id %q is not a uuid", seen)
		}
		if rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("header %q != context %q", rec.Header().Get(RequestIDHeader), seen)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen != id {
			t.Errorf("id = %q, want %q", seen, id)
		}
	})

	t.Run("invalid replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen == "<script>" {
			t.Error("invalid id should be replaced")
		}
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidConfig, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidInput, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeFileNotFound, "gone"), http.StatusNotFound},
		{errors.New(errors.ErrCodeSelectorNotFound, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeScaleOverrideInvalid, "x"), http.StatusUnprocessableEntity},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(WithRequestID(req.Context(), "abc"))

	rec := httptest.NewRecorder()
	WriteError(rec, req, errors.New(errors.ErrCodeInvalidConfig, "chart width and height must be positive"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != errors.ErrCodeInvalidConfig || body.Error.RequestID != "abc" ||
		body.Error.Message != "chart width and height must be positive" {
		t.Errorf("body = %+v", body)
	}

	rec = httptest.NewRecorder()
	WriteError(rec, req, fmt.Errorf("dial tcp: secret detail"))
	if strings.Contains(rec.Body.String(), "secret") {
		t.Error("internal error details should not leak")
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		max     int64
		wantErr bool
		status  int
	}{
		{"ok", `{"name":"a"}`, 0, false, 0},
		{"unknown field", `{"nom":"a"}`, 0, true, http.StatusBadRequest},
		{"trailing", `{"name":"a"} {}`, 0, true, http.StatusBadRequest},
		{"malformed", `{`, 0, true, http.StatusBadRequest},
		{"too large", `{"name":"` + strings.Repeat("a", 100) + `"}`, 16, true, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			var p payload
			err := DecodeJSON(httptest.NewRecorder(), req, tt.max, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && StatusFor(err) != tt.status {
				t.Errorf("status = %d, want %d", StatusFor(err), tt.status)
			}
		})
	}
}
