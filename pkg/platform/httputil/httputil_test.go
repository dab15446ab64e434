package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "clientele/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation maps to 400", dErrors.New(dErrors.CodeValidation, "firstName is required"), http.StatusBadRequest, "firstName is required"},
		{"conflict maps to 409", dErrors.New(dErrors.CodeConflict, "email already exists"), http.StatusConflict, "email already exists"},
		{"not found maps to 404", dErrors.New(dErrors.CodeNotFound, "client not found"), http.StatusNotFound, "client not found"},
		{"internal maps to 500 and keeps underlying message", dErrors.Wrap(errors.New("connection refused"), dErrors.CodeInternal, "storage failure"), http.StatusInternalServerError, "storage failure: connection refused"},
		{"uncoded errors map to 500", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, w.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["message"] != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body["message"])
			}
			if len(body) != 1 {
				t.Fatalf("error envelope must carry exactly one field, got %v", body)
			}
		})
	}
}
