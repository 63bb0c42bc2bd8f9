package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("report: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("snapshot: %w", ErrDuplicate), http.StatusConflict},
		{fmt.Errorf("%w: bad filter", ErrValidation), http.StatusBadRequest},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		RespondError(rr, tc.err)

		if rr.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, rr.Code)
		}
		if got := rr.Header().Get("Content-Type"); got != "application/problem+json" {
			t.Fatalf("%v: expected problem+json, got %q", tc.err, got)
		}
		var body ProblemDetail
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Status != tc.status {
			t.Fatalf("body status %d does not match %d", body.Status, tc.status)
		}
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, errors.New("pq: password authentication failed"))

	var body ProblemDetail
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Detail != "" {
		t.Fatalf("internal errors must not leak detail, got %q", body.Detail)
	}
}
