package response_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/avasilyev/football-stats-service/pkg/response"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nil", nil, http.StatusOK, "ok"},
		{"invalid input", service.NewInvalidInputError([]service.FieldError{{Field: "name", Message: "empty"}}), http.StatusBadRequest, "invalid_input"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"already exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"conflict", repository.ErrConflict, http.StatusConflict, "conflict"},
		{"constraint violation", repository.ErrInvalidData, http.StatusBadRequest, "invalid_data"},
		{"wrapped not found", errors.Join(errors.New("ctx"), repository.ErrNotFound), http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := response.MapError(tc.err)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
			if payload.Error != tc.wantCode {
				t.Fatalf("code = %q, want %q", payload.Error, tc.wantCode)
			}
		})
	}
}

func TestMapError_FieldDetails(t *testing.T) {
	err := service.NewInvalidInputError([]service.FieldError{
		{Field: "minute", Message: "must be in [0..120]"},
	})
	_, payload := response.MapError(err)
	if len(payload.FieldErrors) != 1 || payload.FieldErrors[0].Field != "minute" {
		t.Fatalf("field errors not propagated: %+v", payload.FieldErrors)
	}
}
