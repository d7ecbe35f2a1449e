package http

import (
	"encoding/json"
	"net/http"
	apperrors "stayhub/pkg/errors"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

type PaginatedResponse struct {
	Data   any   `json:"data"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int64 `json:"offset"`
}

func WritePaginated(w http.ResponseWriter, data any, total int64, limit int, offset int64) error {
	return WriteJSON(w, http.StatusOK, PaginatedResponse{
		Data:   data,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
