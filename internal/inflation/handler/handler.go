package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"etbinflation/internal/domain"
	"etbinflation/internal/inflation"
)

type Validator interface {
	ValidateRequest(req domain.ConversionRequest) error
}

type Service interface {
	Convert(ctx context.Context, amountEtb float64, period domain.Period) (domain.ConversionResult, error)
	DataRange(ctx context.Context) (inflation.DataRange, error)
}

type Handler struct {
	validator Validator
	service   Service
}

func NewInflationHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	StatusCode    int    `json:"statusCode" example:"400"`
	StatusMessage string `json:"statusMessage" example:"Missing parameters: amountEtb, month, and year are required."`
}

func writeError(w http.ResponseWriter, statusCode int, statusMessage string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		StatusCode:    statusCode,
		StatusMessage: statusMessage,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
