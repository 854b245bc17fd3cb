package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"etbinflation/internal/domain"

	"github.com/sirupsen/logrus"
)

const maxRequestBytes = 1 << 10

const (
	msgMissingParams       = "Missing parameters: amountEtb, month, and year are required."
	msgRatesNotFound       = "No exchange rate data found."
	msgCurrentCPIMissing   = "Current inflation data not available."
	msgInvalidRequestBody  = "invalid request body"
	msgNotWholeNumber      = "month and year must be whole numbers"
	msgConversionUnhandled = "ups, couldn't convert amount this time"
)

// Convert godoc
// @Summary Inflation-adjust an ETB amount
// @Description Converts an amount of ETB at a historical month into today's ETB using US CPI and historical ETB/USD rates
// @Tags Inflation
// @Accept json
// @Produce json
// @Param request body domain.ConversionRequest true "Amount and historical month"
// @Success 200 {object} domain.ConversionResult
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /inflate [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req domain.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, domain.ErrNotWholeNumber) {
			writeError(w, http.StatusBadRequest, msgNotWholeNumber)
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	if err := h.validator.ValidateRequest(req); err != nil {
		if errors.Is(err, domain.ErrMissingParams) {
			writeError(w, http.StatusBadRequest, msgMissingParams)
			return
		}
		var paramErr *domain.InvalidParamError
		if errors.As(err, &paramErr) {
			writeError(w, http.StatusBadRequest, paramErr.Error())
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	period := domain.NewPeriod(int(*req.Year), int(*req.Month))
	res, err := h.service.Convert(r.Context(), *req.AmountEtb, period)
	if err != nil {
		status, msg := conversionFailure(err)
		if status >= http.StatusInternalServerError {
			logrus.WithError(err).WithFields(logrus.Fields{
				"handler":   "Convert",
				"amountEtb": *req.AmountEtb,
				"period":    period.Key(),
			}).Error(msg)
		}
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func conversionFailure(err error) (int, string) {
	var cpiErr *domain.CPIUnavailableError
	switch {
	case errors.Is(err, domain.ErrRatesNotFound):
		return http.StatusNotFound, msgRatesNotFound
	case errors.As(err, &cpiErr):
		return http.StatusBadRequest, fmt.Sprintf("Inflation data not available for %s. Available range: %d-%d to %d-%d",
			cpiErr.Requested.Key(), cpiErr.Earliest.Year, cpiErr.Earliest.Month, cpiErr.Latest.Year, cpiErr.Latest.Month)
	case errors.Is(err, domain.ErrCurrentCPIUnavailable):
		return http.StatusInternalServerError, msgCurrentCPIMissing
	case errors.Is(err, domain.ErrAmountOutOfRange):
		return http.StatusBadRequest, "amountEtb is too large"
	default:
		return http.StatusInternalServerError, msgConversionUnhandled
	}
}
