package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type GetDataRangeResponse struct {
	Earliest    string    `json:"earliest" example:"1913-01"`
	Latest      string    `json:"latest" example:"2025-08"`
	CurrentRate float64   `json:"currentRate" example:"138.5"`
	LoadedAt    time.Time `json:"loadedAt" example:"2025-09-01T00:00:00Z"`
}

// GetDataRange godoc
// @Summary Available data range
// @Description Months with CPI data and the current ETB per USD rate used for conversions
// @Tags Inflation
// @Produce json
// @Success 200 {object} GetDataRangeResponse
// @Failure 500 {object} errorResponse
// @Router /inflate/range [get]
func (h *Handler) GetDataRange(w http.ResponseWriter, r *http.Request) {
	dr, err := h.service.DataRange(r.Context())
	if err != nil {
		msg := "ups, couldn't get data range this time"
		logrus.WithError(err).WithField("handler", "GetDataRange").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetDataRangeResponse{
		Earliest:    dr.Earliest.Key(),
		Latest:      dr.Latest.Key(),
		CurrentRate: dr.CurrentRate,
		LoadedAt:    dr.LoadedAt,
	})
}
