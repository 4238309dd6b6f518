package handler

import (
	"net/http"

	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/service"
)

// GeoHandler serves the public country aggregation endpoints backing the
// map view.
type GeoHandler struct {
	geoService *service.GeoService
}

func NewGeoHandler(geoService *service.GeoService) *GeoHandler {
	return &GeoHandler{geoService: geoService}
}

func (h *GeoHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.geoService.CountByCountry(r.URL.Query().Get("country"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *GeoHandler) List(w http.ResponseWriter, r *http.Request) {
	pins, err := h.geoService.ListByCountry(r.URL.Query().Get("country"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if pins == nil {
		pins = []*model.ChallengePin{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"challenges": pins})
}
