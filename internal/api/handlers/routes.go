package handlers

import (
	"encoding/json"
	"maintenance-route-service/internal/api/dto"
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/services"
	"net/http"
	"strings"
)

const maxRoutePoints = 500

// RouteHandler sequences caller-supplied points. It holds no state beyond
// the default depot.
type RouteHandler struct {
	DefaultDepot     domain.Coordinates
	DefaultDepotName string
}

func (h *RouteHandler) Compute(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ComputeRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Points) > maxRoutePoints {
		writeError(w, r, http.StatusBadRequest, "too many points")
		return
	}

	depot, depotName := h.DefaultDepot, h.DefaultDepotName
	if req.Depot != nil {
		depot, depotName = req.Depot.Coordinates(), req.Depot.Name
	}

	points := make([]domain.VisitPoint[json.RawMessage], 0, len(req.Points))
	skipped := make([]string, 0)
	for _, p := range req.Points {
		if strings.TrimSpace(p.ID) == "" {
			writeError(w, r, http.StatusBadRequest, "every point needs an id")
			return
		}
		vp := p.VisitPoint()
		if !vp.Coordinates.Valid() {
			skipped = append(skipped, p.ID)
		}
		points = append(points, vp)
	}

	route, err := services.ComputeRoute(depot, points)
	if err != nil {
		writeServiceError(w, r, "compute route", err)
		return
	}

	plan := services.SummarizeRoute(depot, route, nil)
	plan.DepotName = depotName

	writeJSON(w, r, http.StatusOK, dto.NewComputeRouteResponse(plan, skipped))
}
