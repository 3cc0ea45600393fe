package handlers

import (
	"encoding/json"
	"log"
	"maintenance-route-service/internal/api/dto"
	"maintenance-route-service/internal/domain"
	"maintenance-route-service/internal/platform/obs"
	"maintenance-route-service/internal/ports"
	"maintenance-route-service/internal/services"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MaintenanceDefaults are applied to fields a request leaves empty.
type MaintenanceDefaults struct {
	Depot      domain.Coordinates
	DepotName  string
	PeriodDays int
	BufferKm   float64
}

// MaintenanceHandler exposes the maintenance map devices and route planning.
type MaintenanceHandler struct {
	Source   ports.DeviceSource
	Planner  *services.MaintenancePlanner
	Defaults MaintenanceDefaults
	Now      func() time.Time
}

func (h *MaintenanceHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func parsePeriodDays(raw string, fallback int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 365 {
		return 0, false
	}
	return n, true
}

func (h *MaintenanceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()

	periodDays, ok := parsePeriodDays(q.Get("period_days"), h.Defaults.PeriodDays)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "period_days must be between 1 and 365")
		return
	}

	quick, err := services.ParseQuickFilter(q.Get("filter"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "filter must be one of all, critical, battery, offline")
		return
	}

	devices, err := h.Source.ListDevices(r.Context(), periodDays)
	if err != nil {
		log.Printf("list devices failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	filter := services.DeviceFilter{AirQloud: q.Get("airqloud"), Quick: quick}
	res := dto.ListDevicesResponse{
		Devices:   dto.NewDeviceResponses(filter.Apply(devices, h.now())),
		AirQlouds: services.UniqueAirQlouds(devices),
	}

	writeJSON(w, r, http.StatusOK, res)
}

// PlanRoute plans a maintenance route over the selected devices.
// With ?format=geojson the route is returned as a FeatureCollection.
func (h *MaintenanceHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MaintenanceRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "geojson" {
		writeError(w, r, http.StatusBadRequest, "format must be json or geojson")
		return
	}

	periodDays := req.PeriodDays
	if periodDays == 0 {
		periodDays = h.Defaults.PeriodDays
	}
	if periodDays < 1 || periodDays > 365 {
		writeError(w, r, http.StatusBadRequest, "period_days must be between 1 and 365")
		return
	}

	bufferKm := req.BufferKm
	if bufferKm == 0 {
		bufferKm = h.Defaults.BufferKm
	}
	if bufferKm < 0 || bufferKm > 100 {
		writeError(w, r, http.StatusBadRequest, "buffer_km must be between 0 and 100")
		return
	}

	quick, err := services.ParseQuickFilter(req.Filter)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "filter must be one of all, critical, battery, offline")
		return
	}

	depot, depotName := h.Defaults.Depot, h.Defaults.DepotName
	if req.Depot != nil {
		depot, depotName = req.Depot.Coordinates(), req.Depot.Name
	}

	route, err := h.Planner.Plan(r.Context(), services.PlanMaintenanceRequest{
		Depot:      depot,
		DepotName:  depotName,
		PeriodDays: periodDays,
		Filter: services.DeviceFilter{
			AirQloud:  req.AirQloud,
			Quick:     quick,
			DeviceIDs: req.DeviceIDs,
		},
		BufferKm: bufferKm,
		Now:      h.now(),
	})
	if err != nil {
		writeServiceError(w, r, "plan maintenance route", err)
		return
	}

	if format == "geojson" {
		body, err := json.Marshal(dto.NewRouteFeatureCollection(route))
		if err != nil {
			writeServiceError(w, r, "render geojson", err)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewMaintenanceRouteResponse(route))
}
