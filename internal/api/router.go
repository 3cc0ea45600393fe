package api

import (
	"maintenance-route-service/internal/api/handlers"
	"maintenance-route-service/internal/ports"
	"maintenance-route-service/internal/services"
	"net/http"
	"time"
)

// Deps are the collaborators the HTTP layer needs. Handlers stay unaware
// of concrete adapters.
type Deps struct {
	Source   ports.DeviceSource
	Planner  *services.MaintenancePlanner
	Defaults handlers.MaintenanceDefaults
	Now      func() time.Time
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		DefaultDepot:     deps.Defaults.Depot,
		DefaultDepotName: deps.Defaults.DepotName,
	}
	maintenanceHandler := &handlers.MaintenanceHandler{
		Source:   deps.Source,
		Planner:  deps.Planner,
		Defaults: deps.Defaults,
		Now:      deps.Now,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/devices", maintenanceHandler.ListDevices)
	mux.HandleFunc("/routes", routeHandler.Compute)
	mux.HandleFunc("/maintenance/routes", maintenanceHandler.PlanRoute)

	return requestIDMiddleware(loggingMiddleware(mux))
}
