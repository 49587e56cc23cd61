package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhisek/roadsign/internal/roadsign"
)

// CheckResult is the state of one dependency.
type CheckResult struct {
	Status string `json:"status"`
}

// CatalogCheck describes the loaded sign catalog.
type CatalogCheck struct {
	Status  string `json:"status"`
	Signs   int    `json:"signs"`
	Version string `json:"version,omitempty"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	SQLite  CheckResult  `json:"sqlite"`
	Catalog CatalogCheck `json:"catalog"`
}

func handleHealth(logger *slog.Logger, db Pinger, svc *roadsign.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		resp := HealthResponse{
			SQLite:  CheckResult{Status: "ok"},
			Catalog: CatalogCheck{Status: "ok"},
		}
		status := http.StatusOK

		if err := db.Ping(ctx); err != nil {
			logger.Error("health check failed", "name", "sqlite", "error", err)
			resp.SQLite.Status = "error"
			status = http.StatusServiceUnavailable
		}

		if cat := svc.Catalog(); cat == nil || cat.Len() == 0 {
			logger.Error("health check failed", "name", "catalog", "error", "no signs loaded")
			resp.Catalog.Status = "error"
			status = http.StatusServiceUnavailable
		} else {
			resp.Catalog.Signs = cat.Len()
			resp.Catalog.Version = cat.Version()
		}

		writeJSON(w, status, resp)
	}
}
