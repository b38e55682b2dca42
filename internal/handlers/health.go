package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"SCHEDULING_PLATFORM_BACK-END/internal/dto"
	"SCHEDULING_PLATFORM_BACK-END/internal/utils"
)

// HealthHandler handles health check related requests
type HealthHandler struct {
	db        DB
	uploadDir string
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db DB, uploadDir string) *HealthHandler {
	return &HealthHandler{db: db, uploadDir: uploadDir}
}

// HealthCheck handles basic health check (no database)
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// LivenessCheck handles process liveness check
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck reports whether the database answers and the upload directory is usable
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	details := map[string]any{"db": "ok", "uploads": "ok"}
	ready := true

	if err := h.db.Ping(ctx); err != nil {
		details["db"] = err.Error()
		ready = false
	}
	if err := checkDir(h.uploadDir); err != nil {
		details["uploads"] = err.Error()
		ready = false
	}

	if !ready {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Details: details})
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ready", Details: details})
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
