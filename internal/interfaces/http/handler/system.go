package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is the API version reported by /system/info
const Version = "1.0.0"

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime    time.Time
	capabilities Capabilities
}

// Capabilities lists the optional features this instance serves, so clients
// can hide PDF actions and stored-file links.
type Capabilities struct {
	PDF     bool
	Storage bool
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(capabilities Capabilities) *SystemHandler {
	return &SystemHandler{
		startTime:    time.Now(),
		capabilities: capabilities,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name           string `json:"name" example:"EX'OS Backend API"`
	Version        string `json:"version" example:"1.0.0"`
	GoVersion      string `json:"go_version" example:"go1.25.5"`
	Uptime         string `json:"uptime" example:"1h30m45s"`
	PDFEnabled     bool   `json:"pdf_enabled"`
	StorageEnabled bool   `json:"storage_enabled"`
}

// GetSystemInfo godoc
//
//	@ID				getSystemSystemInfo
//
//	@Summary		Get system information
//	@Description	Returns basic system information including version and uptime
//	@Tags			system
//	@Produce		json
//	@Success		200		{object}	APIResponse[SystemInfoResponse]
//	@Router			/system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:           "EX'OS Backend API",
		Version:        Version,
		GoVersion:      runtime.Version(),
		Uptime:         time.Since(h.startTime).Round(time.Second).String(),
		PDFEnabled:     h.capabilities.PDF,
		StorageEnabled: h.capabilities.Storage,
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
//
//	@ID				pingSystem
//
//	@Summary		Ping the API
//	@Description	Simple ping endpoint to check if the API is responsive
//	@Tags			system
//	@Produce		json
//	@Success		200		{object}	APIResponse[PingResponse]
//	@Router			/system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthResponse is the body of the unversioned /health probe
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
	Time   string `json:"time"`
}

// Health godoc
//
//	@ID				getHealth
//
//	@Summary		Liveness probe
//	@Tags			system
//	@Produce		json
//	@Success		200		{object}	HealthResponse
//	@Router			/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
