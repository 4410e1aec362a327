package handler

import (
	"log/slog"
	"net/http"

	"medcare/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	DB     *gorm.DB
	Logger *slog.Logger
}

// HealthHandler reports process liveness and database reachability.
type HealthHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		db:     params.DB,
		logger: params.Logger,
	}
}

// Check pings the database and reports overall health. A failing database
// turns the response into a 503 so load balancers can rotate the instance out.
func (h *HealthHandler) Check(c echo.Context) error {
	status := map[string]string{
		"status":   "ok",
		"database": "up",
	}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		h.logger.Error("Health check database ping failed", slog.Any("error", err))
		status["status"] = "degraded"
		status["database"] = "down"

		return response.Success(c, http.StatusServiceUnavailable, status)
	}

	return response.Success(c, http.StatusOK, status)
}
