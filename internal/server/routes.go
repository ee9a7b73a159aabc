package server

import (
	"net/http"
	"time"

	"pod2mqtt/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/status", s.DeviceStatusHandler)

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

// DeviceStatusHandler returns the last polled snapshot as JSON. An empty
// object means nothing has been polled yet.
func (s *Server) DeviceStatusHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.GetDeviceStatusRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "device_status: FAIL")
	}
	response, ok := res.(domain.GetDeviceStatusResponse)
	if !ok || response.HasResponseError() {
		return c.String(http.StatusServiceUnavailable, "device_status: FAIL")
	}
	return c.JSON(http.StatusOK, response.Snapshot.Data)
}
