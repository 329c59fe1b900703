package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	poolHealth := s.checkPool()
	components["pool"] = poolHealth
	if poolHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	components["sessions"] = ComponentHealth{
		Status:  "healthy",
		Message: formatSessionCount(s.manager.Count()),
	}

	if ann, ok := s.checkAnnotations(); ok {
		components["annotations"] = ann
		if ann.Status == "degraded" && overall == "healthy" {
			overall = "degraded"
		}
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkPool verifies the eligible player pool is usable.
func (s *Server) checkPool() ComponentHealth {
	// Handle nil manager (e.g., in tests)
	if s.manager == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "game manager not configured",
		}
	}

	size := s.manager.PoolSize()
	if size == 0 {
		return ComponentHealth{
			Status:  "unhealthy",
			Message: "eligible player pool is empty",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Message: strconv.Itoa(size) + " eligible players",
	}
}

// annotationSource is implemented by record sources that can report
// which optional tables were absent at load time.
type annotationSource interface {
	MissingAnnotationTables() []string
}

// checkAnnotations reports the award/All-Star/position annotation
// status. The second return is false when the source cannot report it.
func (s *Server) checkAnnotations() (ComponentHealth, bool) {
	if s.manager == nil {
		return ComponentHealth{}, false
	}
	src, ok := s.manager.Source().(annotationSource)
	if !ok {
		return ComponentHealth{}, false
	}

	missing := src.MissingAnnotationTables()
	if len(missing) == 0 {
		return ComponentHealth{
			Status:  "healthy",
			Message: "all annotation tables loaded",
		}, true
	}
	return ComponentHealth{
		Status:  "degraded",
		Message: "annotations disabled, missing: " + strings.Join(missing, ", "),
	}, true
}

func formatSessionCount(count int) string {
	switch count {
	case 0:
		return "no live sessions"
	case 1:
		return "1 live session"
	default:
		return strconv.Itoa(count) + " live sessions"
	}
}
