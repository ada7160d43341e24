package sim

import (
	"net/http"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
)

// The canned outcome tables. Every table is built once at process start;
// weights are relative and normalized when an outcome is drawn.

// processOutcomes approximates a 70/30 success/failure split with the
// failure mass spread evenly over four error shapes.
func processOutcomes() (*outcome.Set, error) {
	return outcome.NewSet("process",
		outcome.Outcome{
			Name:       "success",
			Weight:     0.70,
			StatusCode: http.StatusOK,
		},
		outcome.Outcome{
			Name:       "ValueError",
			Weight:     0.075,
			StatusCode: http.StatusBadRequest,
			Body:       map[string]interface{}{"error": "Invalid data"},
			Logs: []outcome.LogLine{
				{Level: logger.LevelError, Message: "ValueError: Invalid input data received"},
			},
		},
		outcome.Outcome{
			Name:       "ConnectionError",
			Weight:     0.075,
			StatusCode: http.StatusServiceUnavailable,
			Body:       map[string]interface{}{"error": "Database unavailable"},
			Logs: []outcome.LogLine{
				{Level: logger.LevelError, Message: "ConnectionError: Database connection refused"},
			},
		},
		outcome.Outcome{
			Name:       "TimeoutError",
			Weight:     0.075,
			StatusCode: http.StatusGatewayTimeout,
			Body:       map[string]interface{}{"error": "Request timeout"},
			Logs: []outcome.LogLine{
				{Level: logger.LevelError, Message: "TimeoutError: Request timed out after 30s"},
			},
		},
		outcome.Outcome{
			Name:       "PermissionError",
			Weight:     0.075,
			StatusCode: http.StatusForbidden,
			Body:       map[string]interface{}{"error": "Permission denied"},
			Logs: []outcome.LogLine{
				{Level: logger.LevelError, Message: "PermissionError: Access denied to resource"},
			},
		},
	)
}

// databaseOutcomes is a coin flip between a successful query and a
// connection failure with pool-exhaustion log lines.
func databaseOutcomes() (*outcome.Set, error) {
	return outcome.NewSet("database",
		outcome.Outcome{
			Name:       "success",
			Weight:     1,
			StatusCode: http.StatusOK,
			Body:       map[string]interface{}{"status": "ok", "data": []interface{}{}},
			Logs: []outcome.LogLine{
				{Level: logger.LevelInfo, Message: "Database query successful"},
			},
		},
		outcome.Outcome{
			Name:       "connection_failed",
			Weight:     1,
			StatusCode: http.StatusServiceUnavailable,
			Body:       map[string]interface{}{"error": "Database unavailable"},
			Logs: []outcome.LogLine{
				{Level: logger.LevelError, Message: "Database connection failed: Connection refused on port 5432"},
				{Level: logger.LevelError, Message: "PostgreSQL connection pool exhausted"},
			},
		},
	)
}

// permissionOutcomes always denies
func permissionOutcomes() (*outcome.Set, error) {
	return outcome.NewSet("permission",
		outcome.Outcome{
			Name:       "denied",
			Weight:     1,
			StatusCode: http.StatusForbidden,
			Body:       map[string]interface{}{"error": "Permission denied"},
			Logs: []outcome.LogLine{
				{Level: logger.LevelError, Message: "Permission denied: Insufficient privileges to access resource"},
				{Level: logger.LevelError, Message: "IAM check failed for service account"},
			},
		},
	)
}

// networkOutcomes always times out
func networkOutcomes() (*outcome.Set, error) {
	return outcome.NewSet("network",
		outcome.Outcome{
			Name:       "unreachable",
			Weight:     1,
			StatusCode: http.StatusServiceUnavailable,
			Body:       map[string]interface{}{"error": "Network unreachable"},
			Logs: []outcome.LogLine{
				{Level: logger.LevelError, Message: "Network error: Connection to external service timed out"},
				{Level: logger.LevelError, Message: "DNS resolution failed for api.external-service.com"},
			},
		},
	)
}

// healthOutcomes always reports healthy
func healthOutcomes(serviceName string) (*outcome.Set, error) {
	return outcome.NewSet("health",
		outcome.Outcome{
			Name:       "healthy",
			Weight:     1,
			StatusCode: http.StatusOK,
			Body:       map[string]interface{}{"status": "healthy", "service": serviceName},
			Logs: []outcome.LogLine{
				{Level: logger.LevelDebug, Message: "Health check requested"},
			},
		},
	)
}

// stressOutcomes decides, per emitted line, between a routine log and a
// random failure
func stressOutcomes() (*outcome.Set, error) {
	return outcome.NewSet("stress",
		outcome.Outcome{
			Name:       "log",
			Weight:     0.7,
			StatusCode: http.StatusOK,
		},
		outcome.Outcome{
			Name:       "error",
			Weight:     0.3,
			StatusCode: http.StatusOK,
		},
	)
}
