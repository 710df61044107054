package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zvezde365/zvezde-api/internal/horoscope"
	"github.com/zvezde365/zvezde-api/internal/pkg/httputil"
	"github.com/zvezde365/zvezde-api/internal/relay"
)

// HealthStatus represents the overall health of the service.
type HealthStatus struct {
	Status  string                    `json:"status"` // "healthy", "degraded", "unhealthy"
	Version string                    `json:"version"`
	Uptime  string                    `json:"uptime"`
	Checks  map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck represents the health of a single component.
type ComponentCheck struct {
	Status  string `json:"status"` // "up", "down", "degraded"
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	statusUp       = "up"
	statusDown     = "down"
	statusDegraded = "degraded"

	notConfigured = "not configured"
)

// HealthChecker reports on the email sender, horoscope content and Redis.
type HealthChecker struct {
	relay       *relay.Relay
	horoscopes  *horoscope.Store
	refresher   *horoscope.Refresher
	redisClient *redis.Client
	startTime   time.Time
}

// NewHealthChecker creates a HealthChecker. Nil dependencies report
// "not configured".
func NewHealthChecker(deps Deps) *HealthChecker {
	return &HealthChecker{
		relay:       deps.Relay,
		horoscopes:  deps.Horoscopes,
		refresher:   deps.Refresher,
		redisClient: deps.Redis,
		startTime:   time.Now(),
	}
}

const healthVersion = "1.0.0"

// HandleHealth always answers 200; the body carries the status.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checks := hc.runAllChecks(r.Context())
	httputil.OK(w, HealthStatus{
		Status:  determineOverallStatus(checks),
		Version: healthVersion,
		Uptime:  formatUptime(time.Since(hc.startTime)),
		Checks:  checks,
	})
}

// HandleLiveness answers 200 while the process runs.
//
//	GET /health/live
func (hc *HealthChecker) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]interface{}{
		"status": "alive",
		"uptime": formatUptime(time.Since(hc.startTime)),
	})
}

// HandleReadiness answers 503 when the service cannot relay submissions.
//
//	GET /health/ready
func (hc *HealthChecker) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	checks := hc.runAllChecks(r.Context())
	overall := determineOverallStatus(checks)

	ready := overall != "unhealthy"
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	httputil.JSON(w, status, map[string]interface{}{
		"ready":  ready,
		"status": overall,
		"checks": checks,
	})
}

func (hc *HealthChecker) runAllChecks(ctx context.Context) map[string]ComponentCheck {
	type result struct {
		name  string
		check ComponentCheck
	}
	ch := make(chan result, 3)

	go func() { ch <- result{"email", hc.checkSender()} }()
	go func() { ch <- result{"horoscopes", hc.checkHoroscopes()} }()
	go func() { ch <- result{"redis", hc.checkRedis(ctx)} }()

	checks := make(map[string]ComponentCheck, 3)
	for i := 0; i < 3; i++ {
		r := <-ch
		checks[r.name] = r.check
	}
	return checks
}

func (hc *HealthChecker) checkSender() ComponentCheck {
	if hc.relay == nil {
		return ComponentCheck{Status: statusDown, Message: "no email provider"}
	}
	return ComponentCheck{Status: statusUp, Message: "provider " + hc.relay.Sender().Name()}
}

func (hc *HealthChecker) checkHoroscopes() ComponentCheck {
	if hc.horoscopes == nil {
		return ComponentCheck{Status: statusDown, Message: notConfigured}
	}
	loadedAt, ok := hc.horoscopes.Loaded()
	if !ok {
		return ComponentCheck{Status: statusDown, Message: "no content loaded"}
	}

	msg := "loaded " + loadedAt.UTC().Format(time.RFC3339)
	if hc.refresher != nil {
		if _, err := hc.refresher.Status(); err != nil {
			return ComponentCheck{Status: statusDegraded, Message: fmt.Sprintf("%s, last refresh failed: %v", msg, err)}
		}
	}
	return ComponentCheck{Status: statusUp, Message: msg}
}

// checkRedis pings Redis with a 2-second timeout.
func (hc *HealthChecker) checkRedis(ctx context.Context) ComponentCheck {
	if hc.redisClient == nil {
		return ComponentCheck{Status: statusDown, Message: notConfigured}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := hc.redisClient.Ping(pingCtx).Err()
	latency := time.Since(start)

	if err != nil {
		return ComponentCheck{
			Status:  statusDown,
			Latency: latency.String(),
			Message: fmt.Sprintf("ping failed: %v", err),
		}
	}

	status, msg := statusUp, "connected"
	if latency > 500*time.Millisecond {
		status = statusDegraded
		msg = fmt.Sprintf("slow response (%s)", latency)
	}
	return ComponentCheck{Status: status, Latency: latency.String(), Message: msg}
}

// determineOverallStatus derives the aggregate status:
//   - "unhealthy" if no email provider is configured
//   - "degraded"  if any check is degraded or a configured check is down
//   - "healthy"   otherwise
func determineOverallStatus(checks map[string]ComponentCheck) string {
	if email, ok := checks["email"]; ok && email.Status == statusDown {
		return "unhealthy"
	}
	for _, c := range checks {
		if c.Status == statusDegraded {
			return "degraded"
		}
		if c.Status == statusDown && c.Message != notConfigured {
			return "degraded"
		}
	}
	return "healthy"
}

// formatUptime produces a human-readable uptime string like "3d 4h 12m 5s".
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
