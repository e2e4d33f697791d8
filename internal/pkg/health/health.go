package health

import "time"

// Status values
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Status represents warehouse health
type Status struct {
	Status       string    `json:"status"`
	Driver       string    `json:"driver"`
	ResponseTime string    `json:"response_time"`
	ActiveConns  int32     `json:"active_conns,omitempty"`
	IdleConns    int32     `json:"idle_conns,omitempty"`
	TotalConns   int32     `json:"total_conns,omitempty"`
	MaxConns     int32     `json:"max_conns,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
	Error        string    `json:"error,omitempty"`
}

// IsHealthy reports whether the status is fully healthy
func (s *Status) IsHealthy() bool {
	return s != nil && s.Status == StatusHealthy
}
