package risk

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Alert is a dashboard-facing warning derived from an assessment.
type Alert struct {
	ID             string      `json:"id"`
	StudentID      string      `json:"student_id"`
	Type           string      `json:"type"` // factor type, or "general" for the aggregate
	Severity       Severity    `json:"severity"`
	Message        string      `json:"message"`
	CreatedAt      time.Time   `json:"created_at"`
	Acknowledged   bool        `json:"acknowledged"`
	AcknowledgedBy null.String `json:"acknowledged_by,omitempty"`
}

// BuildAlerts derives the alert list for an assessment: one alert per factor
// at high severity or worse, plus a general alert when the aggregate level is
// high or worse. Alert identifiers are fresh on every call; persisting and
// acknowledging them is the caller's concern.
func BuildAlerts(a Assessment) []Alert {
	alerts := make([]Alert, 0, len(a.Factors)+1)
	createdAt := a.AssessedAt

	for _, f := range a.Factors {
		if f.Severity != SeverityHigh && f.Severity != SeverityCritical {
			continue
		}
		alerts = append(alerts, Alert{
			ID:        uuid.New().String(),
			StudentID: a.StudentID,
			Type:      string(f.Type),
			Severity:  f.Severity,
			Message:   f.Description,
			CreatedAt: createdAt,
		})
	}

	if a.Level == LevelHigh || a.Level == LevelCritical {
		alerts = append(alerts, Alert{
			ID:        uuid.New().String(),
			StudentID: a.StudentID,
			Type:      "general",
			Severity:  Severity(a.Level),
			Message:   fmt.Sprintf("Risk score %.0f/100 requires attention", a.Score),
			CreatedAt: createdAt,
		})
	}

	return alerts
}
