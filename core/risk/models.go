package risk

import (
	"time"

	"github.com/eduwatch/eduwatch/core"
)

// FactorType identifies one of the independently scored risk dimensions.
type FactorType string

const (
	FactorAttendance FactorType = "attendance"
	FactorAcademic   FactorType = "academic"
	FactorFinancial  FactorType = "financial"
)

// Severity classifies a single factor against its thresholds.
type Severity string

// Level classifies the aggregate score. It shares Severity's values but uses
// its own, coarser cutoffs (see LevelForScore); the two are deliberately not
// reconciled with the per-factor thresholds.
type Level string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"

	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

type (
	// Factor is one scored risk dimension for a student. Not persisted;
	// recomputed on every assessment.
	Factor struct {
		Type        FactorType `json:"type"`
		Severity    Severity   `json:"severity"`
		Description string     `json:"description"`
		Value       float64    `json:"value"`
		Threshold   float64    `json:"threshold"`
	}

	// Cutoffs are the three-tier thresholds for one factor type.
	// For percentage factors lower is worse; for days overdue higher is worse.
	Cutoffs struct {
		Medium   float64 `json:"medium"`
		High     float64 `json:"high"`
		Critical float64 `json:"critical"`
	}

	Thresholds struct {
		Attendance Cutoffs `json:"attendance"`
		Academic   Cutoffs `json:"academic"`
		Financial  Cutoffs `json:"financial"`
	}

	// Assessment is the engine's aggregate output for one student.
	Assessment struct {
		StudentID  string    `json:"student_id"`
		Factors    []Factor  `json:"factors"`
		Score      float64   `json:"score"`
		Level      Level     `json:"level"`
		AssessedAt time.Time `json:"assessed_at"`
	}
)

// DefaultThresholds returns the stock cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Attendance: Cutoffs{Medium: 80, High: 70, Critical: 60},
		Academic:   Cutoffs{Medium: 70, High: 60, Critical: 50},
		Financial:  Cutoffs{Medium: 30, High: 60, Critical: 90},
	}
}

// ThresholdsFromConfig maps the tunable settings onto engine Thresholds.
func ThresholdsFromConfig(conf core.RiskConfig) Thresholds {
	cutoffs := func(c core.CutoffConfig) Cutoffs {
		return Cutoffs{Medium: c.Medium, High: c.High, Critical: c.Critical}
	}
	return Thresholds{
		Attendance: cutoffs(conf.Attendance),
		Academic:   cutoffs(conf.Academic),
		Financial:  cutoffs(conf.Financial),
	}
}
