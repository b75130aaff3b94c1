package risk

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/eduwatch/eduwatch/core/student"
)

// DefaultAttendanceWindowDays is the trailing window the attendance rate
// looks back over when none is configured.
const DefaultAttendanceWindowDays = 30

// severity weights map each factor's classification to its score contribution;
// type weights split the aggregate between the factor types (they sum to 1).
var (
	severityWeights = map[Severity]float64{
		SeverityLow:      0,
		SeverityMedium:   25,
		SeverityHigh:     50,
		SeverityCritical: 100,
	}

	typeWeights = map[FactorType]float64{
		FactorAttendance: 0.4,
		FactorAcademic:   0.4,
		FactorFinancial:  0.2,
	}
)

// overridden in tests
var nowFunc = time.Now

// AttendanceRate returns the percentage [0,100] of records within the trailing
// window whose status counts as attended (present or late). No records in the
// window means 100: absence of data is treated as no risk, not maximal risk.
func AttendanceRate(records []student.AttendanceRecord, now time.Time, windowDays int) float64 {
	cutoff := now.AddDate(0, 0, -windowDays)

	var total, present int
	for _, rec := range records {
		if rec.Date.Before(cutoff) {
			continue
		}
		total++
		if rec.Present() {
			present++
		}
	}

	if total == 0 {
		return 100
	}
	return float64(present) / float64(total) * 100
}

// AcademicPerformance returns the weight-averaged percentage [0,100] across
// all of a student's assessments. No assessments, or a zero total weight,
// yields 100.
func AcademicPerformance(scores []student.AssessmentScore) float64 {
	if len(scores) == 0 {
		return 100
	}

	var weightedSum, totalWeight float64
	for _, a := range scores {
		weightedSum += a.Percentage() * a.Weight
		totalWeight += a.Weight
	}

	if totalWeight <= 0 {
		return 100
	}
	return weightedSum / totalWeight
}

// PaymentOverdue returns the largest number of whole days any of the student's
// overdue payments has been outstanding; 0 when none are overdue.
func PaymentOverdue(payments []student.PaymentRecord, now time.Time) int {
	var maxDays int
	for _, p := range payments {
		if p.Status != student.PaymentOverdue {
			continue
		}
		days := int(now.Sub(p.DueDate).Hours() / 24) // truncate, not round
		if days > maxDays {
			maxDays = days
		}
	}
	return maxDays
}

// AssessFactors classifies the three raw metrics against the thresholds and
// returns the factors in fixed order: attendance, academic, financial.
func AssessFactors(attendanceRate, academicPerformance float64, daysOverdue int, t Thresholds) []Factor {
	return []Factor{
		percentageFactor(FactorAttendance, "Attendance rate", attendanceRate, t.Attendance),
		percentageFactor(FactorAcademic, "Academic average", academicPerformance, t.Academic),
		financialFactor(daysOverdue, t.Financial),
	}
}

// percentageFactor classifies a lower-is-worse percentage metric.
// The comparisons are strictly `<`: a value sitting exactly on a cutoff stays
// in the better band.
func percentageFactor(typ FactorType, label string, value float64, c Cutoffs) Factor {
	if math.IsNaN(value) {
		// keep invalid upstream data out of the aggregate score
		return Factor{
			Type:        typ,
			Severity:    SeverityLow,
			Description: label + ": invalid data",
			Threshold:   c.Medium,
		}
	}

	severity := SeverityLow
	switch {
	case value < c.Critical:
		severity = SeverityCritical
	case value < c.High:
		severity = SeverityHigh
	case value < c.Medium:
		severity = SeverityMedium
	}

	return Factor{
		Type:        typ,
		Severity:    severity,
		Description: fmt.Sprintf("%s: %.1f%%", label, value),
		Value:       value,
		Threshold:   c.Medium,
	}
}

// financialFactor classifies days overdue; higher is worse, strictly `>`.
func financialFactor(daysOverdue int, c Cutoffs) Factor {
	value := float64(daysOverdue)

	severity := SeverityLow
	switch {
	case value > c.Critical:
		severity = SeverityCritical
	case value > c.High:
		severity = SeverityHigh
	case value > c.Medium:
		severity = SeverityMedium
	}

	description := "Payments up to date"
	if daysOverdue > 0 {
		description = fmt.Sprintf("Payment overdue: %d days", daysOverdue)
	}

	return Factor{
		Type:        FactorFinancial,
		Severity:    severity,
		Description: description,
		Value:       value,
		Threshold:   c.Medium,
	}
}

// Score aggregates the factors into a 0-100 risk score.
// Severity and type weights naturally bound the sum to [0,100]; the clamp
// only guards against miscalibrated custom weights.
func Score(factors []Factor) float64 {
	var score float64
	for _, f := range factors {
		score += severityWeights[f.Severity] * typeWeights[f.Type]
	}
	return math.Min(100, math.Max(0, score))
}

// LevelForScore bands the aggregate score. These cutoffs are independent of
// the per-factor thresholds.
func LevelForScore(score float64) Level {
	switch {
	case score >= 80:
		return LevelCritical
	case score >= 60:
		return LevelHigh
	case score >= 30:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Engine computes risk assessments for students out of an injected record
// lookup capability. It keeps no state between calls; every call re-reads the
// student's records and recomputes from scratch, so it is safe for concurrent
// use.
type Engine struct {
	repo       student.Repository
	thresholds Thresholds
	windowDays int
}

func NewEngine(repo student.Repository, thresholds Thresholds, windowDays int) *Engine {
	if windowDays <= 0 {
		windowDays = DefaultAttendanceWindowDays
	}
	return &Engine{
		repo:       repo,
		thresholds: thresholds,
		windowDays: windowDays,
	}
}

func (e *Engine) Thresholds() Thresholds { return e.thresholds }

// AttendanceRate computes the student's attendance percentage over the
// engine's trailing window. An unknown student has no records and scores 100.
func (e *Engine) AttendanceRate(ctx context.Context, studentID string) (float64, error) {
	now := nowFunc()
	records, err := e.repo.AttendanceSince(ctx, studentID, now.AddDate(0, 0, -e.windowDays))
	if err != nil {
		return 0, err
	}
	return AttendanceRate(records, now, e.windowDays), nil
}

func (e *Engine) AcademicPerformance(ctx context.Context, studentID string) (float64, error) {
	scores, err := e.repo.AssessmentsByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return AcademicPerformance(scores), nil
}

func (e *Engine) PaymentOverdue(ctx context.Context, studentID string) (int, error) {
	payments, err := e.repo.PaymentsByStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return PaymentOverdue(payments, nowFunc()), nil
}

// AssessFactors returns the student's factor triple in fixed order:
// attendance, academic, financial.
func (e *Engine) AssessFactors(ctx context.Context, studentID string) ([]Factor, error) {
	rate, err := e.AttendanceRate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	performance, err := e.AcademicPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}
	daysOverdue, err := e.PaymentOverdue(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return AssessFactors(rate, performance, daysOverdue, e.thresholds), nil
}

func (e *Engine) Score(ctx context.Context, studentID string) (float64, error) {
	factors, err := e.AssessFactors(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return Score(factors), nil
}

// Assess computes the student's full assessment: factors, score and level.
func (e *Engine) Assess(ctx context.Context, studentID string) (Assessment, error) {
	factors, err := e.AssessFactors(ctx, studentID)
	if err != nil {
		return Assessment{}, err
	}
	score := Score(factors)
	return Assessment{
		StudentID:  studentID,
		Factors:    factors,
		Score:      score,
		Level:      LevelForScore(score),
		AssessedAt: nowFunc().UTC(),
	}, nil
}
