package risk

import (
	"context"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/eduwatch/eduwatch/core/student"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// repoMock serves pre-filtered per-student records, the way the record store
// collaborator does.
type repoMock struct {
	attendance  []student.AttendanceRecord
	assessments []student.AssessmentScore
	payments    []student.PaymentRecord
}

var _ student.Repository = (*repoMock)(nil)

func (r *repoMock) GetStudentByID(_ context.Context, id string) (student.Student, error) {
	return student.Student{}, student.ErrNotFound
}

func (r *repoMock) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	return nil, nil
}

func (r *repoMock) AttendanceSince(_ context.Context, studentID string, since time.Time) ([]student.AttendanceRecord, error) {
	res := make([]student.AttendanceRecord, 0)
	for _, rec := range r.attendance {
		if rec.StudentID == studentID && !rec.Date.Before(since) {
			res = append(res, rec)
		}
	}
	return res, nil
}

func (r *repoMock) AssessmentsByStudent(_ context.Context, studentID string) ([]student.AssessmentScore, error) {
	res := make([]student.AssessmentScore, 0)
	for _, a := range r.assessments {
		if a.StudentID == studentID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (r *repoMock) PaymentsByStudent(_ context.Context, studentID string) ([]student.PaymentRecord, error) {
	res := make([]student.PaymentRecord, 0)
	for _, p := range r.payments {
		if p.StudentID == studentID {
			res = append(res, p)
		}
	}
	return res, nil
}

func attendance(studentID string, daysAgo int, status string) student.AttendanceRecord {
	return student.AttendanceRecord{
		StudentID: studentID,
		Date:      testNow.AddDate(0, 0, -daysAgo),
		Status:    status,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAttendanceRate(t *testing.T) {
	tests := []struct {
		name    string
		records []student.AttendanceRecord
		want    float64
	}{
		{name: "no records", records: nil, want: 100},
		{
			name: "late counts as present",
			records: []student.AttendanceRecord{
				attendance("1", 3, student.AttendancePresent),
				attendance("1", 2, student.AttendanceLate),
				attendance("1", 1, student.AttendanceAbsent),
			},
			want: 200.0 / 3,
		},
		{
			name: "excused does not count as present",
			records: []student.AttendanceRecord{
				attendance("1", 2, student.AttendancePresent),
				attendance("1", 1, student.AttendanceExcused),
			},
			want: 50,
		},
		{
			name: "records outside the window are ignored",
			records: []student.AttendanceRecord{
				attendance("1", 45, student.AttendanceAbsent),
				attendance("1", 31, student.AttendanceAbsent),
				attendance("1", 1, student.AttendancePresent),
			},
			want: 100,
		},
		{
			name: "only stale records means no data",
			records: []student.AttendanceRecord{
				attendance("1", 60, student.AttendanceAbsent),
			},
			want: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttendanceRate(tt.records, testNow, 30); !almostEqual(got, tt.want) {
				t.Errorf("AttendanceRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAcademicPerformance(t *testing.T) {
	tests := []struct {
		name   string
		scores []student.AssessmentScore
		want   float64
	}{
		{name: "no assessments", scores: nil, want: 100},
		{
			name: "weighted average",
			scores: []student.AssessmentScore{
				{Score: 65, MaxScore: 100, Weight: 0.3},
				{Score: 78, MaxScore: 100, Weight: 0.2},
			},
			want: 70.2,
		},
		{
			name: "zero total weight",
			scores: []student.AssessmentScore{
				{Score: 10, MaxScore: 100, Weight: 0},
			},
			want: 100,
		},
		{
			name: "max score scaling",
			scores: []student.AssessmentScore{
				{Score: 5, MaxScore: 10, Weight: 1},
			},
			want: 50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AcademicPerformance(tt.scores); !almostEqual(got, tt.want) {
				t.Errorf("AcademicPerformance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaymentOverdue(t *testing.T) {
	overduePayment := func(daysAgo int) student.PaymentRecord {
		return student.PaymentRecord{
			StudentID: "1",
			DueDate:   testNow.AddDate(0, 0, -daysAgo),
			Status:    student.PaymentOverdue,
		}
	}

	tests := []struct {
		name     string
		payments []student.PaymentRecord
		want     int
	}{
		{name: "no payments", payments: nil, want: 0},
		{
			name: "pending payments are ignored",
			payments: []student.PaymentRecord{
				{StudentID: "1", DueDate: testNow.AddDate(0, 0, -10), Status: student.PaymentPending},
			},
			want: 0,
		},
		{
			name:     "single overdue payment",
			payments: []student.PaymentRecord{overduePayment(42)},
			want:     42,
		},
		{
			name: "max of multiple overdue payments",
			payments: []student.PaymentRecord{
				overduePayment(5),
				overduePayment(42),
				overduePayment(17),
			},
			want: 42,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaymentOverdue(tt.payments, testNow); got != tt.want {
				t.Errorf("PaymentOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssessFactorsSeverity(t *testing.T) {
	thresholds := DefaultThresholds()

	tests := []struct {
		name         string
		rate         float64
		performance  float64
		daysOverdue  int
		wantSeverity [3]Severity // attendance, academic, financial
	}{
		{name: "all healthy", rate: 95, performance: 90, daysOverdue: 0, wantSeverity: [3]Severity{SeverityLow, SeverityLow, SeverityLow}},
		// the boundary itself stays in the better band: strict comparisons
		{name: "attendance exactly at cutoff", rate: 80, performance: 100, daysOverdue: 0, wantSeverity: [3]Severity{SeverityLow, SeverityLow, SeverityLow}},
		{name: "attendance just under cutoff", rate: 79.9, performance: 100, daysOverdue: 0, wantSeverity: [3]Severity{SeverityMedium, SeverityLow, SeverityLow}},
		{name: "attendance high band", rate: 69.9, performance: 100, daysOverdue: 0, wantSeverity: [3]Severity{SeverityHigh, SeverityLow, SeverityLow}},
		{name: "attendance critical band", rate: 59.9, performance: 100, daysOverdue: 0, wantSeverity: [3]Severity{SeverityCritical, SeverityLow, SeverityLow}},
		{name: "academic bands", rate: 100, performance: 55, daysOverdue: 0, wantSeverity: [3]Severity{SeverityLow, SeverityHigh, SeverityLow}},
		{name: "financial exactly at cutoff", rate: 100, performance: 100, daysOverdue: 30, wantSeverity: [3]Severity{SeverityLow, SeverityLow, SeverityLow}},
		{name: "financial medium band", rate: 100, performance: 100, daysOverdue: 31, wantSeverity: [3]Severity{SeverityLow, SeverityLow, SeverityMedium}},
		{name: "financial critical band", rate: 100, performance: 100, daysOverdue: 91, wantSeverity: [3]Severity{SeverityLow, SeverityLow, SeverityCritical}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := AssessFactors(tt.rate, tt.performance, tt.daysOverdue, thresholds)
			if len(factors) != 3 {
				t.Fatalf("AssessFactors() returned %d factors, want 3", len(factors))
			}
			wantTypes := []FactorType{FactorAttendance, FactorAcademic, FactorFinancial}
			for i, f := range factors {
				if f.Type != wantTypes[i] {
					t.Errorf("factor[%d].Type = %v, want %v", i, f.Type, wantTypes[i])
				}
				if f.Severity != tt.wantSeverity[i] {
					t.Errorf("factor[%d].Severity = %v, want %v", i, f.Severity, tt.wantSeverity[i])
				}
			}
		})
	}
}

func TestAssessFactorsDescriptions(t *testing.T) {
	factors := AssessFactors(200.0/3, 70.24, 0, DefaultThresholds())

	if want := "Attendance rate: 66.7%"; factors[0].Description != want {
		t.Errorf("attendance description = %q, want %q", factors[0].Description, want)
	}
	if want := "Academic average: 70.2%"; factors[1].Description != want {
		t.Errorf("academic description = %q, want %q", factors[1].Description, want)
	}
	if want := "Payments up to date"; factors[2].Description != want {
		t.Errorf("financial description = %q, want %q", factors[2].Description, want)
	}

	factors = AssessFactors(100, 100, 42, DefaultThresholds())
	if want := "Payment overdue: 42 days"; factors[2].Description != want {
		t.Errorf("financial description = %q, want %q", factors[2].Description, want)
	}
}

func TestAssessFactorsNaN(t *testing.T) {
	factors := AssessFactors(math.NaN(), 100, 0, DefaultThresholds())

	if factors[0].Severity != SeverityLow {
		t.Errorf("NaN factor severity = %v, want %v", factors[0].Severity, SeverityLow)
	}
	if want := "Attendance rate: invalid data"; factors[0].Description != want {
		t.Errorf("NaN factor description = %q, want %q", factors[0].Description, want)
	}
	if got := Score(factors); got != 0 {
		t.Errorf("Score() with NaN factor = %v, want 0", got)
	}
}

func TestScore(t *testing.T) {
	factors := []Factor{
		{Type: FactorAttendance, Severity: SeverityCritical},
		{Type: FactorAcademic, Severity: SeverityLow},
		{Type: FactorFinancial, Severity: SeverityMedium},
	}
	if got := Score(factors); !almostEqual(got, 45) {
		t.Errorf("Score() = %v, want 45", got)
	}

	allCritical := []Factor{
		{Type: FactorAttendance, Severity: SeverityCritical},
		{Type: FactorAcademic, Severity: SeverityCritical},
		{Type: FactorFinancial, Severity: SeverityCritical},
	}
	if got := Score(allCritical); !almostEqual(got, 100) {
		t.Errorf("Score() = %v, want 100", got)
	}
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0, LevelLow},
		{29.9, LevelLow},
		{30, LevelMedium},
		{45, LevelMedium},
		{59.9, LevelMedium},
		{60, LevelHigh},
		{79.9, LevelHigh},
		{80, LevelCritical},
		{100, LevelCritical},
	}
	for _, tt := range tests {
		if got := LevelForScore(tt.score); got != tt.want {
			t.Errorf("LevelForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestEngineUnknownStudentDefaults(t *testing.T) {
	nowFunc = func() time.Time { return testNow }
	defer func() { nowFunc = time.Now }()

	engine := NewEngine(&repoMock{}, DefaultThresholds(), 30)
	ctx := context.Background()

	rate, err := engine.AttendanceRate(ctx, "nobody")
	if err != nil {
		t.Fatalf("AttendanceRate() error = %v", err)
	}
	if rate != 100 {
		t.Errorf("AttendanceRate(unknown) = %v, want 100", rate)
	}

	performance, err := engine.AcademicPerformance(ctx, "nobody")
	if err != nil {
		t.Fatalf("AcademicPerformance() error = %v", err)
	}
	if performance != 100 {
		t.Errorf("AcademicPerformance(unknown) = %v, want 100", performance)
	}

	daysOverdue, err := engine.PaymentOverdue(ctx, "nobody")
	if err != nil {
		t.Fatalf("PaymentOverdue() error = %v", err)
	}
	if daysOverdue != 0 {
		t.Errorf("PaymentOverdue(unknown) = %v, want 0", daysOverdue)
	}

	assessment, err := engine.Assess(ctx, "nobody")
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if assessment.Score != 0 || assessment.Level != LevelLow {
		t.Errorf("Assess(unknown) = score %v level %v, want 0/low", assessment.Score, assessment.Level)
	}
}

func TestEngineAssess(t *testing.T) {
	nowFunc = func() time.Time { return testNow }
	defer func() { nowFunc = time.Now }()

	// attendance 1/3 present (critical), academics healthy, one payment 42 days
	// overdue (medium)
	repo := &repoMock{
		attendance: []student.AttendanceRecord{
			attendance("stu1", 3, student.AttendanceAbsent),
			attendance("stu1", 2, student.AttendanceAbsent),
			attendance("stu1", 1, student.AttendancePresent),
		},
		assessments: []student.AssessmentScore{{
			StudentID: "stu1", Subject: "Mathematics", AssessmentType: student.AssessmentTest,
			Score: 92, MaxScore: 100, Date: testNow.AddDate(0, 0, -5), Weight: 0.3,
		}},
		payments: []student.PaymentRecord{{
			StudentID: "stu1", Amount: 1500, DueDate: testNow.AddDate(0, 0, -42),
			Status: student.PaymentOverdue, Type: student.PaymentTuition,
		}},
	}

	engine := NewEngine(repo, DefaultThresholds(), 30)
	assessment, err := engine.Assess(context.Background(), "stu1")
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}

	// 100*0.4 + 0*0.4 + 25*0.2
	if !almostEqual(assessment.Score, 45) {
		t.Errorf("Assess().Score = %v, want 45", assessment.Score)
	}
	if assessment.Level != LevelMedium {
		t.Errorf("Assess().Level = %v, want medium", assessment.Level)
	}

	// no hidden state: a second call yields the same result
	again, err := engine.Assess(context.Background(), "stu1")
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if !reflect.DeepEqual(assessment, again) {
		t.Errorf("Assess() is not idempotent:\nfirst = %+v\nsecond = %+v", assessment, again)
	}
}
