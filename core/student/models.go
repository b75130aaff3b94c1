package student

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Payment statuses
const (
	PaymentPaid    = "paid"
	PaymentOverdue = "overdue"
	PaymentPending = "pending"
)

// Payment types
const (
	PaymentTuition   = "tuition"
	PaymentFees      = "fees"
	PaymentMaterials = "materials"
)

// Assessment types
const (
	AssessmentQuiz       = "quiz"
	AssessmentTest       = "test"
	AssessmentAssignment = "assignment"
	AssessmentProject    = "project"
)

type (
	Student struct {
		ID             string      `json:"id" db:"id"`
		Name           string      `json:"name" db:"name" validate:"required"`
		Email          string      `json:"email" db:"email" validate:"required,email"`
		Grade          string      `json:"grade" db:"grade"`
		EnrollmentDate time.Time   `json:"enrollment_date" db:"enrollment_date"`
		MentorID       null.String `json:"mentor_id,omitempty" db:"mentor_id"`
		GuardianEmail  null.String `json:"guardian_email,omitempty" db:"guardian_email"`
		CreatedAt      time.Time   `json:"created_at" db:"created_at"`
		UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
	}

	AttendanceRecord struct {
		ID        string      `json:"id" db:"id"`
		StudentID string      `json:"student_id" db:"student_id" validate:"required"`
		Date      time.Time   `json:"date" db:"date" validate:"required"`
		Status    string      `json:"status" db:"status" validate:"required,oneof=present absent late excused"`
		Notes     null.String `json:"notes,omitempty" db:"notes"`
	}

	AssessmentScore struct {
		ID             string    `json:"id" db:"id"`
		StudentID      string    `json:"student_id" db:"student_id" validate:"required"`
		Subject        string    `json:"subject" db:"subject" validate:"required"`
		AssessmentType string    `json:"assessment_type" db:"assessment_type" validate:"required,oneof=quiz test assignment project"`
		Score          float64   `json:"score" db:"score" validate:"gte=0"`
		MaxScore       float64   `json:"max_score" db:"max_score" validate:"gt=0"`
		Date           time.Time `json:"date" db:"date" validate:"required"`
		Weight         float64   `json:"weight" db:"weight" validate:"gte=0"`
	}

	PaymentRecord struct {
		ID        string    `json:"id" db:"id"`
		StudentID string    `json:"student_id" db:"student_id" validate:"required"`
		Amount    float64   `json:"amount" db:"amount" validate:"gte=0"`
		DueDate   time.Time `json:"due_date" db:"due_date" validate:"required"`
		PaidDate  null.Time `json:"paid_date,omitempty" db:"paid_date"`
		Status    string    `json:"status" db:"status" validate:"required,oneof=paid overdue pending"`
		Type      string    `json:"type" db:"type" validate:"required,oneof=tuition fees materials"`
	}
)

// Present reports whether the record counts as attended.
// A late arrival still counts; excused absences do not.
func (r AttendanceRecord) Present() bool {
	return r.Status == AttendancePresent || r.Status == AttendanceLate
}

// Percentage returns the score as a percentage of the maximum.
func (a AssessmentScore) Percentage() float64 {
	return a.Score / a.MaxScore * 100
}
