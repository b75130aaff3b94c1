package student

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	// Repository supplies the per-student record sets the risk engine and the
	// notification renderer read. Implementations own all writes.
	Repository interface {
		GetStudentByID(ctx context.Context, id string) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		// AttendanceSince returns the student's attendance records with a date on
		// or after `since`, in no particular order.
		AttendanceSince(ctx context.Context, studentID string, since time.Time) ([]AttendanceRecord, error)
		AssessmentsByStudent(ctx context.Context, studentID string) ([]AssessmentScore, error)
		PaymentsByStudent(ctx context.Context, studentID string) ([]PaymentRecord, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) AttendanceSince(ctx context.Context, studentID string, since time.Time) ([]AttendanceRecord, error) {
	return svc.repo.AttendanceSince(ctx, studentID, since)
}

func (svc *Service) Assessments(ctx context.Context, studentID string) ([]AssessmentScore, error) {
	return svc.repo.AssessmentsByStudent(ctx, studentID)
}

func (svc *Service) Payments(ctx context.Context, studentID string) ([]PaymentRecord, error) {
	return svc.repo.PaymentsByStudent(ctx, studentID)
}
