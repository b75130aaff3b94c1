package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eduwatch/eduwatch/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sql.DB) *studentRepository {
	return &studentRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var stu student.Student
	err := repo.db.GetContext(ctx, &stu,
		`SELECT id, name, email, grade, enrollment_date, mentor_id, guardian_email, created_at, updated_at
		 FROM students WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, queryErr(err, "getting student")
	}
	return stu, nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.SelectContext(ctx, &students,
		`SELECT id, name, email, grade, enrollment_date, mentor_id, guardian_email, created_at, updated_at
		 FROM students ORDER BY name`)
	if err != nil {
		return nil, queryErr(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) AttendanceSince(ctx context.Context, studentID string, since time.Time) ([]student.AttendanceRecord, error) {
	records := make([]student.AttendanceRecord, 0)
	err := repo.db.SelectContext(ctx, &records,
		`SELECT id, student_id, date, status, notes
		 FROM attendance_records WHERE student_id = $1 AND date >= $2`, studentID, since)
	if err != nil {
		return nil, queryErr(err, "querying attendance")
	}
	return records, nil
}

func (repo studentRepository) AssessmentsByStudent(ctx context.Context, studentID string) ([]student.AssessmentScore, error) {
	scores := make([]student.AssessmentScore, 0)
	err := repo.db.SelectContext(ctx, &scores,
		`SELECT id, student_id, subject, assessment_type, score, max_score, date, weight
		 FROM assessment_scores WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, queryErr(err, "querying assessments")
	}
	return scores, nil
}

func (repo studentRepository) PaymentsByStudent(ctx context.Context, studentID string) ([]student.PaymentRecord, error) {
	payments := make([]student.PaymentRecord, 0)
	err := repo.db.SelectContext(ctx, &payments,
		`SELECT id, student_id, amount, due_date, paid_date, status, type
		 FROM payment_records WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, queryErr(err, "querying payments")
	}
	return payments, nil
}
