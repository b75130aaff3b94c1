package inmemdb

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eduwatch/eduwatch/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.students}
}

func (r *studentRepository) GetStudentByID(_ context.Context, id string) (student.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if stu, ok := r.db.students[id]; ok {
		return *stu, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (r *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]student.Student, 0, len(r.db.students))
	for _, stu := range r.db.students {
		res = append(res, *stu)
	}
	return res, nil
}

func (r *studentRepository) AttendanceSince(_ context.Context, studentID string, since time.Time) ([]student.AttendanceRecord, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]student.AttendanceRecord, 0)
	for _, rec := range r.db.attendance {
		if rec.StudentID == studentID && !rec.Date.Before(since) {
			res = append(res, rec)
		}
	}
	return res, nil
}

func (r *studentRepository) AssessmentsByStudent(_ context.Context, studentID string) ([]student.AssessmentScore, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]student.AssessmentScore, 0)
	for _, a := range r.db.assessments {
		if a.StudentID == studentID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (r *studentRepository) PaymentsByStudent(_ context.Context, studentID string) ([]student.PaymentRecord, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]student.PaymentRecord, 0)
	for _, p := range r.db.payments {
		if p.StudentID == studentID {
			res = append(res, p)
		}
	}
	return res, nil
}

// Seeding helpers; used by tests and the dev fixtures.

func (r *studentRepository) AddStudent(stu student.Student) student.Student {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if stu.ID == "" {
		stu.ID = uuid.New().String()
	}
	r.db.students[stu.ID] = &stu
	return stu
}

func (r *studentRepository) AddAttendance(records ...student.AttendanceRecord) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		r.db.attendance = append(r.db.attendance, rec)
	}
}

func (r *studentRepository) AddAssessments(scores ...student.AssessmentScore) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for _, a := range scores {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		r.db.assessments = append(r.db.assessments, a)
	}
}

func (r *studentRepository) AddPayments(payments ...student.PaymentRecord) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for _, p := range payments {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		r.db.payments = append(r.db.payments, p)
	}
}
