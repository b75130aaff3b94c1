package inmemdb

import (
	"sync"

	"github.com/eduwatch/eduwatch/core/notification"
	"github.com/eduwatch/eduwatch/core/student"
)

type (
	// DB is a mutex-guarded in-memory record store for development and tests.
	DB struct {
		students *studentTable
		logs     *logTable
	}

	studentTable struct {
		students    map[string]*student.Student
		attendance  []student.AttendanceRecord
		assessments []student.AssessmentScore
		payments    []student.PaymentRecord
		mutex       sync.RWMutex
	}

	logTable struct {
		t     []notification.Log
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		students: &studentTable{students: make(map[string]*student.Student)},
		logs:     &logTable{},
	}
	return db, nil
}
