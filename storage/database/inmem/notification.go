package inmemdb

import (
	"context"

	"github.com/eduwatch/eduwatch/core/notification"
)

type notificationLogRepository struct {
	db *logTable
}

var _ notification.LogRepository = (*notificationLogRepository)(nil)

func NewNotificationLogRepository(db *DB) *notificationLogRepository {
	return &notificationLogRepository{db: db.logs}
}

func (r *notificationLogRepository) CreateLog(_ context.Context, entry notification.Log) (notification.Log, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t = append(r.db.t, entry)
	return entry, nil
}

func (r *notificationLogRepository) QueryLogsByStudent(_ context.Context, studentID string) ([]notification.Log, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	res := make([]notification.Log, 0)
	for _, entry := range r.db.t {
		if entry.StudentID.Valid && entry.StudentID.String == studentID {
			res = append(res, entry)
		}
	}
	return res, nil
}
