package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/eduwatch/eduwatch/core/notification"
)

type notificationLogRepository struct {
	db *sqlx.DB
}

var _ notification.LogRepository = (*notificationLogRepository)(nil)

func NewNotificationLogRepository(db *sql.DB) *notificationLogRepository {
	return &notificationLogRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo notificationLogRepository) CreateLog(ctx context.Context, entry notification.Log) (notification.Log, error) {
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO notification_logs (id, student_id, recipient_email, template_id, sent_at, status, error_message)
		 VALUES (:id, :student_id, :recipient_email, :template_id, :sent_at, :status, :error_message)`, entry)
	if err != nil {
		return notification.Log{}, queryErr(err, "creating notification log")
	}
	return entry, nil
}

func (repo notificationLogRepository) QueryLogsByStudent(ctx context.Context, studentID string) ([]notification.Log, error) {
	logs := make([]notification.Log, 0)
	err := repo.db.SelectContext(ctx, &logs,
		`SELECT id, student_id, recipient_email, template_id, sent_at, status, error_message
		 FROM notification_logs WHERE student_id = $1 ORDER BY sent_at DESC`, studentID)
	if err != nil {
		return nil, queryErr(err, "querying notification logs")
	}
	return logs, nil
}
