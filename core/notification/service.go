package notification

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/eduwatch/eduwatch/core"
	"github.com/eduwatch/eduwatch/core/risk"
	"github.com/eduwatch/eduwatch/core/student"
)

// Log statuses
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

type (
	// Result is the outcome of one delivery attempt. Transport failures are
	// folded into it; Send never propagates them as errors.
	Result struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}

	// Log records one delivery attempt.
	Log struct {
		ID             string      `json:"id" db:"id"`
		StudentID      null.String `json:"student_id,omitempty" db:"student_id"`
		RecipientEmail string      `json:"recipient_email" db:"recipient_email"`
		TemplateID     string      `json:"template_id" db:"template_id"`
		SentAt         time.Time   `json:"sent_at" db:"sent_at"`
		Status         string      `json:"status" db:"status"`
		ErrorMessage   null.String `json:"error_message,omitempty" db:"error_message"`
	}

	// LogRepository persists delivery attempts.
	LogRepository interface {
		CreateLog(ctx context.Context, entry Log) (Log, error)
		QueryLogsByStudent(ctx context.Context, studentID string) ([]Log, error)
	}

	Service struct {
		transport core.Transport
		logs      LogRepository
		logger    core.Logger
		templates []Template
	}
)

func NewService(transport core.Transport, logs LogRepository, logger core.Logger) *Service {
	return &Service{
		transport: transport,
		logs:      logs,
		logger:    logger,
		templates: DefaultTemplates,
	}
}

// Send renders the identified template with the given variables and hands the
// message to the transport. Every outcome resolves to a Result; a failed
// delivery or an unknown template id is reported in it, never returned as an
// error or panic.
func (svc *Service) Send(ctx context.Context, templateID, recipientEmail string, variables map[string]string) Result {
	return svc.send(ctx, null.String{}, templateID, recipientEmail, variables)
}

// SendForStudent assembles the student's notification variables and sends the
// identified template, tagging the delivery log with the student.
func (svc *Service) SendForStudent(
	ctx context.Context,
	stu student.Student,
	recipientName, recipientEmail, templateID string,
	assessment risk.Assessment,
	details *PaymentDetails,
) Result {
	descriptions := make([]string, 0, len(assessment.Factors))
	for _, f := range assessment.Factors {
		descriptions = append(descriptions, f.Description)
	}
	variables := Variables(stu, recipientName, descriptions, assessment.Score, details)
	return svc.send(ctx, null.StringFrom(stu.ID), templateID, recipientEmail, variables)
}

func (svc *Service) send(ctx context.Context, studentID null.String, templateID, recipientEmail string, variables map[string]string) Result {
	tmpl, err := TemplateByID(templateID, svc.templates)
	if err != nil {
		return svc.recordOutcome(ctx, studentID, templateID, recipientEmail, errors.Wrap(err, templateID))
	}

	subject, body := Render(tmpl, variables)
	msg := &core.Message{
		To:      []mail.Address{{Address: recipientEmail}},
		Subject: subject,
		Body:    body,
	}

	return svc.recordOutcome(ctx, studentID, templateID, recipientEmail, svc.transport.Send(ctx, msg))
}

// recordOutcome folds the delivery error into a Result and persists the
// matching log entry. A log write failure does not change the Result.
func (svc *Service) recordOutcome(ctx context.Context, studentID null.String, templateID, recipientEmail string, sendErr error) Result {
	entry := Log{
		ID:             uuid.New().String(),
		StudentID:      studentID,
		RecipientEmail: recipientEmail,
		TemplateID:     templateID,
		SentAt:         time.Now().UTC(),
		Status:         StatusSent,
	}

	res := Result{Success: true}
	if sendErr != nil {
		res = Result{Success: false, Error: sendErr.Error()}
		entry.Status = StatusFailed
		entry.ErrorMessage = null.StringFrom(sendErr.Error())
	}

	if _, err := svc.logs.CreateLog(ctx, entry); err != nil {
		svc.logger.Error("recording notification log", err)
	}
	return res
}

// Templates returns the service's template set.
func (svc *Service) Templates() []Template { return svc.templates }

// LogsForStudent returns the delivery history for a student.
func (svc *Service) LogsForStudent(ctx context.Context, studentID string) ([]Log, error) {
	return svc.logs.QueryLogsByStudent(ctx, studentID)
}
