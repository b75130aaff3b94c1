package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/eduwatch/eduwatch/core"
	"github.com/eduwatch/eduwatch/core/notification"
	"github.com/eduwatch/eduwatch/core/risk"
	"github.com/eduwatch/eduwatch/core/student"
)

type (
	NotificationAPIDeps struct {
		StudentSvc *student.Service
		Engine     *risk.Engine
		NotifSvc   *notification.Service
		Validate   *validator.Validate
	}

	notificationApi struct {
		deps NotificationAPIDeps
	}

	sendNotificationRequest struct {
		TemplateID     string            `json:"template_id" validate:"required"`
		RecipientEmail string            `json:"recipient_email" validate:"required,email"`
		RecipientName  string            `json:"recipient_name"`
		StudentID      string            `json:"student_id"`
		Variables      map[string]string `json:"variables"`
		Amount         string            `json:"amount"`
		DaysOverdue    string            `json:"days_overdue"`
		PaymentType    string            `json:"payment_type"`
	}
)

func RegisterNotificationAPI(g *echo.Group, deps NotificationAPIDeps) {
	api := notificationApi{deps: deps}

	ng := g.Group("/notifications")
	ng.GET("/templates", api.templates)
	ng.POST("", api.send)

	g.GET("/students/:id/notifications", api.studentLogs)
}

// Handlers

func (api *notificationApi) templates(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.NotifSvc.Templates())
}

// send delivers a notification. With a student_id the variables are assembled
// from the student's current risk assessment; otherwise the caller-provided
// variables are used as is. The delivery outcome is always a 200 with a
// success flag; only malformed requests are HTTP errors.
func (api *notificationApi) send(ctx echo.Context) error {
	data := new(sendNotificationRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	data.RecipientEmail = core.CleanString(data.RecipientEmail, true /* lower */)
	data.RecipientName = core.CleanString(data.RecipientName)
	if err := api.deps.Validate.Struct(data); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()

	var res notification.Result
	if data.StudentID != "" {
		stu, err := api.deps.StudentSvc.GetByID(reqCtx, data.StudentID)
		if err != nil {
			return err
		}
		assessment, err := api.deps.Engine.Assess(reqCtx, stu.ID)
		if err != nil {
			return err
		}

		var details *notification.PaymentDetails
		if data.Amount != "" || data.DaysOverdue != "" || data.PaymentType != "" {
			details = &notification.PaymentDetails{
				Amount:      data.Amount,
				DaysOverdue: data.DaysOverdue,
				PaymentType: data.PaymentType,
			}
		}
		res = api.deps.NotifSvc.SendForStudent(reqCtx, stu, data.RecipientName, data.RecipientEmail, data.TemplateID, assessment, details)
	} else {
		res = api.deps.NotifSvc.Send(reqCtx, data.TemplateID, data.RecipientEmail, data.Variables)
	}

	return ctx.JSON(http.StatusOK, res)
}

func (api *notificationApi) studentLogs(ctx echo.Context) error {
	stu, err := api.deps.StudentSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	logs, err := api.deps.NotifSvc.LogsForStudent(ctx.Request().Context(), stu.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, logs)
}
