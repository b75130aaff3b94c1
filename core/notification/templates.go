package notification

import "errors"

var ErrTemplateNotFound = errors.New("notification template not found")

// Template is an immutable message template. Subject and Body may contain
// {{name}} placeholders filled in by ProcessTemplate.
type Template struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	Type     string   `json:"type"` // email | sms
	Triggers []string `json:"triggers"`
}

// Template types
const (
	TypeEmail = "email"
	TypeSMS   = "sms"
)

// Default template IDs
const (
	TemplateCriticalRiskAlert = "critical_risk_alert"
	TemplateHighRiskWarning   = "high_risk_warning"
	TemplateWeeklySummary     = "weekly_summary"
	TemplatePaymentOverdue    = "payment_overdue"
)

// DefaultTemplates is the stock template set shipped with the system.
var DefaultTemplates = []Template{
	{
		ID:      TemplateCriticalRiskAlert,
		Name:    "Critical Risk Alert",
		Subject: "URGENT: {{studentName}} requires immediate attention",
		Body: `Dear {{recipientName}},

This is an urgent notification regarding {{studentName}} ({{studentGrade}}).

Our early warning system has identified critical risk factors that require immediate intervention:

{{riskFactors}}

Current Risk Score: {{riskScore}}/100

Recommended Actions:
- Schedule an immediate meeting with the student
- Contact the student's guardian if you haven't already
- Review recent attendance and academic performance
- Consider additional support resources

Please acknowledge this alert and take appropriate action within 24 hours.

Best regards,
EduWatch Alert System`,
		Type:     TypeEmail,
		Triggers: []string{"critical_risk", "multiple_absences", "failing_grades"},
	},
	{
		ID:      TemplateHighRiskWarning,
		Name:    "High Risk Warning",
		Subject: "Action Required: {{studentName}} showing warning signs",
		Body: `Dear {{recipientName}},

We wanted to alert you that {{studentName}} ({{studentGrade}}) is showing warning signs that may indicate they are at risk.

Risk Factors Identified:
{{riskFactors}}

Current Risk Score: {{riskScore}}/100

We recommend:
- Scheduling a check-in meeting within 48 hours
- Reviewing their recent performance and attendance
- Offering additional support or resources as needed

Early intervention can make a significant difference in student outcomes.

Best regards,
EduWatch Alert System`,
		Type:     TypeEmail,
		Triggers: []string{"high_risk", "declining_performance", "attendance_issues"},
	},
	{
		ID:      TemplateWeeklySummary,
		Name:    "Weekly Risk Summary",
		Subject: "Weekly Student Risk Summary - {{date}}",
		Body: `Dear {{recipientName}},

Here's your weekly summary of student risk assessments:

Students Under Your Mentorship:
{{studentSummary}}

Key Concerns This Week:
{{weeklyConcerns}}

Students Showing Improvement:
{{improvements}}

Please review these updates and take appropriate action where needed.

Best regards,
EduWatch Alert System`,
		Type:     TypeEmail,
		Triggers: []string{"weekly_summary"},
	},
	{
		ID:      TemplatePaymentOverdue,
		Name:    "Payment Overdue Alert",
		Subject: "Payment Overdue: {{studentName}}",
		Body: `Dear {{recipientName}},

This is to inform you that {{studentName}} has overdue payments that may affect their enrollment status.

Payment Details:
- Amount Due: ${{amount}}
- Days Overdue: {{daysOverdue}}
- Payment Type: {{paymentType}}

Please contact the finance office to resolve this matter promptly.

Best regards,
EduWatch Alert System`,
		Type:     TypeEmail,
		Triggers: []string{"payment_overdue"},
	},
}

// TemplateByID looks a template up in the given set; the default set is used
// when none is given.
func TemplateByID(id string, templates ...[]Template) (Template, error) {
	set := DefaultTemplates
	if len(templates) > 0 {
		set = templates[0]
	}
	for _, tmpl := range set {
		if tmpl.ID == id {
			return tmpl, nil
		}
	}
	return Template{}, ErrTemplateNotFound
}
