package notification

import (
	"strconv"
	"strings"
	"time"

	"github.com/eduwatch/eduwatch/core/student"
)

// placeholders are double-braced variable names: {{studentName}}. Substitution
// is literal; there is no control flow, nesting or computed expressions.
const (
	placeholderOpen  = "{{"
	placeholderClose = "}}"
)

// overridden in tests
var nowFunc = time.Now

// ProcessTemplate fills every placeholder in the template body with its value
// from `variables`. Matching is case-sensitive and exact; a placeholder with
// no binding is left in the output verbatim.
func ProcessTemplate(tmpl Template, variables map[string]string) string {
	return substitute(tmpl.Body, variables)
}

// Render fills both the subject and body of the template.
func Render(tmpl Template, variables map[string]string) (subject, body string) {
	return substitute(tmpl.Subject, variables), substitute(tmpl.Body, variables)
}

// substitute does a single left-to-right scan over `s`, replacing each bound
// {{name}} token as it is found.
func substitute(s string, variables map[string]string) string {
	var b strings.Builder
	b.Grow(len(s))

	for {
		open := strings.Index(s, placeholderOpen)
		if open < 0 {
			b.WriteString(s)
			return b.String()
		}
		rest := s[open+len(placeholderOpen):]
		end := strings.Index(rest, placeholderClose)
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}

		name := rest[:end]
		token := s[open : open+len(placeholderOpen)+end+len(placeholderClose)]

		b.WriteString(s[:open])
		if value, ok := variables[name]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(token) // unbound: keep verbatim
		}
		s = rest[end+len(placeholderClose):]
	}
}

// PaymentDetails are the optional payment fields of a notification.
type PaymentDetails struct {
	Amount      string
	DaysOverdue string
	PaymentType string
}

// Variables assembles the variable set consumed by ProcessTemplate for a
// student notification. The payment fields default to "0"/"0"/"N/A" when no
// details are given. Risk factor descriptions are joined so that a template
// prefixing the block with "- " renders a bulleted list.
func Variables(stu student.Student, recipientName string, riskFactors []string, riskScore float64, details *PaymentDetails) map[string]string {
	amount, daysOverdue, paymentType := "0", "0", "N/A"
	if details != nil {
		if details.Amount != "" {
			amount = details.Amount
		}
		if details.DaysOverdue != "" {
			daysOverdue = details.DaysOverdue
		}
		if details.PaymentType != "" {
			paymentType = details.PaymentType
		}
	}

	return map[string]string{
		"studentName":   stu.Name,
		"studentGrade":  stu.Grade,
		"studentEmail":  stu.Email,
		"recipientName": recipientName,
		"riskFactors":   strings.Join(riskFactors, "\n- "),
		"riskScore":     strconv.FormatFloat(riskScore, 'f', -1, 64),
		"date":          nowFunc().Format("1/2/2006"),
		"amount":        amount,
		"daysOverdue":   daysOverdue,
		"paymentType":   paymentType,
	}
}
