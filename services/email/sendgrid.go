package emailsvc

import (
	"context"
	"net/http"
	"net/mail"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/eduwatch/eduwatch/core"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type sendgridTransport struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

var _ core.Transport = (*sendgridTransport)(nil)

func NewSendgridTransport(conf *core.Config) *sendgridTransport {
	from := conf.DefaultFromEmail
	return &sendgridTransport{
		key:        conf.SendgridApiKey,
		from:       sgmail.NewEmail(from.Name, from.Address),
		subjPrefix: "[" + conf.AppName + "] ",
	}
}

func (t sendgridTransport) Send(ctx context.Context, msg *core.Message) error {
	if !msg.HasRecipients() || !msg.HasContent() {
		return errors.New("nothing to send")
	}

	req := sendgrid.GetRequest(t.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(t.prepare(msg))

	// todo: rest.SendWithContext once sendgrid-go exposes it
	res, err := sendgrid.API(req)
	if err != nil {
		return errors.Wrap(err, "sending email")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sending email - status: %d - body: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (t sendgridTransport) prepare(msg *core.Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = t.subjPrefix + msg.Subject
	for _, to := range msg.To {
		p.AddTos(t.getSGEmail(to))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(t.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Body))
	return m
}

func (t sendgridTransport) getSGEmail(addr mail.Address) *sgmail.Email {
	return sgmail.NewEmail(addr.Name, addr.Address)
}
