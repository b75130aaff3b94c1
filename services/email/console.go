package emailsvc

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/eduwatch/eduwatch/core"
)

var (
	SentMessages = make([]core.Message, 0)
	mu           sync.Mutex
)

// consoleTransport writes messages to the log instead of delivering them.
// Sent messages are captured in SentMessages for inspection.
type consoleTransport struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	disableOutput    bool
}

var _ core.Transport = (*consoleTransport)(nil)

func NewConsoleTransport(conf *core.Config) core.Transport {
	return &consoleTransport{
		defaultFromEmail: conf.DefaultFromEmail,
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

// NewConsoleTransportMock returns a silent console transport for tests.
func NewConsoleTransportMock(conf *core.Config) core.Transport {
	return &consoleTransport{
		defaultFromEmail: conf.DefaultFromEmail,
		subjPrefix:       "[" + conf.AppName + "] ",
		disableOutput:    true,
	}
}

func (t consoleTransport) Send(_ context.Context, msg *core.Message) error {
	if !msg.HasRecipients() || !msg.HasContent() {
		return nil
	}

	if !t.disableOutput {
		body := new(strings.Builder)
		_, _ = fmt.Fprintf(body, "From: %s\r\n", t.defaultFromEmail.String())
		_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
		_, _ = fmt.Fprintf(body, "Subject: %s\r\n", t.subjPrefix+msg.Subject)
		_, _ = fmt.Fprintf(body, "To: %s\r\n", t.joinAddresses(msg.To))
		_, _ = fmt.Fprint(body, "\r\n")
		_, _ = fmt.Fprintf(body, "%s\r\n", msg.Body)
		log.Println(body.String())
	}

	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()
	return nil
}

func (t consoleTransport) joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}
