// Package mail renders and delivers the submission confirmation message.
// Delivery itself is a thin transport behind the survey.Notifier interface;
// everything interesting happens in the summary rendering, which reuses the
// same stage-gated sections as the live form and the admin detail view.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"github.com/mbolis/foncier-survey/log"
	"github.com/mbolis/foncier-survey/model"
	"github.com/mbolis/foncier-survey/survey"
)

// Summary renders the plain-text body of the confirmation message for one
// persisted record.
func Summary(record *model.SubmittedRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Votre enquête de satisfaction a bien été enregistrée.\n")
	fmt.Fprintf(&b, "Numéro de dossier : %s\n", record.CaseID)
	fmt.Fprintf(&b, "Étape atteinte : %s\n", survey.StageLabel(record.Answers.StageReached))

	for _, section := range survey.Sections(&record.Answers) {
		if len(section.Fields) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n== %s ==\n", section.Title)
		for _, f := range section.Fields {
			fmt.Fprintf(&b, "%s : %s\n", f.Label, f.Value)
		}
	}

	return b.String()
}

// SMTPNotifier sends the confirmation over a plain SMTP relay.
type SMTPNotifier struct {
	Addr string // host:port
	From string
	Auth smtp.Auth
}

func (n *SMTPNotifier) Send(_ context.Context, record *model.SubmittedRecord) (string, error) {
	messageID := uuid.NewString()

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.From)
	fmt.Fprintf(&b, "To: %s\r\n", record.Email)
	fmt.Fprintf(&b, "Subject: Confirmation d'enquête %s\r\n", record.CaseID)
	fmt.Fprintf(&b, "Message-ID: <%s>\r\n", messageID)
	fmt.Fprintf(&b, "Content-Type: text/plain; charset=utf-8\r\n")
	fmt.Fprintf(&b, "\r\n%s", Summary(record))

	err := smtp.SendMail(n.Addr, n.Auth, n.From, []string{record.Email}, []byte(b.String()))
	if err != nil {
		return "", fmt.Errorf("mail.send: %w", err)
	}
	return messageID, nil
}

// LogNotifier writes the confirmation to the application log. Used for local
// runs where no relay is configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, record *model.SubmittedRecord) (string, error) {
	log.Infof("mail.confirmation for %s:\n%s", record.Email, Summary(record))
	return "log-" + record.CaseID, nil
}
