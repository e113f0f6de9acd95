package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"formpilot-api/models"
)

// Notifier tells a form owner about a new submission.
type Notifier interface {
	NotifySubmission(ctx context.Context, form *models.Form, sub *models.Submission) error
}

type mailSender interface {
	SendMail(to []string, subject, html string) error
}

var submissionMailTemplate = template.Must(template.New("submission").Parse(`<p>New submission for form <strong>{{.FormID}}</strong></p>
<table>
  <tr><td>Name</td><td>{{.Name}}</td></tr>
  <tr><td>Email</td><td>{{.Email}}</td></tr>
  {{if .Mobile}}<tr><td>Mobile</td><td>{{.Mobile}}</td></tr>{{end}}
  {{if .Remark}}<tr><td>Remark</td><td>{{.Remark}}</td></tr>{{end}}
  <tr><td>Received</td><td>{{.CreatedAt}}</td></tr>
</table>`))

// MailNotifier emails the form's notify_email through SMTP.
type MailNotifier struct {
	sender mailSender
}

func NewMailNotifier(sender mailSender) *MailNotifier {
	return &MailNotifier{sender: sender}
}

func (n *MailNotifier) NotifySubmission(ctx context.Context, form *models.Form, sub *models.Submission) error {
	if form == nil || form.NotifyEmail == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := struct {
		FormID    string
		Name      string
		Email     string
		Mobile    string
		Remark    string
		CreatedAt string
	}{
		FormID:    form.FormID,
		Name:      sub.Name,
		Email:     sub.Email,
		CreatedAt: sub.CreatedAt.UTC().Format("2006-01-02 15:04 MST"),
	}
	if sub.Mobile != nil {
		data.Mobile = *sub.Mobile
	}
	if sub.Remark != nil {
		data.Remark = *sub.Remark
	}

	var body bytes.Buffer
	if err := submissionMailTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	subject := fmt.Sprintf("New submission from %s", sub.Name)
	return n.sender.SendMail([]string{form.NotifyEmail}, subject, body.String())
}
