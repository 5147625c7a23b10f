package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"strings"

	"github.com/wneessen/go-mail"
)

const verifyEmailTemplate = `<p>Welcome to PhoneBook!</p>
<p>To confirm your registration please click on the <a href="{{.Link}}">link</a>.</p>
<p>If the link does not open, copy this address into your browser:<br>{{.Link}}</p>`

var verifyTmpl = template.Must(template.New("verify-email").Parse(verifyEmailTemplate))

type MailService struct {
	smtpHost      string
	smtpPort      int
	smtpUser      string
	smtpPass      string
	mailFrom      string
	mailFromName  string
	subject       string
	verifyBaseURL string
}

func NewMailService(
	smtpHost string,
	smtpPort int,
	smtpUser string,
	smtpPass string,
	mailFrom string,
	mailFromName string,
	subject string,
	verifyBaseURL string,
) *MailService {
	return &MailService{
		smtpHost:      smtpHost,
		smtpPort:      smtpPort,
		smtpUser:      smtpUser,
		smtpPass:      smtpPass,
		mailFrom:      mailFrom,
		mailFromName:  mailFromName,
		subject:       subject,
		verifyBaseURL: verifyBaseURL,
	}
}

// VerifyLink builds the confirmation URL embedded in the email body.
func (s *MailService) VerifyLink(token string) string {
	return fmt.Sprintf("%s/users/verify/%s",
		strings.TrimSuffix(s.verifyBaseURL, "/"),
		url.PathEscape(token),
	)
}

func (s *MailService) SendVerifyEmail(to string, token string) error {
	htmlBody, err := s.renderVerifyBody(s.VerifyLink(token))
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if s.mailFromName != "" {
		if err := msg.FromFormat(s.mailFromName, s.mailFrom); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.mailFrom); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}
	msg.Subject(s.subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{mail.WithPort(s.smtpPort)}
	if s.smtpPort == 465 {
		opts = append(opts, mail.WithSSL(), mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if s.smtpUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.smtpUser),
			mail.WithPassword(s.smtpPass),
		)
	}

	client, err := mail.NewClient(s.smtpHost, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	log.Printf("[MAIL] sending to=%s via=%s:%d", to, s.smtpHost, s.smtpPort)
	if err := client.DialAndSend(msg); err != nil {
		return err
	}
	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *MailService) renderVerifyBody(link string) (string, error) {
	var buf bytes.Buffer
	if err := verifyTmpl.Execute(&buf, map[string]string{"Link": link}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
