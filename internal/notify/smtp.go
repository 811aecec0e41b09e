package notify

import (
	"fmt"
	"net/smtp"
)

type SMTPSender struct {
	from     string
	fromName string
	host     string
	port     string
	user     string
	pass     string
}

func NewSMTPSender(from, fromName, host, port, user, pass string) *SMTPSender {
	return &SMTPSender{
		from:     from,
		fromName: fromName,
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
	}
}

func (s *SMTPSender) Send(job Job) error {
	return smtp.SendMail(s.host+":"+s.port, s.auth(), s.from, []string{job.To}, s.message(job))
}

func (s *SMTPSender) auth() smtp.Auth {
	if s.user == "" || s.pass == "" {
		return nil
	}
	return smtp.PlainAuth("", s.user, s.pass, s.host)
}

func (s *SMTPSender) message(job Job) []byte {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body
	return []byte(message)
}
