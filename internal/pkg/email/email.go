package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"github.com/qs3c/salon_go_server/config"
)

type Service struct {
	cfg      *config.EmailConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg, sendMail: smtp.SendMail}
}

// AppointmentEmail is the data rendered into appointment notifications.
type AppointmentEmail struct {
	ClientName       string
	CompanyName      string
	ProfessionalName string
	ServiceName      string
	StartsAt         time.Time
	Location         *time.Location
	Status           string
}

var statusLabels = map[string]string{
	"pending":   "aguardando confirmação",
	"confirmed": "confirmado",
	"completed": "concluído",
	"cancelled": "cancelado",
	"no_show":   "marcado como não comparecimento",
}

var layout = template.Must(template.New("appointment").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #db2777;">{{.Title}}</h2>
        <p>Olá, {{.ClientName}}!</p>
        <p>{{.Lead}}</p>
        <div style="background-color: #fdf2f8; padding: 15px; margin: 20px 0;">
            <p><strong>Serviço:</strong> {{.ServiceName}}</p>
            {{if .ProfessionalName}}<p><strong>Profissional:</strong> {{.ProfessionalName}}</p>{{end}}
            <p><strong>Data:</strong> {{.When}}</p>
        </div>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">{{.CompanyName}} · Este e-mail foi enviado automaticamente, não responda.</p>
    </div>
</body>
</html>
`))

// SendAppointmentCreated tells the client a new appointment was booked.
func (s *Service) SendAppointmentCreated(to string, data *AppointmentEmail) error {
	subject := fmt.Sprintf("Agendamento recebido - %s", data.CompanyName)
	body, err := render(data, "Agendamento recebido", "Recebemos o seu agendamento:")
	if err != nil {
		return err
	}
	return s.sendHTML(to, subject, body)
}

// SendStatusChanged tells the client their appointment changed status.
func (s *Service) SendStatusChanged(to string, data *AppointmentEmail) error {
	label, ok := statusLabels[data.Status]
	if !ok {
		label = data.Status
	}

	subject := fmt.Sprintf("Seu agendamento foi %s - %s", label, data.CompanyName)
	body, err := render(data, "Atualização do agendamento", fmt.Sprintf("Seu agendamento foi %s.", label))
	if err != nil {
		return err
	}
	return s.sendHTML(to, subject, body)
}

func render(data *AppointmentEmail, title, lead string) (string, error) {
	loc := data.Location
	if loc == nil {
		loc = time.UTC
	}

	var buf bytes.Buffer
	err := layout.Execute(&buf, map[string]interface{}{
		"Title":            title,
		"Lead":             lead,
		"ClientName":       data.ClientName,
		"CompanyName":      data.CompanyName,
		"ServiceName":      data.ServiceName,
		"ProfessionalName": data.ProfessionalName,
		"When":             data.StartsAt.In(loc).Format("02/01/2006 às 15:04"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

func (s *Service) sendHTML(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("missing recipient")
	}

	headers := [][2]string{
		{"From", s.cfg.From},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}

	var msg strings.Builder
	for _, h := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", h[0], h[1]))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return s.sendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
