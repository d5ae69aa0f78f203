package email

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/config"
)

type sent struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestService(t *testing.T, fail error) (*Service, *[]sent) {
	t.Helper()

	var outbox []sent
	s := NewService(&config.EmailConfig{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		From:     "agenda@salao.example.com",
	})
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if fail != nil {
			return fail
		}
		outbox = append(outbox, sent{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return s, &outbox
}

func sample() *AppointmentEmail {
	return &AppointmentEmail{
		ClientName:       "Mariana <b>",
		CompanyName:      "Studio Bella",
		ProfessionalName: "Ana",
		ServiceName:      "Corte feminino",
		StartsAt:         time.Date(2026, 5, 4, 17, 30, 0, 0, time.UTC),
		Location:         time.FixedZone("BRT", -3*3600),
		Status:           "confirmed",
	}
}

func TestSendAppointmentCreated(t *testing.T) {
	s, outbox := newTestService(t, nil)

	require.NoError(t, s.SendAppointmentCreated("mariana@example.com", sample()))
	require.Len(t, *outbox, 1)

	mail := (*outbox)[0]
	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.Equal(t, []string{"mariana@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Agendamento recebido - Studio Bella\r\n")
	assert.Contains(t, mail.msg, "04/05/2026 às 14:30")
	assert.Contains(t, mail.msg, "Corte feminino")
	assert.Contains(t, mail.msg, "Mariana &lt;b&gt;")
}

func TestSendStatusChanged(t *testing.T) {
	s, outbox := newTestService(t, nil)

	data := sample()
	data.Status = "cancelled"
	require.NoError(t, s.SendStatusChanged("mariana@example.com", data))

	require.Len(t, *outbox, 1)
	assert.Contains(t, (*outbox)[0].msg, "Seu agendamento foi cancelado")
}

func TestSend_MissingRecipient(t *testing.T) {
	s, outbox := newTestService(t, nil)

	assert.Error(t, s.SendAppointmentCreated("", sample()))
	assert.Empty(t, *outbox)
}

func TestSend_TransportError(t *testing.T) {
	s, _ := newTestService(t, errors.New("connection refused"))

	err := s.SendStatusChanged("mariana@example.com", sample())
	assert.EqualError(t, err, "connection refused")
}
