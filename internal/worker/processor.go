package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/qs3c/salon_go_server/internal/pkg/email"
	"github.com/qs3c/salon_go_server/internal/pkg/queue"
)

// DefaultMaxAttempts is how often a notification is tried before it is dropped.
const DefaultMaxAttempts = 3

var ErrUnknownKind = errors.New("unknown notification kind")

// Mailer sends the appointment emails.
type Mailer interface {
	SendAppointmentCreated(to string, data *email.AppointmentEmail) error
	SendStatusChanged(to string, data *email.AppointmentEmail) error
}

// Requeuer puts a failed notification back on the queue.
type Requeuer interface {
	Push(ctx context.Context, msg *queue.NotificationMessage) error
}

// Processor turns queued notifications into client emails.
type Processor struct {
	mailer      Mailer
	requeue     Requeuer
	maxAttempts int
}

// NewProcessor builds a processor. A nil requeue drops failed messages.
func NewProcessor(mailer Mailer, requeue Requeuer, maxAttempts int) *Processor {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Processor{
		mailer:      mailer,
		requeue:     requeue,
		maxAttempts: maxAttempts,
	}
}

// Process sends one notification. A failed send is pushed back with its
// attempt count raised until maxAttempts is reached.
func (p *Processor) Process(ctx context.Context, msg *queue.NotificationMessage) error {
	if msg.ClientEmail == "" {
		log.Printf("Notification for appointment %d skipped: client has no email", msg.AppointmentID)
		return nil
	}

	data := &email.AppointmentEmail{
		ClientName:       msg.ClientName,
		CompanyName:      msg.CompanyName,
		ProfessionalName: msg.ProfessionalName,
		ServiceName:      msg.ServiceName,
		StartsAt:         msg.StartsAt,
		Location:         location(msg.Timezone),
		Status:           msg.Status,
	}

	var err error
	switch msg.Kind {
	case queue.KindAppointmentCreated:
		err = p.mailer.SendAppointmentCreated(msg.ClientEmail, data)
	case queue.KindAppointmentStatus:
		err = p.mailer.SendStatusChanged(msg.ClientEmail, data)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, msg.Kind)
	}
	if err == nil {
		log.Printf("Notification %s sent for appointment %d", msg.Kind, msg.AppointmentID)
		return nil
	}

	msg.Attempts++
	if msg.Attempts >= p.maxAttempts || p.requeue == nil {
		return fmt.Errorf("notification for appointment %d dropped after %d attempts: %w", msg.AppointmentID, msg.Attempts, err)
	}
	if pushErr := p.requeue.Push(ctx, msg); pushErr != nil {
		return fmt.Errorf("requeue notification for appointment %d: %w", msg.AppointmentID, pushErr)
	}
	return fmt.Errorf("notification for appointment %d requeued (attempt %d): %w", msg.AppointmentID, msg.Attempts, err)
}

func location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
