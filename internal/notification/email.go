package notification

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"salon/config"
	"salon/internal/domain"
)

var ErrNoRecipient = errors.New("у клиента не указан email")

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier delivers booking e-mails over SMTP.
type EmailNotifier struct {
	sender   sender
	from     string
	location *time.Location
	logger   *zap.Logger
}

func NewEmailNotifier(cfg config.SMTPConfig, location *time.Location, logger *zap.Logger) *EmailNotifier {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.UseTLS
	if cfg.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}
	}
	return newEmailNotifier(dialer, cfg.From, location, logger)
}

func newEmailNotifier(s sender, from string, location *time.Location, logger *zap.Logger) *EmailNotifier {
	if location == nil {
		location = time.UTC
	}
	return &EmailNotifier{sender: s, from: from, location: location, logger: logger}
}

func (n *EmailNotifier) SendBookingConfirmation(ctx context.Context, contact domain.Contact, details domain.BookingDetails) error {
	return n.send(ctx, contact, "Подтверждение записи", n.confirmationBody(details))
}

func (n *EmailNotifier) SendFollowUp(ctx context.Context, contact domain.Contact, details domain.BookingDetails) error {
	return n.send(ctx, contact, "Спасибо за визит", n.followUpBody(details))
}

func (n *EmailNotifier) send(ctx context.Context, contact domain.Contact, subject, body string) error {
	to := strings.TrimSpace(contact.Email)
	if to == "" {
		return ErrNoRecipient
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetAddressHeader("To", to, contact.Name)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- n.sender.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("ошибка отправки письма: %w", err)
		}
		n.logger.Debug("письмо отправлено", zap.String("subject", subject), zap.Int64("userID", contact.UserID))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *EmailNotifier) confirmationBody(d domain.BookingDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", greetingName(d.ClientName))
	fmt.Fprintf(&b, "Вы записаны на услугу «%s».\n", d.ServiceName)
	fmt.Fprintf(&b, "Мастер: %s\n", d.EmployeeName)
	fmt.Fprintf(&b, "Дата и время: %s\n", n.formatWindow(d.StartTime, d.EndTime))
	fmt.Fprintf(&b, "Стоимость: %.2f\n\n", d.Price)
	fmt.Fprintf(&b, "Номер записи: %d\n", d.AppointmentID)
	return b.String()
}

func (n *EmailNotifier) followUpBody(d domain.BookingDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", greetingName(d.ClientName))
	fmt.Fprintf(&b, "Спасибо, что посетили нас %s.\n", n.formatWindow(d.StartTime, d.EndTime))
	fmt.Fprintf(&b, "Услуга «%s», мастер %s.\n\n", d.ServiceName, d.EmployeeName)
	b.WriteString("Будем рады видеть вас снова!\n")
	return b.String()
}

func (n *EmailNotifier) formatWindow(start, end time.Time) string {
	start, end = start.In(n.location), end.In(n.location)
	return fmt.Sprintf("%s %s–%s", start.Format("02.01.2006"), start.Format(domain.ClockLayout), end.Format(domain.ClockLayout))
}

func greetingName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "клиент"
	}
	return name
}

// LogNotifier only logs what would have been sent; used when SMTP is not configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendBookingConfirmation(_ context.Context, contact domain.Contact, details domain.BookingDetails) error {
	n.logger.Info("уведомление о записи (SMTP не настроен)",
		zap.Int64("userID", contact.UserID),
		zap.Int64("appointmentID", details.AppointmentID),
		zap.Time("start", details.StartTime))
	return nil
}

func (n *LogNotifier) SendFollowUp(_ context.Context, contact domain.Contact, details domain.BookingDetails) error {
	n.logger.Info("благодарность после визита (SMTP не настроен)",
		zap.Int64("userID", contact.UserID),
		zap.Int64("appointmentID", details.AppointmentID))
	return nil
}
