package notification

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"salon/internal/domain"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
	block    chan struct{}
}

func (s *captureSender) DialAndSend(m ...*gomail.Message) error {
	if s.block != nil {
		<-s.block
	}
	s.messages = append(s.messages, m...)
	return s.err
}

func details() domain.BookingDetails {
	return domain.BookingDetails{
		AppointmentID: 42,
		ClientName:    "Jan Kowalski",
		EmployeeName:  "Anna Nowak",
		ServiceName:   "Strzyżenie",
		StartTime:     time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Price:         100,
	}
}

func TestEmailNotifier_SendBookingConfirmation(t *testing.T) {
	t.Parallel()

	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skip("tzdata not available")
	}

	sender := &captureSender{}
	notifier := newEmailNotifier(sender, "salon@example.com", warsaw, zap.NewNop())

	contact := domain.Contact{UserID: 200, Name: "Jan Kowalski", Email: "jan@example.com"}
	if err := notifier.SendBookingConfirmation(context.Background(), contact, details()); err != nil {
		t.Fatalf("SendBookingConfirmation returned error: %v", err)
	}

	if len(sender.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.messages))
	}
	msg := sender.messages[0]
	if got := msg.GetHeader("To"); len(got) != 1 || !strings.Contains(got[0], "jan@example.com") {
		t.Fatalf("unexpected recipient %v", got)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo returned error: %v", err)
	}
	parsed, err := mail.ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage returned error: %v", err)
	}

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	if err != nil {
		t.Fatalf("DecodeHeader returned error: %v", err)
	}
	if subject != "Подтверждение записи" {
		t.Fatalf("unexpected subject %q", subject)
	}

	raw, err := io.ReadAll(quotedprintable.NewReader(parsed.Body))
	if err != nil {
		t.Fatalf("reading body returned error: %v", err)
	}
	body := string(raw)
	for _, want := range []string{"02.03.2026 09:00–10:00", "Номер записи: 42"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in local-time body:\n%s", want, body)
		}
	}
}

func TestEmailNotifier_Errors(t *testing.T) {
	t.Parallel()

	sender := &captureSender{err: errors.New("smtp down")}
	notifier := newEmailNotifier(sender, "salon@example.com", time.UTC, zap.NewNop())

	if err := notifier.SendFollowUp(context.Background(), domain.Contact{UserID: 1}, details()); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected ErrNoRecipient, got %v", err)
	}
	if err := notifier.SendFollowUp(context.Background(), domain.Contact{UserID: 1, Email: "a@b.pl"}, details()); err == nil {
		t.Fatalf("expected sender error to surface")
	}
}

func TestEmailNotifier_RespectsContext(t *testing.T) {
	t.Parallel()

	sender := &captureSender{block: make(chan struct{})}
	defer close(sender.block)
	notifier := newEmailNotifier(sender, "salon@example.com", time.UTC, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := notifier.SendBookingConfirmation(ctx, domain.Contact{UserID: 1, Email: "a@b.pl"}, details())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
