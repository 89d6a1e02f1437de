package contact

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/venkatesh7569/portfolio/internal/emailjs"
)

var (
	// ErrDeliveryFailed wraps every gateway error. Callers do not branch on
	// the cause.
	ErrDeliveryFailed = errors.New("contact: delivery failed")
	// ErrDuplicateSubmission is returned while an identical submission is
	// still being sent.
	ErrDuplicateSubmission = errors.New("contact: identical submission already in flight")
)

// Sender delivers one templated message.
type Sender interface {
	Send(ctx context.Context, req emailjs.Request) error
}

// Account holds the fixed identifiers that pick the hosted template.
type Account struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

type Status string

const (
	StatusIdle      Status = "idle"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
	StatusInvalid   Status = "invalid"
	StatusDuplicate Status = "duplicate"
)

// Notice is the text shown next to the form for a status.
func (s Status) Notice() string {
	switch s {
	case StatusSent:
		return "Message sent successfully!"
	case StatusFailed:
		return "Failed to send message. Please try again later."
	case StatusInvalid:
		return "Please fill in all fields with a valid email address."
	case StatusDuplicate:
		return "Your message is already being sent."
	}
	return ""
}

type Result struct {
	Status Status
	// Invalid is set when Status is StatusInvalid.
	Invalid ValidationErrors
}

type Handler struct {
	sender  Sender
	account Account
	log     zerolog.Logger

	mu       sync.Mutex
	inFlight map[[sha256.Size]byte]struct{}
}

func NewHandler(sender Sender, account Account, log zerolog.Logger) *Handler {
	return &Handler{
		sender:   sender,
		account:  account,
		log:      log,
		inFlight: make(map[[sha256.Size]byte]struct{}),
	}
}

// Submit validates sub and sends it through the gateway. On success sub is
// reset to empty; on any other outcome it is left untouched so the user can
// edit and resubmit.
func (h *Handler) Submit(ctx context.Context, sub *Submission) (Result, error) {
	l := h.logger(ctx)

	if err := sub.Validate(); err != nil {
		var verr ValidationErrors
		if errors.As(err, &verr) {
			l.Info().Interface("fields", verr).Msg("contact submission rejected")
			return Result{Status: StatusInvalid, Invalid: verr}, verr
		}
		return Result{Status: StatusInvalid}, err
	}

	key := fingerprint(*sub)
	if !h.acquire(key) {
		l.Warn().Msg("duplicate contact submission while send in flight")
		return Result{Status: StatusDuplicate}, ErrDuplicateSubmission
	}
	defer h.release(key)

	req := emailjs.Request{
		ServiceID:  h.account.ServiceID,
		TemplateID: h.account.TemplateID,
		PublicKey:  h.account.PublicKey,
		Params:     sub.Params(),
	}
	l.Debug().Interface("template_params", req.Params).Msg("sending contact message")

	if err := h.sender.Send(ctx, req); err != nil {
		l.Error().Err(err).Msg("contact message delivery failed")
		return Result{Status: StatusFailed}, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	l.Info().Msg("contact message sent")
	sub.Reset()
	return Result{Status: StatusSent}, nil
}

func (h *Handler) logger(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l.With().Str("component", "contact").Logger()
	}
	return h.log
}

func (h *Handler) acquire(key [sha256.Size]byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, busy := h.inFlight[key]; busy {
		return false
	}
	h.inFlight[key] = struct{}{}
	return true
}

func (h *Handler) release(key [sha256.Size]byte) {
	h.mu.Lock()
	delete(h.inFlight, key)
	h.mu.Unlock()
}

func fingerprint(s Submission) [sha256.Size]byte {
	return sha256.Sum256([]byte(s.Name + "\x00" + s.Email + "\x00" + s.Message))
}
