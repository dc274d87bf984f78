package email

import (
	"context"
	"errors"

	"tenant-auth/internal/domain"
)

// Sender define la interfaz para los correos de los flujos de password.
type Sender interface {
	SendPasswordRecover(ctx context.Context, user domain.User, token string) error
	SendActivation(ctx context.Context, user domain.User, token string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendPasswordRecover(_ context.Context, _ domain.User, _ string) error {
	return s.err()
}

func (s *disabledSender) SendActivation(_ context.Context, _ domain.User, _ string) error {
	return s.err()
}

func (s *disabledSender) err() error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
