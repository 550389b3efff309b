// Package sms holds development implementations of the SMS
// collaborator. Production senders (gateway clients) live outside this
// repository.
package sms

import (
	"context"
	"log/slog"
)

// ConsoleSender writes the passcode to the log instead of sending it.
// Development only: it prints a live secret.
type ConsoleSender struct{}

func NewConsoleSender() *ConsoleSender {
	return &ConsoleSender{}
}

func (s *ConsoleSender) SendOTP(ctx context.Context, mobileNumber, code string) error {
	slog.InfoContext(ctx, "otp ready for delivery", "mobile_number", mobileNumber, "code", code)
	return nil
}
