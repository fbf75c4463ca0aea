package email

import (
	"context"
	"errors"

	"heart-monitor/internal/domain"
)

// AlertSender define la interfaz para notificar al cuidador cuando una
// evaluacion sale en riesgo alto.
type AlertSender interface {
	SendRiskAlert(ctx context.Context, toEmail string, patientName string, reading domain.Reading, shareURL string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) AlertSender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendRiskAlert(_ context.Context, _ string, _ string, _ domain.Reading, _ string) error {
	if s.reason == "" {
		return errors.New("alert sender disabled")
	}
	return errors.New(s.reason)
}
