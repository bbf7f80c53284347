package services

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ggrmusic/ggr-web/pkg/clients/sheets"
	"github.com/ggrmusic/ggr-web/pkg/format"
	"github.com/ggrmusic/ggr-web/pkg/models"
	"github.com/ggrmusic/ggr-web/pkg/utils"
	"github.com/ggrmusic/ggr-web/pkg/validation"
)

const (
	// SuccessMessage is shown after a subscription has been recorded.
	SuccessMessage = "Thank you for subscribing! You will receive updates based on your preferences."
	// FailureMessage is shown for every delivery failure so the downstream
	// integration stays opaque to visitors.
	FailureMessage = "We encountered an issue processing your subscription. Please try again later."
	// InvalidMessage accompanies field errors.
	InvalidMessage = "Please correct the highlighted fields and try again."
)

// Status is the terminal state of a submission.
type Status int

const (
	StatusSuccess Status = iota
	StatusInvalidInput
	StatusDeliveryFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidInput:
		return "invalid_input"
	case StatusDeliveryFailed:
		return "delivery_failed"
	}
	return "unknown"
}

// Outcome is what the caller shows the visitor.
type Outcome struct {
	ID          string
	Status      Status
	Message     string
	FieldErrors validation.Errors
	Row         string
}

// RequestMeta carries request details that enrich the outbound record.
type RequestMeta struct {
	IPAddress string
}

// SubscriptionService defines the interface for handling subscription submissions
type SubscriptionService interface {
	Submit(ctx context.Context, input models.SubscriptionInput, meta RequestMeta) Outcome
}

type subscriptionServiceImpl struct {
	validator    *validation.Validator
	sheetsClient sheets.Client
	logger       *slog.Logger
	now          func() time.Time
}

// NewSubscriptionService creates a new submission service
func NewSubscriptionService(
	validator *validation.Validator,
	sheetsClient sheets.Client,
	logger *slog.Logger,
) SubscriptionService {
	return newSubscriptionService(validator, sheetsClient, logger, time.Now)
}

func newSubscriptionService(
	validator *validation.Validator,
	sheetsClient sheets.Client,
	logger *slog.Logger,
	now func() time.Time,
) *subscriptionServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &subscriptionServiceImpl{
		validator:    validator,
		sheetsClient: sheetsClient,
		logger:       logger,
		now:          now,
	}
}

// Submit validates, formats and forwards one subscription.
func (s *subscriptionServiceImpl) Submit(ctx context.Context, input models.SubscriptionInput, meta RequestMeta) Outcome {
	id := uuid.New().String()
	logger := s.logger.With(
		"submission_id", id,
		"subscriber", utils.SubscriberID(input.Email),
	)
	logger.Info("subscription received", "ip_address", meta.IPAddress)

	submission, fieldErrs := s.validator.Validate(input)
	if len(fieldErrs) > 0 {
		logger.Info("subscription rejected by validation", "fields", fieldNames(fieldErrs))
		return Outcome{
			ID:          id,
			Status:      StatusInvalidInput,
			Message:     InvalidMessage,
			FieldErrors: fieldErrs,
		}
	}

	record := format.Record(submission, s.now(), meta.IPAddress)
	logger.Debug("sending subscription to google sheets", "record", record)

	// The visitor waits for the result, but a dropped connection should
	// not abort a row that is already on its way.
	sendCtx := context.WithoutCancel(ctx)
	delivery, err := s.sheetsClient.Send(sendCtx, record)
	if err != nil {
		logger.Error("failed to send subscription to google sheets",
			"kind", failureKind(err),
			"err", err,
		)
		return Outcome{ID: id, Status: StatusDeliveryFailed, Message: FailureMessage}
	}

	logger.Info("subscription sent to google sheets",
		"status", delivery.Status,
		"row", delivery.Row,
	)
	return Outcome{ID: id, Status: StatusSuccess, Message: SuccessMessage, Row: delivery.Row}
}

func failureKind(err error) string {
	var rejected *sheets.RejectedError
	var transport *sheets.TransportError
	switch {
	case errors.Is(err, sheets.ErrNotConfigured):
		return "configuration_error"
	case errors.As(err, &rejected):
		return "remote_rejected"
	case errors.As(err, &transport):
		return "transport_failed"
	}
	return "unknown"
}

func fieldNames(errs validation.Errors) []string {
	return slices.Sorted(maps.Keys(errs))
}
