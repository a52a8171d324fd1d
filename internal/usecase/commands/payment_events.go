package commands

import (
	"context"
	"log/slog"

	"storefront-checkout/internal/domain/discount"
	"storefront-checkout/internal/domain/inventory"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentEventType string

const (
	EventSessionCompleted      PaymentEventType = "checkout.session.completed"
	EventSessionExpired        PaymentEventType = "checkout.session.expired"
	EventAsyncPaymentSucceeded PaymentEventType = "checkout.session.async_payment_succeeded"
	EventAsyncPaymentFailed    PaymentEventType = "checkout.session.async_payment_failed"
)

const paymentStatusUnpaid = "unpaid"

// PaymentEvent is a verified provider notification about a checkout session.
type PaymentEvent struct {
	ID               string
	Type             PaymentEventType
	SessionID        string
	PaymentStatus    string
	AmountTotalCents int64
	Currency         string
	CustomerEmail    string
	Metadata         map[string]string
}

type PaymentEventCommands interface {
	HandlePaymentEvent(ctx context.Context, ev PaymentEvent) error
}

type paymentEventUseCaseImpl struct {
	uow     shared.UnitOfWork
	metrics MetricsRecorder
}

func NewPaymentEventCommands(uow shared.UnitOfWork, metrics MetricsRecorder) PaymentEventCommands {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &paymentEventUseCaseImpl{uow: uow, metrics: metrics}
}

// HandlePaymentEvent applies an event at most once. Confirmed payments turn the session's
// reservations into stock deductions and are the only place a discount redemption is counted;
// expired or failed sessions give their stock back.
func (uc *paymentEventUseCaseImpl) HandlePaymentEvent(ctx context.Context, ev PaymentEvent) error {
	var apply func(ctx context.Context, tx shared.Tx, ev PaymentEvent) error
	switch ev.Type {
	case EventSessionCompleted:
		// unpaid sessions use a delayed method and confirm through async_payment_succeeded
		if ev.PaymentStatus != paymentStatusUnpaid {
			apply = uc.complete
		}
	case EventAsyncPaymentSucceeded:
		apply = uc.complete
	case EventSessionExpired, EventAsyncPaymentFailed:
		apply = uc.release
	default:
		slog.Debug("ignoring payment event", "event_id", ev.ID, "type", string(ev.Type))
		return nil
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fresh, err := tx.Events().MarkProcessed(ctx, ev.ID, string(ev.Type))
		if err != nil {
			return errs.Wrap(err, "mark event processed")
		}
		if !fresh {
			slog.Info("payment event already processed", "event_id", ev.ID)
			return nil
		}
		if apply == nil {
			return nil
		}
		return apply(ctx, tx, ev)
	})
}

func (uc *paymentEventUseCaseImpl) complete(ctx context.Context, tx shared.Tx, ev PaymentEvent) error {
	finalized, err := uc.finalize(ctx, tx, ev)
	if err != nil {
		return err
	}

	order := shared.OrderRecord{
		SessionID:     ev.SessionID,
		UserID:        parseUserID(ev.Metadata[MetadataUserID]),
		CustomerEmail: ev.CustomerEmail,
		Mode:          ev.Metadata[MetadataMode],
		TotalCents:    ev.AmountTotalCents,
		Currency:      ev.Currency,
		DiscountCode:  ev.Metadata[MetadataDiscountCode],
	}
	if err := tx.Orders().UpsertCompleted(ctx, order); err != nil {
		return errs.Wrap(err, "record completed order")
	}

	if raw := ev.Metadata[MetadataDiscountCode]; raw != "" {
		code, err := discount.NewCode(raw)
		if err != nil {
			slog.Warn("session carries a malformed discount code", "session_id", ev.SessionID, "code", raw)
		} else if err := tx.Discounts().IncrementRedemptions(ctx, code); err != nil {
			return errs.Wrap(err, "increment discount redemptions")
		}
	}

	slog.Info("checkout completed",
		"session_id", ev.SessionID,
		"finalized_reservations", finalized,
		"amount_total", ev.AmountTotalCents)
	return nil
}

// finalize tries the session key first and falls back to the temporary key for sessions whose
// reconciliation never happened.
func (uc *paymentEventUseCaseImpl) finalize(ctx context.Context, tx shared.Tx, ev PaymentEvent) (int64, error) {
	n, err := tx.Reservations().Finalize(ctx, inventory.TrackingKey(ev.SessionID))
	if err != nil {
		return 0, errs.Wrap(err, "finalize reservations")
	}
	if n > 0 {
		return n, nil
	}
	temp := ev.Metadata[MetadataReservationKey]
	if temp == "" || temp == ev.SessionID {
		return 0, nil
	}
	n, err = tx.Reservations().Finalize(ctx, inventory.TrackingKey(temp))
	if err != nil {
		return 0, errs.Wrap(err, "finalize reservations by temporary key")
	}
	return n, nil
}

func (uc *paymentEventUseCaseImpl) release(ctx context.Context, tx shared.Tx, ev PaymentEvent) error {
	keys := []inventory.TrackingKey{inventory.TrackingKey(ev.SessionID)}
	if temp := ev.Metadata[MetadataReservationKey]; temp != "" && temp != ev.SessionID {
		keys = append(keys, inventory.TrackingKey(temp))
	}

	var total int64
	for _, k := range keys {
		n, err := tx.Reservations().Release(ctx, k)
		if err != nil {
			return errs.Wrap(err, "release reservations")
		}
		total += n
	}
	uc.metrics.ReservationsReleased("session_"+releaseReason(ev.Type), total)
	slog.Info("released reservations for closed session", "session_id", ev.SessionID, "rows", total)
	return nil
}

func releaseReason(t PaymentEventType) string {
	if t == EventAsyncPaymentFailed {
		return "payment_failed"
	}
	return "expired"
}

func parseUserID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return nil
	}
	return &id
}
