package inventory

import (
	"context"
	"log/slog"
	"time"

	"storefront-checkout/internal/pkg/errs"
)

// Hold scopes the reservations of one checkout attempt. Everything reserved under its key
// is released on Close unless Keep was called once the payment session existed.
// A hold that replayed reservations of an earlier submission does not own them and never
// releases them; they belong to that submission's session or run out with the TTL.
//
//	hold := inventory.NewHold(store, inventory.AttemptKey(idempotencyKey), ttl)
//	defer hold.Close(ctx)
//	if err := hold.Reserve(ctx, reqs); err != nil { ... }
//	session := create(...)
//	hold.Keep()
//	hold.Reconcile(ctx, session.ID)
type Hold struct {
	store     Store
	key       TrackingKey
	ttl       time.Duration
	attempted bool
	reserved  int
	replayed  int
	kept      bool
}

func NewHold(store Store, key TrackingKey, ttl time.Duration) *Hold {
	return &Hold{
		store: store,
		key:   key,
		ttl:   ttl,
	}
}

func (h *Hold) Key() TrackingKey { return h.key }

// Reserved reports how many reserve calls succeeded under this hold, replays included.
func (h *Hold) Reserved() int { return h.reserved }

// Replayed reports whether any line was already held by an earlier submission.
func (h *Hold) Replayed() bool { return h.replayed > 0 }

// Reserve holds every request or none of them. On the first failure, reservations already
// made under the key are released before the error is returned.
func (h *Hold) Reserve(ctx context.Context, reqs []Request) error {
	for _, r := range reqs {
		h.attempted = true
		res, err := h.store.Reserve(ctx, r.VariantID, r.Quantity, h.key, h.ttl)
		if err != nil {
			h.release(ctx)
			return errs.Wrapf(err, "reserve %s", r.PriceRef)
		}
		if !res.Success {
			h.release(ctx)
			return &InsufficientStockError{
				PriceRef:  r.PriceRef,
				Requested: r.Quantity,
				Available: res.AvailableStock,
			}
		}
		h.reserved++
		if res.Replayed {
			h.replayed++
		}
	}
	return nil
}

func (h *Hold) Keep() {
	h.kept = true
}

func (h *Hold) Close(ctx context.Context) {
	if h.kept || !h.attempted {
		return
	}
	h.release(ctx)
}

// Reconcile moves the reservations to the payment session key. A failure leaves them under
// the temporary key, where the expiry sweep reclaims them after the TTL.
func (h *Hold) Reconcile(ctx context.Context, sessionID string) error {
	if h.reserved == 0 {
		return nil
	}
	to := TrackingKey(sessionID)
	if err := h.store.UpdateTrackingKey(ctx, h.key, to); err != nil {
		slog.Warn("reservation reconciliation failed, leaving hold to expire",
			"tracking_key", h.key.String(),
			"session_id", sessionID,
			"ttl", h.ttl,
			"error", err)
		return errs.Wrap(err, "reconcile reservation")
	}
	h.key = to
	return nil
}

func (h *Hold) release(ctx context.Context) {
	if !h.attempted {
		return
	}
	if h.replayed > 0 {
		slog.Warn("leaving replayed reservations to their original submission",
			"tracking_key", h.key.String(),
			"ttl", h.ttl)
		return
	}
	// the request context may already be cancelled here
	released, err := h.store.Release(context.WithoutCancel(ctx), h.key)
	if err != nil {
		slog.Error("failed to release reservations",
			"tracking_key", h.key.String(),
			"error", err)
		return
	}
	slog.Info("released reservations", "tracking_key", h.key.String(), "rows", released)
	h.attempted = false
	h.reserved = 0
}
