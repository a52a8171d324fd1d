package repository

import (
	"context"
	"time"

	"storefront-checkout/internal/domain/inventory"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	reserveInventory           = `SELECT success, available_stock, replayed FROM reserve_inventory($1, $2, $3, $4)`
	releaseInventory           = `SELECT release_inventory($1)`
	finalizeInventory          = `SELECT finalize_inventory($1)`
	releaseExpiredReservations = `SELECT release_expired_reservations($1)`
	updateTrackingKey          = `UPDATE inventory_reservations SET tracking_key = $2 WHERE tracking_key = $1`
)

// ReservationRepository calls the inventory stored procedures. Each procedure locks the variant rows it
// touches, so concurrent checkouts serialize in the database rather than here.
type ReservationRepository struct {
	dbtx db.DBTX
	// statements on the pool are retried individually; inside a transaction the unit of work retries
	retry bool
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	_, inTx := dbtx.(pgx.Tx)
	return &ReservationRepository{dbtx: dbtx, retry: !inTx}
}

func (r *ReservationRepository) Reserve(ctx context.Context, variantID uuid.UUID, quantity int, key inventory.TrackingKey, ttl time.Duration) (inventory.ReserveResult, error) {
	var (
		success   bool
		available int32
		replayed  bool
	)
	err := r.run(ctx, "reserve_inventory", func(ctx context.Context) error {
		return r.dbtx.QueryRow(ctx, reserveInventory, variantID, quantity, key.String(), int(ttl.Seconds())).
			Scan(&success, &available, &replayed)
	})
	if err != nil {
		return inventory.ReserveResult{}, infra.WrapRepoErr("failed to reserve inventory", err)
	}
	return inventory.ReserveResult{Success: success, AvailableStock: int(available), Replayed: replayed}, nil
}

func (r *ReservationRepository) Release(ctx context.Context, key inventory.TrackingKey) (int64, error) {
	n, err := r.scalar(ctx, "release_inventory", releaseInventory, key.String())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release inventory", err)
	}
	return n, nil
}

func (r *ReservationRepository) UpdateTrackingKey(ctx context.Context, from, to inventory.TrackingKey) error {
	err := r.run(ctx, "update_tracking_key", func(ctx context.Context) error {
		_, err := r.dbtx.Exec(ctx, updateTrackingKey, from.String(), to.String())
		return err
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update tracking key", err)
	}
	return nil
}

// Finalize converts reservations into permanent stock deductions.
func (r *ReservationRepository) Finalize(ctx context.Context, key inventory.TrackingKey) (int64, error) {
	n, err := r.scalar(ctx, "finalize_inventory", finalizeInventory, key.String())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to finalize inventory", err)
	}
	return n, nil
}

func (r *ReservationRepository) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.scalar(ctx, "release_expired_reservations", releaseExpiredReservations, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release expired reservations", err)
	}
	return n, nil
}

func (r *ReservationRepository) scalar(ctx context.Context, op, query string, arg any) (int64, error) {
	var n int32
	err := r.run(ctx, op, func(ctx context.Context) error {
		return r.dbtx.QueryRow(ctx, query, arg).Scan(&n)
	})
	return int64(n), err
}

func (r *ReservationRepository) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if !r.retry {
		return fn(ctx)
	}
	return db.WithRetry(ctx, op, fn)
}
