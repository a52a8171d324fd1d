package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/infra/repository"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool TxBeginner
}

func NewPostgresUoW(pool TxBeginner) *PostgresUoW {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted is enough: the inventory procedures take row locks themselves.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= db.MaxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, &pgTx{dbtx: pgxTx})
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !db.ShouldRetry(err, attempt, db.MaxRetries) {
			if attempt == db.MaxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := db.CalculateBackoff(attempt, db.BaseBackoff)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

type pgTx struct {
	dbtx pgx.Tx

	// Lazy-initialized repositories
	eventRepo       shared.EventRepository
	reservationRepo shared.ReservationRepository
	orderRepo       shared.OrderRepository
	discountRepo    shared.RedemptionRepository
}

func (t *pgTx) Events() shared.EventRepository {
	if t.eventRepo == nil {
		t.eventRepo = repository.NewPaymentEventRepository(t.dbtx)
	}
	return t.eventRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository(t.dbtx)
	}
	return t.orderRepo
}

func (t *pgTx) Discounts() shared.RedemptionRepository {
	if t.discountRepo == nil {
		t.discountRepo = repository.NewDiscountRepository(t.dbtx)
	}
	return t.discountRepo
}
