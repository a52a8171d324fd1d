package infra

import (
	"errors"
	"log/slog"

	"storefront-checkout/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err. Without an explicit kind it is derived from the Postgres error code.
// Not-found results are expected lookups and are not logged.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	if k != KindNotFound {
		slog.Error("Repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
		err = errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: k, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func classify(err error) RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return KindDuplicateKey
	case pgErrForeignKeyViolation:
		return KindForeignKeyViolated
	case pgErrSerializationFailure, pgErrDeadlockDetected:
		return KindSerialization
	default:
		return KindDBFailure
	}
}

const (
	pgErrUniqueViolation      = "23505"
	pgErrForeignKeyViolation  = "23503"
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
)

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindSerialization      RepositoryErrorKind = "SERIALIZATION"
)
