package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var ErrInvalidNumericValue = errors.New("invalid numeric value")

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func StringFromPgtype(pt pgtype.Text) string {
	if !pt.Valid {
		return ""
	}
	return pt.String
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil || *s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	t := pt.Time.UTC()
	return &t
}

func IntPtrFromPgtype(pi pgtype.Int4) *int {
	if !pi.Valid {
		return nil
	}
	v := int(pi.Int32)
	return &v
}

// DecimalFromText parses NUMERIC columns selected as ::text; NULL yields zero.
func DecimalFromText(pt pgtype.Text) (decimal.Decimal, error) {
	if !pt.Valid {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(pt.String)
	if err != nil {
		return decimal.Zero, errors.Join(ErrInvalidNumericValue, err)
	}
	return d, nil
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
