package checkout

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

const (
	IdempotencyWindow    = 60 * time.Second
	idempotencyKeyPrefix = "checkout_"
)

// DeriveIdempotencyKey is stable for the same requester, cart and code within one
// IdempotencyWindow and changes once the window rolls over. items must already be normalized.
func DeriveIdempotencyKey(identity string, items []CartItem, discountCode string, now time.Time) string {
	cart, _ := json.Marshal(items) // plain strings and ints only
	window := now.Unix() / int64(IdempotencyWindow/time.Second)

	var b strings.Builder
	b.WriteString(identity)
	b.WriteByte(0)
	b.Write(cart)
	b.WriteByte(0)
	b.WriteString(strings.ToUpper(strings.TrimSpace(discountCode)))
	b.WriteByte(0)
	b.WriteString(strconv.FormatInt(window, 10))

	sum := blake2b.Sum256([]byte(b.String()))
	return idempotencyKeyPrefix + hex.EncodeToString(sum[:])
}
