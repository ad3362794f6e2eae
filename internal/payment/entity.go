// AngelaMos | 2026
// entity.go

package payment

import (
	"time"
)

const StatusPending = "pending"

// Payment records a completed checkout. BiodataID links the purchase to
// the biodata whose premium flag an approval flips; it may be absent.
type Payment struct {
	ID            string    `db:"id"`
	Email         string    `db:"email"`
	Name          string    `db:"name"`
	BiodataID     *int64    `db:"biodata_id"`
	Amount        int64     `db:"amount"`
	TransactionID string    `db:"transaction_id"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
