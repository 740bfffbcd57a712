package models

import (
	"strings"
	"time"
	"unicode/utf8"

	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
)

// StartingPoints is the balance every newly registered reader receives.
const StartingPoints int64 = 1000

const maxNicknameLength = 32

// Wallet is a non-negative point balance. It is not safe for concurrent use;
// callers serialize mutations per reader.
type Wallet struct {
	Points int64 `json:"points"`
}

// Debit subtracts amount when the balance covers it. An insufficient balance
// is reported as false, not as an error, and leaves the wallet unchanged.
func (w *Wallet) Debit(amount int64) (bool, error) {
	if amount < 0 {
		return false, dErrors.Validation("debit amount cannot be negative")
	}
	if w.Points < amount {
		return false, nil
	}
	w.Points -= amount
	return true, nil
}

// Credit adds amount to the balance.
func (w *Wallet) Credit(amount int64) error {
	if amount < 0 {
		return dErrors.Validation("credit amount cannot be negative")
	}
	w.Points += amount
	return nil
}

// Reader is an account that owns a wallet. Version increases on every
// persisted update and guards against lost updates.
type Reader struct {
	ID        id.ReaderID `json:"id"`
	Nickname  string      `json:"nickname"`
	Wallet    Wallet      `json:"wallet"`
	Version   int64       `json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewReader validates the nickname and opens a wallet with StartingPoints.
func NewReader(readerID id.ReaderID, nickname string, now time.Time) (*Reader, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, dErrors.Validation("nickname cannot be empty")
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return nil, dErrors.Validation("nickname is too long")
	}
	return &Reader{
		ID:        readerID,
		Nickname:  nickname,
		Wallet:    Wallet{Points: StartingPoints},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance is the current point balance.
func (r *Reader) Balance() int64 {
	return r.Wallet.Points
}

// RegisterRequest is the payload for creating a reader.
type RegisterRequest struct {
	Nickname string `json:"nickname"`
}

func (r *RegisterRequest) Normalize() {
	r.Nickname = strings.TrimSpace(r.Nickname)
}
