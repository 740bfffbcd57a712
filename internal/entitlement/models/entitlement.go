// Package models holds the entitlement records. Records are created only by
// the access service and are never mutated after creation.
package models

import (
	"context"

	id "toonpass/pkg/domain"
)

// Kind discriminates the entitlement variants.
type Kind string

const (
	KindRental   Kind = "rental"
	KindPurchase Kind = "purchase"
)

// ParseKind accepts the wire names of the variants.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindRental, KindPurchase:
		return Kind(s), true
	}
	return "", false
}

// Key is the (reader, episode) pair an entitlement grants access for.
type Key struct {
	ReaderID  id.ReaderID
	EpisodeID id.EpisodeID
}

// Entitlement is implemented by *Rental and *Purchase only.
type Entitlement interface {
	Kind() Kind
	Key() Key
	Paid() int64
	// SaveTo hands the record to the Recorder method for its own kind.
	SaveTo(ctx context.Context, r Recorder) error
	entitlement()
}

// Recorder persists each entitlement variant.
type Recorder interface {
	RecordRental(ctx context.Context, rental *Rental) error
	RecordPurchase(ctx context.Context, purchase *Purchase) error
}
