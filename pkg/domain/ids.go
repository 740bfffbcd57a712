// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "toonpass/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing ReaderID where EpisodeID is expected.
type (
	ReaderID   uuid.UUID
	WebtoonID  uuid.UUID
	EpisodeID  uuid.UUID
	RentalID   uuid.UUID
	PurchaseID uuid.UUID
	PaymentID  uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, CLI arguments).

func ParseReaderID(s string) (ReaderID, error) {
	id, err := parseUUID(s, "reader ID")
	return ReaderID(id), err
}

func ParseWebtoonID(s string) (WebtoonID, error) {
	id, err := parseUUID(s, "webtoon ID")
	return WebtoonID(id), err
}

func ParseEpisodeID(s string) (EpisodeID, error) {
	id, err := parseUUID(s, "episode ID")
	return EpisodeID(id), err
}

// New constructors - stores call these when assigning identifiers on create.

func NewReaderID() ReaderID     { return ReaderID(uuid.New()) }
func NewWebtoonID() WebtoonID   { return WebtoonID(uuid.New()) }
func NewEpisodeID() EpisodeID   { return EpisodeID(uuid.New()) }
func NewRentalID() RentalID     { return RentalID(uuid.New()) }
func NewPurchaseID() PurchaseID { return PurchaseID(uuid.New()) }
func NewPaymentID() PaymentID   { return PaymentID(uuid.New()) }

// String methods - for logging and debugging.

func (id ReaderID) String() string   { return uuid.UUID(id).String() }
func (id WebtoonID) String() string  { return uuid.UUID(id).String() }
func (id EpisodeID) String() string  { return uuid.UUID(id).String() }
func (id RentalID) String() string   { return uuid.UUID(id).String() }
func (id PurchaseID) String() string { return uuid.UUID(id).String() }
func (id PaymentID) String() string  { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id ReaderID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id WebtoonID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id EpisodeID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id RentalID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id PurchaseID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PaymentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders IDs as canonical UUID strings in JSON and logs.
func (id ReaderID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id WebtoonID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id EpisodeID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id RentalID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id PurchaseID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id PaymentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

// UnmarshalText accepts canonical UUID strings.
func (id *ReaderID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *WebtoonID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *EpisodeID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RentalID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PurchaseID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PaymentID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }

// parseUUID is the shared validation logic. The nil UUID is rejected so a
// zero-valued identifier never reaches a store lookup.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return id, nil
}
