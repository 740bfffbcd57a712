package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	catalogmodels "toonpass/internal/catalog/models"
	readermodels "toonpass/internal/reader/models"
	id "toonpass/pkg/domain"
)

// TestIDs provides convenient pre-generated IDs for tests.
// Use these for deterministic test data.
var TestIDs = struct {
	ReaderID1  id.ReaderID
	ReaderID2  id.ReaderID
	WebtoonID1 id.WebtoonID
	EpisodeID1 id.EpisodeID
	EpisodeID2 id.EpisodeID
}{
	ReaderID1:  id.ReaderID(uuid.MustParse("11111111-1111-1111-1111-111111111111")),
	ReaderID2:  id.ReaderID(uuid.MustParse("22222222-2222-2222-2222-222222222222")),
	WebtoonID1: id.WebtoonID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000001")),
	EpisodeID1: id.EpisodeID(uuid.MustParse("eeee0000-0000-0000-0000-000000000001")),
	EpisodeID2: id.EpisodeID(uuid.MustParse("eeee0000-0000-0000-0000-000000000002")),
}

// FixedTime is the default timestamp builders stamp on records.
var FixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// ReaderBuilder provides a fluent interface for building test readers.
// The ID is left nil so stores assign one, unless WithID is called.
type ReaderBuilder struct {
	reader *readermodels.Reader
}

// NewReaderBuilder creates a reader with the starting balance.
func NewReaderBuilder() *ReaderBuilder {
	return &ReaderBuilder{
		reader: &readermodels.Reader{
			Nickname:  "reader",
			Wallet:    readermodels.Wallet{Points: readermodels.StartingPoints},
			CreatedAt: FixedTime,
			UpdatedAt: FixedTime,
		},
	}
}

func (b *ReaderBuilder) WithID(readerID id.ReaderID) *ReaderBuilder {
	b.reader.ID = readerID
	return b
}

func (b *ReaderBuilder) WithNickname(nickname string) *ReaderBuilder {
	b.reader.Nickname = nickname
	return b
}

func (b *ReaderBuilder) WithPoints(points int64) *ReaderBuilder {
	b.reader.Wallet.Points = points
	return b
}

func (b *ReaderBuilder) CreatedAt(t time.Time) *ReaderBuilder {
	b.reader.CreatedAt = t
	b.reader.UpdatedAt = t
	return b
}

func (b *ReaderBuilder) Build() *readermodels.Reader {
	r := *b.reader
	return &r
}

// EpisodeBuilder provides a fluent interface for building test episodes
// at the default prices.
type EpisodeBuilder struct {
	episode *catalogmodels.Episode
}

func NewEpisodeBuilder() *EpisodeBuilder {
	return &EpisodeBuilder{
		episode: &catalogmodels.Episode{
			WebtoonID: TestIDs.WebtoonID1,
			Number:    1,
			Title:     "Episode 1",
			RentPrice: catalogmodels.DefaultRentPrice,
			BuyPrice:  catalogmodels.DefaultBuyPrice,
			CreatedAt: FixedTime,
			UpdatedAt: FixedTime,
		},
	}
}

func (b *EpisodeBuilder) WithID(episodeID id.EpisodeID) *EpisodeBuilder {
	b.episode.ID = episodeID
	return b
}

func (b *EpisodeBuilder) WithWebtoonID(webtoonID id.WebtoonID) *EpisodeBuilder {
	b.episode.WebtoonID = webtoonID
	return b
}

// WithNumber also derives the title from the number.
func (b *EpisodeBuilder) WithNumber(number int) *EpisodeBuilder {
	b.episode.Number = number
	b.episode.Title = fmt.Sprintf("Episode %d", number)
	return b
}

func (b *EpisodeBuilder) WithPrices(rentPrice, buyPrice int64) *EpisodeBuilder {
	b.episode.RentPrice = rentPrice
	b.episode.BuyPrice = buyPrice
	return b
}

func (b *EpisodeBuilder) Build() *catalogmodels.Episode {
	ep := *b.episode
	return &ep
}
