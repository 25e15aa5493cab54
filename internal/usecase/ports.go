package usecase

import (
	"context"

	"github.com/totegamma/music-gateway/internal/domain"
)

// Getter looks one entity up by id. A missing entity is (nil, nil); any
// other failure is an error.
type Getter[E any] interface {
	Get(ctx context.Context, id string) (*E, error)
}

// EntityGateway is the REST surface of one entity service.
type EntityGateway[E any, I any] interface {
	Getter[E]
	List(ctx context.Context, limit, offset int) ([]E, int, error)
	Create(ctx context.Context, token string, input I) (E, error)
	Update(ctx context.Context, token, id string, input I) (E, error)
	Delete(ctx context.Context, token, id string) (string, error)
}

type AlbumGateway interface {
	EntityGateway[domain.Album, domain.AlbumInput]
}

type TrackGateway interface {
	EntityGateway[domain.Track, domain.TrackInput]
}

type ArtistGateway interface {
	EntityGateway[domain.Artist, domain.ArtistInput]
}

type BandGateway interface {
	EntityGateway[domain.Band, domain.BandInput]
}

type GenreGateway interface {
	EntityGateway[domain.Genre, domain.GenreInput]
}

type UserGateway interface {
	Getter[domain.User]
	Login(ctx context.Context, email, password string) (domain.Token, error)
	Register(ctx context.Context, input domain.RegisterInput) (domain.User, error)
}

// Gateways bundles one client per entity service.
type Gateways struct {
	Albums  AlbumGateway
	Tracks  TrackGateway
	Artists ArtistGateway
	Bands   BandGateway
	Genres  GenreGateway
	Users   UserGateway
}

const defaultFanOut = 16

type Options struct {
	// FanOut bounds concurrent lookups issued for one field, one guard or
	// one orchestration phase.
	FanOut int
}

func (o Options) fanOut() int {
	if o.FanOut < 1 {
		return defaultFanOut
	}
	return o.FanOut
}
