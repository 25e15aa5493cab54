package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/totegamma/music-gateway/internal/domain"
	"github.com/totegamma/music-gateway/internal/usecase"
)

// binder wraps domain entities into their schema resolvers. Relationship
// fields are expanded through rel only when they are selected.
type binder struct {
	rel *usecase.Resolver
}

func (b binder) album(a domain.Album) *albumResolver {
	return &albumResolver{binder: b, a: a}
}

func (b binder) track(t domain.Track) *trackResolver {
	return &trackResolver{binder: b, t: t}
}

func (b binder) artist(a domain.Artist) *artistResolver {
	return &artistResolver{binder: b, a: a}
}

func (b binder) band(band domain.Band) *bandResolver {
	return &bandResolver{binder: b, b: band}
}

func (b binder) genre(g domain.Genre) *genreResolver {
	return &genreResolver{g: g}
}

func (b binder) member(m domain.Member) *memberResolver {
	return &memberResolver{artistResolver: b.artist(m.Artist), m: m}
}

func wrapAll[E, R any](items []E, wrap func(E) *R) *[]*R {
	out := make([]*R, len(items))
	for i, item := range items {
		out[i] = wrap(item)
	}
	return &out
}

func stringList(items []string) *[]*string {
	if items == nil {
		return nil
	}
	out := make([]*string, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return &out
}

type albumResolver struct {
	binder
	a domain.Album
}

func (r *albumResolver) ID() graphql.ID   { return graphql.ID(r.a.ID) }
func (r *albumResolver) Name() *string    { return &r.a.Name }
func (r *albumResolver) Released() *int32 { return toInt32(r.a.Released) }
func (r *albumResolver) Image() *string   { return &r.a.Image }

func (r *albumResolver) Tracks(ctx context.Context) (*[]*trackResolver, error) {
	tracks, err := r.rel.AlbumTracks(ctx, r.a)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(tracks, r.track), nil
}

func (r *albumResolver) Artists(ctx context.Context) (*[]*artistResolver, error) {
	artists, err := r.rel.AlbumArtists(ctx, r.a)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(artists, r.artist), nil
}

func (r *albumResolver) Bands(ctx context.Context) (*[]*bandResolver, error) {
	bands, err := r.rel.AlbumBands(ctx, r.a)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(bands, r.band), nil
}

func (r *albumResolver) Genres(ctx context.Context) (*[]*genreResolver, error) {
	genres, err := r.rel.AlbumGenres(ctx, r.a)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(genres, r.genre), nil
}

type trackResolver struct {
	binder
	t domain.Track
}

func (r *trackResolver) ID() graphql.ID   { return graphql.ID(r.t.ID) }
func (r *trackResolver) Title() string    { return r.t.Title }
func (r *trackResolver) Duration() *int32 { return toInt32(r.t.Duration) }
func (r *trackResolver) Released() *int32 { return toInt32(r.t.Released) }

func (r *trackResolver) Album(ctx context.Context) (*albumResolver, error) {
	album, err := r.rel.TrackAlbum(ctx, r.t)
	if err != nil {
		return nil, fail(ctx, err)
	}
	if album == nil {
		return nil, nil
	}
	return r.album(*album), nil
}

func (r *trackResolver) Artists(ctx context.Context) (*[]*artistResolver, error) {
	artists, err := r.rel.TrackArtists(ctx, r.t)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(artists, r.artist), nil
}

func (r *trackResolver) Bands(ctx context.Context) (*[]*bandResolver, error) {
	bands, err := r.rel.TrackBands(ctx, r.t)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(bands, r.band), nil
}

func (r *trackResolver) Genres(ctx context.Context) (*[]*genreResolver, error) {
	genres, err := r.rel.TrackGenres(ctx, r.t)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(genres, r.genre), nil
}

type artistResolver struct {
	binder
	a domain.Artist
}

func (r *artistResolver) ID() graphql.ID          { return graphql.ID(r.a.ID) }
func (r *artistResolver) FirstName() *string      { return &r.a.FirstName }
func (r *artistResolver) SecondName() *string     { return &r.a.SecondName }
func (r *artistResolver) MiddleName() *string     { return &r.a.MiddleName }
func (r *artistResolver) BirthDate() *string      { return &r.a.BirthDate }
func (r *artistResolver) BirthPlace() *string     { return &r.a.BirthPlace }
func (r *artistResolver) Country() *string        { return &r.a.Country }
func (r *artistResolver) Instruments() *[]*string { return stringList(r.a.Instruments) }

func (r *artistResolver) Bands(ctx context.Context) (*[]*bandResolver, error) {
	bands, err := r.rel.ArtistBands(ctx, r.a)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(bands, r.band), nil
}

// memberResolver is an artist seen through a band: the artist's fields
// plus the edge metadata.
type memberResolver struct {
	*artistResolver
	m domain.Member
}

func (r *memberResolver) Instrument() *string { return &r.m.Instrument }
func (r *memberResolver) Years() *[]*string   { return stringList(r.m.Years) }

type bandResolver struct {
	binder
	b domain.Band
}

func (r *bandResolver) ID() graphql.ID   { return graphql.ID(r.b.ID) }
func (r *bandResolver) Name() *string    { return &r.b.Name }
func (r *bandResolver) Origin() *string  { return &r.b.Origin }
func (r *bandResolver) Website() *string { return &r.b.Website }

func (r *bandResolver) Members(ctx context.Context) (*[]*memberResolver, error) {
	members, err := r.rel.BandMembers(ctx, r.b)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(members, r.member), nil
}

func (r *bandResolver) Genres(ctx context.Context) (*[]*genreResolver, error) {
	genres, err := r.rel.BandGenres(ctx, r.b)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(genres, r.genre), nil
}

type genreResolver struct {
	g domain.Genre
}

func (r *genreResolver) ID() graphql.ID       { return graphql.ID(r.g.ID) }
func (r *genreResolver) Name() *string        { return &r.g.Name }
func (r *genreResolver) Description() *string { return &r.g.Description }
func (r *genreResolver) Country() *string     { return &r.g.Country }
func (r *genreResolver) Year() *int32         { return toInt32(r.g.Year) }

type userResolver struct {
	u domain.User
}

func (r *userResolver) ID() graphql.ID      { return graphql.ID(r.u.ID) }
func (r *userResolver) FirstName() *string  { return &r.u.FirstName }
func (r *userResolver) SecondName() *string { return &r.u.SecondName }
func (r *userResolver) Password() *string   { return &r.u.Password }
func (r *userResolver) Email() string       { return r.u.Email }

type jwtResolver struct {
	t domain.Token
}

func (r *jwtResolver) Jwt() string { return r.t.JWT }
