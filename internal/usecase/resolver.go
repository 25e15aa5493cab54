package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/totegamma/music-gateway/internal/domain"
)

// Resolver expands relationship refs into full entities, one field at a
// time. Ids are fetched at most once per call, in parallel, and results keep
// the order of the source list. Ids that no longer resolve are dropped.
type Resolver struct {
	gw   Gateways
	opts Options
}

func NewResolver(gw Gateways, opts Options) *Resolver {
	return &Resolver{gw: gw, opts: opts}
}

func (r *Resolver) AlbumTracks(ctx context.Context, album domain.Album) ([]domain.Track, error) {
	return expand(ctx, album.Tracks, r.gw.Tracks, r.opts.fanOut())
}

func (r *Resolver) AlbumArtists(ctx context.Context, album domain.Album) ([]domain.Artist, error) {
	return expand(ctx, album.Artists, r.gw.Artists, r.opts.fanOut())
}

func (r *Resolver) AlbumBands(ctx context.Context, album domain.Album) ([]domain.Band, error) {
	return expand(ctx, album.Bands, r.gw.Bands, r.opts.fanOut())
}

func (r *Resolver) AlbumGenres(ctx context.Context, album domain.Album) ([]domain.Genre, error) {
	return expand(ctx, album.Genres, r.gw.Genres, r.opts.fanOut())
}

// TrackAlbum returns nil for a track without an album, without a lookup.
func (r *Resolver) TrackAlbum(ctx context.Context, track domain.Track) (*domain.Album, error) {
	if track.Album.IsZero() {
		return nil, nil
	}
	if !track.Album.IsStub() {
		return track.Album.Resolved, nil
	}
	album, err := r.gw.Albums.Get(ctx, track.Album.ID)
	if err != nil {
		return nil, errors.Wrap(err, "Resolver.TrackAlbum")
	}
	return album, nil
}

func (r *Resolver) TrackArtists(ctx context.Context, track domain.Track) ([]domain.Artist, error) {
	return expand(ctx, track.Artists, r.gw.Artists, r.opts.fanOut())
}

func (r *Resolver) TrackBands(ctx context.Context, track domain.Track) ([]domain.Band, error) {
	return expand(ctx, track.Bands, r.gw.Bands, r.opts.fanOut())
}

func (r *Resolver) TrackGenres(ctx context.Context, track domain.Track) ([]domain.Genre, error) {
	return expand(ctx, track.Genres, r.gw.Genres, r.opts.fanOut())
}

func (r *Resolver) ArtistBands(ctx context.Context, artist domain.Artist) ([]domain.Band, error) {
	return expand(ctx, artist.Bands, r.gw.Bands, r.opts.fanOut())
}

func (r *Resolver) BandGenres(ctx context.Context, band domain.Band) ([]domain.Genre, error) {
	return expand(ctx, band.Genres, r.gw.Genres, r.opts.fanOut())
}

// BandMembers resolves member artists and carries the instrument and years
// of each membership onto the result.
func (r *Resolver) BandMembers(ctx context.Context, band domain.Band) ([]domain.Member, error) {
	refs := make([]domain.Ref[domain.Artist], 0, len(band.Members))
	for _, m := range band.Members {
		refs = append(refs, m.Artist)
	}
	artists, err := lookup(ctx, refs, r.gw.Artists, r.opts.fanOut())
	if err != nil {
		return nil, err
	}

	members := make([]domain.Member, 0, len(band.Members))
	for _, m := range band.Members {
		artist := artists[m.Artist.ID]
		if !m.Artist.IsStub() {
			artist = m.Artist.Resolved
		}
		if artist == nil {
			continue
		}
		members = append(members, domain.Member{
			Artist:     *artist,
			Instrument: m.Instrument,
			Years:      m.Years,
		})
	}
	return members, nil
}

func expand[E any](ctx context.Context, refs []domain.Ref[E], g Getter[E], limit int) ([]E, error) {
	found, err := lookup(ctx, refs, g, limit)
	if err != nil {
		return nil, err
	}

	out := make([]E, 0, len(refs))
	for _, ref := range refs {
		v := ref.Resolved
		if v == nil {
			v = found[ref.ID]
		}
		if v != nil {
			out = append(out, *v)
		}
	}
	return out, nil
}

// lookup fetches every distinct stub id once.
func lookup[E any](ctx context.Context, refs []domain.Ref[E], g Getter[E], limit int) (map[string]*E, error) {
	ids := []string{}
	for _, ref := range refs {
		if ref.IsStub() && ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}
	found, err := fetchAll(ctx, ids, g, limit)
	if err != nil {
		return nil, errors.Wrap(err, "Resolver.lookup")
	}
	return found, nil
}
