package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/music-gateway/internal/domain"
)

var tracer = otel.Tracer("usecase")

type AlbumUsecase struct {
	gw   Gateways
	opts Options
}

func NewAlbumUsecase(gw Gateways, opts Options) *AlbumUsecase {
	return &AlbumUsecase{gw: gw, opts: opts}
}

// Get returns nil when the album does not exist.
func (uc *AlbumUsecase) Get(ctx context.Context, id string) (*domain.Album, error) {
	return uc.gw.Albums.Get(ctx, id)
}

func (uc *AlbumUsecase) List(ctx context.Context, limit, offset int) ([]domain.Album, int, error) {
	if err := checkPage(limit, offset); err != nil {
		return nil, 0, err
	}
	return uc.gw.Albums.List(ctx, limit, offset)
}

func (uc *AlbumUsecase) checkInput(ctx context.Context, input domain.AlbumInput) error {
	n := uc.opts.fanOut()
	if err := CheckAll(ctx, domain.EntityArtist, input.ArtistIDs, uc.gw.Artists, n); err != nil {
		return err
	}
	if err := CheckAll(ctx, domain.EntityBand, input.BandIDs, uc.gw.Bands, n); err != nil {
		return err
	}
	if err := CheckAll(ctx, domain.EntityTrack, input.TrackIDs, uc.gw.Tracks, n); err != nil {
		return err
	}
	return CheckAll(ctx, domain.EntityGenre, input.GenreIDs, uc.gw.Genres, n)
}

// Create detaches the requested tracks from whatever album holds them,
// creates the album and then points every track at it.
func (uc *AlbumUsecase) Create(ctx context.Context, token string, input domain.AlbumInput) (domain.Album, error) {
	ctx, span := tracer.Start(ctx, "Album.Usecase.Create")
	defer span.End()

	if err := uc.checkInput(ctx, input); err != nil {
		span.RecordError(err)
		return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Create: check input")
	}

	trackIDs := unique(input.TrackIDs)
	tracks, err := fetchAll(ctx, trackIDs, uc.gw.Tracks, uc.opts.fanOut())
	if err != nil {
		span.RecordError(err)
		return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Create: read tracks")
	}

	if err := uc.detach(ctx, token, trackIDs, tracks, ""); err != nil {
		span.RecordError(err)
		return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Create: detach tracks")
	}

	album, err := uc.gw.Albums.Create(ctx, token, input)
	if err != nil {
		span.RecordError(err)
		return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Create: create album")
	}
	span.SetAttributes(attribute.String("album.id", album.ID))

	if err := uc.pointTracks(ctx, token, trackIDs, domain.Some(album.ID)); err != nil {
		span.RecordError(err)
		return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Create: point tracks")
	}

	return album, nil
}

// Update rewrites the track list of an album. Tracks leaving the album lose
// their album id; tracks joining it are first spliced out of their previous
// album. All removals finish before any addition starts, and the album
// itself is written last.
func (uc *AlbumUsecase) Update(ctx context.Context, token, id string, input domain.AlbumInput) (domain.Album, error) {
	ctx, span := tracer.Start(ctx, "Album.Usecase.Update")
	defer span.End()
	span.SetAttributes(attribute.String("album.id", id))

	existing, err := mustGet(ctx, domain.EntityAlbum, id, uc.gw.Albums)
	if err != nil {
		span.RecordError(err)
		return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Update: get album")
	}

	if err := uc.checkInput(ctx, input); err != nil {
		span.RecordError(err)
		return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Update: check input")
	}

	if input.TrackIDs != nil {
		previous := domain.RefIDs(existing.Tracks)
		requested := unique(input.TrackIDs)
		toRemove := difference(previous, requested)
		toAdd := difference(requested, previous)

		if err := uc.removeTracks(ctx, token, id, toRemove); err != nil {
			span.RecordError(err)
			return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Update: remove tracks")
		}
		if err := uc.addTracks(ctx, token, id, toAdd); err != nil {
			span.RecordError(err)
			return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Update: add tracks")
		}
	}

	album, err := uc.gw.Albums.Update(ctx, token, id, input)
	if err != nil {
		span.RecordError(err)
		return domain.Album{}, errors.Wrap(err, "AlbumUsecase.Update: update album")
	}
	return album, nil
}

// Delete confirms the album exists before deleting it. Tracks keep their
// album id and resolve it to null afterwards.
func (uc *AlbumUsecase) Delete(ctx context.Context, token, id string) (string, error) {
	if err := CheckOne(ctx, domain.EntityAlbum, id, uc.gw.Albums); err != nil {
		return "", errors.Wrap(err, "AlbumUsecase.Delete: check album")
	}
	msg, err := uc.gw.Albums.Delete(ctx, token, id)
	if err != nil {
		return "", errors.Wrap(err, "AlbumUsecase.Delete: delete album")
	}
	return msg, nil
}

func (uc *AlbumUsecase) removeTracks(ctx context.Context, token, albumID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}
	tracks, err := fetchAll(ctx, trackIDs, uc.gw.Tracks, uc.opts.fanOut())
	if err != nil {
		return err
	}

	// only tracks that still point here lose their back-pointer
	owned := []string{}
	for _, tid := range trackIDs {
		if t := tracks[tid]; t != nil && t.Album.ID == albumID {
			owned = append(owned, tid)
		}
	}
	return uc.pointTracks(ctx, token, owned, domain.Null[string]())
}

func (uc *AlbumUsecase) addTracks(ctx context.Context, token, albumID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}
	tracks, err := fetchAll(ctx, trackIDs, uc.gw.Tracks, uc.opts.fanOut())
	if err != nil {
		return err
	}
	if err := uc.detach(ctx, token, trackIDs, tracks, albumID); err != nil {
		return err
	}
	return uc.pointTracks(ctx, token, trackIDs, domain.Some(albumID))
}

// detach splices tracks out of the albums they currently belong to, one
// read-splice-write per album. The album named by keep is left alone.
func (uc *AlbumUsecase) detach(ctx context.Context, token string, trackIDs []string, tracks map[string]*domain.Track, keep string) error {
	albums, groups := groupBy(trackIDs, func(tid string) string {
		t := tracks[tid]
		if t == nil || t.Album.ID == keep {
			return ""
		}
		return t.Album.ID
	})

	return forEach(ctx, albums, uc.opts.fanOut(), func(ctx context.Context, albumID string) error {
		return spliceAlbum(ctx, uc.gw.Albums, token, albumID, groups[albumID]...)
	})
}

func (uc *AlbumUsecase) pointTracks(ctx context.Context, token string, trackIDs []string, albumID domain.Patch[string]) error {
	return forEach(ctx, trackIDs, uc.opts.fanOut(), func(ctx context.Context, tid string) error {
		_, err := uc.gw.Tracks.Update(ctx, token, tid, domain.TrackInput{AlbumID: albumID})
		return err
	})
}

// spliceAlbum removes track ids from an album's track list. An album that
// no longer exists or does not list the tracks is not written.
func spliceAlbum(ctx context.Context, albums AlbumGateway, token, albumID string, trackIDs ...string) error {
	album, err := albums.Get(ctx, albumID)
	if err != nil {
		return err
	}
	if album == nil {
		return nil
	}

	current := domain.RefIDs(album.Tracks)
	next := splice(current, trackIDs...)
	if len(next) == len(current) {
		return nil
	}
	_, err = albums.Update(ctx, token, albumID, domain.AlbumInput{TrackIDs: next})
	return err
}

// appendAlbum adds a track id to an album's track list if it is not there.
func appendAlbum(ctx context.Context, albums AlbumGateway, token, albumID, trackID string) error {
	album, err := mustGet(ctx, domain.EntityAlbum, albumID, albums)
	if err != nil {
		return err
	}

	current := domain.RefIDs(album.Tracks)
	if contains(current, trackID) {
		return nil
	}
	_, err = albums.Update(ctx, token, albumID, domain.AlbumInput{TrackIDs: appendUnique(current, trackID)})
	return err
}

func checkPage(limit, offset int) error {
	if limit < 0 {
		return &domain.ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if offset < 0 {
		return &domain.ValidationError{Field: "offset", Reason: "must not be negative"}
	}
	return nil
}
