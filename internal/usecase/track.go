package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/music-gateway/internal/domain"
)

type TrackUsecase struct {
	gw   Gateways
	opts Options
}

func NewTrackUsecase(gw Gateways, opts Options) *TrackUsecase {
	return &TrackUsecase{gw: gw, opts: opts}
}

func (uc *TrackUsecase) Get(ctx context.Context, id string) (*domain.Track, error) {
	return uc.gw.Tracks.Get(ctx, id)
}

func (uc *TrackUsecase) List(ctx context.Context, limit, offset int) ([]domain.Track, int, error) {
	if err := checkPage(limit, offset); err != nil {
		return nil, 0, err
	}
	return uc.gw.Tracks.List(ctx, limit, offset)
}

func (uc *TrackUsecase) checkInput(ctx context.Context, input domain.TrackInput) error {
	n := uc.opts.fanOut()
	if input.AlbumID.Set && input.AlbumID.Valid {
		if err := CheckOne(ctx, domain.EntityAlbum, input.AlbumID.Value, uc.gw.Albums); err != nil {
			return err
		}
	}
	if err := CheckAll(ctx, domain.EntityArtist, input.ArtistIDs, uc.gw.Artists, n); err != nil {
		return err
	}
	if err := CheckAll(ctx, domain.EntityBand, input.BandIDs, uc.gw.Bands, n); err != nil {
		return err
	}
	return CheckAll(ctx, domain.EntityGenre, input.GenreIDs, uc.gw.Genres, n)
}

// Create creates the track and then lists it on its album.
func (uc *TrackUsecase) Create(ctx context.Context, token string, input domain.TrackInput) (domain.Track, error) {
	ctx, span := tracer.Start(ctx, "Track.Usecase.Create")
	defer span.End()

	if err := uc.checkInput(ctx, input); err != nil {
		span.RecordError(err)
		return domain.Track{}, errors.Wrap(err, "TrackUsecase.Create: check input")
	}

	track, err := uc.gw.Tracks.Create(ctx, token, input)
	if err != nil {
		span.RecordError(err)
		return domain.Track{}, errors.Wrap(err, "TrackUsecase.Create: create track")
	}
	span.SetAttributes(attribute.String("track.id", track.ID))

	if input.AlbumID.Set && input.AlbumID.Valid {
		if err := appendAlbum(ctx, uc.gw.Albums, token, input.AlbumID.Value, track.ID); err != nil {
			span.RecordError(err)
			return domain.Track{}, errors.Wrap(err, "TrackUsecase.Create: list on album")
		}
	}

	return track, nil
}

// Update moves the track between albums when the album id changes: the old
// album drops it before the new album lists it. The track is written last.
func (uc *TrackUsecase) Update(ctx context.Context, token, id string, input domain.TrackInput) (domain.Track, error) {
	ctx, span := tracer.Start(ctx, "Track.Usecase.Update")
	defer span.End()
	span.SetAttributes(attribute.String("track.id", id))

	existing, err := mustGet(ctx, domain.EntityTrack, id, uc.gw.Tracks)
	if err != nil {
		span.RecordError(err)
		return domain.Track{}, errors.Wrap(err, "TrackUsecase.Update: get track")
	}

	if err := uc.checkInput(ctx, input); err != nil {
		span.RecordError(err)
		return domain.Track{}, errors.Wrap(err, "TrackUsecase.Update: check input")
	}

	if input.AlbumID.Set {
		previous := existing.Album.ID
		next := ""
		if input.AlbumID.Valid {
			next = input.AlbumID.Value
		}

		if previous != "" && previous != next {
			if err := spliceAlbum(ctx, uc.gw.Albums, token, previous, id); err != nil {
				span.RecordError(err)
				return domain.Track{}, errors.Wrap(err, "TrackUsecase.Update: leave album")
			}
		}
		if next != "" {
			if err := appendAlbum(ctx, uc.gw.Albums, token, next, id); err != nil {
				span.RecordError(err)
				return domain.Track{}, errors.Wrap(err, "TrackUsecase.Update: join album")
			}
		}
	}

	track, err := uc.gw.Tracks.Update(ctx, token, id, input)
	if err != nil {
		span.RecordError(err)
		return domain.Track{}, errors.Wrap(err, "TrackUsecase.Update: update track")
	}
	return track, nil
}

// Delete takes the track off its album before deleting it.
func (uc *TrackUsecase) Delete(ctx context.Context, token, id string) (string, error) {
	existing, err := mustGet(ctx, domain.EntityTrack, id, uc.gw.Tracks)
	if err != nil {
		return "", errors.Wrap(err, "TrackUsecase.Delete: get track")
	}

	if existing.Album.ID != "" {
		if err := spliceAlbum(ctx, uc.gw.Albums, token, existing.Album.ID, id); err != nil {
			return "", errors.Wrap(err, "TrackUsecase.Delete: leave album")
		}
	}

	msg, err := uc.gw.Tracks.Delete(ctx, token, id)
	if err != nil {
		return "", errors.Wrap(err, "TrackUsecase.Delete: delete track")
	}
	return msg, nil
}
