package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/music-gateway/internal/domain"
)

type ArtistUsecase struct {
	gw   Gateways
	opts Options
}

func NewArtistUsecase(gw Gateways, opts Options) *ArtistUsecase {
	return &ArtistUsecase{gw: gw, opts: opts}
}

func (uc *ArtistUsecase) Get(ctx context.Context, id string) (*domain.Artist, error) {
	return uc.gw.Artists.Get(ctx, id)
}

func (uc *ArtistUsecase) List(ctx context.Context, limit, offset int) ([]domain.Artist, int, error) {
	if err := checkPage(limit, offset); err != nil {
		return nil, 0, err
	}
	return uc.gw.Artists.List(ctx, limit, offset)
}

// Create creates the artist and adds it as a member of every listed band
// that does not already have it.
func (uc *ArtistUsecase) Create(ctx context.Context, token string, input domain.ArtistInput) (domain.Artist, error) {
	ctx, span := tracer.Start(ctx, "Artist.Usecase.Create")
	defer span.End()

	if err := CheckAll(ctx, domain.EntityBand, input.BandIDs, uc.gw.Bands, uc.opts.fanOut()); err != nil {
		span.RecordError(err)
		return domain.Artist{}, errors.Wrap(err, "ArtistUsecase.Create: check bands")
	}

	artist, err := uc.gw.Artists.Create(ctx, token, input)
	if err != nil {
		span.RecordError(err)
		return domain.Artist{}, errors.Wrap(err, "ArtistUsecase.Create: create artist")
	}
	span.SetAttributes(attribute.String("artist.id", artist.ID))

	if err := uc.join(ctx, token, artist.ID, input.BandIDs); err != nil {
		span.RecordError(err)
		return domain.Artist{}, errors.Wrap(err, "ArtistUsecase.Create: join bands")
	}
	return artist, nil
}

// Update adds the artist to newly listed bands. Bands dropped from the list
// keep the artist as a member.
func (uc *ArtistUsecase) Update(ctx context.Context, token, id string, input domain.ArtistInput) (domain.Artist, error) {
	ctx, span := tracer.Start(ctx, "Artist.Usecase.Update")
	defer span.End()
	span.SetAttributes(attribute.String("artist.id", id))

	if err := CheckOne(ctx, domain.EntityArtist, id, uc.gw.Artists); err != nil {
		span.RecordError(err)
		return domain.Artist{}, errors.Wrap(err, "ArtistUsecase.Update: check artist")
	}
	if err := CheckAll(ctx, domain.EntityBand, input.BandIDs, uc.gw.Bands, uc.opts.fanOut()); err != nil {
		span.RecordError(err)
		return domain.Artist{}, errors.Wrap(err, "ArtistUsecase.Update: check bands")
	}

	if err := uc.join(ctx, token, id, input.BandIDs); err != nil {
		span.RecordError(err)
		return domain.Artist{}, errors.Wrap(err, "ArtistUsecase.Update: join bands")
	}

	artist, err := uc.gw.Artists.Update(ctx, token, id, input)
	if err != nil {
		span.RecordError(err)
		return domain.Artist{}, errors.Wrap(err, "ArtistUsecase.Update: update artist")
	}
	return artist, nil
}

func (uc *ArtistUsecase) Delete(ctx context.Context, token, id string) (string, error) {
	if err := CheckOne(ctx, domain.EntityArtist, id, uc.gw.Artists); err != nil {
		return "", errors.Wrap(err, "ArtistUsecase.Delete: check artist")
	}
	msg, err := uc.gw.Artists.Delete(ctx, token, id)
	if err != nil {
		return "", errors.Wrap(err, "ArtistUsecase.Delete: delete artist")
	}
	return msg, nil
}

// join appends {artistId} to the members of each band lacking it. Existing
// members keep their instrument and years.
func (uc *ArtistUsecase) join(ctx context.Context, token, artistID string, bandIDs []string) error {
	return forEach(ctx, unique(bandIDs), uc.opts.fanOut(), func(ctx context.Context, bandID string) error {
		band, err := mustGet(ctx, domain.EntityBand, bandID, uc.gw.Bands)
		if err != nil {
			return err
		}
		if band.HasMember(artistID) {
			return nil
		}

		members := make([]domain.MemberInput, 0, len(band.Members)+1)
		for _, m := range band.Members {
			members = append(members, domain.MemberInput{
				ArtistID:   m.Artist.ID,
				Instrument: m.Instrument,
				Years:      m.Years,
			})
		}
		members = append(members, domain.MemberInput{ArtistID: artistID})

		_, err = uc.gw.Bands.Update(ctx, token, bandID, domain.BandInput{Members: members})
		return err
	})
}
