package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/totegamma/music-gateway/internal/domain"
)

type BandUsecase struct {
	gw   Gateways
	opts Options
}

func NewBandUsecase(gw Gateways, opts Options) *BandUsecase {
	return &BandUsecase{gw: gw, opts: opts}
}

func (uc *BandUsecase) Get(ctx context.Context, id string) (*domain.Band, error) {
	return uc.gw.Bands.Get(ctx, id)
}

func (uc *BandUsecase) List(ctx context.Context, limit, offset int) ([]domain.Band, int, error) {
	if err := checkPage(limit, offset); err != nil {
		return nil, 0, err
	}
	return uc.gw.Bands.List(ctx, limit, offset)
}

func (uc *BandUsecase) checkInput(ctx context.Context, input domain.BandInput) error {
	n := uc.opts.fanOut()
	if err := CheckAll(ctx, domain.EntityArtist, input.MemberIDs(), uc.gw.Artists, n); err != nil {
		return err
	}
	return CheckAll(ctx, domain.EntityGenre, input.GenreIDs, uc.gw.Genres, n)
}

func (uc *BandUsecase) Create(ctx context.Context, token string, input domain.BandInput) (domain.Band, error) {
	ctx, span := tracer.Start(ctx, "Band.Usecase.Create")
	defer span.End()

	if err := uc.checkInput(ctx, input); err != nil {
		span.RecordError(err)
		return domain.Band{}, errors.Wrap(err, "BandUsecase.Create: check input")
	}
	band, err := uc.gw.Bands.Create(ctx, token, input)
	if err != nil {
		span.RecordError(err)
		return domain.Band{}, errors.Wrap(err, "BandUsecase.Create: create band")
	}
	return band, nil
}

func (uc *BandUsecase) Update(ctx context.Context, token, id string, input domain.BandInput) (domain.Band, error) {
	ctx, span := tracer.Start(ctx, "Band.Usecase.Update")
	defer span.End()

	if err := CheckOne(ctx, domain.EntityBand, id, uc.gw.Bands); err != nil {
		span.RecordError(err)
		return domain.Band{}, errors.Wrap(err, "BandUsecase.Update: check band")
	}
	if err := uc.checkInput(ctx, input); err != nil {
		span.RecordError(err)
		return domain.Band{}, errors.Wrap(err, "BandUsecase.Update: check input")
	}
	band, err := uc.gw.Bands.Update(ctx, token, id, input)
	if err != nil {
		span.RecordError(err)
		return domain.Band{}, errors.Wrap(err, "BandUsecase.Update: update band")
	}
	return band, nil
}

func (uc *BandUsecase) Delete(ctx context.Context, token, id string) (string, error) {
	if err := CheckOne(ctx, domain.EntityBand, id, uc.gw.Bands); err != nil {
		return "", errors.Wrap(err, "BandUsecase.Delete: check band")
	}
	msg, err := uc.gw.Bands.Delete(ctx, token, id)
	if err != nil {
		return "", errors.Wrap(err, "BandUsecase.Delete: delete band")
	}
	return msg, nil
}
