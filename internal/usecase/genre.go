package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/totegamma/music-gateway/internal/domain"
)

type GenreUsecase struct {
	gw Gateways
}

func NewGenreUsecase(gw Gateways) *GenreUsecase {
	return &GenreUsecase{gw: gw}
}

func (uc *GenreUsecase) Get(ctx context.Context, id string) (*domain.Genre, error) {
	return uc.gw.Genres.Get(ctx, id)
}

func (uc *GenreUsecase) List(ctx context.Context, limit, offset int) ([]domain.Genre, int, error) {
	if err := checkPage(limit, offset); err != nil {
		return nil, 0, err
	}
	return uc.gw.Genres.List(ctx, limit, offset)
}

func (uc *GenreUsecase) Create(ctx context.Context, token string, input domain.GenreInput) (domain.Genre, error) {
	genre, err := uc.gw.Genres.Create(ctx, token, input)
	if err != nil {
		return domain.Genre{}, errors.Wrap(err, "GenreUsecase.Create")
	}
	return genre, nil
}

func (uc *GenreUsecase) Update(ctx context.Context, token, id string, input domain.GenreInput) (domain.Genre, error) {
	if err := CheckOne(ctx, domain.EntityGenre, id, uc.gw.Genres); err != nil {
		return domain.Genre{}, errors.Wrap(err, "GenreUsecase.Update: check genre")
	}
	genre, err := uc.gw.Genres.Update(ctx, token, id, input)
	if err != nil {
		return domain.Genre{}, errors.Wrap(err, "GenreUsecase.Update")
	}
	return genre, nil
}

func (uc *GenreUsecase) Delete(ctx context.Context, token, id string) (string, error) {
	if err := CheckOne(ctx, domain.EntityGenre, id, uc.gw.Genres); err != nil {
		return "", errors.Wrap(err, "GenreUsecase.Delete: check genre")
	}
	msg, err := uc.gw.Genres.Delete(ctx, token, id)
	if err != nil {
		return "", errors.Wrap(err, "GenreUsecase.Delete")
	}
	return msg, nil
}
