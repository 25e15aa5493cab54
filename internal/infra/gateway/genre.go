package gateway

import (
	"context"

	"github.com/totegamma/music-gateway"
	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/domain"
	"github.com/totegamma/music-gateway/internal/usecase"
)

type GenreGateway struct {
	col collection
}

func NewGenreGateway(cl *client.Client, baseURL string) *GenreGateway {
	return &GenreGateway{col: newCollection(cl, "genres", baseURL)}
}

// Get treats a 200 without an id as missing; the genre service answers
// that way for unknown ids.
func (g *GenreGateway) Get(ctx context.Context, id string) (*domain.Genre, error) {
	var rec musicgw.GenreRecord
	found, err := g.col.get(ctx, id, &rec)
	if err != nil || !found || rec.ID == "" {
		return nil, err
	}
	genre := genreFromRecord(rec)
	return &genre, nil
}

func (g *GenreGateway) List(ctx context.Context, limit, offset int) ([]domain.Genre, int, error) {
	var page musicgw.Page[musicgw.GenreRecord]
	if err := g.col.list(ctx, limit, offset, &page); err != nil {
		return nil, 0, err
	}
	genres := make([]domain.Genre, 0, len(page.Items))
	for _, rec := range page.Items {
		genres = append(genres, genreFromRecord(rec))
	}
	return genres, page.Total, nil
}

func (g *GenreGateway) Create(ctx context.Context, token string, input domain.GenreInput) (domain.Genre, error) {
	var rec musicgw.GenreRecord
	if err := g.col.create(ctx, token, genreBody(input), &rec); err != nil {
		return domain.Genre{}, err
	}
	return genreFromRecord(rec), nil
}

func (g *GenreGateway) Update(ctx context.Context, token, id string, input domain.GenreInput) (domain.Genre, error) {
	var rec musicgw.GenreRecord
	if err := g.col.update(ctx, token, id, genreBody(input), &rec); err != nil {
		return domain.Genre{}, err
	}
	return genreFromRecord(rec), nil
}

func (g *GenreGateway) Delete(ctx context.Context, token, id string) (string, error) {
	if err := g.col.delete(ctx, token, id); err != nil {
		return "", err
	}
	return deletedMessage(domain.EntityGenre, id), nil
}

func genreBody(in domain.GenreInput) body {
	b := body{}
	b.str("name", in.Name)
	b.str("description", in.Description)
	b.str("country", in.Country)
	b.num("year", in.Year)
	return b
}

var _ usecase.GenreGateway = (*GenreGateway)(nil)
