package gateway

import (
	"context"

	"github.com/totegamma/music-gateway"
	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/domain"
	"github.com/totegamma/music-gateway/internal/usecase"
)

type ArtistGateway struct {
	col collection
}

func NewArtistGateway(cl *client.Client, baseURL string) *ArtistGateway {
	return &ArtistGateway{col: newCollection(cl, "artists", baseURL)}
}

func (g *ArtistGateway) Get(ctx context.Context, id string) (*domain.Artist, error) {
	var rec musicgw.ArtistRecord
	found, err := g.col.get(ctx, id, &rec)
	if err != nil || !found || rec.ID == "" {
		return nil, err
	}
	artist := artistFromRecord(rec)
	return &artist, nil
}

func (g *ArtistGateway) List(ctx context.Context, limit, offset int) ([]domain.Artist, int, error) {
	var page musicgw.Page[musicgw.ArtistRecord]
	if err := g.col.list(ctx, limit, offset, &page); err != nil {
		return nil, 0, err
	}
	artists := make([]domain.Artist, 0, len(page.Items))
	for _, rec := range page.Items {
		artists = append(artists, artistFromRecord(rec))
	}
	return artists, page.Total, nil
}

func (g *ArtistGateway) Create(ctx context.Context, token string, input domain.ArtistInput) (domain.Artist, error) {
	var rec musicgw.ArtistRecord
	if err := g.col.create(ctx, token, artistBody(input), &rec); err != nil {
		return domain.Artist{}, err
	}
	return artistFromRecord(rec), nil
}

func (g *ArtistGateway) Update(ctx context.Context, token, id string, input domain.ArtistInput) (domain.Artist, error) {
	var rec musicgw.ArtistRecord
	if err := g.col.update(ctx, token, id, artistBody(input), &rec); err != nil {
		return domain.Artist{}, err
	}
	return artistFromRecord(rec), nil
}

func (g *ArtistGateway) Delete(ctx context.Context, token, id string) (string, error) {
	if err := g.col.delete(ctx, token, id); err != nil {
		return "", err
	}
	return deletedMessage(domain.EntityArtist, id), nil
}

func artistBody(in domain.ArtistInput) body {
	b := body{}
	b.str("firstName", in.FirstName)
	b.str("secondName", in.SecondName)
	b.str("middleName", in.MiddleName)
	if in.BirthDate != nil {
		b["birthDate"] = musicgw.FormatBirthDate(*in.BirthDate)
	}
	b.str("birthPlace", in.BirthPlace)
	b.str("country", in.Country)
	b.ids("bandsIds", in.BandIDs)
	b.ids("instruments", in.Instruments)
	return b
}

var _ usecase.ArtistGateway = (*ArtistGateway)(nil)
