package gateway

import (
	"context"

	"github.com/totegamma/music-gateway"
	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/domain"
	"github.com/totegamma/music-gateway/internal/usecase"
)

type BandGateway struct {
	col collection
}

func NewBandGateway(cl *client.Client, baseURL string) *BandGateway {
	return &BandGateway{col: newCollection(cl, "bands", baseURL)}
}

func (g *BandGateway) Get(ctx context.Context, id string) (*domain.Band, error) {
	var rec musicgw.BandRecord
	found, err := g.col.get(ctx, id, &rec)
	if err != nil || !found || rec.ID == "" {
		return nil, err
	}
	band := bandFromRecord(rec)
	return &band, nil
}

func (g *BandGateway) List(ctx context.Context, limit, offset int) ([]domain.Band, int, error) {
	var page musicgw.Page[musicgw.BandRecord]
	if err := g.col.list(ctx, limit, offset, &page); err != nil {
		return nil, 0, err
	}
	bands := make([]domain.Band, 0, len(page.Items))
	for _, rec := range page.Items {
		bands = append(bands, bandFromRecord(rec))
	}
	return bands, page.Total, nil
}

func (g *BandGateway) Create(ctx context.Context, token string, input domain.BandInput) (domain.Band, error) {
	var rec musicgw.BandRecord
	if err := g.col.create(ctx, token, bandBody(input), &rec); err != nil {
		return domain.Band{}, err
	}
	return bandFromRecord(rec), nil
}

func (g *BandGateway) Update(ctx context.Context, token, id string, input domain.BandInput) (domain.Band, error) {
	var rec musicgw.BandRecord
	if err := g.col.update(ctx, token, id, bandBody(input), &rec); err != nil {
		return domain.Band{}, err
	}
	return bandFromRecord(rec), nil
}

func (g *BandGateway) Delete(ctx context.Context, token, id string) (string, error) {
	if err := g.col.delete(ctx, token, id); err != nil {
		return "", err
	}
	return deletedMessage(domain.EntityBand, id), nil
}

func bandBody(in domain.BandInput) body {
	b := body{}
	b.str("name", in.Name)
	b.str("origin", in.Origin)
	b.str("website", in.Website)
	if in.Members != nil {
		b["members"] = membersToRecords(in.Members)
	}
	b.ids("genresIds", in.GenreIDs)
	return b
}

var _ usecase.BandGateway = (*BandGateway)(nil)
