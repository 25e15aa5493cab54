package gateway

import (
	"context"

	"github.com/totegamma/music-gateway"
	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/domain"
	"github.com/totegamma/music-gateway/internal/usecase"
)

type AlbumGateway struct {
	col collection
}

func NewAlbumGateway(cl *client.Client, baseURL string) *AlbumGateway {
	return &AlbumGateway{col: newCollection(cl, "albums", baseURL)}
}

func (g *AlbumGateway) Get(ctx context.Context, id string) (*domain.Album, error) {
	var rec musicgw.AlbumRecord
	found, err := g.col.get(ctx, id, &rec)
	if err != nil || !found || rec.ID == "" {
		return nil, err
	}
	album := albumFromRecord(rec)
	return &album, nil
}

func (g *AlbumGateway) List(ctx context.Context, limit, offset int) ([]domain.Album, int, error) {
	var page musicgw.Page[musicgw.AlbumRecord]
	if err := g.col.list(ctx, limit, offset, &page); err != nil {
		return nil, 0, err
	}
	albums := make([]domain.Album, 0, len(page.Items))
	for _, rec := range page.Items {
		albums = append(albums, albumFromRecord(rec))
	}
	return albums, page.Total, nil
}

func (g *AlbumGateway) Create(ctx context.Context, token string, input domain.AlbumInput) (domain.Album, error) {
	var rec musicgw.AlbumRecord
	if err := g.col.create(ctx, token, albumBody(input), &rec); err != nil {
		return domain.Album{}, err
	}
	return albumFromRecord(rec), nil
}

func (g *AlbumGateway) Update(ctx context.Context, token, id string, input domain.AlbumInput) (domain.Album, error) {
	var rec musicgw.AlbumRecord
	if err := g.col.update(ctx, token, id, albumBody(input), &rec); err != nil {
		return domain.Album{}, err
	}
	return albumFromRecord(rec), nil
}

func (g *AlbumGateway) Delete(ctx context.Context, token, id string) (string, error) {
	if err := g.col.delete(ctx, token, id); err != nil {
		return "", err
	}
	return deletedMessage(domain.EntityAlbum, id), nil
}

func albumBody(in domain.AlbumInput) body {
	b := body{}
	b.str("name", in.Name)
	b.num("released", in.Released)
	b.str("image", in.Image)
	b.ids("artistsIds", in.ArtistIDs)
	b.ids("bandsIds", in.BandIDs)
	b.ids("trackIds", in.TrackIDs)
	b.ids("genresIds", in.GenreIDs)
	return b
}

var _ usecase.AlbumGateway = (*AlbumGateway)(nil)
