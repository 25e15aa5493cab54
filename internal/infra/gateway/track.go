package gateway

import (
	"context"

	"github.com/totegamma/music-gateway"
	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/domain"
	"github.com/totegamma/music-gateway/internal/usecase"
)

type TrackGateway struct {
	col collection
}

func NewTrackGateway(cl *client.Client, baseURL string) *TrackGateway {
	return &TrackGateway{col: newCollection(cl, "tracks", baseURL)}
}

func (g *TrackGateway) Get(ctx context.Context, id string) (*domain.Track, error) {
	var rec musicgw.TrackRecord
	found, err := g.col.get(ctx, id, &rec)
	if err != nil || !found || rec.ID == "" {
		return nil, err
	}
	track := trackFromRecord(rec)
	return &track, nil
}

func (g *TrackGateway) List(ctx context.Context, limit, offset int) ([]domain.Track, int, error) {
	var page musicgw.Page[musicgw.TrackRecord]
	if err := g.col.list(ctx, limit, offset, &page); err != nil {
		return nil, 0, err
	}
	tracks := make([]domain.Track, 0, len(page.Items))
	for _, rec := range page.Items {
		tracks = append(tracks, trackFromRecord(rec))
	}
	return tracks, page.Total, nil
}

func (g *TrackGateway) Create(ctx context.Context, token string, input domain.TrackInput) (domain.Track, error) {
	var rec musicgw.TrackRecord
	if err := g.col.create(ctx, token, trackBody(input), &rec); err != nil {
		return domain.Track{}, err
	}
	return trackFromRecord(rec), nil
}

func (g *TrackGateway) Update(ctx context.Context, token, id string, input domain.TrackInput) (domain.Track, error) {
	var rec musicgw.TrackRecord
	if err := g.col.update(ctx, token, id, trackBody(input), &rec); err != nil {
		return domain.Track{}, err
	}
	return trackFromRecord(rec), nil
}

func (g *TrackGateway) Delete(ctx context.Context, token, id string) (string, error) {
	if err := g.col.delete(ctx, token, id); err != nil {
		return "", err
	}
	return deletedMessage(domain.EntityTrack, id), nil
}

func trackBody(in domain.TrackInput) body {
	b := body{}
	b.str("title", in.Title)
	if in.AlbumID.Set {
		if in.AlbumID.Valid {
			b["albumId"] = in.AlbumID.Value
		} else {
			b["albumId"] = nil
		}
	}
	b.ids("artistsIds", in.ArtistIDs)
	b.ids("bandsIds", in.BandIDs)
	b.ids("genresIds", in.GenreIDs)
	b.num("duration", in.Duration)
	b.num("released", in.Released)
	return b
}

var _ usecase.TrackGateway = (*TrackGateway)(nil)
