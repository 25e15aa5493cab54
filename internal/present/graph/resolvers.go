package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/totegamma/music-gateway/internal/domain"
	"github.com/totegamma/music-gateway/internal/usecase"
)

// Usecases wires the schema to the orchestration layer.
type Usecases struct {
	Albums   *usecase.AlbumUsecase
	Tracks   *usecase.TrackUsecase
	Artists  *usecase.ArtistUsecase
	Bands    *usecase.BandUsecase
	Genres   *usecase.GenreUsecase
	Users    *usecase.UserUsecase
	Resolver *usecase.Resolver
}

// rootResolver serves both the Query and the Mutation root.
type rootResolver struct {
	binder
	u Usecases
}

func newRootResolver(u Usecases) *rootResolver {
	return &rootResolver{binder: binder{rel: u.Resolver}, u: u}
}

// Queries

func (r *rootResolver) Album(ctx context.Context, args idArgs) (*albumResolver, error) {
	a, err := r.u.Albums.Get(ctx, string(args.ID))
	if err != nil {
		return nil, fail(ctx, err)
	}
	if a == nil {
		return nil, nil
	}
	return r.album(*a), nil
}

func (r *rootResolver) Albums(ctx context.Context, args pageArgs) (*[]*albumResolver, error) {
	limit, offset := args.page()
	items, _, err := r.u.Albums.List(ctx, limit, offset)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(items, r.album), nil
}

func (r *rootResolver) Artist(ctx context.Context, args idArgs) (*artistResolver, error) {
	a, err := r.u.Artists.Get(ctx, string(args.ID))
	if err != nil {
		return nil, fail(ctx, err)
	}
	if a == nil {
		return nil, nil
	}
	return r.artist(*a), nil
}

func (r *rootResolver) Artists(ctx context.Context, args pageArgs) (*[]*artistResolver, error) {
	limit, offset := args.page()
	items, _, err := r.u.Artists.List(ctx, limit, offset)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(items, r.artist), nil
}

func (r *rootResolver) Band(ctx context.Context, args idArgs) (*bandResolver, error) {
	b, err := r.u.Bands.Get(ctx, string(args.ID))
	if err != nil {
		return nil, fail(ctx, err)
	}
	if b == nil {
		return nil, nil
	}
	return r.band(*b), nil
}

func (r *rootResolver) Bands(ctx context.Context, args pageArgs) (*[]*bandResolver, error) {
	limit, offset := args.page()
	items, _, err := r.u.Bands.List(ctx, limit, offset)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(items, r.band), nil
}

func (r *rootResolver) Genre(ctx context.Context, args idArgs) (*genreResolver, error) {
	g, err := r.u.Genres.Get(ctx, string(args.ID))
	if err != nil {
		return nil, fail(ctx, err)
	}
	if g == nil {
		return nil, nil
	}
	return r.genre(*g), nil
}

func (r *rootResolver) Genres(ctx context.Context, args pageArgs) (*[]*genreResolver, error) {
	limit, offset := args.page()
	items, _, err := r.u.Genres.List(ctx, limit, offset)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(items, r.genre), nil
}

func (r *rootResolver) Track(ctx context.Context, args idArgs) (*trackResolver, error) {
	t, err := r.u.Tracks.Get(ctx, string(args.ID))
	if err != nil {
		return nil, fail(ctx, err)
	}
	if t == nil {
		return nil, nil
	}
	return r.track(*t), nil
}

func (r *rootResolver) Tracks(ctx context.Context, args pageArgs) (*[]*trackResolver, error) {
	limit, offset := args.page()
	items, _, err := r.u.Tracks.List(ctx, limit, offset)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return wrapAll(items, r.track), nil
}

func (r *rootResolver) User(ctx context.Context, args idArgs) (*userResolver, error) {
	user, err := r.u.Users.Get(ctx, string(args.ID))
	if err != nil {
		return nil, fail(ctx, err)
	}
	if user == nil {
		return nil, nil
	}
	return &userResolver{u: *user}, nil
}

func (r *rootResolver) Jwt(ctx context.Context, args struct {
	Email    string
	Password string
}) (*jwtResolver, error) {
	token, err := r.u.Users.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return &jwtResolver{t: token}, nil
}

// Mutations. Every write forwards the caller's token.

func (r *rootResolver) CreateAlbum(ctx context.Context, args struct{ Input albumInput }) (*albumResolver, error) {
	in := args.Input.domain()
	if err := required("name", in.Name); err != nil {
		return nil, fail(ctx, err)
	}
	a, err := r.u.Albums.Create(ctx, tokenFrom(ctx), in)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.album(a), nil
}

func (r *rootResolver) UpdateAlbum(ctx context.Context, args struct {
	ID    graphql.ID
	Input albumInput
}) (*albumResolver, error) {
	a, err := r.u.Albums.Update(ctx, tokenFrom(ctx), string(args.ID), args.Input.domain())
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.album(a), nil
}

func (r *rootResolver) DeleteAlbum(ctx context.Context, args idArgs) (*string, error) {
	return deleted(ctx, r.u.Albums.Delete, string(args.ID))
}

func (r *rootResolver) CreateTrack(ctx context.Context, args struct{ Input trackInput }) (*trackResolver, error) {
	in := args.Input.domain()
	if err := required("title", in.Title); err != nil {
		return nil, fail(ctx, err)
	}
	t, err := r.u.Tracks.Create(ctx, tokenFrom(ctx), in)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.track(t), nil
}

func (r *rootResolver) UpdateTrack(ctx context.Context, args struct {
	ID    graphql.ID
	Input trackInput
}) (*trackResolver, error) {
	t, err := r.u.Tracks.Update(ctx, tokenFrom(ctx), string(args.ID), args.Input.domain())
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.track(t), nil
}

func (r *rootResolver) DeleteTrack(ctx context.Context, args idArgs) (*string, error) {
	return deleted(ctx, r.u.Tracks.Delete, string(args.ID))
}

func (r *rootResolver) CreateArtist(ctx context.Context, args struct{ Input artistInput }) (*artistResolver, error) {
	in := args.Input.domain()
	if err := required("firstName", in.FirstName); err != nil {
		return nil, fail(ctx, err)
	}
	if err := required("secondName", in.SecondName); err != nil {
		return nil, fail(ctx, err)
	}
	a, err := r.u.Artists.Create(ctx, tokenFrom(ctx), in)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.artist(a), nil
}

func (r *rootResolver) UpdateArtist(ctx context.Context, args struct {
	ID    graphql.ID
	Input artistInput
}) (*artistResolver, error) {
	a, err := r.u.Artists.Update(ctx, tokenFrom(ctx), string(args.ID), args.Input.domain())
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.artist(a), nil
}

func (r *rootResolver) DeleteArtist(ctx context.Context, args idArgs) (*string, error) {
	return deleted(ctx, r.u.Artists.Delete, string(args.ID))
}

func (r *rootResolver) CreateBand(ctx context.Context, args struct{ Input bandInput }) (*bandResolver, error) {
	in := args.Input.domain()
	if err := required("name", in.Name); err != nil {
		return nil, fail(ctx, err)
	}
	b, err := r.u.Bands.Create(ctx, tokenFrom(ctx), in)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.band(b), nil
}

func (r *rootResolver) UpdateBand(ctx context.Context, args struct {
	ID    graphql.ID
	Input bandInput
}) (*bandResolver, error) {
	b, err := r.u.Bands.Update(ctx, tokenFrom(ctx), string(args.ID), args.Input.domain())
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.band(b), nil
}

func (r *rootResolver) DeleteBand(ctx context.Context, args idArgs) (*string, error) {
	return deleted(ctx, r.u.Bands.Delete, string(args.ID))
}

func (r *rootResolver) CreateGenre(ctx context.Context, args struct{ Input genreInput }) (*genreResolver, error) {
	in := args.Input.domain()
	if err := required("name", in.Name); err != nil {
		return nil, fail(ctx, err)
	}
	g, err := r.u.Genres.Create(ctx, tokenFrom(ctx), in)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.genre(g), nil
}

func (r *rootResolver) UpdateGenre(ctx context.Context, args struct {
	ID    graphql.ID
	Input genreInput
}) (*genreResolver, error) {
	g, err := r.u.Genres.Update(ctx, tokenFrom(ctx), string(args.ID), args.Input.domain())
	if err != nil {
		return nil, fail(ctx, err)
	}
	return r.genre(g), nil
}

func (r *rootResolver) DeleteGenre(ctx context.Context, args idArgs) (*string, error) {
	return deleted(ctx, r.u.Genres.Delete, string(args.ID))
}

func (r *rootResolver) Register(ctx context.Context, args registerArgs) (*userResolver, error) {
	user, err := r.u.Users.Register(ctx, domain.RegisterInput{
		FirstName:  args.FirstName,
		SecondName: args.SecondName,
		Password:   args.Password,
		Email:      args.Email,
	})
	if err != nil {
		return nil, fail(ctx, err)
	}
	return &userResolver{u: user}, nil
}

func deleted(ctx context.Context, del func(ctx context.Context, token, id string) (string, error), id string) (*string, error) {
	res, err := del(ctx, tokenFrom(ctx), id)
	if err != nil {
		return nil, fail(ctx, err)
	}
	return &res, nil
}
