package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/infra/gateway"
	"github.com/totegamma/music-gateway/internal/testutil/fakeservice"
	"github.com/totegamma/music-gateway/internal/usecase"
)

type stack struct {
	albums, tracks, artists, bands, genres, users *fakeservice.Service
	exec                                          *Executor
}

func newStack(t *testing.T) *stack {
	t.Helper()
	s := &stack{
		albums:  fakeservice.New(t, "albums"),
		tracks:  fakeservice.New(t, "tracks"),
		artists: fakeservice.New(t, "artists"),
		bands:   fakeservice.New(t, "bands"),
		genres:  fakeservice.New(t, "genres"),
		users:   fakeservice.New(t, "users"),
	}

	cl := client.New()
	gw := usecase.Gateways{
		Albums:  gateway.NewAlbumGateway(cl, s.albums.URL()),
		Tracks:  gateway.NewTrackGateway(cl, s.tracks.URL()),
		Artists: gateway.NewArtistGateway(cl, s.artists.URL()),
		Bands:   gateway.NewBandGateway(cl, s.bands.URL()),
		Genres:  gateway.NewGenreGateway(cl, s.genres.URL()),
		Users:   gateway.NewUserGateway(cl, s.users.URL()),
	}
	opts := usecase.Options{FanOut: 4}

	exec, err := New(Usecases{
		Albums:   usecase.NewAlbumUsecase(gw, opts),
		Tracks:   usecase.NewTrackUsecase(gw, opts),
		Artists:  usecase.NewArtistUsecase(gw, opts),
		Bands:    usecase.NewBandUsecase(gw, opts),
		Genres:   usecase.NewGenreUsecase(gw),
		Users:    usecase.NewUserUsecase(gw),
		Resolver: usecase.NewResolver(gw, opts),
	}, 4)
	require.NoError(t, err)
	s.exec = exec
	return s
}

func (s *stack) run(t *testing.T, token, query string, vars map[string]any) (string, Response) {
	t.Helper()
	resp := s.exec.Execute(context.Background(), Request{Query: query, Variables: vars}, token)
	return string(resp.Data), *resp
}

func TestQueryResolvesNestedGraph(t *testing.T) {
	s := newStack(t)
	s.albums.Seed("al1", fakeservice.Record{
		"name":       "Abbey Road",
		"released":   1969,
		"trackIds":   []string{"t2", "t1"},
		"artistsIds": []string{"a1", "gone"},
		"genresIds":  []string{"g1"},
	})
	s.tracks.Seed("t1", fakeservice.Record{"title": "Come Together", "albumId": "al1"})
	s.tracks.Seed("t2", fakeservice.Record{"title": "Something", "albumId": "al1"})
	s.artists.Seed("a1", fakeservice.Record{"firstName": "John", "secondName": "Lennon"})
	s.genres.Seed("g1", fakeservice.Record{"name": "Rock", "year": "1950"})

	data, resp := s.run(t, "", `
		query {
			album(id: "al1") {
				__typename
				title: name
				released
				tracks { id title album { name } }
				artists { ...names }
				genres { name year }
			}
			missing: album(id: "nope") { id }
		}
		fragment names on Artist { firstName secondName }
	`, nil)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{
		"album": {
			"__typename": "Album",
			"title": "Abbey Road",
			"released": 1969,
			"tracks": [
				{"id": "t2", "title": "Something", "album": {"name": "Abbey Road"}},
				{"id": "t1", "title": "Come Together", "album": {"name": "Abbey Road"}}
			],
			"artists": [{"firstName": "John", "secondName": "Lennon"}],
			"genres": [{"name": "Rock", "year": 1950}]
		},
		"missing": null
	}`, data)
}

func TestQueryKeepsFieldOrder(t *testing.T) {
	s := newStack(t)
	s.genres.Seed("g1", fakeservice.Record{"name": "Jazz", "country": "US"})

	data, resp := s.run(t, "", `{ genre(id: "g1") { name id country } }`, nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, `{"genre":{"name":"Jazz","id":"g1","country":"US"}}`, data)
}

func TestBandMembersCarryEdgeData(t *testing.T) {
	s := newStack(t)
	s.artists.Seed("a1", fakeservice.Record{"firstName": "Paul", "secondName": "McCartney", "bandsIds": []string{"b1"}})
	s.bands.Seed("b1", fakeservice.Record{
		"name": "The Beatles",
		"members": []any{
			map[string]any{"artistId": "a1", "instrument": "bass", "years": []string{"1960", "1970"}},
		},
	})

	data, resp := s.run(t, "", `{ band(id: "b1") { members { id firstName instrument years bands { name } } } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"band": {"members": [
		{"id": "a1", "firstName": "Paul", "instrument": "bass", "years": ["1960", "1970"], "bands": [{"name": "The Beatles"}]}
	]}}`, data)
}

func TestDirectivesAndVariables(t *testing.T) {
	s := newStack(t)
	s.genres.Seed("g1", fakeservice.Record{"name": "Blues", "year": 1900})

	query := `query($id: ID!, $withYear: Boolean!) { genre(id: $id) { name year @include(if: $withYear) country @skip(if: true) } }`

	data, resp := s.run(t, "", query, map[string]any{"id": "g1", "withYear": false})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"genre": {"name": "Blues"}}`, data)

	data, resp = s.run(t, "", query, map[string]any{"id": "g1", "withYear": true})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"genre": {"name": "Blues", "year": 1900}}`, data)
}

func TestCreateTrackListsOnAlbum(t *testing.T) {
	s := newStack(t)
	s.albums.Seed("al1", fakeservice.Record{"name": "A", "trackIds": []string{}})

	data, resp := s.run(t, "tok", `mutation($in: TrackInput!) { createTrack(input: $in) { id title album { id } } }`,
		map[string]any{"in": map[string]any{"title": "t1", "albumId": "al1", "duration": float64(180)}})
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"createTrack": {"id": "tracks-1", "title": "t1", "album": {"id": "al1"}}}`, data)
	assert.Equal(t, []any{"tracks-1"}, s.albums.Get("al1")["trackIds"])

	calls := s.tracks.Calls()
	assert.Equal(t, "tok", calls[len(calls)-1].Token)
}

func TestMutationErrorsAreFieldErrors(t *testing.T) {
	s := newStack(t)
	s.bands.Seed("b1", fakeservice.Record{"name": "one"})

	data, resp := s.run(t, "tok", `mutation {
		createArtist(input: {firstName: "A", secondName: "B", bandsIds: ["b1", "b2"]}) { id }
		createGenre(input: {name: "Ska"}) { name }
	}`, nil)

	assert.JSONEq(t, `{"createArtist": null, "createGenre": {"name": "Ska"}}`, data)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Band with id b2 not found", resp.Errors[0].Message)
	assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["kind"])
	assert.Equal(t, []any{"createArtist"}, resp.Errors[0].Path)

	assert.Equal(t, 0, s.artists.CountCalls("POST"))
	assert.Nil(t, s.bands.Get("b1")["members"])
}

func TestMutationWithoutTokenIsRejectedUpstream(t *testing.T) {
	s := newStack(t)

	_, resp := s.run(t, "", `mutation { createGenre(input: {name: "Ska"}) { id } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Unauthorized", resp.Errors[0].Message)
	assert.Equal(t, "UPSTREAM_FAILURE", resp.Errors[0].Extensions["kind"])
}

func TestValidationFailures(t *testing.T) {
	s := newStack(t)

	_, resp := s.run(t, "", `{ albums(limit: -1) { id } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "VALIDATION_FAILURE", resp.Errors[0].Extensions["kind"])

	_, resp = s.run(t, "tok", `mutation { createTrack(input: {duration: 3}) { id } }`, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "invalid title: is required", resp.Errors[0].Message)

	data, resp := s.run(t, "", `{ album(id: "x") { nope } }`, nil)
	assert.NotEmpty(t, resp.Errors)
	assert.Empty(t, data)
}

func TestUpstreamFailureDoesNotBreakSiblings(t *testing.T) {
	s := newStack(t)
	s.tracks.Seed("t1", fakeservice.Record{"title": "x"})
	s.genres.FailNext("GET", 1)

	data, resp := s.run(t, "", `{ genre(id: "g1") { id } track(id: "t1") { title } }`, nil)
	assert.JSONEq(t, `{"genre": null, "track": {"title": "x"}}`, data)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "genres unavailable", resp.Errors[0].Message)
}

func TestJwtAndRegister(t *testing.T) {
	s := newStack(t)

	data, resp := s.run(t, "", `mutation { register(firstName: "Ann", secondName: "Lee", password: "pw", email: "ann@example.com") { firstName secondName email } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"register": {"firstName": "Ann", "secondName": "Lee", "email": "ann@example.com"}}`, data)

	data, resp = s.run(t, "", `{ jwt(email: "ann@example.com", password: "pw") { jwt } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"jwt": {"jwt": "token-ann@example.com"}}`, data)
}

func TestIntrospectionIsRejected(t *testing.T) {
	s := newStack(t)

	_, resp := s.run(t, "", `{ __schema { queryType { name } } }`, nil)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "introspection is not supported", resp.Errors[0].Message)
}

func TestUpdateTrackStopsWhenAlbumSpliceFails(t *testing.T) {
	s := newStack(t)
	s.albums.Seed("al1", fakeservice.Record{"name": "One", "trackIds": []string{"t1"}})
	s.albums.Seed("al2", fakeservice.Record{"name": "Two", "trackIds": []string{}})
	s.tracks.Seed("t1", fakeservice.Record{"title": "x", "albumId": "al1"})
	s.albums.FailNext("PUT", 2)

	data, resp := s.run(t, "tok", `mutation { updateTrack(id: "t1", input: {albumId: "al2"}) { id } }`, nil)
	assert.JSONEq(t, `{"updateTrack": null}`, data)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "albums unavailable", resp.Errors[0].Message)
	assert.Equal(t, "UPSTREAM_FAILURE", resp.Errors[0].Extensions["kind"])

	assert.Equal(t, "al1", s.tracks.Get("t1")["albumId"])
	assert.Equal(t, 0, s.tracks.CountCalls("PUT"))
}

func TestSlowServiceTimesOutBeforeWrites(t *testing.T) {
	s := newStack(t)
	s.tracks.Seed("t1", fakeservice.Record{"title": "x"})

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(slow.Close)

	cl := client.New(client.WithTimeout(50 * time.Millisecond))
	gw := usecase.Gateways{
		Albums:  gateway.NewAlbumGateway(cl, slow.URL),
		Tracks:  gateway.NewTrackGateway(cl, s.tracks.URL()),
		Artists: gateway.NewArtistGateway(cl, s.artists.URL()),
		Bands:   gateway.NewBandGateway(cl, s.bands.URL()),
		Genres:  gateway.NewGenreGateway(cl, s.genres.URL()),
		Users:   gateway.NewUserGateway(cl, s.users.URL()),
	}
	opts := usecase.Options{FanOut: 4}
	exec, err := New(Usecases{
		Albums:   usecase.NewAlbumUsecase(gw, opts),
		Tracks:   usecase.NewTrackUsecase(gw, opts),
		Artists:  usecase.NewArtistUsecase(gw, opts),
		Bands:    usecase.NewBandUsecase(gw, opts),
		Genres:   usecase.NewGenreUsecase(gw),
		Users:    usecase.NewUserUsecase(gw),
		Resolver: usecase.NewResolver(gw, opts),
	}, 4)
	require.NoError(t, err)

	resp := exec.Execute(context.Background(), Request{
		Query: `mutation { updateTrack(id: "t1", input: {albumId: "al9", title: "y"}) { id } }`,
	}, "tok")
	assert.JSONEq(t, `{"updateTrack": null}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "UPSTREAM_FAILURE", resp.Errors[0].Extensions["kind"])

	assert.Equal(t, "x", s.tracks.Get("t1")["title"])
	assert.Equal(t, 0, s.tracks.CountCalls("PUT"))
}
