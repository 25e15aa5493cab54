package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/music-gateway/client"
	"github.com/totegamma/music-gateway/internal/infra/gateway"
	"github.com/totegamma/music-gateway/internal/present/graph"
	"github.com/totegamma/music-gateway/internal/testutil/fakeservice"
	"github.com/totegamma/music-gateway/internal/usecase"
	"github.com/totegamma/music-gateway/internal/utils"
)

type graphResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func setup(t *testing.T) (*echo.Echo, *fakeservice.Service) {
	t.Helper()
	genres := fakeservice.New(t, "genres")

	cl := client.New()
	gw := usecase.Gateways{
		Albums:  gateway.NewAlbumGateway(cl, ""),
		Tracks:  gateway.NewTrackGateway(cl, ""),
		Artists: gateway.NewArtistGateway(cl, ""),
		Bands:   gateway.NewBandGateway(cl, ""),
		Genres:  gateway.NewGenreGateway(cl, genres.URL()),
		Users:   gateway.NewUserGateway(cl, ""),
	}
	exec, err := graph.New(graph.Usecases{
		Albums:   usecase.NewAlbumUsecase(gw, usecase.Options{}),
		Tracks:   usecase.NewTrackUsecase(gw, usecase.Options{}),
		Artists:  usecase.NewArtistUsecase(gw, usecase.Options{}),
		Bands:    usecase.NewBandUsecase(gw, usecase.Options{}),
		Genres:   usecase.NewGenreUsecase(gw),
		Users:    usecase.NewUserUsecase(gw),
		Resolver: usecase.NewResolver(gw, usecase.Options{}),
	}, 0)
	if err != nil {
		t.Fatalf("failed to build executor: %v", err)
	}

	services := utils.NewOrderedKVMap[string](2)
	services.Set("genres", genres.URL())
	services.Set("albums", "")
	h := NewHandler(exec, services)
	e := echo.New()
	h.RegisterRoutes(e)
	return e, genres
}

func post(t *testing.T, e *echo.Echo, body string, header map[string]string) (int, graphResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp graphResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
	}
	return rec.Code, resp
}

func TestHandleGraphQLForwardsToken(t *testing.T) {
	e, genres := setup(t)

	body := `{"query":"mutation($in: GenreInput!) { createGenre(input: $in) { id name year } }","variables":{"in":{"name":"Ska","year":1960}}}`
	code, resp := post(t, e, body, map[string]string{"Authorization": "Bearer secret"})
	if code != http.StatusOK {
		t.Fatalf("expected 200 got %d", code)
	}
	if len(resp.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	created, _ := resp.Data["createGenre"].(map[string]any)
	if created["name"] != "Ska" || created["year"] != float64(1960) {
		t.Fatalf("unexpected genre %+v", created)
	}

	calls := genres.Calls()
	if calls[len(calls)-1].Token != "secret" {
		t.Fatalf("token was not forwarded: %+v", calls[len(calls)-1])
	}
}

func TestHandleGraphQLLegacyHeader(t *testing.T) {
	e, genres := setup(t)

	_, resp := post(t, e, `{"query":"mutation { createGenre(input: {name: \"Dub\"}) { id } }"}`, map[string]string{"jwt": "legacy"})
	if len(resp.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}
	calls := genres.Calls()
	if calls[len(calls)-1].Token != "legacy" {
		t.Fatalf("legacy token was not forwarded")
	}
}

func TestHandleGraphQLUnconfiguredService(t *testing.T) {
	e, genres := setup(t)
	genres.Seed("g1", fakeservice.Record{"name": "Jazz"})

	code, resp := post(t, e, `{"query":"{ genre(id: \"g1\") { name } album(id: \"al1\") { name } }"}`, nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200 got %d", code)
	}
	genre, _ := resp.Data["genre"].(map[string]any)
	if genre["name"] != "Jazz" {
		t.Fatalf("genre should still resolve: %+v", resp.Data)
	}
	if resp.Data["album"] != nil {
		t.Fatalf("album should be null")
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Extensions["kind"] != "UPSTREAM_FAILURE" {
		t.Fatalf("expected one upstream error, got %+v", resp.Errors)
	}
}

func TestHandleGraphQLBadBody(t *testing.T) {
	e, _ := setup(t)

	code, _ := post(t, e, `{"query":`, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", code)
	}
}

func TestHandleGraphQLGet(t *testing.T) {
	e, genres := setup(t)
	genres.Seed("g1", fakeservice.Record{"name": "Jazz"})

	q := url.Values{}
	q.Set("query", `query($id: ID!) { genre(id: $id) { name } }`)
	q.Set("variables", `{"id":"g1"}`)
	req := httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp graphResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	genre, _ := resp.Data["genre"].(map[string]any)
	if genre["name"] != "Jazz" {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}

	q = url.Values{}
	q.Set("query", `mutation { deleteGenre(id: "g1") }`)
	req = httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	resp = graphResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Errors) != 1 || genres.Get("g1") == nil {
		t.Fatalf("mutation over GET must be rejected: %s", rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	e, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body struct {
		Status       string   `json:"status"`
		Configured   []string `json:"configured"`
		Unconfigured []string `json:"unconfigured"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Status != "ok" || len(body.Configured) != 1 || body.Unconfigured[0] != "albums" {
		t.Fatalf("unexpected health %+v", body)
	}
	if !strings.Contains(rec.Body.String(), `"services":{"genres":"configured","albums":"unconfigured"}`) {
		t.Fatalf("services should keep configuration order: %s", rec.Body.String())
	}
}
