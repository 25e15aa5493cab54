package graph

import (
	"testing"

	"github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/music-gateway/internal/domain"
)

func TestNullIDPatch(t *testing.T) {
	var absent nullID
	assert.False(t, absent.patch().Set)

	var null nullID
	require.NoError(t, null.UnmarshalGraphQL(nil))
	assert.Equal(t, domain.Null[string](), null.patch())

	var empty nullID
	require.NoError(t, empty.UnmarshalGraphQL(""))
	assert.Equal(t, domain.Null[string](), empty.patch())

	var set nullID
	require.NoError(t, set.UnmarshalGraphQL("al1"))
	assert.Equal(t, domain.Some("al1"), set.patch())

	var bad nullID
	assert.Error(t, bad.UnmarshalGraphQL(7))
}

func TestTrackInputLists(t *testing.T) {
	in := trackInput{Title: ptr("x")}.domain()
	assert.False(t, in.AlbumID.Set)
	assert.Nil(t, in.ArtistIDs)

	in = trackInput{ArtistsIds: &[]graphql.ID{}, Duration: ptr(int32(200))}.domain()
	assert.Equal(t, []string{}, in.ArtistIDs)
	assert.Equal(t, 200, *in.Duration)
}

func TestBandInputMembers(t *testing.T) {
	in := bandInput{
		Members: &[]memberInput{
			{ArtistId: "a1", Instrument: ptr("keys"), Years: &[]string{"1999"}},
			{ArtistId: "a2"},
		},
	}.domain()
	require.Len(t, in.Members, 2)
	assert.Equal(t, domain.MemberInput{ArtistID: "a1", Instrument: "keys", Years: []string{"1999"}}, in.Members[0])
	assert.Equal(t, domain.MemberInput{ArtistID: "a2"}, in.Members[1])

	assert.Nil(t, bandInput{}.domain().Members)
}

func TestGenreInputYear(t *testing.T) {
	in := genreInput{Name: ptr("Ska"), Year: ptr(int32(1960))}.domain()
	assert.Equal(t, 1960, *in.Year)
	assert.Nil(t, genreInput{}.domain().Year)
}

func TestRequired(t *testing.T) {
	err := required("title", ptr(""))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.NoError(t, required("title", ptr("x")))
}

func ptr[T any](v T) *T {
	return &v
}
