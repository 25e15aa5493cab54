package graph

import (
	"fmt"

	"github.com/graph-gophers/graphql-go"

	"github.com/totegamma/music-gateway/internal/domain"
)

// nullID is an ID argument that tells an explicit null apart from an
// omitted value.
type nullID struct {
	Value *string
	Set   bool
}

func (nullID) ImplementsGraphQLType(name string) bool {
	return name == "ID"
}

func (n *nullID) UnmarshalGraphQL(input any) error {
	n.Set = true
	switch v := input.(type) {
	case nil:
		return nil
	case string:
		n.Value = &v
		return nil
	default:
		return fmt.Errorf("wrong type for ID: %T", v)
	}
}

func (n *nullID) Nullable() {}

// patch maps the argument onto the domain tri-state. An empty id counts
// as null.
func (n nullID) patch() domain.Patch[string] {
	switch {
	case !n.Set:
		return domain.Patch[string]{}
	case n.Value == nil || *n.Value == "":
		return domain.Null[string]()
	default:
		return domain.Some(*n.Value)
	}
}

type pageArgs struct {
	Limit  *int32
	Offset *int32
}

// page returns limit and offset; absent values are 0 and left to the
// service to interpret.
func (a pageArgs) page() (limit, offset int) {
	if a.Limit != nil {
		limit = int(*a.Limit)
	}
	if a.Offset != nil {
		offset = int(*a.Offset)
	}
	return limit, offset
}

type idArgs struct {
	ID graphql.ID
}

type albumInput struct {
	Name       *string
	Released   *int32
	Image      *string
	ArtistsIds *[]graphql.ID
	BandsIds   *[]graphql.ID
	TrackIds   *[]graphql.ID
	GenresIds  *[]graphql.ID
}

func (in albumInput) domain() domain.AlbumInput {
	return domain.AlbumInput{
		Name:      in.Name,
		Released:  fromInt32(in.Released),
		Image:     in.Image,
		ArtistIDs: ids(in.ArtistsIds),
		BandIDs:   ids(in.BandsIds),
		TrackIDs:  ids(in.TrackIds),
		GenreIDs:  ids(in.GenresIds),
	}
}

type trackInput struct {
	Title      *string
	AlbumId    nullID
	ArtistsIds *[]graphql.ID
	BandsIds   *[]graphql.ID
	GenresIds  *[]graphql.ID
	Duration   *int32
	Released   *int32
}

func (in trackInput) domain() domain.TrackInput {
	return domain.TrackInput{
		Title:     in.Title,
		AlbumID:   in.AlbumId.patch(),
		ArtistIDs: ids(in.ArtistsIds),
		BandIDs:   ids(in.BandsIds),
		GenreIDs:  ids(in.GenresIds),
		Duration:  fromInt32(in.Duration),
		Released:  fromInt32(in.Released),
	}
}

type artistInput struct {
	FirstName   *string
	SecondName  *string
	MiddleName  *string
	BirthDate   *string
	BirthPlace  *string
	Country     *string
	BandsIds    *[]graphql.ID
	Instruments *[]string
}

func (in artistInput) domain() domain.ArtistInput {
	out := domain.ArtistInput{
		FirstName:  in.FirstName,
		SecondName: in.SecondName,
		MiddleName: in.MiddleName,
		BirthDate:  in.BirthDate,
		BirthPlace: in.BirthPlace,
		Country:    in.Country,
		BandIDs:    ids(in.BandsIds),
	}
	if in.Instruments != nil {
		out.Instruments = append([]string{}, *in.Instruments...)
	}
	return out
}

type memberInput struct {
	ArtistId   graphql.ID
	Instrument *string
	Years      *[]string
}

type bandInput struct {
	Name      *string
	Origin    *string
	Website   *string
	Members   *[]memberInput
	GenresIds *[]graphql.ID
}

func (in bandInput) domain() domain.BandInput {
	out := domain.BandInput{
		Name:     in.Name,
		Origin:   in.Origin,
		Website:  in.Website,
		GenreIDs: ids(in.GenresIds),
	}
	if in.Members != nil {
		out.Members = make([]domain.MemberInput, 0, len(*in.Members))
		for _, m := range *in.Members {
			member := domain.MemberInput{ArtistID: string(m.ArtistId)}
			if m.Instrument != nil {
				member.Instrument = *m.Instrument
			}
			if m.Years != nil {
				member.Years = append([]string{}, *m.Years...)
			}
			out.Members = append(out.Members, member)
		}
	}
	return out
}

type genreInput struct {
	Name        *string
	Description *string
	Country     *string
	Year        *int32
}

func (in genreInput) domain() domain.GenreInput {
	return domain.GenreInput{
		Name:        in.Name,
		Description: in.Description,
		Country:     in.Country,
		Year:        fromInt32(in.Year),
	}
}

type registerArgs struct {
	FirstName  string
	SecondName string
	Password   string
	Email      string
}

// ids returns nil when the list was omitted, so that updates leave it
// alone, and a non-nil slice otherwise.
func ids(list *[]graphql.ID) []string {
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(*list))
	for _, id := range *list {
		out = append(out, string(id))
	}
	return out
}

func fromInt32(n *int32) *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

func toInt32(n *int) *int32 {
	if n == nil {
		return nil
	}
	v := int32(*n)
	return &v
}

func required(field string, v *string) error {
	if v == nil || *v == "" {
		return &domain.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}
