package domain

// Inputs for writes. On create every field is taken as given; on update a nil
// pointer or nil slice means "leave unchanged" and a non-nil (possibly
// empty) slice replaces the stored list.

type AlbumInput struct {
	Name      *string
	Released  *int
	Image     *string
	ArtistIDs []string
	BandIDs   []string
	TrackIDs  []string
	GenreIDs  []string
}

type TrackInput struct {
	Title     *string
	AlbumID   Patch[string]
	ArtistIDs []string
	BandIDs   []string
	GenreIDs  []string
	Duration  *int
	Released  *int
}

type ArtistInput struct {
	FirstName   *string
	SecondName  *string
	MiddleName  *string
	BirthDate   *string
	BirthPlace  *string
	Country     *string
	BandIDs     []string
	Instruments []string
}

type BandInput struct {
	Name     *string
	Origin   *string
	Website  *string
	Members  []MemberInput
	GenreIDs []string
}

type MemberInput struct {
	ArtistID   string
	Instrument string
	Years      []string
}

type GenreInput struct {
	Name        *string
	Description *string
	Country     *string
	Year        *int
}

type RegisterInput struct {
	FirstName  string
	SecondName string
	Password   string
	Email      string
}

func (in BandInput) MemberIDs() []string {
	if in.Members == nil {
		return nil
	}
	ids := make([]string, 0, len(in.Members))
	for _, m := range in.Members {
		ids = append(ids, m.ArtistID)
	}
	return ids
}
