package musicgw

// Records in this file are the wire shapes spoken by the entity services.
// Ids are opaque strings; relationships travel as foreign-key id arrays.

type Page[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type AlbumRecord struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Released   *int     `json:"released,omitempty"`
	ArtistsIDs []string `json:"artistsIds"`
	BandsIDs   []string `json:"bandsIds"`
	TrackIDs   []string `json:"trackIds"`
	GenresIDs  []string `json:"genresIds"`
	Image      string   `json:"image,omitempty"`
}

type TrackRecord struct {
	ID         string   `json:"_id"`
	Title      string   `json:"title"`
	AlbumID    *string  `json:"albumId,omitempty"`
	ArtistsIDs []string `json:"artistsIds"`
	BandsIDs   []string `json:"bandsIds"`
	Duration   *int     `json:"duration,omitempty"`
	Released   *int     `json:"released,omitempty"`
	GenresIDs  []string `json:"genresIds"`
}

type ArtistRecord struct {
	ID          string   `json:"_id"`
	FirstName   string   `json:"firstName"`
	SecondName  string   `json:"secondName"`
	MiddleName  string   `json:"middleName,omitempty"`
	BirthDate   string   `json:"birthDate,omitempty"`
	BirthPlace  string   `json:"birthPlace,omitempty"`
	Country     string   `json:"country,omitempty"`
	BandsIDs    []string `json:"bandsIds"`
	Instruments []string `json:"instruments"`
}

type BandRecord struct {
	ID        string         `json:"_id"`
	Name      string         `json:"name"`
	Origin    string         `json:"origin,omitempty"`
	Members   []MemberRecord `json:"members"`
	Website   string         `json:"website,omitempty"`
	GenresIDs []string       `json:"genresIds"`
}

// MemberRecord is the artist-in-band edge. It carries metadata that belongs
// to neither endpoint.
type MemberRecord struct {
	ArtistID   string   `json:"artistId"`
	Instrument string   `json:"instrument,omitempty"`
	Years      []string `json:"years,omitempty"`
}

type GenreRecord struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Country     string   `json:"country,omitempty"`
	Year        FlexYear `json:"year"`
}

type UserRecord struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password,omitempty"`
	Email     string `json:"email"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	JWT string `json:"jwt"`
}
