package domain

// Entities in the gateway shape. Relationship fields hold refs; expanding
// them is the resolver's job. JSON tags name the fields exposed to clients.

type Album struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Released *int          `json:"released"`
	Image    string        `json:"image"`
	Tracks   []Ref[Track]  `json:"-"`
	Artists  []Ref[Artist] `json:"-"`
	Bands    []Ref[Band]   `json:"-"`
	Genres   []Ref[Genre]  `json:"-"`
}

type Track struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Album    Ref[Album]    `json:"-"`
	Artists  []Ref[Artist] `json:"-"`
	Bands    []Ref[Band]   `json:"-"`
	Genres   []Ref[Genre]  `json:"-"`
	Duration *int          `json:"duration"`
	Released *int          `json:"released"`
}

type Artist struct {
	ID          string      `json:"id"`
	FirstName   string      `json:"firstName"`
	SecondName  string      `json:"secondName"`
	MiddleName  string      `json:"middleName"`
	BirthDate   string      `json:"birthDate"`
	BirthPlace  string      `json:"birthPlace"`
	Country     string      `json:"country"`
	Bands       []Ref[Band] `json:"-"`
	Instruments []string    `json:"instruments"`
}

type Band struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Origin  string       `json:"origin"`
	Website string       `json:"website"`
	Genres  []Ref[Genre] `json:"-"`
	Members []MemberRef  `json:"-"`
}

// MemberRef is the unresolved artist-in-band edge.
type MemberRef struct {
	Artist     Ref[Artist]
	Instrument string
	Years      []string
}

// Member is a resolved band member: the artist plus the edge metadata.
type Member struct {
	Artist
	Instrument string   `json:"instrument"`
	Years      []string `json:"years"`
}

type Genre struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Country     string `json:"country"`
	Year        *int   `json:"year"`
}

type User struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Password   string `json:"password"`
	Email      string `json:"email"`
}

type Token struct {
	JWT string `json:"jwt"`
}

// MemberIDs lists the artist ids of the band members in member order.
func (b Band) MemberIDs() []string {
	ids := make([]string, 0, len(b.Members))
	for _, m := range b.Members {
		ids = append(ids, m.Artist.ID)
	}
	return ids
}

func (b Band) HasMember(artistID string) bool {
	for _, m := range b.Members {
		if m.Artist.ID == artistID {
			return true
		}
	}
	return false
}
