package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/totegamma/music-gateway/internal/domain"
)

// memGateway is an in-memory entity service shared by the usecase tests.
type memGateway[E any, I any] struct {
	mu      sync.Mutex
	name    string
	entity  string
	items   map[string]E
	seq     int
	setID   func(e *E, id string)
	apply   func(e *E, in I)
	failGet map[string]error
	// failWrite is keyed by "create", "update <id>" or "delete <id>".
	failWrite map[string]error
	log       *writeLog
	gets      int
}

type writeLog struct {
	mu      sync.Mutex
	entries []string
	// onWrite runs after every successful write, outside the gateway lock.
	onWrite func(entry string)
}

func (l *writeLog) add(entry string) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	hook := l.onWrite
	l.mu.Unlock()
	if hook != nil {
		hook(entry)
	}
}

func (l *writeLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func newMem[E any, I any](log *writeLog, name, entity string, setID func(*E, string), apply func(*E, I)) *memGateway[E, I] {
	return &memGateway[E, I]{
		name:      name,
		entity:    entity,
		items:     map[string]E{},
		setID:     setID,
		apply:     apply,
		failGet:   map[string]error{},
		failWrite: map[string]error{},
		log:       log,
	}
}

// failOn makes the write named by key return an upstream error.
func (m *memGateway[E, I]) failOn(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite[key] = &domain.UpstreamError{Service: m.name, Op: key, Err: fmt.Errorf("%s unavailable", m.name)}
}

func (m *memGateway[E, I]) seed(id string, e E) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setID(&e, id)
	m.items[id] = e
}

func (m *memGateway[E, I]) peek(id string) (E, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	return e, ok
}

func (m *memGateway[E, I]) getCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets
}

func (m *memGateway[E, I]) Get(ctx context.Context, id string) (*E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if err, ok := m.failGet[id]; ok {
		return nil, err
	}
	e, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memGateway[E, I]) List(ctx context.Context, limit, offset int) ([]E, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []E{}
	for _, e := range m.items {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *memGateway[E, I]) Create(ctx context.Context, token string, in I) (E, error) {
	m.mu.Lock()
	if err, ok := m.failWrite["create"]; ok {
		m.mu.Unlock()
		var zero E
		return zero, err
	}
	m.seq++
	id := fmt.Sprintf("%s-%d", m.name, m.seq)
	var e E
	m.setID(&e, id)
	m.apply(&e, in)
	m.items[id] = e
	m.mu.Unlock()
	m.log.add("create " + id)
	return e, nil
}

func (m *memGateway[E, I]) Update(ctx context.Context, token, id string, in I) (E, error) {
	m.mu.Lock()
	if err, ok := m.failWrite["update "+id]; ok {
		m.mu.Unlock()
		var zero E
		return zero, err
	}
	e, ok := m.items[id]
	if !ok {
		m.mu.Unlock()
		var zero E
		return zero, &domain.UpstreamError{Service: m.name, Op: "update", Err: fmt.Errorf("%s not found", id)}
	}
	m.apply(&e, in)
	m.items[id] = e
	m.mu.Unlock()
	m.log.add("update " + id)
	return e, nil
}

func (m *memGateway[E, I]) Delete(ctx context.Context, token, id string) (string, error) {
	m.mu.Lock()
	if err, ok := m.failWrite["delete "+id]; ok {
		m.mu.Unlock()
		return "", err
	}
	delete(m.items, id)
	m.mu.Unlock()
	m.log.add("delete " + id)
	return fmt.Sprintf("%s with id %s was successfully deleted", m.entity, id), nil
}

type memUsers struct {
	users map[string]domain.User
}

func (m *memUsers) Get(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) Login(ctx context.Context, email, password string) (domain.Token, error) {
	for _, u := range m.users {
		if u.Email == email && u.Password == password {
			return domain.Token{JWT: "token-" + email}, nil
		}
	}
	return domain.Token{}, &domain.UpstreamError{Service: "users", Op: "login", Err: fmt.Errorf("invalid credentials")}
}

func (m *memUsers) Register(ctx context.Context, in domain.RegisterInput) (domain.User, error) {
	u := domain.User{ID: fmt.Sprintf("user-%d", len(m.users)+1), FirstName: in.FirstName, SecondName: in.SecondName, Email: in.Email, Password: in.Password}
	m.users[u.ID] = u
	return u, nil
}

type world struct {
	log     *writeLog
	albums  *memGateway[domain.Album, domain.AlbumInput]
	tracks  *memGateway[domain.Track, domain.TrackInput]
	artists *memGateway[domain.Artist, domain.ArtistInput]
	bands   *memGateway[domain.Band, domain.BandInput]
	genres  *memGateway[domain.Genre, domain.GenreInput]
	users   *memUsers
}

func newWorld() *world {
	log := &writeLog{}
	return &world{
		log:     log,
		albums:  newMem(log, "albums", domain.EntityAlbum, func(a *domain.Album, id string) { a.ID = id }, applyAlbum),
		tracks:  newMem(log, "tracks", domain.EntityTrack, func(t *domain.Track, id string) { t.ID = id }, applyTrack),
		artists: newMem(log, "artists", domain.EntityArtist, func(a *domain.Artist, id string) { a.ID = id }, applyArtist),
		bands:   newMem(log, "bands", domain.EntityBand, func(b *domain.Band, id string) { b.ID = id }, applyBand),
		genres:  newMem(log, "genres", domain.EntityGenre, func(g *domain.Genre, id string) { g.ID = id }, applyGenre),
		users:   &memUsers{users: map[string]domain.User{}},
	}
}

func (w *world) gateways() Gateways {
	return Gateways{
		Albums:  w.albums,
		Tracks:  w.tracks,
		Artists: w.artists,
		Bands:   w.bands,
		Genres:  w.genres,
		Users:   w.users,
	}
}

func applyAlbum(a *domain.Album, in domain.AlbumInput) {
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Released != nil {
		a.Released = in.Released
	}
	if in.Image != nil {
		a.Image = *in.Image
	}
	if in.TrackIDs != nil {
		a.Tracks = domain.Stubs[domain.Track](in.TrackIDs)
	}
	if in.ArtistIDs != nil {
		a.Artists = domain.Stubs[domain.Artist](in.ArtistIDs)
	}
	if in.BandIDs != nil {
		a.Bands = domain.Stubs[domain.Band](in.BandIDs)
	}
	if in.GenreIDs != nil {
		a.Genres = domain.Stubs[domain.Genre](in.GenreIDs)
	}
}

func applyTrack(t *domain.Track, in domain.TrackInput) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.AlbumID.Set {
		t.Album = domain.Ref[domain.Album]{}
		if in.AlbumID.Valid {
			t.Album = domain.Stub[domain.Album](in.AlbumID.Value)
		}
	}
	if in.ArtistIDs != nil {
		t.Artists = domain.Stubs[domain.Artist](in.ArtistIDs)
	}
	if in.BandIDs != nil {
		t.Bands = domain.Stubs[domain.Band](in.BandIDs)
	}
	if in.GenreIDs != nil {
		t.Genres = domain.Stubs[domain.Genre](in.GenreIDs)
	}
}

func applyArtist(a *domain.Artist, in domain.ArtistInput) {
	if in.FirstName != nil {
		a.FirstName = *in.FirstName
	}
	if in.SecondName != nil {
		a.SecondName = *in.SecondName
	}
	if in.BandIDs != nil {
		a.Bands = domain.Stubs[domain.Band](in.BandIDs)
	}
	if in.Instruments != nil {
		a.Instruments = in.Instruments
	}
}

func applyBand(b *domain.Band, in domain.BandInput) {
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.Members != nil {
		b.Members = make([]domain.MemberRef, 0, len(in.Members))
		for _, m := range in.Members {
			b.Members = append(b.Members, domain.MemberRef{
				Artist:     domain.Stub[domain.Artist](m.ArtistID),
				Instrument: m.Instrument,
				Years:      m.Years,
			})
		}
	}
	if in.GenreIDs != nil {
		b.Genres = domain.Stubs[domain.Genre](in.GenreIDs)
	}
}

func applyGenre(g *domain.Genre, in domain.GenreInput) {
	if in.Name != nil {
		g.Name = *in.Name
	}
	if in.Year != nil {
		g.Year = in.Year
	}
}

func ptr[T any](v T) *T {
	return &v
}
