package gateway

import (
	"github.com/totegamma/music-gateway"
	"github.com/totegamma/music-gateway/internal/domain"
)

// Conversions from wire records to gateway entities. Foreign keys become
// stubs; nothing is expanded here.

func albumFromRecord(r musicgw.AlbumRecord) domain.Album {
	return domain.Album{
		ID:       r.ID,
		Name:     r.Name,
		Released: r.Released,
		Image:    r.Image,
		Tracks:   domain.Stubs[domain.Track](r.TrackIDs),
		Artists:  domain.Stubs[domain.Artist](r.ArtistsIDs),
		Bands:    domain.Stubs[domain.Band](r.BandsIDs),
		Genres:   domain.Stubs[domain.Genre](r.GenresIDs),
	}
}

func trackFromRecord(r musicgw.TrackRecord) domain.Track {
	t := domain.Track{
		ID:       r.ID,
		Title:    r.Title,
		Artists:  domain.Stubs[domain.Artist](r.ArtistsIDs),
		Bands:    domain.Stubs[domain.Band](r.BandsIDs),
		Genres:   domain.Stubs[domain.Genre](r.GenresIDs),
		Duration: r.Duration,
		Released: r.Released,
	}
	if r.AlbumID != nil && *r.AlbumID != "" {
		t.Album = domain.Stub[domain.Album](*r.AlbumID)
	}
	return t
}

func artistFromRecord(r musicgw.ArtistRecord) domain.Artist {
	return domain.Artist{
		ID:          r.ID,
		FirstName:   r.FirstName,
		SecondName:  r.SecondName,
		MiddleName:  r.MiddleName,
		BirthDate:   r.BirthDate,
		BirthPlace:  r.BirthPlace,
		Country:     r.Country,
		Bands:       domain.Stubs[domain.Band](r.BandsIDs),
		Instruments: r.Instruments,
	}
}

func bandFromRecord(r musicgw.BandRecord) domain.Band {
	members := make([]domain.MemberRef, 0, len(r.Members))
	for _, m := range r.Members {
		members = append(members, domain.MemberRef{
			Artist:     domain.Stub[domain.Artist](m.ArtistID),
			Instrument: m.Instrument,
			Years:      m.Years,
		})
	}
	return domain.Band{
		ID:      r.ID,
		Name:    r.Name,
		Origin:  r.Origin,
		Website: r.Website,
		Genres:  domain.Stubs[domain.Genre](r.GenresIDs),
		Members: members,
	}
}

func genreFromRecord(r musicgw.GenreRecord) domain.Genre {
	return domain.Genre{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Country:     r.Country,
		Year:        r.Year.Value,
	}
}

func userFromRecord(r musicgw.UserRecord) domain.User {
	return domain.User{
		ID:         r.ID,
		FirstName:  r.FirstName,
		SecondName: r.LastName,
		Password:   r.Password,
		Email:      r.Email,
	}
}

func membersToRecords(in []domain.MemberInput) []musicgw.MemberRecord {
	out := make([]musicgw.MemberRecord, 0, len(in))
	for _, m := range in {
		out = append(out, musicgw.MemberRecord{
			ArtistID:   m.ArtistID,
			Instrument: m.Instrument,
			Years:      m.Years,
		})
	}
	return out
}
