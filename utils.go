package musicgw

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// FlexYear decodes a year sent either as a JSON number or as a numeric
// string. Empty strings, null, non-numeric strings, fractions and values
// outside the 32-bit range decode to no value.
type FlexYear struct {
	Value *int
}

func (y *FlexYear) UnmarshalJSON(data []byte) error {
	y.Value = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	v := int(f)
	y.Value = &v
	return nil
}

func (y FlexYear) MarshalJSON() ([]byte, error) {
	if y.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*y.Value)), nil
}

func (m *MemberRecord) UnmarshalJSON(data []byte) error {
	// older band services key the member by "id"
	var raw struct {
		ArtistID   string   `json:"artistId"`
		ID         string   `json:"id"`
		Instrument string   `json:"instrument"`
		Years      []string `json:"years"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.ArtistID = raw.ArtistID
	if m.ArtistID == "" {
		m.ArtistID = raw.ID
	}
	m.Instrument = raw.Instrument
	m.Years = raw.Years
	return nil
}

var birthDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// FormatBirthDate renders the date as DD/MM/YYYY, the format the artist
// service stores. Unparseable input is returned unchanged.
func FormatBirthDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}
