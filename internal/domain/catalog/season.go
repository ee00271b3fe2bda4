package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSeason = errors.New("catalog: unknown season")

// Season is the closed set of travel seasons a package can be priced for.
type Season uint8

const (
	Winter Season = iota + 1
	Summer
	Spring
	Autumn
)

// Seasons lists every season in declaration order.
var Seasons = []Season{Winter, Summer, Spring, Autumn}

func (s Season) String() string {
	switch s {
	case Winter:
		return "Winter"
	case Summer:
		return "Summer"
	case Spring:
		return "Spring"
	case Autumn:
		return "Autumn"
	default:
		return fmt.Sprintf("Season(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the declared seasons.
func (s Season) Valid() bool {
	return s >= Winter && s <= Autumn
}

// ParseSeason matches a season name case-insensitively.
func ParseSeason(raw string) (Season, error) {
	for _, s := range Seasons {
		if strings.EqualFold(strings.TrimSpace(raw), s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeason, raw)
}

func (s Season) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeason, uint8(s))
	}
	return json.Marshal(s.String())
}

func (s *Season) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSeason(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
