package roles

import (
	"fmt"
	"strings"
)

// ProfileEntry is one question/answer pair of a role's profile card.
type ProfileEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Role is the static description shown for a band.
type Role struct {
	Name            string         `json:"name"`
	LeadershipTitle string         `json:"leadership_title"`
	GameName        string         `json:"game_name"`
	Definition      string         `json:"definition"`
	GameDescription string         `json:"game_description"`
	Traits          []string       `json:"traits"`
	Profile         []ProfileEntry `json:"profile"`
	Color           string         `json:"color"`
}

// Catalog maps bands to roles. It is built once and never mutated.
type Catalog struct {
	roles [NumBands]Role
}

// DefaultOrder is the band order used when no order is configured.
var DefaultOrder = []string{"Pupil", "Scholar", "Servant", "Engineer", "Founder", "Artist"}

// DefaultCatalog returns the catalog in DefaultOrder.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultOrder)
	if err != nil {
		panic(err)
	}
	return c
}

// NewCatalog builds a catalog whose band i is the role named order[i]. The
// order must name each known role exactly once; names are case-insensitive.
func NewCatalog(order []string) (*Catalog, error) {
	if len(order) != NumBands {
		return nil, fmt.Errorf("role order must list %d roles, got %d", NumBands, len(order))
	}
	seen := make(map[string]bool, NumBands)
	c := &Catalog{}
	for i, name := range order {
		key := strings.ToLower(strings.TrimSpace(name))
		r, ok := definitions[key]
		if !ok {
			return nil, fmt.Errorf("unknown role %q", name)
		}
		if seen[key] {
			return nil, fmt.Errorf("role %q listed twice", name)
		}
		seen[key] = true
		c.roles[i] = r
	}
	return c, nil
}

// ForBand returns the role for b.
func (c *Catalog) ForBand(b Band) (Role, error) {
	if !b.Valid() {
		return Role{}, fmt.Errorf("band %d: %w", int(b), ErrBandOutOfRange)
	}
	return c.roles[b], nil
}

// Names returns the role names in band order.
func (c *Catalog) Names() []string {
	names := make([]string, NumBands)
	for i, r := range c.roles {
		names[i] = r.Name
	}
	return names
}

// Scores are the three survey dimensions.
type Scores struct {
	Freedom        int `json:"freedom"`
	Security       int `json:"security"`
	Responsibility int `json:"responsibility"`
}

// Validate checks every score is within [0, MaxScore].
func (s Scores) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"freedom", s.Freedom},
		{"security", s.Security},
		{"responsibility", s.Responsibility},
	} {
		if f.v < 0 || f.v > MaxScore {
			return fmt.Errorf("%s %d: %w", f.name, f.v, ErrScoreOutOfRange)
		}
	}
	return nil
}

// Result is a resolved survey outcome.
type Result struct {
	Band   Band   `json:"band"`
	Scores Scores `json:"scores"`
	Role   Role   `json:"role"`
}

// Resolve validates the scores and band and looks up the role.
func Resolve(c *Catalog, s Scores, b Band) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	r, err := c.ForBand(b)
	if err != nil {
		return Result{}, err
	}
	return Result{Band: b, Scores: s, Role: r}, nil
}
