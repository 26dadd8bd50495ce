package pop

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidPop = errors.New("invalid pop")
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Pop is a catalog entry. Standard pops are seeded at startup; custom pops
// are created by users and carry CreatedAt and BaseBrand.
type Pop struct {
	ID             string
	Name           string
	Brand          string
	Flavor         string
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
	IsCustom       bool
	Description    string
	Caffeine       *int
	Calories       *int
	Year           *int
	BaseBrand      string
	CreatedAt      time.Time
}

// CaffeineOrZero returns the caffeine content in mg, treating unknown as zero.
func (p Pop) CaffeineOrZero() int {
	if p.Caffeine == nil {
		return 0
	}
	return *p.Caffeine
}

// Validate checks the fields a pop needs before it can join the catalog.
func (p Pop) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPop)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPop)
	}
	if len([]rune(name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidPop)
	}
	if strings.TrimSpace(p.Brand) == "" {
		return fmt.Errorf("%w: brand is required", ErrInvalidPop)
	}
	if !hexColorPattern.MatchString(p.PrimaryColor) {
		return fmt.Errorf("%w: primary color %q must be #RRGGBB", ErrInvalidPop, p.PrimaryColor)
	}
	if !hexColorPattern.MatchString(p.SecondaryColor) {
		return fmt.Errorf("%w: secondary color %q must be #RRGGBB", ErrInvalidPop, p.SecondaryColor)
	}
	if p.AccentColor != "" && !hexColorPattern.MatchString(p.AccentColor) {
		return fmt.Errorf("%w: accent color %q must be #RRGGBB", ErrInvalidPop, p.AccentColor)
	}
	if p.Caffeine != nil && *p.Caffeine < 0 {
		return fmt.Errorf("%w: caffeine cannot be negative", ErrInvalidPop)
	}
	if p.Calories != nil && *p.Calories < 0 {
		return fmt.Errorf("%w: calories cannot be negative", ErrInvalidPop)
	}

	return nil
}

// Filter narrows a catalog listing. An empty Brand or "all" matches every brand.
type Filter struct {
	Brand      string
	Search     string
	CustomOnly bool
}

const AllBrands = "all"

func (f Filter) Active() bool {
	brand := strings.TrimSpace(f.Brand)
	return (brand != "" && brand != AllBrands) || strings.TrimSpace(f.Search) != "" || f.CustomOnly
}

// Matches reports whether p passes every criterion of the filter.
func (f Filter) Matches(p Pop) bool {
	brand := strings.TrimSpace(f.Brand)
	if brand != "" && brand != AllBrands && p.Brand != brand {
		return false
	}
	if f.CustomOnly && !p.IsCustom {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		(p.Flavor != "" && strings.Contains(strings.ToLower(p.Flavor), term))
}

// Ptr is a helper for the optional numeric fields.
func Ptr(v int) *int {
	return &v
}
