package memory

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
)

// StandardRepository serves the seeded catalog plus any extra standard pops
// loaded from a seed file.
type StandardRepository struct {
	items []pop.Pop
}

func NewStandardRepository(extra ...pop.Pop) (*StandardRepository, error) {
	items := SeedPops()
	seen := make(map[string]struct{}, len(items)+len(extra))
	for _, p := range items {
		seen[p.ID] = struct{}{}
	}
	for _, p := range extra {
		p.IsCustom = false
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed pop %q: %w", p.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("seed pop %q: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
		items = append(items, p)
	}
	return &StandardRepository{items: items}, nil
}

func (r *StandardRepository) ListStandard(_ context.Context) ([]pop.Pop, error) {
	return append([]pop.Pop(nil), r.items...), nil
}

type seedFile struct {
	Pops []seedPop `yaml:"pops"`
}

type seedPop struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Brand          string `yaml:"brand"`
	Flavor         string `yaml:"flavor"`
	PrimaryColor   string `yaml:"primary_color"`
	SecondaryColor string `yaml:"secondary_color"`
	AccentColor    string `yaml:"accent_color"`
	Description    string `yaml:"description"`
	Caffeine       *int   `yaml:"caffeine"`
	Calories       *int   `yaml:"calories"`
	Year           *int   `yaml:"year"`
}

// LoadSeedFile reads extra standard pops from a YAML document of the form
// "pops: [{id, name, brand, primary_color, ...}]". An empty path is a no-op.
func LoadSeedFile(path string) ([]pop.Pop, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) ([]pop.Pop, error) {
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}

	out := make([]pop.Pop, 0, len(doc.Pops))
	for _, p := range doc.Pops {
		out = append(out, pop.Pop{
			ID:             strings.TrimSpace(p.ID),
			Name:           strings.TrimSpace(p.Name),
			Brand:          strings.TrimSpace(p.Brand),
			Flavor:         strings.TrimSpace(p.Flavor),
			PrimaryColor:   p.PrimaryColor,
			SecondaryColor: p.SecondaryColor,
			AccentColor:    p.AccentColor,
			Description:    p.Description,
			Caffeine:       p.Caffeine,
			Calories:       p.Calories,
			Year:           p.Year,
		})
	}
	return out, nil
}
