package settings

import (
	"errors"
	"fmt"
)

var ErrInvalidSettings = errors.New("invalid settings")

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

// Settings holds per-owner UI preferences. AutoSave also gates persistence
// mirroring of the lineup and custom pops.
type Settings struct {
	Theme           Theme
	AutoSave        bool
	ShowLineupStats bool
	PreferredView   View
}

func Default() Settings {
	return Settings{
		Theme:           ThemeDark,
		AutoSave:        true,
		ShowLineupStats: true,
		PreferredView:   ViewGrid,
	}
}

// Patch is a partial update; nil fields keep the current value.
type Patch struct {
	Theme           *Theme
	AutoSave        *bool
	ShowLineupStats *bool
	PreferredView   *View
}

func (s Settings) Apply(p Patch) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.AutoSave != nil {
		s.AutoSave = *p.AutoSave
	}
	if p.ShowLineupStats != nil {
		s.ShowLineupStats = *p.ShowLineupStats
	}
	if p.PreferredView != nil {
		s.PreferredView = *p.PreferredView
	}
	return s
}

func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalidSettings, s.Theme)
	}
	switch s.PreferredView {
	case ViewGrid, ViewList:
	default:
		return fmt.Errorf("%w: preferred view %q", ErrInvalidSettings, s.PreferredView)
	}
	return nil
}
