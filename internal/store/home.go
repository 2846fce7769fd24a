package store

import "github.com/lettucelabs/lettucectl/internal/engine"

// CharacterCard is one dashboard row. The slug is remote-owned; the
// client only ever reflects remote-reported state into Loaded.
type CharacterCard struct {
	Slug   string
	Name   string
	Role   string
	Era    string
	Loaded bool
}

// HomeState backs the home dashboard: connectivity, the character
// roster with per-row activity, and usage totals.
type HomeState struct {
	Loading bool
	Error   string

	Version    string
	Connected  bool
	NeedsSetup bool
	Characters []CharacterCard
	Usage      *engine.UsageResponse
	Activities map[string]engine.ActivityResponse

	// Per-row transient pointers; empty means no row is mid-operation
	TogglingSlug string
	SelectedSlug string
	DeletingSlug string
}

// NewHomeState returns the initial dashboard state (loading)
func NewHomeState() HomeState {
	return HomeState{Loading: true}
}

// Home dashboard events

type HomeSetLoading struct{ Loading bool }
type HomeSetError struct{ Error string }
type HomeSetHealth struct {
	Version   string
	Connected bool
}
type HomeSetNeedsSetup struct{ NeedsSetup bool }
type HomeSetCharacters struct{ Characters []CharacterCard }
type HomeSetUsage struct{ Usage *engine.UsageResponse }
type HomeSetActivity struct {
	Slug     string
	Activity engine.ActivityResponse
}
type HomeSetToggling struct{ Slug string }
type HomeToggleLoaded struct {
	Slug   string
	Loaded bool
}
type HomeSelectCharacter struct{ Slug string }
type HomeSetDeleting struct{ Slug string }
type HomeRemoveCharacter struct{ Slug string }

// Apply transitions the dashboard state. Unrecognized events return
// the state unchanged.
func (s HomeState) Apply(ev Event) HomeState {
	switch ev := ev.(type) {
	case HomeSetLoading:
		s.Loading = ev.Loading
	case HomeSetError:
		s.Error = ev.Error
	case HomeSetHealth:
		s.Version = ev.Version
		s.Connected = ev.Connected
	case HomeSetNeedsSetup:
		s.NeedsSetup = ev.NeedsSetup
	case HomeSetCharacters:
		s.Characters = ev.Characters
	case HomeSetUsage:
		s.Usage = ev.Usage
	case HomeSetActivity:
		activities := make(map[string]engine.ActivityResponse, len(s.Activities)+1)
		for k, v := range s.Activities {
			activities[k] = v
		}
		activities[ev.Slug] = ev.Activity
		s.Activities = activities
	case HomeSetToggling:
		s.TogglingSlug = ev.Slug
	case HomeToggleLoaded:
		cards := make([]CharacterCard, len(s.Characters))
		copy(cards, s.Characters)
		for i := range cards {
			if cards[i].Slug == ev.Slug {
				cards[i].Loaded = ev.Loaded
			}
		}
		s.Characters = cards
	case HomeSelectCharacter:
		s.SelectedSlug = ev.Slug
	case HomeSetDeleting:
		s.DeletingSlug = ev.Slug
	case HomeRemoveCharacter:
		cards := make([]CharacterCard, 0, len(s.Characters))
		for _, c := range s.Characters {
			if c.Slug != ev.Slug {
				cards = append(cards, c)
			}
		}
		s.Characters = cards
		s.SelectedSlug = ""
	}
	return s
}
