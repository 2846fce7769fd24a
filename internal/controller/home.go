package controller

import (
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/logging"
	"github.com/lettucelabs/lettucectl/internal/store"
	"go.uber.org/zap"
)

// Home drives the dashboard: connectivity, the character roster with
// per-row activity, usage totals, and the row-level load/unload,
// select, and delete operations.
type Home struct {
	*screen[store.HomeState]
	gw Gateway
}

// NewHome returns a dashboard controller over gw
func NewHome(gw Gateway) *Home {
	return &Home{screen: newScreen(store.NewHomeState()), gw: gw}
}

// Load populates the dashboard. Health is the gate: if the Engine is
// unreachable nothing else is attempted and the failure is surfaced.
// The remaining fetches are best-effort; a fresh install legitimately
// has no characters, no usage, and no completed setup, so their
// failures leave the affected section empty rather than failing the
// whole screen.
func (h *Home) Load() {
	h.dispatch(store.HomeSetLoading{Loading: true})
	h.dispatch(store.HomeSetError{})
	defer h.dispatch(store.HomeSetLoading{})

	health, err := h.gw.Health(h.ctx)
	if err != nil {
		h.dispatch(store.HomeSetHealth{})
		h.dispatch(store.HomeSetError{Error: engine.Detail(err)})
		return
	}
	h.dispatch(store.HomeSetHealth{Version: health.Version, Connected: true})

	if setup, err := h.gw.SetupStatus(h.ctx); err == nil {
		h.dispatch(store.HomeSetNeedsSetup{NeedsSetup: setup.NeedsSetup})
	} else {
		logging.Debug("setup status unavailable", zap.Error(err))
	}

	var cards []store.CharacterCard
	if status, err := h.gw.Status(h.ctx); err == nil {
		cards = make([]store.CharacterCard, 0, len(status.Characters))
		for _, c := range status.Characters {
			cards = append(cards, store.CharacterCard{
				Slug:   c.Slug,
				Name:   c.Name,
				Role:   c.Role,
				Era:    c.Era,
				Loaded: c.Loaded,
			})
		}
		h.dispatch(store.HomeSetCharacters{Characters: cards})
	} else {
		logging.Debug("status unavailable", zap.Error(err))
	}

	// Sequential per-row fetches; a miss just omits that row's card
	for _, card := range cards {
		if !card.Loaded {
			continue
		}
		if activity, err := h.gw.Activity(h.ctx, card.Slug); err == nil {
			h.dispatch(store.HomeSetActivity{Slug: card.Slug, Activity: *activity})
		}
	}

	if usage, err := h.gw.Usage(h.ctx); err == nil {
		h.dispatch(store.HomeSetUsage{Usage: usage})
	} else {
		logging.Debug("usage unavailable", zap.Error(err))
	}
}

// Toggle loads or unloads the character at slug, flipping the local
// flag only after the Engine confirms. Loading spins up background
// loops remotely, so an unconfirmed flip would show loops that are
// not running.
func (h *Home) Toggle(slug string) {
	var loaded, found bool
	for _, c := range h.State().Characters {
		if c.Slug == slug {
			loaded, found = c.Loaded, true
			break
		}
	}
	if !found {
		return
	}

	h.dispatch(store.HomeSetToggling{Slug: slug})
	h.dispatch(store.HomeSetError{})
	defer h.dispatch(store.HomeSetToggling{})

	var err error
	if loaded {
		err = h.gw.UnloadCharacter(h.ctx, slug)
	} else {
		err = h.gw.LoadCharacter(h.ctx, slug)
	}
	if err != nil {
		h.dispatch(store.HomeSetError{Error: engine.Detail(err)})
		return
	}
	h.dispatch(store.HomeToggleLoaded{Slug: slug, Loaded: !loaded})

	if !loaded {
		if activity, err := h.gw.Activity(h.ctx, slug); err == nil {
			h.dispatch(store.HomeSetActivity{Slug: slug, Activity: *activity})
		}
	}
}

// Select marks the row the dashboard is focused on
func (h *Home) Select(slug string) {
	h.dispatch(store.HomeSelectCharacter{Slug: slug})
}

// Delete removes the character at slug. The row stays until the
// Engine confirms; on failure it returns to its interactive state
// with the error shown separately.
func (h *Home) Delete(slug string) {
	h.dispatch(store.HomeSetDeleting{Slug: slug})
	h.dispatch(store.HomeSetError{})
	defer h.dispatch(store.HomeSetDeleting{})

	if err := h.gw.DeleteCharacter(h.ctx, slug); err != nil {
		h.dispatch(store.HomeSetError{Error: engine.Detail(err)})
		return
	}
	h.dispatch(store.HomeRemoveCharacter{Slug: slug})
}
