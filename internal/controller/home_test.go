package controller

import (
	"testing"

	"github.com/lettucelabs/lettucectl/internal/engine"
)

func twoCharacterStatus() (*engine.StatusResponse, error) {
	return &engine.StatusResponse{Characters: []engine.CharacterSummary{
		{Slug: "ada", Name: "Ada", Loaded: true},
		{Slug: "kai", Name: "Kai"},
	}}, nil
}

func TestHomeLoadPopulatesDashboard(t *testing.T) {
	gw := &fakeGateway{
		healthFn: func() (*engine.HealthResponse, error) {
			return &engine.HealthResponse{Status: "ok", Version: "0.4.1"}, nil
		},
		setupStatusFn: func() (*engine.SetupStatusResponse, error) {
			return &engine.SetupStatusResponse{NeedsSetup: false}, nil
		},
		statusFn: twoCharacterStatus,
		usageFn: func() (*engine.UsageResponse, error) {
			return &engine.UsageResponse{TotalCalls: 12}, nil
		},
	}
	h := NewHome(gw)
	defer h.Close()

	h.Load()

	s := h.State()
	if s.Loading || s.Error != "" {
		t.Fatalf("Loading=%v Error=%q", s.Loading, s.Error)
	}
	if !s.Connected || s.Version != "0.4.1" {
		t.Errorf("Connected=%v Version=%q", s.Connected, s.Version)
	}
	if len(s.Characters) != 2 {
		t.Fatalf("Characters = %+v", s.Characters)
	}
	if _, ok := s.Activities["ada"]; !ok {
		t.Error("loaded character should have an activity card")
	}
	if _, ok := s.Activities["kai"]; ok {
		t.Error("unloaded character should not be polled for activity")
	}
	if s.Usage == nil || s.Usage.TotalCalls != 12 {
		t.Errorf("Usage = %+v", s.Usage)
	}
}

func TestHomeLoadNonCriticalFailuresAreSwallowed(t *testing.T) {
	gw := &fakeGateway{
		setupStatusFn: func() (*engine.SetupStatusResponse, error) { return nil, errDown },
		statusFn:      func() (*engine.StatusResponse, error) { return nil, errDown },
		usageFn:       func() (*engine.UsageResponse, error) { return nil, errDown },
	}
	h := NewHome(gw)
	defer h.Close()

	h.Load()

	s := h.State()
	if !s.Connected {
		t.Error("healthy engine must report connected")
	}
	if s.Error != "" {
		t.Errorf("non-critical failures must not surface, got %q", s.Error)
	}
	if len(s.Characters) != 0 || s.Usage != nil {
		t.Errorf("Characters=%v Usage=%v, want empty", s.Characters, s.Usage)
	}
	if s.Loading {
		t.Error("loading flag must clear")
	}
}

func TestHomeLoadHealthFailureAborts(t *testing.T) {
	gw := &fakeGateway{
		healthFn: func() (*engine.HealthResponse, error) { return nil, errDown },
	}
	h := NewHome(gw)
	defer h.Close()

	h.Load()

	s := h.State()
	if s.Connected {
		t.Error("Connected must be false when health fails")
	}
	if s.Error == "" {
		t.Error("health failure must surface an error")
	}
	if s.Loading {
		t.Error("loading flag must clear on the abort path")
	}
	for _, call := range gw.recorded() {
		if call != "Health" {
			t.Errorf("unexpected call after failed health check: %s", call)
		}
	}
}

func TestHomeToggleFlipsOnlyAfterConfirmation(t *testing.T) {
	gw := &fakeGateway{statusFn: twoCharacterStatus}
	h := NewHome(gw)
	defer h.Close()
	h.Load()

	h.Toggle("kai")

	s := h.State()
	if !s.Characters[1].Loaded {
		t.Error("confirmed load must flip the flag")
	}
	if s.TogglingSlug != "" {
		t.Error("toggling pointer must clear")
	}

	// The newly loaded character gets an activity card
	if _, ok := s.Activities["kai"]; !ok {
		t.Error("activity should be fetched after a confirmed load")
	}
}

func TestHomeToggleFailureLeavesFlag(t *testing.T) {
	gw := &fakeGateway{
		statusFn:        twoCharacterStatus,
		loadCharacterFn: func(slug string) error { return errDown },
	}
	h := NewHome(gw)
	defer h.Close()
	h.Load()

	h.Toggle("kai")

	s := h.State()
	if s.Characters[1].Loaded {
		t.Error("flag must stay down when the engine never confirmed the load")
	}
	if s.Error == "" {
		t.Error("toggle failure must surface an error")
	}
	if s.TogglingSlug != "" {
		t.Error("toggling pointer must clear even on failure")
	}
}

func TestHomeToggleUnknownSlugIsNoop(t *testing.T) {
	gw := &fakeGateway{statusFn: twoCharacterStatus}
	h := NewHome(gw)
	defer h.Close()
	h.Load()
	before := len(gw.recorded())

	h.Toggle("nobody")

	if got := len(gw.recorded()); got != before {
		t.Error("unknown slug must not reach the gateway")
	}
}

func TestHomeDeleteRemovesRow(t *testing.T) {
	gw := &fakeGateway{statusFn: twoCharacterStatus}
	h := NewHome(gw)
	defer h.Close()
	h.Load()
	h.Select("ada")

	h.Delete("ada")

	s := h.State()
	if len(s.Characters) != 1 || s.Characters[0].Slug != "kai" {
		t.Errorf("Characters = %+v", s.Characters)
	}
	if s.SelectedSlug != "" || s.DeletingSlug != "" {
		t.Errorf("row pointers not cleared: selected=%q deleting=%q", s.SelectedSlug, s.DeletingSlug)
	}
}

func TestHomeDeleteFailureKeepsRow(t *testing.T) {
	gw := &fakeGateway{
		statusFn:          twoCharacterStatus,
		deleteCharacterFn: func(slug string) error { return errDown },
	}
	h := NewHome(gw)
	defer h.Close()
	h.Load()

	h.Delete("ada")

	s := h.State()
	if len(s.Characters) != 2 {
		t.Error("failed delete must keep the row")
	}
	if s.Error == "" || s.DeletingSlug != "" {
		t.Errorf("Error=%q DeletingSlug=%q", s.Error, s.DeletingSlug)
	}
}

func TestHomeCloseDiscardsLateResults(t *testing.T) {
	gw := &fakeGateway{statusFn: twoCharacterStatus}
	h := NewHome(gw)

	initial := h.State()
	h.Close()
	h.Load()

	s := h.State()
	if len(s.Characters) != len(initial.Characters) || s.Connected != initial.Connected {
		t.Error("results completing after Close must not mutate state")
	}
}
