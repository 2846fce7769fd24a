package controller

import (
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/engineconfig"
	"github.com/lettucelabs/lettucectl/internal/logging"
	"github.com/lettucelabs/lettucectl/internal/store"
	"go.uber.org/zap"
)

// Providers drives the LLM provider configuration editor
type Providers struct {
	*screen[store.ProvidersState]
	gw Gateway
}

// NewProviders returns a provider editor controller over gw
func NewProviders(gw Gateway) *Providers {
	return &Providers{screen: newScreen(store.NewProvidersState()), gw: gw}
}

// Load fetches and normalizes the Engine's current config. The fetch
// is the whole point of the screen, so its failure is surfaced.
func (p *Providers) Load() {
	p.dispatch(store.ProvidersSetLoading{Loading: true})
	p.dispatch(store.ProvidersSetError{})

	doc, err := p.gw.GetConfig(p.ctx)
	if err != nil {
		p.dispatch(store.ProvidersSetError{Error: engine.Detail(err)})
		p.dispatch(store.ProvidersSetLoading{})
		return
	}
	n := engineconfig.Normalize(doc)
	p.dispatch(store.ProvidersLoadConfig{Providers: n.Providers, DefaultBackend: n.DefaultBackend})
}

// UpdateProvider replaces one provider's editable configuration
func (p *Providers) UpdateProvider(id string, cfg engineconfig.ProviderConfig) {
	p.dispatch(store.ProvidersUpdateProvider{ID: id, Config: cfg})
}

// SetDefaultBackend records the provider chat should default to
func (p *Providers) SetDefaultBackend(provider string) {
	p.dispatch(store.ProvidersSetDefaultBackend{Provider: provider})
}

// Save pushes the edited provider set: one call per enabled provider,
// a delete for each provider disabled locally but still configured
// remotely, then the resolved default. Delete failures are swallowed
// since the provider may already be gone. Returns false when
// validation or a required call failed.
func (p *Providers) Save() bool {
	state := p.State()
	p.dispatch(store.ProvidersSetSaving{Saving: true})
	p.dispatch(store.ProvidersSetError{})
	defer p.dispatch(store.ProvidersSetSaving{})

	plan, err := engineconfig.BuildProviderPlan(state.Providers, state.DefaultBackend)
	if err != nil {
		p.dispatch(store.ProvidersSetError{Error: err.Error()})
		return false
	}

	for _, step := range plan.Configure {
		if err := p.gw.SetProviderConfig(p.ctx, step.ID, step.Request); err != nil {
			p.dispatch(store.ProvidersSetError{Error: engine.Detail(err)})
			return false
		}
	}
	for _, id := range plan.Delete {
		if err := p.gw.DeleteProviderConfig(p.ctx, id); err != nil {
			logging.Debug("provider delete skipped", zap.String("provider", id), zap.Error(err))
		}
	}
	if err := p.gw.SetDefaultProvider(p.ctx, plan.Default); err != nil {
		p.dispatch(store.ProvidersSetError{Error: engine.Detail(err)})
		return false
	}
	return true
}
