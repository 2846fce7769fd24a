package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/lettucelabs/lettucectl/internal/engine"
)

// fakeGateway records every call in order and delegates to optional
// per-operation hooks. Operations without a hook succeed with a zero
// payload.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	healthFn          func() (*engine.HealthResponse, error)
	setupStatusFn     func() (*engine.SetupStatusResponse, error)
	setupCompleteFn   func() (*engine.SetupCompleteResponse, error)
	setProviderFn     func(provider string, req engine.ProviderConfigRequest) error
	setDefaultFn      func(provider string) error
	deleteProviderFn  func(provider string) error
	setEngineFn       func(req engine.EngineConfigRequest) error
	setBackgroundFn   func(req engine.BackgroundConfigRequest) error
	setMemoryFn       func(req engine.MemoryConfigRequest) error
	setSafetyFn       func(req engine.SafetyConfigRequest) error
	setResearchFn     func(req engine.ResearchConfigRequest) error
	getConfigFn       func() (*engine.ConfigDocument, error)
	statusFn          func() (*engine.StatusResponse, error)
	usageFn           func() (*engine.UsageResponse, error)
	loadCharacterFn   func(slug string) error
	unloadCharacterFn func(slug string) error
	activityFn        func(slug string) (*engine.ActivityResponse, error)
	boostFn           func(req engine.BoostRequest) (*engine.CharacterDocument, error)
	createFn          func(doc engine.CharacterDocument) (*engine.CharacterDocument, error)
	deleteCharacterFn func(slug string) error
	chatFn            func(slug string, req engine.ChatRequest) (*engine.ChatResponse, error)
	chatHistoryFn     func(slug, userID string, limit int) ([]engine.HistoryMessage, error)
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeGateway) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) Health(ctx context.Context) (*engine.HealthResponse, error) {
	f.record("Health")
	if f.healthFn != nil {
		return f.healthFn()
	}
	return &engine.HealthResponse{Status: "ok"}, nil
}

func (f *fakeGateway) SetupStatus(ctx context.Context) (*engine.SetupStatusResponse, error) {
	f.record("SetupStatus")
	if f.setupStatusFn != nil {
		return f.setupStatusFn()
	}
	return &engine.SetupStatusResponse{}, nil
}

func (f *fakeGateway) SetupComplete(ctx context.Context) (*engine.SetupCompleteResponse, error) {
	f.record("SetupComplete")
	if f.setupCompleteFn != nil {
		return f.setupCompleteFn()
	}
	return &engine.SetupCompleteResponse{Status: "ok"}, nil
}

func (f *fakeGateway) SetProviderConfig(ctx context.Context, provider string, req engine.ProviderConfigRequest) error {
	f.record("SetProviderConfig " + provider)
	if f.setProviderFn != nil {
		return f.setProviderFn(provider, req)
	}
	return nil
}

func (f *fakeGateway) SetDefaultProvider(ctx context.Context, provider string) error {
	f.record("SetDefaultProvider " + provider)
	if f.setDefaultFn != nil {
		return f.setDefaultFn(provider)
	}
	return nil
}

func (f *fakeGateway) DeleteProviderConfig(ctx context.Context, provider string) error {
	f.record("DeleteProviderConfig " + provider)
	if f.deleteProviderFn != nil {
		return f.deleteProviderFn(provider)
	}
	return nil
}

func (f *fakeGateway) SetEngineConfig(ctx context.Context, req engine.EngineConfigRequest) error {
	f.record("SetEngineConfig")
	if f.setEngineFn != nil {
		return f.setEngineFn(req)
	}
	return nil
}

func (f *fakeGateway) SetBackgroundConfig(ctx context.Context, req engine.BackgroundConfigRequest) error {
	f.record("SetBackgroundConfig")
	if f.setBackgroundFn != nil {
		return f.setBackgroundFn(req)
	}
	return nil
}

func (f *fakeGateway) SetMemoryConfig(ctx context.Context, req engine.MemoryConfigRequest) error {
	f.record("SetMemoryConfig")
	if f.setMemoryFn != nil {
		return f.setMemoryFn(req)
	}
	return nil
}

func (f *fakeGateway) SetSafetyConfig(ctx context.Context, req engine.SafetyConfigRequest) error {
	f.record("SetSafetyConfig")
	if f.setSafetyFn != nil {
		return f.setSafetyFn(req)
	}
	return nil
}

func (f *fakeGateway) SetResearchConfig(ctx context.Context, req engine.ResearchConfigRequest) error {
	f.record("SetResearchConfig")
	if f.setResearchFn != nil {
		return f.setResearchFn(req)
	}
	return nil
}

func (f *fakeGateway) GetConfig(ctx context.Context) (*engine.ConfigDocument, error) {
	f.record("GetConfig")
	if f.getConfigFn != nil {
		return f.getConfigFn()
	}
	return &engine.ConfigDocument{}, nil
}

func (f *fakeGateway) Status(ctx context.Context) (*engine.StatusResponse, error) {
	f.record("Status")
	if f.statusFn != nil {
		return f.statusFn()
	}
	return &engine.StatusResponse{}, nil
}

func (f *fakeGateway) Usage(ctx context.Context) (*engine.UsageResponse, error) {
	f.record("Usage")
	if f.usageFn != nil {
		return f.usageFn()
	}
	return &engine.UsageResponse{}, nil
}

func (f *fakeGateway) LoadCharacter(ctx context.Context, slug string) error {
	f.record("LoadCharacter " + slug)
	if f.loadCharacterFn != nil {
		return f.loadCharacterFn(slug)
	}
	return nil
}

func (f *fakeGateway) UnloadCharacter(ctx context.Context, slug string) error {
	f.record("UnloadCharacter " + slug)
	if f.unloadCharacterFn != nil {
		return f.unloadCharacterFn(slug)
	}
	return nil
}

func (f *fakeGateway) Activity(ctx context.Context, slug string) (*engine.ActivityResponse, error) {
	f.record("Activity " + slug)
	if f.activityFn != nil {
		return f.activityFn(slug)
	}
	return &engine.ActivityResponse{}, nil
}

func (f *fakeGateway) BoostCharacter(ctx context.Context, req engine.BoostRequest) (*engine.CharacterDocument, error) {
	f.record("BoostCharacter")
	if f.boostFn != nil {
		return f.boostFn(req)
	}
	return &engine.CharacterDocument{}, nil
}

func (f *fakeGateway) CreateCharacter(ctx context.Context, doc engine.CharacterDocument) (*engine.CharacterDocument, error) {
	f.record("CreateCharacter")
	if f.createFn != nil {
		return f.createFn(doc)
	}
	return &doc, nil
}

func (f *fakeGateway) DeleteCharacter(ctx context.Context, slug string) error {
	f.record("DeleteCharacter " + slug)
	if f.deleteCharacterFn != nil {
		return f.deleteCharacterFn(slug)
	}
	return nil
}

func (f *fakeGateway) Chat(ctx context.Context, slug string, req engine.ChatRequest) (*engine.ChatResponse, error) {
	f.record("Chat " + slug)
	if f.chatFn != nil {
		return f.chatFn(slug, req)
	}
	return &engine.ChatResponse{}, nil
}

func (f *fakeGateway) ChatHistory(ctx context.Context, slug, userID string, limit int) ([]engine.HistoryMessage, error) {
	f.record("ChatHistory " + slug)
	if f.chatHistoryFn != nil {
		return f.chatHistoryFn(slug, userID, limit)
	}
	return nil, nil
}

var errDown = errors.New("failed to reach engine at http://127.0.0.1:8000: connection refused")
