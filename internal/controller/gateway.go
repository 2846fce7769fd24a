package controller

import (
	"context"

	"github.com/lettucelabs/lettucectl/internal/engine"
)

// Gateway is the slice of the Engine client the controllers consume.
// Tests substitute a recording fake; production wiring passes
// *engine.Client.
type Gateway interface {
	Health(ctx context.Context) (*engine.HealthResponse, error)
	SetupStatus(ctx context.Context) (*engine.SetupStatusResponse, error)
	SetupComplete(ctx context.Context) (*engine.SetupCompleteResponse, error)

	SetProviderConfig(ctx context.Context, provider string, req engine.ProviderConfigRequest) error
	SetDefaultProvider(ctx context.Context, provider string) error
	DeleteProviderConfig(ctx context.Context, provider string) error
	SetEngineConfig(ctx context.Context, req engine.EngineConfigRequest) error
	SetBackgroundConfig(ctx context.Context, req engine.BackgroundConfigRequest) error
	SetMemoryConfig(ctx context.Context, req engine.MemoryConfigRequest) error
	SetSafetyConfig(ctx context.Context, req engine.SafetyConfigRequest) error
	SetResearchConfig(ctx context.Context, req engine.ResearchConfigRequest) error
	GetConfig(ctx context.Context) (*engine.ConfigDocument, error)

	Status(ctx context.Context) (*engine.StatusResponse, error)
	Usage(ctx context.Context) (*engine.UsageResponse, error)

	LoadCharacter(ctx context.Context, slug string) error
	UnloadCharacter(ctx context.Context, slug string) error
	Activity(ctx context.Context, slug string) (*engine.ActivityResponse, error)
	BoostCharacter(ctx context.Context, req engine.BoostRequest) (*engine.CharacterDocument, error)
	CreateCharacter(ctx context.Context, doc engine.CharacterDocument) (*engine.CharacterDocument, error)
	DeleteCharacter(ctx context.Context, slug string) error

	Chat(ctx context.Context, slug string, req engine.ChatRequest) (*engine.ChatResponse, error)
	ChatHistory(ctx context.Context, slug, userID string, limit int) ([]engine.HistoryMessage, error)
}

var _ Gateway = (*engine.Client)(nil)
