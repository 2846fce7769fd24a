package store

import (
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/wizard"
)

// Character-creation wizard steps, in order. "review" is terminal and
// exits via the explicit create action. Edit links on the review step
// may jump back to any earlier step.
const (
	CharacterStepMode        wizard.Step = "mode"
	CharacterStepIdentity    wizard.Step = "identity"
	CharacterStepPersonality wizard.Step = "personality"
	CharacterStepWorld       wizard.Step = "world"
	CharacterStepReview      wizard.Step = "review"
)

// CharacterFlow is the character wizard's step order
var CharacterFlow = wizard.NewFlow(
	CharacterStepMode,
	CharacterStepIdentity,
	CharacterStepPersonality,
	CharacterStepWorld,
	CharacterStepReview,
)

// CharacterDraft is the card being assembled across wizard steps,
// mirroring the create request field for field.
type CharacterDraft struct {
	// Identity
	Name         string
	Era          string
	Setting      string
	Role         string
	CoreIdentity string
	Backstory    string

	// Personality
	PersonalityTraits []string
	SpeechPatterns    engine.SpeechPatterns

	// World knowledge
	KnowledgeDomains    []string
	KnowledgeBoundaries []string
	ResearchSeeds       []string
	ResearchEnabled     bool

	// Physicality
	PhysicalDescription string
	PhysicalHabits      []string
	IdleBehaviors       []string
	TimeBehaviors       engine.TimeBehaviors

	// Emotions
	BaselineEmotions engine.BaselineEmotions

	// Per-character engine overrides
	Backend     string
	Model       string
	Temperature float64
}

// NewCharacterDraft returns an empty draft with default overrides
func NewCharacterDraft() CharacterDraft {
	return CharacterDraft{Temperature: 0.9}
}

// CharacterState backs the character-creation wizard
type CharacterState struct {
	Step   wizard.Step
	Saving bool
	Error  string

	// Boost (generative pre-fill from the first step)
	BoostSeed  string
	BoostName  string
	BoostEra   string
	Boosting   bool
	BoostError string
	// Boosted marks that the draft came from a generated pre-fill
	// rather than manual entry; provenance only, transitions are
	// unaffected.
	Boosted bool

	Draft CharacterDraft
}

// NewCharacterState returns the wizard's initial state
func NewCharacterState() CharacterState {
	return CharacterState{
		Step:  CharacterStepMode,
		Draft: NewCharacterDraft(),
	}
}

// Character wizard events

// CharacterSetStep moves the wizard and clears any stale error
type CharacterSetStep struct{ Step wizard.Step }
type CharacterSetSaving struct{ Saving bool }
type CharacterSetError struct{ Error string }
type CharacterSetBoostSeed struct{ Seed string }
type CharacterSetBoostName struct{ Name string }
type CharacterSetBoostEra struct{ Era string }
type CharacterSetBoosting struct{ Boosting bool }
type CharacterSetBoostError struct{ Error string }
type CharacterSetDraft struct{ Draft CharacterDraft }

// CharacterPopulateFromBoost overwrites every domain field at once
// from a generated document and forces the wizard onto the identity
// step.
type CharacterPopulateFromBoost struct{ Document engine.CharacterDocument }

// Apply transitions the character wizard state. Unrecognized events
// return the state unchanged.
func (s CharacterState) Apply(ev Event) CharacterState {
	switch ev := ev.(type) {
	case CharacterSetStep:
		s.Step = ev.Step
		s.Error = ""
	case CharacterSetSaving:
		s.Saving = ev.Saving
	case CharacterSetError:
		s.Error = ev.Error
	case CharacterSetBoostSeed:
		s.BoostSeed = ev.Seed
	case CharacterSetBoostName:
		s.BoostName = ev.Name
	case CharacterSetBoostEra:
		s.BoostEra = ev.Era
	case CharacterSetBoosting:
		s.Boosting = ev.Boosting
	case CharacterSetBoostError:
		s.BoostError = ev.Error
	case CharacterSetDraft:
		s.Draft = ev.Draft
	case CharacterPopulateFromBoost:
		s.Draft = draftFromDocument(ev.Document)
		s.Boosted = true
		s.Step = CharacterStepIdentity
	}
	return s
}

// draftFromDocument maps a generated character document into the
// editable draft, defaulting what the Engine left absent.
func draftFromDocument(doc engine.CharacterDocument) CharacterDraft {
	draft := CharacterDraft{
		Name:                doc.Name,
		Era:                 doc.Era,
		Setting:             doc.Setting,
		Role:                doc.Role,
		CoreIdentity:        doc.CoreIdentity,
		Backstory:           doc.Backstory,
		PersonalityTraits:   doc.PersonalityTraits,
		KnowledgeDomains:    doc.KnowledgeDomains,
		KnowledgeBoundaries: doc.KnowledgeBoundaries,
		ResearchSeeds:       doc.ResearchSeeds,
		ResearchEnabled:     doc.ResearchEnabled,
		PhysicalDescription: doc.PhysicalDescription,
		PhysicalHabits:      doc.PhysicalHabits,
		IdleBehaviors:       doc.IdleBehaviors,
		Backend:             doc.Backend,
		Model:               doc.Model,
		Temperature:         0.9,
	}
	if doc.SpeechPatterns != nil {
		draft.SpeechPatterns = *doc.SpeechPatterns
	}
	if doc.TimeBehaviors != nil {
		draft.TimeBehaviors = *doc.TimeBehaviors
	}
	if doc.BaselineEmotions != nil {
		draft.BaselineEmotions = *doc.BaselineEmotions
	}
	if doc.Temperature != nil {
		draft.Temperature = *doc.Temperature
	}
	return draft
}
