package controller

import (
	"strings"

	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/store"
	"github.com/lettucelabs/lettucectl/internal/wizard"
)

// Character drives the character-creation wizard: mode, identity,
// personality, world, review. Boost is only offered on the first
// step; review's edit links jump back freely.
type Character struct {
	*screen[store.CharacterState]
	gw Gateway
}

// NewCharacter returns a character wizard controller over gw
func NewCharacter(gw Gateway) *Character {
	return &Character{screen: newScreen(store.NewCharacterState()), gw: gw}
}

// stepValid is the per-step advance gate. Only identity has a
// precondition: the card cannot exist without a name.
func (c *Character) stepValid(step wizard.Step) bool {
	if step == store.CharacterStepIdentity {
		return strings.TrimSpace(c.State().Draft.Name) != ""
	}
	return true
}

// Next advances one step if the current step's gate passes. A failed
// gate surfaces the reason and makes no remote call.
func (c *Character) Next() {
	current := c.State().Step
	next, ok := store.CharacterFlow.Advance(current, c.stepValid)
	if !ok {
		if current == store.CharacterStepIdentity {
			c.dispatch(store.CharacterSetError{Error: "Character name is required."})
		}
		return
	}
	c.dispatch(store.CharacterSetStep{Step: next})
}

// Back returns to the previous step
func (c *Character) Back() {
	prev, ok := store.CharacterFlow.Back(c.State().Step)
	if !ok {
		return
	}
	c.dispatch(store.CharacterSetStep{Step: prev})
}

// JumpTo moves to any step unconditionally, for the review screen's
// edit links.
func (c *Character) JumpTo(step wizard.Step) {
	if !store.CharacterFlow.Contains(step) {
		return
	}
	c.dispatch(store.CharacterSetStep{Step: step})
}

// SetBoostSeed sets the seed description boost generates from
func (c *Character) SetBoostSeed(seed string) {
	c.dispatch(store.CharacterSetBoostSeed{Seed: seed})
}

// SetBoostName sets the optional name hint for boost
func (c *Character) SetBoostName(name string) {
	c.dispatch(store.CharacterSetBoostName{Name: name})
}

// SetBoostEra sets the optional era hint for boost
func (c *Character) SetBoostEra(era string) {
	c.dispatch(store.CharacterSetBoostEra{Era: era})
}

// UpdateDraft replaces the whole draft card
func (c *Character) UpdateDraft(draft store.CharacterDraft) {
	c.dispatch(store.CharacterSetDraft{Draft: draft})
}

// Boost asks the Engine to generate a full draft from the seed
// description, then overwrites every draft field and lands on the
// identity step for review.
func (c *Character) Boost() {
	state := c.State()
	seed := strings.TrimSpace(state.BoostSeed)
	if seed == "" {
		c.dispatch(store.CharacterSetBoostError{Error: "Seed description is required."})
		return
	}

	c.dispatch(store.CharacterSetBoosting{Boosting: true})
	c.dispatch(store.CharacterSetBoostError{})
	defer c.dispatch(store.CharacterSetBoosting{})

	doc, err := c.gw.BoostCharacter(c.ctx, engine.BoostRequest{
		Name: strings.TrimSpace(state.BoostName),
		Seed: seed,
		Era:  strings.TrimSpace(state.BoostEra),
	})
	if err != nil {
		c.dispatch(store.CharacterSetBoostError{Error: engine.Detail(err)})
		return
	}
	c.dispatch(store.CharacterPopulateFromBoost{Document: *doc})
}

// Create submits the draft card. Returns false when validation or the
// remote call failed; on success the caller navigates away.
func (c *Character) Create() bool {
	state := c.State()
	if strings.TrimSpace(state.Draft.Name) == "" {
		c.dispatch(store.CharacterSetError{Error: "Character name is required."})
		return false
	}

	c.dispatch(store.CharacterSetSaving{Saving: true})
	c.dispatch(store.CharacterSetError{})
	defer c.dispatch(store.CharacterSetSaving{})

	if _, err := c.gw.CreateCharacter(c.ctx, documentFromDraft(state.Draft)); err != nil {
		c.dispatch(store.CharacterSetError{Error: engine.Detail(err)})
		return false
	}
	return true
}

// documentFromDraft maps the draft into the create payload, trimming
// free-text fields and omitting what was left blank. Temperature is
// sent only when changed from the default so the Engine's own default
// stays in charge.
func documentFromDraft(d store.CharacterDraft) engine.CharacterDocument {
	doc := engine.CharacterDocument{
		Name:                strings.TrimSpace(d.Name),
		Era:                 strings.TrimSpace(d.Era),
		Setting:             strings.TrimSpace(d.Setting),
		Role:                strings.TrimSpace(d.Role),
		CoreIdentity:        strings.TrimSpace(d.CoreIdentity),
		Backstory:           strings.TrimSpace(d.Backstory),
		PersonalityTraits:   d.PersonalityTraits,
		KnowledgeDomains:    d.KnowledgeDomains,
		KnowledgeBoundaries: d.KnowledgeBoundaries,
		ResearchSeeds:       d.ResearchSeeds,
		ResearchEnabled:     d.ResearchEnabled,
		PhysicalDescription: strings.TrimSpace(d.PhysicalDescription),
		PhysicalHabits:      d.PhysicalHabits,
		IdleBehaviors:       d.IdleBehaviors,
		Backend:             strings.TrimSpace(d.Backend),
		Model:               strings.TrimSpace(d.Model),
	}
	if !emptySpeechPatterns(d.SpeechPatterns) {
		sp := d.SpeechPatterns
		doc.SpeechPatterns = &sp
	}
	if d.TimeBehaviors != (engine.TimeBehaviors{}) {
		tb := d.TimeBehaviors
		doc.TimeBehaviors = &tb
	}
	if d.BaselineEmotions != (engine.BaselineEmotions{}) {
		be := d.BaselineEmotions
		doc.BaselineEmotions = &be
	}
	if d.Temperature != 0.9 {
		t := d.Temperature
		doc.Temperature = &t
	}
	return doc
}

func emptySpeechPatterns(sp engine.SpeechPatterns) bool {
	return sp.Formality == "" && sp.Verbosity == "" && sp.TextStyle == "" &&
		sp.Dialect == "" && len(sp.Catchphrases) == 0 &&
		len(sp.VocabularyPreferences) == 0 && len(sp.VocabularyAvoidances) == 0 &&
		len(sp.FillerWords) == 0 && len(sp.ExampleQuotes) == 0
}
