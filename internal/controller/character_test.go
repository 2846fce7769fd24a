package controller

import (
	"testing"

	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/store"
)

func TestCharacterAdvanceGateBlocksUnnamedIdentity(t *testing.T) {
	gw := &fakeGateway{}
	c := NewCharacter(gw)
	defer c.Close()

	c.Next() // mode -> identity
	if c.State().Step != store.CharacterStepIdentity {
		t.Fatalf("Step = %s", c.State().Step)
	}

	c.Next() // gate: name is empty
	st := c.State()
	if st.Step != store.CharacterStepIdentity {
		t.Error("empty name must leave the step unchanged")
	}
	if st.Error == "" {
		t.Error("failed gate must surface the reason")
	}
	if len(gw.recorded()) != 0 {
		t.Errorf("calls = %v, want none", gw.recorded())
	}
}

func TestCharacterAdvanceThroughAllSteps(t *testing.T) {
	c := NewCharacter(&fakeGateway{})
	defer c.Close()

	draft := c.State().Draft
	draft.Name = "Ada Lovelace"
	c.UpdateDraft(draft)

	for _, want := range []string{"identity", "personality", "world", "review"} {
		c.Next()
		if got := string(c.State().Step); got != want {
			t.Fatalf("Step = %s, want %s", got, want)
		}
	}

	// Review is terminal; create exits, not advance
	c.Next()
	if c.State().Step != store.CharacterStepReview {
		t.Error("terminal step must not advance")
	}
}

func TestCharacterJumpToForEditLinks(t *testing.T) {
	c := NewCharacter(&fakeGateway{})
	defer c.Close()

	c.JumpTo(store.CharacterStepWorld)
	if c.State().Step != store.CharacterStepWorld {
		t.Errorf("Step = %s", c.State().Step)
	}

	c.JumpTo("banana")
	if c.State().Step != store.CharacterStepWorld {
		t.Error("unknown step must be ignored")
	}
}

func TestCharacterBoostRequiresSeed(t *testing.T) {
	gw := &fakeGateway{}
	c := NewCharacter(gw)
	defer c.Close()

	c.Boost()

	st := c.State()
	if st.BoostError == "" {
		t.Error("empty seed must surface a boost error")
	}
	if len(gw.recorded()) != 0 {
		t.Errorf("calls = %v, want none", gw.recorded())
	}
}

func TestCharacterBoostPopulatesDraft(t *testing.T) {
	gw := &fakeGateway{
		boostFn: func(req engine.BoostRequest) (*engine.CharacterDocument, error) {
			if req.Seed != "the first programmer" || req.Era != "Victorian" {
				t.Errorf("boost request = %+v", req)
			}
			return &engine.CharacterDocument{Name: "Ada Lovelace", Era: "Victorian"}, nil
		},
	}
	c := NewCharacter(gw)
	defer c.Close()

	c.SetBoostSeed("the first programmer")
	c.SetBoostEra("Victorian")
	c.Boost()

	st := c.State()
	if st.Boosting || st.BoostError != "" {
		t.Errorf("Boosting=%v BoostError=%q", st.Boosting, st.BoostError)
	}
	if !st.Boosted || st.Step != store.CharacterStepIdentity {
		t.Errorf("Boosted=%v Step=%s", st.Boosted, st.Step)
	}
	if st.Draft.Name != "Ada Lovelace" {
		t.Errorf("Draft.Name = %q", st.Draft.Name)
	}
}

func TestCharacterBoostFailureStaysOnModeStep(t *testing.T) {
	gw := &fakeGateway{
		boostFn: func(req engine.BoostRequest) (*engine.CharacterDocument, error) { return nil, errDown },
	}
	c := NewCharacter(gw)
	defer c.Close()

	c.SetBoostSeed("a pirate chef")
	c.Boost()

	st := c.State()
	if st.BoostError == "" || st.Boosting {
		t.Errorf("BoostError=%q Boosting=%v", st.BoostError, st.Boosting)
	}
	if st.Step != store.CharacterStepMode {
		t.Error("failed boost must not move the wizard")
	}
}

func TestCharacterCreateValidatesName(t *testing.T) {
	gw := &fakeGateway{}
	c := NewCharacter(gw)
	defer c.Close()

	if c.Create() {
		t.Fatal("create without a name must fail")
	}
	if c.State().Error == "" || len(gw.recorded()) != 0 {
		t.Errorf("Error=%q calls=%v", c.State().Error, gw.recorded())
	}
}

func TestCharacterCreateSendsTrimmedDocument(t *testing.T) {
	var sent engine.CharacterDocument
	gw := &fakeGateway{
		createFn: func(doc engine.CharacterDocument) (*engine.CharacterDocument, error) {
			sent = doc
			return &doc, nil
		},
	}
	c := NewCharacter(gw)
	defer c.Close()

	draft := c.State().Draft
	draft.Name = "  Ada Lovelace  "
	draft.Backstory = "wrote the first algorithm"
	c.UpdateDraft(draft)

	if !c.Create() {
		t.Fatalf("Create failed: %s", c.State().Error)
	}
	if sent.Name != "Ada Lovelace" || sent.Backstory != "wrote the first algorithm" {
		t.Errorf("sent = %+v", sent)
	}
	if sent.Temperature != nil {
		t.Error("default temperature must be omitted from the payload")
	}
	if c.State().Saving {
		t.Error("saving flag must clear")
	}
}

func TestCharacterCreateSendsChangedTemperature(t *testing.T) {
	var sent engine.CharacterDocument
	gw := &fakeGateway{
		createFn: func(doc engine.CharacterDocument) (*engine.CharacterDocument, error) {
			sent = doc
			return &doc, nil
		},
	}
	c := NewCharacter(gw)
	defer c.Close()

	draft := c.State().Draft
	draft.Name = "Kai"
	draft.Temperature = 0.4
	c.UpdateDraft(draft)

	if !c.Create() {
		t.Fatalf("Create failed: %s", c.State().Error)
	}
	if sent.Temperature == nil || *sent.Temperature != 0.4 {
		t.Errorf("temperature = %v, want 0.4", sent.Temperature)
	}
}
