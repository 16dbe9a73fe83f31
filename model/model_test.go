package model

import (
	"errors"
	"testing"
)

func buildChainModel() *Model {
	return Build().
		Named("chain").
		Construct("Trust").
		Item("T1", 4.2, 1.1).
		Item("T2", 4.0, 1.0).
		Item("T3", 4.1, 1.2).
		Construct("Quality").
		Item("Q1", 4.5, 1.0).
		Item("Q2", 4.6, 1.1).
		Construct("Satisfaction").
		Item("S1", 5.0, 1.2).
		Item("S2", 5.1, 1.1).
		Path("Trust", "Quality", 0.6).
		Path("Quality", "Satisfaction", 0.5).
		Path("Trust", "Satisfaction", 0.3).
		Done()
}

func TestBuilderProducesValidModel(t *testing.T) {
	m := buildChainModel()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := len(m.Constructs); got != 3 {
		t.Errorf("Expected 3 constructs, got %d", got)
	}
	if got := m.ItemCount(); got != 7 {
		t.Errorf("Expected 7 items, got %d", got)
	}
	if m.Construct("Quality") == nil {
		t.Error("Expected to find construct Quality")
	}
	if m.Construct("Missing") != nil {
		t.Error("Expected nil for unknown construct")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		m    *Model
		want error
	}{
		{"empty", Build().Done(), ErrNoConstructs},
		{"no items", Build().Construct("A").Done(), ErrNoItems},
		{"duplicate construct", Build().
			Construct("A").Item("A1", 4, 1).
			Construct("A").Item("A2", 4, 1).
			Done(), ErrDuplicateName},
		{"duplicate item", Build().
			Construct("A").Item("X", 4, 1).
			Construct("B").Item("X", 4, 1).
			Done(), ErrDuplicateName},
		{"unknown path target", Build().
			Construct("A").Item("A1", 4, 1).
			Path("A", "B", 0.5).
			Done(), ErrUnknownConstruct},
		{"beta out of range", Build().
			Construct("A").Item("A1", 4, 1).
			Construct("B").Item("B1", 4, 1).
			Path("A", "B", 1.5).
			Done(), ErrBetaOutOfRange},
		{"self path", Build().
			Construct("A").Item("A1", 4, 1).
			Path("A", "A", 0.5).
			Done(), ErrSelfPath},
		{"duplicate path", Build().
			Construct("A").Item("A1", 4, 1).
			Construct("B").Item("B1", 4, 1).
			Path("A", "B", 0.5).
			Path("A", "B", 0.3).
			Done(), ErrDuplicatePath},
		{"bad item std", Build().
			Construct("A").Item("A1", 4, -1).
			Done(), ErrBadItemSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMediationChains(t *testing.T) {
	m := buildChainModel()
	chains := m.MediationChains()
	if len(chains) != 1 {
		t.Fatalf("Expected 1 chain, got %d", len(chains))
	}
	ch := chains[0]
	if ch.From != "Trust" || ch.Mediator != "Quality" || ch.To != "Satisfaction" {
		t.Errorf("Unexpected chain %+v", ch)
	}
}

func TestMediationChainsSkipCircular(t *testing.T) {
	m := Build().
		Construct("A").Item("A1", 4, 1).
		Construct("B").Item("B1", 4, 1).
		Path("A", "B", 0.5).
		Path("B", "A", 0.5).
		Done()
	if chains := m.MediationChains(); len(chains) != 0 {
		t.Errorf("Expected no chains for a 2-cycle, got %d", len(chains))
	}
}

func TestModerationCandidates(t *testing.T) {
	m := buildChainModel()
	pairs := m.ModerationCandidates()
	// Trust and Quality both predict Satisfaction, so each moderates the
	// other's path.
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 candidate pairs, got %d", len(pairs))
	}
	for _, p := range pairs {
		if p.Dependent != "Satisfaction" {
			t.Errorf("Expected dependent Satisfaction, got %s", p.Dependent)
		}
		if p.Independent == p.Moderator {
			t.Errorf("Independent and moderator must differ: %+v", p)
		}
	}
}

func TestModerationTaggedPath(t *testing.T) {
	m := Build().
		Construct("A").Item("A1", 4, 1).
		Construct("M").Item("M1", 4, 1).
		Construct("Y").Item("Y1", 4, 1).
		Path("A", "Y", 0.5).
		PathWithType("M", "Y", 0.2, true, PathModeration).
		Done()
	pairs := m.ModerationCandidates()
	found := false
	for _, p := range pairs {
		if p.Independent == "A" && p.Moderator == "M" && p.Dependent == "Y" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected tagged moderator pair, got %+v", pairs)
	}
}

func TestConstructOrder(t *testing.T) {
	m := buildChainModel()
	order, cyclic := m.ConstructOrder()
	if len(cyclic) != 0 {
		t.Fatalf("Expected no cyclic constructs, got %v", cyclic)
	}
	pos := make(map[string]int)
	for i, name := range order {
		pos[name] = i
	}
	if pos["Trust"] > pos["Quality"] || pos["Quality"] > pos["Satisfaction"] {
		t.Errorf("Topological order violated: %v", order)
	}
}

func TestConstructOrderCycle(t *testing.T) {
	m := Build().
		Construct("A").Item("A1", 4, 1).
		Construct("B").Item("B1", 4, 1).
		Path("A", "B", 0.4).
		Path("B", "A", 0.4).
		Done()
	order, cyclic := m.ConstructOrder()
	if len(cyclic) != 2 {
		t.Errorf("Expected both constructs cyclic, got %v", cyclic)
	}
	if len(order) != 2 {
		t.Errorf("Order must still cover every construct, got %v", order)
	}
}

func TestEndogenousConstructs(t *testing.T) {
	m := buildChainModel()
	endo := m.EndogenousConstructs()
	if len(endo) != 2 {
		t.Fatalf("Expected 2 endogenous constructs, got %v", endo)
	}
	for _, name := range endo {
		if name == "Trust" {
			t.Error("Trust is exogenous, must not be listed")
		}
	}
}

func TestItemBounds(t *testing.T) {
	it := ItemSpec{Name: "X", Mean: 4, StdDev: 1}
	if lo, hi := it.Bounds(7); lo != 1 || hi != 7 {
		t.Errorf("Default bounds = [%g, %g], want [1, 7]", lo, hi)
	}
	it.ScaleMin, it.ScaleMax = 0, 100
	if lo, hi := it.Bounds(7); lo != 0 || hi != 100 {
		t.Errorf("Override bounds = [%g, %g], want [0, 100]", lo, hi)
	}
}
