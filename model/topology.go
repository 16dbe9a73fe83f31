package model

import "sort"

// MediationChain is a derived A -> B -> C triple discovered from two
// composed direct paths. It is never declared by the caller.
type MediationChain struct {
	From     string
	Mediator string
	To       string
}

// MediationChains derives every chain (A, B, C) such that paths A->B and
// B->C both exist and A != C. The caller's path-type tags are ignored.
// Results are ordered by path declaration order of the A->B leg, then the
// B->C leg, so output is deterministic.
func (m *Model) MediationChains() []MediationChain {
	var chains []MediationChain
	for _, first := range m.Paths {
		for _, second := range m.Paths {
			if second.From != first.To {
				continue
			}
			if second.To == first.From {
				// circular A -> B -> A
				continue
			}
			chains = append(chains, MediationChain{
				From:     first.From,
				Mediator: first.To,
				To:       second.To,
			})
		}
	}
	return chains
}

// ModerationPair is a candidate moderation test: does Moderator change the
// strength of the Independent -> Dependent relationship?
type ModerationPair struct {
	Independent string
	Dependent   string
	Moderator   string
}

// ModerationCandidates returns the moderation tests the validator should
// run. Two sources, deduplicated:
//
//  1. For each declared path X->Y, every other declared predictor M of Y is
//     a candidate moderator of X->Y. Bounding candidates to constructs that
//     share the downstream target keeps the pair count linear in paths
//     rather than cubic in constructs.
//  2. Paths tagged PathModeration: the tagged predictor is tested against
//     every other declared path into its target, even if it is the only
//     fellow predictor.
//
// Output order follows path declaration order.
func (m *Model) ModerationCandidates() []ModerationPair {
	seen := make(map[ModerationPair]bool)
	var pairs []ModerationPair

	add := func(p ModerationPair) {
		if p.Moderator == p.Independent || p.Moderator == p.Dependent {
			return
		}
		if seen[p] {
			return
		}
		seen[p] = true
		pairs = append(pairs, p)
	}

	for _, path := range m.Paths {
		for _, other := range m.Paths {
			if other.To != path.To || other.From == path.From {
				continue
			}
			add(ModerationPair{Independent: path.From, Dependent: path.To, Moderator: other.From})
		}
	}

	for _, path := range m.Paths {
		if path.Type != PathModeration {
			continue
		}
		for _, other := range m.Paths {
			if other.To != path.To || other.From == path.From {
				continue
			}
			add(ModerationPair{Independent: other.From, Dependent: other.To, Moderator: path.From})
		}
	}

	return pairs
}

// ConstructOrder returns construct names in topological order of the path
// graph (predictors before targets) so latent factors can be combined in a
// single pass. When the graph contains a cycle the unresolved constructs are
// appended in declaration order and returned as the second value so the
// caller can attach warnings.
func (m *Model) ConstructOrder() (order []string, cyclic []string) {
	indegree := make(map[string]int, len(m.Constructs))
	for i := range m.Constructs {
		indegree[m.Constructs[i].Name] = 0
	}
	for _, p := range m.Paths {
		indegree[p.To]++
	}

	// Kahn's algorithm seeded in declaration order for determinism.
	var queue []string
	for i := range m.Constructs {
		if indegree[m.Constructs[i].Name] == 0 {
			queue = append(queue, m.Constructs[i].Name)
		}
	}

	placed := make(map[string]bool, len(m.Constructs))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		placed[name] = true

		for _, p := range m.Paths {
			if p.From != name {
				continue
			}
			indegree[p.To]--
			if indegree[p.To] == 0 {
				queue = append(queue, p.To)
			}
		}
	}

	if len(order) < len(m.Constructs) {
		for i := range m.Constructs {
			name := m.Constructs[i].Name
			if !placed[name] {
				order = append(order, name)
				cyclic = append(cyclic, name)
			}
		}
	}

	return order, cyclic
}

// EndogenousConstructs returns the names of constructs that are the target
// of at least one declared path, sorted for stable iteration.
func (m *Model) EndogenousConstructs() []string {
	set := make(map[string]bool)
	for _, p := range m.Paths {
		set[p.To] = true
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
