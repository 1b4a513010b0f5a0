package prd

import (
	"fmt"
	"slices"
	"strings"
)

// ─── Actors ─────────────────────────────────────────────────────────────────

// ActorPatch holds partial actor updates. Nil fields are left unchanged.
type ActorPatch struct {
	Name        *string
	Description *string
	Role        *ActorRole
	Priority    *ActorPriority
}

// AddActor appends an actor. An empty ID is replaced with a generated one.
func (e *Editor) AddActor(a Actor) (Actor, error) {
	if strings.TrimSpace(a.Name) == "" {
		return Actor{}, fmt.Errorf("%w: actor name is required", ErrInvalid)
	}
	if err := ValidateActorRole(a.Role); err != nil {
		return Actor{}, err
	}
	if err := ValidateActorPriority(a.Priority); err != nil {
		return Actor{}, err
	}
	id, err := e.claimID(a.ID, KindActor)
	if err != nil {
		return Actor{}, err
	}
	a.ID = id
	e.doc.Context.Actors = append(e.doc.Context.Actors, a)
	e.index[id] = location{kind: KindActor}
	e.touch()
	return a, nil
}

// UpdateActor applies a patch to an existing actor.
func (e *Editor) UpdateActor(id string, p ActorPatch) error {
	i := slices.IndexFunc(e.doc.Context.Actors, func(a Actor) bool { return a.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: actor %s", ErrNotFound, id)
	}
	a := e.doc.Context.Actors[i]
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return fmt.Errorf("%w: actor name is required", ErrInvalid)
		}
		a.Name = *p.Name
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Role != nil {
		if err := ValidateActorRole(*p.Role); err != nil {
			return err
		}
		a.Role = *p.Role
	}
	if p.Priority != nil {
		if err := ValidateActorPriority(*p.Priority); err != nil {
			return err
		}
		a.Priority = *p.Priority
	}
	e.doc.Context.Actors[i] = a
	e.touch()
	return nil
}

// RemoveActor deletes an actor. Requirements that reference it keep the
// stale id; renderers show it as unassigned.
func (e *Editor) RemoveActor(id string) error {
	if err := e.expect(id, KindActor); err != nil {
		return err
	}
	e.doc.Context.Actors = slices.DeleteFunc(e.doc.Context.Actors, func(a Actor) bool { return a.ID == id })
	e.retire(id)
	e.touch()
	return nil
}

// ─── Glossary ───────────────────────────────────────────────────────────────

// TermPatch holds partial glossary updates. A nil BannedSynonyms leaves
// the list unchanged.
type TermPatch struct {
	Term           *string
	Definition     *string
	BannedSynonyms []string
}

// AddTerm appends a glossary term.
func (e *Editor) AddTerm(t Term) (Term, error) {
	if strings.TrimSpace(t.Term) == "" {
		return Term{}, fmt.Errorf("%w: term is required", ErrInvalid)
	}
	id, err := e.claimID(t.ID, KindTerm)
	if err != nil {
		return Term{}, err
	}
	t.ID = id
	t.BannedSynonyms = orEmpty(t.BannedSynonyms)
	e.doc.Context.Glossary = append(e.doc.Context.Glossary, t)
	e.index[id] = location{kind: KindTerm}
	e.touch()
	return t, nil
}

// UpdateTerm applies a patch to an existing term.
func (e *Editor) UpdateTerm(id string, p TermPatch) error {
	i := slices.IndexFunc(e.doc.Context.Glossary, func(t Term) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: term %s", ErrNotFound, id)
	}
	t := e.doc.Context.Glossary[i]
	if p.Term != nil {
		if strings.TrimSpace(*p.Term) == "" {
			return fmt.Errorf("%w: term is required", ErrInvalid)
		}
		t.Term = *p.Term
	}
	if p.Definition != nil {
		t.Definition = *p.Definition
	}
	if p.BannedSynonyms != nil {
		t.BannedSynonyms = dedupe(p.BannedSynonyms)
	}
	e.doc.Context.Glossary[i] = t
	e.touch()
	return nil
}

// RemoveTerm deletes a glossary term.
func (e *Editor) RemoveTerm(id string) error {
	if err := e.expect(id, KindTerm); err != nil {
		return err
	}
	e.doc.Context.Glossary = slices.DeleteFunc(e.doc.Context.Glossary, func(t Term) bool { return t.ID == id })
	e.retire(id)
	e.touch()
	return nil
}

// ─── Competitors ────────────────────────────────────────────────────────────

// CompetitorPatch holds partial competitor updates.
type CompetitorPatch struct {
	Name        *string
	URL         *string
	Analysis    *string
	Selected    *bool
	Strengths   []string
	Weaknesses  []string
	FeatureGaps []string
}

// AddCompetitor appends a competitor.
func (e *Editor) AddCompetitor(c Competitor) (Competitor, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Competitor{}, fmt.Errorf("%w: competitor name is required", ErrInvalid)
	}
	id, err := e.claimID(c.ID, KindCompetitor)
	if err != nil {
		return Competitor{}, err
	}
	c.ID = id
	c.Strengths = orEmpty(c.Strengths)
	c.Weaknesses = orEmpty(c.Weaknesses)
	c.FeatureGaps = orEmpty(c.FeatureGaps)
	e.doc.Context.Competitors = append(e.doc.Context.Competitors, c)
	e.index[id] = location{kind: KindCompetitor}
	e.touch()
	return c, nil
}

// UpdateCompetitor applies a patch to one competitor in place.
func (e *Editor) UpdateCompetitor(id string, p CompetitorPatch) error {
	i := slices.IndexFunc(e.doc.Context.Competitors, func(c Competitor) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: competitor %s", ErrNotFound, id)
	}
	c := e.doc.Context.Competitors[i]
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return fmt.Errorf("%w: competitor name is required", ErrInvalid)
		}
		c.Name = *p.Name
	}
	if p.URL != nil {
		c.URL = *p.URL
	}
	if p.Analysis != nil {
		c.Analysis = *p.Analysis
	}
	if p.Selected != nil {
		c.Selected = *p.Selected
	}
	if p.Strengths != nil {
		c.Strengths = p.Strengths
	}
	if p.Weaknesses != nil {
		c.Weaknesses = p.Weaknesses
	}
	if p.FeatureGaps != nil {
		c.FeatureGaps = p.FeatureGaps
	}
	e.doc.Context.Competitors[i] = c
	e.touch()
	return nil
}

// SetCompetitors replaces the whole competitor list. Ids that disappear are
// retired; new ids must not collide with anything else in the document.
func (e *Editor) SetCompetitors(list []Competitor) error {
	keep := make(map[string]bool, len(list))
	next := make([]Competitor, 0, len(list))
	for _, c := range list {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: competitor name is required", ErrInvalid)
		}
		if c.ID == "" {
			c.ID = newID()
		}
		if keep[c.ID] {
			return fmt.Errorf("%w: competitor id %q listed twice", ErrDuplicateID, c.ID)
		}
		if loc, ok := e.index[c.ID]; ok && loc.kind != KindCompetitor {
			return fmt.Errorf("%w: competitor id %q already used by a %s", ErrDuplicateID, c.ID, loc.kind)
		}
		if _, ok := e.index[c.ID]; !ok && e.retired.Contains(c.ID) {
			return fmt.Errorf("%w: competitor id %q was used by a deleted entity", ErrDuplicateID, c.ID)
		}
		keep[c.ID] = true
		c.Strengths = orEmpty(c.Strengths)
		c.Weaknesses = orEmpty(c.Weaknesses)
		c.FeatureGaps = orEmpty(c.FeatureGaps)
		next = append(next, c)
	}

	for _, old := range e.doc.Context.Competitors {
		if !keep[old.ID] {
			e.retire(old.ID)
		}
	}
	for id := range keep {
		e.index[id] = location{kind: KindCompetitor}
	}
	e.doc.Context.Competitors = next
	e.touch()
	return nil
}

// ToggleCompetitor flips the selected flag of one competitor.
func (e *Editor) ToggleCompetitor(id string) error {
	i := slices.IndexFunc(e.doc.Context.Competitors, func(c Competitor) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: competitor %s", ErrNotFound, id)
	}
	e.doc.Context.Competitors[i].Selected = !e.doc.Context.Competitors[i].Selected
	e.touch()
	return nil
}

// RemoveCompetitor deletes a competitor.
func (e *Editor) RemoveCompetitor(id string) error {
	if err := e.expect(id, KindCompetitor); err != nil {
		return err
	}
	e.doc.Context.Competitors = slices.DeleteFunc(e.doc.Context.Competitors, func(c Competitor) bool { return c.ID == id })
	e.retire(id)
	e.touch()
	return nil
}

// ─── Narrative blocks ───────────────────────────────────────────────────────

// AddNarrativeBlock appends a background block.
func (e *Editor) AddNarrativeBlock(b NarrativeBlock) (NarrativeBlock, error) {
	if err := ValidateBlockType(b.Type); err != nil {
		return NarrativeBlock{}, err
	}
	id, err := e.claimID(b.ID, KindNarrative)
	if err != nil {
		return NarrativeBlock{}, err
	}
	b.ID = id
	e.doc.Sections.Background.Blocks = append(e.doc.Sections.Background.Blocks, b)
	e.index[id] = location{kind: KindNarrative}
	e.touch()
	return b, nil
}

// UpdateNarrativeBlock replaces the content of a block.
func (e *Editor) UpdateNarrativeBlock(id, content string) error {
	blocks := e.doc.Sections.Background.Blocks
	i := slices.IndexFunc(blocks, func(b NarrativeBlock) bool { return b.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: narrative block %s", ErrNotFound, id)
	}
	blocks[i].Content = content
	e.touch()
	return nil
}

// RemoveNarrativeBlock deletes a block.
func (e *Editor) RemoveNarrativeBlock(id string) error {
	if err := e.expect(id, KindNarrative); err != nil {
		return err
	}
	e.doc.Sections.Background.Blocks = slices.DeleteFunc(e.doc.Sections.Background.Blocks,
		func(b NarrativeBlock) bool { return b.ID == id })
	e.retire(id)
	e.touch()
	return nil
}

// MoveNarrativeBlock swaps a block with its neighbour. Moving past either
// end is a no-op.
func (e *Editor) MoveNarrativeBlock(id string, dir Direction) error {
	blocks := e.doc.Sections.Background.Blocks
	i := slices.IndexFunc(blocks, func(b NarrativeBlock) bool { return b.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: narrative block %s", ErrNotFound, id)
	}
	if moved, err := swap(blocks, i, dir); err != nil || !moved {
		return err
	}
	e.touch()
	return nil
}

// swap exchanges items[i] with its neighbour in direction dir.
func swap[T any](items []T, i int, dir Direction) (bool, error) {
	var j int
	switch dir {
	case Up:
		j = i - 1
	case Down:
		j = i + 1
	default:
		return false, fmt.Errorf("%w: direction %q: must be up or down", ErrInvalidEnum, dir)
	}
	if j < 0 || j >= len(items) {
		return false, nil
	}
	items[i], items[j] = items[j], items[i]
	return true, nil
}
