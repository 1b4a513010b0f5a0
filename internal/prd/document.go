package prd

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors returned (wrapped) by Editor operations.
var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("id already in use")
	ErrWrongKind   = errors.New("wrong entity kind")
	ErrInvalidEnum = errors.New("invalid value")
	ErrInvalid     = errors.New("invalid input")
)

// timeNow is a package-level variable for testability.
// Tests can replace this to control LastUpdated in assertions.
var timeNow = time.Now

// newID generates an identifier for entities created without one.
var newID = func() string { return uuid.New().String() }

// DefaultTitle is used when a document is created without a title.
const DefaultTitle = "Untitled PRD"

// NewDocument returns an empty document in Draft status with discovery
// mode "default".
func NewDocument(title string) *Document {
	if title == "" {
		title = DefaultTitle
	}
	doc := &Document{
		Meta: Meta{
			ID:            newID(),
			Title:         title,
			Status:        DocDraft,
			Version:       1,
			LastUpdated:   timeNow().UTC(),
			DiscoveryMode: DiscoveryDefault,
		},
	}
	normalize(doc)
	return doc
}

// ProblemNodeID is the stable id of the synthetic TL;DR problem node.
func (d *Document) ProblemNodeID() string { return d.Meta.ID + "-problem" }

// SolutionNodeID is the stable id of the synthetic TL;DR solution node.
func (d *Document) SolutionNodeID() string { return d.Meta.ID + "-solution" }

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d

	c.Context.Actors = slices.Clone(d.Context.Actors)
	c.Context.Glossary = make([]Term, len(d.Context.Glossary))
	for i, t := range d.Context.Glossary {
		t.BannedSynonyms = slices.Clone(t.BannedSynonyms)
		c.Context.Glossary[i] = t
	}
	c.Context.Competitors = make([]Competitor, len(d.Context.Competitors))
	for i, comp := range d.Context.Competitors {
		comp.Strengths = slices.Clone(comp.Strengths)
		comp.Weaknesses = slices.Clone(comp.Weaknesses)
		comp.FeatureGaps = slices.Clone(comp.FeatureGaps)
		c.Context.Competitors[i] = comp
	}

	c.Sections.TLDR.ValueProps = slices.Clone(d.Sections.TLDR.ValueProps)
	c.Sections.Background.MarketDrivers = slices.Clone(d.Sections.Background.MarketDrivers)
	c.Sections.Background.Blocks = slices.Clone(d.Sections.Background.Blocks)

	c.Sections.Goals = make([]Goal, len(d.Sections.Goals))
	for i, g := range d.Sections.Goals {
		g.Metrics = slices.Clone(g.Metrics)
		c.Sections.Goals[i] = g
	}
	c.Sections.Requirements = make([]Requirement, len(d.Sections.Requirements))
	for i, r := range d.Sections.Requirements {
		r.SecondaryActorIDs = slices.Clone(r.SecondaryActorIDs)
		r.RelatedGoalIDs = slices.Clone(r.RelatedGoalIDs)
		c.Sections.Requirements[i] = r
	}
	c.Sections.Milestones = make([]Milestone, len(d.Sections.Milestones))
	for i, m := range d.Sections.Milestones {
		m.ExitCriteria = slices.Clone(m.ExitCriteria)
		m.IncludedRequirementIDs = slices.Clone(m.IncludedRequirementIDs)
		c.Sections.Milestones[i] = m
	}

	normalize(&c)
	return &c
}

// normalize replaces nil slices with empty ones so JSON output shows []
// rather than null, and fills missing meta defaults.
func normalize(d *Document) {
	if d.Meta.Status == "" {
		d.Meta.Status = DocDraft
	}
	if d.Meta.DiscoveryMode == "" {
		d.Meta.DiscoveryMode = DiscoveryDefault
	}
	if d.Meta.Version == 0 {
		d.Meta.Version = 1
	}
	if d.Meta.Title == "" {
		d.Meta.Title = DefaultTitle
	}

	d.Context.Actors = orEmpty(d.Context.Actors)
	d.Context.Glossary = orEmpty(d.Context.Glossary)
	for i := range d.Context.Glossary {
		d.Context.Glossary[i].BannedSynonyms = orEmpty(d.Context.Glossary[i].BannedSynonyms)
	}
	d.Context.Competitors = orEmpty(d.Context.Competitors)
	for i := range d.Context.Competitors {
		c := &d.Context.Competitors[i]
		c.Strengths = orEmpty(c.Strengths)
		c.Weaknesses = orEmpty(c.Weaknesses)
		c.FeatureGaps = orEmpty(c.FeatureGaps)
	}

	d.Sections.TLDR.ValueProps = orEmpty(d.Sections.TLDR.ValueProps)
	d.Sections.Background.MarketDrivers = orEmpty(d.Sections.Background.MarketDrivers)
	d.Sections.Background.Blocks = orEmpty(d.Sections.Background.Blocks)

	d.Sections.Goals = orEmpty(d.Sections.Goals)
	for i := range d.Sections.Goals {
		d.Sections.Goals[i].Metrics = orEmpty(d.Sections.Goals[i].Metrics)
	}
	d.Sections.Requirements = orEmpty(d.Sections.Requirements)
	for i := range d.Sections.Requirements {
		r := &d.Sections.Requirements[i]
		r.SecondaryActorIDs = orEmpty(r.SecondaryActorIDs)
		r.RelatedGoalIDs = orEmpty(r.RelatedGoalIDs)
	}
	d.Sections.Milestones = orEmpty(d.Sections.Milestones)
	for i := range d.Sections.Milestones {
		m := &d.Sections.Milestones[i]
		m.ExitCriteria = orEmpty(m.ExitCriteria)
		m.IncludedRequirementIDs = orEmpty(m.IncludedRequirementIDs)
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// addUnique appends value unless it is already present.
// Returns the (possibly unchanged) slice and whether it was appended.
func addUnique(items []string, value string) ([]string, bool) {
	if slices.Contains(items, value) {
		return items, false
	}
	return append(items, value), true
}

// dedupe returns items with later duplicates removed, order preserved.
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out, _ = addUnique(out, item)
	}
	return out
}
