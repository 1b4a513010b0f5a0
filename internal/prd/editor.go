package prd

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// location records where an id lives. goalID is set for metrics only.
type location struct {
	kind   Kind
	goalID string
}

// Editor is the single mutation gateway for a Document.
//
// It is not safe for concurrent use; the owning session serializes access.
// Every successful mutation stamps Meta.LastUpdated.
type Editor struct {
	doc     *Document
	index   map[string]location
	retired mapset.Set[string]
}

// NewEditor takes ownership of doc (a nil doc starts a new one) and builds
// the id index. Duplicate ids across any collection are rejected.
func NewEditor(doc *Document) (*Editor, error) {
	if doc == nil {
		doc = NewDocument("")
	}
	if doc.Meta.ID == "" {
		doc.Meta.ID = newID()
	}
	normalize(doc)

	e := &Editor{
		doc:     doc,
		index:   make(map[string]location),
		retired: mapset.NewThreadUnsafeSet[string](),
	}
	if err := e.reindex(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Editor) reindex() error {
	e.index = make(map[string]location)
	add := func(id string, loc location) error {
		if id == "" {
			return fmt.Errorf("%w: %s with empty id", ErrInvalid, loc.kind)
		}
		if prev, ok := e.index[id]; ok {
			return fmt.Errorf("%w: %s %q collides with %s", ErrDuplicateID, loc.kind, id, prev.kind)
		}
		e.index[id] = loc
		return nil
	}

	d := e.doc
	for _, a := range d.Context.Actors {
		if err := add(a.ID, location{kind: KindActor}); err != nil {
			return err
		}
	}
	for _, t := range d.Context.Glossary {
		if err := add(t.ID, location{kind: KindTerm}); err != nil {
			return err
		}
	}
	for _, c := range d.Context.Competitors {
		if err := add(c.ID, location{kind: KindCompetitor}); err != nil {
			return err
		}
	}
	for _, g := range d.Sections.Goals {
		if err := add(g.ID, location{kind: KindGoal}); err != nil {
			return err
		}
		for _, m := range g.Metrics {
			if err := add(m.ID, location{kind: KindMetric, goalID: g.ID}); err != nil {
				return err
			}
		}
	}
	for _, r := range d.Sections.Requirements {
		if err := add(r.ID, location{kind: KindRequirement}); err != nil {
			return err
		}
	}
	for _, m := range d.Sections.Milestones {
		if err := add(m.ID, location{kind: KindMilestone}); err != nil {
			return err
		}
	}
	for _, b := range d.Sections.Background.Blocks {
		if err := add(b.ID, location{kind: KindNarrative}); err != nil {
			return err
		}
	}
	return nil
}

// Document returns the live document. Callers must treat it as read-only;
// use Snapshot for a copy that can be held across mutations.
func (e *Editor) Document() *Document { return e.doc }

// Snapshot returns a deep copy of the current document.
func (e *Editor) Snapshot() *Document { return e.doc.Clone() }

// Lookup reports which collection an id lives in.
func (e *Editor) Lookup(id string) (Kind, bool) {
	loc, ok := e.index[id]
	return loc.kind, ok
}

// MetricOwner returns the id of the goal that owns metricID.
func (e *Editor) MetricOwner(metricID string) (string, bool) {
	loc, ok := e.index[metricID]
	if !ok || loc.kind != KindMetric {
		return "", false
	}
	return loc.goalID, true
}

func (e *Editor) touch() {
	e.doc.Meta.LastUpdated = timeNow().UTC()
}

// claimID resolves the id for a new entity: empty ids get a fresh one,
// ids in use or retired are rejected.
func (e *Editor) claimID(id string, kind Kind) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return newID(), nil
	}
	if prev, ok := e.index[id]; ok {
		return "", fmt.Errorf("%w: %s id %q already used by a %s", ErrDuplicateID, kind, id, prev.kind)
	}
	if e.retired.Contains(id) {
		return "", fmt.Errorf("%w: %s id %q was used by a deleted entity", ErrDuplicateID, kind, id)
	}
	return id, nil
}

func (e *Editor) retire(id string) {
	delete(e.index, id)
	e.retired.Add(id)
}

// expect checks that id exists and is of the given kind.
func (e *Editor) expect(id string, kind Kind) error {
	loc, ok := e.index[id]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	if loc.kind != kind {
		return fmt.Errorf("%w: %s is a %s, not a %s", ErrWrongKind, id, loc.kind, kind)
	}
	return nil
}

func (e *Editor) expectAll(ids []string, kind Kind) error {
	for _, id := range ids {
		if err := e.expect(id, kind); err != nil {
			return err
		}
	}
	return nil
}

// --- Meta ---

// SetTitle renames the document.
func (e *Editor) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	e.doc.Meta.Title = title
	e.touch()
	return nil
}

// SetStatus changes the document review status.
func (e *Editor) SetStatus(status DocStatus) error {
	if err := ValidateDocStatus(status); err != nil {
		return err
	}
	e.doc.Meta.Status = status
	e.touch()
	return nil
}

// SetDiscoveryMode changes whether assistant proposals may add entities.
func (e *Editor) SetDiscoveryMode(mode DiscoveryMode) error {
	if err := ValidateDiscoveryMode(mode); err != nil {
		return err
	}
	e.doc.Meta.DiscoveryMode = mode
	e.touch()
	return nil
}

// TLDRPatch holds partial TL;DR updates. Nil fields are left unchanged.
type TLDRPatch struct {
	Problem    *string
	Solution   *string
	ValueProps []string
}

// UpdateTLDR patches the TL;DR section.
func (e *Editor) UpdateTLDR(p TLDRPatch) {
	t := &e.doc.Sections.TLDR
	if p.Problem != nil {
		t.Problem = *p.Problem
	}
	if p.Solution != nil {
		t.Solution = *p.Solution
	}
	if p.ValueProps != nil {
		t.ValueProps = p.ValueProps
	}
	e.touch()
}

// BackgroundPatch holds partial background updates.
type BackgroundPatch struct {
	Context       *string
	MarketDrivers []string
}

// UpdateBackground patches the background context and market drivers.
func (e *Editor) UpdateBackground(p BackgroundPatch) {
	b := &e.doc.Sections.Background
	if p.Context != nil {
		b.Context = *p.Context
	}
	if p.MarketDrivers != nil {
		b.MarketDrivers = p.MarketDrivers
	}
	e.touch()
}
