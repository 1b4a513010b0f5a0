package prd

import (
	"fmt"
	"slices"
	"strings"
)

// ─── Goals ──────────────────────────────────────────────────────────────────

// GoalPatch holds partial goal updates.
type GoalPatch struct {
	Title       *string
	Description *string
	Priority    *GoalPriority
}

// AddGoal appends a goal together with any metrics it already carries.
func (e *Editor) AddGoal(g Goal) (Goal, error) {
	if strings.TrimSpace(g.Title) == "" {
		return Goal{}, fmt.Errorf("%w: goal title is required", ErrInvalid)
	}
	if err := ValidateGoalPriority(g.Priority); err != nil {
		return Goal{}, err
	}
	id, err := e.claimID(g.ID, KindGoal)
	if err != nil {
		return Goal{}, err
	}
	g.ID = id

	metrics := make([]Metric, 0, len(g.Metrics))
	seen := make(map[string]bool)
	for _, m := range g.Metrics {
		if err := ValidateMetricType(m.Type); err != nil {
			return Goal{}, err
		}
		mid, err := e.claimID(m.ID, KindMetric)
		if err != nil {
			return Goal{}, err
		}
		if seen[mid] || mid == id {
			return Goal{}, fmt.Errorf("%w: metric id %q repeated in goal", ErrDuplicateID, mid)
		}
		seen[mid] = true
		m.ID = mid
		metrics = append(metrics, m)
	}
	g.Metrics = metrics

	e.doc.Sections.Goals = append(e.doc.Sections.Goals, g)
	e.index[id] = location{kind: KindGoal}
	for _, m := range metrics {
		e.index[m.ID] = location{kind: KindMetric, goalID: id}
	}
	e.touch()
	return g, nil
}

// UpdateGoal applies a patch to an existing goal.
func (e *Editor) UpdateGoal(id string, p GoalPatch) error {
	g, err := e.goal(id)
	if err != nil {
		return err
	}
	next := *g
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return fmt.Errorf("%w: goal title is required", ErrInvalid)
		}
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Priority != nil {
		if err := ValidateGoalPriority(*p.Priority); err != nil {
			return err
		}
		next.Priority = *p.Priority
	}
	*g = next
	e.touch()
	return nil
}

// RemoveGoal deletes a goal and the metrics it owns. Requirements keep
// stale related-goal ids.
func (e *Editor) RemoveGoal(id string) error {
	g, err := e.goal(id)
	if err != nil {
		return err
	}
	for _, m := range g.Metrics {
		e.retire(m.ID)
	}
	e.doc.Sections.Goals = slices.DeleteFunc(e.doc.Sections.Goals, func(g Goal) bool { return g.ID == id })
	e.retire(id)
	e.touch()
	return nil
}

func (e *Editor) goal(id string) (*Goal, error) {
	if err := e.expect(id, KindGoal); err != nil {
		return nil, err
	}
	i := slices.IndexFunc(e.doc.Sections.Goals, func(g Goal) bool { return g.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: goal %s", ErrNotFound, id)
	}
	return &e.doc.Sections.Goals[i], nil
}

// ─── Metrics ────────────────────────────────────────────────────────────────

// MetricPatch holds partial metric updates.
type MetricPatch struct {
	Description *string
	Target      *string
	Baseline    *string
	Type        *MetricType
}

// AddMetric appends a metric to the goal that will own it.
func (e *Editor) AddMetric(goalID string, m Metric) (Metric, error) {
	g, err := e.goal(goalID)
	if err != nil {
		return Metric{}, err
	}
	if err := ValidateMetricType(m.Type); err != nil {
		return Metric{}, err
	}
	id, err := e.claimID(m.ID, KindMetric)
	if err != nil {
		return Metric{}, err
	}
	m.ID = id
	g.Metrics = append(g.Metrics, m)
	e.index[id] = location{kind: KindMetric, goalID: goalID}
	e.touch()
	return m, nil
}

// UpdateMetric patches a metric in place within its owning goal.
func (e *Editor) UpdateMetric(id string, p MetricPatch) error {
	m, err := e.metric(id)
	if err != nil {
		return err
	}
	if p.Type != nil {
		if err := ValidateMetricType(*p.Type); err != nil {
			return err
		}
		m.Type = *p.Type
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Target != nil {
		m.Target = *p.Target
	}
	if p.Baseline != nil {
		m.Baseline = *p.Baseline
	}
	e.touch()
	return nil
}

// MoveMetric re-parents a metric onto goalID. Metrics have exactly one
// owner, so the metric is removed from its previous goal. Returns false
// when goalID already owns it.
func (e *Editor) MoveMetric(metricID, goalID string) (bool, error) {
	owner, ok := e.MetricOwner(metricID)
	if !ok {
		return false, fmt.Errorf("%w: metric %s", ErrNotFound, metricID)
	}
	target, err := e.goal(goalID)
	if err != nil {
		return false, err
	}
	if owner == goalID {
		return false, nil
	}
	src, err := e.goal(owner)
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(src.Metrics, func(m Metric) bool { return m.ID == metricID })
	m := src.Metrics[i]
	src.Metrics = slices.Delete(src.Metrics, i, i+1)
	target.Metrics = append(target.Metrics, m)
	e.index[metricID] = location{kind: KindMetric, goalID: goalID}
	e.touch()
	return true, nil
}

// RemoveMetric deletes a metric from its owning goal.
func (e *Editor) RemoveMetric(id string) error {
	owner, ok := e.MetricOwner(id)
	if !ok {
		return fmt.Errorf("%w: metric %s", ErrNotFound, id)
	}
	g, err := e.goal(owner)
	if err != nil {
		return err
	}
	g.Metrics = slices.DeleteFunc(g.Metrics, func(m Metric) bool { return m.ID == id })
	e.retire(id)
	e.touch()
	return nil
}

func (e *Editor) metric(id string) (*Metric, error) {
	owner, ok := e.MetricOwner(id)
	if !ok {
		return nil, fmt.Errorf("%w: metric %s", ErrNotFound, id)
	}
	g, err := e.goal(owner)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(g.Metrics, func(m Metric) bool { return m.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: metric %s", ErrNotFound, id)
	}
	return &g.Metrics[i], nil
}

// ─── Requirements ───────────────────────────────────────────────────────────

// RequirementPatch holds partial requirement updates. Nil slices leave the
// corresponding reference set unchanged; an empty slice clears it.
type RequirementPatch struct {
	Title             *string
	Description       *string
	Priority          *RequirementPriority
	Type              *RequirementType
	Status            *RequirementStatus
	PrimaryActorID    *string
	SecondaryActorIDs []string
	RelatedGoalIDs    []string
}

// AddRequirement appends a requirement. Every actor and goal reference
// must resolve at the time of the call.
func (e *Editor) AddRequirement(r Requirement) (Requirement, error) {
	if strings.TrimSpace(r.Title) == "" {
		return Requirement{}, fmt.Errorf("%w: requirement title is required", ErrInvalid)
	}
	if err := ValidateRequirementPriority(r.Priority); err != nil {
		return Requirement{}, err
	}
	if err := ValidateRequirementType(r.Type); err != nil {
		return Requirement{}, err
	}
	if err := ValidateRequirementStatus(r.Status); err != nil {
		return Requirement{}, err
	}
	if r.PrimaryActorID != "" {
		if err := e.expect(r.PrimaryActorID, KindActor); err != nil {
			return Requirement{}, err
		}
	}
	if err := e.expectAll(r.SecondaryActorIDs, KindActor); err != nil {
		return Requirement{}, err
	}
	if err := e.expectAll(r.RelatedGoalIDs, KindGoal); err != nil {
		return Requirement{}, err
	}
	id, err := e.claimID(r.ID, KindRequirement)
	if err != nil {
		return Requirement{}, err
	}
	r.ID = id
	r.SecondaryActorIDs = dedupe(r.SecondaryActorIDs)
	r.RelatedGoalIDs = dedupe(r.RelatedGoalIDs)
	e.doc.Sections.Requirements = append(e.doc.Sections.Requirements, r)
	e.index[id] = location{kind: KindRequirement}
	e.touch()
	return r, nil
}

// UpdateRequirement applies a patch. References in the patch must resolve.
func (e *Editor) UpdateRequirement(id string, p RequirementPatch) error {
	r, err := e.requirement(id)
	if err != nil {
		return err
	}
	next := *r
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return fmt.Errorf("%w: requirement title is required", ErrInvalid)
		}
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Priority != nil {
		if err := ValidateRequirementPriority(*p.Priority); err != nil {
			return err
		}
		next.Priority = *p.Priority
	}
	if p.Type != nil {
		if err := ValidateRequirementType(*p.Type); err != nil {
			return err
		}
		next.Type = *p.Type
	}
	if p.Status != nil {
		if err := ValidateRequirementStatus(*p.Status); err != nil {
			return err
		}
		next.Status = *p.Status
	}
	if p.PrimaryActorID != nil {
		if *p.PrimaryActorID != "" {
			if err := e.expect(*p.PrimaryActorID, KindActor); err != nil {
				return err
			}
		}
		next.PrimaryActorID = *p.PrimaryActorID
	}
	if p.SecondaryActorIDs != nil {
		if err := e.expectAll(p.SecondaryActorIDs, KindActor); err != nil {
			return err
		}
		next.SecondaryActorIDs = dedupe(p.SecondaryActorIDs)
	}
	if p.RelatedGoalIDs != nil {
		if err := e.expectAll(p.RelatedGoalIDs, KindGoal); err != nil {
			return err
		}
		next.RelatedGoalIDs = dedupe(p.RelatedGoalIDs)
	}
	*r = next
	e.touch()
	return nil
}

// SetPrimaryActor overwrites the single-valued primary actor reference.
func (e *Editor) SetPrimaryActor(requirementID, actorID string) error {
	r, err := e.requirement(requirementID)
	if err != nil {
		return err
	}
	if err := e.expect(actorID, KindActor); err != nil {
		return err
	}
	r.PrimaryActorID = actorID
	e.touch()
	return nil
}

// AddSecondaryActor adds actorID to the requirement's secondary set.
// Adding an existing member is a no-op and reports false.
func (e *Editor) AddSecondaryActor(requirementID, actorID string) (bool, error) {
	r, err := e.requirement(requirementID)
	if err != nil {
		return false, err
	}
	if err := e.expect(actorID, KindActor); err != nil {
		return false, err
	}
	var added bool
	r.SecondaryActorIDs, added = addUnique(r.SecondaryActorIDs, actorID)
	if added {
		e.touch()
	}
	return added, nil
}

// AddRelatedGoal adds goalID to the requirement's related-goal set.
func (e *Editor) AddRelatedGoal(requirementID, goalID string) (bool, error) {
	r, err := e.requirement(requirementID)
	if err != nil {
		return false, err
	}
	if err := e.expect(goalID, KindGoal); err != nil {
		return false, err
	}
	var added bool
	r.RelatedGoalIDs, added = addUnique(r.RelatedGoalIDs, goalID)
	if added {
		e.touch()
	}
	return added, nil
}

// RemoveRequirement deletes a requirement. Milestones keep stale ids.
func (e *Editor) RemoveRequirement(id string) error {
	if err := e.expect(id, KindRequirement); err != nil {
		return err
	}
	e.doc.Sections.Requirements = slices.DeleteFunc(e.doc.Sections.Requirements,
		func(r Requirement) bool { return r.ID == id })
	e.retire(id)
	e.touch()
	return nil
}

// MoveRequirement swaps a requirement with its neighbour.
func (e *Editor) MoveRequirement(id string, dir Direction) error {
	reqs := e.doc.Sections.Requirements
	i := slices.IndexFunc(reqs, func(r Requirement) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: requirement %s", ErrNotFound, id)
	}
	if moved, err := swap(reqs, i, dir); err != nil || !moved {
		return err
	}
	e.touch()
	return nil
}

func (e *Editor) requirement(id string) (*Requirement, error) {
	if err := e.expect(id, KindRequirement); err != nil {
		return nil, err
	}
	i := slices.IndexFunc(e.doc.Sections.Requirements, func(r Requirement) bool { return r.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: requirement %s", ErrNotFound, id)
	}
	return &e.doc.Sections.Requirements[i], nil
}

// ─── Milestones ─────────────────────────────────────────────────────────────

// MilestonePatch holds partial milestone updates.
type MilestonePatch struct {
	Title                  *string
	TargetDate             *string
	ExitCriteria           []string
	IncludedRequirementIDs []string
}

// AddMilestone appends a milestone. Included requirements must resolve.
func (e *Editor) AddMilestone(m Milestone) (Milestone, error) {
	if strings.TrimSpace(m.Title) == "" {
		return Milestone{}, fmt.Errorf("%w: milestone title is required", ErrInvalid)
	}
	if err := e.expectAll(m.IncludedRequirementIDs, KindRequirement); err != nil {
		return Milestone{}, err
	}
	id, err := e.claimID(m.ID, KindMilestone)
	if err != nil {
		return Milestone{}, err
	}
	m.ID = id
	m.ExitCriteria = orEmpty(m.ExitCriteria)
	m.IncludedRequirementIDs = dedupe(m.IncludedRequirementIDs)
	e.doc.Sections.Milestones = append(e.doc.Sections.Milestones, m)
	e.index[id] = location{kind: KindMilestone}
	e.touch()
	return m, nil
}

// UpdateMilestone applies a patch to an existing milestone.
func (e *Editor) UpdateMilestone(id string, p MilestonePatch) error {
	m, err := e.milestone(id)
	if err != nil {
		return err
	}
	if p.IncludedRequirementIDs != nil {
		if err := e.expectAll(p.IncludedRequirementIDs, KindRequirement); err != nil {
			return err
		}
	}
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return fmt.Errorf("%w: milestone title is required", ErrInvalid)
		}
		m.Title = *p.Title
	}
	if p.TargetDate != nil {
		m.TargetDate = *p.TargetDate
	}
	if p.ExitCriteria != nil {
		m.ExitCriteria = p.ExitCriteria
	}
	if p.IncludedRequirementIDs != nil {
		m.IncludedRequirementIDs = dedupe(p.IncludedRequirementIDs)
	}
	e.touch()
	return nil
}

// IncludeRequirement adds requirementID to the milestone's included set.
func (e *Editor) IncludeRequirement(milestoneID, requirementID string) (bool, error) {
	m, err := e.milestone(milestoneID)
	if err != nil {
		return false, err
	}
	if err := e.expect(requirementID, KindRequirement); err != nil {
		return false, err
	}
	var added bool
	m.IncludedRequirementIDs, added = addUnique(m.IncludedRequirementIDs, requirementID)
	if added {
		e.touch()
	}
	return added, nil
}

// RemoveMilestone deletes a milestone.
func (e *Editor) RemoveMilestone(id string) error {
	if err := e.expect(id, KindMilestone); err != nil {
		return err
	}
	e.doc.Sections.Milestones = slices.DeleteFunc(e.doc.Sections.Milestones,
		func(m Milestone) bool { return m.ID == id })
	e.retire(id)
	e.touch()
	return nil
}

func (e *Editor) milestone(id string) (*Milestone, error) {
	if err := e.expect(id, KindMilestone); err != nil {
		return nil, err
	}
	i := slices.IndexFunc(e.doc.Sections.Milestones, func(m Milestone) bool { return m.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: milestone %s", ErrNotFound, id)
	}
	return &e.doc.Sections.Milestones[i], nil
}
