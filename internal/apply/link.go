package apply

import (
	"fmt"

	"github.com/HendryAvila/prdgraph/internal/prd"
)

// expectKind reports whether id currently resolves to kind. Link handlers
// re-check both endpoints because the document may have changed since the
// assistant saw it.
func expectKind(ed *prd.Editor, id string, kind prd.Kind) bool {
	k, ok := ed.Lookup(id)
	return ok && k == kind
}

func notFound(label, id string) string {
	return fmt.Sprintf("%s %s not found.", label, id)
}

func (a *Applier) linkRelatedGoal(ed *prd.Editor, fromID, toID string) string {
	if !expectKind(ed, fromID, prd.KindRequirement) {
		return notFound("Requirement", fromID)
	}
	if !expectKind(ed, toID, prd.KindGoal) {
		return notFound("Goal", toID)
	}
	if _, err := ed.AddRelatedGoal(fromID, toID); err != nil {
		return describe("link requirement "+fromID, err)
	}
	return ""
}

func (a *Applier) linkPrimaryActor(ed *prd.Editor, fromID, toID string) string {
	if !expectKind(ed, fromID, prd.KindRequirement) {
		return notFound("Requirement", fromID)
	}
	if !expectKind(ed, toID, prd.KindActor) {
		return notFound("Actor", toID)
	}
	if err := ed.SetPrimaryActor(fromID, toID); err != nil {
		return describe("link requirement "+fromID, err)
	}
	return ""
}

func (a *Applier) linkSecondaryActor(ed *prd.Editor, fromID, toID string) string {
	if !expectKind(ed, fromID, prd.KindRequirement) {
		return notFound("Requirement", fromID)
	}
	if !expectKind(ed, toID, prd.KindActor) {
		return notFound("Actor", toID)
	}
	if _, err := ed.AddSecondaryActor(fromID, toID); err != nil {
		return describe("link requirement "+fromID, err)
	}
	return ""
}

func (a *Applier) linkIncludesRequirement(ed *prd.Editor, fromID, toID string) string {
	if !expectKind(ed, fromID, prd.KindMilestone) {
		return notFound("Milestone", fromID)
	}
	if !expectKind(ed, toID, prd.KindRequirement) {
		return notFound("Requirement", toID)
	}
	if _, err := ed.IncludeRequirement(fromID, toID); err != nil {
		return describe("link milestone "+fromID, err)
	}
	return ""
}

// linkSuccessMetric attaches a metric to a goal. Metrics have one owner, so
// linking a metric owned elsewhere moves it; linking to the current owner
// is a no-op.
func (a *Applier) linkSuccessMetric(ed *prd.Editor, fromID, toID string) string {
	if !expectKind(ed, fromID, prd.KindGoal) {
		return notFound("Goal", fromID)
	}
	if !expectKind(ed, toID, prd.KindMetric) {
		return "Metric not found for successMetric link."
	}
	if _, err := ed.MoveMetric(toID, fromID); err != nil {
		return describe("link goal "+fromID, err)
	}
	return ""
}
