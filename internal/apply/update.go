package apply

import (
	"fmt"

	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

func (a *Applier) updateActor(ed *prd.Editor, id string, patch *contract.Patch) string {
	if patch.Title != nil && a.policies.ActorPolicy.Blocks(*patch.Title) {
		return fmt.Sprintf("Actor name %q is blocked by policy.", *patch.Title)
	}
	var data actorData
	if err := decodeData(patch.Data, &data); err != nil {
		return invalidData("actor "+id, err)
	}
	err := ed.UpdateActor(id, prd.ActorPatch{
		Name:        patch.Title,
		Description: patch.Description,
		Role:        data.Role,
		Priority:    data.Priority,
	})
	if err != nil {
		return describe("update actor "+id, err)
	}
	return ""
}

func (a *Applier) updateTerm(ed *prd.Editor, id string, patch *contract.Patch) string {
	if patch.Title != nil && a.policies.TermPolicy.Blocks(*patch.Title) {
		return fmt.Sprintf("Glossary term %q is blocked by policy.", *patch.Title)
	}
	var data termData
	if err := decodeData(patch.Data, &data); err != nil {
		return invalidData("term "+id, err)
	}
	err := ed.UpdateTerm(id, prd.TermPatch{
		Term:           patch.Title,
		Definition:     patch.Description,
		BannedSynonyms: data.BannedSynonyms,
	})
	if err != nil {
		return describe("update term "+id, err)
	}
	return ""
}

func (a *Applier) updateGoal(ed *prd.Editor, id string, patch *contract.Patch) string {
	var data goalData
	if err := decodeData(patch.Data, &data); err != nil {
		return invalidData("goal "+id, err)
	}
	err := ed.UpdateGoal(id, prd.GoalPatch{
		Title:       patch.Title,
		Description: patch.Description,
		Priority:    data.Priority,
	})
	if err != nil {
		return describe("update goal "+id, err)
	}
	return ""
}

// updateMetric requires the owning goal id so a proposal cannot silently
// edit a metric it believes belongs elsewhere.
func (a *Applier) updateMetric(ed *prd.Editor, id string, patch *contract.Patch) string {
	var data metricData
	if err := decodeData(patch.Data, &data); err != nil {
		return invalidData("metric "+id, err)
	}
	if data.GoalID == "" {
		return "Metric update missing goalId."
	}
	if kind, ok := ed.Lookup(data.GoalID); !ok || kind != prd.KindGoal {
		return fmt.Sprintf("Goal %s not found for metric update.", data.GoalID)
	}
	if owner, _ := ed.MetricOwner(id); owner != data.GoalID {
		return fmt.Sprintf("Metric %s belongs to goal %s, not %s.", id, owner, data.GoalID)
	}
	err := ed.UpdateMetric(id, prd.MetricPatch{
		Description: patch.Title,
		Target:      data.Target,
		Baseline:    data.Baseline,
		Type:        data.Type,
	})
	if err != nil {
		return describe("update metric "+id, err)
	}
	return ""
}

func (a *Applier) updateRequirement(ed *prd.Editor, id string, patch *contract.Patch) string {
	var data requirementData
	if err := decodeData(patch.Data, &data); err != nil {
		return invalidData("requirement "+id, err)
	}
	err := ed.UpdateRequirement(id, prd.RequirementPatch{
		Title:             patch.Title,
		Description:       patch.Description,
		Priority:          data.Priority,
		Type:              data.Type,
		Status:            data.Status,
		PrimaryActorID:    data.PrimaryActorID,
		SecondaryActorIDs: data.SecondaryActorIDs,
		RelatedGoalIDs:    data.RelatedGoalIDs,
	})
	if err != nil {
		return describe("update requirement "+id, err)
	}
	return ""
}

func (a *Applier) updateMilestone(ed *prd.Editor, id string, patch *contract.Patch) string {
	var data milestoneData
	if err := decodeData(patch.Data, &data); err != nil {
		return invalidData("milestone "+id, err)
	}
	err := ed.UpdateMilestone(id, prd.MilestonePatch{
		Title:                  patch.Title,
		TargetDate:             data.TargetDate,
		ExitCriteria:           data.ExitCriteria,
		IncludedRequirementIDs: data.IncludedRequirementIDs,
	})
	if err != nil {
		return describe("update milestone "+id, err)
	}
	return ""
}

func (a *Applier) updateCompetitor(ed *prd.Editor, id string, patch *contract.Patch) string {
	var data competitorData
	if err := decodeData(patch.Data, &data); err != nil {
		return invalidData("competitor "+id, err)
	}
	analysis := data.Analysis
	if analysis == nil {
		analysis = patch.Description
	}
	err := ed.UpdateCompetitor(id, prd.CompetitorPatch{
		Name:        patch.Title,
		URL:         data.URL,
		Analysis:    analysis,
		Selected:    data.Selected,
		Strengths:   data.Strengths,
		Weaknesses:  data.Weaknesses,
		FeatureGaps: data.FeatureGaps,
	})
	if err != nil {
		return describe("update competitor "+id, err)
	}
	return ""
}

// updateNarrative only touches block content; titles and order stay under
// direct user control.
func (a *Applier) updateNarrative(ed *prd.Editor, id string, patch *contract.Patch) string {
	if patch.Description == nil {
		return fmt.Sprintf("Narrative update for %s needs a description.", id)
	}
	if err := ed.UpdateNarrativeBlock(id, *patch.Description); err != nil {
		return describe("update narrative block "+id, err)
	}
	return ""
}
