package apply

import (
	"fmt"

	"github.com/HendryAvila/prdgraph/internal/contract"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

func (a *Applier) addActor(ed *prd.Editor, node *contract.NodeDraft) string {
	if a.policies.ActorPolicy.Blocks(node.Title) {
		return fmt.Sprintf("Actor name %q is blocked by policy.", node.Title)
	}
	var data actorData
	if err := decodeData(node.Data, &data); err != nil {
		return invalidData(fmt.Sprintf("actor %q", node.Title), err)
	}
	_, err := ed.AddActor(prd.Actor{
		ID:          node.ID,
		Name:        node.Title,
		Description: node.Description,
		Role:        valueOr(data.Role, prd.RoleUser),
		Priority:    valueOr(data.Priority, prd.ActorSecondary),
	})
	if err != nil {
		return describe(fmt.Sprintf("add actor %q", node.Title), err)
	}
	return ""
}

func (a *Applier) addTerm(ed *prd.Editor, node *contract.NodeDraft) string {
	if a.policies.TermPolicy.Blocks(node.Title) {
		return fmt.Sprintf("Glossary term %q is blocked by policy.", node.Title)
	}
	var data termData
	if err := decodeData(node.Data, &data); err != nil {
		return invalidData(fmt.Sprintf("term %q", node.Title), err)
	}
	_, err := ed.AddTerm(prd.Term{
		ID:             node.ID,
		Term:           node.Title,
		Definition:     node.Description,
		BannedSynonyms: data.BannedSynonyms,
	})
	if err != nil {
		return describe(fmt.Sprintf("add term %q", node.Title), err)
	}
	return ""
}

func (a *Applier) addGoal(ed *prd.Editor, node *contract.NodeDraft) string {
	var data goalData
	if err := decodeData(node.Data, &data); err != nil {
		return invalidData(fmt.Sprintf("goal %q", node.Title), err)
	}
	_, err := ed.AddGoal(prd.Goal{
		ID:          node.ID,
		Title:       node.Title,
		Description: node.Description,
		Priority:    valueOr(data.Priority, prd.GoalMedium),
	})
	if err != nil {
		return describe(fmt.Sprintf("add goal %q", node.Title), err)
	}
	return ""
}

func (a *Applier) addMetric(ed *prd.Editor, node *contract.NodeDraft) string {
	var data metricData
	if err := decodeData(node.Data, &data); err != nil {
		return invalidData(fmt.Sprintf("metric %q", node.Title), err)
	}
	if data.GoalID == "" || data.Target == nil || data.Type == nil {
		return "Metric data is incomplete; expected goalId, target, and type."
	}
	if kind, ok := ed.Lookup(data.GoalID); !ok || kind != prd.KindGoal {
		return fmt.Sprintf("Goal %s not found for metric.", data.GoalID)
	}
	_, err := ed.AddMetric(data.GoalID, prd.Metric{
		ID:          node.ID,
		Description: node.Title,
		Target:      *data.Target,
		Baseline:    valueOr(data.Baseline, ""),
		Type:        *data.Type,
	})
	if err != nil {
		return describe(fmt.Sprintf("add metric %q", node.Title), err)
	}
	return ""
}

func (a *Applier) addRequirement(ed *prd.Editor, node *contract.NodeDraft) string {
	var data requirementData
	if err := decodeData(node.Data, &data); err != nil {
		return invalidData(fmt.Sprintf("requirement %q", node.Title), err)
	}
	_, err := ed.AddRequirement(prd.Requirement{
		ID:                node.ID,
		Title:             node.Title,
		Description:       node.Description,
		Priority:          valueOr(data.Priority, prd.P2),
		Type:              valueOr(data.Type, prd.TypeUserStory),
		Status:            valueOr(data.Status, prd.StatusDraft),
		PrimaryActorID:    valueOr(data.PrimaryActorID, ""),
		SecondaryActorIDs: data.SecondaryActorIDs,
		RelatedGoalIDs:    data.RelatedGoalIDs,
	})
	if err != nil {
		return describe(fmt.Sprintf("add requirement %q", node.Title), err)
	}
	return ""
}

func (a *Applier) addMilestone(ed *prd.Editor, node *contract.NodeDraft) string {
	var data milestoneData
	if err := decodeData(node.Data, &data); err != nil {
		return invalidData(fmt.Sprintf("milestone %q", node.Title), err)
	}
	_, err := ed.AddMilestone(prd.Milestone{
		ID:                     node.ID,
		Title:                  node.Title,
		TargetDate:             valueOr(data.TargetDate, ""),
		ExitCriteria:           data.ExitCriteria,
		IncludedRequirementIDs: data.IncludedRequirementIDs,
	})
	if err != nil {
		return describe(fmt.Sprintf("add milestone %q", node.Title), err)
	}
	return ""
}

func (a *Applier) addCompetitor(ed *prd.Editor, node *contract.NodeDraft) string {
	var data competitorData
	if err := decodeData(node.Data, &data); err != nil {
		return invalidData(fmt.Sprintf("competitor %q", node.Title), err)
	}
	analysis := valueOr(data.Analysis, "")
	if analysis == "" {
		analysis = node.Description
	}
	_, err := ed.AddCompetitor(prd.Competitor{
		ID:          node.ID,
		Name:        node.Title,
		URL:         valueOr(data.URL, ""),
		Analysis:    analysis,
		Selected:    valueOr(data.Selected, false),
		Strengths:   data.Strengths,
		Weaknesses:  data.Weaknesses,
		FeatureGaps: data.FeatureGaps,
	})
	if err != nil {
		return describe(fmt.Sprintf("add competitor %q", node.Title), err)
	}
	return ""
}
