package apply

import (
	"github.com/mitchellh/mapstructure"

	"github.com/HendryAvila/prdgraph/internal/prd"
)

// Typed views of the free-form data payload, one per node type. Pointer
// fields distinguish "omitted" from "set to the zero value".

type actorData struct {
	Role     *prd.ActorRole     `json:"role"`
	Priority *prd.ActorPriority `json:"priority"`
}

type termData struct {
	BannedSynonyms []string `json:"bannedSynonyms"`
}

type goalData struct {
	Priority *prd.GoalPriority `json:"priority"`
}

type metricData struct {
	GoalID   string          `json:"goalId"`
	Target   *string         `json:"target"`
	Baseline *string         `json:"baseline"`
	Type     *prd.MetricType `json:"type"`
}

type requirementData struct {
	PrimaryActorID    *string                  `json:"primaryActorId"`
	Priority          *prd.RequirementPriority `json:"priority"`
	Type              *prd.RequirementType     `json:"type"`
	Status            *prd.RequirementStatus   `json:"status"`
	SecondaryActorIDs []string                 `json:"secondaryActorIds"`
	RelatedGoalIDs    []string                 `json:"relatedGoalIds"`
}

type milestoneData struct {
	TargetDate             *string  `json:"targetDate"`
	ExitCriteria           []string `json:"exitCriteria"`
	IncludedRequirementIDs []string `json:"includedRequirementIds"`
}

type competitorData struct {
	URL         *string  `json:"url"`
	Analysis    *string  `json:"analysis"`
	Selected    *bool    `json:"selected"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	FeatureGaps []string `json:"featureGaps"`
}

// decodeData maps a JSON-decoded payload onto out. Unknown keys are ignored;
// type mismatches are errors.
func decodeData(data map[string]any, out any) error {
	if len(data) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
