package apply

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/prdgraph/internal/knowledge"
	"github.com/HendryAvila/prdgraph/internal/policy"
	"github.com/HendryAvila/prdgraph/internal/prd"
)

// --- Helpers ---

func newEditor(t *testing.T, mode prd.DiscoveryMode) *prd.Editor {
	t.Helper()
	doc := &prd.Document{
		Meta: prd.Meta{ID: "doc-1", Title: "Checkout", Status: prd.DocDraft, Version: 1, DiscoveryMode: mode},
		Context: prd.Context{
			Actors:      []prd.Actor{{ID: "A1", Name: "Shopper", Role: prd.RoleUser, Priority: prd.ActorPrimary}},
			Glossary:    []prd.Term{{ID: "T1", Term: "Cart", Definition: "Staged items"}},
			Competitors: []prd.Competitor{{ID: "C1", Name: "Shopify"}},
		},
		Sections: prd.Sections{
			Background: prd.Background{Blocks: []prd.NarrativeBlock{{ID: "B1", Type: prd.BlockText, Content: "Old"}}},
			Goals:      []prd.Goal{{ID: "G1", Title: "Grow conversion", Priority: prd.GoalHigh}},
			Requirements: []prd.Requirement{
				{ID: "R1", Title: "One-page checkout", Priority: prd.P1, Type: prd.TypeUserStory, Status: prd.StatusDraft},
			},
			Milestones: []prd.Milestone{{ID: "MS1", Title: "Beta"}},
		},
	}
	ed, err := prd.NewEditor(doc)
	require.NoError(t, err)
	return ed
}

func newApplier() *Applier { return New(policy.Default(), nil) }

func metricBatch() map[string]any {
	return map[string]any{
		"changes": []any{
			map[string]any{
				"op": "add",
				"node": map[string]any{
					"type": "metric", "id": "m1", "title": "Activation Rate",
					"data": map[string]any{"goalId": "G1", "target": "50%", "type": "Business"},
				},
			},
		},
	}
}

func goal(t *testing.T, ed *prd.Editor, id string) prd.Goal {
	t.Helper()
	for _, g := range ed.Document().Sections.Goals {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("goal %s not found", id)
	return prd.Goal{}
}

func requirement(t *testing.T, ed *prd.Editor, id string) prd.Requirement {
	t.Helper()
	for _, r := range ed.Document().Sections.Requirements {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("requirement %s not found", id)
	return prd.Requirement{}
}

// --- Worked scenarios ---

func TestApply_AddMetric(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryDefault)

	res := newApplier().Apply(metricBatch(), ed)

	assert.Equal(t, Result{Applied: 1, Errors: []string{}}, res)
	metrics := goal(t, ed, "G1").Metrics
	require.Len(t, metrics, 1)
	assert.Equal(t, "m1", metrics[0].ID)
	assert.Equal(t, "50%", metrics[0].Target)
	assert.Equal(t, "Activation Rate", metrics[0].Description)
	assert.Equal(t, prd.MetricBusiness, metrics[0].Type)
}

func TestApply_DiscoveryOffRejectsAdd(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOff)

	res := newApplier().Apply(metricBatch(), ed)

	assert.Equal(t, 0, res.Applied)
	assert.Equal(t, []string{"Discovery mode is off; skipping add operation."}, res.Errors)
	assert.Empty(t, goal(t, ed, "G1").Metrics)
}

func TestApply_RelatedGoalLinkIsIdempotent(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryDefault)
	batch := `{"changes":[{"op":"link","edgeType":"relatedGoal","fromId":"R1","toId":"G1"}]}`
	a := newApplier()

	first := a.Apply(batch, ed)
	second := a.Apply(batch, ed)

	assert.Equal(t, 1, first.Applied)
	assert.Equal(t, 1, second.Applied)
	assert.Equal(t, []string{"G1"}, requirement(t, ed, "R1").RelatedGoalIDs)
}

// --- Properties ---

func TestApply_PartialApplicationIsolation(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOn)
	batch := `{"changes":[
		{"op":"add","node":{"id":"G2","type":"goal","title":"Reduce fraud"}},
		{"op":"add","node":{"id":"m9","type":"metric","title":"Chargebacks","data":{"goalId":"G404","target":"<1%","type":"Business"}}},
		{"op":"link","edgeType":"relatedGoal","fromId":"R1","toId":"G2"}
	]}`

	res := newApplier().Apply(batch, ed)

	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, []string{"Goal G404 not found for metric."}, res.Errors)
	assert.Equal(t, "Reduce fraud", goal(t, ed, "G2").Title)
	assert.Equal(t, []string{"G2"}, requirement(t, ed, "R1").RelatedGoalIDs, "link sees the goal added earlier in the batch")
	_, exists := ed.Lookup("m9")
	assert.False(t, exists)
}

func TestApply_BlockedActorNeverMutates(t *testing.T) {
	for _, name := range []string{"User", "  end USER ", "stakeholder"} {
		t.Run(name, func(t *testing.T) {
			ed := newEditor(t, prd.DiscoveryOn)
			before := ed.Snapshot()

			res := newApplier().Apply(map[string]any{"changes": []any{
				map[string]any{"op": "add", "node": map[string]any{"type": "actor", "title": name}},
			}}, ed)

			assert.Equal(t, 0, res.Applied)
			assert.Equal(t, []string{`Actor name "` + name + `" is blocked by policy.`}, res.Errors)
			assert.Equal(t, before, ed.Snapshot())
		})
	}
}

func TestApply_BlockedTerm(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOn)
	res := newApplier().Apply(`[{"op":"add","node":{"type":"term","title":"api"}}]`, ed)

	assert.Equal(t, []string{`Glossary term "api" is blocked by policy.`}, res.Errors)
	assert.Len(t, ed.Document().Context.Glossary, 1)
}

func TestApply_DiscoveryGatingOnlyAffectsAdds(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOff)
	batch := `{"changes":[
		{"op":"add","node":{"type":"goal","title":"New goal"}},
		{"op":"update","nodeId":"R1","patch":{"title":"Single-page checkout"}},
		{"op":"link","edgeType":"primaryActor","fromId":"R1","toId":"A1"},
		{"op":"add","node":{"type":"requirement","title":"Guest checkout"}}
	]}`

	res := newApplier().Apply(batch, ed)

	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, []string{
		"Discovery mode is off; skipping add operation.",
		"Discovery mode is off; skipping add operation.",
	}, res.Errors)
	r := requirement(t, ed, "R1")
	assert.Equal(t, "Single-page checkout", r.Title)
	assert.Equal(t, "A1", r.PrimaryActorID)
	assert.Len(t, ed.Document().Sections.Goals, 1)
}

func TestApply_StructuralFailureAppliesNothing(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOn)
	before := ed.Snapshot()

	res := newApplier().Apply(`{"changes":[
		{"op":"add","node":{"type":"goal","title":"Valid on its own"}},
		{"op":"remove","nodeId":"R1"}
	]}`, ed)

	assert.Equal(t, 0, res.Applied)
	assert.Equal(t, []string{"changes[1].op: must be one of add, update, link"}, res.Errors)
	assert.Equal(t, before, ed.Snapshot())
}

func TestValidate(t *testing.T) {
	a := newApplier()

	batch, rejected := a.Validate(`{"changes":[{"op":"remove","nodeId":"R1"}]}`)
	assert.Nil(t, batch)
	assert.Equal(t, 0, rejected.Applied)
	assert.Equal(t, []string{"changes[0].op: must be one of add, update, link"}, rejected.Errors)

	batch, res := a.Validate(`[{"op":"link","edgeType":"relatedGoal","fromId":"R1","toId":"G1"}]`)
	require.NotNil(t, batch)
	assert.Len(t, batch.Changes, 1)
	assert.Empty(t, res.Errors)
}

// --- Add defaults ---

func TestApply_AddDefaults(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOn)
	batch := `{"changes":[
		{"op":"add","node":{"id":"A2","type":"actor","title":"Finance Lead","description":"Approves refunds"}},
		{"op":"add","node":{"id":"T2","type":"term","title":"Checkout","description":"Final purchase step"}},
		{"op":"add","node":{"id":"G2","type":"goal","title":"Retention"}},
		{"op":"add","node":{"id":"R2","type":"requirement","title":"Saved carts"}},
		{"op":"add","node":{"id":"MS2","type":"milestone","title":"GA"}},
		{"op":"add","node":{"id":"C2","type":"competitor","title":"Stripe","description":"Strong APIs"}}
	]}`

	res := newApplier().Apply(batch, ed)
	require.Equal(t, 6, res.Applied, res.Errors)

	doc := ed.Document()
	actor := doc.Context.Actors[1]
	assert.Equal(t, prd.Actor{ID: "A2", Name: "Finance Lead", Role: prd.RoleUser, Priority: prd.ActorSecondary, Description: "Approves refunds"}, actor)

	term := doc.Context.Glossary[1]
	assert.Equal(t, "Final purchase step", term.Definition)
	assert.Equal(t, []string{}, term.BannedSynonyms)

	g := goal(t, ed, "G2")
	assert.Equal(t, prd.GoalMedium, g.Priority)
	assert.Empty(t, g.Metrics)

	r := requirement(t, ed, "R2")
	assert.Equal(t, prd.P2, r.Priority)
	assert.Equal(t, prd.StatusDraft, r.Status)
	assert.Equal(t, prd.TypeUserStory, r.Type)
	assert.Equal(t, "", r.PrimaryActorID)
	assert.Empty(t, r.SecondaryActorIDs)
	assert.Empty(t, r.RelatedGoalIDs)

	ms := doc.Sections.Milestones[1]
	assert.Equal(t, []string{}, ms.ExitCriteria)
	assert.Empty(t, ms.IncludedRequirementIDs)

	c := doc.Context.Competitors[1]
	assert.False(t, c.Selected)
	assert.Equal(t, "Strong APIs", c.Analysis)
	assert.Equal(t, []string{}, c.Strengths)
	assert.Equal(t, "C1", doc.Context.Competitors[0].ID, "existing competitors are kept")
}

func TestApply_AddWithDataAndForwardReferences(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOn)
	batch := `{"changes":[
		{"op":"add","node":{"id":"A2","type":"actor","title":"Support Agent","data":{"role":"Admin","priority":"Primary"}}},
		{"op":"add","node":{"id":"R2","type":"requirement","title":"Refund flow","data":{
			"priority":"P0","status":"Proposed","type":"System Behavior",
			"primaryActorId":"A2","secondaryActorIds":["A1","A1"],"relatedGoalIds":["G1"]}}},
		{"op":"add","node":{"id":"MS2","type":"milestone","title":"GA","data":{"targetDate":"2026-12-01","exitCriteria":["No P0 bugs"],"includedRequirementIds":["R2"]}}}
	]}`

	res := newApplier().Apply(batch, ed)
	require.Equal(t, 3, res.Applied, res.Errors)

	assert.Equal(t, prd.RoleAdmin, ed.Document().Context.Actors[1].Role)
	r := requirement(t, ed, "R2")
	assert.Equal(t, prd.P0, r.Priority)
	assert.Equal(t, prd.TypeSystemBehavior, r.Type)
	assert.Equal(t, "A2", r.PrimaryActorID)
	assert.Equal(t, []string{"A1"}, r.SecondaryActorIDs)
	assert.Equal(t, []string{"R2"}, ed.Document().Sections.Milestones[1].IncludedRequirementIDs)
}

func TestApply_AddErrors(t *testing.T) {
	tests := []struct {
		name  string
		batch string
		want  string
	}{
		{"missing node", `[{"op":"add"}]`, "Missing node payload for add operation."},
		{"narrative", `[{"op":"add","node":{"type":"narrative","title":"Story"}}]`, `Unsupported node type "narrative" for add operation.`},
		{"tldr", `[{"op":"add","node":{"type":"tldr","title":"Problem"}}]`, `Unsupported node type "tldr" for add operation.`},
		{"metric incomplete", `[{"op":"add","node":{"type":"metric","title":"x","data":{"goalId":"G1"}}}]`,
			"Metric data is incomplete; expected goalId, target, and type."},
		{"metric on requirement", `[{"op":"add","node":{"type":"metric","title":"x","data":{"goalId":"R1","target":"1","type":"UX"}}}]`,
			"Goal R1 not found for metric."},
		{"duplicate id", `[{"op":"add","node":{"id":"R1","type":"goal","title":"Clash"}}]`,
			`Could not add goal "Clash": id already in use (goal id "R1" already used by a requirement).`},
		{"unknown reference", `[{"op":"add","node":{"type":"requirement","title":"x","data":{"primaryActorId":"A404"}}}]`,
			`Could not add requirement "x": reference not found (actor A404).`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(t, prd.DiscoveryOn)
			res := newApplier().Apply(tt.batch, ed)
			assert.Equal(t, 0, res.Applied)
			assert.Equal(t, []string{tt.want}, res.Errors)
		})
	}
}

func TestApply_AddInvalidData(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOn)
	res := newApplier().Apply(`[
		{"op":"add","node":{"type":"goal","title":"x","data":{"priority":3}}},
		{"op":"add","node":{"type":"actor","title":"Approver","data":{"role":"Wizard"}}}
	]`, ed)

	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], `Invalid data for goal "x"`)
	assert.Contains(t, res.Errors[1], `Could not add actor "Approver": invalid value`)
}

// --- Updates ---

func TestApply_Updates(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOff)
	_, err := ed.AddMetric("G1", prd.Metric{ID: "M1", Description: "Completion", Target: "60%", Type: prd.MetricUX})
	require.NoError(t, err)

	batch := `{"changes":[
		{"op":"update","nodeId":"A1","patch":{"title":"Returning shopper","data":{"priority":"Tertiary"}}},
		{"op":"update","nodeId":"T1","patch":{"description":"Items staged for purchase","data":{"bannedSynonyms":["basket"]}}},
		{"op":"update","nodeId":"G1","patch":{"data":{"priority":"Critical"}}},
		{"op":"update","nodeId":"M1","patch":{"title":"Checkout completion","data":{"goalId":"G1","target":"70%"}}},
		{"op":"update","nodeId":"R1","patch":{"data":{"status":"Approved","relatedGoalIds":["G1"]}}},
		{"op":"update","nodeId":"MS1","patch":{"data":{"includedRequirementIds":["R1"]}}},
		{"op":"update","nodeId":"C1","patch":{"data":{"selected":true,"strengths":["Ecosystem"]}}},
		{"op":"update","nodeId":"B1","patch":{"description":"New"}}
	]}`

	res := newApplier().Apply(batch, ed)
	require.Equal(t, 8, res.Applied, res.Errors)

	doc := ed.Document()
	assert.Equal(t, "Returning shopper", doc.Context.Actors[0].Name)
	assert.Equal(t, prd.ActorTertiary, doc.Context.Actors[0].Priority)
	assert.Equal(t, []string{"basket"}, doc.Context.Glossary[0].BannedSynonyms)
	g := goal(t, ed, "G1")
	assert.Equal(t, prd.GoalCritical, g.Priority)
	assert.Equal(t, "Grow conversion", g.Title)
	assert.Equal(t, prd.Metric{ID: "M1", Description: "Checkout completion", Target: "70%", Type: prd.MetricUX}, g.Metrics[0])
	assert.Equal(t, prd.StatusApproved, requirement(t, ed, "R1").Status)
	assert.Equal(t, []string{"R1"}, doc.Sections.Milestones[0].IncludedRequirementIDs)
	assert.True(t, doc.Context.Competitors[0].Selected)
	assert.Equal(t, "New", doc.Sections.Background.Blocks[0].Content)
}

func TestApply_UpdateErrors(t *testing.T) {
	tests := []struct {
		name  string
		batch string
		want  string
	}{
		{"missing patch", `[{"op":"update","nodeId":"R1"}]`, "Missing nodeId or patch for update operation."},
		{"missing id", `[{"op":"update","patch":{}}]`, "Missing nodeId or patch for update operation."},
		{"unknown id", `[{"op":"update","nodeId":"X9","patch":{"title":"x"}}]`, "Could not resolve node type for X9."},
		{"type mismatch", `[{"op":"update","nodeId":"R1","patch":{"type":"goal"}}]`, `Patch type "goal" does not match requirement R1.`},
		{"metric without goal", `[{"op":"update","nodeId":"M1","patch":{"data":{"target":"1"}}}]`, "Metric update missing goalId."},
		{"metric unknown goal", `[{"op":"update","nodeId":"M1","patch":{"data":{"goalId":"G404"}}}]`, "Goal G404 not found for metric update."},
		{"metric wrong owner", `[{"op":"update","nodeId":"M1","patch":{"data":{"goalId":"G2"}}}]`, "Metric M1 belongs to goal G1, not G2."},
		{"blocked rename", `[{"op":"update","nodeId":"A1","patch":{"title":"Customer"}}]`, `Actor name "Customer" is blocked by policy.`},
		{"empty title", `[{"op":"update","nodeId":"G1","patch":{"title":" "}}]`,
			"Could not update goal G1: invalid input (goal title is required)."},
		{"narrative without text", `[{"op":"update","nodeId":"B1","patch":{"title":"x"}}]`, "Narrative update for B1 needs a description."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(t, prd.DiscoveryOn)
			_, err := ed.AddMetric("G1", prd.Metric{ID: "M1", Description: "Completion", Target: "60%", Type: prd.MetricUX})
			require.NoError(t, err)
			_, err = ed.AddGoal(prd.Goal{ID: "G2", Title: "Other", Priority: prd.GoalMedium})
			require.NoError(t, err)

			res := newApplier().Apply(tt.batch, ed)
			assert.Equal(t, 0, res.Applied)
			assert.Equal(t, []string{tt.want}, res.Errors)
		})
	}
}

func TestApply_MetricBadData(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOn)
	_, err := ed.AddMetric("G1", prd.Metric{ID: "M1", Description: "Completion", Target: "60%", Type: prd.MetricUX})
	require.NoError(t, err)

	res := newApplier().Apply(`[{"op":"update","nodeId":"M1","patch":{"data":{"goalId":"G1","target":50}}}]`, ed)

	assert.Equal(t, 0, res.Applied)
	require.Len(t, res.Errors, 1)
	assert.True(t, strings.HasPrefix(res.Errors[0], "Invalid data for metric M1:"), res.Errors[0])
	assert.NotContains(t, res.Errors[0], "missing goalId")
	assert.Equal(t, "60%", goal(t, ed, "G1").Metrics[0].Target)

	res = newApplier().Apply(`[{"op":"add","node":{"type":"metric","title":"Speed","data":{"goalId":"G1","target":2,"type":"UX"}}}]`, ed)
	require.Len(t, res.Errors, 1)
	assert.True(t, strings.HasPrefix(res.Errors[0], `Invalid data for metric "Speed":`), res.Errors[0])
	assert.Len(t, goal(t, ed, "G1").Metrics, 1)
}

// --- Links ---

func TestApply_Links(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOff)
	_, err := ed.AddActor(prd.Actor{ID: "A2", Name: "Finance", Role: prd.RoleStakeholder, Priority: prd.ActorSecondary})
	require.NoError(t, err)

	batch := `{"changes":[
		{"op":"link","edgeType":"primaryActor","fromId":"R1","toId":"A1"},
		{"op":"link","edgeType":"primaryActor","fromId":"R1","toId":"A2"},
		{"op":"link","edgeType":"secondaryActor","fromId":"R1","toId":"A1"},
		{"op":"link","edgeType":"secondaryActor","fromId":"R1","toId":"A1"},
		{"op":"link","edgeType":"includesRequirement","fromId":"MS1","toId":"R1"}
	]}`
	res := newApplier().Apply(batch, ed)
	require.Equal(t, 5, res.Applied, res.Errors)

	r := requirement(t, ed, "R1")
	assert.Equal(t, "A2", r.PrimaryActorID, "primary actor is overwritten")
	assert.Equal(t, []string{"A1"}, r.SecondaryActorIDs)
	assert.Equal(t, []string{"R1"}, ed.Document().Sections.Milestones[0].IncludedRequirementIDs)
}

func TestApply_SuccessMetricMovesOwnership(t *testing.T) {
	ed := newEditor(t, prd.DiscoveryOn)
	_, err := ed.AddMetric("G1", prd.Metric{ID: "M1", Description: "Completion", Target: "60%", Type: prd.MetricUX})
	require.NoError(t, err)
	_, err = ed.AddGoal(prd.Goal{ID: "G2", Title: "Other", Priority: prd.GoalMedium})
	require.NoError(t, err)
	a := newApplier()

	res := a.Apply(`[{"op":"link","edgeType":"successMetric","fromId":"G2","toId":"M1"}]`, ed)
	require.Equal(t, 1, res.Applied, res.Errors)
	assert.Empty(t, goal(t, ed, "G1").Metrics)
	require.Len(t, goal(t, ed, "G2").Metrics, 1)
	owner, _ := ed.MetricOwner("M1")
	assert.Equal(t, "G2", owner)

	res = a.Apply(`[{"op":"link","edgeType":"successMetric","fromId":"G2","toId":"M1"}]`, ed)
	assert.Equal(t, 1, res.Applied)
	assert.Len(t, goal(t, ed, "G2").Metrics, 1, "relinking the owner is a no-op")
}

func TestApply_LinkErrors(t *testing.T) {
	tests := []struct {
		name  string
		batch string
		want  string
	}{
		{"missing to", `[{"op":"link","edgeType":"relatedGoal","fromId":"R1"}]`, "Missing edge data for link operation."},
		{"missing edge type", `[{"op":"link","fromId":"R1","toId":"G1"}]`, "Missing edge data for link operation."},
		{"term usage", `[{"op":"link","edgeType":"termUsage","fromId":"T1","toId":"R1"}]`, `Unsupported edge type "termUsage" for link operation.`},
		{"unknown requirement", `[{"op":"link","edgeType":"relatedGoal","fromId":"R404","toId":"G1"}]`, "Requirement R404 not found."},
		{"unknown goal", `[{"op":"link","edgeType":"relatedGoal","fromId":"R1","toId":"G404"}]`, "Goal G404 not found."},
		{"primary on goal", `[{"op":"link","edgeType":"primaryActor","fromId":"G1","toId":"A1"}]`, "Requirement G1 not found."},
		{"secondary unknown actor", `[{"op":"link","edgeType":"secondaryActor","fromId":"R1","toId":"A404"}]`, "Actor A404 not found."},
		{"unknown milestone", `[{"op":"link","edgeType":"includesRequirement","fromId":"MS404","toId":"R1"}]`, "Milestone MS404 not found."},
		{"milestone to goal", `[{"op":"link","edgeType":"includesRequirement","fromId":"MS1","toId":"G1"}]`, "Requirement G1 not found."},
		{"success metric unknown goal", `[{"op":"link","edgeType":"successMetric","fromId":"G404","toId":"M1"}]`, "Goal G404 not found."},
		{"success metric unknown metric", `[{"op":"link","edgeType":"successMetric","fromId":"G1","toId":"M404"}]`, "Metric not found for successMetric link."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(t, prd.DiscoveryOn)
			before := ed.Snapshot()
			res := newApplier().Apply(tt.batch, ed)
			assert.Equal(t, 0, res.Applied)
			assert.Equal(t, []string{tt.want}, res.Errors)
			assert.Equal(t, before, ed.Snapshot())
		})
	}
}

// --- Handler coverage ---

func TestHandlerTablesCoverEveryType(t *testing.T) {
	for _, nt := range knowledge.NodeTypes() {
		_, handled := addHandlers[nt]
		assert.True(t, handled != unsupportedAdds[nt], "node type %q must be handled or explicitly unsupported, not both", nt)
	}
	for _, et := range knowledge.EdgeTypes() {
		_, handled := linkHandlers[et]
		assert.True(t, handled != unsupportedLinks[et], "edge type %q must be handled or explicitly unsupported, not both", et)
	}
	for kind, nt := range nodeTypeOf {
		_, ok := updateHandlers[kind]
		assert.True(t, ok, "kind %q has no update handler", kind)
		assert.True(t, knowledge.ValidNodeType(nt))
	}
}

func TestResult_Skipped(t *testing.T) {
	assert.Equal(t, 2, Result{Errors: []string{"a", "b"}}.Skipped())
}
