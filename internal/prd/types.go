// Package prd holds the canonical Product Requirements Document model.
//
// The Document struct is plain data (it round-trips through YAML and JSON).
// All mutations go through an Editor, which keeps an id index current,
// enforces referential integrity for reference fields and stamps
// Meta.LastUpdated on every successful change.
package prd

import (
	"fmt"
	"time"
)

// --- Actor enums ---

// ActorRole classifies what an actor is in relation to the product.
type ActorRole string

const (
	RoleUser        ActorRole = "User"
	RoleAdmin       ActorRole = "Admin"
	RoleSystem      ActorRole = "System"
	RoleBuyer       ActorRole = "Buyer"
	RoleStakeholder ActorRole = "Stakeholder"
)

var validActorRoles = map[ActorRole]bool{
	RoleUser:        true,
	RoleAdmin:       true,
	RoleSystem:      true,
	RoleBuyer:       true,
	RoleStakeholder: true,
}

// ValidateActorRole returns an error if the role is not recognized.
func ValidateActorRole(r ActorRole) error {
	if !validActorRoles[r] {
		return fmt.Errorf("%w: actor role %q: must be one of: User, Admin, System, Buyer, Stakeholder", ErrInvalidEnum, r)
	}
	return nil
}

// ActorPriority ranks actors.
type ActorPriority string

const (
	ActorPrimary   ActorPriority = "Primary"
	ActorSecondary ActorPriority = "Secondary"
	ActorTertiary  ActorPriority = "Tertiary"
)

var validActorPriorities = map[ActorPriority]bool{
	ActorPrimary:   true,
	ActorSecondary: true,
	ActorTertiary:  true,
}

// ValidateActorPriority returns an error if the priority is not recognized.
func ValidateActorPriority(p ActorPriority) error {
	if !validActorPriorities[p] {
		return fmt.Errorf("%w: actor priority %q: must be one of: Primary, Secondary, Tertiary", ErrInvalidEnum, p)
	}
	return nil
}

// --- Goal and metric enums ---

// GoalPriority ranks goals.
type GoalPriority string

const (
	GoalCritical GoalPriority = "Critical"
	GoalHigh     GoalPriority = "High"
	GoalMedium   GoalPriority = "Medium"
)

var validGoalPriorities = map[GoalPriority]bool{
	GoalCritical: true,
	GoalHigh:     true,
	GoalMedium:   true,
}

// ValidateGoalPriority returns an error if the priority is not recognized.
func ValidateGoalPriority(p GoalPriority) error {
	if !validGoalPriorities[p] {
		return fmt.Errorf("%w: goal priority %q: must be one of: Critical, High, Medium", ErrInvalidEnum, p)
	}
	return nil
}

// MetricType categorizes a success metric.
type MetricType string

const (
	MetricBusiness  MetricType = "Business"
	MetricUX        MetricType = "UX"
	MetricTechnical MetricType = "Technical"
	MetricSecurity  MetricType = "Security"
)

var validMetricTypes = map[MetricType]bool{
	MetricBusiness:  true,
	MetricUX:        true,
	MetricTechnical: true,
	MetricSecurity:  true,
}

// ValidateMetricType returns an error if the type is not recognized.
func ValidateMetricType(t MetricType) error {
	if !validMetricTypes[t] {
		return fmt.Errorf("%w: metric type %q: must be one of: Business, UX, Technical, Security", ErrInvalidEnum, t)
	}
	return nil
}

// --- Requirement enums ---

// RequirementPriority is the P0..P3 scale.
type RequirementPriority string

const (
	P0 RequirementPriority = "P0"
	P1 RequirementPriority = "P1"
	P2 RequirementPriority = "P2"
	P3 RequirementPriority = "P3"
)

var validRequirementPriorities = map[RequirementPriority]bool{P0: true, P1: true, P2: true, P3: true}

// ValidateRequirementPriority returns an error if the priority is not recognized.
func ValidateRequirementPriority(p RequirementPriority) error {
	if !validRequirementPriorities[p] {
		return fmt.Errorf("%w: requirement priority %q: must be one of: P0, P1, P2, P3", ErrInvalidEnum, p)
	}
	return nil
}

// RequirementType describes the shape of a requirement.
type RequirementType string

const (
	TypeUserStory      RequirementType = "User Story"
	TypeSystemBehavior RequirementType = "System Behavior"
	TypeConstraint     RequirementType = "Constraint"
	TypeInterface      RequirementType = "Interface"
)

var validRequirementTypes = map[RequirementType]bool{
	TypeUserStory:      true,
	TypeSystemBehavior: true,
	TypeConstraint:     true,
	TypeInterface:      true,
}

// ValidateRequirementType returns an error if the type is not recognized.
func ValidateRequirementType(t RequirementType) error {
	if !validRequirementTypes[t] {
		return fmt.Errorf("%w: requirement type %q: must be one of: User Story, System Behavior, Constraint, Interface", ErrInvalidEnum, t)
	}
	return nil
}

// RequirementStatus tracks a requirement's review lifecycle.
type RequirementStatus string

const (
	StatusDraft      RequirementStatus = "Draft"
	StatusProposed   RequirementStatus = "Proposed"
	StatusApproved   RequirementStatus = "Approved"
	StatusDeprecated RequirementStatus = "Deprecated"
)

var validRequirementStatuses = map[RequirementStatus]bool{
	StatusDraft:      true,
	StatusProposed:   true,
	StatusApproved:   true,
	StatusDeprecated: true,
}

// ValidateRequirementStatus returns an error if the status is not recognized.
func ValidateRequirementStatus(s RequirementStatus) error {
	if !validRequirementStatuses[s] {
		return fmt.Errorf("%w: requirement status %q: must be one of: Draft, Proposed, Approved, Deprecated", ErrInvalidEnum, s)
	}
	return nil
}

// --- Document-level enums ---

// DocStatus is the review state of the whole document.
type DocStatus string

const (
	DocDraft  DocStatus = "Draft"
	DocReview DocStatus = "Review"
	DocFinal  DocStatus = "Final"
)

var validDocStatuses = map[DocStatus]bool{DocDraft: true, DocReview: true, DocFinal: true}

// ValidateDocStatus returns an error if the status is not recognized.
func ValidateDocStatus(s DocStatus) error {
	if !validDocStatuses[s] {
		return fmt.Errorf("%w: document status %q: must be one of: Draft, Review, Final", ErrInvalidEnum, s)
	}
	return nil
}

// DiscoveryMode controls whether assistant proposals may introduce new entities.
type DiscoveryMode string

const (
	DiscoveryOff     DiscoveryMode = "off"
	DiscoveryDefault DiscoveryMode = "default"
	DiscoveryOn      DiscoveryMode = "on"
)

var validDiscoveryModes = map[DiscoveryMode]bool{
	DiscoveryOff:     true,
	DiscoveryDefault: true,
	DiscoveryOn:      true,
}

// ValidateDiscoveryMode returns an error if the mode is not recognized.
func ValidateDiscoveryMode(m DiscoveryMode) error {
	if !validDiscoveryModes[m] {
		return fmt.Errorf("%w: discovery mode %q: must be one of: off, default, on", ErrInvalidEnum, m)
	}
	return nil
}

// BlockType distinguishes narrative blocks.
type BlockType string

const (
	BlockText   BlockType = "text"
	BlockDriver BlockType = "driver"
)

// ValidateBlockType returns an error if the block type is not recognized.
func ValidateBlockType(t BlockType) error {
	if t != BlockText && t != BlockDriver {
		return fmt.Errorf("%w: block type %q: must be one of: text, driver", ErrInvalidEnum, t)
	}
	return nil
}

// --- Entities ---

// Actor is a persona or system that interacts with the product.
type Actor struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Role        ActorRole     `json:"role" yaml:"role"`
	Priority    ActorPriority `json:"priority" yaml:"priority"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// Term is a glossary entry.
type Term struct {
	ID             string   `json:"id" yaml:"id"`
	Term           string   `json:"term" yaml:"term"`
	Definition     string   `json:"definition" yaml:"definition"`
	BannedSynonyms []string `json:"bannedSynonyms" yaml:"bannedSynonyms"`
}

// Metric is a success metric. It lives inside exactly one Goal.
type Metric struct {
	ID          string     `json:"id" yaml:"id"`
	Description string     `json:"description" yaml:"description"`
	Target      string     `json:"target" yaml:"target"`
	Baseline    string     `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Type        MetricType `json:"type" yaml:"type"`
}

// Goal is a product goal with its owned metrics.
type Goal struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Priority    GoalPriority `json:"priority" yaml:"priority"`
	Metrics     []Metric     `json:"metrics" yaml:"metrics"`
}

// Requirement is a functional requirement.
type Requirement struct {
	ID                string              `json:"id" yaml:"id"`
	Title             string              `json:"title" yaml:"title"`
	Description       string              `json:"description" yaml:"description"`
	Priority          RequirementPriority `json:"priority" yaml:"priority"`
	Type              RequirementType     `json:"type" yaml:"type"`
	Status            RequirementStatus   `json:"status" yaml:"status"`
	PrimaryActorID    string              `json:"primaryActorId" yaml:"primaryActorId"`
	SecondaryActorIDs []string            `json:"secondaryActorIds" yaml:"secondaryActorIds"`
	RelatedGoalIDs    []string            `json:"relatedGoalIds" yaml:"relatedGoalIds"`
}

// Milestone groups requirements into a delivery step.
type Milestone struct {
	ID                     string   `json:"id" yaml:"id"`
	Title                  string   `json:"title" yaml:"title"`
	TargetDate             string   `json:"targetDate,omitempty" yaml:"targetDate,omitempty"`
	ExitCriteria           []string `json:"exitCriteria" yaml:"exitCriteria"`
	IncludedRequirementIDs []string `json:"includedRequirementIds" yaml:"includedRequirementIds"`
}

// Competitor is a competitive analysis entry.
type Competitor struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	Strengths   []string `json:"strengths" yaml:"strengths"`
	Weaknesses  []string `json:"weaknesses" yaml:"weaknesses"`
	FeatureGaps []string `json:"featureGaps" yaml:"featureGaps"`
	Analysis    string   `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Selected    bool     `json:"selected" yaml:"selected"`
}

// NarrativeBlock is one ordered piece of the background narrative.
type NarrativeBlock struct {
	ID      string    `json:"id" yaml:"id"`
	Type    BlockType `json:"type" yaml:"type"`
	Title   string    `json:"title" yaml:"title"`
	Content string    `json:"content" yaml:"content"`
}

// --- Document ---

// Meta is document-level metadata.
type Meta struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	Status        DocStatus     `json:"status" yaml:"status"`
	Version       int           `json:"version" yaml:"version"`
	LastUpdated   time.Time     `json:"lastUpdated" yaml:"lastUpdated"`
	DiscoveryMode DiscoveryMode `json:"discoveryMode" yaml:"discoveryMode"`
}

// Context holds the reference entities of the document.
type Context struct {
	Actors      []Actor      `json:"actors" yaml:"actors"`
	Glossary    []Term       `json:"glossary" yaml:"glossary"`
	Competitors []Competitor `json:"competitors" yaml:"competitors"`
}

// TLDR is the problem/solution summary.
type TLDR struct {
	Problem    string   `json:"problem" yaml:"problem"`
	Solution   string   `json:"solution" yaml:"solution"`
	ValueProps []string `json:"valueProps" yaml:"valueProps"`
}

// Background is the narrative section.
type Background struct {
	Context       string           `json:"context" yaml:"context"`
	MarketDrivers []string         `json:"marketDrivers" yaml:"marketDrivers"`
	Blocks        []NarrativeBlock `json:"blocks" yaml:"blocks"`
}

// Sections holds the body of the document.
type Sections struct {
	TLDR         TLDR          `json:"tldr" yaml:"tldr"`
	Background   Background    `json:"background" yaml:"background"`
	Goals        []Goal        `json:"goals" yaml:"goals"`
	Requirements []Requirement `json:"requirements" yaml:"requirements"`
	Milestones   []Milestone   `json:"milestones" yaml:"milestones"`
}

// Document is the full PRD.
type Document struct {
	Meta     Meta     `json:"meta" yaml:"meta"`
	Context  Context  `json:"context" yaml:"context"`
	Sections Sections `json:"sections" yaml:"sections"`
}

// --- Entity kinds (index) ---

// Kind names the collection an id lives in.
type Kind string

const (
	KindActor       Kind = "actor"
	KindTerm        Kind = "term"
	KindCompetitor  Kind = "competitor"
	KindGoal        Kind = "goal"
	KindMetric      Kind = "metric"
	KindRequirement Kind = "requirement"
	KindMilestone   Kind = "milestone"
	KindNarrative   Kind = "narrative"
)

// Direction is used by the Move* operations.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)
