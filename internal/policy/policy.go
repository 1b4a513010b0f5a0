// Package policy holds the static allow/block lists that constrain which
// actor names and glossary terms an assistant may introduce.
//
// The tables are plain data. They are shipped to the assistant inside the
// context pack (to bias its generation) and consulted by the change applier
// (to reject proposals that violate them).
package policy

import "strings"

// TermPolicy constrains glossary entries.
type TermPolicy struct {
	Allowlist []string            `json:"allowlist"`
	Blocklist []string            `json:"blocklist"`
	Synonyms  map[string][]string `json:"synonyms"`
}

// ActorPolicy constrains actor names.
type ActorPolicy struct {
	Allowlist []string `json:"allowlist"`
	Blocklist []string `json:"blocklist"`
}

// Set bundles both tables as they appear in a context pack.
type Set struct {
	ActorPolicy ActorPolicy `json:"actorPolicy"`
	TermPolicy  TermPolicy  `json:"termPolicy"`
}

// DefaultTermPolicy returns the built-in term policy. Acronyms and generic
// headers on the blocklist must never become glossary entries.
func DefaultTermPolicy() TermPolicy {
	return TermPolicy{
		Allowlist: []string{
			"activation rate", "ARR", "CAC", "churn rate", "GDPR", "HIPAA", "LTV", "MRR",
			"net revenue retention", "NPS", "PII", "PHI", "SLA", "SLI", "SLO", "SOC 2",
			"time to value",
		},
		Blocklist: []string{
			"AI", "API", "ascii", "CEP", "CLI", "CPU", "CSS", "CSV", "DB", "DBMS", "DNS",
			"FAQ", "GCP", "GIF", "GPU", "GUI", "HTML", "HTTP", "HTTPS", "IoT", "IP", "IPv4",
			"IPv6", "JPEG", "JSON", "LAN", "MAC", "ML", "OS", "PDF", "PNG", "PRD", "SaaS",
			"SDK", "TL;DR", "UI", "URL", "UX",
		},
		Synonyms: map[string][]string{},
	}
}

// DefaultActorPolicy returns the built-in actor policy. Generic role names
// on the blocklist are too vague to be useful actors.
func DefaultActorPolicy() ActorPolicy {
	return ActorPolicy{
		Allowlist: []string{
			"Approver", "Champion", "Compliance Officer", "Data Analyst", "Decision Maker",
			"Engineering Lead", "Executive Sponsor", "Finance", "IT Admin", "Legal Counsel",
			"Operations Manager", "Procurement", "Product Manager", "Security Lead",
			"Support Manager", "Technical Buyer",
		},
		Blocklist: []string{"Admin", "Buyer", "Customer", "End user", "Stakeholder", "System", "User"},
	}
}

// Default returns both built-in tables.
func Default() Set {
	return Set{ActorPolicy: DefaultActorPolicy(), TermPolicy: DefaultTermPolicy()}
}

// Normalize trims and lowercases a value for membership checks.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// contains reports whether value matches any entry after normalization.
func contains(list []string, value string) bool {
	n := Normalize(value)
	for _, entry := range list {
		if Normalize(entry) == n {
			return true
		}
	}
	return false
}

// Blocks reports whether name is on the actor blocklist.
func (p ActorPolicy) Blocks(name string) bool { return contains(p.Blocklist, name) }

// Blocks reports whether term is on the term blocklist.
func (p TermPolicy) Blocks(term string) bool { return contains(p.Blocklist, term) }

// SynonymsOf returns the known synonyms of term, matched case-insensitively.
func (p TermPolicy) SynonymsOf(term string) []string {
	n := Normalize(term)
	for key, syns := range p.Synonyms {
		if Normalize(key) == n {
			return syns
		}
	}
	return nil
}
