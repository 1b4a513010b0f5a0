package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HendryAvila/prdgraph/internal/policy"
)

// Detail levels for rendered context packs.
//   - summary: ids, types and titles only
//   - standard: titles plus truncated descriptions and edges
//   - full: everything, untruncated
const (
	DetailSummary  = "summary"
	DetailStandard = "standard"
	DetailFull     = "full"
)

// DetailLevelValues returns the enum values for tool definitions.
func DetailLevelValues() []string {
	return []string{DetailSummary, DetailStandard, DetailFull}
}

// ParseDetailLevel defaults empty or unknown values to standard.
func ParseDetailLevel(s string) string {
	switch s {
	case DetailSummary, DetailFull:
		return s
	default:
		return DetailStandard
	}
}

const standardSnippet = 160

// Render formats a context pack as markdown for an assistant.
func Render(pack ContextPack, level string) string {
	level = ParseDetailLevel(level)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Context: %s\n\n", pack.Meta.Title)
	fmt.Fprintf(&sb, "Status: %s | Version: %d | Discovery: %s\n",
		pack.Meta.Status, pack.Meta.Version, pack.Meta.DiscoveryMode)
	switch {
	case len(pack.Focus.NodeIDs) > 0:
		fmt.Fprintf(&sb, "Focus: %s\n", strings.Join(pack.Focus.NodeIDs, ", "))
	default:
		fmt.Fprintf(&sb, "Focus: %s\n", pack.Focus.Section)
	}

	fmt.Fprintf(&sb, "\n## Nodes (%d)\n\n", len(pack.Nodes))
	for _, n := range pack.Nodes {
		fmt.Fprintf(&sb, "- [%s] `%s` %s", n.Type, n.ID, n.Title)
		if level != DetailSummary && len(n.Tags) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(n.Tags, ", "))
		}
		sb.WriteString("\n")
		if level == DetailSummary || n.Description == "" {
			continue
		}
		desc := n.Description
		if level == DetailStandard {
			desc = truncate(desc, standardSnippet)
		}
		fmt.Fprintf(&sb, "  %s\n", strings.ReplaceAll(desc, "\n", "\n  "))
	}

	if level != DetailSummary {
		fmt.Fprintf(&sb, "\n## Edges (%d)\n\n", len(pack.Edges))
		for _, e := range pack.Edges {
			fmt.Fprintf(&sb, "- %s -[%s]-> %s\n", e.FromID, e.Type, e.ToID)
		}
	}

	renderPolicies(&sb, pack.Policies, level)

	if level == DetailSummary {
		sb.WriteString(SummaryFooter)
	}
	return sb.String()
}

// renderPolicies always lists the blocklists. Preferences and synonyms are
// left out of summaries.
func renderPolicies(sb *strings.Builder, p policy.Set, level string) {
	sb.WriteString("\n## Policies\n\n")
	if level != DetailSummary {
		fmt.Fprintf(sb, "- Preferred actors: %s\n", strings.Join(p.ActorPolicy.Allowlist, ", "))
	}
	fmt.Fprintf(sb, "- Blocked actors: %s\n", strings.Join(p.ActorPolicy.Blocklist, ", "))
	if level != DetailSummary {
		fmt.Fprintf(sb, "- Preferred terms: %s\n", strings.Join(p.TermPolicy.Allowlist, ", "))
	}
	fmt.Fprintf(sb, "- Blocked terms: %s\n", strings.Join(p.TermPolicy.Blocklist, ", "))
	if level == DetailSummary || len(p.TermPolicy.Synonyms) == 0 {
		return
	}
	keys := make([]string, 0, len(p.TermPolicy.Synonyms))
	for k := range p.TermPolicy.Synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s -> %s", k, strings.Join(p.TermPolicy.Synonyms[k], ", ")))
	}
	fmt.Fprintf(sb, "- Synonyms: %s\n", strings.Join(pairs, "; "))
}

// SummaryFooter nudges the reader toward a richer detail level.
const SummaryFooter = "\n---\nUse detail_level: standard or full for descriptions and edges."

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// EstimateTokens approximates the token count of text with the chars/4
// heuristic. Non-empty text is at least one token.
func EstimateTokens(text string) int {
	n := len(text)
	if n == 0 {
		return 0
	}
	if n < 4 {
		return 1
	}
	return n / 4
}

// TokenFooter reports the estimated size of a response.
func TokenFooter(estimatedTokens int) string {
	return fmt.Sprintf("\n~%s tokens", formatNumber(estimatedTokens))
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
