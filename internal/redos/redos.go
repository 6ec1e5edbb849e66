// Package redos implements spec §4.6's catastrophic-backtracking risk
// analyzer: a specialized AST pass that never executes the pattern,
// only inspects its shape for known ambiguous-repetition forms.
package redos

import (
	"sort"

	"github.com/yoeunes/regexlab/internal/ast"
	"github.com/yoeunes/regexlab/internal/diag"
)

// Analyze runs every heuristic over root and reconciles the results into
// one ReDoSAnalysis. Final severity is the maximum bucket across
// detected, non-mitigated patterns (spec §4.6); a pattern present in
// cfg.RedosIgnoredPatterns is reported safe outright.
func Analyze(root *ast.Regex, body []byte, source string, cfg Config) Analysis {
	if cfg.ignored(source) {
		return Analysis{Severity: SeveritySafe, Confidence: ConfidenceHigh}
	}

	parents := buildParents(root)
	var findings []finding
	findings = append(findings, detectStarHeight(root, parents)...)
	findings = append(findings, detectOverlappingAlternation(root, parents)...)
	findings = append(findings, detectBackrefInQuantifiedScope(root, parents)...)
	findings = append(findings, detectQuantifiedEmptyMatch(root, parents)...)
	findings = append(findings, detectAdjacentQuantifiers(root, parents)...)
	findings = append(findings, detectLargeBoundedRepeat(root, cfg)...)

	if len(findings) == 0 {
		return Analysis{Severity: SeveritySafe, Confidence: ConfidenceHigh}
	}

	hotspots := make([]Hotspot, len(findings))
	recs := make([]Recommendation, len(findings))
	for i, f := range findings {
		hotspots[i] = Hotspot{Rule: f.rule, Offset: f.offset, Snippet: diag.Snippet(body, f.offset)}
		recs[i] = Recommendation{Rule: f.rule, Message: recommendationFor(f.rule)}
	}
	sort.SliceStable(hotspots, func(i, j int) bool { return hotspots[i].Offset < hotspots[j].Offset })

	bestIdx := -1
	allMitigated := true
	for i, f := range findings {
		if f.mitigated {
			continue
		}
		allMitigated = false
		if bestIdx == -1 || f.severity.rank() > findings[bestIdx].severity.rank() {
			bestIdx = i
		}
	}
	if allMitigated {
		bestIdx = 0
		// Every detection was mitigated; still report the strongest one
		// so a caller sees what tripped the analyzer, but flag it as a
		// likely false positive instead of silently downgrading to safe.
		for i, f := range findings {
			if f.severity.rank() > findings[bestIdx].severity.rank() {
				bestIdx = i
			}
		}
	}
	best := findings[bestIdx]

	severity := best.severity
	score := best.score
	if allMitigated {
		severity = downgrade(severity)
		score -= 3
		if score < 0 {
			score = 0
		}
	}

	return Analysis{
		Severity:          severity,
		Score:             score,
		Confidence:        best.confidence,
		VulnerablePart:    diag.Snippet(body, best.offset),
		Recommendations:   recs,
		Hotspots:          hotspots,
		FalsePositiveRisk: allMitigated,
	}
}

func downgrade(s Severity) Severity {
	switch s {
	case SeverityCritical:
		return SeverityHigh
	case SeverityHigh:
		return SeverityMedium
	case SeverityMedium:
		return SeverityLow
	default:
		return SeveritySafe
	}
}

func recommendationFor(rule string) string {
	switch rule {
	case "nested-unbounded-quantifier":
		return "wrap the inner repetition in an atomic group (?>...) or make the outer quantifier possessive to remove the ambiguity"
	case "overlapping-alternation-under-repetition":
		return "reorder the alternation so branches no longer share a starting byte, or wrap the group atomically"
	case "backreference-in-quantified-scope":
		return "anchor or bound the referenced group's length before repeating the backreference"
	case "quantified-empty-match-target":
		return "require at least one character inside the quantifier's target so it cannot repeat on an empty match"
	case "ambiguous-adjacent-quantifiers":
		return "merge the two quantified atoms or make their character sets disjoint"
	case "large-bounded-repeat":
		return "lower the repeat count or switch to an unbounded quantifier with an explicit resource budget"
	default:
		return "review the flagged subpattern for ambiguous repetition"
	}
}
