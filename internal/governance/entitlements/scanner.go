package entitlements

import "strings"

// Scan runs the static entitlement scanner over handler source text and
// returns every match with a best-effort line number (§4.3). It never
// executes source.
func Scan(source string) Report {
	matches := scanMatches(source)
	evasions := scanEvasion(source)
	built := BuildEntitlements(matches)

	return Report{
		Matches:           matches,
		Entitlements:      built,
		EvasionIndicators: evasions,
		Safe:              !hasHighConfidenceEvasion(evasions),
		Summary:           summarize(matches, evasions),
	}
}

// ScanAndValidate runs the scanner and additionally checks the result
// against a tool's declared claims (§4.3 closing paragraph).
func ScanAndValidate(source string, claims DeclaredClaims) Report {
	matches := scanMatches(source)
	evasions := scanEvasion(source)
	built := BuildEntitlements(matches)
	violations := ValidateClaims(matches, claims)

	return Report{
		Matches:           matches,
		Entitlements:      built,
		EvasionIndicators: evasions,
		Violations:        violations,
		Safe:              !hasErrorViolation(violations) && !hasHighConfidenceEvasion(evasions),
		Summary:           summarize(matches, evasions),
	}
}

func scanMatches(source string) []Match {
	var matches []Match
	lines := strings.Split(source, "\n")

	for _, r := range allRules {
		for i, line := range lines {
			occurrences := r.pattern.FindAllStringIndex(line, -1)
			if len(occurrences) == 0 {
				continue
			}
			lineNo := i + 1
			for range occurrences {
				matches = append(matches, Match{
					Category:   r.category,
					Identifier: r.identifier,
					Line:       &lineNo,
				})
			}
		}
	}
	return matches
}

// BuildEntitlements aggregates raw matches into the five capability
// booleans (§4.3 "Aggregation").
func BuildEntitlements(matches []Match) BuiltEntitlements {
	var out BuiltEntitlements
	for _, m := range matches {
		switch m.Category {
		case CategoryFilesystem:
			out.Filesystem = true
		case CategoryNetwork:
			out.Network = true
		case CategorySubprocess:
			out.Subprocess = true
		case CategoryCrypto:
			out.Crypto = true
		case CategoryCodeEvaluation:
			out.CodeEvaluation = true
		}
	}
	return out
}

func hasErrorViolation(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == ViolationError {
			return true
		}
	}
	return false
}

func hasHighConfidenceEvasion(indicators []EvasionIndicator) bool {
	for _, ind := range indicators {
		if ind.Confidence == EvasionHigh {
			return true
		}
	}
	return false
}

// summarize builds the human-readable one-liner required by §4.3: it
// names the categories present, and calls out "sandboxed" when nothing
// matched or "evasion" when indicators were found.
func summarize(matches []Match, evasions []EvasionIndicator) string {
	if len(matches) == 0 {
		return "sandboxed: no capability-surfacing identifiers detected"
	}

	seen := map[Category]bool{}
	var categories []string
	for _, cat := range []Category{CategoryFilesystem, CategoryNetwork, CategorySubprocess, CategoryCrypto, CategoryCodeEvaluation} {
		for _, m := range matches {
			if m.Category == cat && !seen[cat] {
				seen[cat] = true
				categories = append(categories, string(cat))
			}
		}
	}

	summary := "capabilities detected: " + strings.Join(categories, ", ")
	if len(evasions) > 0 {
		summary += "; evasion indicators present"
	}
	return summary
}
