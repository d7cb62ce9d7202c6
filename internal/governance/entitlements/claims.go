package entitlements

import "strings"

// ValidateClaims checks a set of matches against a tool's declared
// behavioral claims and returns every violation (§4.3 "Aggregation and
// claims validation"). allowed bypasses the corresponding category-wide
// rule, except that a codeEvaluation match combined with readOnly=true
// always produces an error regardless of allowed.
func ValidateClaims(matches []Match, claims DeclaredClaims) []Violation {
	allowed := toSet(claims.Allowed)

	hasWriteFS := false
	hasSubprocess := false
	hasCodeEval := false
	for _, m := range matches {
		switch m.Category {
		case CategoryFilesystem:
			if strings.HasPrefix(m.Identifier, "writeFile") {
				hasWriteFS = true
			}
		case CategorySubprocess:
			hasSubprocess = true
		case CategoryCodeEvaluation:
			hasCodeEval = true
		}
	}

	var violations []Violation

	if claims.ReadOnly {
		if hasWriteFS && !allowed[CategoryFilesystem] {
			violations = append(violations, Violation{
				Category:    CategoryFilesystem,
				Severity:    ViolationError,
				Description: "declared readOnly=true but the handler writes to the filesystem",
			})
		}
		if hasSubprocess && !allowed[CategorySubprocess] {
			violations = append(violations, Violation{
				Category:    CategorySubprocess,
				Severity:    ViolationError,
				Description: "declared readOnly=true but the handler spawns a subprocess",
			})
		}
	}

	if !claims.Destructive && hasSubprocess && !allowed[CategorySubprocess] {
		violations = append(violations, Violation{
			Category:    CategorySubprocess,
			Severity:    ViolationWarning,
			Description: "declared destructive=false but the handler spawns a subprocess",
		})
	}

	if hasCodeEval {
		suppressedByAllowed := allowed[CategoryCodeEvaluation]
		if !suppressedByAllowed || claims.ReadOnly {
			violations = append(violations, Violation{
				Category:    CategoryCodeEvaluation,
				Severity:    ViolationError,
				Description: "handler can evaluate arbitrary code at runtime; blast radius is unbounded",
			})
		}
	}

	return violations
}

func toSet(categories []Category) map[Category]bool {
	set := make(map[Category]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	return set
}
