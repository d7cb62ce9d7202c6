package entitlements

import "regexp"

var (
	reStringFromCharCode = regexp.MustCompile(`\bString\.fromCharCode\s*\(`)
	reStringRawHexEscape = regexp.MustCompile(`String\.raw` + "`" + `[^` + "`" + `]*\\x[0-9a-fA-F]{2}`)
	reAtob               = regexp.MustCompile(`\batob\s*\(`)
	reBufferBase64       = regexp.MustCompile(`Buffer\.from\s*\([^)]*,\s*['"]base64['"]\s*\)`)

	reBracketGlobalLiteral = regexp.MustCompile(`(?:globalThis|process)\s*\[\s*['"][^'"]+['"]\s*\]`)
	reBracketGlobalComputed = regexp.MustCompile(`(?:globalThis|process)\s*\[\s*[A-Za-z_$][\w.]*\s*\]`)

	reRequireComputed = regexp.MustCompile(`\brequire\s*\(\s*[^'")\s][^)]*\)`)
	reImportComputed  = regexp.MustCompile(`\bimport\s*\(\s*[^'")\s][^)]*\)`)

	reHexEscape    = regexp.MustCompile(`\\x[0-9a-fA-F]{2}`)
	reUnicodeEscape = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
	reNumericEscape = regexp.MustCompile(`\\[0-9]{1,3}`)
)

// encodingDensityThreshold is the fraction of source characters that must
// be covered by escape-sequence runs before encoding-density is flagged
// (§4.3).
const encodingDensityThreshold = 0.08

// scanEvasion is the second, independent pass over source looking for
// signals that a handler is trying to obscure its capability surface
// (§4.3 "Evasion indicators").
func scanEvasion(source string) []EvasionIndicator {
	var out []EvasionIndicator

	if reStringFromCharCode.MatchString(source) {
		out = append(out, EvasionIndicator{
			Type:       EvasionStringConstruction,
			Confidence: EvasionHigh,
			Detail:     "String.fromCharCode used to assemble a string at runtime",
		})
	}
	if reStringRawHexEscape.MatchString(source) {
		out = append(out, EvasionIndicator{
			Type:       EvasionStringConstruction,
			Confidence: EvasionMedium,
			Detail:     "String.raw template contains hex escape sequences",
		})
	}
	if reAtob.MatchString(source) {
		out = append(out, EvasionIndicator{
			Type:       EvasionStringConstruction,
			Confidence: EvasionLow,
			Detail:     "atob used to decode a base64 string",
		})
	}
	if reBufferBase64.MatchString(source) {
		out = append(out, EvasionIndicator{
			Type:       EvasionStringConstruction,
			Confidence: EvasionLow,
			Detail:     "Buffer.from(..., 'base64') used to decode a string",
		})
	}

	if reBracketGlobalComputed.MatchString(source) {
		out = append(out, EvasionIndicator{
			Type:       EvasionIndirectAccess,
			Confidence: EvasionHigh,
			Detail:     "globalThis/process indexed with a computed (non-literal) expression",
		})
	} else if reBracketGlobalLiteral.MatchString(source) {
		out = append(out, EvasionIndicator{
			Type:       EvasionIndirectAccess,
			Confidence: EvasionMedium,
			Detail:     "globalThis/process indexed with a string literal",
		})
	}

	if reRequireComputed.MatchString(source) || reImportComputed.MatchString(source) {
		out = append(out, EvasionIndicator{
			Type:       EvasionComputedImport,
			Confidence: EvasionHigh,
			Detail:     "require()/import() argument is not a plain string literal",
		})
	}

	if density := encodingDensity(source); density > encodingDensityThreshold {
		out = append(out, EvasionIndicator{
			Type:       EvasionEncodingDensity,
			Confidence: EvasionMedium,
			Detail:     "high density of hex/unicode/numeric escape sequences",
		})
	}

	return out
}

// encodingDensity is the fraction of source bytes covered by escape-
// sequence runs (\xNN, \uNNNN, \unnnn, or numeric escapes).
func encodingDensity(source string) float64 {
	if len(source) == 0 {
		return 0
	}

	covered := 0
	for _, m := range reHexEscape.FindAllString(source, -1) {
		covered += len(m)
	}
	for _, m := range reUnicodeEscape.FindAllString(source, -1) {
		covered += len(m)
	}
	for _, m := range reNumericEscape.FindAllString(source, -1) {
		covered += len(m)
	}

	return float64(covered) / float64(len(source))
}
