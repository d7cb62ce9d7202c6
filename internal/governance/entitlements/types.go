// Package entitlements implements the static entitlement scanner (§4.3):
// a text-level, regex-driven pass over handler source that infers
// capability booleans and evasion signals without ever executing the
// source. Conservative over-reporting is an accepted tradeoff — a match
// inside a comment still counts.
package entitlements

// Category mirrors contract.EntitlementCategory by value so this package
// has no dependency on the contract package (contract depends on this
// one, not the other way around).
type Category string

const (
	CategoryFilesystem     Category = "filesystem"
	CategoryNetwork        Category = "network"
	CategorySubprocess     Category = "subprocess"
	CategoryCrypto         Category = "crypto"
	CategoryCodeEvaluation Category = "codeEvaluation"
)

// Match is one static hit of a capability-surfacing identifier.
type Match struct {
	Category   Category
	Identifier string
	Line       *int
	File       *string
}

// EvasionConfidence mirrors contract.EvasionConfidence.
type EvasionConfidence string

const (
	EvasionLow    EvasionConfidence = "low"
	EvasionMedium EvasionConfidence = "medium"
	EvasionHigh   EvasionConfidence = "high"
)

// EvasionType mirrors contract.EvasionType.
type EvasionType string

const (
	EvasionStringConstruction EvasionType = "string-construction"
	EvasionIndirectAccess     EvasionType = "indirect-access"
	EvasionComputedImport     EvasionType = "computed-import"
	EvasionEncodingDensity    EvasionType = "encoding-density"
)

// EvasionIndicator is a signal the handler may be hiding its true
// capability surface.
type EvasionIndicator struct {
	Type       EvasionType
	Confidence EvasionConfidence
	Detail     string
}

// BuiltEntitlements is the aggregated capability-boolean surface derived
// from a set of matches (§4.3 "Aggregation").
type BuiltEntitlements struct {
	Filesystem     bool
	Network        bool
	Subprocess     bool
	Crypto         bool
	CodeEvaluation bool
}

// ViolationSeverity is the severity of a claims-validation violation.
type ViolationSeverity string

const (
	ViolationError   ViolationSeverity = "ERROR"
	ViolationWarning ViolationSeverity = "WARNING"
)

// Violation is one mismatch between a tool's declared claims (readOnly,
// destructive, allowed) and what the scanner actually found.
type Violation struct {
	Category    Category
	Severity    ViolationSeverity
	Description string
}

// DeclaredClaims is the set of behavioral claims a tool's action makes,
// checked against scanner findings by ValidateClaims.
type DeclaredClaims struct {
	ReadOnly    bool
	Destructive bool
	// Allowed lists categories that bypass the corresponding category-
	// wide violation rule (§4.3 "Aggregation and claims validation").
	Allowed []Category
}

// Report is the full result of scanAndValidate (§4.3).
type Report struct {
	Matches           []Match
	Entitlements      BuiltEntitlements
	EvasionIndicators []EvasionIndicator
	Violations        []Violation
	Safe              bool
	Summary           string
}
