// Package errors provides structured errors for the personnel engines.
//
// Every Code belongs to one Class. Engines use the class to decide how to
// degrade: configuration and internal failures are logged at error level and
// the affected roll is skipped, missing references skip the item, and I/O
// failures fall back to default state.
package errors

// Code is a machine-readable error code.
type Code string

// Class groups codes by how callers recover from them.
type Class string

const (
	ClassConfiguration    Class = "configuration"
	ClassMissingReference Class = "missing_reference"
	ClassIO               Class = "io"
	ClassInternal         Class = "internal"
)

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Rule table errors
	CodeRuleTableInvalid   Code = "RULE_TABLE_INVALID"
	CodeRuleTableEmpty     Code = "RULE_TABLE_EMPTY"
	CodeFallbackMissing    Code = "FALLBACK_MISSING"
	CodeFallbackExhausted  Code = "FALLBACK_EXHAUSTED"
	CodeMarketStyleUnknown Code = "MARKET_STYLE_UNKNOWN"
	CodeOptionsInvalid     Code = "OPTIONS_INVALID"

	// Reference errors
	CodeNotFound        Code = "NOT_FOUND"
	CodeFactionUnknown  Code = "FACTION_UNKNOWN"
	CodePersonNotFound  Code = "PERSON_NOT_FOUND"
	CodePersonNotFree   Code = "PERSON_NOT_FREE"
	CodeMissionNotFound Code = "MISSION_NOT_FOUND"
	CodePersonSynthesis Code = "PERSON_SYNTHESIS_FAILED"

	// Persistence errors
	CodeSaveDecode  Code = "SAVE_DECODE"
	CodeSaveEncode  Code = "SAVE_ENCODE"
	CodeStorage     Code = "STORAGE"
	CodeFixtureLoad Code = "FIXTURE_LOAD"

	// Consistency errors
	CodeZeroTotalWeight Code = "ZERO_TOTAL_WEIGHT"
	CodeInvariant       Code = "INVARIANT_VIOLATION"
)

// Class returns the recovery class for the code.
func (c Code) Class() Class {
	switch c {
	case CodeRuleTableInvalid, CodeRuleTableEmpty, CodeFallbackMissing,
		CodeFallbackExhausted, CodeMarketStyleUnknown, CodeOptionsInvalid:
		return ClassConfiguration
	case CodeNotFound, CodeFactionUnknown, CodePersonNotFound, CodePersonNotFree,
		CodeMissionNotFound, CodePersonSynthesis:
		return ClassMissingReference
	case CodeSaveDecode, CodeSaveEncode, CodeStorage, CodeFixtureLoad:
		return ClassIO
	default:
		return ClassInternal
	}
}

// ErrorLevel reports whether failures of this code are logged at error level.
// Missing references are routine and logged as plain skips.
func (c Code) ErrorLevel() bool {
	return c.Class() != ClassMissingReference
}
