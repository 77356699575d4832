package redact

import (
	"fmt"
	"regexp"
	"time"
)

// Category identifies a built-in PII category.
type Category string

const (
	CategoryNames     Category = "names"
	CategoryEmails    Category = "emails"
	CategoryPhones    Category = "phones"
	CategoryAddresses Category = "addresses"
	CategoryFinancial Category = "financial"
)

// BuiltinCategories lists every supported built-in category.
func BuiltinCategories() []Category {
	return []Category{CategoryNames, CategoryEmails, CategoryPhones, CategoryAddresses, CategoryFinancial}
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryNames, CategoryEmails, CategoryPhones, CategoryAddresses, CategoryFinancial:
		return Category(s), nil
	default:
		return "", &Error{Kind: ErrorKindValidation, Message: fmt.Sprintf("unknown category: %s", s)}
	}
}

// Mode selects the rewrite strategy applied to resolved spans.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeMask    Mode = "mask"
	ModeHash    Mode = "hash"
	ModeRemove  Mode = "remove"
)

// ParseMode converts a string to a Mode. Empty input falls back to replace.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeReplace, nil
	case ModeReplace, ModeMask, ModeHash, ModeRemove:
		return Mode(s), nil
	default:
		return "", &Error{Kind: ErrorKindValidation, Message: fmt.Sprintf("unsupported mode: %s", s)}
	}
}

// SpanSource records which detector produced a span.
type SpanSource int

const (
	// SourceBuiltin marks spans found by a built-in category rule.
	SourceBuiltin SpanSource = iota
	// SourceCustom marks spans found by a caller-supplied pattern.
	SourceCustom
)

// Span is a half-open character range [Start, End) in the original text
// identified as a redaction candidate.
type Span struct {
	Start    int
	End      int
	Category string
	Text     string
	Source   SpanSource
	// Replacement is the declared replacement for custom-pattern spans.
	Replacement string
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether two spans share any position.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// CustomPattern is a caller-supplied pattern/replacement pair.
type CustomPattern struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// compiledPattern is a custom pattern that passed validation.
type compiledPattern struct {
	name        string
	re          *regexp.Regexp
	replacement string
}

// Config controls a single redaction call.
type Config struct {
	Mode                Mode
	Categories          []Category
	PreserveDomainTerms bool
	CustomPatterns      []CustomPattern
	Whitelist           []string
}

// Instance is one redacted occurrence, positioned against the original text.
type Instance struct {
	Category    string `json:"category"`
	MatchedText string `json:"matched_text"`
	Position    int    `json:"position"`
	Replacement string `json:"replacement"`
}

// Metadata is the audit trail for a redaction call.
type Metadata struct {
	Mode                Mode           `json:"mode"`
	CategoriesProcessed []Category     `json:"categories_processed"`
	PreserveDomainTerms bool           `json:"preserve_domain_terms"`
	CustomPatternCount  int            `json:"custom_pattern_count"`
	WhitelistSize       int            `json:"whitelist_size"`
	CountsByCategory    map[string]int `json:"counts_by_category"`
	TotalRedacted       int            `json:"total_redacted"`
	DetectedInstances   []Instance     `json:"detected_instances"`
	OriginalLength      int            `json:"original_length"`
	RedactedLength      int            `json:"redacted_length"`
	Timestamp           time.Time      `json:"timestamp"`
}

// Result is the outcome of a successful redaction call.
type Result struct {
	RedactedText string   `json:"redacted_text"`
	Metadata     Metadata `json:"metadata"`
}

// ErrorKind classifies engine failures.
type ErrorKind string

const (
	// ErrorKindValidation covers empty/too-short text, unsupported modes,
	// unknown categories and malformed config shapes.
	ErrorKindValidation ErrorKind = "validation_error"
	// ErrorKindPatternCompile is scoped to a single custom-pattern entry and
	// never fails a call; the entry is dropped instead.
	ErrorKindPatternCompile ErrorKind = "pattern_compilation_error"
)

// Error is a typed engine failure.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
