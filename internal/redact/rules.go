package redact

import "regexp"

// CategoryRule is a single built-in detection rule. Each category owns one
// pattern and one bracketed replacement token used by replace mode.
type CategoryRule struct {
	Category Category
	Pattern  *regexp.Regexp
	Token    string
}

var builtinRules = []CategoryRule{
	{
		Category: CategoryNames,
		// Honorific-optional runs of 2+ capitalized tokens with an optional
		// generational suffix. Leading sentence words are trimmed afterwards,
		// see refineNameSpan.
		Pattern: regexp.MustCompile(`(?:\b(?:Mr|Mrs|Ms|Dr|Prof)\.?\s+)?\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+(?:\s+(?:Jr|Sr)\.?|\s+I{2,3}|\s+IV)?`),
		Token:   "[NAME]",
	},
	{
		Category: CategoryEmails,
		Pattern:  regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		Token:    "[EMAIL]",
	},
	{
		Category: CategoryPhones,
		// Optional country code, separator-tolerant digit groups.
		Pattern: regexp.MustCompile(`(?:\+?1[-.\s]?)?(?:\(\d{3}\)|\b\d{3})[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		Token:   "[PHONE]",
	},
	{
		Category: CategoryAddresses,
		Pattern:  regexp.MustCompile(`\b\d{1,5}\s+(?:[A-Z][A-Za-z]+\s+){0,3}(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Place|Pl|Way)\b\.?(?:,?\s+(?:Apt|Apartment|Suite|Ste|Unit|#)\.?\s*[\w-]+)?(?:,\s+[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)*,?\s+[A-Z]{2}\s+\d{5}(?:-\d{4})?)?`),
		Token:    "[ADDRESS]",
	},
	{
		Category: CategoryFinancial,
		// Card numbers (13-16 digits, separator tolerant), then bare routing
		// (9) and account (10-12) digit runs.
		Pattern: regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{1,4}\b|\b\d{13,16}\b|\b\d{9,12}\b`),
		Token:   "[FINANCIAL]",
	},
}

// ruleFor returns the built-in rule for a category.
func ruleFor(c Category) (CategoryRule, bool) {
	for _, r := range builtinRules {
		if r.Category == c {
			return r, true
		}
	}
	return CategoryRule{}, false
}

// nameStopwords are capitalized sentence words that start or end a
// capitalized-token run without being part of a person's name.
var nameStopwords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"A": true, "An": true, "And": true, "Or": true, "But": true,
	"If": true, "Then": true, "When": true, "While": true, "Also": true,
	"Contact": true, "Call": true, "Email": true, "Phone": true,
	"Please": true, "Dear": true, "Hello": true, "Hi": true, "Hey": true,
	"Thanks": true, "Thank": true, "Regards": true, "Best": true,
	"From": true, "To": true, "Subject": true, "Used": true, "Using": true,
	"Our": true, "Your": true, "My": true, "His": true, "Her": true,
	"For": true, "With": true, "At": true, "On": true, "In": true,
	"Send": true, "Ask": true, "Tell": true, "Meet": true, "See": true,
}
