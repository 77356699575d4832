package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// transform rewrites text according to the resolved spans and mode. Edits are
// applied right-to-left so earlier rewrites never invalidate later offsets.
// The returned replacements parallel the spans slice for the audit trail.
func transform(text string, spans []Span, mode Mode) (string, []string) {
	replacements := make([]string, len(spans))
	for i, span := range spans {
		replacements[i] = renderReplacement(span, mode)
	}

	out := []byte(text)
	for i := len(spans) - 1; i >= 0; i-- {
		span := spans[i]

		start, end := span.Start, span.End
		if mode == ModeRemove {
			// Collapse doubled whitespace at the removal junction.
			if start > 0 && end < len(out) && isSpace(out[start-1]) && isSpace(out[end]) {
				end++
			}
		}

		patched := make([]byte, 0, len(out)-(end-start)+len(replacements[i]))
		patched = append(patched, out[:start]...)
		patched = append(patched, replacements[i]...)
		patched = append(patched, out[end:]...)
		out = patched
	}

	return string(out), replacements
}

// renderReplacement produces the replacement string for one span under the
// given mode.
func renderReplacement(span Span, mode Mode) string {
	switch mode {
	case ModeMask:
		return maskSpan(span)
	case ModeHash:
		return hashSpan(span.Text)
	case ModeRemove:
		return ""
	default:
		return replaceToken(span)
	}
}

// replaceToken returns the fixed bracketed token for a span. Custom patterns
// use their declared replacement, falling back to a bracketed upper-cased
// name when none was supplied.
func replaceToken(span Span) string {
	if span.Source == SourceCustom {
		if span.Replacement != "" {
			return span.Replacement
		}
		return "[" + strings.ToUpper(span.Category) + "]"
	}

	if rule, ok := ruleFor(Category(span.Category)); ok {
		return rule.Token
	}
	return "[REDACTED]"
}

// hashSpan returns a deterministic 8-hex-character digest of the matched
// substring. Display-grade stability only, not an anonymization guarantee.
func hashSpan(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:8]
}

// maskSpan applies the category-specific partial reveal.
func maskSpan(span Span) string {
	switch Category(span.Category) {
	case CategoryNames:
		return maskName(span.Text)
	case CategoryEmails:
		return maskEmail(span.Text)
	case CategoryPhones, CategoryFinancial:
		return maskDigits(span.Text, 4)
	default:
		return maskGeneric(span.Text)
	}
}

// maskName keeps each token's first letter and masks the remainder of the
// token, preserving the original inter-token whitespace.
func maskName(text string) string {
	var b strings.Builder
	tokenStart := true
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune(r)
			tokenStart = true
		case tokenStart:
			b.WriteRune(r)
			tokenStart = false
		default:
			b.WriteByte('*')
		}
	}
	return b.String()
}

// maskEmail keeps the first two characters of the local part and the full
// domain.
func maskEmail(text string) string {
	at := strings.Index(text, "@")
	if at < 0 {
		return maskGeneric(text)
	}

	local, domain := text[:at], text[at:]
	visible := 2
	if len(local) < visible {
		visible = len(local)
	}
	return local[:visible] + strings.Repeat("*", len(local)-visible) + domain
}

// maskDigits keeps all non-digit separators verbatim and the last keep
// digits, masking every preceding digit.
func maskDigits(text string, keep int) string {
	digits := 0
	for _, r := range text {
		if unicode.IsDigit(r) {
			digits++
		}
	}

	var b strings.Builder
	seen := 0
	for _, r := range text {
		if !unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		seen++
		if digits-seen < keep {
			b.WriteRune(r)
		} else {
			b.WriteByte('*')
		}
	}
	return b.String()
}

// maskGeneric masks every letter and digit, keeping separators so the visual
// shape survives.
func maskGeneric(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteByte('*')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
