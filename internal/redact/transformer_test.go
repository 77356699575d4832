package redact

import (
	"strings"
	"testing"
)

func TestTransformModes(t *testing.T) {
	t.Run("ReplaceTokens", func(t *testing.T) {
		text := "reach me at 123 Main Street or card 4111-1111-1111-1111"
		spans := []Span{
			{Start: 12, End: 27, Category: "addresses", Text: "123 Main Street", Source: SourceBuiltin},
			{Start: 36, End: 55, Category: "financial", Text: "4111-1111-1111-1111", Source: SourceBuiltin},
		}

		out, replacements := transform(text, spans, ModeReplace)
		if !strings.Contains(out, "[ADDRESS]") || !strings.Contains(out, "[FINANCIAL]") {
			t.Errorf("tokens missing: %q", out)
		}
		if replacements[0] != "[ADDRESS]" || replacements[1] != "[FINANCIAL]" {
			t.Errorf("replacements = %v", replacements)
		}
	})

	t.Run("MaskShapes", func(t *testing.T) {
		cases := []struct {
			name string
			span Span
			want string
		}{
			{"Name", Span{Category: "names", Text: "John Smith"}, "J*** S****"},
			{"NameWithHonorific", Span{Category: "names", Text: "Dr. John Smith"}, "D** J*** S****"},
			{"Email", Span{Category: "emails", Text: "john.smith@email.com"}, "jo********@email.com"},
			{"ShortLocalEmail", Span{Category: "emails", Text: "jo@email.com"}, "jo@email.com"},
			{"Phone", Span{Category: "phones", Text: "555-123-4567"}, "***-***-4567"},
			{"PhoneWithParens", Span{Category: "phones", Text: "(555) 123-4567"}, "(***) ***-4567"},
			{"Financial", Span{Category: "financial", Text: "4111-1111-1111-1111"}, "****-****-****-1111"},
			{"Address", Span{Category: "addresses", Text: "123 Main Street"}, "*** **** ******"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got := maskSpan(tc.span)
				if got != tc.want {
					t.Errorf("maskSpan(%q) = %q, want %q", tc.span.Text, got, tc.want)
				}
			})
		}
	})

	t.Run("HashDeterministic", func(t *testing.T) {
		a := hashSpan("john.smith@email.com")
		b := hashSpan("john.smith@email.com")
		c := hashSpan("mary.jones@email.com")

		if len(a) != 8 {
			t.Errorf("digest length = %d, want 8", len(a))
		}
		if a != b {
			t.Errorf("same input hashed differently: %q vs %q", a, b)
		}
		if a == c {
			t.Errorf("distinct inputs collided: %q", a)
		}
		for _, r := range a {
			if !strings.ContainsRune("0123456789abcdef", r) {
				t.Errorf("digest not hex: %q", a)
			}
		}
	})

	t.Run("RemoveCollapsesWhitespace", func(t *testing.T) {
		text := "call 555-123-4567 today"
		spans := []Span{{Start: 5, End: 17, Category: "phones", Text: "555-123-4567", Source: SourceBuiltin}}

		out, _ := transform(text, spans, ModeRemove)
		if out != "call today" {
			t.Errorf("got %q, want %q", out, "call today")
		}
		if strings.Contains(out, "  ") {
			t.Errorf("doubled whitespace survived: %q", out)
		}
	})

	t.Run("RightToLeftOffsets", func(t *testing.T) {
		text := "a@b.com and c@d.com"
		spans := []Span{
			{Start: 0, End: 7, Category: "emails", Text: "a@b.com", Source: SourceBuiltin},
			{Start: 12, End: 19, Category: "emails", Text: "c@d.com", Source: SourceBuiltin},
		}

		out, _ := transform(text, spans, ModeReplace)
		if out != "[EMAIL] and [EMAIL]" {
			t.Errorf("got %q", out)
		}
	})

	t.Run("CustomReplacement", func(t *testing.T) {
		span := Span{Category: "booking_ref", Text: "BK-99", Source: SourceCustom, Replacement: "[BOOKING]"}
		if got := renderReplacement(span, ModeReplace); got != "[BOOKING]" {
			t.Errorf("got %q", got)
		}

		span.Replacement = ""
		if got := renderReplacement(span, ModeReplace); got != "[BOOKING_REF]" {
			t.Errorf("fallback replacement = %q", got)
		}
	})
}
