package redact

import "testing"

func noProtection() *protector {
	return newProtector(false, nil, nil, DefaultContextWindowTokens)
}

func TestResolveConflicts(t *testing.T) {
	t.Run("SortedNonOverlapping", func(t *testing.T) {
		text := "abcdefghijklmnopqrstuvwxyz abcdefghijklmnopqrstuvwxyz"
		candidates := []Span{
			{Start: 20, End: 30, Category: "phones", Text: text[20:30], Source: SourceBuiltin},
			{Start: 0, End: 10, Category: "emails", Text: text[0:10], Source: SourceBuiltin},
			{Start: 40, End: 45, Category: "names", Text: text[40:45], Source: SourceBuiltin},
		}

		resolved := resolveConflicts(text, candidates, noProtection())
		if len(resolved) != 3 {
			t.Fatalf("resolved = %d spans, want 3", len(resolved))
		}
		for i := 1; i < len(resolved); i++ {
			if resolved[i].Start < resolved[i-1].End {
				t.Errorf("spans not strictly increasing: %+v", resolved)
			}
		}
	})

	t.Run("EarlierLongerWins", func(t *testing.T) {
		text := "0123456789012345678901234567890"
		candidates := []Span{
			{Start: 5, End: 12, Category: "names", Text: text[5:12], Source: SourceBuiltin},
			{Start: 2, End: 20, Category: "addresses", Text: text[2:20], Source: SourceBuiltin},
		}

		resolved := resolveConflicts(text, candidates, noProtection())
		if len(resolved) != 1 {
			t.Fatalf("resolved = %d spans, want 1", len(resolved))
		}
		if resolved[0].Category != "addresses" {
			t.Errorf("kept %s, want addresses", resolved[0].Category)
		}
	})

	t.Run("BuiltinBeatsCustomOnExactTie", func(t *testing.T) {
		text := "0123456789"
		candidates := []Span{
			{Start: 0, End: 10, Category: "ref", Text: text, Source: SourceCustom, Replacement: "[REF]"},
			{Start: 0, End: 10, Category: "financial", Text: text, Source: SourceBuiltin},
		}

		resolved := resolveConflicts(text, candidates, noProtection())
		if len(resolved) != 1 {
			t.Fatalf("resolved = %d spans, want 1", len(resolved))
		}
		if resolved[0].Source != SourceBuiltin {
			t.Errorf("custom pattern won the exact tie: %+v", resolved[0])
		}
	})

	t.Run("ProtectedSpansDiscarded", func(t *testing.T) {
		text := "recorded with a Neumann U87 yesterday"
		candidates := []Span{
			{Start: 16, End: 27, Category: "names", Text: "Neumann U87", Source: SourceBuiltin},
		}

		prot := newProtector(true, nil, nil, DefaultContextWindowTokens)
		resolved := resolveConflicts(text, candidates, prot)
		if len(resolved) != 0 {
			t.Errorf("protected span survived: %+v", resolved)
		}
	})
}
