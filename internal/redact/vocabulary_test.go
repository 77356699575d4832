package redact

import "testing"

func TestProtector(t *testing.T) {
	t.Run("ExactVocabularyTerm", func(t *testing.T) {
		text := "tracked vocals through a Neumann U87 into the desk"
		span := Span{Start: 25, End: 36, Text: "Neumann U87"}

		prot := newProtector(true, nil, nil, 3)
		if !prot.isProtected(text, span) {
			t.Error("exact vocabulary term not protected")
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		text := "tracked vocals through a NEUMANN u87 into the desk"
		span := Span{Start: 25, End: 36, Text: "NEUMANN u87"}

		prot := newProtector(true, nil, nil, 3)
		if !prot.isProtected(text, span) {
			t.Error("case variant not protected")
		}
	})

	t.Run("CandidateInsideProtectedPhrase", func(t *testing.T) {
		// The candidate covers only part of the phrase; the surrounding
		// context completes it.
		text := "mixed on the SSL console last night"
		span := Span{Start: 17, End: 24, Text: "console"}

		prot := newProtector(true, nil, nil, 3)
		if !prot.isProtected(text, span) {
			t.Error("candidate inside protected phrase not protected")
		}
	})

	t.Run("PreserveDisabledSkipsVocabulary", func(t *testing.T) {
		text := "tracked vocals through a Neumann U87 into the desk"
		span := Span{Start: 25, End: 36, Text: "Neumann U87"}

		prot := newProtector(false, nil, nil, 3)
		if prot.isProtected(text, span) {
			t.Error("vocabulary consulted with preservation disabled")
		}
	})

	t.Run("WhitelistAlwaysApplies", func(t *testing.T) {
		text := "call the studio line 555-123-4567 anytime"
		span := Span{Start: 21, End: 33, Text: "555-123-4567"}

		prot := newProtector(false, []string{"555-123-4567"}, nil, 3)
		if !prot.isProtected(text, span) {
			t.Error("whitelisted string not protected")
		}
	})

	t.Run("TermOutsideWindowDoesNotProtect", func(t *testing.T) {
		// The vocabulary term is present but far from the candidate, so it
		// must not veto it.
		text := "John Smith booked more time because the studio has a great Neumann U87"
		span := Span{Start: 0, End: 10, Text: "John Smith"}

		prot := newProtector(true, nil, nil, 3)
		if prot.isProtected(text, span) {
			t.Error("distant vocabulary term protected an unrelated candidate")
		}
	})

	t.Run("NonASCIIUppercaseWhitelist", func(t *testing.T) {
		// É and Í must fold the same way on both the entry and the text.
		text := "tracks from JOSÉ GARCÍA arrived"
		span := Span{Start: 12, End: 25, Text: "JOSÉ GARCÍA"}

		prot := newProtector(false, []string{"José García"}, nil, 3)
		if !prot.isProtected(text, span) {
			t.Error("accented whitelist entry not matched against its occurrence")
		}
	})

	t.Run("MultiByteTokenInsideWindow", func(t *testing.T) {
		// Å encodes with a continuation byte that looks like NEL; the window
		// scan must still cross the whole token.
		text := "sent to Åkerman Mastering today"
		span := Span{Start: 17, End: 26, Text: "Mastering"}

		prot := newProtector(true, nil, []string{"Åkerman Mastering"}, 1)
		if !prot.isProtected(text, span) {
			t.Error("candidate inside accented protected phrase not protected")
		}
	})

	t.Run("ExtraVocabulary", func(t *testing.T) {
		text := "patched through the Chandler TG2 for color"
		span := Span{Start: 20, End: 32, Text: "Chandler TG2"}

		if newProtector(true, nil, nil, 3).isProtected(text, span) {
			t.Error("unknown term protected without extra vocabulary")
		}
		if !newProtector(true, nil, []string{"Chandler TG2"}, 3).isProtected(text, span) {
			t.Error("extra vocabulary term not protected")
		}
	})
}

func TestVocabularyImmutable(t *testing.T) {
	a := Vocabulary()
	a[0] = "mutated"

	b := Vocabulary()
	if b[0] == "mutated" {
		t.Error("Vocabulary returned shared backing storage")
	}
}
