package redact

import "testing"

func TestMatchCategories(t *testing.T) {
	t.Run("Names", func(t *testing.T) {
		spans := matchCategories("Please ask Dr. John Smith about the mix", []Category{CategoryNames})
		if len(spans) != 1 {
			t.Fatalf("spans = %d, want 1", len(spans))
		}
		if spans[0].Text != "Dr. John Smith" {
			t.Errorf("matched %q, want %q", spans[0].Text, "Dr. John Smith")
		}
	})

	t.Run("NamesSentenceWordTrimmed", func(t *testing.T) {
		spans := matchCategories("Contact John Smith about the session", []Category{CategoryNames})
		if len(spans) != 1 {
			t.Fatalf("spans = %d, want 1", len(spans))
		}
		if spans[0].Text != "John Smith" {
			t.Errorf("matched %q, want %q", spans[0].Text, "John Smith")
		}
	})

	t.Run("NamesSingleTokenDropped", func(t *testing.T) {
		spans := matchCategories("Used Neumann microphones on the kit", []Category{CategoryNames})
		if len(spans) != 0 {
			t.Errorf("spans = %v, want none", spans)
		}
	})

	t.Run("Emails", func(t *testing.T) {
		spans := matchCategories("write to mix.engineer+takes@studio-mail.co.uk please", []Category{CategoryEmails})
		if len(spans) != 1 {
			t.Fatalf("spans = %d, want 1", len(spans))
		}
		if spans[0].Text != "mix.engineer+takes@studio-mail.co.uk" {
			t.Errorf("matched %q", spans[0].Text)
		}
	})

	t.Run("PhoneVariants", func(t *testing.T) {
		variants := []string{
			"555-123-4567",
			"555.123.4567",
			"(555) 123-4567",
			"+1 555-123-4567",
			"1-555-123-4567",
		}
		for _, v := range variants {
			spans := matchCategories("the booking line is "+v+" today", []Category{CategoryPhones})
			if len(spans) != 1 {
				t.Errorf("%q: spans = %d, want 1", v, len(spans))
				continue
			}
			if spans[0].Text != v {
				t.Errorf("%q: matched %q", v, spans[0].Text)
			}
		}
	})

	t.Run("Addresses", func(t *testing.T) {
		spans := matchCategories("deliver to 123 Main Street, Apt 4B before noon", []Category{CategoryAddresses})
		if len(spans) != 1 {
			t.Fatalf("spans = %d, want 1", len(spans))
		}
		if spans[0].Text != "123 Main Street, Apt 4B" {
			t.Errorf("matched %q", spans[0].Text)
		}
	})

	t.Run("Financial", func(t *testing.T) {
		spans := matchCategories("card 4111-1111-1111-1111 and routing 021000021 on file", []Category{CategoryFinancial})
		if len(spans) != 2 {
			t.Fatalf("spans = %d, want 2: %v", len(spans), spans)
		}
	})

	t.Run("SpanBounds", func(t *testing.T) {
		text := "Contact John Smith at john.smith@email.com or call 555-123-4567."
		spans := matchCategories(text, BuiltinCategories())
		for _, span := range spans {
			if span.Start >= span.End || span.End > len(text) {
				t.Errorf("invalid span bounds: %+v", span)
			}
			if text[span.Start:span.End] != span.Text {
				t.Errorf("span text mismatch: %+v", span)
			}
		}
	})

	t.Run("UnrequestedCategoriesSkipped", func(t *testing.T) {
		spans := matchCategories("write to john.smith@email.com please", []Category{CategoryPhones})
		if len(spans) != 0 {
			t.Errorf("spans = %v, want none", spans)
		}
	})
}

func TestMatchCustomPatterns(t *testing.T) {
	patterns, skipped := compilePatterns([]CustomPattern{
		{Name: "session_id", Pattern: `SES-\d+`, Replacement: "[SESSION]"},
	})
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v", skipped)
	}

	spans := matchCustomPatterns("ids SES-1 and SES-22 assigned", patterns)
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	for _, span := range spans {
		if span.Source != SourceCustom {
			t.Errorf("source = %v, want custom", span.Source)
		}
		if span.Replacement != "[SESSION]" {
			t.Errorf("replacement = %q", span.Replacement)
		}
	}
}
