package redact

import "strings"

// matchCategories scans text with every requested built-in category rule and
// returns all candidate spans. Matching is greedy leftmost within a category,
// so a single category never produces self-overlapping spans. Cross-category
// overlap is resolved later.
func matchCategories(text string, categories []Category) []Span {
	var spans []Span

	// Scan in rule-table order so exact-overlap ties between built-in
	// categories resolve deterministically.
	for _, rule := range builtinRules {
		if !containsCategory(categories, rule.Category) {
			continue
		}

		for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
			span := Span{
				Start:    loc[0],
				End:      loc[1],
				Category: string(rule.Category),
				Text:     text[loc[0]:loc[1]],
				Source:   SourceBuiltin,
			}

			if rule.Category == CategoryNames {
				refined, ok := refineNameSpan(span)
				if !ok {
					continue
				}
				span = refined
			}

			spans = append(spans, span)
		}
	}

	return spans
}

// matchCustomPatterns runs each compiled caller pattern over the original
// text. Patterns run independently and may overlap built-in matches.
func matchCustomPatterns(text string, patterns []compiledPattern) []Span {
	var spans []Span

	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			spans = append(spans, Span{
				Start:       loc[0],
				End:         loc[1],
				Category:    p.name,
				Text:        text[loc[0]:loc[1]],
				Source:      SourceCustom,
				Replacement: p.replacement,
			})
		}
	}

	return spans
}

// refineNameSpan trims leading and trailing sentence words (e.g. "Contact",
// "Used") from a capitalized-token run. A candidate survives only if at least
// two tokens remain after trimming.
func refineNameSpan(span Span) (Span, bool) {
	tokens := strings.Fields(span.Text)

	start, end := 0, len(tokens)
	for start < end && nameStopwords[tokens[start]] {
		start++
	}
	for end > start && nameStopwords[tokens[end-1]] {
		end--
	}

	if end-start < 2 {
		return Span{}, false
	}

	// Re-anchor the span to the surviving tokens.
	offset := 0
	for i := 0; i < start; i++ {
		idx := strings.Index(span.Text[offset:], tokens[i])
		offset += idx + len(tokens[i])
	}
	first := offset + strings.Index(span.Text[offset:], tokens[start])

	last := first
	for i := start; i < end; i++ {
		idx := strings.Index(span.Text[last:], tokens[i])
		last += idx + len(tokens[i])
	}

	return Span{
		Start:    span.Start + first,
		End:      span.Start + last,
		Category: span.Category,
		Text:     span.Text[first:last],
		Source:   span.Source,
	}, true
}

func containsCategory(categories []Category, c Category) bool {
	for _, cat := range categories {
		if cat == c {
			return true
		}
	}
	return false
}
