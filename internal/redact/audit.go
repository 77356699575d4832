package redact

import "time"

// assembleMetadata builds the audit trail from the resolved spans and their
// chosen replacements. Positions are recorded against the original text, and
// sum(CountsByCategory) == TotalRedacted == len(DetectedInstances) always
// holds.
func assembleMetadata(cfg Config, spans []Span, replacements []string, originalLen, redactedLen, acceptedPatterns int) Metadata {
	counts := make(map[string]int, len(spans))
	instances := make([]Instance, 0, len(spans))

	for i, span := range spans {
		counts[span.Category]++
		instances = append(instances, Instance{
			Category:    span.Category,
			MatchedText: span.Text,
			Position:    span.Start,
			Replacement: replacements[i],
		})
	}

	return Metadata{
		Mode:                cfg.Mode,
		CategoriesProcessed: cfg.Categories,
		PreserveDomainTerms: cfg.PreserveDomainTerms,
		CustomPatternCount:  acceptedPatterns,
		WhitelistSize:       len(cfg.Whitelist),
		CountsByCategory:    counts,
		TotalRedacted:       len(spans),
		DetectedInstances:   instances,
		OriginalLength:      originalLen,
		RedactedLength:      redactedLen,
		Timestamp:           time.Now().UTC(),
	}
}
