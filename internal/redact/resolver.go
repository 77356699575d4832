package redact

import "sort"

// resolveConflicts drops protected candidates, then reduces the remainder to
// a sorted, non-overlapping span list. On overlap the earlier-starting,
// longer span wins; on an exact tie a built-in category beats a custom
// pattern, since built-in rules are curated and caller patterns are not.
func resolveConflicts(text string, candidates []Span, prot *protector) []Span {
	kept := candidates[:0:0]
	for _, span := range candidates {
		if prot.isProtected(text, span) {
			continue
		}
		kept = append(kept, span)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Start != kept[j].Start {
			return kept[i].Start < kept[j].Start
		}
		if kept[i].Len() != kept[j].Len() {
			return kept[i].Len() > kept[j].Len()
		}
		return kept[i].Source < kept[j].Source
	})

	var resolved []Span
	for _, span := range kept {
		if len(resolved) > 0 && span.Overlaps(resolved[len(resolved)-1]) {
			continue
		}
		resolved = append(resolved, span)
	}

	return resolved
}
