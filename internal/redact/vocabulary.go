package redact

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// builtinVocabulary is the static set of audio-engineering terms that must
// survive redaction. Entries are matched case-insensitively; multi-word
// entries also protect candidates that cover only part of their occurrence
// in the text.
var builtinVocabulary = []string{
	// Microphones
	"Neumann U87", "Neumann U47", "Neumann KM84", "Neumann TLM 103", "Neumann",
	"Telefunken U47", "Telefunken ELA M 251", "Telefunken",
	"AKG C414", "AKG C12", "AKG D112",
	"Shure SM57", "Shure SM58", "Shure SM7B", "Shure Beta 52",
	"Sennheiser MD421", "Sennheiser MD441", "Sennheiser e609",
	"Royer 121", "Royer R-121", "Coles 4038", "Beyerdynamic M160",
	"Electro-Voice RE20", "Sony C800G", "Brauner VM1", "Earthworks",
	// Consoles and preamps
	"SSL console", "SSL 4000", "SSL G-Series", "SSL",
	"Neve 1073", "Neve 1084", "Neve 8078", "Neve",
	"API console", "API 512c", "API 2500",
	"Trident A-Range", "Harrison 32C", "Avalon 737", "Avalon VT-737",
	"Millennia HV-3", "Grace Design m101", "Great River ME-1NV",
	// Outboard
	"LA-2A", "LA-3A", "1176", "Distressor", "dbx 160", "Pultec EQP-1A",
	"Fairchild 670", "Tube-Tech CL-1B", "Manley Vari-Mu", "Manley Massive Passive",
	"Eventide H3000", "Lexicon 480L", "Lexicon 224", "EMT 140", "AMS RMX16",
	"TC Electronic", "Empirical Labs",
	// Software and DAWs
	"Pro Tools", "Logic Pro", "Ableton Live", "Cubase", "Nuendo",
	"Studio One", "Reaper", "FL Studio",
	"Universal Audio", "UAD", "Waves", "FabFilter", "Soundtoys",
	"iZotope RX", "Melodyne", "Auto-Tune", "Celemony",
	// Monitors and interfaces
	"Yamaha NS-10", "Genelec 8040", "Genelec", "Auratone", "Barefoot MM27",
	"Focusrite", "Apollo Twin", "Apogee Symphony", "RME Fireface",
	"Antelope Audio", "Lynx Aurora",
}

var (
	vocabOnce    sync.Once
	vocabLowered []string
)

// loweredVocabulary returns the built-in vocabulary lowercased, built once at
// first use and never mutated afterwards.
func loweredVocabulary() []string {
	vocabOnce.Do(func() {
		vocabLowered = make([]string, len(builtinVocabulary))
		for i, term := range builtinVocabulary {
			vocabLowered[i] = lowerPreserving(term)
		}
	})
	return vocabLowered
}

// protector decides whether a candidate span is vetoed by the domain
// vocabulary or the per-call whitelist. It only discards candidates; it never
// produces new ones.
type protector struct {
	vocabulary   []string // lowercased, consulted only when preserve is set
	whitelist    []string // lowercased, always consulted
	preserve     bool
	windowTokens int
}

func newProtector(preserve bool, whitelist, extraVocabulary []string, windowTokens int) *protector {
	p := &protector{
		preserve:     preserve,
		windowTokens: windowTokens,
	}

	if preserve {
		p.vocabulary = loweredVocabulary()
		for _, term := range extraVocabulary {
			p.vocabulary = append(p.vocabulary, lowerPreserving(term))
		}
	}

	for _, term := range whitelist {
		if term != "" {
			p.whitelist = append(p.whitelist, lowerPreserving(term))
		}
	}

	return p
}

// isProtected reports whether the candidate equals, or sits inside, an
// occurrence of a protected term within a bounded context window. The window
// extends windowTokens whitespace-delimited tokens on each side, so "Smith"
// inside "Smith Recording Studio" is protected when the full phrase is listed
// even though "Smith" alone is not.
func (p *protector) isProtected(text string, span Span) bool {
	ws := expandLeft(text, span.Start, p.windowTokens)
	we := expandRight(text, span.End, p.windowTokens)
	window := lowerPreserving(text[ws:we])

	relStart := span.Start - ws
	relEnd := span.End - ws

	if p.preserve && termCovers(window, p.vocabulary, relStart, relEnd) {
		return true
	}
	return termCovers(window, p.whitelist, relStart, relEnd)
}

// termCovers reports whether any occurrence of any term inside window fully
// contains the [start, end) range, i.e. the candidate equals or is a
// substring of that occurrence.
func termCovers(window string, terms []string, start, end int) bool {
	for _, term := range terms {
		from := 0
		for {
			idx := strings.Index(window[from:], term)
			if idx < 0 {
				break
			}
			occStart := from + idx
			occEnd := occStart + len(term)
			if occStart <= start && end <= occEnd {
				return true
			}
			from = occStart + 1
		}
	}
	return false
}

// expandLeft moves the offset left past up to n whitespace-delimited tokens,
// decoding runes so multi-byte characters are never split mid-token.
func expandLeft(text string, offset, n int) int {
	i := offset
	for t := 0; t < n && i > 0; t++ {
		for i > 0 {
			r, size := utf8.DecodeLastRuneInString(text[:i])
			if !unicode.IsSpace(r) {
				break
			}
			i -= size
		}
		for i > 0 {
			r, size := utf8.DecodeLastRuneInString(text[:i])
			if unicode.IsSpace(r) {
				break
			}
			i -= size
		}
	}
	return i
}

// expandRight moves the offset right past up to n whitespace-delimited tokens.
func expandRight(text string, offset, n int) int {
	i := offset
	for t := 0; t < n && i < len(text); t++ {
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(r) {
				break
			}
			i += size
		}
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
		}
	}
	return i
}

// isSpace matches ASCII whitespace only. UTF-8 continuation bytes are all
// >= 0x80, so byte-level callers can never mistake part of a multi-byte
// character for a space.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// lowerPreserving lowercases runes but keeps any rune whose lowercase form has
// a different UTF-8 width, so byte offsets into the result line up with the
// input. Both protected terms and the context window go through it, keeping
// the comparison consistent for non-ASCII entries.
func lowerPreserving(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		if l := unicode.ToLower(r); utf8.RuneLen(l) == size {
			b.WriteRune(l)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// Vocabulary returns a copy of the built-in protected term list.
func Vocabulary() []string {
	out := make([]string, len(builtinVocabulary))
	copy(out, builtinVocabulary)
	return out
}
