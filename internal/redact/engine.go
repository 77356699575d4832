package redact

import (
	"fmt"

	"github.com/raaihank/redact-sentinel/internal/logger"
	"go.uber.org/zap"
)

const (
	// DefaultMinTextLength is the validation floor for input text.
	DefaultMinTextLength = 10
	// DefaultContextWindowTokens bounds the lookaround used by the
	// domain-term protection check.
	DefaultContextWindowTokens = 3
)

// Options tunes engine behavior at construction time.
type Options struct {
	// MinTextLength rejects calls whose text is shorter. Zero means the
	// default.
	MinTextLength int
	// ContextWindowTokens is the token lookahead/lookbehind for protection
	// checks. Zero means the default.
	ContextWindowTokens int
	// ExtraVocabulary extends the built-in protected term list, typically
	// from deployment configuration.
	ExtraVocabulary []string
}

// Engine runs the redaction pipeline. It holds no per-call state: every
// invocation is a pure function of its input, so one Engine serves unbounded
// concurrent callers without coordination.
type Engine struct {
	opts   Options
	logger *logger.Logger
}

// New creates a redaction engine.
func New(opts Options, log *logger.Logger) *Engine {
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = DefaultMinTextLength
	}
	if opts.ContextWindowTokens <= 0 {
		opts.ContextWindowTokens = DefaultContextWindowTokens
	}

	log.Info("Redaction engine initialized",
		zap.Int("min_text_length", opts.MinTextLength),
		zap.Int("context_window_tokens", opts.ContextWindowTokens),
		zap.Int("builtin_vocabulary_terms", len(builtinVocabulary)),
		zap.Int("extra_vocabulary_terms", len(opts.ExtraVocabulary)),
	)

	return &Engine{opts: opts, logger: log}
}

// Redact validates the input, runs the detection pipeline and rewrites the
// text under the configured mode. A call either fully succeeds or returns a
// typed *Error before any text is produced; there is no partial success.
func (e *Engine) Redact(text string, cfg Config) (*Result, error) {
	if err := e.validate(text, &cfg); err != nil {
		return nil, err
	}

	// Matching: built-in categories plus caller patterns.
	patterns, skipped := compilePatterns(cfg.CustomPatterns)
	for _, skip := range skipped {
		e.logger.Debug("Custom pattern skipped", zap.String("reason", skip.Message))
	}

	candidates := matchCategories(text, cfg.Categories)
	candidates = append(candidates, matchCustomPatterns(text, patterns)...)

	// Filtering: vocabulary and whitelist veto, then overlap resolution.
	prot := newProtector(cfg.PreserveDomainTerms, cfg.Whitelist, e.opts.ExtraVocabulary, e.opts.ContextWindowTokens)
	resolved := resolveConflicts(text, candidates, prot)

	// Transforming.
	redacted, replacements := transform(text, resolved, cfg.Mode)
	meta := assembleMetadata(cfg, resolved, replacements, len(text), len(redacted), len(patterns))

	e.logger.Debug("Redaction complete",
		zap.String("mode", string(cfg.Mode)),
		zap.Int("candidates", len(candidates)),
		zap.Int("redacted", meta.TotalRedacted),
	)

	return &Result{RedactedText: redacted, Metadata: meta}, nil
}

// validate enforces the input contract and normalizes defaults in place.
func (e *Engine) validate(text string, cfg *Config) error {
	if len(text) == 0 {
		return &Error{Kind: ErrorKindValidation, Message: "text is empty"}
	}
	if len(text) < e.opts.MinTextLength {
		return &Error{
			Kind:    ErrorKindValidation,
			Message: fmt.Sprintf("text is too short: %d characters (minimum %d)", len(text), e.opts.MinTextLength),
		}
	}

	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return err
	}
	cfg.Mode = mode

	for _, c := range cfg.Categories {
		if _, err := ParseCategory(string(c)); err != nil {
			return err
		}
	}

	return nil
}
