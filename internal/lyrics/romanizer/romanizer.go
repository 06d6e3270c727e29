// Package romanizer dispatches text to the transliteration strategy of its
// language.
package romanizer

import (
	"fmt"

	"github.com/sukalov/romagic/internal/lyrics/lang"
	"github.com/sukalov/romagic/internal/lyrics/romanizer/japanese"
	"github.com/sukalov/romagic/internal/lyrics/romanizer/korean"
)

// Strategy transliterates text written in one script to Latin letters. It
// must be deterministic, keep every line break and pass unknown characters
// through.
type Strategy interface {
	Romanize(text string) string
}

// Engine holds one strategy per supported non-English language.
type Engine struct {
	strategies map[lang.Tag]Strategy
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrategy registers or replaces the strategy for tag.
func WithStrategy(tag lang.Tag, s Strategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategies[tag] = s
		}
	}
}

// New builds an Engine with the Japanese (kagome) and Korean strategies.
func New(opts ...Option) (*Engine, error) {
	e := NewWithStrategies(map[lang.Tag]Strategy{
		lang.KO: korean.New(),
	})
	for _, opt := range opts {
		opt(e)
	}
	if !e.Supports(lang.JA) {
		seg, err := japanese.NewKagomeSegmenter()
		if err != nil {
			return nil, fmt.Errorf("japanese romanizer: %w", err)
		}
		e.strategies[lang.JA] = japanese.New(seg)
	}
	return e, nil
}

// NewWithStrategies builds an Engine from explicit strategies only.
func NewWithStrategies(strategies map[lang.Tag]Strategy) *Engine {
	e := &Engine{strategies: make(map[lang.Tag]Strategy, len(strategies))}
	for tag, s := range strategies {
		e.strategies[tag] = s
	}
	return e
}

// Supports reports whether a strategy is registered for tag.
func (e *Engine) Supports(tag lang.Tag) bool {
	_, ok := e.strategies[tag]
	return ok
}

// Transliterate romanizes text with the strategy registered for tag. Text in
// a language without a strategy (EN included) is returned unchanged.
func (e *Engine) Transliterate(text string, tag lang.Tag) string {
	s, ok := e.strategies[tag]
	if !ok {
		return text
	}
	return s.Romanize(text)
}
