package divvunspell

import "sort"

// SpellerConfig is the full configuration surface recognized by
// Speller.SuggestWithConfig (§6 "Configuration surface").
type SpellerConfig struct {
	NBest              *int
	MaxWeight          *Weight
	Beam               *Weight
	CaseHandling       bool
	CaseStrategy       CaseStrategy
	PoolStart          int
	PoolMax            int
	SeenNodeSampleRate uint64
}

// DefaultSpellerConfig mirrors the worker's own conservative defaults,
// with case handling on (the common path for end-user input).
func DefaultSpellerConfig() SpellerConfig {
	d := DefaultSearchConfig()
	return SpellerConfig{
		NBest:              d.NBest,
		CaseHandling:       true,
		CaseStrategy:       CaseStrategyAuto,
		PoolStart:          d.PoolStart,
		PoolMax:            d.PoolMax,
		SeenNodeSampleRate: d.SeenNodeSampleRate,
	}
}

func (c SpellerConfig) searchConfig() SearchConfig {
	return SearchConfig{
		NBest:              c.NBest,
		MaxWeight:          c.MaxWeight,
		Beam:               c.Beam,
		PoolStart:          c.PoolStart,
		PoolMax:            c.PoolMax,
		SeenNodeSampleRate: c.SeenNodeSampleRate,
	}
}

func (c SpellerConfig) validate() error {
	return c.searchConfig().Validate()
}

// Suggestion is one returned correction: a candidate string and its
// accumulated search weight.
type Suggestion struct {
	Value  string
	Weight Weight
}

// Speller holds a lexicon/mutator transducer pair plus the symbol
// translator built between their alphabets, and orchestrates the
// worker and case dispatcher on their behalf (§4.8). A Speller is
// immutable after construction and safe for concurrent use: every
// IsCorrect/Suggest call builds its own worker state.
type Speller struct {
	lexicon    *Transducer
	mutator    *Transducer
	translator []SymbolNumber
	config     SpellerConfig
}

// NewSpeller builds a Speller from an already-parsed lexicon and
// mutator, translating the mutator's alphabet into the lexicon's
// (§4.2, §4.8). The translator is built once at construction; the
// lexicon's alphabet may grow if the mutator introduces symbols it has
// never seen.
func NewSpeller(lexicon, mutator *Transducer, config SpellerConfig) (*Speller, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	translator := lexicon.Alphabet().CreateTranslatorFrom(mutator.Alphabet())
	return &Speller{lexicon: lexicon, mutator: mutator, translator: translator, config: config}, nil
}

// toInputSymbols converts word into the mutator's symbol numbering,
// one symbol per rune. A rune absent from the mutator's key table maps
// to the UNKNOWN meta-symbol when the mutator declares one, otherwise
// to epsilon (symbol 0) — which the worker can never match against a
// real arc, so the search fails quickly rather than erroring (§7).
func (s *Speller) toInputSymbols(word string) ([]SymbolNumber, []rune) {
	runes := []rune(word)
	syms := make([]SymbolNumber, len(runes))
	alphabet := s.mutator.Alphabet()
	for i, r := range runes {
		if sym, ok := alphabet.SymbolFor(string(r)); ok {
			syms[i] = sym
			continue
		}
		if unk, ok := alphabet.Unknown(); ok {
			syms[i] = unk
			continue
		}
		syms[i] = 0
	}
	return syms, runes
}

func (s *Speller) searchVariant(variant string, cfg SearchConfig) []Candidate {
	input, runes := s.toInputSymbols(variant)
	w := newWorker(s.lexicon, s.mutator, s.translator, input, runes, cfg)
	return w.run()
}

func (s *Speller) existsVariant(variant string, cfg SearchConfig) bool {
	input, runes := s.toInputSymbols(variant)
	w := newWorker(s.lexicon, s.mutator, s.translator, input, runes, cfg)
	return w.exists()
}

// IsCorrect reports whether word is reachable with zero mutator-
// contributed weight, i.e. an exact match against the lexicon that
// pays no edit cost — a nonzero lexical weight does not disqualify
// it, only a nonzero edit weight does (§4.8 "is_correct" is a fast
// variant that searches only for a zero-weight path and short-circuits
// on the first such final). With case handling on, it accepts iff any
// casing variant is accepted (§4.7).
func (s *Speller) IsCorrect(word string) bool {
	if !s.config.CaseHandling {
		return s.existsVariant(word, s.config.searchConfig())
	}
	for _, v := range caseVariants(word) {
		if s.existsVariant(v, s.config.searchConfig()) {
			return true
		}
	}
	return false
}

// Suggest returns ranked corrections for word using the Speller's
// configured defaults (§4.8).
func (s *Speller) Suggest(word string) []Suggestion {
	return s.SuggestWithConfig(word, s.config)
}

// SuggestWithConfig returns ranked corrections for word using cfg,
// overriding the Speller's defaults for this call only (§4.6
// "Pruning", §4.7 "Case Dispatcher").
func (s *Speller) SuggestWithConfig(word string, cfg SpellerConfig) []Suggestion {
	sc := cfg.searchConfig()
	if err := sc.Validate(); err != nil {
		return nil
	}

	var candidates []Candidate
	if !cfg.CaseHandling {
		candidates = s.searchVariant(word, sc)
	} else {
		candidates = dispatchCase(word, cfg.CaseStrategy, func(variant string) []Candidate {
			return s.searchVariant(variant, sc)
		})
	}

	return finalizeSuggestions(candidates, cfg.NBest)
}

// finalizeSuggestions sorts by (weight asc, value asc), dedups by
// value keeping the minimum weight, and truncates to nBest when set
// (§4.6 "Ordering guarantees", §8 invariants).
func finalizeSuggestions(candidates []Candidate, nBest *int) []Suggestion {
	best := make(map[string]Weight, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if w, ok := best[c.Value]; !ok {
			best[c.Value] = c.Weight
			order = append(order, c.Value)
		} else if c.Weight < w {
			best[c.Value] = c.Weight
		}
	}
	out := make([]Suggestion, len(order))
	for i, v := range order {
		out[i] = Suggestion{Value: v, Weight: best[v]}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight < out[j].Weight
		}
		return out[i].Value < out[j].Value
	})
	if nBest != nil && *nBest > 0 && len(out) > *nBest {
		out = out[:*nBest]
	}
	return out
}
