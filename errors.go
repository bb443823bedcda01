package divvunspell

import "errors"

// Error kinds surfaced by the core (§7). Construction errors are
// fatal to the transducer/speller instance; per-call conditions are
// reflected in the return value instead (empty suggestions, false),
// never as an error.
var (
	// ErrMalformedTransducer marks a header/table/alphabet that does
	// not match the declared sizes: truncated header, truncated
	// alphabet section, a table shorter than its declared record
	// count, or a paged table with a zero chunk size. Target
	// references stored in the tables are not range-checked at
	// construction.
	ErrMalformedTransducer = errors.New("divvunspell: malformed transducer")

	// ErrUnsupportedConfig marks a SpellerConfig that cannot be
	// honored: pool_start > pool_max, or n_best == 0 when suggestions
	// are requested.
	ErrUnsupportedConfig = errors.New("divvunspell: unsupported config")
)
