package divvunspell

import (
	"bytes"
	"fmt"
	"log"
)

// FlagOperator is the operator half of a flag-diacritic operation
// (§4.5, GLOSSARY).
type FlagOperator byte

const (
	FlagPositiveSet FlagOperator = 'P'
	FlagNegativeSet FlagOperator = 'N'
	FlagRequire     FlagOperator = 'R'
	FlagDisallow    FlagOperator = 'D'
	FlagClear       FlagOperator = 'C'
	FlagUnify       FlagOperator = 'U'
)

func flagOperatorFromString(s string) (FlagOperator, bool) {
	if len(s) == 0 {
		return 0, false
	}
	switch s[0] {
	case 'P', 'N', 'R', 'D', 'C', 'U':
		return FlagOperator(s[0]), true
	default:
		return 0, false
	}
}

// FlagOp is a flag-diacritic operation: an operator plus the feature
// and value it refers to (§3).
type FlagOp struct {
	Operator FlagOperator
	Feature  SymbolNumber
	Value    int16
}

// Apply evaluates op against a flag-state vector of length
// flagStateSize, per §4.5. It never mutates state in place: on success
// P, N, C and U return a new vector, while R and D, which only test
// the state, return state itself; on failure it returns state
// unchanged and ok=false, and the caller must discard the node under
// construction.
func (op FlagOp) Apply(state []int16) (next []int16, ok bool) {
	switch op.Operator {
	case FlagPositiveSet:
		next = cloneFlagState(state)
		next[op.Feature] = op.Value
		return next, true
	case FlagNegativeSet:
		next = cloneFlagState(state)
		next[op.Feature] = -op.Value
		return next, true
	case FlagRequire:
		if op.Value == 0 {
			return state, state[op.Feature] != 0
		}
		return state, state[op.Feature] == op.Value
	case FlagDisallow:
		if op.Value == 0 {
			return state, state[op.Feature] == 0
		}
		return state, state[op.Feature] != op.Value
	case FlagClear:
		next = cloneFlagState(state)
		next[op.Feature] = 0
		return next, true
	case FlagUnify:
		cur := state[op.Feature]
		if cur == 0 || cur == op.Value || cur == -op.Value {
			next = cloneFlagState(state)
			next[op.Feature] = op.Value
			return next, true
		}
		return state, false
	default:
		return state, false
	}
}

func cloneFlagState(state []int16) []int16 {
	next := make([]int16, len(state))
	copy(next, state)
	return next
}

// Alphabet is the parsed key table of a transducer plus its flag
// diacritic operations and special-symbol positions (§3, §4.2).
type Alphabet struct {
	keyTable           []string
	stringToSymbol     map[string]SymbolNumber
	operations         map[SymbolNumber]FlagOp
	identitySymbol     SymbolNumber
	hasIdentity        bool
	unknownSymbol      SymbolNumber
	hasUnknown         bool
	flagStateSize      int
	initialSymbolCount SymbolNumber
	length             int
	logger             *log.Logger
}

// ParseAlphabet parses symbolCount null-terminated UTF-8 keys from buf
// (§4.2), followed by null padding. logger receives a line for every
// unrecognized "@...@" key (non-fatal, §7); a nil logger defaults to
// log.Default().
func ParseAlphabet(buf []byte, symbolCount SymbolNumber, logger *log.Logger) (*Alphabet, error) {
	if logger == nil {
		logger = log.Default()
	}
	a := &Alphabet{
		keyTable:           make([]string, 0, symbolCount),
		stringToSymbol:     make(map[string]SymbolNumber, symbolCount),
		operations:         make(map[SymbolNumber]FlagOp),
		initialSymbolCount: symbolCount,
		logger:             logger,
	}

	featureBucket := make(map[string]SymbolNumber)
	valueBucket := make(map[string]int16)
	var featN SymbolNumber
	var valN int16

	offset := 0
	for i := SymbolNumber(0); i < symbolCount; i++ {
		end := bytes.IndexByte(buf[offset:], 0)
		if end < 0 {
			return nil, wrapMalformed("truncated alphabet key table")
		}
		key := string(buf[offset : offset+end])
		offset += end + 1

		switch {
		case len(key) > 1 && key[0] == '@' && key[len(key)-1] == '@' && len(key) > 2 && key[2] == '.':
			op, feature, value := parseFlagKey(key, featureBucket, valueBucket, &featN, &valN)
			a.operations[i] = FlagOp{Operator: op, Feature: feature, Value: value}
			a.keyTable = append(a.keyTable, key)
		case key == "@_EPSILON_SYMBOL_@":
			if _, ok := valueBucket[""]; !ok {
				valueBucket[""] = valN
				valN++
			}
			a.keyTable = append(a.keyTable, "")
		case key == "@_IDENTITY_SYMBOL_@":
			a.identitySymbol = i
			a.hasIdentity = true
			a.keyTable = append(a.keyTable, key)
		case key == "@_UNKNOWN_SYMBOL_@":
			a.unknownSymbol = i
			a.hasUnknown = true
			a.keyTable = append(a.keyTable, key)
		case len(key) > 1 && key[0] == '@' && key[len(key)-1] == '@':
			logger.Printf("divvunspell: unhandled alphabet key %q at symbol %d", key, i)
			a.keyTable = append(a.keyTable, "")
		default:
			a.keyTable = append(a.keyTable, key)
			a.stringToSymbol[key] = i
		}
	}

	a.flagStateSize = len(featureBucket)

	for offset < len(buf) && buf[offset] == 0 {
		offset++
	}
	a.length = offset

	return a, nil
}

func parseFlagKey(key string, featureBucket map[string]SymbolNumber, valueBucket map[string]int16, featN *SymbolNumber, valN *int16) (FlagOperator, SymbolNumber, int16) {
	// key looks like "@OP.FEATURE.VALUE@" or "@OP.FEATURE@".
	body := key[1 : len(key)-1] // strip surrounding '@'
	parts := splitN3(body, '.')

	op, _ := flagOperatorFromString(parts[0])

	feature := parts[1]
	value := parts[2]

	featureID, ok := featureBucket[feature]
	if !ok {
		featureID = *featN
		featureBucket[feature] = featureID
		*featN++
	}

	valueID, ok := valueBucket[value]
	if !ok {
		valueID = *valN
		valueBucket[value] = valueID
		*valN++
	}

	return op, featureID, valueID
}

// splitN3 splits s on sep into up to 3 parts; missing trailing parts
// are "" (mirrors chunks.next().unwrap_or("") in the original parser).
func splitN3(s string, sep byte) [3]string {
	var out [3]string
	start := 0
	part := 0
	for i := 0; i < len(s) && part < 2; i++ {
		if s[i] == sep {
			out[part] = s[start:i]
			start = i + 1
			part++
		}
	}
	out[part] = s[start:]
	return out
}

// KeyTable is the ordered list of symbol strings, indexed by symbol.
func (a *Alphabet) KeyTable() []string { return a.keyTable }

// Len is the byte length consumed when parsing this alphabet section.
func (a *Alphabet) Len() int { return a.length }

// FlagStateSize is the dimension of a flag-state vector for this
// alphabet (§3).
func (a *Alphabet) FlagStateSize() int { return a.flagStateSize }

// InitialSymbolCount is the symbol count before any run-time extension
// via CreateTranslatorFrom.
func (a *Alphabet) InitialSymbolCount() SymbolNumber { return a.initialSymbolCount }

// IsFlag reports whether sym is a flag-diacritic symbol.
func (a *Alphabet) IsFlag(sym SymbolNumber) bool {
	_, ok := a.operations[sym]
	return ok
}

// FlagOp returns the flag operation recorded at sym, if any.
func (a *Alphabet) FlagOp(sym SymbolNumber) (FlagOp, bool) {
	op, ok := a.operations[sym]
	return op, ok
}

// SymbolFor looks up the symbol number for a key-table string.
func (a *Alphabet) SymbolFor(s string) (SymbolNumber, bool) {
	sym, ok := a.stringToSymbol[s]
	return sym, ok
}

// Identity returns the identity meta-symbol's position, if recorded.
func (a *Alphabet) Identity() (SymbolNumber, bool) { return a.identitySymbol, a.hasIdentity }

// Unknown returns the unknown meta-symbol's position, if recorded.
func (a *Alphabet) Unknown() (SymbolNumber, bool) { return a.unknownSymbol, a.hasUnknown }

// AddSymbol appends s to the key table under a freshly allocated
// symbol number and registers it for lookup, returning that number.
func (a *Alphabet) AddSymbol(s string) SymbolNumber {
	id := SymbolNumber(len(a.keyTable))
	a.stringToSymbol[s] = id
	a.keyTable = append(a.keyTable, s)
	return id
}

// CreateTranslatorFrom builds the array mapping every symbol of other
// to a valid symbol of a (§4.2). Symbols of other with no matching
// string in a are appended to a's key table, mutating a. translator[0]
// is always 0 (epsilon maps to epsilon). Calling this twice with the
// same other against the same a yields identical arrays, since the
// second call finds every symbol already registered from the first.
func (a *Alphabet) CreateTranslatorFrom(other *Alphabet) []SymbolNumber {
	translator := make([]SymbolNumber, 1, 64)
	translator[0] = 0

	otherKeys := other.KeyTable()
	for _, s := range otherKeys[1:] {
		if sym, ok := a.stringToSymbol[s]; ok {
			translator = append(translator, sym)
		} else {
			translator = append(translator, a.AddSymbol(s))
		}
	}
	return translator
}

func wrapMalformed(msg string) error {
	return fmt.Errorf("%w: %s", ErrMalformedTransducer, msg)
}
