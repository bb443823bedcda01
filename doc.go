// Package divvunspell is the search core of a finite-state-transducer
// spell checker. Given a mapped lexicon (an acceptor of well-formed
// words) and a mapped error model (a mutator rewriting input symbols
// into lexicon symbols at a cost), it answers whether a word is
// correctly spelled and, when it is not, produces a weight-ranked list
// of correction suggestions.
//
// Transducer construction never touches a filesystem or calls mmap —
// it takes an already-mapped []byte. OpenMappedFile is a separate,
// optional helper for callers who want the package to map a file for
// them. Archive
// packaging, CLI front-ends and word tokenization are handled by
// callers; see cmd/lookup for a minimal example front-end.
package divvunspell
