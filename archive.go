package divvunspell

// ArchiveMeta is the three-string shape an external archive-reading
// collaborator hands the core to locate a lexicon/mutator pair (§6
// "Archive manifest"). Parsing the archive's XML/ZIP container is out
// of scope for this module; callers resolve info.Locale, Acceptor,
// and ErrModel into the two binary blobs themselves, then call
// NewSpeller with the resulting buffers.
type ArchiveMeta struct {
	Locale   string
	Acceptor string
	ErrModel string
}
