package divvunspell

import (
	"os"
	"syscall"
)

// MappedFile is a read-only memory-mapped file, handed to
// NewTransducer as a []byte. Mapping primitives are
// an external collaborator's job, not the core's (§1 Non-goals); this
// is an optional convenience for callers who want one, not part of
// the core's constructors.
type MappedFile struct {
	file *os.File
	data []byte
}

// OpenMappedFile mmaps path read-only and shared.
func OpenMappedFile(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, int(stat.Size()), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MappedFile{file: f, data: data}, nil
}

// Bytes returns the mapped region.
func (m *MappedFile) Bytes() []byte { return m.data }

// Close unmaps the region and closes the underlying file.
func (m *MappedFile) Close() error {
	err1 := syscall.Munmap(m.data)
	err2 := m.file.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
