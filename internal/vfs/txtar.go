package vfs

import (
	"strings"

	"golang.org/x/tools/txtar"
)

// FromTxtar builds an in-memory filesystem from a txtar archive. Entries whose
// name ends in "/" become (possibly empty) directories.
func FromTxtar(a *txtar.Archive) (*MemFS, error) {
	m := NewMem()
	for _, f := range a.Files {
		name := strings.TrimSpace(f.Name)
		if strings.HasSuffix(name, "/") {
			clean, err := Clean(name)
			if err != nil {
				return nil, err
			}
			if err := m.MkdirAll(clean); err != nil {
				return nil, err
			}
			continue
		}
		clean, err := Clean(name)
		if err != nil {
			return nil, err
		}
		if err := m.WriteFile(clean, f.Data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ParseTxtar is FromTxtar over the raw archive text.
func ParseTxtar(data []byte) (*MemFS, error) {
	return FromTxtar(txtar.Parse(data))
}
