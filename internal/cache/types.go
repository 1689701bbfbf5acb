// Package cache defines the snapshot and delta types used to track how the
// package listing of a project changes between runs.
package cache

// FormatVersion is written into every snapshot.
const FormatVersion = "1"

// SnapPackage is a single package entry in a snapshot.
// Name is the package caption, Hash is a lowercase hex sha256 over the
// names and contents of the files directly inside the package directories,
// and Files counts those files.
type SnapPackage struct {
	Name  string `json:"name"`
	Hash  string `json:"hash"`
	Files int    `json:"files"`
}

// Snapshot captures the package listing of a project at a specific moment.
// Project is the project root in scheme:///path form. Created is an
// RFC 3339 timestamp (UTC).
type Snapshot struct {
	Project       string        `json:"project"`
	Module        string        `json:"module"`
	Build         string        `json:"build"`
	Created       string        `json:"created"`
	FormatVersion string        `json:"formatVersion,omitempty"`
	Packages      []SnapPackage `json:"packages"`
}

// Delta describes the changes from a previous snapshot to the current one:
//
//   - Added: packages present now that were not in the previous snapshot
//   - Removed: packages present previously that are gone now
//   - Changed: packages whose name is the same but content hash differs
//   - Renamed: packages moved to another name without content change
//
// Renamed entries are one-to-one pairings for the same content hash.
// Empty packages never pair up as renames.
type Delta struct {
	Added   []SnapPackage `json:"added"`
	Removed []SnapPackage `json:"removed"`
	Renamed []Rename      `json:"renamed"`
	Changed []Change      `json:"changed"`
}

// Rename pairs a removed package with an added one holding the same files.
type Rename struct {
	From string `json:"from"`
	To   string `json:"to"`
	Hash string `json:"hash"`
}

// Change is a package whose content hash differs between snapshots.
type Change struct {
	Name       string `json:"name"`
	HashBefore string `json:"hashBefore"`
	HashAfter  string `json:"hashAfter"`
}

// Empty reports whether d carries no change at all.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Renamed) == 0 && len(d.Changed) == 0
}
