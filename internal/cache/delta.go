package cache

import "sort"

// BuildDelta computes the change set between two snapshots.
func BuildDelta(prev *Snapshot, curr *Snapshot) Delta {
	if delta, ok := handleTrivialDelta(prev, curr); ok {
		return delta
	}

	prevMap := indexByName(prev.Packages)
	currMap := indexByName(curr.Packages)

	removed, changed := classifyRemovedAndChanged(prevMap, currMap)
	delta := Delta{
		Removed: removed,
		Added:   classifyAdded(prevMap, currMap),
		Changed: changed,
	}

	renamed, keepRemoved, keepAdded := matchExactRenames(delta.Removed, delta.Added)
	delta.Renamed = renamed
	delta.Removed = keepRemoved
	delta.Added = keepAdded

	sortDelta(&delta)
	return delta
}

func handleTrivialDelta(prev, curr *Snapshot) (Delta, bool) {
	var d Delta
	switch {
	case curr == nil || len(curr.Packages) == 0:
		if prev != nil {
			d.Removed = append(d.Removed, prev.Packages...)
			sortPackages(d.Removed)
		}
		return d, true
	case prev == nil || len(prev.Packages) == 0:
		d.Added = append(d.Added, curr.Packages...)
		sortPackages(d.Added)
		return d, true
	default:
		return Delta{}, false
	}
}

func indexByName(pkgs []SnapPackage) map[string]SnapPackage {
	m := make(map[string]SnapPackage, len(pkgs))
	for _, p := range pkgs {
		m[p.Name] = p
	}
	return m
}

func classifyRemovedAndChanged(prev, curr map[string]SnapPackage) ([]SnapPackage, []Change) {
	var removed []SnapPackage
	var changed []Change
	for name, pp := range prev {
		if cp, ok := curr[name]; ok {
			if pp.Hash != cp.Hash {
				changed = append(changed, Change{Name: name, HashBefore: pp.Hash, HashAfter: cp.Hash})
			}
			continue
		}
		removed = append(removed, pp)
	}
	return removed, changed
}

func classifyAdded(prev, curr map[string]SnapPackage) []SnapPackage {
	var added []SnapPackage
	for name, cp := range curr {
		if _, ok := prev[name]; !ok {
			added = append(added, cp)
		}
	}
	return added
}

func matchExactRenames(removed, added []SnapPackage) ([]Rename, []SnapPackage, []SnapPackage) {
	if len(removed) == 0 || len(added) == 0 {
		return nil, removed, added
	}
	sortPackages(removed)
	sortPackages(added)

	byHash := make(map[string][]int, len(removed))
	for idx, rp := range removed {
		if rp.Files == 0 {
			continue
		}
		byHash[rp.Hash] = append(byHash[rp.Hash], idx)
	}

	usedRemoved := make(map[int]bool)
	usedAdded := make(map[int]bool)
	var renamed []Rename
	for idx, ap := range added {
		cands := byHash[ap.Hash]
		if ap.Files == 0 || len(cands) == 0 {
			continue
		}
		byHash[ap.Hash] = cands[1:]
		usedRemoved[cands[0]] = true
		usedAdded[idx] = true
		renamed = append(renamed, Rename{From: removed[cands[0]].Name, To: ap.Name, Hash: ap.Hash})
	}
	return renamed, filterPackages(removed, usedRemoved), filterPackages(added, usedAdded)
}

func filterPackages(pkgs []SnapPackage, used map[int]bool) []SnapPackage {
	if len(used) == 0 {
		return pkgs
	}
	out := make([]SnapPackage, 0, len(pkgs)-len(used))
	for idx, p := range pkgs {
		if !used[idx] {
			out = append(out, p)
		}
	}
	return out
}

func sortPackages(pkgs []SnapPackage) {
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
}

func sortDelta(d *Delta) {
	sortPackages(d.Removed)
	sortPackages(d.Added)
	sort.Slice(d.Changed, func(i, j int) bool { return d.Changed[i].Name < d.Changed[j].Name })
	sort.Slice(d.Renamed, func(i, j int) bool {
		if d.Renamed[i].From == d.Renamed[j].From {
			return d.Renamed[i].To < d.Renamed[j].To
		}
		return d.Renamed[i].From < d.Renamed[j].From
	})
}
