package foldersize

import (
	"sort"
)

// Entry represents one immediate child of the scanned directory.
type Entry struct {
	// Name is the base name of the child.
	Name string `json:"name"`
	// Size is the size in bytes. For directories it is the sum of all
	// regular files found anywhere beneath it.
	Size int64 `json:"size"`
}

// SortBySize sorts entries by size, largest first.
// Entries of equal size keep their discovery order.
func SortBySize(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Size > entries[j].Size
	})
}

// TotalSize returns the cumulative size of all entries.
func TotalSize(entries []Entry) int64 {
	var total int64

	for _, e := range entries {
		total += e.Size
	}

	return total
}
