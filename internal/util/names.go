package util

import (
	"strconv"
	"strings"
)

// Characters that are illegal in filenames on at least one of the
// filesystems an extracted archive may land on.
const illegalNameChars = `/\:*?"<>|`

// SanitizeName strips filesystem-illegal characters from a name so it
// can be used as a zip entry or folder. Empty results collapse to
// "Unknown".
func SanitizeName(name string) string {
	if name == "" {
		return "Unknown"
	}
	out := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalNameChars, r) {
			return '_'
		}
		return r
	}, name)
	out = strings.TrimSpace(out)
	if out == "" {
		return "Unknown"
	}
	return out
}

// NameAllocator hands out unique filenames within one aggregation job.
// On collision it appends " (n)" before the extension, incrementing n
// until the candidate is unused.
type NameAllocator struct {
	used map[string]struct{}
}

func NewNameAllocator() *NameAllocator {
	return &NameAllocator{used: make(map[string]struct{})}
}

// Claim reserves filename, returning the (possibly suffixed) unique name.
func (a *NameAllocator) Claim(filename string) string {
	if _, ok := a.used[filename]; !ok {
		a.used[filename] = struct{}{}
		return filename
	}
	stem, ext := splitExt(filename)
	for n := 1; ; n++ {
		candidate := stem + " (" + strconv.Itoa(n) + ")" + ext
		if _, ok := a.used[candidate]; !ok {
			a.used[candidate] = struct{}{}
			return candidate
		}
	}
}

// Has reports whether a name has already been claimed.
func (a *NameAllocator) Has(filename string) bool {
	_, ok := a.used[filename]
	return ok
}

func splitExt(filename string) (stem, ext string) {
	if i := strings.LastIndexByte(filename, '.'); i > 0 {
		return filename[:i], filename[i:]
	}
	return filename, ""
}

