// Package asset discovers and orders animation frame files.
//
// A frame file is named <animation><sep><sequence>.<ext>, e.g. walk_1.txt
// or Bark-02.TXT. Matching is case-insensitive and filtered to a single
// supported extension; ordering is by the ascending numeric sequence
// embedded in the file name. Resolution never returns an error: an absent
// or unreadable source yields an empty list and the controller skips the
// directive.
package asset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MohinVinayak/Code-Dog/dog"
)

// FrameExt is the single supported frame extension (ASCII art, one file
// per frame)
const FrameExt = ".txt"

// DirCatalog resolves frames from a directory tree on disk:
// <root>/<size>/<animation>_<n>.txt. Size is re-read per resolution so a
// live config change takes effect on the next directive.
type DirCatalog struct {
	root string
	size func() string
}

// NewDirCatalog creates a catalog over root. size supplies the active
// asset size subdirectory (small/medium/large); nil means "medium".
func NewDirCatalog(root string, size func() string) *DirCatalog {
	if size == nil {
		size = func() string { return "medium" }
	}
	return &DirCatalog{root: root, size: size}
}

// Resolve returns the ordered frame references for name, or an empty list
// when the directory is absent or holds no matching frames
func (dc *DirCatalog) Resolve(name dog.AnimationName) []dog.FrameRef {
	dir := filepath.Join(dc.root, dc.size())
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	matches := collectFrames(name, entriesToNames(entries))
	refs := make([]dog.FrameRef, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, dog.FrameRef(filepath.Join(dir, m.file)))
	}
	return refs
}

// Load reads a frame's art as lines
func (dc *DirCatalog) Load(ref dog.FrameRef) ([]string, error) {
	data, err := os.ReadFile(string(ref))
	if err != nil {
		return nil, err
	}
	return splitArt(data), nil
}

// frameMatch pairs a file name with its embedded sequence number
type frameMatch struct {
	file string
	seq  int
}

// collectFrames filters names to frames of the given animation and sorts
// them by embedded sequence
func collectFrames(name dog.AnimationName, files []string) []frameMatch {
	prefix := name.String()
	var matches []frameMatch
	for _, f := range files {
		lower := strings.ToLower(f)
		if !strings.HasSuffix(lower, FrameExt) {
			continue
		}
		base := strings.TrimSuffix(lower, FrameExt)
		if !strings.HasPrefix(base, prefix) {
			continue
		}
		rest := base[len(prefix):]
		seq, ok := embeddedNumber(rest)
		if !ok {
			continue
		}
		matches = append(matches, frameMatch{file: f, seq: seq})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].seq == matches[j].seq {
			return matches[i].file < matches[j].file
		}
		return matches[i].seq < matches[j].seq
	})
	return matches
}

// embeddedNumber extracts the first digit run from s (after optional
// separators). Returns false when s holds no digits, which also rejects
// prefix collisions like "blink" matching files of "blinkfast".
func embeddedNumber(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == '_' || s[i] == '-' || s[i] == '.' || s[i] == ' ') {
		i++
	}
	if i == len(s) || s[i] < '0' || s[i] > '9' {
		return 0, false
	}
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, true
}

func entriesToNames(entries []os.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}

// splitArt converts raw frame bytes to display lines, dropping a single
// trailing newline
func splitArt(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
