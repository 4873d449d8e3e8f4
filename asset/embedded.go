package asset

import (
	"embed"
	"strings"

	"github.com/MohinVinayak/Code-Dog/dog"
)

//go:embed art/*.txt
var artFS embed.FS

// embedPrefix distinguishes embedded refs from disk paths
const embedPrefix = "embed:"

// EmbeddedCatalog serves the built-in art set so the dog works out of the
// box with no asset directory
type EmbeddedCatalog struct{}

// NewEmbeddedCatalog creates the built-in catalog
func NewEmbeddedCatalog() *EmbeddedCatalog {
	return &EmbeddedCatalog{}
}

// Resolve returns the ordered built-in frames for name
func (ec *EmbeddedCatalog) Resolve(name dog.AnimationName) []dog.FrameRef {
	entries, err := artFS.ReadDir("art")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	matches := collectFrames(name, names)
	refs := make([]dog.FrameRef, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, dog.FrameRef(embedPrefix+"art/"+m.file))
	}
	return refs
}

// Load reads an embedded frame's art as lines
func (ec *EmbeddedCatalog) Load(ref dog.FrameRef) ([]string, error) {
	data, err := artFS.ReadFile(strings.TrimPrefix(string(ref), embedPrefix))
	if err != nil {
		return nil, err
	}
	return splitArt(data), nil
}
