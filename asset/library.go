package asset

import (
	"strings"

	"github.com/MohinVinayak/Code-Dog/dog"
)

// Loader reads the art behind a frame reference
type Loader interface {
	Load(ref dog.FrameRef) ([]string, error)
}

// Library is the standard catalog: user frames on disk when present,
// built-in art otherwise. Fallback is per animation, so a partial user
// set still renders completely.
type Library struct {
	disk *DirCatalog
	emb  *EmbeddedCatalog
}

// NewLibrary creates a library. root may be empty to use only built-in art.
func NewLibrary(root string, size func() string) *Library {
	lib := &Library{emb: NewEmbeddedCatalog()}
	if root != "" {
		lib.disk = NewDirCatalog(root, size)
	}
	return lib
}

// Resolve prefers user frames and falls back to the built-in set
func (l *Library) Resolve(name dog.AnimationName) []dog.FrameRef {
	if l.disk != nil {
		if refs := l.disk.Resolve(name); len(refs) > 0 {
			return refs
		}
	}
	return l.emb.Resolve(name)
}

// Load routes a reference to whichever catalog owns it
func (l *Library) Load(ref dog.FrameRef) ([]string, error) {
	if l.disk == nil || strings.HasPrefix(string(ref), embedPrefix) {
		return l.emb.Load(ref)
	}
	return l.disk.Load(ref)
}

var (
	_ dog.AssetCatalog = (*Library)(nil)
	_ dog.AssetCatalog = (*DirCatalog)(nil)
	_ dog.AssetCatalog = (*EmbeddedCatalog)(nil)
)
