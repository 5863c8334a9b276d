// ABOUTME: Sample catalog resolving voice slots to asset references
// ABOUTME: Directory scanner with one folder per voice, max 16 samples each
package catalog

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound means no sample exists for the requested slot and index.
var ErrNotFound = errors.New("catalog: sample not found")

// MaxPerFolder caps how many samples one voice folder exposes.
const MaxPerFolder = 16

// DefaultFolders maps the four voice slots to their library folders.
var DefaultFolders = []string{"kick", "snare", "hihat", "tom"}

// Resolver maps a (voice slot, logical index) pair to a concrete asset
// reference. The engine consumes resolved refs and never scans storage
// itself.
type Resolver interface {
	Resolve(slot, index int) (string, error)
}

// DirCatalog resolves samples by scanning per-voice folders under a
// library root. Hidden files are skipped, only .wav entries count, and
// a missing folder just yields an empty slot.
type DirCatalog struct {
	root    string
	folders []string
	samples [][]string
}

// NewDirCatalog creates a catalog over root. A nil folders slice uses
// DefaultFolders. Call Rescan before resolving.
func NewDirCatalog(root string, folders []string) *DirCatalog {
	if folders == nil {
		folders = DefaultFolders
	}
	return &DirCatalog{
		root:    root,
		folders: folders,
		samples: make([][]string, len(folders)),
	}
}

// Rescan walks every voice folder and rebuilds the sample lists.
func (c *DirCatalog) Rescan() error {
	for slot, folder := range c.folders {
		entries, err := os.ReadDir(filepath.Join(c.root, folder))
		if err != nil {
			if os.IsNotExist(err) {
				c.samples[slot] = nil
				continue
			}
			return err
		}

		var found []string
		for _, e := range entries {
			if len(found) >= MaxPerFolder {
				break
			}
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
				continue
			}
			found = append(found, e.Name())
		}
		c.samples[slot] = found
	}
	return nil
}

// Resolve returns the asset ref for the index-th sample of a slot.
func (c *DirCatalog) Resolve(slot, index int) (string, error) {
	if slot < 0 || slot >= len(c.samples) {
		return "", ErrNotFound
	}
	list := c.samples[slot]
	if index < 0 || index >= len(list) {
		return "", ErrNotFound
	}
	return path.Join(c.folders[slot], list[index]), nil
}

// Slots returns the number of voice folders.
func (c *DirCatalog) Slots() int { return len(c.folders) }

// Folder returns the library folder name for a slot, or "" when out of
// range.
func (c *DirCatalog) Folder(slot int) string {
	if slot < 0 || slot >= len(c.folders) {
		return ""
	}
	return c.folders[slot]
}

// Samples lists the sample file names currently known for a slot.
func (c *DirCatalog) Samples(slot int) []string {
	if slot < 0 || slot >= len(c.samples) {
		return nil
	}
	return c.samples[slot]
}
