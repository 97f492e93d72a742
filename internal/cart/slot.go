package cart

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultSlotName mirrors the storage key the web storefront used for its
// serialized cart.
const DefaultSlotName = "luma_cart_v1"

// FileSlot persists the cart in a single JSON file.
type FileSlot struct {
	path string
}

// NewFileSlot stores the cart under dir using the default slot name.
func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, DefaultSlotName+".json")}
}

func (f *FileSlot) Read() (string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(raw), nil
}

func (f *FileSlot) Write(value string) error {
	return os.WriteFile(f.path, []byte(value), 0o600)
}
