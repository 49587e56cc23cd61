package catalog

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed data/signs.json
var defaultData []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary. It is loaded once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(bytes.NewReader(defaultData))
	})
	return defaultCatalog, defaultErr
}
