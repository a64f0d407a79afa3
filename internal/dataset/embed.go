package dataset

import _ "embed"

// defaultDataset is the demo dataset shown when no data path is configured.
//
//go:embed campaigns.json
var defaultDataset []byte

// DefaultJSON returns a copy of the embedded demo dataset.
func DefaultJSON() []byte {
	return append([]byte(nil), defaultDataset...)
}
