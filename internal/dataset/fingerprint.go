package dataset

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/fundboard/internal/model"
)

// Fingerprint returns the hex SHA3-256 digest of the canonical JSON encoding
// of campaigns. Equal datasets in equal order give equal fingerprints.
func Fingerprint(campaigns []model.Campaign) string {
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	// Marshal cannot fail: the campaign struct holds only strings and
	// finite floats after validation.
	data, err := json.Marshal(campaigns)
	if err != nil {
		return ""
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
