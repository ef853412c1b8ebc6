package config

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Digest returns a short content hash of the profile.
// Encounter summaries carry it so results can be matched to a tuning revision.
func (a Agent) Digest() (string, error) {
	raw, err := yaml.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshaling agent %q: %w", a.Name, err)
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:8]), nil
}
