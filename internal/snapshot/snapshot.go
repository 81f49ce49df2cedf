// Package snapshot encode l'état persisté (panier, session) dans une
// enveloppe JSON versionnée.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Version courante du format. Un snapshot d'une autre version est rejeté.
const Version = 1

var ErrCorrupt = errors.New("snapshot corrompu")

type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encodage snapshot: %w", err)
	}
	return json.Marshal(envelope{Version: Version, SavedAt: time.Now().UTC(), Data: data})
}

// Decode remplit v ; toute donnée illisible renvoie une erreur qui enveloppe ErrCorrupt.
func Decode(raw []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.Version != Version {
		return fmt.Errorf("%w: version %d inconnue", ErrCorrupt, env.Version)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: données absentes", ErrCorrupt)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}
