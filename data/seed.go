// Package data embeds the canonical seed state the planner starts from and
// reconciles stored catalogs against.
package data

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"trip-planner/models"
)

//go:embed seed.json
var seedJSON []byte

// Canonical decodes a fresh copy of the seed state.
func Canonical() (models.AppState, error) {
	var state models.AppState
	if err := json.Unmarshal(seedJSON, &state); err != nil {
		return models.AppState{}, fmt.Errorf("failed to decode seed state: %w", err)
	}
	return state, nil
}

// MustCanonical is Canonical for callers that treat a broken seed as fatal.
func MustCanonical() models.AppState {
	state, err := Canonical()
	if err != nil {
		panic(err)
	}
	return state
}
