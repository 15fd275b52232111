// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/staranto/icpq/internal/model"
)

// ErrFormat marks a document that is not a usable dataset: malformed JSON
// or required fields missing. Callers treat it as a cache miss, never a
// crash.
var ErrFormat = errors.New("malformed dataset document")

// requiredFields must all be present for a document to count as a
// dataset. Field names are the wire contract and never change.
var requiredFields = []string{"lastUpdated", "regions"}

// Write persists the dataset as a single whole-file JSON document. The
// parent directory is created as needed.
func Write(ds model.Dataset, path string) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, os.FileMode(0o644)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	return nil
}

// Read loads and validates a persisted dataset.
func Read(path string) (model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Decode(data)
}

// Decode validates raw document bytes structurally before unmarshaling, so
// a truncated or foreign JSON body surfaces as ErrFormat rather than a
// half-populated struct.
func Decode(data []byte) (model.Dataset, error) {
	if !gjson.ValidBytes(data) {
		return model.Dataset{}, fmt.Errorf("%w: not valid JSON", ErrFormat)
	}

	for _, field := range requiredFields {
		if !gjson.GetBytes(data, field).Exists() {
			return model.Dataset{}, fmt.Errorf("%w: missing %q", ErrFormat, field)
		}
	}

	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return model.Dataset{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return ds, nil
}
