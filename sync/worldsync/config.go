// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package worldsync

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config tunes the processing of node data responses.
type Config struct {
	// VerifyHashes enables the check that received data matches the hash
	// it was requested for.
	VerifyHashes bool `yaml:"verifyHashes"`
	// SkipExisting enables the lookup of requests in the local storage
	// before they are scheduled. Data found locally is not requested again,
	// its children are scheduled instead.
	SkipExisting bool `yaml:"skipExisting"`
}

var DefaultConfig = Config{
	VerifyHashes: true,
	SkipExisting: true,
}

// LoadConfig reads a YAML configuration file. Options not mentioned in the
// file retain their default values.
func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()
	config := DefaultConfig
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return config, nil
}
