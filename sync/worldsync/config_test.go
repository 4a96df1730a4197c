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
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_EnablesAllChecks(t *testing.T) {
	if !DefaultConfig.VerifyHashes || !DefaultConfig.SkipExisting {
		t.Errorf("unexpected default configuration: %+v", DefaultConfig)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		content string
		want    Config
	}{
		"empty":        {"", DefaultConfig},
		"comment only": {"# nothing\n", DefaultConfig},
		"partial":      {"skipExisting: false\n", Config{VerifyHashes: true, SkipExisting: false}},
		"full":         {"verifyHashes: false\nskipExisting: false\n", Config{}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(test.content), 0600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			got, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("unexpected config, wanted %+v, got %+v", test.want, got)
			}
		})
	}
}

func TestLoadConfig_RejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("loading a missing file should fail")
	}

	tests := map[string]string{
		"unknown field": "verifyHashes: true\nretries: 3\n",
		"invalid value": "skipExisting: maybe\n",
		"not a mapping": "- a\n- b\n",
	}
	for name, content := range tests {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
