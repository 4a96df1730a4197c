// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fantom-foundation/worldsync/common"
	"github.com/Fantom-foundation/worldsync/database/mpt/rlp"
	"github.com/Fantom-foundation/worldsync/sync/nodedata"
	"golang.org/x/exp/slices"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"sync"}, args...))
	return out.String(), err
}

func TestParseLocation(t *testing.T) {
	tests := map[string]nodedata.Location{
		"":     {},
		"0":    {0},
		"1aF9": {1, 10, 15, 9},
	}
	for input, want := range tests {
		got, err := parseLocation(input)
		if err != nil {
			t.Errorf("failed to parse %q: %v", input, err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("unexpected location for %q, wanted %v, got %v", input, want, got)
		}
	}
	for _, input := range []string{"g", "0x12", strings.Repeat("0", 65)} {
		if _, err := parseLocation(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestDecodeCommand(t *testing.T) {
	account := common.Hash{0xaa}
	location := nodedata.Location{1, 2}
	request := nodedata.NewStorageRequest(common.Hash{0xbb}, &account, &location)

	out, err := run(t, "decode", "--hex", hex.EncodeToString(nodedata.Serialize(request)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"StorageTrieNode", account.String(), "[12]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q: %s", want, out)
		}
	}

	if _, err := run(t, "decode", "--hex", "c0"); err == nil {
		t.Errorf("decoding an invalid request should fail")
	}
}

func TestHandleLookupAndQueueCommands(t *testing.T) {
	dir := t.TempDir()
	dbDir := filepath.Join(dir, "db")
	queueFile := filepath.Join(dir, "queue.db")
	dataFile := filepath.Join(dir, "node.rlp")

	child := common.Hash{0xcc}
	items := make([]rlp.Item, 17)
	for i := range items {
		items[i] = rlp.String{}
	}
	items[7] = rlp.Hash{Hash: &child}
	node := rlp.Encode(rlp.List{Items: items})
	if err := os.WriteFile(dataFile, node, 0600); err != nil {
		t.Fatalf("failed to write data: %v", err)
	}
	hash := common.Keccak256(node).String()

	out, err := run(t, "handle", "--dir", dbDir, "--queue", queueFile, "--kind", "account", "--hash", hash, "--data", dataFile)
	if err != nil {
		t.Fatalf("failed to handle response: %v", err)
	}
	if !strings.Contains(out, "1 requests queued") {
		t.Errorf("unexpected output: %s", out)
	}

	out, err = run(t, "lookup", "--dir", dbDir, "--kind", "account", "--hash", hash)
	if err != nil {
		t.Fatalf("failed to look up node: %v", err)
	}
	if !strings.Contains(out, "Child:    [7] "+child.String()) {
		t.Errorf("unexpected output: %s", out)
	}

	out, err = run(t, "lookup", "--dir", dbDir, "--kind", "account", "--hash", hash, "--location", "1")
	if err != nil {
		t.Fatalf("failed to look up node: %v", err)
	}
	if !strings.Contains(out, "not found") {
		t.Errorf("nodes at other locations should not be found: %s", out)
	}

	out, err = run(t, "queue", "--queue", queueFile)
	if err != nil {
		t.Fatalf("failed to list queue: %v", err)
	}
	want := nodedata.NewAccountRequest(child, nodedata.Location{7}).String()
	if !strings.Contains(out, "Queued requests: 1") || !strings.Contains(out, want) {
		t.Errorf("unexpected output: %s", out)
	}

	if _, err := run(t, "handle", "--dir", dbDir, "--queue", queueFile, "--kind", "account", "--hash", child.String(), "--data", dataFile); err == nil {
		t.Errorf("handling mismatching data should fail")
	}
}

func TestHandle_PrintsMetrics(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "code.bin")
	code := []byte{0x60, 0x00}
	if err := os.WriteFile(dataFile, code, 0600); err != nil {
		t.Fatalf("failed to write data: %v", err)
	}
	hash := common.Keccak256(code).String()

	out, err := run(t, "handle", "--dir", filepath.Join(dir, "db"), "--queue", filepath.Join(dir, "queue.db"),
		"--kind", "code", "--hash", hash, "--data", dataFile, "--metrics")
	if err != nil {
		t.Fatalf("failed to handle response: %v", err)
	}
	if want := `worldsync_persisted_total{kind="Code"} 1`; !strings.Contains(out, want) {
		t.Errorf("missing %q in output: %s", want, out)
	}
}

func TestRequestFlagsAreValidated(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"--kind", "unknown", "--hash", common.Hash{}.String()},
		{"--kind", "code", "--hash", "0x1234"},
		{"--kind", "storage", "--hash", common.Hash{}.String(), "--account", "xyz"},
		{"--kind", "storage", "--hash", common.Hash{}.String(), "--location", "xyz"},
	}
	for _, args := range tests {
		args = append([]string{"lookup", "--dir", dir}, args...)
		if _, err := run(t, args...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}
