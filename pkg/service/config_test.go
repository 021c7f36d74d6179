// Copyright 2024 Lptworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lptd.toml")
	content := `
base_address = "0x278"
backend = "virtual"
http_port = 8080
poll_interval_ms = 25
mqtt_broker_address = "localhost:1883"
mqtt_topic_prefix = "printer"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFileConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := FileConfig{
		BaseAddress:       "0x278",
		Backend:           "virtual",
		HTTPPort:          8080,
		PollIntervalMs:    25,
		MQTTBrokerAddress: "localhost:1883",
		MQTTTopicPrefix:   "printer",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileConfigEmptyPath(t *testing.T) {
	cfg, err := LoadFileConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(FileConfig{}, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("LoadFileConfig() succeeded, want error")
	}
}

func TestParseBaseAddress(t *testing.T) {
	for _, test := range []struct {
		input string
		want  uint16
	}{
		{"0x378", 0x378},
		{"888", 888},
		{" 0x278 ", 0x278},
	} {
		got, err := ParseBaseAddress(test.input)
		if err != nil {
			t.Fatalf("ParseBaseAddress(%q) failed: %v", test.input, err)
		}
		if got != test.want {
			t.Fatalf("ParseBaseAddress(%q) = 0x%03x, want 0x%03x", test.input, got, test.want)
		}
	}
	if _, err := ParseBaseAddress("lpt1"); err == nil {
		t.Fatal("ParseBaseAddress(lpt1) succeeded, want error")
	}
}
