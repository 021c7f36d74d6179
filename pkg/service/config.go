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
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseAddress is the base address of LPT1 on a PC.
	DefaultBaseAddress = 0x378
	// DefaultPollInterval is the default delay between status pin polls.
	DefaultPollInterval = time.Millisecond * 50
)

// FileConfig is the optional on-disk daemon configuration.
// Command line flags take precedence over values given here.
type FileConfig struct {
	// Base I/O address of the port, e.g. "0x378"
	BaseAddress string `toml:"base_address"`
	// Port I/O backend (devport|virtual|auto)
	Backend string `toml:"backend"`
	// Port the HTTP server listens on
	HTTPPort int `toml:"http_port"`
	// Delay between status pin polls in milliseconds
	PollIntervalMs int `toml:"poll_interval_ms"`
	// Address of the MQTT broker to publish status pin changes to.
	// Empty disables MQTT publishing.
	MQTTBrokerAddress string `toml:"mqtt_broker_address"`
	// Topic prefix for published status pin states
	MQTTTopicPrefix string `toml:"mqtt_topic_prefix"`
}

// LoadFileConfig reads the configuration file at the given path.
// An empty path yields an empty configuration.
func LoadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, errors.Wrapf(err, "failed to load config from %s", path)
	}
	return cfg, nil
}

// ParseBaseAddress parses a port base address such as "0x378" or "888".
func ParseBaseAddress(s string) (uint16, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(s), 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid base address '%s'", s)
	}
	return uint16(value), nil
}
