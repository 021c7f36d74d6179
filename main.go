// Copyright 2022 Lptworks
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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/lptworks/parport/pkg/environment"
	"github.com/lptworks/parport/pkg/parport"
	"github.com/lptworks/parport/pkg/portio"
	"github.com/lptworks/parport/pkg/server"
	"github.com/lptworks/parport/pkg/service"
)

const (
	projectName       = "Lptworks Parallel Port Daemon"
	defaultServerPort = 7410
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
)

func main() {
	var levelFlag string
	var configFile string
	var baseAddress string
	var backendType string
	var serverHost string
	var serverPort int
	var pollIntervalMs int
	var mqttBrokerAddress string
	var mqttTopicPrefix string

	pflag.StringVarP(&levelFlag, "level", "l", "debug", "Set log level")
	pflag.StringVarP(&configFile, "config", "c", "", "Path to optional TOML config file")
	pflag.StringVarP(&baseAddress, "address", "a", "", "Base I/O address of the port (e.g. 0x378)")
	pflag.StringVarP(&backendType, "backend", "b", "auto", "Type of port I/O backend to use (devport|virtual|auto)")
	pflag.StringVar(&serverHost, "host", "0.0.0.0", "Host address the HTTP server will listen on")
	pflag.IntVar(&serverPort, "port", 0, "Port the HTTP server will listen on")
	pflag.IntVar(&pollIntervalMs, "poll-interval", 0, "Delay between status pin polls in milliseconds")
	pflag.StringVar(&mqttBrokerAddress, "mqtt-broker", "", "Address of MQTT broker to publish status pin changes to")
	pflag.StringVar(&mqttTopicPrefix, "mqtt-topic-prefix", "lpt", "Topic prefix for published status pin states")
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(levelFlag); err == nil {
		logger = logger.Level(level)
	}

	// Load optional config file; flags win over file values.
	fileCfg, err := service.LoadFileConfig(configFile)
	if err != nil {
		Exitf("Failed to load config file: %v\n", err)
	}
	if baseAddress == "" {
		baseAddress = fileCfg.BaseAddress
	}
	if backendType == "auto" && fileCfg.Backend != "" {
		backendType = fileCfg.Backend
	}
	if serverPort == 0 {
		serverPort = fileCfg.HTTPPort
	}
	if serverPort == 0 {
		serverPort = defaultServerPort
	}
	if pollIntervalMs == 0 {
		pollIntervalMs = fileCfg.PollIntervalMs
	}
	if mqttBrokerAddress == "" {
		mqttBrokerAddress = fileCfg.MQTTBrokerAddress
	}
	if fileCfg.MQTTTopicPrefix != "" && mqttTopicPrefix == "lpt" {
		mqttTopicPrefix = fileCfg.MQTTTopicPrefix
	}

	base := uint16(service.DefaultBaseAddress)
	if baseAddress != "" {
		base, err = service.ParseBaseAddress(baseAddress)
		if err != nil {
			Exitf("Invalid base address: %v\n", err)
		}
	}

	if backendType == "auto" {
		backendType = environment.AutoDetectBackendType(logger)
	}
	var backend portio.API
	switch backendType {
	case "devport":
		backend, err = portio.NewDevicePort()
		if err != nil {
			Exitf("Failed to open device port backend: %v\n", err)
		}
	case "virtual":
		backend = portio.NewVirtualPort(base)
	default:
		Exitf("Unknown backend type '%s' (devport|virtual|auto)\n", backendType)
	}

	port := parport.New(base, backend)
	svc, err := service.NewService(service.Config{
		PollInterval:      time.Duration(pollIntervalMs) * time.Millisecond,
		MQTTBrokerAddress: mqttBrokerAddress,
		MQTTTopicPrefix:   mqttTopicPrefix,
		MQTTClientID:      fmt.Sprintf("lptd-%03x", base),
	}, service.Dependencies{
		Log:  logger,
		Port: port,
	})
	if err != nil {
		Exitf("Failed to initialize service: %v\n", err)
	}

	httpServer, err := server.New(server.Config{
		Host:     serverHost,
		HTTPPort: serverPort,
	}, logger, svc)
	if err != nil {
		Exitf("Failed to initialize server: %v\n", err)
	}

	// Prepare to shutdown in a controlled manor
	ctx, cancel := context.WithCancel(context.Background())
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	logger.Info().
		Str("backend", backendType).
		Str("address", fmt.Sprintf("0x%03x", base)).
		Msgf("Starting %s (version %s build %s)", projectName, projectVersion, projectBuild)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Run(ctx) })
	g.Go(func() error { return httpServer.Run(ctx) })
	err = g.Wait()
	if closeErr := svc.Close(context.Background()); closeErr != nil {
		logger.Warn().Err(closeErr).Msg("Failed to close port")
	}
	if err != nil {
		Exitf("Service run failed: %#v", err)
	}
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
