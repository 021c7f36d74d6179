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

// Package service owns the single open parallel port of the daemon and
// serializes all pin access to it.
package service

import (
	"context"
	"sync"
	"time"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/mattn/go-pubsub"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/lptworks/parport/pkg/parport"
)

// Service is the API exposed on top of the open port.
type Service interface {
	// ReadPin returns the logical value of the named pin.
	ReadPin(ctx context.Context, name string) (bool, error)
	// WritePin sets the logical value of the named pin.
	WritePin(ctx context.Context, name string, value bool) error
	// ReadRegister reads the whole named register (data|status|control).
	ReadRegister(ctx context.Context, name string) (byte, error)
	// WriteRegister writes the whole named register (data|control).
	WriteRegister(ctx context.Context, name string, value byte) error
	// Pins returns descriptors of all pins in connector order.
	Pins() []PinInfo
	// PinNames returns the signal names of all pins.
	PinNames() []string
	// BaseAddress returns the I/O address the port is opened at.
	BaseAddress() uint16
	// StartedAt returns the time the service was created.
	StartedAt() time.Time
	// RegisterPinChangeReceiver calls the given callback for every
	// observed status pin change until the returned cancel is called.
	RegisterPinChangeReceiver(cb func(PinChange) error) context.CancelFunc
	// Run the status watcher and publishers until the given context
	// is canceled.
	Run(ctx context.Context) error
	// Close brings the port back to a safe state and releases it.
	Close(ctx context.Context) error
}

// PinInfo describes one pin for introspection surfaces.
type PinInfo struct {
	Name          string `json:"name"`
	Number        uint8  `json:"number"`
	Register      string `json:"register"`
	BitIndex      uint8  `json:"bit_index"`
	InputAllowed  bool   `json:"input_allowed"`
	OutputAllowed bool   `json:"output_allowed"`
	Inverted      bool   `json:"inverted"`
}

// PinChange is published for every observed status pin transition.
type PinChange struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

// Config of the port service.
type Config struct {
	// Delay between status pin polls
	PollInterval time.Duration
	// Address of the MQTT broker to publish status pin changes to.
	// Empty disables MQTT publishing.
	MQTTBrokerAddress string
	// Topic prefix for published status pin states
	MQTTTopicPrefix string
	// Client ID used on the MQTT broker
	MQTTClientID string
}

// Dependencies of the port service.
type Dependencies struct {
	Log  zerolog.Logger
	Port *parport.Port
}

type service struct {
	Config
	log  zerolog.Logger
	port *parport.Port

	// Guards the read-modify-write pair of every pin access.
	// The core port does no locking of its own.
	portMutex  sync.Mutex
	pinChanges *pubsub.PubSub
	startedAt  time.Time
}

// NewService creates a Service around the given open port.
func NewService(conf Config, deps Dependencies) (Service, error) {
	if deps.Port == nil {
		return nil, errors.New("Port is required")
	}
	if conf.PollInterval <= 0 {
		conf.PollInterval = DefaultPollInterval
	}
	return &service{
		Config:     conf,
		log:        deps.Log.With().Str("component", "port-service").Logger(),
		port:       deps.Port,
		pinChanges: pubsub.New(),
		startedAt:  time.Now(),
	}, nil
}

// ReadPin returns the logical value of the named pin.
func (s *service) ReadPin(ctx context.Context, name string) (bool, error) {
	pin, err := s.port.Pins().ByName(name)
	if err != nil {
		return false, err
	}
	s.portMutex.Lock()
	defer s.portMutex.Unlock()

	value, err := s.port.ReadPin(pin)
	if err != nil {
		if parport.IsInvalidDirection(err) {
			directionViolationsTotal.Inc()
		}
		return false, err
	}
	pinReadCounters.WithLabelValues(name).Inc()
	return value, nil
}

// WritePin sets the logical value of the named pin.
func (s *service) WritePin(ctx context.Context, name string, value bool) error {
	pin, err := s.port.Pins().ByName(name)
	if err != nil {
		return err
	}
	s.portMutex.Lock()
	defer s.portMutex.Unlock()

	if err := s.port.WritePin(pin, value); err != nil {
		if parport.IsInvalidDirection(err) {
			directionViolationsTotal.Inc()
		}
		return err
	}
	pinWriteCounters.WithLabelValues(name).Inc()
	return nil
}

// ReadRegister reads the whole named register.
func (s *service) ReadRegister(ctx context.Context, name string) (byte, error) {
	register, found := parport.RegisterByName(name)
	if !found {
		return 0, errors.Wrapf(parport.InvalidPinError, "unknown register '%s'", name)
	}
	s.portMutex.Lock()
	defer s.portMutex.Unlock()
	return s.port.ReadRegister(register)
}

// WriteRegister writes the whole named register.
func (s *service) WriteRegister(ctx context.Context, name string, value byte) error {
	register, found := parport.RegisterByName(name)
	if !found {
		return errors.Wrapf(parport.InvalidPinError, "unknown register '%s'", name)
	}
	s.portMutex.Lock()
	defer s.portMutex.Unlock()

	if err := s.port.WriteRegister(register, value); err != nil {
		if parport.IsInvalidDirection(err) {
			directionViolationsTotal.Inc()
		}
		return err
	}
	return nil
}

// Pins returns descriptors of all pins in connector order.
func (s *service) Pins() []PinInfo {
	return lo.Map(s.port.Pins().All(), func(p parport.Pin, _ int) PinInfo {
		return PinInfo{
			Name:          p.Name(),
			Number:        p.Number(),
			Register:      p.Register().String(),
			BitIndex:      p.BitIndex(),
			InputAllowed:  p.InputAllowed(),
			OutputAllowed: p.OutputAllowed(),
			Inverted:      p.Inverted(),
		}
	})
}

// PinNames returns the signal names of all pins.
func (s *service) PinNames() []string {
	return s.port.Pins().Names()
}

// BaseAddress returns the I/O address the port is opened at.
func (s *service) BaseAddress() uint16 {
	return s.port.BaseAddress()
}

// StartedAt returns the time the service was created.
func (s *service) StartedAt() time.Time {
	return s.startedAt
}

// RegisterPinChangeReceiver calls the given callback for every observed
// status pin change until the returned cancel is called.
func (s *service) RegisterPinChangeReceiver(cb func(PinChange) error) context.CancelFunc {
	wcb := func(x PinChange) {
		if err := cb(x); err != nil {
			s.log.Warn().Err(err).Msg("Pin change processing error")
		}
	}
	s.pinChanges.Sub(wcb)
	return func() {
		s.pinChanges.Leave(wcb)
	}
}

// Run the status watcher and publishers until the given context is canceled.
func (s *service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.runStatusWatcher(ctx) })
	if s.MQTTBrokerAddress != "" {
		g.Go(func() error { return s.runMQTTPublisher(ctx) })
	}
	return g.Wait()
}

// Close brings the port back to a safe state and releases it.
func (s *service) Close(ctx context.Context) error {
	var ae aerr.AggregateError

	s.portMutex.Lock()
	defer s.portMutex.Unlock()

	// Drop all data lines before letting go of the port.
	if err := s.port.WriteDataRegister(0); err != nil {
		ae.Add(err)
	}
	if err := s.port.Close(); err != nil {
		ae.Add(err)
	}
	return ae.AsError()
}
