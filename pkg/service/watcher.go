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
	"context"
	"time"

	"github.com/lptworks/parport/pkg/parport"
)

// runStatusWatcher polls the five status pins and publishes every
// observed transition to the pin change receivers. The first poll
// publishes the initial state of each pin.
func (s *service) runStatusWatcher(ctx context.Context) error {
	log := s.log.With().Str("component", "status-watcher").Logger()
	pins := s.port.Pins()
	watched := []parport.Pin{pins.Ack, pins.Busy, pins.PaperOut, pins.SelectIn, pins.Error}
	last := make(map[string]bool, len(watched))

	log.Debug().Msgf("Watching %d status pins every %s", len(watched), s.PollInterval)
	for {
		if err := s.pollStatusPins(watched, last); err != nil {
			log.Warn().Err(err).Msg("Status poll failed")
		}
		select {
		case <-ctx.Done():
			// Context canceled
			log.Debug().Msg("Status watcher stopped")
			return nil
		case <-time.After(s.PollInterval):
			// Continue
		}
	}
}

// pollStatusPins reads the given pins once and publishes changes.
func (s *service) pollStatusPins(watched []parport.Pin, last map[string]bool) error {
	for _, pin := range watched {
		value, err := s.readPinLocked(pin)
		if err != nil {
			return err
		}
		previous, seen := last[pin.Name()]
		if seen && previous == value {
			continue
		}
		last[pin.Name()] = value
		if seen {
			pinChangeCounters.WithLabelValues(pin.Name()).Inc()
		}
		s.pinChanges.Pub(PinChange{Name: pin.Name(), Value: value})
	}
	return nil
}

// readPinLocked reads a pin under the port mutex without touching the
// pin read counters, so polling does not drown out the API metrics.
func (s *service) readPinLocked(pin parport.Pin) (bool, error) {
	s.portMutex.Lock()
	defer s.portMutex.Unlock()
	return s.port.ReadPin(pin)
}
