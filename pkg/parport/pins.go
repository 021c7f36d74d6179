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

package parport

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// PinSet is the fixed collection of the 17 named pins of a parallel
// port: 4 control lines, 5 status lines and 8 data lines. It is built
// once per port and addressed by field or by signal name.
type PinSet struct {
	Strobe        Pin
	AutoLinefeed  Pin
	Initialize    Pin
	SelectPrinter Pin

	Ack      Pin
	Busy     Pin
	PaperOut Pin
	SelectIn Pin
	Error    Pin

	D0 Pin
	D1 Pin
	D2 Pin
	D3 Pin
	D4 Pin
	D5 Pin
	D6 Pin
	D7 Pin

	all    []Pin
	byName map[string]Pin
}

// newPinSet builds the pin table of an IEEE 1284 compatible port.
// Bit indices and inversion flags are hardware-mandated.
func newPinSet() *PinSet {
	s := &PinSet{
		Strobe:        Pin{name: "STROBE", number: 1, bitIndex: 0, register: RegisterControl, outputAllowed: true, inverted: true},
		AutoLinefeed:  Pin{name: "AUTO_LINEFEED", number: 14, bitIndex: 1, register: RegisterControl, outputAllowed: true, inverted: true},
		Initialize:    Pin{name: "INITIALIZE", number: 16, bitIndex: 2, register: RegisterControl, outputAllowed: true},
		SelectPrinter: Pin{name: "SELECT_PRINTER", number: 17, bitIndex: 3, register: RegisterControl, outputAllowed: true, inverted: true},

		Ack:      Pin{name: "ACK", number: 10, bitIndex: 6, register: RegisterStatus, inputAllowed: true},
		Busy:     Pin{name: "BUSY", number: 11, bitIndex: 7, register: RegisterStatus, inputAllowed: true, inverted: true},
		PaperOut: Pin{name: "PAPER_OUT", number: 12, bitIndex: 5, register: RegisterStatus, inputAllowed: true},
		SelectIn: Pin{name: "SELECT_IN", number: 13, bitIndex: 4, register: RegisterStatus, inputAllowed: true},
		Error:    Pin{name: "ERROR", number: 15, bitIndex: 3, register: RegisterStatus, inputAllowed: true},

		D0: Pin{name: "D0", number: 2, bitIndex: 0, register: RegisterData, inputAllowed: true, outputAllowed: true},
		D1: Pin{name: "D1", number: 3, bitIndex: 1, register: RegisterData, inputAllowed: true, outputAllowed: true},
		D2: Pin{name: "D2", number: 4, bitIndex: 2, register: RegisterData, inputAllowed: true, outputAllowed: true},
		D3: Pin{name: "D3", number: 5, bitIndex: 3, register: RegisterData, inputAllowed: true, outputAllowed: true},
		D4: Pin{name: "D4", number: 6, bitIndex: 4, register: RegisterData, inputAllowed: true, outputAllowed: true},
		D5: Pin{name: "D5", number: 7, bitIndex: 5, register: RegisterData, inputAllowed: true, outputAllowed: true},
		D6: Pin{name: "D6", number: 8, bitIndex: 6, register: RegisterData, inputAllowed: true, outputAllowed: true},
		D7: Pin{name: "D7", number: 9, bitIndex: 7, register: RegisterData, inputAllowed: true, outputAllowed: true},
	}
	s.all = []Pin{
		s.Strobe, s.AutoLinefeed, s.Initialize, s.SelectPrinter,
		s.Ack, s.Busy, s.PaperOut, s.SelectIn, s.Error,
		s.D0, s.D1, s.D2, s.D3, s.D4, s.D5, s.D6, s.D7,
	}
	s.byName = lo.SliceToMap(s.all, func(p Pin) (string, Pin) {
		return p.name, p
	})
	return s
}

// All returns all pins in declaration order.
func (s *PinSet) All() []Pin {
	result := make([]Pin, len(s.all))
	copy(result, s.all)
	return result
}

// Names returns the signal names of all pins in declaration order.
func (s *PinSet) Names() []string {
	return lo.Map(s.all, func(p Pin, _ int) string {
		return p.name
	})
}

// ByName returns the pin with the given signal name.
func (s *PinSet) ByName(name string) (Pin, error) {
	p, found := s.byName[name]
	if !found {
		return Pin{}, errors.Wrapf(InvalidPinError, "unknown pin '%s'", name)
	}
	return p, nil
}
