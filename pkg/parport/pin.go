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

// Package parport maps the named signal lines of a PC parallel (printer)
// port onto bits of the three SPP registers and offers read/write access
// per pin that honors direction capability and hardware inversion.
package parport

import "strings"

// Register identifies one of the three byte-wide registers of a
// parallel port.
type Register byte

const (
	RegisterData Register = iota
	RegisterStatus
	RegisterControl
)

// String returns the lower-case name of the register.
func (r Register) String() string {
	switch r {
	case RegisterData:
		return "data"
	case RegisterStatus:
		return "status"
	case RegisterControl:
		return "control"
	default:
		return "unknown"
	}
}

// RegisterByName returns the register with the given (case insensitive)
// name. Returns false when the name does not match a register.
func RegisterByName(name string) (Register, bool) {
	switch strings.ToLower(name) {
	case "data":
		return RegisterData, true
	case "status":
		return RegisterStatus, true
	case "control":
		return RegisterControl, true
	default:
		return 0, false
	}
}

// Address returns the I/O address of this register for a port at the
// given base address. The registers occupy base, base+1 and base+2.
func (r Register) Address(base uint16) uint16 {
	return base + uint16(r)
}

// Pin describes one signal line of the parallel port connector.
// Pins are created once when a port is opened and never change.
type Pin struct {
	name          string
	number        uint8 // Connector pin number (1...25)
	bitIndex      uint8 // Bit position (0...7) within the register
	register      Register
	inputAllowed  bool
	outputAllowed bool
	inverted      bool // Electrical active state is logic low
}

// Name returns the signal name of the pin (e.g. "STROBE", "D3").
func (p Pin) Name() string {
	return p.name
}

// Number returns the physical connector pin number (1...25).
func (p Pin) Number() uint8 {
	return p.number
}

// BitIndex returns the bit position (0...7) of the pin within its register.
func (p Pin) BitIndex() uint8 {
	return p.bitIndex
}

// Register returns the register the pin belongs to.
func (p Pin) Register() Register {
	return p.register
}

// InputAllowed returns true when the pin can be read.
func (p Pin) InputAllowed() bool {
	return p.inputAllowed
}

// OutputAllowed returns true when the pin can be written.
func (p Pin) OutputAllowed() bool {
	return p.outputAllowed
}

// Inverted returns true when the electrical signal of the pin is
// active-low relative to its logical value.
func (p Pin) Inverted() bool {
	return p.inverted
}

// String returns the signal name of the pin.
func (p Pin) String() string {
	return p.name
}

// mask returns a byte with only the pin's bit set.
func (p Pin) mask() byte {
	return 1 << p.bitIndex
}
