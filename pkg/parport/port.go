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

	"github.com/lptworks/parport/pkg/portio"
)

// Bit 5 of the control register selects the data register direction.
const directionBitIndex = 5

// PortDirection is the transfer direction of the data register.
type PortDirection byte

const (
	// PortDirectionForward drives the data lines as outputs.
	PortDirectionForward PortDirection = iota
	// PortDirectionReverse tri-states the data lines for reading.
	PortDirectionReverse
)

// String returns the lower-case name of the direction.
func (d PortDirection) String() string {
	if d == PortDirectionReverse {
		return "reverse"
	}
	return "forward"
}

// Port gives pin and register level access to one SPP parallel port.
// All hardware access goes through the portio backend. Port itself does
// no locking; the backend read-then-write pair in WritePin must be
// serialized by the caller when used from multiple goroutines.
type Port struct {
	base uint16
	io   portio.API
	pins *PinSet
}

// New creates a Port for the register block at the given base address
// (data at base, status at base+1, control at base+2), performing all
// I/O through the given backend.
func New(base uint16, io portio.API) *Port {
	return &Port{
		base: base,
		io:   io,
		pins: newPinSet(),
	}
}

// Pins returns the pin table of the port.
func (p *Port) Pins() *PinSet {
	return p.pins
}

// BaseAddress returns the I/O address of the data register.
func (p *Port) BaseAddress() uint16 {
	return p.base
}

// DataAddress returns the I/O address of the data register.
func (p *Port) DataAddress() uint16 {
	return RegisterData.Address(p.base)
}

// StatusAddress returns the I/O address of the status register.
func (p *Port) StatusAddress() uint16 {
	return RegisterStatus.Address(p.base)
}

// ControlAddress returns the I/O address of the control register.
func (p *Port) ControlAddress() uint16 {
	return RegisterControl.Address(p.base)
}

// ReadPin returns the logical value of the given pin.
// Returns an InvalidDirectionError when the pin does not allow input.
func (p *Port) ReadPin(pin Pin) (bool, error) {
	if !pin.InputAllowed() {
		return false, errors.Wrapf(InvalidDirectionError, "input not allowed on pin %d", pin.Number())
	}
	register, err := p.io.ReadByte(pin.register.Address(p.base))
	if err != nil {
		return false, maskAny(err)
	}
	value := (register>>pin.bitIndex)&1 == 1
	if pin.inverted {
		value = !value
	}
	return value, nil
}

// WritePin sets the logical value of the given pin, leaving all other
// bits of its register unchanged. When the pin already has the desired
// value no register write is issued.
// Returns an InvalidDirectionError when the pin does not allow output.
func (p *Port) WritePin(pin Pin, value bool) error {
	if !pin.OutputAllowed() {
		return errors.Wrapf(InvalidDirectionError, "output not allowed on pin %d", pin.Number())
	}
	address := pin.register.Address(p.base)
	register, err := p.io.ReadByte(address)
	if err != nil {
		return maskAny(err)
	}
	current := (register>>pin.bitIndex)&1 == 1
	if pin.inverted {
		current = !current
	}
	if current == value {
		// Already at the desired value
		return nil
	}
	if err := p.io.WriteByte(address, register^pin.mask()); err != nil {
		return maskAny(err)
	}
	return nil
}

// ReadDataRegister reads the whole data register.
func (p *Port) ReadDataRegister() (byte, error) {
	return p.readRegister(RegisterData)
}

// ReadStatusRegister reads the whole status register.
func (p *Port) ReadStatusRegister() (byte, error) {
	return p.readRegister(RegisterStatus)
}

// ReadControlRegister reads the whole control register.
func (p *Port) ReadControlRegister() (byte, error) {
	return p.readRegister(RegisterControl)
}

// WriteDataRegister writes the whole data register.
func (p *Port) WriteDataRegister(value byte) error {
	return p.writeRegister(RegisterData, value)
}

// WriteControlRegister writes the whole control register.
func (p *Port) WriteControlRegister(value byte) error {
	return p.writeRegister(RegisterControl, value)
}

// ReadRegister reads the whole given register.
func (p *Port) ReadRegister(register Register) (byte, error) {
	return p.readRegister(register)
}

// WriteRegister writes the whole given register.
// The status register is read-only.
func (p *Port) WriteRegister(register Register, value byte) error {
	if register == RegisterStatus {
		return errors.Wrapf(InvalidDirectionError, "the %s register is read-only", register)
	}
	return p.writeRegister(register, value)
}

// Direction returns the current data register transfer direction,
// taken from bit 5 of the control register.
func (p *Port) Direction() (PortDirection, error) {
	register, err := p.readRegister(RegisterControl)
	if err != nil {
		return PortDirectionForward, maskAny(err)
	}
	return PortDirection((register >> directionBitIndex) & 1), nil
}

// SetDirection sets the data register transfer direction by updating
// bit 5 of the control register, leaving the other control bits alone.
func (p *Port) SetDirection(direction PortDirection) error {
	register, err := p.readRegister(RegisterControl)
	if err != nil {
		return maskAny(err)
	}
	var updated byte
	if direction == PortDirectionReverse {
		updated = register | (1 << directionBitIndex)
	} else {
		updated = register &^ (1 << directionBitIndex)
	}
	if updated == register {
		return nil
	}
	return p.writeRegister(RegisterControl, updated)
}

// Close releases the underlying backend.
func (p *Port) Close() error {
	return p.io.Close()
}

func (p *Port) readRegister(register Register) (byte, error) {
	value, err := p.io.ReadByte(register.Address(p.base))
	if err != nil {
		return 0, maskAny(err)
	}
	return value, nil
}

func (p *Port) writeRegister(register Register, value byte) error {
	if err := p.io.WriteByte(register.Address(p.base), value); err != nil {
		return maskAny(err)
	}
	return nil
}
