// Copyright 2023 Lptworks
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

package portio

import (
	"fmt"
	"sync"
)

// VirtualPort is an in-memory parallel port backend. It keeps the three
// registers in a byte array and counts accesses, so it doubles as the
// development backend and as the counting mock used in tests.
type VirtualPort struct {
	mutex      sync.Mutex
	base       uint16
	registers  [RegisterCount]byte
	readCount  uint64
	writeCount uint64
}

// NewVirtualPort creates an in-memory backend for a port at the given
// base address. All registers start at zero.
func NewVirtualPort(base uint16) *VirtualPort {
	return &VirtualPort{
		base: base,
	}
}

// ReadByte reads one byte from the register at the given I/O address.
func (p *VirtualPort) ReadByte(address uint16) (byte, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	index, err := p.registerIndex(address)
	if err != nil {
		readByteErrorCounters.WithLabelValues(formatAddress(address)).Inc()
		return 0, err
	}
	p.readCount++
	readByteCounters.WithLabelValues(formatAddress(address)).Inc()
	return p.registers[index], nil
}

// WriteByte writes one byte to the register at the given I/O address.
func (p *VirtualPort) WriteByte(address uint16, value byte) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	index, err := p.registerIndex(address)
	if err != nil {
		writeByteErrorCounters.WithLabelValues(formatAddress(address)).Inc()
		return err
	}
	p.writeCount++
	writeByteCounters.WithLabelValues(formatAddress(address)).Inc()
	p.registers[index] = value
	return nil
}

// Close releases the backend.
func (p *VirtualPort) Close() error {
	return nil
}

// ReadCount returns the number of successful byte reads so far.
func (p *VirtualPort) ReadCount() uint64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.readCount
}

// WriteCount returns the number of successful byte writes so far.
func (p *VirtualPort) WriteCount() uint64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.writeCount
}

// SetRegister places a raw byte in the register at the given I/O address
// without counting the access. Intended for test setup.
func (p *VirtualPort) SetRegister(address uint16, value byte) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	index, err := p.registerIndex(address)
	if err != nil {
		return err
	}
	p.registers[index] = value
	return nil
}

// Register returns the raw byte in the register at the given I/O address
// without counting the access. Intended for test verification.
func (p *VirtualPort) Register(address uint16) (byte, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	index, err := p.registerIndex(address)
	if err != nil {
		return 0, err
	}
	return p.registers[index], nil
}

func (p *VirtualPort) registerIndex(address uint16) (int, error) {
	if address < p.base || address >= p.base+RegisterCount {
		return 0, fmt.Errorf("address %s outside port at %s", formatAddress(address), formatAddress(p.base))
	}
	return int(address - p.base), nil
}

func formatAddress(address uint16) string {
	return fmt.Sprintf("0x%03x", address)
}
