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
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/lptworks/parport/pkg/util"
)

// DevPortPath is the Linux device that maps the ISA I/O port space.
const DevPortPath = "/dev/port"

type devPort struct {
	lock util.SpinLock
	fd   int
}

// NewDevicePort opens the /dev/port backend. The calling process needs
// read/write access to /dev/port (usually root or CAP_SYS_RAWIO).
func NewDevicePort() (API, error) {
	fd, err := unix.Open(DevPortPath, unix.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s failed", DevPortPath)
	}
	return &devPort{
		fd: fd,
	}, nil
}

// ReadByte reads one byte from the register at the given I/O address.
func (p *devPort) ReadByte(address uint16) (byte, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	var buf [1]byte
	if _, err := unix.Pread(p.fd, buf[:], int64(address)); err != nil {
		readByteErrorCounters.WithLabelValues(formatAddress(address)).Inc()
		return 0, errors.Wrapf(err, "read at %s failed", formatAddress(address))
	}
	readByteCounters.WithLabelValues(formatAddress(address)).Inc()
	return buf[0], nil
}

// WriteByte writes one byte to the register at the given I/O address.
func (p *devPort) WriteByte(address uint16, value byte) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	buf := [1]byte{value}
	if _, err := unix.Pwrite(p.fd, buf[:], int64(address)); err != nil {
		writeByteErrorCounters.WithLabelValues(formatAddress(address)).Inc()
		return errors.Wrapf(err, "write at %s failed", formatAddress(address))
	}
	writeByteCounters.WithLabelValues(formatAddress(address)).Inc()
	return nil
}

// Close releases the backend.
func (p *devPort) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.fd < 0 {
		return nil
	}
	fd := p.fd
	p.fd = -1
	if err := unix.Close(fd); err != nil {
		return errors.Wrapf(err, "close %s failed", DevPortPath)
	}
	return nil
}
