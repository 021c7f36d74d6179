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

// Package portio provides byte-level access to the I/O addresses of a
// PC parallel port. Higher layers never touch the hardware directly;
// they go through the API interface offered here.
package portio

// API is the interface satisfied by all parallel port I/O backends.
// Each call is a single atomic byte access. A read-then-write pair is
// not atomic; callers that modify registers concurrently must
// serialize themselves.
type API interface {
	// ReadByte reads one byte from the register at the given I/O address.
	ReadByte(address uint16) (byte, error)
	// WriteByte writes one byte to the register at the given I/O address.
	WriteByte(address uint16, value byte) error
	// Close releases the backend.
	Close() error
}

// RegisterCount is the number of consecutive I/O addresses a
// parallel port occupies (data, status, control).
const RegisterCount = 3
