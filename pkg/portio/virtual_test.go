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
	"testing"
)

func TestVirtualPortReadWrite(t *testing.T) {
	port := NewVirtualPort(0x378)

	if err := port.WriteByte(0x379, 0x42); err != nil {
		t.Fatal(err)
	}
	value, err := port.ReadByte(0x379)
	if err != nil {
		t.Fatal(err)
	}
	if value != 0x42 {
		t.Fatalf("ReadByte(0x379) = 0x%02x, want 0x42", value)
	}
	if got := port.ReadCount(); got != 1 {
		t.Fatalf("ReadCount() = %d, want 1", got)
	}
	if got := port.WriteCount(); got != 1 {
		t.Fatalf("WriteCount() = %d, want 1", got)
	}
}

func TestVirtualPortAddressRange(t *testing.T) {
	port := NewVirtualPort(0x378)

	if _, err := port.ReadByte(0x377); err == nil {
		t.Fatal("ReadByte(0x377) succeeded, want error")
	}
	if err := port.WriteByte(0x37b, 0); err == nil {
		t.Fatal("WriteByte(0x37b) succeeded, want error")
	}
	// Failed accesses are not counted.
	if got := port.ReadCount(); got != 0 {
		t.Fatalf("ReadCount() = %d, want 0", got)
	}
	if got := port.WriteCount(); got != 0 {
		t.Fatalf("WriteCount() = %d, want 0", got)
	}
}

func TestVirtualPortSetRegister(t *testing.T) {
	port := NewVirtualPort(0x378)

	if err := port.SetRegister(0x37a, 0xc0); err != nil {
		t.Fatal(err)
	}
	value, err := port.Register(0x37a)
	if err != nil {
		t.Fatal(err)
	}
	if value != 0xc0 {
		t.Fatalf("Register(0x37a) = 0x%02x, want 0xc0", value)
	}
	// SetRegister and Register bypass the access counters.
	if got := port.ReadCount() + port.WriteCount(); got != 0 {
		t.Fatalf("counted accesses = %d, want 0", got)
	}
}
