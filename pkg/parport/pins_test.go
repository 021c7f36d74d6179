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
	"testing"

	"github.com/google/go-cmp/cmp"
)

// The IEEE 1284 pin mapping is hardware-mandated; any deviation breaks
// physical compatibility.
func TestPinTable(t *testing.T) {
	pins := newPinSet()
	tests := []struct {
		pin      Pin
		name     string
		number   uint8
		bitIndex uint8
		register Register
		input    bool
		output   bool
		inverted bool
	}{
		{pins.Strobe, "STROBE", 1, 0, RegisterControl, false, true, true},
		{pins.AutoLinefeed, "AUTO_LINEFEED", 14, 1, RegisterControl, false, true, true},
		{pins.Initialize, "INITIALIZE", 16, 2, RegisterControl, false, true, false},
		{pins.SelectPrinter, "SELECT_PRINTER", 17, 3, RegisterControl, false, true, true},
		{pins.Ack, "ACK", 10, 6, RegisterStatus, true, false, false},
		{pins.Busy, "BUSY", 11, 7, RegisterStatus, true, false, true},
		{pins.PaperOut, "PAPER_OUT", 12, 5, RegisterStatus, true, false, false},
		{pins.SelectIn, "SELECT_IN", 13, 4, RegisterStatus, true, false, false},
		{pins.Error, "ERROR", 15, 3, RegisterStatus, true, false, false},
		{pins.D0, "D0", 2, 0, RegisterData, true, true, false},
		{pins.D1, "D1", 3, 1, RegisterData, true, true, false},
		{pins.D2, "D2", 4, 2, RegisterData, true, true, false},
		{pins.D3, "D3", 5, 3, RegisterData, true, true, false},
		{pins.D4, "D4", 6, 4, RegisterData, true, true, false},
		{pins.D5, "D5", 7, 5, RegisterData, true, true, false},
		{pins.D6, "D6", 8, 6, RegisterData, true, true, false},
		{pins.D7, "D7", 9, 7, RegisterData, true, true, false},
	}
	for _, test := range tests {
		p := test.pin
		if p.Name() != test.name {
			t.Errorf("Name() = %s, want %s", p.Name(), test.name)
		}
		if p.Number() != test.number {
			t.Errorf("%s: Number() = %d, want %d", test.name, p.Number(), test.number)
		}
		if p.BitIndex() != test.bitIndex {
			t.Errorf("%s: BitIndex() = %d, want %d", test.name, p.BitIndex(), test.bitIndex)
		}
		if p.Register() != test.register {
			t.Errorf("%s: Register() = %s, want %s", test.name, p.Register(), test.register)
		}
		if p.InputAllowed() != test.input {
			t.Errorf("%s: InputAllowed() = %v, want %v", test.name, p.InputAllowed(), test.input)
		}
		if p.OutputAllowed() != test.output {
			t.Errorf("%s: OutputAllowed() = %v, want %v", test.name, p.OutputAllowed(), test.output)
		}
		if p.Inverted() != test.inverted {
			t.Errorf("%s: Inverted() = %v, want %v", test.name, p.Inverted(), test.inverted)
		}
	}
}

func TestPinSetNames(t *testing.T) {
	pins := newPinSet()
	want := []string{
		"STROBE", "AUTO_LINEFEED", "INITIALIZE", "SELECT_PRINTER",
		"ACK", "BUSY", "PAPER_OUT", "SELECT_IN", "ERROR",
		"D0", "D1", "D2", "D3", "D4", "D5", "D6", "D7",
	}
	if diff := cmp.Diff(want, pins.Names()); diff != "" {
		t.Fatalf("Names() mismatch (-want +got):\n%s", diff)
	}
	if got := len(pins.All()); got != 17 {
		t.Fatalf("len(All()) = %d, want 17", got)
	}
}

func TestPinSetByName(t *testing.T) {
	pins := newPinSet()
	for _, name := range pins.Names() {
		pin, err := pins.ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s) failed: %v", name, err)
		}
		if pin.Name() != name {
			t.Fatalf("ByName(%s).Name() = %s", name, pin.Name())
		}
	}
	if _, err := pins.ByName("D8"); !IsInvalidPin(err) {
		t.Fatalf("ByName(D8) = %v, want InvalidPinError", err)
	}
}

func TestRegisterByName(t *testing.T) {
	for _, test := range []struct {
		name string
		want Register
	}{
		{"data", RegisterData},
		{"STATUS", RegisterStatus},
		{"Control", RegisterControl},
	} {
		register, found := RegisterByName(test.name)
		if !found || register != test.want {
			t.Fatalf("RegisterByName(%s) = %s, %v", test.name, register, found)
		}
	}
	if _, found := RegisterByName("ecp"); found {
		t.Fatal("RegisterByName(ecp) = true, want false")
	}
}

func TestRegisterAddress(t *testing.T) {
	if got := RegisterData.Address(0x378); got != 0x378 {
		t.Fatalf("data address = 0x%03x, want 0x378", got)
	}
	if got := RegisterStatus.Address(0x378); got != 0x379 {
		t.Fatalf("status address = 0x%03x, want 0x379", got)
	}
	if got := RegisterControl.Address(0x378); got != 0x37a {
		t.Fatalf("control address = 0x%03x, want 0x37a", got)
	}
}
