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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/lptworks/parport/pkg/parport"
	"github.com/lptworks/parport/pkg/portio"
)

const testBase = 0x378

func newTestService(t *testing.T, conf Config) (Service, *portio.VirtualPort) {
	t.Helper()
	backend := portio.NewVirtualPort(testBase)
	port := parport.New(testBase, backend)
	svc, err := NewService(conf, Dependencies{
		Log:  zerolog.Nop(),
		Port: port,
	})
	if err != nil {
		t.Fatal(err)
	}
	return svc, backend
}

func TestReadWritePinByName(t *testing.T) {
	ctx := context.Background()
	svc, backend := newTestService(t, Config{})

	if err := svc.WritePin(ctx, "D0", true); err != nil {
		t.Fatal(err)
	}
	register, err := backend.Register(testBase)
	if err != nil {
		t.Fatal(err)
	}
	if register != 0x01 {
		t.Fatalf("data register = 0x%02x, want 0x01", register)
	}
	value, err := svc.ReadPin(ctx, "D0")
	if err != nil {
		t.Fatal(err)
	}
	if !value {
		t.Fatal("ReadPin(D0) = false, want true")
	}

	if _, err := svc.ReadPin(ctx, "D9"); !parport.IsInvalidPin(err) {
		t.Fatalf("ReadPin(D9) = %v, want InvalidPinError", err)
	}
	if err := svc.WritePin(ctx, "ACK", true); !parport.IsInvalidDirection(err) {
		t.Fatalf("WritePin(ACK) = %v, want InvalidDirectionError", err)
	}
	if _, err := svc.ReadPin(ctx, "STROBE"); !parport.IsInvalidDirection(err) {
		t.Fatalf("ReadPin(STROBE) = %v, want InvalidDirectionError", err)
	}
}

func TestReadWriteRegisterByName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, Config{})

	if err := svc.WriteRegister(ctx, "data", 0x55); err != nil {
		t.Fatal(err)
	}
	value, err := svc.ReadRegister(ctx, "data")
	if err != nil {
		t.Fatal(err)
	}
	if value != 0x55 {
		t.Fatalf("ReadRegister(data) = 0x%02x, want 0x55", value)
	}

	if err := svc.WriteRegister(ctx, "status", 0xff); !parport.IsInvalidDirection(err) {
		t.Fatalf("WriteRegister(status) = %v, want InvalidDirectionError", err)
	}
	if _, err := svc.ReadRegister(ctx, "ecp"); !parport.IsInvalidPin(err) {
		t.Fatalf("ReadRegister(ecp) = %v, want InvalidPinError", err)
	}
}

func TestPins(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	pins := svc.Pins()
	if len(pins) != 17 {
		t.Fatalf("len(Pins()) = %d, want 17", len(pins))
	}
	want := PinInfo{
		Name:          "STROBE",
		Number:        1,
		Register:      "control",
		BitIndex:      0,
		InputAllowed:  false,
		OutputAllowed: true,
		Inverted:      true,
	}
	if diff := cmp.Diff(want, pins[0]); diff != "" {
		t.Fatalf("Pins()[0] mismatch (-want +got):\n%s", diff)
	}
	if got := len(svc.PinNames()); got != 17 {
		t.Fatalf("len(PinNames()) = %d, want 17", got)
	}
	if got := svc.BaseAddress(); got != testBase {
		t.Fatalf("BaseAddress() = 0x%03x, want 0x%03x", got, testBase)
	}
}

func TestStatusWatcherPublishesChanges(t *testing.T) {
	svc, backend := newTestService(t, Config{PollInterval: time.Millisecond})

	changes := make(chan PinChange, 32)
	cancelReceiver := svc.RegisterPinChangeReceiver(func(c PinChange) error {
		changes <- c
		return nil
	})
	defer cancelReceiver()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.Run(ctx)
	}()

	// The first poll publishes the initial state of every status pin.
	initial := make(map[string]bool)
	for len(initial) < 5 {
		select {
		case c := <-changes:
			initial[c.Name] = c.Value
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for initial states, got %d", len(initial))
		}
	}
	// BUSY is active-low: an all-zero status register means busy.
	wantInitial := map[string]bool{
		"ACK": false, "BUSY": true, "PAPER_OUT": false, "SELECT_IN": false, "ERROR": false,
	}
	if diff := cmp.Diff(wantInitial, initial); diff != "" {
		t.Fatalf("initial states mismatch (-want +got):\n%s", diff)
	}

	// Raise ACK (status bit 6) and wait for the transition.
	if err := backend.SetRegister(testBase+1, 1<<6); err != nil {
		t.Fatal(err)
	}
	for {
		select {
		case c := <-changes:
			if c.Name == "ACK" && c.Value {
				cancel()
				<-done
				return
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for ACK change")
		}
	}
}
