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

package portio

import (
	"github.com/lptworks/parport/pkg/metrics"
)

const (
	subSystem = "portio"
)

var (
	// Total number of byte reads per I/O address
	readByteCounters = metrics.MustRegisterCounterVec(subSystem,
		"read_byte_total",
		"Total number of byte reads per I/O address",
		"address")
	// Total number of failed byte reads per I/O address
	readByteErrorCounters = metrics.MustRegisterCounterVec(subSystem,
		"read_byte_error_total",
		"Total number of failed byte reads per I/O address",
		"address")
	// Total number of byte writes per I/O address
	writeByteCounters = metrics.MustRegisterCounterVec(subSystem,
		"write_byte_total",
		"Total number of byte writes per I/O address",
		"address")
	// Total number of failed byte writes per I/O address
	writeByteErrorCounters = metrics.MustRegisterCounterVec(subSystem,
		"write_byte_error_total",
		"Total number of failed byte writes per I/O address",
		"address")
)
