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
	"github.com/lptworks/parport/pkg/metrics"
)

const (
	subSystem = "service"
)

var (
	// Total number of pin reads per pin
	pinReadCounters = metrics.MustRegisterCounterVec(subSystem,
		"pin_read_total",
		"Total number of pin reads per pin",
		"pin")
	// Total number of pin writes per pin
	pinWriteCounters = metrics.MustRegisterCounterVec(subSystem,
		"pin_write_total",
		"Total number of pin writes per pin",
		"pin")
	// Total number of operations rejected because of pin direction
	directionViolationsTotal = metrics.MustRegisterCounter(subSystem,
		"direction_violation_total",
		"Total number of operations rejected because of pin direction")
	// Total number of observed status pin changes per pin
	pinChangeCounters = metrics.MustRegisterCounterVec(subSystem,
		"pin_change_total",
		"Total number of observed status pin changes per pin",
		"pin")
)
