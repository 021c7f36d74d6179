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

package environment

import (
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/lptworks/parport/pkg/portio"
)

// AutoDetectBackendType detects the default port I/O backend based on
// the environment. When /dev/port is accessible the device backend is
// used, otherwise the virtual backend.
func AutoDetectBackendType(log zerolog.Logger) string {
	if err := unix.Access(portio.DevPortPath, unix.R_OK|unix.W_OK); err != nil {
		log.Debug().Err(err).Msgf("%s not accessible; falling back to virtual backend", portio.DevPortPath)
		return "virtual"
	}
	return "devport"
}
