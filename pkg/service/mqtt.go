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
	"fmt"
	"strings"
	"time"

	mqttapi "github.com/eclipse/paho.mqtt.golang"

	"github.com/lptworks/parport/pkg/util"
)

const (
	mqttPublishTimeout = time.Millisecond * 200
)

// runMQTTPublisher publishes every status pin change as a retained
// message on `<prefix>/<pin>/state` until the given context is
// canceled. Connection failures are retried.
func (s *service) runMQTTPublisher(ctx context.Context) error {
	log := s.log.With().Str("component", "mqtt-publisher").Logger()
	topicPrefix := strings.TrimSuffix(s.MQTTTopicPrefix, "/") + "/"

	return util.UntilCanceled(ctx, log, "mqtt publisher", func() error {
		// Prepare MQTT client options
		opts := mqttapi.NewClientOptions().
			AddBroker("tcp://" + s.MQTTBrokerAddress).
			SetClientID(s.MQTTClientID)
		opts.SetKeepAlive(2 * time.Second)
		opts.SetPingTimeout(1 * time.Second)
		opts.SetOrderMatters(false)

		// Connect client
		client := mqttapi.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to connect to mqtt: %w", token.Error())
		}
		defer client.Disconnect(250)
		log.Info().Msgf("Publishing status pin changes to %s at '%s'", s.MQTTBrokerAddress, topicPrefix)

		cancel := s.RegisterPinChangeReceiver(func(change PinChange) error {
			payload := "OFF"
			if change.Value {
				payload = "ON"
			}
			topic := fmt.Sprintf("%s%s/state", topicPrefix, strings.ToLower(change.Name))
			token := client.Publish(topic, 0, true, payload)
			if !token.WaitTimeout(mqttPublishTimeout) {
				return fmt.Errorf("publish to '%s' timed out", topic)
			}
			return token.Error()
		})
		defer cancel()

		<-ctx.Done()
		return nil
	})
}
