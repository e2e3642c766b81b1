// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Loader timeouts
		{"LoadTimeout", LoadTimeout, 5 * time.Second, 30 * time.Second},
		{"ExpandTimeout", ExpandTimeout, 10 * time.Second, 60 * time.Second},

		// Handler timeouts
		{"RecipeHandlerTimeout", RecipeHandlerTimeout, 10 * time.Second, 60 * time.Second},
		{"PlanHandlerTimeout", PlanHandlerTimeout, 10 * time.Second, 60 * time.Second},

		// Server timeouts
		{"ServerReadTimeout", ServerReadTimeout, 5 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 15 * time.Second, 60 * time.Second},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 300 * time.Second},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 10 * time.Second, 60 * time.Second},

		// Registry timeouts
		{"RegistryPushTimeout", RegistryPushTimeout, 1 * time.Minute, 10 * time.Minute},
		{"RegistryPullTimeout", RegistryPullTimeout, 1 * time.Minute, 10 * time.Minute},

		// CLI timeouts
		{"CLIApplyTimeout", CLIApplyTimeout, 1 * time.Minute, 30 * time.Minute},
		{"CLIPlanTimeout", CLIPlanTimeout, 30 * time.Second, 5 * time.Minute},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestExpandTimeoutLessThanHandler(t *testing.T) {
	// Expansion should finish before the plan handler gives up
	// so the handler can still serialize a structured error
	if ExpandTimeout >= PlanHandlerTimeout {
		t.Errorf("ExpandTimeout (%v) should be less than PlanHandlerTimeout (%v)",
			ExpandTimeout, PlanHandlerTimeout)
	}
}

func TestServerTimeoutRelationships(t *testing.T) {
	// Read timeout should be shorter than write timeout
	if ServerReadTimeout > ServerWriteTimeout {
		t.Errorf("ServerReadTimeout (%v) should not exceed ServerWriteTimeout (%v)",
			ServerReadTimeout, ServerWriteTimeout)
	}

	// Idle timeout should be longer than write timeout
	if ServerIdleTimeout < ServerWriteTimeout {
		t.Errorf("ServerIdleTimeout (%v) should be at least ServerWriteTimeout (%v)",
			ServerIdleTimeout, ServerWriteTimeout)
	}
}

func TestLoadTimeoutLessThanExpand(t *testing.T) {
	// A single load should always fit inside a full expansion
	if LoadTimeout > ExpandTimeout {
		t.Errorf("LoadTimeout (%v) should not exceed ExpandTimeout (%v)",
			LoadTimeout, ExpandTimeout)
	}
}

func TestCLITimeoutCoversApply(t *testing.T) {
	// Apply includes expansion plus execution, so it must dominate
	if CLIApplyTimeout <= ExpandTimeout {
		t.Errorf("CLIApplyTimeout (%v) should exceed ExpandTimeout (%v)",
			CLIApplyTimeout, ExpandTimeout)
	}
}

func TestHTTPClientTimeoutRelationships(t *testing.T) {
	// Connect timeout should be less than total timeout
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}

	// TLS handshake timeout should be less than total timeout
	if HTTPTLSHandshakeTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPTLSHandshakeTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPTLSHandshakeTimeout, HTTPClientTimeout)
	}
}
