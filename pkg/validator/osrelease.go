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

package validator

import (
	"os"
	"strings"
)

// Property names resolvable on hosts that carry an os-release file.
const (
	// PropPlatformOSID is the distribution ID, e.g. "ubuntu" or "rhel".
	PropPlatformOSID = "platform.os.id"

	// PropPlatformOSVersion is the distribution version, e.g. "24.04".
	PropPlatformOSVersion = "platform.os.version"
)

// os-release locations per the freedesktop.org spec.
var (
	osReleasePrimary  = "/etc/os-release"
	osReleaseFallback = "/usr/lib/os-release"
)

// osReleaseProperties reads distribution facts from the host's
// os-release file. Hosts without one simply lack these properties, so
// requirements on them are skipped rather than failed.
func osReleaseProperties() Properties {
	path := osReleasePrimary
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = osReleaseFallback
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	fields := parseOSRelease(string(raw))
	props := make(Properties, 2)
	if id := fields["ID"]; id != "" {
		props[PropPlatformOSID] = id
	}
	if v := fields["VERSION_ID"]; v != "" {
		props[PropPlatformOSVersion] = v
	}
	return props
}

// parseOSRelease splits KEY=value lines, dropping comments, blank
// lines, and the surrounding quotes the format allows.
func parseOSRelease(content string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.Trim(strings.TrimSpace(v), `"'`)
		if k == "" || v == "" {
			continue
		}
		fields[k] = v
	}
	return fields
}
