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
	"runtime"
	"sort"

	"github.com/NVIDIA/cookbook/pkg/errors"
)

// Well-known property names resolvable on every host.
const (
	// PropCookctl is the version of the orchestrator itself.
	PropCookctl = "cookctl"

	// PropPlatformOS is the host operating system (GOOS).
	PropPlatformOS = "platform.os"

	// PropPlatformArch is the host architecture (GOARCH).
	PropPlatformArch = "platform.arch"
)

// Properties is the set of named host values that recipe requirements
// are evaluated against. Keys are requirement names as they appear in
// a recipe's spec.requires; values are the actual host-side readings.
type Properties map[string]string

// HostProperties returns the built-in property set for this process.
// The orchestrator version is supplied by the caller (typically from
// build metadata); platform facts come from the runtime and, when the
// host has an os-release file, from the distribution it describes.
func HostProperties(version string) Properties {
	props := Properties{
		PropCookctl:      version,
		PropPlatformOS:   runtime.GOOS,
		PropPlatformArch: runtime.GOARCH,
	}
	return props.Merge(osReleaseProperties())
}

// Merge returns a new property set with overrides applied on top of p.
// Neither input is modified.
func (p Properties) Merge(overrides Properties) Properties {
	merged := make(Properties, len(p)+len(overrides))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Resolve returns the host value backing a requirement name.
// Returns an error if the name is empty or unknown on this host.
func (p Properties) Resolve(name string) (string, error) {
	if name == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "requirement name cannot be empty")
	}

	value, ok := p[name]
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeNotFound,
			"property not known on this host",
			map[string]any{"name": name, "known": p.Names()})
	}

	return value, nil
}

// Names returns the known property names in sorted order.
func (p Properties) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
