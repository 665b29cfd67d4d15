// SPDX-FileCopyrightText: Copyright (c) 2026 NVIDIA CORPORATION. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"strconv"

	v1 "k8s.io/api/core/v1"
)

const kiSuffix = "Ki"

// ToKi converts a byte count to binary kibibytes, rounding up.
// Integer arithmetic only, no precision loss for values up to 2^63-1024.
func ToKi(bytes int64) int64 {
	if bytes <= 0 {
		return 0
	}
	return (bytes + 1023) / 1024
}

// MillicoresToCores converts millicores to whole cores, rounding up.
func MillicoresToCores(millicores int64) int64 {
	if millicores <= 0 {
		return 0
	}
	return (millicores + 999) / 1000
}

// FormatUsage renders an aggregated usage list in the operator wire format:
// CPU as whole cores (ceiling of the summed millicore total), memory and
// ephemeral storage as kibibytes with a "Ki" suffix, anything else as its
// native integer value.
//
// The CPU ceiling is applied here, once, on the summed total. Rounding per
// pod before summing would overcount.
func FormatUsage(usage v1.ResourceList) map[string]string {
	fields := make(map[string]string, len(usage))
	for name, quantity := range usage {
		switch name {
		case v1.ResourceCPU:
			fields[string(name)] = strconv.FormatInt(MillicoresToCores(quantity.MilliValue()), 10)
		case v1.ResourceMemory, v1.ResourceEphemeralStorage:
			fields[string(name)] = strconv.FormatInt(ToKi(quantity.Value()), 10) + kiSuffix
		default:
			fields[string(name)] = strconv.FormatInt(quantity.Value(), 10)
		}
	}
	return fields
}

// FormatCapacity renders a node allocatable list in the operator wire format.
// Unlike FormatUsage, CPU is kept as raw millicores with no unit suffix.
func FormatCapacity(allocatable v1.ResourceList) map[string]string {
	fields := make(map[string]string, len(allocatable))
	for name, quantity := range allocatable {
		switch name {
		case v1.ResourceCPU:
			fields[string(name)] = strconv.FormatInt(quantity.MilliValue(), 10)
		case v1.ResourceMemory, v1.ResourceEphemeralStorage:
			fields[string(name)] = strconv.FormatInt(ToKi(quantity.Value()), 10) + kiSuffix
		default:
			fields[string(name)] = strconv.FormatInt(quantity.Value(), 10)
		}
	}
	return fields
}
