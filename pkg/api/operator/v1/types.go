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

// Package v1 defines the payloads exchanged with the operator service.
// Quantities are pre-formatted as strings: CPU capacity as plain millicores,
// CPU usage as whole cores, memory and ephemeral storage as kibibytes with a
// "Ki" suffix, every other resource in its native decimal form.
package v1

// Taint mirrors a node taint as the operator service expects it.
// TimeAdded is RFC3339, or empty when the cluster did not record it.
type Taint struct {
	Key       string `json:"key"`
	Value     string `json:"value,omitempty"`
	Effect    string `json:"effect"`
	TimeAdded string `json:"timeAdded,omitempty"`
}

// ResourceBody is a full snapshot of a single node. When Delete is true the
// remaining fields are best-effort metadata describing the removed node.
type ResourceBody struct {
	Hostname   string            `json:"hostname"`
	Available  bool              `json:"available"`
	Conditions []string          `json:"conditions,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
	Taints     []Taint           `json:"taints,omitempty"`
	Capacity   map[string]string `json:"capacity,omitempty"`
	Delete     bool              `json:"delete,omitempty"`
}

// UpdateNodeUsageBody carries the aggregated resource requests of the pods
// bound to one node. NonWorkflowUsageFields is the share of UsageFields not
// attributable to the workflow namespace.
type UpdateNodeUsageBody struct {
	Hostname               string            `json:"hostname"`
	UsageFields            map[string]string `json:"usageFields,omitempty"`
	NonWorkflowUsageFields map[string]string `json:"nonWorkflowUsageFields,omitempty"`
}

// ListenerMessage is the outbound envelope. Exactly one of Resource and
// ResourceUsage is set.
type ListenerMessage struct {
	UUID          string               `json:"uuid"`
	Timestamp     string               `json:"timestamp"`
	Resource      *ResourceBody        `json:"resource,omitempty"`
	ResourceUsage *UpdateNodeUsageBody `json:"resourceUsage,omitempty"`
}
