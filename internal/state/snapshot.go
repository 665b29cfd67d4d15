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

package state

import (
	"strings"
	"time"

	v1 "k8s.io/api/core/v1"

	operatorv1 "github.com/NVIDIA/OSMO-sub013/pkg/api/operator/v1"
	"github.com/NVIDIA/OSMO-sub013/pkg/constant"
	"github.com/NVIDIA/OSMO-sub013/pkg/resource"
	"github.com/NVIDIA/OSMO-sub013/pkg/util"
)

// GetNodeHostname reads the node's hostname label, falling back to the "-"
// sentinel when the label (or the whole label map) is missing.
func GetNodeHostname(node *v1.Node) string {
	if hostname, ok := node.Labels[constant.LabelHostname]; ok {
		return hostname
	}
	return constant.UnknownHostname
}

// BuildResourceBody produces a normalized snapshot of the node's current
// state: hostname, availability, active conditions, filtered labels, taints
// and allocatable capacity. It never fails; missing optional fields degrade
// to sentinels or omission.
//
// When isDelete is set the snapshot describes a node-removal event and the
// remaining fields are best-effort metadata.
func BuildResourceBody(node *v1.Node, isDelete bool) *operatorv1.ResourceBody {
	return &operatorv1.ResourceBody{
		Hostname:   GetNodeHostname(node),
		Available:  isNodeAvailable(node),
		Conditions: activeConditions(node),
		Labels:     filteredLabels(node),
		Taints:     buildTaints(node),
		Capacity:   resource.FormatCapacity(node.Status.Allocatable),
		Delete:     isDelete,
	}
}

// isNodeAvailable mirrors the scheduler's eligibility check: the node must
// report Ready=True and must not be cordoned.
func isNodeAvailable(node *v1.Node) bool {
	if node.Spec.Unschedulable {
		return false
	}
	for _, condition := range node.Status.Conditions {
		if condition.Type == v1.NodeReady {
			return condition.Status == v1.ConditionTrue
		}
	}
	return false
}

// activeConditions returns the names of the conditions currently reporting
// True. Conditions with False or Unknown status are omitted entirely, so
// consumers must read absence as "not reported".
func activeConditions(node *v1.Node) []string {
	conditions := make([]string, 0, len(node.Status.Conditions))
	for _, condition := range node.Status.Conditions {
		if condition.Status == v1.ConditionTrue {
			conditions = append(conditions, string(condition.Type))
		}
	}
	return conditions
}

func filteredLabels(node *v1.Node) map[string]string {
	labels := util.CopyMap(node.Labels)
	for key := range labels {
		if strings.HasPrefix(key, constant.NodeFeatureLabelPrefix) {
			delete(labels, key)
		}
	}
	return labels
}

// buildTaints preserves the order of the node's taint list.
func buildTaints(node *v1.Node) []operatorv1.Taint {
	if len(node.Spec.Taints) == 0 {
		return nil
	}
	taints := make([]operatorv1.Taint, 0, len(node.Spec.Taints))
	for _, taint := range node.Spec.Taints {
		var timeAdded string
		if taint.TimeAdded != nil {
			timeAdded = taint.TimeAdded.UTC().Format(time.RFC3339)
		}
		taints = append(taints, operatorv1.Taint{
			Key:       taint.Key,
			Value:     taint.Value,
			Effect:    string(taint.Effect),
			TimeAdded: timeAdded,
		})
	}
	return taints
}
