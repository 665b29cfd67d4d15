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
	"sync"

	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	quota "k8s.io/apiserver/pkg/quota/v1"

	"github.com/NVIDIA/OSMO-sub013/pkg/resource"
	"github.com/NVIDIA/OSMO-sub013/pkg/util"
)

// podContribution is the exact resource amount a pod added to its node's
// totals. It is recorded at add time and replayed at delete time, so deletes
// stay exact even when the caller supplies a stripped-down pod.
type podContribution struct {
	namespacedName types.NamespacedName
	nodeName       string
	workflow       bool
	requests       v1.ResourceList
}

// UsageAggregator maintains, per node, the cumulative resource requests of
// the pods bound to it, split into a grand total and the subset belonging to
// the workflow namespace. Nodes whose totals changed since the last
// GetAndClearDirtyNodes call are tracked in a dirty set.
//
// All operations are synchronous in-memory bookkeeping guarded by a single
// lock. None of them can fail.
type UsageAggregator struct {
	workflowNamespace string

	total         map[string]v1.ResourceList
	workflowTotal map[string]v1.ResourceList
	contributions map[types.UID]podContribution
	uidsByName    map[types.NamespacedName]types.UID
	dirty         map[string]struct{}

	mtx sync.RWMutex
}

func NewUsageAggregator(workflowNamespace string) *UsageAggregator {
	return &UsageAggregator{
		workflowNamespace: workflowNamespace,
		total:             make(map[string]v1.ResourceList),
		workflowTotal:     make(map[string]v1.ResourceList),
		contributions:     make(map[types.UID]podContribution),
		uidsByName:        make(map[types.NamespacedName]types.UID),
		dirty:             make(map[string]struct{}),
	}
}

// AddPod adds the pod's effective resource request to its node's totals.
// Pods without a node assignment are ignored. Adding the same UID twice is
// a no-op, so replayed informer events never double-count.
func (a *UsageAggregator) AddPod(pod v1.Pod) {
	if pod.Spec.NodeName == "" {
		return
	}

	a.mtx.Lock()
	defer a.mtx.Unlock()

	if _, known := a.contributions[pod.UID]; known {
		return
	}

	namespacedName := util.GetNamespacedName(&pod)
	// A recreated pod can reuse its name before the old pod's removal is ever
	// observed. The old contribution would otherwise be unreachable, so it is
	// released here.
	if staleUID, known := a.uidsByName[namespacedName]; known && staleUID != pod.UID {
		a.deleteContribution(staleUID)
	}

	nodeName := pod.Spec.NodeName
	requests := resource.ComputePodRequest(pod)
	isWorkflow := pod.Namespace == a.workflowNamespace

	a.total[nodeName] = quota.Add(a.total[nodeName], requests)
	if isWorkflow {
		a.workflowTotal[nodeName] = quota.Add(a.workflowTotal[nodeName], requests)
	}

	a.contributions[pod.UID] = podContribution{
		namespacedName: namespacedName,
		nodeName:       nodeName,
		workflow:       isWorkflow,
		requests:       requests,
	}
	a.uidsByName[namespacedName] = pod.UID
	a.dirty[nodeName] = struct{}{}
}

// DeletePod subtracts the contribution recorded for the pod's UID. Deleting
// a UID that was never added is a no-op and does not mark any node dirty.
func (a *UsageAggregator) DeletePod(pod v1.Pod) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.deleteContribution(pod.UID)
}

// DeletePodByName deletes by namespace/name, for callers that only know the
// identity of an already-gone pod (e.g. a reconciler observing a NotFound).
func (a *UsageAggregator) DeletePodByName(namespacedName types.NamespacedName) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	uid, known := a.uidsByName[namespacedName]
	if !known {
		return
	}
	a.deleteContribution(uid)
}

func (a *UsageAggregator) deleteContribution(uid types.UID) {
	c, known := a.contributions[uid]
	if !known {
		return
	}

	a.total[c.nodeName] = quota.Subtract(a.total[c.nodeName], c.requests)
	if c.workflow {
		a.workflowTotal[c.nodeName] = quota.Subtract(a.workflowTotal[c.nodeName], c.requests)
	}

	delete(a.contributions, uid)
	delete(a.uidsByName, c.namespacedName)
	a.dirty[c.nodeName] = struct{}{}
}

// GetNodeUsage returns the node's formatted usage totals and the share of
// those totals not attributable to the workflow namespace. A node with no
// recorded usage yields two empty maps.
func (a *UsageAggregator) GetNodeUsage(nodeName string) (map[string]string, map[string]string) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()

	total, known := a.total[nodeName]
	if !known {
		return map[string]string{}, map[string]string{}
	}

	nonWorkflow := quota.Subtract(total, a.workflowTotal[nodeName])
	return resource.FormatUsage(total), resource.FormatUsage(nonWorkflow)
}

// GetAndClearDirtyNodes atomically drains the set of nodes whose totals
// changed since the previous call.
func (a *UsageAggregator) GetAndClearDirtyNodes() []string {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	nodes := util.GetKeys(a.dirty)
	a.dirty = make(map[string]struct{})
	return nodes
}

// Reset drops all accumulated state. Used when the caller rebuilds from a
// full inventory instead of incremental events.
func (a *UsageAggregator) Reset() {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	a.total = make(map[string]v1.ResourceList)
	a.workflowTotal = make(map[string]v1.ResourceList)
	a.contributions = make(map[types.UID]podContribution)
	a.uidsByName = make(map[types.NamespacedName]types.UID)
	a.dirty = make(map[string]struct{})
}
