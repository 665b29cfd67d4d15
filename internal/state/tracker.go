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
	"time"

	"github.com/google/go-cmp/cmp"

	operatorv1 "github.com/NVIDIA/OSMO-sub013/pkg/api/operator/v1"
)

type trackedNode struct {
	body     *operatorv1.ResourceBody
	lastSent time.Time
}

// NodeStateTracker remembers the last snapshot sent for each node so that
// observations carrying no change are not re-pushed. Entries expire after
// the configured TTL, forcing a refresh of long-stable nodes.
type NodeStateTracker struct {
	ttl     time.Duration
	entries map[string]trackedNode
	now     func() time.Time

	mtx sync.Mutex
}

func NewNodeStateTracker(ttl time.Duration) *NodeStateTracker {
	return &NodeStateTracker{
		ttl:     ttl,
		entries: make(map[string]trackedNode),
		now:     time.Now,
	}
}

// HasChanged reports whether the snapshot differs from the last one recorded
// for the node. Unknown nodes and entries older than the TTL always count as
// changed.
func (t *NodeStateTracker) HasChanged(nodeName string, body *operatorv1.ResourceBody) bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	entry, known := t.entries[nodeName]
	if !known {
		return true
	}
	if t.now().Sub(entry.lastSent) > t.ttl {
		return true
	}
	return !cmp.Equal(entry.body, body)
}

func (t *NodeStateTracker) Update(nodeName string, body *operatorv1.ResourceBody) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.entries[nodeName] = trackedNode{body: body, lastSent: t.now()}
}

// Get returns the last recorded snapshot regardless of TTL. Used to build
// delete records for nodes that are already gone from the API server.
func (t *NodeStateTracker) Get(nodeName string) (*operatorv1.ResourceBody, bool) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	entry, known := t.entries[nodeName]
	return entry.body, known
}

func (t *NodeStateTracker) Remove(nodeName string) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	delete(t.entries, nodeName)
}
