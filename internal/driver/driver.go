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

// Package driver synchronizes the locally accumulated node state with the
// operator service: node snapshot records as they are produced by the node
// controller, per-node usage totals on a fixed flush interval.
package driver

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	v1 "k8s.io/api/core/v1"
	"k8s.io/klog/v2"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/NVIDIA/OSMO-sub013/internal/state"
	operatorv1 "github.com/NVIDIA/OSMO-sub013/pkg/api/operator/v1"
	"github.com/NVIDIA/OSMO-sub013/pkg/util"
)

const messageTimestampFormat = "2006-01-02T15:04:05.999999"

// Driver implements manager.Runnable. It owns the consume side of the node
// update batcher, the periodic dirty-node usage flush, and the periodic full
// resync that rebuilds the aggregator from a fresh pod inventory. Push
// failures are logged and skipped: node snapshots are re-offered when the
// state tracker TTL expires, usage totals on the next pod event touching the
// node.
type Driver struct {
	aggregator     *state.UsageAggregator
	updates        *util.Batcher[*operatorv1.ResourceBody]
	sink           Sink
	reader         client.Reader
	flushInterval  time.Duration
	resyncInterval time.Duration
	logger         klog.Logger
}

func NewDriver(
	aggregator *state.UsageAggregator,
	updates *util.Batcher[*operatorv1.ResourceBody],
	sink Sink,
	reader client.Reader,
	flushInterval time.Duration,
	resyncInterval time.Duration,
	logger klog.Logger,
) *Driver {
	return &Driver{
		aggregator:     aggregator,
		updates:        updates,
		sink:           sink,
		reader:         reader,
		flushInterval:  flushInterval,
		resyncInterval: resyncInterval,
		logger:         logger,
	}
}

func (d *Driver) Start(ctx context.Context) error {
	go func() {
		if err := d.updates.Start(ctx); err != nil {
			d.logger.Error(err, "unable to start node update batcher")
		}
	}()

	flushTicker := time.NewTicker(d.flushInterval)
	defer flushTicker.Stop()

	// a non-positive interval disables the resync loop
	var resyncChan <-chan time.Time
	if d.resyncInterval > 0 {
		resyncTicker := time.NewTicker(d.resyncInterval)
		defer resyncTicker.Stop()
		resyncChan = resyncTicker.C
	}

	d.logger.Info(
		"synchronization driver started",
		"flushInterval", d.flushInterval,
		"resyncInterval", d.resyncInterval,
	)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("synchronization driver stopped")
			return nil
		case batch := <-d.updates.Ready():
			for _, body := range batch {
				d.pushResource(ctx, body)
			}
		case <-flushTicker.C:
			d.flushUsage(ctx)
		case <-resyncChan:
			d.resync(ctx)
		}
	}
}

// resync rebuilds the aggregator from a full pod inventory, recovering any
// usage drift from events lost across watch gaps. The reset happens only
// after a successful list, so a failed resync leaves the running totals
// untouched.
func (d *Driver) resync(ctx context.Context) {
	var pods v1.PodList
	if err := d.reader.List(ctx, &pods); err != nil {
		d.logger.Error(err, "unable to list pods, skipping resync")
		return
	}

	d.aggregator.Reset()
	tracked := 0
	for _, pod := range pods.Items {
		if pod.Spec.NodeName == "" || pod.Status.Phase != v1.PodRunning {
			continue
		}
		d.aggregator.AddPod(pod)
		tracked++
	}
	d.logger.V(1).Info("resynced usage from pod inventory", "pods", len(pods.Items), "tracked", tracked)
}

func (d *Driver) pushResource(ctx context.Context, body *operatorv1.ResourceBody) {
	msg := newMessage()
	msg.Resource = body
	if err := d.sink.Push(ctx, msg); err != nil {
		d.logger.Error(err, "unable to push node update", "hostname", body.Hostname)
		return
	}
	d.logger.V(1).Info(
		"pushed node update",
		"hostname", body.Hostname,
		"available", body.Available,
		"delete", body.Delete,
	)
}

func (d *Driver) flushUsage(ctx context.Context) {
	dirtyNodes := d.aggregator.GetAndClearDirtyNodes()
	if len(dirtyNodes) == 0 {
		return
	}

	sent := 0
	for _, nodeName := range dirtyNodes {
		usageFields, nonWorkflowFields := d.aggregator.GetNodeUsage(nodeName)
		if len(usageFields) == 0 && len(nonWorkflowFields) == 0 {
			continue
		}
		msg := newMessage()
		msg.ResourceUsage = &operatorv1.UpdateNodeUsageBody{
			Hostname:               nodeName,
			UsageFields:            usageFields,
			NonWorkflowUsageFields: nonWorkflowFields,
		}
		if err := d.sink.Push(ctx, msg); err != nil {
			d.logger.Error(err, "unable to push node usage", "node", nodeName)
			continue
		}
		sent++
	}
	if sent > 0 {
		d.logger.V(1).Info("flushed node usage", "nodes", sent)
	}
}

func newMessage() *operatorv1.ListenerMessage {
	return &operatorv1.ListenerMessage{
		UUID:      strings.ReplaceAll(uuid.New().String(), "-", ""),
		Timestamp: time.Now().UTC().Format(messageTimestampFormat),
	}
}
