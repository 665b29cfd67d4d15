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

package reporter

import (
	"context"

	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/NVIDIA/OSMO-sub013/internal/state"
	operatorv1 "github.com/NVIDIA/OSMO-sub013/pkg/api/operator/v1"
	"github.com/NVIDIA/OSMO-sub013/pkg/util"
)

// NodeController turns node observations into snapshot records and hands
// them to the synchronization driver through the update batcher. The state
// tracker suppresses records for nodes whose snapshot did not change.
type NodeController struct {
	client.Client
	Scheme  *runtime.Scheme
	tracker *state.NodeStateTracker
	updates *util.Batcher[*operatorv1.ResourceBody]
}

func NewNodeController(
	client client.Client,
	scheme *runtime.Scheme,
	tracker *state.NodeStateTracker,
	updates *util.Batcher[*operatorv1.ResourceBody],
) NodeController {
	return NodeController{
		Client:  client,
		Scheme:  scheme,
		tracker: tracker,
		updates: updates,
	}
}

//+kubebuilder:rbac:groups=core,resources=nodes,verbs=get;list;watch

func (c *NodeController) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	// Fetch instance
	var instance v1.Node
	err := c.Client.Get(ctx, req.NamespacedName, &instance)
	if client.IgnoreNotFound(err) != nil {
		logger.Error(err, "unable to fetch node")
		return ctrl.Result{}, err
	}

	// Node is gone: emit a delete record built from the last known snapshot
	if apierrors.IsNotFound(err) {
		prev, found := c.tracker.Get(req.Name)
		if !found {
			return ctrl.Result{}, nil
		}
		logger.V(1).Info("deleting node", "node", req.Name)
		tombstone := *prev
		tombstone.Delete = true
		c.updates.Add(&tombstone)
		c.tracker.Remove(req.Name)
		return ctrl.Result{}, nil
	}

	body := state.BuildResourceBody(&instance, false)
	if !c.tracker.HasChanged(instance.Name, body) {
		return ctrl.Result{}, nil
	}

	logger.V(1).Info("updating node", "node", instance.Name, "available", body.Available)
	c.tracker.Update(instance.Name, body)
	c.updates.Add(body)

	return ctrl.Result{}, nil
}

func (c *NodeController) SetupWithManager(mgr ctrl.Manager, name string) error {
	return ctrl.NewControllerManagedBy(mgr).
		Named(name).
		For(&v1.Node{}).
		WithOptions(controller.Options{MaxConcurrentReconciles: 10}).
		Complete(c)
}
