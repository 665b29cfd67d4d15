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
)

// PodController feeds pod lifecycle events into the usage aggregator. Only
// Running pods with a node assignment hold resources; a pod observed in any
// other phase, or gone entirely, is released.
type PodController struct {
	client.Client
	Scheme     *runtime.Scheme
	aggregator *state.UsageAggregator
}

func NewPodController(client client.Client, scheme *runtime.Scheme, aggregator *state.UsageAggregator) PodController {
	return PodController{
		Client:     client,
		Scheme:     scheme,
		aggregator: aggregator,
	}
}

//+kubebuilder:rbac:groups=core,resources=pods,verbs=get;list;watch

func (c *PodController) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	// Fetch instance
	var instance v1.Pod
	err := c.Client.Get(ctx, req.NamespacedName, &instance)
	if client.IgnoreNotFound(err) != nil {
		logger.Error(err, "unable to fetch pod")
		return ctrl.Result{}, err
	}

	// Pod is gone, release whatever it contributed
	if apierrors.IsNotFound(err) {
		c.aggregator.DeletePodByName(req.NamespacedName)
		return ctrl.Result{}, nil
	}

	// Pods not bound to a node are never aggregated
	if instance.Spec.NodeName == "" {
		return ctrl.Result{}, nil
	}

	if instance.Status.Phase == v1.PodRunning {
		logger.V(1).Info("tracking pod", "pod", req.NamespacedName, "node", instance.Spec.NodeName)
		c.aggregator.AddPod(instance)
	} else {
		// terminal pods stay bound to their node but consume nothing
		c.aggregator.DeletePod(instance)
	}

	return ctrl.Result{}, nil
}

func (c *PodController) SetupWithManager(mgr ctrl.Manager, name string) error {
	return ctrl.NewControllerManagedBy(mgr).
		Named(name).
		For(&v1.Pod{}).
		WithOptions(controller.Options{MaxConcurrentReconciles: 10}).
		Complete(c)
}
