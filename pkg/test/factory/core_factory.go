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

package factory

import (
	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

type podBuilder struct {
	v1.Pod
}

func (b *podBuilder) WithUID(uid string) *podBuilder {
	b.ObjectMeta.UID = types.UID(uid)
	return b
}

func (b *podBuilder) WithNodeName(nodeName string) *podBuilder {
	b.Spec.NodeName = nodeName
	return b
}

func (b *podBuilder) WithPhase(phase v1.PodPhase) *podBuilder {
	b.Status.Phase = phase
	return b
}

func (b *podBuilder) WithContainer(c v1.Container) *podBuilder {
	b.Spec.Containers = append(b.Spec.Containers, c)
	return b
}

func (b *podBuilder) WithInitContainer(c v1.Container) *podBuilder {
	b.Spec.InitContainers = append(b.Spec.InitContainers, c)
	return b
}

func (b *podBuilder) WithLabel(label, value string) *podBuilder {
	if b.Labels == nil {
		b.Labels = make(map[string]string)
	}
	b.Labels[label] = value
	return b
}

func (b *podBuilder) Get() v1.Pod {
	return b.Pod
}

func BuildPod(namespace, name string) *podBuilder {
	pod := v1.Pod{
		TypeMeta: metav1.TypeMeta{
			Kind:       "Pod",
			APIVersion: v1.SchemeGroupVersion.String(),
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			UID:       types.UID(namespace + "/" + name),
		},
	}
	return &podBuilder{pod}
}

type containerBuilder struct {
	v1.Container
}

func (b *containerBuilder) WithRequests(requests v1.ResourceList) *containerBuilder {
	b.Container.Resources.Requests = requests
	return b
}

func (b *containerBuilder) WithCPUMilliRequest(cpuMilli int64) *containerBuilder {
	return b.WithRequest(v1.ResourceCPU, *resource.NewMilliQuantity(cpuMilli, resource.DecimalSI))
}

func (b *containerBuilder) WithMemoryRequest(memoryBytes int64) *containerBuilder {
	return b.WithRequest(v1.ResourceMemory, *resource.NewQuantity(memoryBytes, resource.BinarySI))
}

func (b *containerBuilder) WithRequest(name v1.ResourceName, quantity resource.Quantity) *containerBuilder {
	if b.Container.Resources.Requests == nil {
		b.Container.Resources.Requests = make(v1.ResourceList)
	}
	b.Container.Resources.Requests[name] = quantity
	return b
}

func (b *containerBuilder) Get() v1.Container {
	return b.Container
}

func BuildContainer(name, image string) *containerBuilder {
	c := v1.Container{
		Name:  name,
		Image: image,
	}
	return &containerBuilder{c}
}

type nodeBuilder struct {
	v1.Node
}

func (b *nodeBuilder) WithLabel(label, value string) *nodeBuilder {
	if b.Labels == nil {
		b.Labels = make(map[string]string)
	}
	b.Labels[label] = value
	return b
}

func (b *nodeBuilder) WithAllocatable(allocatable v1.ResourceList) *nodeBuilder {
	b.Status.Allocatable = allocatable
	return b
}

func (b *nodeBuilder) WithCondition(conditionType v1.NodeConditionType, status v1.ConditionStatus) *nodeBuilder {
	b.Status.Conditions = append(b.Status.Conditions, v1.NodeCondition{
		Type:   conditionType,
		Status: status,
	})
	return b
}

func (b *nodeBuilder) WithTaint(taint v1.Taint) *nodeBuilder {
	b.Spec.Taints = append(b.Spec.Taints, taint)
	return b
}

func (b *nodeBuilder) Unschedulable() *nodeBuilder {
	b.Spec.Unschedulable = true
	return b
}

func (b *nodeBuilder) Get() v1.Node {
	return b.Node
}

func BuildNode(name string) *nodeBuilder {
	node := v1.Node{
		TypeMeta: metav1.TypeMeta{
			Kind:       "Node",
			APIVersion: v1.SchemeGroupVersion.String(),
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
		},
	}
	return &nodeBuilder{node}
}
