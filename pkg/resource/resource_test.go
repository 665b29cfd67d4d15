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

package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	v1 "k8s.io/api/core/v1"
	apiresource "k8s.io/apimachinery/pkg/api/resource"
	quota "k8s.io/apiserver/pkg/quota/v1"

	"github.com/NVIDIA/OSMO-sub013/pkg/resource"
	"github.com/NVIDIA/OSMO-sub013/pkg/test/factory"
)

func TestComputePodRequest(t *testing.T) {
	tests := []struct {
		name     string
		pod      v1.Pod
		expected v1.ResourceList
	}{
		{
			name:     "pod with no containers requests nothing",
			pod:      factory.BuildPod("ns-1", "pd-1").Get(),
			expected: v1.ResourceList{},
		},
		{
			name: "container requests are summed",
			pod: factory.BuildPod("ns-1", "pd-1").
				WithContainer(
					factory.BuildContainer("c1", "test:0.0.1").
						WithCPUMilliRequest(500).
						WithMemoryRequest(1024).
						Get(),
				).
				WithContainer(
					factory.BuildContainer("c2", "test:0.0.1").
						WithCPUMilliRequest(500).
						Get(),
				).
				Get(),
			expected: v1.ResourceList{
				v1.ResourceCPU:    *apiresource.NewMilliQuantity(1000, apiresource.DecimalSI),
				v1.ResourceMemory: *apiresource.NewQuantity(1024, apiresource.BinarySI),
			},
		},
		{
			name: "init container request dominates when larger than container sum",
			pod: factory.BuildPod("ns-1", "pd-1").
				WithContainer(
					factory.BuildContainer("c1", "test:0.0.1").
						WithCPUMilliRequest(200).
						Get(),
				).
				WithInitContainer(
					factory.BuildContainer("init", "test:0.0.1").
						WithCPUMilliRequest(1000).
						Get(),
				).
				Get(),
			expected: v1.ResourceList{
				v1.ResourceCPU: *apiresource.NewMilliQuantity(1000, apiresource.DecimalSI),
			},
		},
		{
			name: "container requests dominate when larger than init containers",
			pod: factory.BuildPod("ns-1", "pd-1").
				WithContainer(
					factory.BuildContainer("c1", "test:0.0.1").
						WithCPUMilliRequest(800).
						Get(),
				).
				WithContainer(
					factory.BuildContainer("c2", "test:0.0.1").
						WithCPUMilliRequest(800).
						Get(),
				).
				WithInitContainer(
					factory.BuildContainer("init", "test:0.0.1").
						WithCPUMilliRequest(1000).
						Get(),
				).
				Get(),
			expected: v1.ResourceList{
				v1.ResourceCPU: *apiresource.NewMilliQuantity(1600, apiresource.DecimalSI),
			},
		},
		{
			name: "custom resources are included",
			pod: factory.BuildPod("ns-1", "pd-1").
				WithContainer(
					factory.BuildContainer("c1", "test:0.0.1").
						WithRequest("nvidia.com/gpu", *apiresource.NewQuantity(2, apiresource.DecimalSI)).
						Get(),
				).
				Get(),
			expected: v1.ResourceList{
				"nvidia.com/gpu": *apiresource.NewQuantity(2, apiresource.DecimalSI),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := resource.ComputePodRequest(tt.pod)
			assert.True(
				t,
				quota.Equals(tt.expected, actual),
				"expected %v, got %v",
				tt.expected,
				actual,
			)
		})
	}
}

func TestComputePodRequest__Overhead(t *testing.T) {
	pod := factory.BuildPod("ns-1", "pd-1").
		WithContainer(
			factory.BuildContainer("c1", "test:0.0.1").
				WithCPUMilliRequest(500).
				Get(),
		).
		Get()
	pod.Spec.Overhead = v1.ResourceList{
		v1.ResourceCPU: *apiresource.NewMilliQuantity(100, apiresource.DecimalSI),
	}

	expected := v1.ResourceList{
		v1.ResourceCPU: *apiresource.NewMilliQuantity(600, apiresource.DecimalSI),
	}
	actual := resource.ComputePodRequest(pod)
	assert.True(t, quota.Equals(expected, actual), "expected %v, got %v", expected, actual)
}
