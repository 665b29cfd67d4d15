//go:build integration

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

package reporter_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/OSMO-sub013/pkg/constant"
	"github.com/NVIDIA/OSMO-sub013/pkg/test/factory"
)

const (
	timeout  = 10 * time.Second
	interval = 100 * time.Millisecond
)

var _ = Describe("Reporter controllers", func() {
	BeforeEach(func() {
		namespace := v1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "osmo"}}
		err := k8sClient.Create(ctx, &namespace)
		if err != nil {
			Expect(err.Error()).To(ContainSubstring("already exists"))
		}
	})

	When("a node is created", func() {
		It("should produce a snapshot record", func() {
			node := factory.BuildNode("int-node-1").
				WithLabel(constant.LabelHostname, "int-worker-01").
				Get()
			Expect(k8sClient.Create(ctx, &node)).To(Succeed())

			Eventually(func() bool {
				prev, known := tracker.Get("int-node-1")
				return known && prev.Hostname == "int-worker-01"
			}, timeout, interval).Should(BeTrue())
		})
	})

	When("a pod starts running on a node", func() {
		It("should aggregate its requests and release them when it succeeds", func() {
			pod := factory.BuildPod("osmo", "int-pod-1").
				WithContainer(
					factory.BuildContainer("main", "test:0.0.1").
						WithCPUMilliRequest(1000).
						Get(),
				).
				Get()
			pod.ObjectMeta.UID = ""
			pod.Spec.NodeName = "int-node-2"
			Expect(k8sClient.Create(ctx, &pod)).To(Succeed())

			pod.Status.Phase = v1.PodRunning
			Expect(k8sClient.Status().Update(ctx, &pod)).To(Succeed())

			Eventually(func() map[string]string {
				usage, _ := aggregator.GetNodeUsage("int-node-2")
				return usage
			}, timeout, interval).Should(HaveKeyWithValue("cpu", "1"))

			pod.Status.Phase = v1.PodSucceeded
			Expect(k8sClient.Status().Update(ctx, &pod)).To(Succeed())

			Eventually(func() map[string]string {
				usage, _ := aggregator.GetNodeUsage("int-node-2")
				return usage
			}, timeout, interval).Should(HaveKeyWithValue("cpu", "0"))
		})
	})
})
