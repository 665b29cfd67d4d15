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

package constant

const (
	ReporterNodeControllerName = "reporter-node-controller"
	ReporterPodControllerName  = "reporter-pod-controller"
)

const (
	// LabelHostname is the well-known node label carrying the node's hostname.
	LabelHostname = "kubernetes.io/hostname"
	// NodeFeatureLabelPrefix is the prefix of the labels automatically generated
	// by node-feature-discovery. They are filtered out from node snapshots since
	// they churn often and carry no placement value for the operator service.
	NodeFeatureLabelPrefix = "feature.node.kubernetes.io/"
	// UnknownHostname is reported for nodes carrying no hostname label.
	UnknownHostname = "-"
)
