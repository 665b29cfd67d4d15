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

package main

import (
	"flag"
	"os"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/NVIDIA/OSMO-sub013/internal/config"
	"github.com/NVIDIA/OSMO-sub013/internal/controllers/reporter"
	"github.com/NVIDIA/OSMO-sub013/internal/driver"
	"github.com/NVIDIA/OSMO-sub013/internal/state"
	operatorv1 "github.com/NVIDIA/OSMO-sub013/pkg/api/operator/v1"
	"github.com/NVIDIA/OSMO-sub013/pkg/constant"
	"github.com/NVIDIA/OSMO-sub013/pkg/util"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
}

func main() {
	// Setup options
	var configFile string
	flag.StringVar(&configFile, "config", "", "Path to the reporter YAML config file.")
	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()
	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	cfg, err := config.Load(configFile)
	if err != nil {
		setupLog.Error(err, "unable to load config")
		os.Exit(1)
	}

	// Setup controller manager
	options := ctrl.Options{
		Scheme: scheme,
	}
	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), options)
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		os.Exit(1)
	}

	aggregator := state.NewUsageAggregator(cfg.WorkflowNamespace)
	tracker := state.NewNodeStateTracker(cfg.StateCacheTTL())
	updates := util.NewBufferedBatcher[*operatorv1.ResourceBody](
		cfg.NodeUpdateTimeout(),
		cfg.NodeUpdateIdle(),
		cfg.NodeUpdateChanSize,
	)

	// Setup reporter controllers
	nodeController := reporter.NewNodeController(
		mgr.GetClient(),
		mgr.GetScheme(),
		tracker,
		updates,
	)
	if err = nodeController.SetupWithManager(mgr, constant.ReporterNodeControllerName); err != nil {
		setupLog.Error(
			err,
			"unable to create controller",
			"controller",
			constant.ReporterNodeControllerName,
		)
		os.Exit(1)
	}
	podController := reporter.NewPodController(
		mgr.GetClient(),
		mgr.GetScheme(),
		aggregator,
	)
	if err = podController.SetupWithManager(mgr, constant.ReporterPodControllerName); err != nil {
		setupLog.Error(
			err,
			"unable to create controller",
			"controller",
			constant.ReporterPodControllerName,
		)
		os.Exit(1)
	}

	// Setup synchronization driver
	sink := driver.NewHTTPSink(cfg.SinkEndpoint)
	syncDriver := driver.NewDriver(
		aggregator,
		updates,
		sink,
		mgr.GetClient(),
		cfg.UsageFlushInterval(),
		cfg.ResyncInterval(),
		ctrl.Log.WithName("SyncDriver"),
	)
	if err = mgr.Add(syncDriver); err != nil {
		setupLog.Error(err, "unable to add synchronization driver")
		os.Exit(1)
	}

	// Setup health checks
	if err = mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		os.Exit(1)
	}
	if err = mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		os.Exit(1)
	}

	// Start controller manager
	setupLog.Info("starting manager", "workflowNamespace", cfg.WorkflowNamespace)
	if err = mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}
}
