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

package config

import (
	"fmt"
	"os"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/NVIDIA/OSMO-sub013/pkg/util"
)

// Config drives the resource reporter. Values come from an optional YAML
// file, overridden field by field through env variables.
type Config struct {
	// WorkflowNamespace is the namespace whose pods count as workflow usage.
	WorkflowNamespace string `json:"workflowNamespace"`
	// SinkEndpoint is the operator service URL updates are pushed to.
	SinkEndpoint string `json:"sinkEndpoint"`
	// UsageFlushIntervalSec is how often dirty node usage is flushed.
	UsageFlushIntervalSec int `json:"usageFlushIntervalSec"`
	// StateCacheTTLMin bounds how long an unchanged node snapshot is
	// suppressed before being re-sent.
	StateCacheTTLMin int `json:"stateCacheTTLMin"`
	// ResyncIntervalMin is how often the driver rebuilds usage from a full
	// pod inventory. Zero disables the resync loop.
	ResyncIntervalMin int `json:"resyncIntervalMin"`
	// NodeUpdateChanSize is the buffer of the node update batcher.
	NodeUpdateChanSize int `json:"nodeUpdateChanSize"`
	// NodeUpdateIdleMs and NodeUpdateTimeoutMs bound how long node updates
	// are coalesced before being pushed.
	NodeUpdateIdleMs    int `json:"nodeUpdateIdleMs"`
	NodeUpdateTimeoutMs int `json:"nodeUpdateTimeoutMs"`
}

func Default() Config {
	return Config{
		UsageFlushIntervalSec: 5,
		StateCacheTTLMin:      30,
		ResyncIntervalMin:     60,
		NodeUpdateChanSize:    100,
		NodeUpdateIdleMs:      200,
		NodeUpdateTimeoutMs:   2000,
	}
}

// Load reads the config file at path (if any), applies env overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.WorkflowNamespace = util.GetEnv("WORKFLOW_NAMESPACE", cfg.WorkflowNamespace)
	cfg.SinkEndpoint = util.GetEnv("SINK_ENDPOINT", cfg.SinkEndpoint)
	cfg.UsageFlushIntervalSec = util.GetEnvInt("USAGE_FLUSH_INTERVAL_SEC", cfg.UsageFlushIntervalSec)
	cfg.StateCacheTTLMin = util.GetEnvInt("STATE_CACHE_TTL_MIN", cfg.StateCacheTTLMin)
	cfg.ResyncIntervalMin = util.GetEnvInt("RESYNC_INTERVAL_MIN", cfg.ResyncIntervalMin)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.WorkflowNamespace == "" {
		return fmt.Errorf("workflowNamespace must be set")
	}
	if c.SinkEndpoint == "" {
		return fmt.Errorf("sinkEndpoint must be set")
	}
	if c.UsageFlushIntervalSec <= 0 {
		return fmt.Errorf("usageFlushIntervalSec must be positive, got %d", c.UsageFlushIntervalSec)
	}
	if c.StateCacheTTLMin <= 0 {
		return fmt.Errorf("stateCacheTTLMin must be positive, got %d", c.StateCacheTTLMin)
	}
	if c.ResyncIntervalMin < 0 {
		return fmt.Errorf("resyncIntervalMin must not be negative, got %d", c.ResyncIntervalMin)
	}
	return nil
}

func (c Config) UsageFlushInterval() time.Duration {
	return time.Duration(c.UsageFlushIntervalSec) * time.Second
}

func (c Config) StateCacheTTL() time.Duration {
	return time.Duration(c.StateCacheTTLMin) * time.Minute
}

func (c Config) ResyncInterval() time.Duration {
	return time.Duration(c.ResyncIntervalMin) * time.Minute
}

func (c Config) NodeUpdateIdle() time.Duration {
	return time.Duration(c.NodeUpdateIdleMs) * time.Millisecond
}

func (c Config) NodeUpdateTimeout() time.Duration {
	return time.Duration(c.NodeUpdateTimeoutMs) * time.Millisecond
}
