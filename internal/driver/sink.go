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

package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	operatorv1 "github.com/NVIDIA/OSMO-sub013/pkg/api/operator/v1"
)

// Sink is the transport boundary towards the operator service.
type Sink interface {
	Push(ctx context.Context, msg *operatorv1.ListenerMessage) error
}

var pushBackoff = wait.Backoff{
	Steps:    4,
	Duration: 250 * time.Millisecond,
	Factor:   2.0,
	Jitter:   0.1,
}

type httpSink struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSink returns a Sink posting JSON-encoded messages to the given
// endpoint, retrying transient failures with exponential backoff.
func NewHTTPSink(endpoint string) Sink {
	return &httpSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *httpSink) Push(ctx context.Context, msg *operatorv1.ListenerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message %s: %w", msg.UUID, err)
	}

	var lastErr error
	err = wait.ExponentialBackoff(pushBackoff, func() (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if lastErr = s.post(ctx, payload); lastErr != nil {
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		if lastErr != nil {
			return fmt.Errorf("failed to push message %s: %w", msg.UUID, lastErr)
		}
		return err
	}
	return nil
}

func (s *httpSink) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected response status %q", resp.Status)
	}
	return nil
}
