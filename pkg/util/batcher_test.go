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

package util_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	operatorv1 "github.com/NVIDIA/OSMO-sub013/pkg/api/operator/v1"
	"github.com/NVIDIA/OSMO-sub013/pkg/util"
)

func TestBatcher__Ready(t *testing.T) {
	const testTimeout = 3 * time.Second

	t.Run("Adding items to batch should never block", func(t *testing.T) {
		timeoutDuration := 10 * time.Millisecond
		idleDuration := 10 * time.Millisecond
		batcher := util.NewBatcher[*operatorv1.ResourceBody](timeoutDuration, idleDuration)

		done := make(chan struct{})
		go func() {
			batcher.Add(&operatorv1.ResourceBody{})
			done <- struct{}{}
		}()

		select {
		case <-done: // success
		case <-time.NewTimer(testTimeout).C:
			assert.Fail(t, "test timed out")
		}
	})

	t.Run("Items added before starting the batcher should be ignored", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		timeoutDuration := 10 * time.Millisecond
		idleDuration := 10 * time.Millisecond
		batcher := util.NewBatcher[*operatorv1.ResourceBody](timeoutDuration, idleDuration)
		batcher.Add(&operatorv1.ResourceBody{})
		batcher.Add(&operatorv1.ResourceBody{})

		// Start batcher
		go func() {
			assert.NoError(t, batcher.Start(ctx))
		}()

		// Batch is empty, so it should never be ready
		timer := time.NewTimer(20 * time.Millisecond)
		select {
		case <-batcher.Ready():
			assert.Fail(t, "Batch was not expected to be ready")
		case <-timer.C:
			cancel()
		}
	})

	t.Run("Should be ready after idle duration if no other items are added to the batch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		timeoutDuration := 200 * time.Millisecond
		idleDuration := 10 * time.Millisecond
		batcher := util.NewBufferedBatcher[*operatorv1.ResourceBody](timeoutDuration, idleDuration, 1)

		// Start batcher
		go func() {
			assert.NoError(t, batcher.Start(ctx))
		}()

		// Start a batch
		batcher.Add(&operatorv1.ResourceBody{})
		start := time.Now()

		select {
		case batch := <-batcher.Ready():
			now := time.Now()
			assert.Len(t, batch, 1)
			assert.WithinDuration(t, now, start.Add(idleDuration), 20*time.Millisecond)
		case <-time.NewTimer(testTimeout).C:
			assert.Fail(t, "test timed out")
		}
	})

	t.Run("Adding an item should reset idle timeout", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		timeoutDuration := 500 * time.Millisecond
		idleDuration := 50 * time.Millisecond
		batcher := util.NewBufferedBatcher[*operatorv1.ResourceBody](timeoutDuration, idleDuration, 1)

		// Start the batcher
		go func() {
			assert.NoError(t, batcher.Start(ctx))
		}()

		// Add some items to the batch in order to reset the idle timer
		var start time.Time
		go func() {
			start = time.Now()
			batcher.Add(&operatorv1.ResourceBody{})
			time.Sleep(25 * time.Millisecond)
			batcher.Add(&operatorv1.ResourceBody{})
			time.Sleep(25 * time.Millisecond)
			batcher.Add(&operatorv1.ResourceBody{})
		}()

		// Check idle timer gets reset after adding items
		select {
		case <-batcher.Ready():
			assert.Greater(t, time.Since(start), idleDuration*2)
			assert.Less(t, time.Since(start), timeoutDuration)
		case <-time.NewTimer(testTimeout).C:
			assert.Fail(t, "test timed out")
		}
	})

	t.Run("Batch should be ready after timeout duration at most, even if items are still being added", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		timeoutDuration := 40 * time.Millisecond
		idleDuration := 20 * time.Millisecond
		batcher := util.NewBufferedBatcher[*operatorv1.ResourceBody](timeoutDuration, idleDuration, 1)

		// Start the batcher
		go func() {
			assert.NoError(t, batcher.Start(ctx))
		}()

		var start time.Time
		go func() {
			start = time.Now()
			for i := 0; i < 10; i++ {
				batcher.Add(&operatorv1.ResourceBody{})
				time.Sleep(5 * time.Millisecond)
			}
		}()

		select {
		case <-batcher.Ready():
			assert.Greater(t, time.Since(start), timeoutDuration)
		case <-time.NewTimer(testTimeout).C:
			assert.Fail(t, "test timed out")
		}
	})

	t.Run("Starting a batcher that is already running should return an error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		timeoutDuration := 20 * time.Millisecond
		idleDuration := 10 * time.Millisecond
		batcher := util.NewBufferedBatcher[*operatorv1.ResourceBody](timeoutDuration, idleDuration, 1)

		// Start the batcher
		go func() {
			assert.NoError(t, batcher.Start(ctx))
		}()

		// Wait for a batch so the first Start is known to be running
		batcher.Add(&operatorv1.ResourceBody{})
		select {
		case <-batcher.Ready():
		case <-time.NewTimer(testTimeout).C:
			assert.Fail(t, "test timed out")
		}

		// Start again the batcher
		assert.Error(t, batcher.Start(ctx))
	})

	t.Run("Concurrent starts admit exactly one runner", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		timeoutDuration := 20 * time.Millisecond
		idleDuration := 10 * time.Millisecond
		batcher := util.NewBufferedBatcher[*operatorv1.ResourceBody](timeoutDuration, idleDuration, 1)

		errs := make(chan error, 2)
		wg := sync.WaitGroup{}
		wg.Add(2)
		for i := 0; i < 2; i++ {
			go func() {
				defer wg.Done()
				errs <- batcher.Start(ctx)
			}()
		}

		// One Start loses immediately; the winner runs until cancelled
		assert.Error(t, <-errs)
		cancel()
		wg.Wait()
		assert.NoError(t, <-errs)
	})

	t.Run("Batch should include all added items", func(t *testing.T) {
		bodies := []*operatorv1.ResourceBody{
			{Hostname: "worker-01"},
			{Hostname: "worker-02"},
			{Hostname: "worker-03"},
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		timeoutDuration := 50 * time.Millisecond
		idleDuration := 10 * time.Millisecond
		batcher := util.NewBufferedBatcher[*operatorv1.ResourceBody](timeoutDuration, idleDuration, 5)

		// Start the batcher
		go func() {
			assert.NoError(t, batcher.Start(ctx))
		}()

		// Add items to batch
		go func() {
			for _, b := range bodies {
				batcher.Add(b)
			}
		}()

		var batch []*operatorv1.ResourceBody
		select {
		case batch = <-batcher.Ready():
		case <-time.NewTimer(testTimeout).C:
			assert.Fail(t, "test timed out")
		}
		expectedHostnames := make([]string, len(bodies))
		for i, b := range bodies {
			expectedHostnames[i] = b.Hostname
		}
		actualHostnames := make([]string, 0)
		for _, b := range batch {
			actualHostnames = append(actualHostnames, b.Hostname)
		}
		assert.Equal(t, expectedHostnames, actualHostnames)
	})
}
