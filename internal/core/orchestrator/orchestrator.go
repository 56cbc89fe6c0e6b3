// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package orchestrator owns the top-level analysis state machine. One
// orchestrator runs at most one session at a time: starting a new session
// supersedes the running one, cancels its Go context, and silences its
// event stream from that moment on. The superseded session's in-flight
// work is discarded, never merged into the replacement.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/commands"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/events"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/model"
	"github.com/jaycherian/gcp-go-content-intel/internal/core/workflow"
)

// running tracks one in-flight session.
type running struct {
	session *model.AnalysisSession
	cancel  context.CancelFunc
	done    chan struct{}
}

// Orchestrator sequences analysis sessions over a fixed dependency set.
// Safe for concurrent use; the session guard serializes starts.
type Orchestrator struct {
	deps *workflow.Dependencies
	sink events.Sink

	mu      sync.Mutex
	current *running
}

// New creates an orchestrator. A nil sink drops all events.
func New(deps *workflow.Dependencies, sink events.Sink) *Orchestrator {
	return &Orchestrator{deps: deps, sink: sink}
}

// StartAnalysis begins a new session for the asset at the requested tier
// and returns its session id immediately. Any running session is superseded
// first: its context is canceled and it stops emitting events, including a
// completion that was already on its way out.
func (o *Orchestrator) StartAnalysis(ctx context.Context, assetId string, tier model.AnalysisTier) string {
	session := model.NewAnalysisSession(uuid.NewString(), assetId, tier)
	runCtx, cancel := context.WithCancel(ctx)
	r := &running{session: session, cancel: cancel, done: make(chan struct{})}

	o.mu.Lock()
	if prev := o.current; prev != nil {
		if prev.session.State == model.StateRunning {
			prev.session.State = model.StateSuperseded
			slog.Info("session superseded", "superseded", prev.session.Id, "by", session.Id)
		}
		prev.cancel()
	}
	o.current = r
	o.mu.Unlock()

	go o.run(runCtx, r)
	return session.Id
}

// Cancel stops the running session, if any, without starting a new one.
// The canceled session finishes its current step and then goes quiet; no
// completion event is emitted for it.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil {
		if o.current.session.State == model.StateRunning {
			o.current.session.State = model.StateSuperseded
		}
		o.current.cancel()
		o.current = nil
	}
}

// IsActive reports whether the given session id is the current one. This is
// the guard every event delivery and every post-run mutation goes through.
func (o *Orchestrator) IsActive(sessionId string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current != nil && o.current.session.Id == sessionId
}

// Wait blocks until the session's worker goroutine has exited. Superseded
// sessions count as finished. Unknown ids return immediately.
func (o *Orchestrator) Wait(sessionId string) {
	o.mu.Lock()
	var done chan struct{}
	if o.current != nil && o.current.session.Id == sessionId {
		done = o.current.done
	}
	o.mu.Unlock()
	if done != nil {
		<-done
	}
}

// run executes one session's pipeline on its own goroutine.
func (o *Orchestrator) run(ctx context.Context, r *running) {
	defer close(r.done)
	defer r.cancel()

	session := r.session
	pub := events.NewPublisher(session.Id, o.sink, o.IsActive)
	pipeline := workflow.NewAnalysisPipeline(session.Tier, o.deps, pub)

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.SessionParam, session)

	pub.Progress(0.0, "analysis started")
	pipeline.Execute(chainCtx)

	if err := ctx.Err(); err != nil {
		// Superseded or canceled mid-run; the publisher has already gone
		// silent, nothing to report.
		slog.Info("session discarded", "session", session.Id, "reason", err)
		return
	}

	result, _ := chainCtx.Get(commands.ResultParam).(*model.AnalysisResult)

	if chainCtx.HasErrors() {
		var failure error
		for name, err := range chainCtx.GetErrors() {
			failure = fmt.Errorf("%s: %w", name, err)
			break
		}
		o.finish(session, model.StateCompleted)
		pub.Complete(result, failure)
		return
	}

	o.finish(session, model.StateCompleted)
	pub.Progress(1.0, "analysis complete")
	pub.Complete(result, nil)
}

// finish records the terminal state while the session is still current.
func (o *Orchestrator) finish(session *model.AnalysisSession, state model.SessionState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil && o.current.session.Id == session.Id {
		session.State = state
	}
}
