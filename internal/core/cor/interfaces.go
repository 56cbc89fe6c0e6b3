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

// Package cor (Chain of Responsibility) is the workflow engine the analysis
// pipeline is built on. A workflow is a Chain of Commands sharing one
// Context; each command reads its inputs from the context, does one unit of
// work, and writes its outputs back for the commands after it.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the piping keys of a BaseChain: after each command
// runs, the chain moves the value under CtxOut to CtxIn so the next command
// receives the previous command's output as its input.
const (
	CtxIn  = "__IN__"
	CtxOut = "__OUT__"
)

// Context is the shared state of one workflow execution. It carries the
// data bag, the collected errors, temp-file bookkeeping and the standard Go
// context used for cancellation and trace propagation.
type Context interface {
	SetContext(context context.Context)
	GetContext() context.Context

	// Add stores a key-value pair, returning the Context for chaining.
	Add(key string, value interface{}) Context
	Get(key string) interface{}
	Remove(key string)

	// AddError records a command failure under the command's name.
	AddError(key string, err error)
	GetErrors() map[string]error
	HasErrors() bool

	// AddTempFile tracks a scratch file for cleanup in Close.
	AddTempFile(file string)
	GetTempFiles() []string

	// Close releases workflow resources; defer it at workflow start.
	Close()
}

// Executable is anything with a core execution step.
type Executable interface {
	Execute(context Context)
}

// Command is an atomic, reusable unit of work inside a workflow.
type Command interface {
	Executable

	GetName() string
	GetInputParam() string
	GetOutputParam() string

	// IsExecutable is the precondition check a chain runs before Execute.
	IsExecutable(context Context) bool

	GetTracer() trace.Tracer
	GetMeter() metric.Meter
	GetSuccessCounter() metric.Int64Counter
	GetErrorCounter() metric.Int64Counter
}

// Chain is an ordered sequence of commands. A Chain is itself a Command, so
// chains nest.
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps running commands
	// after one of them records an error.
	ContinueOnFailure(bool) Chain

	AddCommand(command Command) Chain
}
