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

package cloud

import (
	"context"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jaycherian/gcp-go-content-intel/internal/core/cor"
)

// PubSubListener binds a Pub/Sub subscription to a workflow command. Each
// received message runs the command with the raw payload as chain input;
// the message is acked only when the chain finishes without errors, so
// failed triggers redeliver under the subscription's retry policy.
type PubSubListener struct {
	client       *pubsub.Client
	subscription *pubsub.Subscription
	command      cor.Command
}

// NewPubSubListener creates a listener for one subscription. The command
// may be nil at construction and attached later with SetCommand, since
// workflows are usually assembled after the clients.
func NewPubSubListener(
	pubsubClient *pubsub.Client,
	subscriptionID string,
	command cor.Command,
) (cmd *PubSubListener, err error) {
	sub := pubsubClient.Subscription(subscriptionID)
	return &PubSubListener{
		client:       pubsubClient,
		subscription: sub,
		command:      command,
	}, nil
}

// SetCommand attaches the processing command. First writer wins; a command
// set at construction is never overwritten.
func (m *PubSubListener) SetCommand(command cor.Command) {
	if m.command == nil {
		m.command = command
	}
}

// Listen starts the background receive loop. Canceling ctx stops it.
func (m *PubSubListener) Listen(ctx context.Context) {
	slog.Info("listening for triggers", "subscription", m.subscription.String())

	go func() {
		tracer := otel.Tracer("trigger-listener")

		err := m.subscription.Receive(ctx, func(_ context.Context, msg *pubsub.Message) {
			spanCtx, span := tracer.Start(ctx, "receive-trigger")
			span.SetAttributes(attribute.String("msg", string(msg.Data)))

			chainCtx := cor.NewBaseContext()
			chainCtx.SetContext(spanCtx)
			chainCtx.Add(cor.CtxIn, string(msg.Data))

			m.command.Execute(chainCtx)

			if !chainCtx.HasErrors() {
				span.SetStatus(codes.Ok, "success")
				msg.Ack()
			} else {
				span.SetStatus(codes.Error, "failed")
				for _, e := range chainCtx.GetErrors() {
					slog.Error("error executing trigger chain", "error", e)
				}
				// No ack: let the message redeliver per the retry policy.
			}

			span.End()
		})
		if err != nil {
			slog.Error("error receiving trigger messages", "error", err)
		}
	}()
}
