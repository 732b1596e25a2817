// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation drives the message exchange of the current chat.
//
// The Engine appends the user's message, asks a Generator for a reply after
// a randomized delay, and appends that reply to the chat that was current
// when generation started. Only one generation runs at a time.
//
//	Idle --send/generate/regenerate--> Generating --reply appended--> Idle
//	                                   Generating --Cancel----------> Idle
//
// Cancel pauses: the pending reply is discarded, nothing is appended, and
// the generating flag clears immediately.
//
// # Usage
//
//	engine := conversation.New(store, conversation.NewCannedGenerator(nil), projector,
//	    conversation.DefaultConfig(), conversation.WithLogger(log))
//	defer engine.Wait()
//
//	if err := engine.SendUserMessage(ctx, "hello"); errors.Is(err, model.ErrValidation) {
//	    // blank input or a reply is still pending
//	}
package conversation
