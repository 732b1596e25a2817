// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/jeranaias/agentdesk/internal/model"
)

// Request is everything a Generator may use to produce a reply.
type Request struct {
	Agent   model.Agent
	ModelID string
	History []model.Message
}

// Generator produces assistant replies and chat titles.
type Generator interface {
	// Reply returns the assistant's answer to the conversation so far.
	Reply(ctx context.Context, req Request) (string, error)

	// SuggestTitle proposes a chat title from the first user message.
	SuggestTitle(ctx context.Context, firstMessage string) (string, error)
}

// =============================================================================
// CANNED GENERATOR
// =============================================================================

// ResponsePool holds the replies CannedGenerator picks from.
var ResponsePool = []string{
	"Got it! I can help you with that. Let me elaborate...",
	"Great question! I'll look into it carefully for you.",
	"Interesting! Let me consider a few different perspectives on this.",
	"Absolutely! Here is my take on what you asked.",
	"Let me break this down for you. It's an important point to consider.",
}

// TitlePool holds the titles CannedGenerator picks from.
var TitlePool = []string{
	"Technology question",
	"Request for help",
	"Business conversation",
	"General inquiry",
	"Project discussion",
}

// CannedGenerator picks replies and titles uniformly from fixed pools.
type CannedGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewCannedGenerator uses rng, or a randomly seeded source when nil.
func NewCannedGenerator(rng *rand.Rand) *CannedGenerator {
	if rng == nil {
		rng = newRand()
	}
	return &CannedGenerator{rng: rng}
}

// Reply picks a response from ResponsePool.
func (g *CannedGenerator) Reply(ctx context.Context, _ Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.pick(ResponsePool), nil
}

// SuggestTitle picks a title from TitlePool.
func (g *CannedGenerator) SuggestTitle(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.pick(TitlePool), nil
}

func (g *CannedGenerator) pick(pool []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return pool[g.rng.IntN(len(pool))]
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
