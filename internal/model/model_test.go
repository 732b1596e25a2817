// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// =============================================================================
// AGENT TESTS
// =============================================================================

func TestAgentSpec_Normalize(t *testing.T) {
	spec := AgentSpec{Name: "  Writer ", Avatar: "fa-unknown"}.Normalize()

	if spec.Name != "Writer" {
		t.Errorf("Name = %q, want trimmed", spec.Name)
	}
	if spec.Avatar != Avatars[0] {
		t.Errorf("Avatar = %q, want default %q", spec.Avatar, Avatars[0])
	}
	if spec.Instruction != DefaultInstruction {
		t.Errorf("Instruction = %q, want default", spec.Instruction)
	}
}

func TestAgentSpec_Validate(t *testing.T) {
	if err := (AgentSpec{Name: "   "}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: err = %v, want ErrValidation", err)
	}
	if err := (AgentSpec{Name: "ok"}).Validate(); err != nil {
		t.Errorf("valid name: err = %v", err)
	}
}

func TestAgent_CategoryLabel(t *testing.T) {
	if got := (Agent{}).CategoryLabel(); got != GeneralCategoryLabel {
		t.Errorf("CategoryLabel() = %q", got)
	}
	if got := (Agent{Category: "marketing"}).CategoryLabel(); got != "marketing" {
		t.Errorf("CategoryLabel() = %q", got)
	}
}

func TestAvatarGlyph_UnknownFallsBack(t *testing.T) {
	if AvatarGlyph("nope") != AvatarGlyph(Avatars[0]) {
		t.Error("unknown avatar should fall back to the default glyph")
	}
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestNewChat(t *testing.T) {
	chat := NewChat("3")
	if chat.ID == "" {
		t.Error("expected an id")
	}
	if chat.Title != DefaultChatTitle {
		t.Errorf("Title = %q", chat.Title)
	}
	if chat.AgentID != "3" || len(chat.Messages) != 0 {
		t.Errorf("unexpected chat: %+v", chat)
	}
}

func TestChat_RemoveAt(t *testing.T) {
	chat := NewChat("3")
	for i := 0; i < 3; i++ {
		chat.Append(NewUserMessage(fmt.Sprintf("m%d", i)))
	}

	if chat.RemoveAt(5) || chat.RemoveAt(-1) {
		t.Error("out of range removal should report false")
	}
	if !chat.RemoveAt(1) {
		t.Fatal("RemoveAt(1) = false")
	}
	if len(chat.Messages) != 2 || chat.Messages[1].Content != "m2" {
		t.Errorf("unexpected messages after removal: %+v", chat.Messages)
	}
}

func TestChat_CloneIsDeep(t *testing.T) {
	chat := NewChat("3")
	chat.Append(NewUserMessage("a"))

	clone := chat.Clone()
	clone.Append(NewUserMessage("b"))
	clone.Messages[0].Content = "changed"

	if len(chat.Messages) != 1 || chat.Messages[0].Content != "a" {
		t.Errorf("original mutated through clone: %+v", chat.Messages)
	}
}

func TestChat_RemoveAtDoesNotTouchClones(t *testing.T) {
	chat := NewChat("3")
	chat.Append(NewUserMessage("a"))
	chat.Append(NewUserMessage("b"))
	snapshot := chat.Messages

	chat.RemoveAt(0)

	if snapshot[0].Content != "a" || snapshot[1].Content != "b" {
		t.Errorf("RemoveAt rewrote a shared backing array: %+v", snapshot)
	}
}

func TestChat_HasUserMessage(t *testing.T) {
	chat := SeedChat(time.Now())
	if chat.HasUserMessage() {
		t.Error("seed chat has only the greeting")
	}
	chat.Append(NewUserMessage("hi"))
	if !chat.HasUserMessage() {
		t.Error("expected a user message")
	}
}

func TestChat_LastAssistantIndex(t *testing.T) {
	chat := SeedChat(time.Now())
	chat.Append(NewUserMessage("hi"))
	if got := chat.LastAssistantIndex(); got != 0 {
		t.Errorf("LastAssistantIndex() = %d, want 0", got)
	}
	if got := NewChat("3").LastAssistantIndex(); got != -1 {
		t.Errorf("empty chat LastAssistantIndex() = %d", got)
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessage_Escaped(t *testing.T) {
	msg := NewUserMessage(`<script>alert("x")</script>`)
	want := "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;"
	if got := msg.Escaped(); got != want {
		t.Errorf("Escaped() = %q, want %q", got, want)
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("first line that is rather long\nsecond")
	if got := msg.Preview(10); got != "first l..." {
		t.Errorf("Preview() = %q", got)
	}
}

func TestRole_DisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" || RoleAssistant.DisplayName() != "Assistant" {
		t.Error("unexpected role display names")
	}
	if Role("system").Valid() {
		t.Error("system is not a chat role")
	}
}

// =============================================================================
// ID TESTS
// =============================================================================

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		for _, id := range []string{NewAgentID(), NewChatID(), NewMessageID()} {
			if seen[id] {
				t.Fatalf("duplicate id %q", id)
			}
			seen[id] = true
		}
	}
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestErrors_Is(t *testing.T) {
	cause := errors.New("disk full")
	tests := []struct {
		err    error
		target error
	}{
		{&ValidationError{Field: "title", Message: "required"}, ErrValidation},
		{&NotFoundError{Kind: "chat", ID: "x"}, ErrNotFound},
		{&PersistenceError{Op: "write", Key: "chats", Err: cause}, ErrPersistence},
		{&PersistenceError{Op: "write", Key: "chats", Err: cause}, cause},
		{fmt.Errorf("wrapped: %w", &NotFoundError{Kind: "agent", ID: "9"}), ErrNotFound},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.target) {
			t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
		}
	}
	if errors.Is(&ValidationError{}, ErrNotFound) {
		t.Error("validation error must not match ErrNotFound")
	}
}

// =============================================================================
// SEED & CATALOG TESTS
// =============================================================================

func TestSeedAgents(t *testing.T) {
	agents := SeedAgents()
	if len(agents) != 3 {
		t.Fatalf("len = %d, want 3", len(agents))
	}
	general := agents[2]
	if general.ID != SeedGeneralAgentID || general.Name != "Assistente Geral" || !general.IsGeneral() {
		t.Errorf("unexpected general agent: %+v", general)
	}
}

func TestSeedChat(t *testing.T) {
	chat := SeedChat(time.Now())
	if chat.AgentID != SeedGeneralAgentID || len(chat.Messages) != 1 {
		t.Fatalf("unexpected seed chat: %+v", chat)
	}
	if chat.Messages[0].Role != RoleAssistant {
		t.Error("seed message must be from the assistant")
	}
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	if _, ok := FindModel(catalog, DefaultModelID); !ok {
		t.Fatalf("default model %q missing from catalog", DefaultModelID)
	}
	ids := map[string]bool{}
	for _, m := range catalog {
		if ids[m.ID] {
			t.Errorf("duplicate model id %q", m.ID)
		}
		ids[m.ID] = true
		if m.Status != StatusOnline {
			t.Errorf("%s starts %s, want online", m.ID, m.Status)
		}
	}
	if _, ok := FindModel(catalog, "nope"); ok {
		t.Error("FindModel found an unknown id")
	}
}

func TestModelInfo_ContextString(t *testing.T) {
	if got := (ModelInfo{MaxTokens: 1000000}).ContextString(); got != "1.0M tokens" {
		t.Errorf("ContextString() = %q", got)
	}
	if got := (ModelInfo{MaxTokens: 128000}).ContextString(); got != "128K tokens" {
		t.Errorf("ContextString() = %q", got)
	}
}
