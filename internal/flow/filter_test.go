// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/agentdesk/internal/model"
)

func agentNames(agents []model.Agent) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	return names
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sênior", "sênior"},
		{"MARKETING", "marketing"},
		{"AÇÃO", "ação"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestFilterAgents(t *testing.T) {
	agents := model.SeedAgents()

	t.Run("empty query keeps all", func(t *testing.T) {
		assert.Len(t, FilterAgents(agents, "", ""), 3)
	})

	t.Run("case insensitive name match", func(t *testing.T) {
		got := FilterAgents(agents, "SÊNIOR", "")
		assert.Equal(t, []string{"Programador Sênior"}, agentNames(got))
	})

	t.Run("accents must match", func(t *testing.T) {
		assert.Empty(t, FilterAgents(agents, "senior", ""))
	})

	t.Run("matches category text", func(t *testing.T) {
		got := FilterAgents(agents, "desenvolv", "")
		assert.Equal(t, []string{"Programador Sênior"}, agentNames(got))
	})

	t.Run("category filter is exact", func(t *testing.T) {
		got := FilterAgents(agents, "", "marketing")
		assert.Equal(t, []string{"Especialista em Marketing"}, agentNames(got))
		assert.Empty(t, FilterAgents(agents, "", "market"))
	})

	t.Run("query and category combine", func(t *testing.T) {
		assert.Empty(t, FilterAgents(agents, "programador", "marketing"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterAgents(agents, "zzz", ""))
	})
}

func TestSortAgents_CurrentFirst(t *testing.T) {
	agents := model.SeedAgents()
	got := SortAgents(agents, model.SeedDeveloperAgentID)
	assert.Equal(t, []string{
		"Programador Sênior",
		"Assistente Geral",
		"Especialista em Marketing",
	}, agentNames(got))
}

func TestSortAgents_CaseInsensitive(t *testing.T) {
	agents := []model.Agent{
		{ID: "a", Name: "beta"},
		{ID: "b", Name: "Alpha"},
		{ID: "c", Name: "gamma"},
	}
	got := SortAgents(agents, "")
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, agentNames(got))
}

func TestCategories(t *testing.T) {
	agents := append(model.SeedAgents(), model.Agent{ID: "x", Name: "Copy", Category: "marketing"})
	assert.Equal(t, []string{"desenvolvimento", "marketing"}, Categories(agents))
}

func TestFilterModels(t *testing.T) {
	catalog := model.Catalog()

	assert.Len(t, FilterModels(catalog, ""), len(catalog))

	got := FilterModels(catalog, "claude")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "claude-3-5-sonnet", got[0].ID)
		assert.Equal(t, "claude-3-haiku", got[1].ID)
	}

	got = FilterModels(catalog, "LONG CONTEXT")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "gemini-1.5-pro", got[0].ID)
	}

	assert.Empty(t, FilterModels(catalog, "no such model"))
}
