// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flow

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jeranaias/agentdesk/internal/model"
)

// =============================================================================
// TEXT FOLDING
// =============================================================================

// Fold applies Unicode case folding to s. Accents are kept, so "Sênior"
// folds to "sênior" and does not equal "senior".
func Fold(s string) string {
	return cases.Fold().String(s)
}

// containsFold reports whether query occurs in any of fields after folding.
// An empty query matches everything.
func containsFold(query string, fields ...string) bool {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}

// =============================================================================
// AGENTS
// =============================================================================

// FilterAgents keeps agents whose name or category contains query and, when
// category is set, whose category equals it exactly.
func FilterAgents(agents []model.Agent, query, category string) []model.Agent {
	out := make([]model.Agent, 0, len(agents))
	for _, a := range agents {
		if category != "" && a.Category != category {
			continue
		}
		if !containsFold(query, a.Name, a.Category) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// SortAgents orders agents with currentID pinned first and the rest by name
// in collation order. The input is sorted in place and returned.
func SortAgents(agents []model.Agent, currentID string) []model.Agent {
	col := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(agents, func(i, j int) bool {
		if agents[i].ID == currentID {
			return agents[j].ID != currentID
		}
		if agents[j].ID == currentID {
			return false
		}
		return col.CompareString(agents[i].Name, agents[j].Name) < 0
	})
	return agents
}

// Categories returns the distinct non-empty categories in collation order.
func Categories(agents []model.Agent) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range agents {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		out = append(out, a.Category)
	}
	collate.New(language.Und).SortStrings(out)
	return out
}

// =============================================================================
// MODELS
// =============================================================================

// FilterModels keeps models whose name or description contains query.
func FilterModels(models []model.ModelInfo, query string) []model.ModelInfo {
	out := make([]model.ModelInfo, 0, len(models))
	for _, m := range models {
		if containsFold(query, m.Name, m.Description) {
			out = append(out, m)
		}
	}
	return out
}
