// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package catalog

import (
	"sort"
	"strings"
)

// Search scoring. A name prefix match outranks a name containment match,
// which outranks a description containment match.
const (
	scoreNamePrefix   = 3
	scoreNameContains = 2
	scoreDescContains = 1
)

// SearchResultKind identifies what a search result refers to.
type SearchResultKind string

// Search result kinds.
const (
	ResultWork   SearchResultKind = "work"
	ResultAuthor SearchResultKind = "author"
)

// SearchResult is a single scored search hit.
type SearchResult struct {
	Kind  SearchResultKind
	ID    string
	Name  string
	Score int
}

// Search scans works and authors for the query with case-insensitive
// containment and returns hits ordered by score, then name. The scan is
// linear over the in-memory collections; the catalog is small enough that
// no index is kept.
func Search(query string, works []Work, authors []Author) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []SearchResult
	for _, w := range works {
		desc := ""
		if w.Description != nil {
			desc = *w.Description
		}
		if score := scoreMatch(q, w.Name, desc); score > 0 {
			results = append(results, SearchResult{
				Kind:  ResultWork,
				ID:    w.ID.String(),
				Name:  w.Name,
				Score: score,
			})
		}
	}
	for _, a := range authors {
		name, bio := "", ""
		if a.Name != nil {
			name = *a.Name
		}
		if a.Biography != nil {
			bio = *a.Biography
		}
		if score := scoreMatch(q, name, bio); score > 0 {
			results = append(results, SearchResult{
				Kind:  ResultAuthor,
				ID:    a.ID.String(),
				Name:  name,
				Score: score,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})
	return results
}

// scoreMatch scores a query against a name and a description.
func scoreMatch(q, name, description string) int {
	n := strings.ToLower(name)
	switch {
	case strings.HasPrefix(n, q):
		return scoreNamePrefix
	case strings.Contains(n, q):
		return scoreNameContains
	case strings.Contains(strings.ToLower(description), q):
		return scoreDescContains
	}
	return 0
}
