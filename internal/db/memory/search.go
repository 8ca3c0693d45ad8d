package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/gem5vision/resources-api/internal/db"
	"github.com/gem5vision/resources-api/internal/domain"
	"github.com/gem5vision/resources-api/internal/domain/search"
	"github.com/gem5vision/resources-api/internal/domain/semver"
)

// Search interprets the plan stage by stage over a snapshot of the catalog.
// Semantics match the aggregation pipeline the MongoDB driver compiles.
func (s *Store) Search(ctx context.Context, plan search.Plan) ([]domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := s.snapshot()
	for _, stage := range plan.Stages {
		switch st := stage.(type) {
		case search.TextMatchStage:
			rows = filterText(rows, st)
		case search.FieldInStage:
			rows = filterIn(rows, st)
		case search.CollapseStage:
			rows = collapseLatest(rows, st)
		case search.SortStage:
			sortRows(rows, st.Keys)
		case search.SkipStage:
			rows = skipRows(rows, st.N)
		case search.LimitStage:
			rows = limitRows(rows, st.N)
		case search.ProjectStage:
			for i, r := range rows {
				rows[i] = r.Without(st.Exclude...)
			}
		default:
			return nil, db.ErrUnknownStage
		}
	}
	return rows, nil
}

func filterText(rows []domain.Resource, st search.TextMatchStage) []domain.Resource {
	term := strings.ToLower(st.Term)
	out := rows[:0]
	for _, r := range rows {
		for _, field := range st.Fields {
			if fieldContains(r[field], term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// fieldContains reports whether the field value contains term as a
// case-insensitive substring. Array fields match when any element matches;
// non-string values never match.
func fieldContains(v any, term string) bool {
	switch val := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(val), term)
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
	case []string:
		for _, s := range val {
			if strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
	}
	return false
}

func filterIn(rows []domain.Resource, st search.FieldInStage) []domain.Resource {
	out := rows[:0]
	for _, r := range rows {
		if fieldIn(r[st.Field], st.Values) {
			out = append(out, r)
		}
	}
	return out
}

// fieldIn reports whether the field value equals (scalar) or intersects
// (array) any of values. Matching is exact and case-sensitive.
func fieldIn(v any, values []string) bool {
	switch val := v.(type) {
	case string:
		return containsString(values, val)
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok && containsString(values, s) {
				return true
			}
		}
	case []string:
		for _, s := range val {
			if containsString(values, s) {
				return true
			}
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// collapseLatest keeps, per distinct group key, the row whose version is
// numerically greatest. Rows with malformed versions drop out. Groups keep
// their first-seen order; a tie on the full version keeps the earlier row.
func collapseLatest(rows []domain.Resource, st search.CollapseStage) []domain.Resource {
	type best struct {
		row domain.Resource
		ver semver.Version
	}

	latest := make(map[string]best)
	order := []string{}
	for _, r := range rows {
		key, _ := r[st.GroupBy].(string)
		raw, _ := r[st.VersionField].(string)
		ver, err := semver.Parse(raw)
		if err != nil {
			continue
		}
		cur, seen := latest[key]
		if !seen {
			latest[key] = best{row: r, ver: ver}
			order = append(order, key)
			continue
		}
		if ver.Compare(cur.ver) > 0 {
			latest[key] = best{row: r, ver: ver}
		}
	}

	out := make([]domain.Resource, 0, len(order))
	for _, key := range order {
		out = append(out, latest[key].row)
	}
	return out
}

// sortRows orders rows by the given keys, comparing field values as plain
// strings. Missing or non-string fields compare as the empty string.
func sortRows(rows []domain.Resource, keys []search.SortKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			a, _ := rows[i][k.Field].(string)
			b, _ := rows[j][k.Field].(string)
			if a == b {
				continue
			}
			if k.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func skipRows(rows []domain.Resource, n int) []domain.Resource {
	if n <= 0 {
		return rows
	}
	if n >= len(rows) {
		return rows[:0]
	}
	return rows[n:]
}

func limitRows(rows []domain.Resource, n int) []domain.Resource {
	if n < 0 {
		return rows[:0]
	}
	if n >= len(rows) {
		return rows
	}
	return rows[:n]
}
