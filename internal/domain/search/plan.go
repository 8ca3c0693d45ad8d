package search

import "github.com/gem5vision/resources-api/internal/domain"

// Plan is the store-neutral query plan for a search: an ordered list of
// stages every driver executes with identical semantics. The stage order is
// fixed: filtering precedes the collapse so latest-version selection only
// considers matching rows, and the collapse precedes pagination so page
// boundaries are computed over deduplicated ids.
type Plan struct {
	Stages []Stage
}

// Stage is one step of a query plan. The concrete types below form a closed
// set; drivers type-switch over them.
type Stage interface {
	stage()
}

// TextMatchStage matches the term as a case-insensitive literal substring
// against each listed field, OR-combined. Array fields match when any
// element matches.
type TextMatchStage struct {
	Term   string
	Fields []string
}

// FieldInStage keeps rows whose field equals (scalar) or intersects (array)
// any of the listed values.
type FieldInStage struct {
	Field  string
	Values []string
}

// CollapseStage keeps, per distinct GroupBy value, only the row with the
// numerically greatest VersionField among rows whose version is well formed
// (three integer components). Rows with malformed versions are dropped
// rather than failing the query. Ties on the full version keep the row the
// store saw first.
type CollapseStage struct {
	GroupBy      string
	VersionField string
}

// SortKey is one key of a SortStage, ascending unless Desc.
type SortKey struct {
	Field string
	Desc  bool
}

// SortStage orders rows by the given keys. Version fields sort as plain
// strings here, giving a deterministic page boundary rather than a semantic
// ordering; "latest" semantics live solely in CollapseStage.
type SortStage struct {
	Keys []SortKey
}

// SkipStage drops the first N rows.
type SkipStage struct {
	N int
}

// LimitStage keeps at most N rows.
type LimitStage struct {
	N int
}

// ProjectStage removes the listed fields from every row.
type ProjectStage struct {
	Exclude []string
}

func (TextMatchStage) stage() {}
func (FieldInStage) stage()   {}
func (CollapseStage) stage()  {}
func (SortStage) stage()      {}
func (SkipStage) stage()      {}
func (LimitStage) stage()     {}
func (ProjectStage) stage()   {}

// BuildPlan assembles the search plan for a resolved term, criteria, and
// pagination. page and pageSize must be >= 1.
//
// Stage order: text match → field filters (criteria order) → collapse
// (only when resource_version is not explicitly filtered) → deterministic
// sort → skip/limit → projection of the store identity field.
func BuildPlan(term string, criteria Criteria, page, pageSize int) Plan {
	stages := []Stage{
		TextMatchStage{Term: term, Fields: domain.TextSearchFields},
	}

	for _, field := range criteria.Fields() {
		stages = append(stages, FieldInStage{Field: field, Values: criteria.Values(field)})
	}

	if !criteria.Has(domain.FieldVersion) {
		stages = append(stages, CollapseStage{
			GroupBy:      domain.FieldID,
			VersionField: domain.FieldVersion,
		})
	}

	stages = append(stages,
		SortStage{Keys: []SortKey{
			{Field: domain.FieldID},
			{Field: domain.FieldVersion, Desc: true},
		}},
		SkipStage{N: (page - 1) * pageSize},
		LimitStage{N: pageSize},
		ProjectStage{Exclude: []string{domain.FieldStoreID}},
	)

	return Plan{Stages: stages}
}
