package mongo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gem5vision/resources-api/internal/db"
	"github.com/gem5vision/resources-api/internal/domain"
	"github.com/gem5vision/resources-api/internal/domain/search"
	"github.com/gem5vision/resources-api/internal/domain/semver"
)

// versionPartsField is the synthetic field the collapse expansion adds for
// numeric version ordering. The trailing $project strips it again.
const versionPartsField = "version_parts"

// Search compiles the plan to an aggregation pipeline and executes it.
func (s *Store) Search(ctx context.Context, plan search.Plan) ([]domain.Resource, error) {
	pipeline, err := compilePlan(plan)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}
	return decodeAll(ctx, cur)
}

// compilePlan lowers the store-neutral plan to MongoDB aggregation stages,
// one plan stage to one pipeline stage except CollapseStage, which expands
// to the five-stage latest-version idiom.
func compilePlan(plan search.Plan) (mongo.Pipeline, error) {
	pipeline := mongo.Pipeline{}
	collapsed := false

	for _, stage := range plan.Stages {
		switch st := stage.(type) {
		case search.TextMatchStage:
			pipeline = append(pipeline, textMatch(st))
		case search.FieldInStage:
			pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
				{Key: st.Field, Value: bson.D{{Key: "$in", Value: st.Values}}},
			}}})
		case search.CollapseStage:
			collapsed = true
			pipeline = append(pipeline, collapse(st)...)
		case search.SortStage:
			keys := bson.D{}
			for _, k := range st.Keys {
				dir := 1
				if k.Desc {
					dir = -1
				}
				keys = append(keys, bson.E{Key: k.Field, Value: dir})
			}
			pipeline = append(pipeline, bson.D{{Key: "$sort", Value: keys}})
		case search.SkipStage:
			pipeline = append(pipeline, bson.D{{Key: "$skip", Value: st.N}})
		case search.LimitStage:
			pipeline = append(pipeline, bson.D{{Key: "$limit", Value: st.N}})
		case search.ProjectStage:
			exclude := bson.D{}
			for _, f := range st.Exclude {
				exclude = append(exclude, bson.E{Key: f, Value: 0})
			}
			if collapsed {
				exclude = append(exclude, bson.E{Key: versionPartsField, Value: 0})
			}
			pipeline = append(pipeline, bson.D{{Key: "$project", Value: exclude}})
		default:
			return nil, db.ErrUnknownStage
		}
	}

	return pipeline, nil
}

// textMatch builds the OR-of-regexes term match. The term is quoted so it
// matches as a literal substring, never as a user-supplied pattern.
func textMatch(st search.TextMatchStage) bson.D {
	pattern := regexp.QuoteMeta(st.Term)
	ors := make(bson.A, 0, len(st.Fields))
	for _, f := range st.Fields {
		ors = append(ors, bson.D{{Key: f, Value: bson.D{
			{Key: "$regex", Value: pattern},
			{Key: "$options", Value: "i"},
		}}})
	}
	return bson.D{{Key: "$match", Value: bson.D{{Key: "$or", Value: ors}}}}
}

// collapse expands to the latest-version-per-id idiom: split the version
// into integer parts, sort newest first within each group, keep the first
// row of each group. Rows whose version is not three dot-separated integers
// are filtered out first; they would fail $toInt and can never be "latest".
func collapse(st search.CollapseStage) []bson.D {
	return []bson.D{
		{{Key: "$match", Value: bson.D{
			{Key: st.VersionField, Value: bson.D{{Key: "$regex", Value: semver.Pattern}}},
		}}},
		{{Key: "$addFields", Value: bson.D{{Key: versionPartsField, Value: bson.D{
			{Key: "$map", Value: bson.D{
				{Key: "input", Value: bson.D{{Key: "$split", Value: bson.A{"$" + st.VersionField, "."}}}},
				{Key: "as", Value: "part"},
				{Key: "in", Value: bson.D{{Key: "$toInt", Value: "$$part"}}},
			}},
		}}}}},
		{{Key: "$sort", Value: bson.D{
			{Key: st.GroupBy, Value: 1},
			{Key: versionPartsField + ".0", Value: -1},
			{Key: versionPartsField + ".1", Value: -1},
			{Key: versionPartsField + ".2", Value: -1},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + st.GroupBy},
			{Key: "doc", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$doc"}}}},
	}
}
