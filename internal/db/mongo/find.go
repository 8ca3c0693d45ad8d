package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gem5vision/resources-api/internal/db"
	"github.com/gem5vision/resources-api/internal/domain"
)

// excludeStoreID hides the collection's own identity field; resource records
// carry their public id in a regular field.
var excludeStoreID = bson.D{{Key: domain.FieldStoreID, Value: 0}}

// FindByID returns the stored revisions of id, narrowed to one revision when
// version is non-empty.
func (s *Store) FindByID(ctx context.Context, id, version string) ([]domain.Resource, error) {
	filter := bson.D{{Key: domain.FieldID, Value: id}}
	if version != "" {
		filter = append(filter, bson.E{Key: domain.FieldVersion, Value: version})
	}
	return s.find(ctx, filter)
}

// FindPairs returns resources matching any of the exact id+version pairs.
func (s *Store) FindPairs(ctx context.Context, keys []domain.ResourceKey) ([]domain.Resource, error) {
	if len(keys) == 0 {
		return []domain.Resource{}, nil
	}

	ors := make(bson.A, 0, len(keys))
	for _, k := range keys {
		ors = append(ors, bson.D{
			{Key: domain.FieldID, Value: k.ID},
			{Key: domain.FieldVersion, Value: k.Version},
		})
	}
	return s.find(ctx, bson.D{{Key: "$or", Value: ors}})
}

func (s *Store) find(ctx context.Context, filter bson.D) ([]domain.Resource, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	cur, err := s.coll.Find(ctx, filter, options.Find().SetProjection(excludeStoreID))
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	return decodeAll(ctx, cur)
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]domain.Resource, error) {
	defer cur.Close(ctx)

	out := []domain.Resource{}
	for cur.Next(ctx) {
		var doc domain.Resource
		if err := cur.Decode(&doc); err != nil {
			return nil, &db.Error{Op: db.OpCursor, Err: err}
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, &db.Error{Op: db.OpCursor, Err: err}
	}
	return out, nil
}
