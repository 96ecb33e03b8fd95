package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 10 * time.Second

// searchFields are the text fields the reserved "search" filter scans when
// documents live in MongoDB. The in-memory store scans every string field;
// Mongo needs an explicit list to build the $or regex query.
var searchFields = []string{"name", "full_name", "customer_name", "stylist_name", "service_name", "email", "comment"}

// MongoConfig captures the settings for the optional persistent demo store.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// ConnectMongo establishes a MongoDB client, verifies connectivity with a
// ping, and returns a MongoStore over the selected database.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, *MongoStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = mongoTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, &MongoStore{db: client.Database(cfg.Database)}, nil
}

// MongoStore persists demo collections in MongoDB. Documents carry their
// public "id" field as a regular string; the Mongo _id stays internal.
type MongoStore struct {
	db *mongo.Database
}

func (s *MongoStore) List(ctx context.Context, collection string, q ListQuery) ([]Doc, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	filter := buildMongoFilter(q.Filters)
	col := s.db.Collection(collection)

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", collection, err)
	}

	opts := options.Find().
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	docs := []Doc{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", collection, err)
		}
		docs = append(docs, fromBSON(raw))
	}
	return docs, total, cur.Err()
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Doc, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDocNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	return fromBSON(raw), nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc Doc) (Doc, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	stored := cloneDoc(doc)
	stamp(stored)
	if _, err := s.db.Collection(collection).InsertOne(ctx, bson.M(stored)); err != nil {
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	return stored, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, doc Doc) (Doc, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	updated := cloneDoc(doc)
	updated["id"] = id
	updated["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	delete(updated, "created_at") // not part of $set, so the original survives

	res := s.db.Collection(collection).FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M(updated)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var raw bson.M
	err := res.Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDocNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", collection, err)
	}
	return fromBSON(raw), nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return ErrDocNotFound
	}
	return nil
}

func (s *MongoStore) Seed(ctx context.Context, collection string, docs []Doc) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	col := s.db.Collection(collection)
	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed count %s: %w", collection, err)
	}
	if n > 0 {
		return nil
	}

	batch := make([]any, 0, len(docs))
	for _, doc := range docs {
		stored := cloneDoc(doc)
		stamp(stored)
		batch = append(batch, bson.M(stored))
	}
	if len(batch) == 0 {
		return nil
	}
	if _, err := col.InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("seed %s: %w", collection, err)
	}
	return nil
}

func buildMongoFilter(filters map[string]string) bson.M {
	filter := bson.M{}
	for key, want := range filters {
		if key == "search" {
			or := make([]bson.M, 0, len(searchFields))
			for _, f := range searchFields {
				or = append(or, bson.M{f: primitive.Regex{Pattern: want, Options: "i"}})
			}
			filter["$or"] = or
			continue
		}
		filter[key] = want
	}
	return filter
}

func fromBSON(raw bson.M) Doc {
	doc := make(Doc, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	return doc
}
