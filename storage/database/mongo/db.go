package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ericnguyen1274/Customer---App/core"
)

// DB is a core.DB backed by MongoDB. Documents are stored with their id as _id;
// sequences live in the core.CollectionSequences collection as {_id: name, value: n}.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ core.DB = (*DB)(nil)

// Open connects to uri and uses the database named name. It does not wait for the server.
func Open(ctx context.Context, uri, name string) (*DB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	return &DB{client: client, db: client.Database(name)}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

type snapshot struct {
	id  string
	raw bson.Raw
}

func (s snapshot) ID() string { return s.id }

func (s snapshot) DataTo(v interface{}) error {
	return bson.Unmarshal(s.raw, v)
}

func (db *DB) NextSequence(ctx context.Context, name string) (int64, error) {
	var seq struct {
		Value int64 `bson:"value"`
	}
	err := db.db.Collection(core.CollectionSequences).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&seq)
	if err != nil {
		return 0, errors.Wrapf(err, "incrementing sequence %s", name)
	}
	return seq.Value, nil
}

func (db *DB) SeedSequence(ctx context.Context, name string, n int64) error {
	_, err := db.db.Collection(core.CollectionSequences).UpdateOne(
		ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"value": n}},
		options.Update().SetUpsert(true),
	)
	return errors.Wrapf(err, "seeding sequence %s", name)
}

func (db *DB) Get(ctx context.Context, collection, id string) (core.Snapshot, error) {
	raw, err := db.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).DecodeBytes()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrDocNotFound
		}
		return nil, errors.Wrap(err, "finding document")
	}
	return snapshot{id: id, raw: raw}, nil
}

func (db *DB) Query(ctx context.Context, collection string, filters ...core.Filter) ([]core.Snapshot, error) {
	filter := bson.D{}
	for _, f := range filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}
	cur, err := db.db.Collection(collection).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "querying documents")
	}
	defer func() { _ = cur.Close(ctx) }()

	snaps := make([]core.Snapshot, 0)
	for cur.Next(ctx) {
		raw := make(bson.Raw, len(cur.Current))
		copy(raw, cur.Current)
		id, _ := raw.Lookup("_id").StringValueOK()
		snaps = append(snaps, snapshot{id: id, raw: raw})
	}
	return snaps, errors.Wrap(cur.Err(), "reading documents")
}

func (db *DB) Count(ctx context.Context, collection string) (int, error) {
	n, err := db.db.Collection(collection).CountDocuments(ctx, bson.M{})
	return int(n), errors.Wrap(err, "counting documents")
}

func (db *DB) Set(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := withID(id, doc)
	if err != nil {
		return err
	}
	_, err = db.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, data, options.Replace().SetUpsert(true))
	return errors.Wrap(err, "replacing document")
}

func (db *DB) Create(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := withID(id, doc)
	if err != nil {
		return err
	}
	if _, err = db.db.Collection(collection).InsertOne(ctx, data); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return core.ErrDocExists
		}
		return errors.Wrap(err, "inserting document")
	}
	return nil
}

func (db *DB) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.New().String()
	data, err := withID(id, doc)
	if err != nil {
		return "", err
	}
	if _, err = db.db.Collection(collection).InsertOne(ctx, data); err != nil {
		return "", errors.Wrap(err, "inserting document")
	}
	return id, nil
}

func (db *DB) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	res, err := db.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return errors.Wrap(err, "updating document")
	}
	if res.MatchedCount == 0 {
		return core.ErrDocNotFound
	}
	return nil
}

func (db *DB) Delete(ctx context.Context, collection, id string) error {
	_, err := db.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrap(err, "deleting document")
}

// RunTransaction runs fn in a session transaction; every operation made through tx with
// the ctx given to fn takes part in it. Requires a replica set.
func (db *DB) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx core.DocStore) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx, db)
	}
	sess, err := db.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "starting session")
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx, db)
	})
	return err
}

// withID encodes doc and sets its _id.
func withID(id string, doc interface{}) (bson.D, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encoding document")
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, errors.Wrap(err, "decoding document")
	}
	out := make(bson.D, 0, len(d)+1)
	out = append(out, bson.E{Key: "_id", Value: id})
	for _, e := range d {
		if e.Key != "_id" {
			out = append(out, e)
		}
	}
	return out, nil
}
