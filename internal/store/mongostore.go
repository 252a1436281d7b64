package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"koridor-relay/internal/relay"
)

const opTimeout = 5 * time.Second

// MongoStore persists rooms in the games collection, one document per room:
// {gameid, p1, p2, winner}.
type MongoStore struct {
	client *mongo.Client
	games  *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &MongoStore{
		client: client,
		games:  client.Database(dbName).Collection("games"),
	}, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStore) SaveRoom(ctx context.Context, rec relay.Record) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	_, err := m.games.InsertOne(ctx, rec)
	return err
}

func (m *MongoStore) UpdateRoomField(ctx context.Context, code, field string, value any) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	res, err := m.games.UpdateOne(ctx,
		bson.M{"gameid": code},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return relay.ErrRoomNotFound
	}
	return nil
}

func (m *MongoStore) FindRoomByCode(ctx context.Context, code string) (relay.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	var rec relay.Record
	err := m.games.FindOne(ctx, bson.M{"gameid": code}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return relay.Record{}, relay.ErrRoomNotFound
	}
	if err != nil {
		return relay.Record{}, err
	}
	return rec, nil
}
