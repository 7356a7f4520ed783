// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of supremm.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// MongoStore keeps documents in a MongoDB collection, one BSON document per
// schema document with the schema id as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func OpenMongo(ctx context.Context, cfg Config, timeout time.Duration) (*MongoStore, error) {
	cs, err := connstring.ParseAndValidate(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid mongodb uri: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = cs.Database
	}
	if database == "" {
		database = DefaultDatabase
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	// Connect does not talk to the server, the ping does.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if derr := client.Disconnect(ctx); derr != nil {
			cclog.Warnf("disconnecting from mongodb: %s", derr.Error())
		}
		return nil, fmt.Errorf("reaching mongodb at %s: %w", cs.Hosts, err)
	}

	cclog.Debugf("mongodb store: %s.%s", database, cfg.Collection)
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Upsert(ctx context.Context, id string, doc json.RawMessage) error {
	var bdoc bson.D
	if err := bson.UnmarshalExtJSON(doc, false, &bdoc); err != nil {
		return fmt.Errorf("converting %q to bson: %w", id, err)
	}

	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, bdoc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting %q: %w", id, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	raw, err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", id, err)
	}

	doc, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("converting %q to json: %w", id, err)
	}
	return doc, nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
