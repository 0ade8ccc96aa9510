package mongodb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestMongoDBRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	created := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := newRepository(mt.Client, mt.Coll, nil)

		record := models.AnalysisRecord{ID: "a-1", FarmID: "farm-1", CreatedAt: created}
		if err := repo.Save(ctx, record); err != nil {
			t.Fatalf("Save: %v", err)
		}
	})

	mt.Run("save duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		repo := newRepository(mt.Client, mt.Coll, nil)

		if err := repo.Save(ctx, models.AnalysisRecord{ID: "a-1"}); err == nil {
			t.Fatal("expected duplicate key error")
		}
	})

	mt.Run("find by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "a-1"},
			{Key: "farm_id", Value: "farm-1"},
			{Key: "engine_version", Value: "2.1.0"},
			{Key: "created_at", Value: created},
		}))
		repo := newRepository(mt.Client, mt.Coll, nil)

		record, err := repo.FindByID(ctx, "a-1")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if record.FarmID != "farm-1" || record.EngineVersion != "2.1.0" || !record.CreatedAt.Equal(created) {
			t.Errorf("record = %+v", record)
		}
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := newRepository(mt.Client, mt.Coll, nil)

		if _, err := repo.FindByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("list by farm", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a-2"}, {Key: "farm_id", Value: "farm-1"}})
		second := mtest.CreateCursorResponse(1, namespace(mt), mtest.NextBatch,
			bson.D{{Key: "_id", Value: "a-1"}, {Key: "farm_id", Value: "farm-1"}})
		done := mtest.CreateCursorResponse(0, namespace(mt), mtest.NextBatch)
		mt.AddMockResponses(first, second, done)
		repo := newRepository(mt.Client, mt.Coll, nil)

		records, err := repo.ListByFarm(ctx, "farm-1", 10)
		if err != nil {
			t.Fatalf("ListByFarm: %v", err)
		}
		if len(records) != 2 || records[0].ID != "a-2" || records[1].ID != "a-1" {
			t.Errorf("records = %+v", records)
		}
	})

	mt.Run("list since empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := newRepository(mt.Client, mt.Coll, nil)

		records, err := repo.ListSince(ctx, created)
		if err != nil {
			t.Fatalf("ListSince: %v", err)
		}
		if records == nil || len(records) != 0 {
			t.Errorf("records = %#v, want empty slice", records)
		}
	})
}

type fakeConnection struct {
	pingErr       error
	disconnectErr error
	disconnects   int
}

func (c *fakeConnection) Ping(context.Context, *readpref.ReadPref) error { return c.pingErr }

func (c *fakeConnection) Disconnect(context.Context) error {
	c.disconnects++
	return c.disconnectErr
}

func TestOpen(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("ready", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		conn := &fakeConnection{}

		repo, err := open(ctx, conn, mt.Coll, nil)
		if err != nil || repo == nil {
			t.Fatalf("open = %v, %v", repo, err)
		}
		if conn.disconnects != 0 {
			t.Errorf("disconnected %d times on success", conn.disconnects)
		}
	})

	mt.Run("ping fails", func(mt *mtest.T) {
		conn := &fakeConnection{pingErr: errors.New("no reachable servers")}

		if _, err := open(ctx, conn, mt.Coll, nil); err == nil {
			t.Fatal("expected ping error")
		}
		if conn.disconnects != 1 {
			t.Errorf("disconnects = %d, want 1", conn.disconnects)
		}
	})

	mt.Run("index creation fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized to create indexes",
		}))
		conn := &fakeConnection{disconnectErr: errors.New("already closed")}

		_, err := open(ctx, conn, mt.Coll, nil)
		if err == nil {
			t.Fatal("expected index error")
		}
		if conn.disconnects != 1 {
			t.Errorf("disconnects = %d, want 1", conn.disconnects)
		}
		if !strings.Contains(err.Error(), "indexes") || !strings.Contains(err.Error(), "already closed") {
			t.Errorf("err = %v, want index and disconnect causes", err)
		}
	})
}
