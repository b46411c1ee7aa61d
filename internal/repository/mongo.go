package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const attendeeField = "numberOfAttendees"

// MongoEventRepository stores events as documents, with the attendee count
// co-located in each event document.
type MongoEventRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoEventRepository wraps a connected client and its events collection.
func NewMongoEventRepository(client *mongo.Client, coll *mongo.Collection) *MongoEventRepository {
	return &MongoEventRepository{client: client, coll: coll}
}

// Create inserts a new event document.
func (r *MongoEventRepository) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	event := newEvent(req)
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return nil, unavailable("insert event", err)
	}
	return event, nil
}

// List returns all events ordered by creation time descending.
func (r *MongoEventRepository) List(ctx context.Context) ([]model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, unavailable("list events", err)
	}
	var events []model.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, unavailable("decode events", err)
	}
	return events, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *MongoEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get event", err)
	}
	return &e, nil
}

type attendeeDoc struct {
	Count int `bson:"numberOfAttendees"`
}

func (r *MongoEventRepository) findAndAdd(ctx context.Context, filter bson.M, delta int) (int, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{attendeeField: 1})

	var doc attendeeDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{attendeeField: delta}}, opts).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Count, nil
}

// IncrementAttendees applies $inc to the event document and returns the new
// count. Documents missing the field start from 0.
func (r *MongoEventRepository) IncrementAttendees(ctx context.Context, id string) (int, error) {
	count, err := r.findAndAdd(ctx, bson.M{"_id": id}, 1)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, unavailable("increment attendees", err)
	}
	return count, nil
}

// DecrementAttendees applies $inc -1 only to a document whose count is
// above zero. Filter match and update happen as one document-level atomic
// operation in the server.
func (r *MongoEventRepository) DecrementAttendees(ctx context.Context, id string) (int, error) {
	count, err := r.findAndAdd(ctx, bson.M{"_id": id, attendeeField: bson.M{"$gt": 0}}, -1)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, unavailable("decrement attendees", err)
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return 0, unavailable("classify decrement miss", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return 0, ErrNothingToCancel
}

// Ping checks that the primary is reachable.
func (r *MongoEventRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (r *MongoEventRepository) Close() error {
	return r.client.Disconnect(context.Background())
}
