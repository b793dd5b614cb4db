package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"oneclarity/internal/model"
)

// ProgressRepo stores per-student, per-topic performance records
type ProgressRepo interface {
	// Get returns the record for (studentID, topic), or nil when none
	// exists yet.
	Get(ctx context.Context, studentID, topic string) (*model.StudentTopicRecord, error)

	// Upsert writes the record keyed by (studentID, topic).
	Upsert(ctx context.Context, record *model.StudentTopicRecord) error

	// ListByStudent returns all topic records of a student.
	ListByStudent(ctx context.Context, studentID string) ([]*model.StudentTopicRecord, error)
}

type progressRepo struct {
	collection *mongo.Collection
}

// NewProgressRepo creates a Mongo-backed progress repository with indexes
func NewProgressRepo(db *mongo.Database) ProgressRepo {
	repo := &progressRepo{
		collection: db.Collection("student_topic_records"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *progressRepo) ensureIndexes(ctx context.Context) {
	keys := bson.D{
		{Key: "student_id", Value: 1},
		{Key: "topic", Value: 1},
	}
	opts := options.Index().SetUnique(true)
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
	}
}

func (r *progressRepo) Get(ctx context.Context, studentID, topic string) (*model.StudentTopicRecord, error) {
	var record model.StudentTopicRecord
	err := r.collection.FindOne(ctx, bson.M{
		"student_id": studentID,
		"topic":      topic,
	}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *progressRepo) Upsert(ctx context.Context, record *model.StudentTopicRecord) error {
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"student_id": record.StudentID, "topic": record.Topic},
		record,
		opts,
	)
	return err
}

func (r *progressRepo) ListByStudent(ctx context.Context, studentID string) ([]*model.StudentTopicRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "topic", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.StudentTopicRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
