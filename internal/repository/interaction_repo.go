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

// InteractionRepo is the append-only interaction log. Ids are assigned
// monotonically on append; an interaction's outcome can be filled exactly
// once.
type InteractionRepo interface {
	// Append stores the interaction and returns its assigned id.
	Append(ctx context.Context, interaction *model.Interaction) (int64, error)

	// GetByID returns the interaction, or nil when the id is unknown.
	GetByID(ctx context.Context, id int64) (*model.Interaction, error)

	// Close fills the outcome of an open interaction. A second close of
	// the same id returns model.ErrAlreadyAnswered and leaves the stored
	// outcome unchanged.
	Close(ctx context.Context, id int64, selectedOption string, correct bool) error

	// ListByStudent returns all interactions of a student ordered by
	// creation time ascending.
	ListByStudent(ctx context.Context, studentID string) ([]*model.Interaction, error)

	// ListByTopic is ListByStudent filtered to one topic.
	ListByTopic(ctx context.Context, studentID, topic string) ([]*model.Interaction, error)
}

type interactionRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewInteractionRepo creates a Mongo-backed interaction log with indexes
func NewInteractionRepo(db *mongo.Database) InteractionRepo {
	repo := &interactionRepo{
		collection: db.Collection("interactions"),
		counters:   db.Collection("counters"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *interactionRepo) ensureIndexes(ctx context.Context) {
	r.createIndex(ctx, bson.D{
		{Key: "student_id", Value: 1},
		{Key: "topic", Value: 1},
	})
	r.createIndex(ctx, bson.D{
		{Key: "student_id", Value: 1},
		{Key: "created_at", Value: 1},
	})
}

func (r *interactionRepo) createIndex(ctx context.Context, keys bson.D) {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys})
	if err != nil {
		log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
	}
}

// nextID increments and returns the interaction counter. FindOneAndUpdate
// with $inc is atomic, so no two appends can receive the same id.
func (r *interactionRepo) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "interactions"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (r *interactionRepo) Append(ctx context.Context, interaction *model.Interaction) (int64, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return 0, err
	}
	interaction.ID = id
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}
	// Outcome must start empty whatever the caller passed in
	interaction.Outcome = nil

	if _, err := r.collection.InsertOne(ctx, interaction); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *interactionRepo) GetByID(ctx context.Context, id int64) (*model.Interaction, error) {
	var interaction model.Interaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&interaction)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

func (r *interactionRepo) Close(ctx context.Context, id int64, selectedOption string, correct bool) error {
	outcome := model.Outcome{
		SelectedOption: selectedOption,
		Correct:        correct,
		AnsweredAt:     time.Now(),
	}

	// Conditional update: only an interaction without an outcome matches,
	// so concurrent closes race on the filter and exactly one wins.
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "outcome": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"outcome": outcome}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return model.ErrInteractionNotFound
		}
		return model.ErrAlreadyAnswered
	}
	return nil
}

func (r *interactionRepo) ListByStudent(ctx context.Context, studentID string) ([]*model.Interaction, error) {
	return r.list(ctx, bson.M{"student_id": studentID})
}

func (r *interactionRepo) ListByTopic(ctx context.Context, studentID, topic string) ([]*model.Interaction, error) {
	return r.list(ctx, bson.M{"student_id": studentID, "topic": topic})
}

func (r *interactionRepo) list(ctx context.Context, filter bson.M) ([]*model.Interaction, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interactions []*model.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}
