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

// StudentRepo is the registry of student identities. Registration is
// duplicate-protected on both id and name; everything else in the core
// accepts unknown students implicitly.
type StudentRepo interface {
	Register(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, studentID string) (*model.Student, error)
}

type studentRepo struct {
	collection *mongo.Collection
}

// NewStudentRepo creates a Mongo-backed student registry with indexes
func NewStudentRepo(db *mongo.Database) StudentRepo {
	repo := &studentRepo{
		collection: db.Collection("students"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *studentRepo) ensureIndexes(ctx context.Context) {
	for _, field := range []string{"student_id", "name"} {
		opts := options.Index().SetUnique(true)
		keys := bson.D{{Key: field, Value: 1}}
		_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
		if err != nil {
			log.Printf("Warning: failed to create index on %s: %v", r.collection.Name(), err)
		}
	}
}

func (r *studentRepo) Register(ctx context.Context, student *model.Student) error {
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now()
	}

	filter := bson.M{"student_id": student.StudentID}
	if student.Name != "" {
		filter = bson.M{"$or": []bson.M{
			{"student_id": student.StudentID},
			{"name": student.Name},
		}}
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrDuplicateStudent
	}

	_, err = r.collection.InsertOne(ctx, student)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrDuplicateStudent
	}
	return err
}

func (r *studentRepo) GetByID(ctx context.Context, studentID string) (*model.Student, error) {
	var student model.Student
	err := r.collection.FindOne(ctx, bson.M{"student_id": studentID}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}
