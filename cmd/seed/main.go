package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"oneclarity/internal/model"
	"oneclarity/internal/repository"
)

// Seeds a local MongoDB with demo students and topic records so the API
// can be exercised without going through a full answer history first.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("oneclarity")
	studentRepo := repository.NewStudentRepo(db)
	progressRepo := repository.NewProgressRepo(db)

	students := []*model.Student{
		{StudentID: "s-demo-1", Name: "Asha"},
		{StudentID: "s-demo-2", Name: "Rohan"},
	}
	for _, s := range students {
		if err := studentRepo.Register(ctx, s); err == model.ErrDuplicateStudent {
			log.Printf("student %s already registered, skipping", s.StudentID)
		} else if err != nil {
			log.Fatalf("Failed to register student %s: %v", s.StudentID, err)
		}
	}

	records := []*model.StudentTopicRecord{
		{
			StudentID:         "s-demo-1",
			Topic:             "matrices",
			Attempts:          10,
			Correct:           9,
			CurrentDifficulty: model.DifficultyHard,
		},
		{
			StudentID:            "s-demo-1",
			Topic:                "probability",
			Attempts:             5,
			Correct:              1,
			CurrentDifficulty:    model.DifficultyEasy,
			ConsecutiveIncorrect: 1,
		},
		{
			StudentID:         "s-demo-2",
			Topic:             "integrals",
			Attempts:          4,
			Correct:           3,
			CurrentDifficulty: model.DifficultyMedium,
		},
	}
	for _, r := range records {
		r.LastUpdated = time.Now()
		if err := progressRepo.Upsert(ctx, r); err != nil {
			log.Fatalf("Failed to seed record %s/%s: %v", r.StudentID, r.Topic, err)
		}
	}

	log.Printf("Seeded %d students and %d topic records", len(students), len(records))
}
