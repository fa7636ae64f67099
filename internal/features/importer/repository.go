package importer

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tablecrm/internal/database"
)

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	Complete(ctx context.Context, id primitive.ObjectID, created int) error
	Fail(ctx context.Context, id primitive.ObjectID, reason string) error
	FindByUser(ctx context.Context, userID int64, limit int64) ([]Job, error)
}

type JobRepositoryImpl struct {
	collection *mongo.Collection
}

func NewJobRepository(db *database.MongodbDB) JobRepository {
	return &JobRepositoryImpl{
		collection: db.DB.Collection("import_jobs"),
	}
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *Job) error {
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	job.Status = JobStatusPending
	job.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, job)
	return err
}

func (r *JobRepositoryImpl) Complete(ctx context.Context, id primitive.ObjectID, created int) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":       JobStatusCompleted,
			"created":      created,
			"completed_at": now,
		},
	})
	return err
}

func (r *JobRepositoryImpl) Fail(ctx context.Context, id primitive.ObjectID, reason string) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":       JobStatusFailed,
			"error":        reason,
			"completed_at": now,
		},
	})
	return err
}

func (r *JobRepositoryImpl) FindByUser(ctx context.Context, userID int64, limit int64) ([]Job, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
