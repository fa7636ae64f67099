package email

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tablecrm/internal/database"
)

type EmailRepository struct {
	col *mongo.Collection
}

func NewEmailRepository(db *database.MongodbDB) *EmailRepository {
	return &EmailRepository{
		col: db.DB.Collection("emails"),
	}
}

func (r *EmailRepository) Create(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreatedAt = time.Now()
	_, err := r.col.InsertOne(ctx, msg)
	return err
}

func (r *EmailRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status Status, errorMsg string) error {
	set := bson.M{
		"status": status,
		"error":  errorMsg,
	}
	if status == StatusSent {
		set["sent_at"] = time.Now()
	}
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

func (r *EmailRepository) FindByUser(ctx context.Context, userID int64, limit int64) ([]Message, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
