package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/food-ratings/internal/models"
)

const (
	usersCollection = "users"
	foodsCollection = "foods"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"password_hash"`
	AccessToken  string             `bson:"access_token"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d userDoc) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		AccessToken:  d.AccessToken,
		CreatedAt:    d.CreatedAt,
	}
}

type foodDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Rating    float64            `bson:"rating"`
	UserID    string             `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d foodDoc) model() models.Food {
	return models.Food{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Rating:    d.Rating,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
	}
}

// MongoStore handles user and food documents in MongoDB.
type MongoStore struct {
	users *mongo.Collection
	foods *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users: db.Collection(usersCollection),
		foods: db.Collection(foodsCollection),
	}
}

// EnsureIndexes creates the unique indexes the stores rely on for
// duplicate detection.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "access_token", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("mongo users indexes: %w", err)
	}
	_, err = s.foods.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo foods indexes: %w", err)
	}
	return nil
}

// CreateUser inserts u and sets its ID.
func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		AccessToken:  u.AccessToken,
		CreatedAt:    u.CreatedAt,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return mongoErr("insert user", err)
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"access_token": token})
}

func (s *MongoStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"name": name})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mongoErr("find user", err)
	}
	return doc.model(), nil
}

// InsertFood inserts f and sets its ID.
func (s *MongoStore) InsertFood(ctx context.Context, f *models.Food) error {
	doc := foodDoc{
		ID:        primitive.NewObjectID(),
		Name:      f.Name,
		Rating:    f.Rating,
		UserID:    f.UserID,
		CreatedAt: f.CreatedAt,
	}
	if _, err := s.foods.InsertOne(ctx, doc); err != nil {
		return mongoErr("insert food", err)
	}
	f.ID = doc.ID.Hex()
	return nil
}

// ListFoodsByUser returns the user's foods, oldest first.
func (s *MongoStore) ListFoodsByUser(ctx context.Context, userID string) ([]models.Food, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.foods.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, mongoErr("find foods", err)
	}
	defer cur.Close(ctx)

	var docs []foodDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mongoErr("decode foods", err)
	}
	foods := make([]models.Food, 0, len(docs))
	for _, d := range docs {
		foods = append(foods, d.model())
	}
	return foods, nil
}

// mongoErr maps driver errors onto the models sentinels.
func mongoErr(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, models.ErrDuplicate)
	default:
		return fmt.Errorf("mongo %s: %w", op, err)
	}
}
