// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"slotswapper/database"
	"slotswapper/models"
	"slotswapper/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetByID returns (nil, nil) when no user with the given id exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns (nil, nil) when no user with the given email exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetTokenHash(ctx context.Context, id, tokenHash string) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoUserRepo{
		coll: db.Collection("users"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure user indexes", zap.Error(err))
	}
	return repo
}
