package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goldenview/realty/internal/auth"
	"goldenview/realty/internal/config"
	"goldenview/realty/internal/db"
	"goldenview/realty/internal/models"
)

var (
	// ErrEmailExists is returned when an attempt is made to use an email that already exists.
	ErrEmailExists        = errors.New("email already in use by another account")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password does not meet the password policy")
	ErrInvalidRole        = errors.New("invalid role")
)

// NewUser carries the fields an admin supplies when creating an account.
type NewUser struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Phone    string      `json:"phone"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role"`
}

// IUserService defines the interface for user-related operations.
type IUserService interface {
	CreateUser(ctx context.Context, in NewUser) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context, role models.Role) ([]models.User, error)
	DeleteUser(ctx context.Context, userID primitive.ObjectID) error
}

// userService implements IUserService.
type userService struct {
	db     *mongo.Database
	policy *auth.PasswordPolicy
}

// NewUserService creates a new UserService.
func NewUserService(database *mongo.Database, cfg *config.Config) (IUserService, error) {
	policy, err := auth.NewPasswordPolicy(cfg.PasswordRegexp)
	if err != nil {
		return nil, err
	}
	return &userService{db: database, policy: policy}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser stores a new account with a bcrypt password hash.
func (s *userService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, in.Role)
	}
	if !s.policy.Allows(in.Password) {
		return nil, ErrWeakPassword
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := db.InsertOne(ctx, s.db.Collection(db.UsersCollection), user.ID, user); err != nil {
		if db.IsMongoDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to insert user %s: %w", user.Email, err)
	}

	log.Printf("User %s created with role %s", user.ID.Hex(), user.Role)
	return user, nil
}

// Authenticate returns the user whose credentials match. Unknown emails and
// wrong passwords produce the same error.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(db.UsersCollection).FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindByID finds a user by ID.
func (s *userService) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.db.Collection(db.UsersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user by ID %s: %w", userID.Hex(), err)
	}
	return &user, nil
}

// ListUsers returns accounts sorted by name, optionally restricted to one role.
func (s *userService) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	q := bson.M{}
	if role != "" {
		q["role"] = role
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cur, err := s.db.Collection(db.UsersCollection).Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// DeleteUser removes an account. Listings the user owns are kept.
func (s *userService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	res, err := s.db.Collection(db.UsersCollection).DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	log.Printf("User %s deleted", userID.Hex())
	return nil
}
