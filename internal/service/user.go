package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const userCacheTTL = time.Hour

var errInvalidUserUpdate = errors.New("invalid user update message")

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) *userService {
	return &userService{
		logger: logger,
		repo:   repo,
	}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	cachedUser, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(id.String()))
	if err == nil && cachedUser != nil {
		return cachedUser, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to get user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserKey(id.String()), user, userCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

// FindOrCreate returns the stored user for the identity carried by an access
// token, registering it on first sight.
func (s *userService) FindOrCreate(ctx context.Context, claimed model.User) (*model.User, error) {
	user, err := s.FindByID(ctx, claimed.ID)
	if err == nil {
		return user, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	claimed.Admin = false
	claimed.CanPostRestricted = false
	if err := s.repo.Postgres.User.Upsert(ctx, claimed); err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s): %s", claimed.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.FindByID(ctx, claimed.ID)
}

// Update applies the changeset on behalf of actor. Users may edit their own
// profile; only admins may edit others or touch admin flags.
func (s *userService) Update(ctx context.Context, actor model.User, id uuid.UUID, changeset model.UserChangeset) (*model.User, error) {
	if !actor.Admin && actor.ID != id {
		return nil, ErrForbidden
	}

	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.update(ctx, id, changeset.Updates(actor)); err != nil {
		return nil, err
	}

	return s.FindByID(ctx, id)
}

func (s *userService) update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if err := s.repo.Postgres.User.Update(ctx, id, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update user(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.UserKey(id.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s) from redis: %s", id.String(), err.Error())
	}

	return nil
}

// applyUserUpdate handles one identity-provider profile update. Only profile
// fields are accepted; admin flags are managed locally.
func (s *userService) applyUserUpdate(ctx context.Context, body []byte) error {
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return errInvalidUserUpdate
	}

	userIDString, ok := data["user_id"].(string)
	if !ok {
		return errInvalidUserUpdate
	}
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		return errInvalidUserUpdate
	}

	updates := make(map[string]interface{})
	for _, field := range []string{"email", "name", "picture"} {
		if value, ok := data[field]; ok {
			updates[field] = value
		}
	}

	return s.update(ctx, userID, updates)
}

func (s *userService) consumeUserUpdates(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			err := s.applyUserUpdate(ctx, msg.Body)
			switch {
			case err == nil:
				msg.Ack(false)
			case errors.Is(err, errInvalidUserUpdate):
				s.logger.Sugar().Errorf("failed to apply user update: %s", err.Error())
				msg.Nack(false, false)
			default:
				msg.Nack(false, true)
			}
		}
	}
}
