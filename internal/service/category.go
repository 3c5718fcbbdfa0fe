package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/internal/repository/postgres"
	"github.com/BloggingApp/vanguard/pkg/emoji"
	"go.uber.org/zap"
)

type categoryService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCategoryService(logger *zap.Logger, repo *repository.Repository) Category {
	return &categoryService{
		logger: logger,
		repo:   repo,
	}
}

func (s *categoryService) Create(ctx context.Context, actor model.User, req dto.CreateCategoryRequest) (*model.Category, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}

	verr := NewValidationError()
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "name is required")
	}
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if slug == "" {
		verr.Add("slug", "slug is required")
	}
	if !emoji.AllEmoji(req.DefaultEmojis) {
		verr.Add("default_emojis", "every default emoji must be an emoji")
	}
	seen := make(map[string]bool, len(req.MetaConfig))
	for _, field := range req.MetaConfig {
		if seen[field.Name] {
			verr.Add("meta_config", "duplicate field "+field.Name)
		}
		seen[field.Name] = true
	}
	if verr.Any() {
		return nil, verr
	}

	category := model.Category{
		Name:          strings.TrimSpace(req.Name),
		Slug:          slug,
		ColorHex:      strings.ToLower(req.ColorHex),
		Restricted:    req.Restricted,
		DefaultEmojis: req.DefaultEmojis,
		MetaConfig:    req.MetaConfig,
	}

	emails := make([]model.CategoryEmail, 0, len(req.Emails))
	for _, to := range req.Emails {
		emails = append(emails, model.CategoryEmail{To: to})
	}
	slacks := make([]model.CategorySlack, 0, len(req.SlackWebhooks))
	for _, url := range req.SlackWebhooks {
		slacks = append(slacks, model.CategorySlack{WebhookURL: url})
	}

	createdCategory, err := s.repo.Postgres.Category.Create(ctx, category, emails, slacks)
	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			verr.Add("slug", "slug is already taken")
			return nil, verr
		}

		s.logger.Sugar().Errorf("failed to create category(%s): %s", slug, err.Error())
		return nil, ErrInternal
	}

	return createdCategory, nil
}

// FindMany lists the categories actor may post in.
func (s *categoryService) FindMany(ctx context.Context, actor model.User) ([]*model.Category, error) {
	categories, err := s.repo.Postgres.Category.FindMany(ctx, actor.Admin || actor.CanPostRestricted)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find categories: %s", err.Error())
		return nil, ErrInternal
	}

	if categories == nil {
		categories = []*model.Category{}
	}

	return categories, nil
}
