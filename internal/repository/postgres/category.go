package postgres

import (
	"context"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type categoryRepo struct {
	db DBTX
}

func newCategoryRepo(db DBTX) Category {
	return &categoryRepo{
		db: db,
	}
}

func (r *categoryRepo) Create(ctx context.Context, category model.Category, emails []model.CategoryEmail, slack []model.CategorySlack) (*model.Category, error) {
	if category.DefaultEmojis == nil {
		category.DefaultEmojis = []string{}
	}
	if category.MetaConfig == nil {
		category.MetaConfig = []model.CategoryMetaConfig{}
	}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO categories(name, slug, color_hex, restricted, default_emojis, meta_config)
			VALUES($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			category.Name,
			category.Slug,
			category.ColorHex,
			category.Restricted,
			category.DefaultEmojis,
			category.MetaConfig,
		).Scan(&category.ID, &category.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}

		batch := &pgx.Batch{}
		for _, email := range emails {
			batch.Queue("INSERT INTO category_emails(category_id, recipient) VALUES($1, $2)", category.ID, email.To)
		}
		for _, s := range slack {
			batch.Queue("INSERT INTO category_slacks(category_id, webhook_url) VALUES($1, $2)", category.ID, s.WebhookURL)
		}
		if batch.Len() == 0 {
			return nil
		}

		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return scanCategory(r.db.QueryRow(
		ctx,
		`SELECT id, name, slug, color_hex, restricted, default_emojis, meta_config, created_at
		FROM categories
		WHERE id = $1`,
		id,
	))
}

func (r *categoryRepo) FindMany(ctx context.Context, includeRestricted bool) ([]*model.Category, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, slug, color_hex, restricted, default_emojis, meta_config, created_at
		FROM categories
		WHERE $1 OR restricted = FALSE
		ORDER BY name`,
		includeRestricted,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepo) FindEmailConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryEmail, error) {
	rows, err := r.db.Query(ctx, "SELECT id, category_id, recipient FROM category_emails WHERE category_id = $1", categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*model.CategoryEmail
	for rows.Next() {
		var config model.CategoryEmail
		if err := rows.Scan(&config.ID, &config.CategoryID, &config.To); err != nil {
			return nil, err
		}
		configs = append(configs, &config)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return configs, nil
}

func (r *categoryRepo) FindSlackConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategorySlack, error) {
	rows, err := r.db.Query(ctx, "SELECT id, category_id, webhook_url FROM category_slacks WHERE category_id = $1", categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*model.CategorySlack
	for rows.Next() {
		var config model.CategorySlack
		if err := rows.Scan(&config.ID, &config.CategoryID, &config.WebhookURL); err != nil {
			return nil, err
		}
		configs = append(configs, &config)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return configs, nil
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	var category model.Category
	if err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.ColorHex,
		&category.Restricted,
		&category.DefaultEmojis,
		&category.MetaConfig,
		&category.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &category, nil
}
