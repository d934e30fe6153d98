package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/voterworks/backend/internal/db"
	"github.com/voterworks/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type partnerRepository struct {
	db *sqlx.DB
}

func newPartnerRepository(db *sqlx.DB) *partnerRepository {
	return &partnerRepository{
		db: db,
	}
}

const partnerColumns = `id, name, url, address, city, state_id, zip_code, phone, email, username,
	api_key, survey_question_1_en, survey_question_1_es, survey_question_2_en,
	survey_question_2_es, created_at, updated_at, deleted_at`

func (r *partnerRepository) Create(ctx context.Context, partner *domain.Partner) error {
	const query = `
	INSERT INTO partner
	(name, url, address, city, state_id, zip_code, phone, email, username, api_key,
	 survey_question_1_en, survey_question_1_es, survey_question_2_en, survey_question_2_es)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		partner.Name,
		partner.URL,
		partner.Address,
		partner.City,
		partner.StateID,
		partner.ZipCode,
		partner.Phone,
		partner.Email,
		partner.Username,
		partner.APIKey,
		partner.SurveyQuestion1En,
		partner.SurveyQuestion1Es,
		partner.SurveyQuestion2En,
		partner.SurveyQuestion2Es,
	)

	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert partner: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id failed: %w", err)
	}
	partner.ID = id

	return nil
}

func (r *partnerRepository) GetOneByID(ctx context.Context, id int64) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partner WHERE id = ? AND deleted_at IS NULL;`

	var partner domain.Partner
	if err := r.db.GetContext(ctx, &partner, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from partner by id failed: %w", err)
	}
	return &partner, nil
}

func (r *partnerRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partner WHERE api_key = ? AND deleted_at IS NULL;`

	var partner domain.Partner
	if err := r.db.GetContext(ctx, &partner, query, apiKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from partner by api key failed: %w", err)
	}
	return &partner, nil
}
