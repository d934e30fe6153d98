package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/voterworks/backend/internal/db"
	"github.com/voterworks/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type registrantRepository struct {
	db *sqlx.DB
}

func newRegistrantRepository(db *sqlx.DB) *registrantRepository {
	return &registrantRepository{
		db: db,
	}
}

const registrantColumns = `id, partner_id, status, locale, date_of_birth, name_title, first_name,
	middle_name, last_name, name_suffix, us_citizen, first_registration, home_address, home_unit,
	home_city, home_state_id, home_zip_code, has_mailing_address, mailing_address, mailing_unit,
	mailing_city, mailing_state_id, mailing_zip_code, prev_state_id, state_id_number, race, party,
	phone, phone_type, email_address, opt_in_email, opt_in_sms, volunteer, partner_opt_in_email,
	partner_opt_in_sms, partner_volunteer, original_survey_question_1, survey_answer_1,
	original_survey_question_2, survey_answer_2, tracking_source, tracking_id, pdf_path,
	created_at, updated_at`

func (r *registrantRepository) Create(ctx context.Context, registrant *domain.Registrant) error {
	const query = `
	INSERT INTO registrant
	(id, partner_id, status, locale, date_of_birth, name_title, first_name, middle_name, last_name,
	 name_suffix, us_citizen, first_registration, home_address, home_unit, home_city, home_state_id,
	 home_zip_code, has_mailing_address, mailing_address, mailing_unit, mailing_city,
	 mailing_state_id, mailing_zip_code, prev_state_id, state_id_number, race, party, phone,
	 phone_type, email_address, opt_in_email, opt_in_sms, volunteer, partner_opt_in_email,
	 partner_opt_in_sms, partner_volunteer, original_survey_question_1, survey_answer_1,
	 original_survey_question_2, survey_answer_2, tracking_source, tracking_id)
	VALUES(uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	 ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		registrant.ID,
		registrant.PartnerID,
		registrant.Status,
		registrant.Locale,
		registrant.DateOfBirth,
		registrant.NameTitle,
		registrant.FirstName,
		registrant.MiddleName,
		registrant.LastName,
		registrant.NameSuffix,
		registrant.UsCitizen,
		registrant.FirstRegistration,
		registrant.HomeAddress,
		registrant.HomeUnit,
		registrant.HomeCity,
		registrant.HomeStateID,
		registrant.HomeZipCode,
		registrant.HasMailingAddress,
		registrant.MailingAddress,
		registrant.MailingUnit,
		registrant.MailingCity,
		registrant.MailingStateID,
		registrant.MailingZipCode,
		registrant.PrevStateID,
		registrant.StateIDNumber,
		registrant.Race,
		registrant.Party,
		registrant.Phone,
		registrant.PhoneType,
		registrant.EmailAddress,
		registrant.OptInEmail,
		registrant.OptInSms,
		registrant.Volunteer,
		registrant.PartnerOptInEmail,
		registrant.PartnerOptInSms,
		registrant.PartnerVolunteer,
		registrant.OriginalSurveyQuestion1,
		registrant.SurveyAnswer1,
		registrant.OriginalSurveyQuestion2,
		registrant.SurveyAnswer2,
		registrant.TrackingSource,
		registrant.TrackingID,
	)

	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert registrant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *registrantRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Registrant, error) {
	query := `SELECT ` + registrantColumns + ` FROM registrant WHERE id = uuid_to_bin(?);`

	var registrant domain.Registrant
	if err := r.db.GetContext(ctx, &registrant, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from registrant by id failed: %w", err)
	}
	return &registrant, nil
}

// FindByPartner lists a partner's registrants, oldest first. The ordering is
// part of the API contract: repeated identical queries return identical lists.
func (r *registrantRepository) FindByPartner(ctx context.Context, partnerID int64, filters RegistrantFilters) ([]domain.Registrant, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + registrantColumns + ` FROM registrant WHERE partner_id = ?`)
	args := []any{partnerID}

	if filters.Email != nil {
		sb.WriteString(` AND email_address = ?`)
		args = append(args, *filters.Email)
	}
	if filters.Since != nil {
		sb.WriteString(` AND created_at >= ?`)
		args = append(args, *filters.Since)
	}
	sb.WriteString(` ORDER BY created_at ASC, id ASC;`)

	var registrants []domain.Registrant
	if err := r.db.SelectContext(ctx, &registrants, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("select registrants by partner failed: %w", err)
	}
	return registrants, nil
}

func (r *registrantRepository) UpdatePdfPath(ctx context.Context, id uuid.UUID, pdfPath string) error {
	const query = `
	UPDATE registrant SET pdf_path = ? WHERE id = uuid_to_bin(?);
	`
	_, err := r.db.ExecContext(ctx, query, pdfPath, id)
	if err != nil {
		return fmt.Errorf("update registrant pdf path failed: %w", err)
	}
	return nil
}
