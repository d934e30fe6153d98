package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type RegistrantStatus string

const (
	StatusInitial  RegistrantStatus = "initial"
	StatusStep1    RegistrantStatus = "step_1"
	StatusStep2    RegistrantStatus = "step_2"
	StatusStep3    RegistrantStatus = "step_3"
	StatusStep4    RegistrantStatus = "step_4"
	StatusStep5    RegistrantStatus = "step_5"
	StatusComplete RegistrantStatus = "complete"
)

type Registrant struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	PartnerID int64            `db:"partner_id" json:"partner_id"`
	Status    RegistrantStatus `db:"status" json:"status"`
	Locale    string           `db:"locale" json:"locale"`

	DateOfBirth sql.NullTime   `db:"date_of_birth" json:"date_of_birth"`
	NameTitle   sql.NullString `db:"name_title" json:"name_title"`
	FirstName   sql.NullString `db:"first_name" json:"first_name"`
	MiddleName  sql.NullString `db:"middle_name" json:"middle_name"`
	LastName    sql.NullString `db:"last_name" json:"last_name"`
	NameSuffix  sql.NullString `db:"name_suffix" json:"name_suffix"`

	UsCitizen         bool `db:"us_citizen" json:"us_citizen"`
	FirstRegistration bool `db:"first_registration" json:"first_registration"`

	HomeAddress sql.NullString `db:"home_address" json:"home_address"`
	HomeUnit    sql.NullString `db:"home_unit" json:"home_unit"`
	HomeCity    sql.NullString `db:"home_city" json:"home_city"`
	HomeStateID sql.NullInt64  `db:"home_state_id" json:"home_state_id"`
	HomeZipCode sql.NullString `db:"home_zip_code" json:"home_zip_code"`

	HasMailingAddress bool           `db:"has_mailing_address" json:"has_mailing_address"`
	MailingAddress    sql.NullString `db:"mailing_address" json:"mailing_address"`
	MailingUnit       sql.NullString `db:"mailing_unit" json:"mailing_unit"`
	MailingCity       sql.NullString `db:"mailing_city" json:"mailing_city"`
	MailingStateID    sql.NullInt64  `db:"mailing_state_id" json:"mailing_state_id"`
	MailingZipCode    sql.NullString `db:"mailing_zip_code" json:"mailing_zip_code"`

	PrevStateID   sql.NullInt64  `db:"prev_state_id" json:"prev_state_id"`
	StateIDNumber sql.NullString `db:"state_id_number" json:"state_id_number"`

	Race  sql.NullString `db:"race" json:"race"`
	Party sql.NullString `db:"party" json:"party"`

	Phone        sql.NullString `db:"phone" json:"phone"`
	PhoneType    sql.NullString `db:"phone_type" json:"phone_type"`
	EmailAddress sql.NullString `db:"email_address" json:"email_address"`

	OptInEmail        bool `db:"opt_in_email" json:"opt_in_email"`
	OptInSms          bool `db:"opt_in_sms" json:"opt_in_sms"`
	Volunteer         bool `db:"volunteer" json:"volunteer"`
	PartnerOptInEmail bool `db:"partner_opt_in_email" json:"partner_opt_in_email"`
	PartnerOptInSms   bool `db:"partner_opt_in_sms" json:"partner_opt_in_sms"`
	PartnerVolunteer  bool `db:"partner_volunteer" json:"partner_volunteer"`

	OriginalSurveyQuestion1 sql.NullString `db:"original_survey_question_1" json:"original_survey_question_1"`
	SurveyAnswer1           sql.NullString `db:"survey_answer_1" json:"survey_answer_1"`
	OriginalSurveyQuestion2 sql.NullString `db:"original_survey_question_2" json:"original_survey_question_2"`
	SurveyAnswer2           sql.NullString `db:"survey_answer_2" json:"survey_answer_2"`

	TrackingSource sql.NullString `db:"tracking_source" json:"tracking_source"`
	TrackingID     sql.NullString `db:"tracking_id" json:"tracking_id"`

	PdfPath sql.NullString `db:"pdf_path" json:"pdf_path,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
