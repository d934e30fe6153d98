package domain

import (
	"strings"
	"time"
)

// DefaultPartnerID owns registrations submitted without an explicit partner.
const DefaultPartnerID = 1

type Partner struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	URL      string `db:"url" json:"url"`
	Address  string `db:"address" json:"address"`
	City     string `db:"city" json:"city"`
	StateID  int64  `db:"state_id" json:"state_id"`
	ZipCode  string `db:"zip_code" json:"zip_code"`
	Phone    string `db:"phone" json:"phone"`
	Email    string `db:"email" json:"email"`
	Username string `db:"username" json:"username"`
	APIKey   string `db:"api_key" json:"-"`

	SurveyQuestion1En string `db:"survey_question_1_en" json:"survey_question_1_en"`
	SurveyQuestion1Es string `db:"survey_question_1_es" json:"survey_question_1_es"`
	SurveyQuestion2En string `db:"survey_question_2_en" json:"survey_question_2_en"`
	SurveyQuestion2Es string `db:"survey_question_2_es" json:"survey_question_2_es"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// SurveyQuestion returns the partner's question text for the given slot in the
// registrant's locale. Unknown slots and locales yield an empty string.
func (p *Partner) SurveyQuestion(slot int, locale string) string {
	switch {
	case slot == 1 && locale == "en":
		return p.SurveyQuestion1En
	case slot == 1 && locale == "es":
		return p.SurveyQuestion1Es
	case slot == 2 && locale == "en":
		return p.SurveyQuestion2En
	case slot == 2 && locale == "es":
		return p.SurveyQuestion2Es
	}
	return ""
}

// NormalizePhone rewrites a ten digit phone number as ###-###-####.
// Anything else is left untouched for validation to reject.
func (p *Partner) NormalizePhone() {
	var digits strings.Builder
	for _, r := range p.Phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 10 {
		return
	}
	d := digits.String()
	p.Phone = d[0:3] + "-" + d[3:6] + "-" + d[6:10]
}
