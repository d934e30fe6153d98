package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/voterworks/backend/internal/domain"
	"github.com/voterworks/backend/internal/repository"

	"github.com/google/uuid"
)

// supportedLocales is the language whitelist for incoming registrations. The
// set is part of the partner API contract, not a deployment knob.
var supportedLocales = map[string]struct{}{
	"en": {},
	"es": {},
}

// passthroughFields lists the partner-facing field names that map onto
// registrant attributes without renaming. Together with dataRenames and the
// state fields they form the full vocabulary partners may send; anything else
// is rejected before validation starts.
var passthroughFields = map[string]struct{}{
	"partner_id":           {},
	"date_of_birth":        {},
	"name_title":           {},
	"first_name":           {},
	"middle_name":          {},
	"last_name":            {},
	"name_suffix":          {},
	"us_citizen":           {},
	"first_registration":   {},
	"home_address":         {},
	"home_unit":            {},
	"home_city":            {},
	"home_zip_code":        {},
	"has_mailing_address":  {},
	"mailing_address":      {},
	"mailing_unit":         {},
	"mailing_city":         {},
	"mailing_zip_code":     {},
	"race":                 {},
	"party":                {},
	"phone":                {},
	"phone_type":           {},
	"email_address":        {},
	"opt_in_email":         {},
	"opt_in_sms":           {},
	"partner_opt_in_email": {},
	"partner_opt_in_sms":   {},
	"survey_answer_1":      {},
	"survey_answer_2":      {},
}

// requiredAttrs are checked in this exact order; only the first missing field
// is reported per call.
var requiredAttrs = []string{
	"locale",
	"date_of_birth",
	"first_name",
	"last_name",
	"home_address",
	"home_city",
	"home_state_id",
	"home_zip_code",
}

type registrationService struct {
	registrantRepository repository.Registrants
	partners             Partners
	geoStates            *domain.GeoStates
	dispatcher           CompletionDispatcher
}

func newRegistrationService(
	registrantRepository repository.Registrants,
	partners Partners,
	geoStates *domain.GeoStates,
	dispatcher CompletionDispatcher,
) *registrationService {
	return &registrationService{
		registrantRepository: registrantRepository,
		partners:             partners,
		geoStates:            geoStates,
		dispatcher:           dispatcher,
	}
}

// CreateRecord admits one registration. The check order is part of the API
// contract: unknown fields, then language support, then survey cross-field
// constraints, then field presence. Nothing is persisted until every check has
// passed, and the completion dispatch only fires after a successful insert.
func (s *registrationService) CreateRecord(ctx context.Context, data map[string]any) (*domain.Registrant, error) {
	if err := checkKnownFields(data); err != nil {
		return nil, err
	}

	attrs := dataToAttrs(data, s.geoStates)

	if err := checkLocale(attrs); err != nil {
		return nil, err
	}
	if err := checkSurveySlots(attrs); err != nil {
		return nil, err
	}
	if err := checkRequired(attrs); err != nil {
		return nil, err
	}

	registrant, err := buildRegistrant(attrs)
	if err != nil {
		return nil, err
	}

	if err := s.registrantRepository.Create(ctx, registrant); err != nil {
		return nil, fmt.Errorf("create registrant failed: %w", err)
	}

	if registrant.Status == domain.StatusComplete {
		if err := s.dispatcher.DispatchCompleteRegistration(ctx, registrant.ID); err != nil {
			return nil, fmt.Errorf("dispatch complete registration failed: %w", err)
		}
	}

	return registrant, nil
}

// FindRecords authenticates the partner and returns its registrants, filtered
// and projected into the partner-facing shape. Registrants of other partners
// are never visible, whatever the filters say.
func (s *registrationService) FindRecords(ctx context.Context, partnerID int64, apiKey string, filters repository.RegistrantFilters) ([]RegistrantRecord, error) {
	partner, err := s.partners.Authenticate(ctx, partnerID, apiKey)
	if err != nil {
		return nil, err
	}

	registrants, err := s.registrantRepository.FindByPartner(ctx, partner.ID, filters)
	if err != nil {
		return nil, fmt.Errorf("find registrants failed: %w", err)
	}

	records := make([]RegistrantRecord, 0, len(registrants))
	for i := range registrants {
		records = append(records, projectRegistrant(&registrants[i], partner))
	}
	return records, nil
}

func checkKnownFields(data map[string]any) error {
	var unknown []string
	for key := range data {
		if _, ok := dataRenames[key]; ok {
			continue
		}
		if _, ok := stateAttrPrefix(key); ok {
			continue
		}
		if _, ok := passthroughFields[key]; ok {
			continue
		}
		unknown = append(unknown, key)
	}
	if len(unknown) == 0 {
		return nil
	}
	// Deterministic pick: map order must not leak into the API.
	sort.Strings(unknown)
	return &UnknownAttributeError{Attr: unknown[0]}
}

func checkLocale(attrs map[string]any) error {
	value, ok := attrs["locale"]
	if !ok || blank(value) {
		return nil // absence is a presence failure, reported later as "lang"
	}
	locale := asString(value)
	if _, ok := supportedLocales[locale]; !ok {
		return &UnsupportedLanguageError{Locale: locale}
	}
	return nil
}

func checkSurveySlots(attrs map[string]any) error {
	for slot := 1; slot <= 2; slot++ {
		answer := attrs[fmt.Sprintf("survey_answer_%d", slot)]
		question := attrs[fmt.Sprintf("original_survey_question_%d", slot)]
		if !blank(answer) && blank(question) {
			return &SurveyQuestionError{Slot: slot}
		}
	}
	return nil
}

func checkRequired(attrs map[string]any) error {
	for _, attr := range requiredAttrs {
		if blank(attrs[attr]) {
			return &ValidationError{Field: externalFieldName(attr), Message: "Required"}
		}
	}
	return nil
}

var dateLayouts = []string{"2006-01-02", "01/02/2006"}

func parseDate(value any) (time.Time, bool) {
	if t, ok := value.(time.Time); ok {
		return t, true
	}
	s := asString(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// buildRegistrant coerces validated attributes onto a fresh registrant. Format
// failures surface as ValidationError under the partner-facing field name.
func buildRegistrant(attrs map[string]any) (*domain.Registrant, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate registrant id failed: %w", err)
	}

	registrant := &domain.Registrant{
		ID:        id,
		PartnerID: domain.DefaultPartnerID,
		Status:    domain.StatusComplete,
	}

	setString := func(target *sql.NullString, value any) {
		s := asString(value)
		*target = sql.NullString{String: s, Valid: s != ""}
	}
	setInt := func(target *sql.NullInt64, attr string, value any) error {
		n, ok := asInt64(value)
		if !ok {
			return &ValidationError{Field: externalFieldName(attr), Message: "Invalid"}
		}
		*target = sql.NullInt64{Int64: n, Valid: true}
		return nil
	}
	setBool := func(target *bool, attr string, value any) error {
		b, ok := asBool(value)
		if !ok {
			return &ValidationError{Field: externalFieldName(attr), Message: "Invalid"}
		}
		*target = b
		return nil
	}

	for attr, value := range attrs {
		var err error
		switch attr {
		case "partner_id":
			n, ok := asInt64(value)
			if !ok || n <= 0 {
				err = &ValidationError{Field: "partner_id", Message: "Invalid"}
				break
			}
			registrant.PartnerID = n
		case "locale":
			registrant.Locale = asString(value)
		case "date_of_birth":
			t, ok := parseDate(value)
			if !ok {
				err = &ValidationError{Field: "date_of_birth", Message: "Invalid"}
				break
			}
			registrant.DateOfBirth = sql.NullTime{Time: t, Valid: true}
		case "name_title":
			setString(&registrant.NameTitle, value)
		case "first_name":
			setString(&registrant.FirstName, value)
		case "middle_name":
			setString(&registrant.MiddleName, value)
		case "last_name":
			setString(&registrant.LastName, value)
		case "name_suffix":
			setString(&registrant.NameSuffix, value)
		case "us_citizen":
			err = setBool(&registrant.UsCitizen, attr, value)
		case "first_registration":
			err = setBool(&registrant.FirstRegistration, attr, value)
		case "home_address":
			setString(&registrant.HomeAddress, value)
		case "home_unit":
			setString(&registrant.HomeUnit, value)
		case "home_city":
			setString(&registrant.HomeCity, value)
		case "home_state_id":
			err = setInt(&registrant.HomeStateID, attr, value)
		case "home_zip_code":
			setString(&registrant.HomeZipCode, value)
		case "has_mailing_address":
			err = setBool(&registrant.HasMailingAddress, attr, value)
		case "mailing_address":
			setString(&registrant.MailingAddress, value)
		case "mailing_unit":
			setString(&registrant.MailingUnit, value)
		case "mailing_city":
			setString(&registrant.MailingCity, value)
		case "mailing_state_id":
			err = setInt(&registrant.MailingStateID, attr, value)
		case "mailing_zip_code":
			setString(&registrant.MailingZipCode, value)
		case "prev_state_id":
			err = setInt(&registrant.PrevStateID, attr, value)
		case "state_id_number":
			setString(&registrant.StateIDNumber, value)
		case "race":
			setString(&registrant.Race, value)
		case "party":
			setString(&registrant.Party, value)
		case "phone":
			setString(&registrant.Phone, value)
		case "phone_type":
			setString(&registrant.PhoneType, value)
		case "email_address":
			setString(&registrant.EmailAddress, value)
		case "opt_in_email":
			err = setBool(&registrant.OptInEmail, attr, value)
		case "opt_in_sms":
			err = setBool(&registrant.OptInSms, attr, value)
		case "volunteer":
			err = setBool(&registrant.Volunteer, attr, value)
		case "partner_opt_in_email":
			err = setBool(&registrant.PartnerOptInEmail, attr, value)
		case "partner_opt_in_sms":
			err = setBool(&registrant.PartnerOptInSms, attr, value)
		case "partner_volunteer":
			err = setBool(&registrant.PartnerVolunteer, attr, value)
		case "original_survey_question_1":
			setString(&registrant.OriginalSurveyQuestion1, value)
		case "survey_answer_1":
			setString(&registrant.SurveyAnswer1, value)
		case "original_survey_question_2":
			setString(&registrant.OriginalSurveyQuestion2, value)
		case "survey_answer_2":
			setString(&registrant.SurveyAnswer2, value)
		case "tracking_source":
			setString(&registrant.TrackingSource, value)
		case "tracking_id":
			setString(&registrant.TrackingID, value)
		default:
			err = &UnknownAttributeError{Attr: attr}
		}
		if err != nil {
			return nil, err
		}
	}

	return registrant, nil
}

// timeLayout renders registrant timestamps in query responses.
const timeLayout = "2006-01-02 15:04:05"

// RegistrantRecord is the partner-facing projection of one registrant. The
// field order is fixed; partners consume it positionally in exports.
type RegistrantRecord struct {
	Status                string `json:"status"`
	CreateTime            string `json:"create_time"`
	CompleteTime          string `json:"complete_time"`
	Lang                  string `json:"lang"`
	FirstReg              bool   `json:"first_reg"`
	HomeZipCode           string `json:"home_zip_code"`
	UsCitizen             bool   `json:"us_citizen"`
	NameTitle             string `json:"name_title"`
	FirstName             string `json:"first_name"`
	MiddleName            string `json:"middle_name"`
	LastName              string `json:"last_name"`
	NameSuffix            string `json:"name_suffix"`
	HomeAddress           string `json:"home_address"`
	HomeUnit              string `json:"home_unit"`
	HomeCity              string `json:"home_city"`
	HomeStateID           int64  `json:"home_state_id"`
	HasMailingAddress     bool   `json:"has_mailing_address"`
	MailingAddress        string `json:"mailing_address"`
	MailingUnit           string `json:"mailing_unit"`
	MailingCity           string `json:"mailing_city"`
	MailingStateID        int64  `json:"mailing_state_id"`
	MailingZipCode        string `json:"mailing_zip_code"`
	Race                  string `json:"race"`
	Party                 string `json:"party"`
	Phone                 string `json:"phone"`
	PhoneType             string `json:"phone_type"`
	EmailAddress          string `json:"email_address"`
	OptInEmail            bool   `json:"opt_in_email"`
	OptInSms              bool   `json:"opt_in_sms"`
	OptInVolunteer        bool   `json:"opt_in_volunteer"`
	PartnerOptInEmail     bool   `json:"partner_opt_in_email"`
	PartnerOptInSms       bool   `json:"partner_opt_in_sms"`
	PartnerOptInVolunteer bool   `json:"partner_opt_in_volunteer"`
	SurveyQuestion1       string `json:"survey_question_1"`
	SurveyAnswer1         string `json:"survey_answer_1"`
	SurveyQuestion2       string `json:"survey_question_2"`
	SurveyAnswer2         string `json:"survey_answer_2"`
}

// projectRegistrant renders one registrant for its owning partner. Survey
// question text comes from the partner's locale-specific configuration, not
// from the raw question the registrant was shown at signup.
func projectRegistrant(registrant *domain.Registrant, partner *domain.Partner) RegistrantRecord {
	return RegistrantRecord{
		Status:                string(registrant.Status),
		CreateTime:            registrant.CreatedAt.Format(timeLayout),
		CompleteTime:          registrant.UpdatedAt.Format(timeLayout),
		Lang:                  registrant.Locale,
		FirstReg:              registrant.FirstRegistration,
		HomeZipCode:           registrant.HomeZipCode.String,
		UsCitizen:             registrant.UsCitizen,
		NameTitle:             registrant.NameTitle.String,
		FirstName:             registrant.FirstName.String,
		MiddleName:            registrant.MiddleName.String,
		LastName:              registrant.LastName.String,
		NameSuffix:            registrant.NameSuffix.String,
		HomeAddress:           registrant.HomeAddress.String,
		HomeUnit:              registrant.HomeUnit.String,
		HomeCity:              registrant.HomeCity.String,
		HomeStateID:           registrant.HomeStateID.Int64,
		HasMailingAddress:     registrant.HasMailingAddress,
		MailingAddress:        registrant.MailingAddress.String,
		MailingUnit:           registrant.MailingUnit.String,
		MailingCity:           registrant.MailingCity.String,
		MailingStateID:        registrant.MailingStateID.Int64,
		MailingZipCode:        registrant.MailingZipCode.String,
		Race:                  registrant.Race.String,
		Party:                 registrant.Party.String,
		Phone:                 registrant.Phone.String,
		PhoneType:             registrant.PhoneType.String,
		EmailAddress:          registrant.EmailAddress.String,
		OptInEmail:            registrant.OptInEmail,
		OptInSms:              registrant.OptInSms,
		OptInVolunteer:        registrant.Volunteer,
		PartnerOptInEmail:     registrant.PartnerOptInEmail,
		PartnerOptInSms:       registrant.PartnerOptInSms,
		PartnerOptInVolunteer: registrant.PartnerVolunteer,
		SurveyQuestion1:       partner.SurveyQuestion(1, registrant.Locale),
		SurveyAnswer1:         registrant.SurveyAnswer1.String,
		SurveyQuestion2:       partner.SurveyQuestion(2, registrant.Locale),
		SurveyAnswer2:         registrant.SurveyAnswer2.String,
	}
}
