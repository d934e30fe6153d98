package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/voterworks/backend/internal/domain"
	"github.com/voterworks/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationFixture struct {
	registrants *fakeRegistrantRepository
	partnerRepo *fakePartnerRepository
	partners    *partnerService
	dispatcher  *fakeDispatcher
	service     *registrationService
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()

	registrants := newFakeRegistrantRepository()
	partnerRepo := newFakePartnerRepository()
	partners := newPartnerService(partnerRepo)
	dispatcher := &fakeDispatcher{}

	// The default partner always exists in a provisioned database.
	require.NoError(t, partnerRepo.Create(context.Background(), &domain.Partner{
		Name:              "Default Partner",
		APIKey:            "default-key",
		SurveyQuestion1En: "What is your favorite color?",
		SurveyQuestion1Es: "¿Cuál es tu color favorito?",
		SurveyQuestion2En: "Do you have a pet?",
		SurveyQuestion2Es: "¿Tienes una mascota?",
	}))

	return &registrationFixture{
		registrants: registrants,
		partnerRepo: partnerRepo,
		partners:    partners,
		dispatcher:  dispatcher,
		service:     newRegistrationService(registrants, partners, testGeoStates(), dispatcher),
	}
}

func maximalData() map[string]any {
	return map[string]any{
		"lang":                     "en",
		"date_of_birth":            "1980-06-15",
		"name_title":               "Mr.",
		"first_name":               "John",
		"middle_name":              "Quincy",
		"last_name":                "Public",
		"name_suffix":              "Jr.",
		"us_citizen":               true,
		"first_registration":       true,
		"home_address":             "123 Civic Center Plaza",
		"home_unit":                "Apt 4",
		"home_city":                "New York",
		"home_state":               "NY",
		"home_zip_code":            "10001",
		"has_mailing_address":      true,
		"mailing_address":          "PO Box 99",
		"mailing_unit":             "",
		"mailing_city":             "Newark",
		"mailing_state":            "nj",
		"mailing_zip_code":         "07101",
		"prev_state":               "CA",
		"id_number":                "NY-123-456",
		"race":                     "Decline to State",
		"party":                    "None",
		"phone":                    "212-555-0101",
		"phone_type":               "mobile",
		"email_address":            "john@example.com",
		"opt_in_email":             true,
		"opt_in_sms":               false,
		"opt_in_volunteer":         true,
		"partner_opt_in_email":     true,
		"partner_opt_in_sms":       false,
		"partner_opt_in_volunteer": false,
		"survey_question_1":        "What is your favorite color?",
		"survey_answer_1":          "Blue",
		"survey_question_2":        "Do you have a pet?",
		"survey_answer_2":          "Yes",
		"source_tracking_id":       "canvass-2026",
		"partner_tracking_id":      "track-42",
	}
}

func TestCreateRecord_UnsupportedLanguage(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.CreateRecord(context.Background(), map[string]any{"lang": "unknown"})

	var unsupported *UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "unknown", unsupported.Locale)
}

func TestCreateRecord_UnsupportedLanguageWinsOverOtherFailures(t *testing.T) {
	f := newRegistrationFixture(t)

	// Everything else about this record is bad too; the language check still
	// reports first.
	_, err := f.service.CreateRecord(context.Background(), map[string]any{
		"lang":          "ex",
		"home_state_id": 1,
	})

	var unsupported *UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ex", unsupported.Locale)
}

func TestCreateRecord_UnknownField(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.CreateRecord(context.Background(), map[string]any{
		"lang":    "en",
		"unknown": "field",
	})

	var unknown *UnknownAttributeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "unknown", unknown.Attr)
	assert.Equal(t, "unknown attribute: unknown", unknown.Error())
}

func TestCreateRecord_InternalAttributeNamesAreNotAccepted(t *testing.T) {
	f := newRegistrationFixture(t)

	// The internal column name; partners must send id_number instead.
	_, err := f.service.CreateRecord(context.Background(), map[string]any{
		"lang":            "en",
		"state_id_number": "1234",
	})

	var unknown *UnknownAttributeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "unknown attribute: state_id_number", unknown.Error())
}

func TestCreateRecord_UnknownFieldBeatsUnsupportedLanguage(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.CreateRecord(context.Background(), map[string]any{
		"lang":    "zz",
		"unknown": "field",
	})

	var unknown *UnknownAttributeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "unknown", unknown.Attr)
}

func TestCreateRecord_UnknownFieldPickIsDeterministic(t *testing.T) {
	f := newRegistrationFixture(t)

	for i := 0; i < 10; i++ {
		_, err := f.service.CreateRecord(context.Background(), map[string]any{
			"zzz_field": 1,
			"aaa_field": 2,
			"mmm_field": 3,
		})

		var unknown *UnknownAttributeError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "aaa_field", unknown.Attr)
	}
}

func TestCreateRecord_MissingLang(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.CreateRecord(context.Background(), map[string]any{"home_state_id": "NY"})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "lang", validation.Field)
	assert.Equal(t, "Required", validation.Message)
}

func TestCreateRecord_MissingDateOfBirth(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.CreateRecord(context.Background(), map[string]any{"lang": "en"})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "date_of_birth", validation.Field)
	assert.Equal(t, "Required", validation.Message)
}

func TestCreateRecord_SurveyAnswerWithoutQuestion(t *testing.T) {
	f := newRegistrationFixture(t)

	for slot := 1; slot <= 2; slot++ {
		_, err := f.service.CreateRecord(context.Background(), map[string]any{
			fmt.Sprintf("survey_answer_%d", slot): "An Answer",
		})

		var survey *SurveyQuestionError
		require.ErrorAs(t, err, &survey, "slot %d", slot)
		assert.Equal(t, slot, survey.Slot)
		assert.Equal(t, fmt.Sprintf("Question %d required when Answer %d provided", slot, slot), survey.Error())
	}
}

func TestCreateRecord_SurveyAnswerWithQuestionIsFine(t *testing.T) {
	f := newRegistrationFixture(t)

	for slot := 1; slot <= 2; slot++ {
		_, err := f.service.CreateRecord(context.Background(), map[string]any{
			fmt.Sprintf("survey_answer_%d", slot):   "An Answer",
			fmt.Sprintf("survey_question_%d", slot): "A Question",
		})

		// Still fails on presence (no lang), but never on the survey rule.
		var survey *SurveyQuestionError
		assert.False(t, errors.As(err, &survey), "slot %d", slot)
	}
}

func TestCreateRecord_StatesPassedAsStrings(t *testing.T) {
	f := newRegistrationFixture(t)

	// Blank state strings drop the field; a numeric string passes through.
	_, err := f.service.CreateRecord(context.Background(), map[string]any{
		"mailing_state": "",
		"home_state":    "1",
		"prev_state":    "",
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "lang", validation.Field)
}

func TestCreateRecord_NothingPersistedOnFailure(t *testing.T) {
	f := newRegistrationFixture(t)

	for _, data := range []map[string]any{
		{"lang": "unknown"},
		{"lang": "en", "bogus": 1},
		{"lang": "en"},
		{"survey_answer_1": "x"},
	} {
		_, err := f.service.CreateRecord(context.Background(), data)
		require.Error(t, err)
	}

	assert.Zero(t, f.registrants.count())
	assert.Zero(t, f.dispatcher.count())
}

func TestCreateRecord_Success(t *testing.T) {
	f := newRegistrationFixture(t)

	registrant, err := f.service.CreateRecord(context.Background(), maximalData())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusComplete, registrant.Status)
	assert.Equal(t, int64(domain.DefaultPartnerID), registrant.PartnerID)
	assert.Equal(t, "en", registrant.Locale)
	assert.Equal(t, int64(33), registrant.HomeStateID.Int64)
	assert.Equal(t, int64(31), registrant.MailingStateID.Int64)
	assert.Equal(t, int64(5), registrant.PrevStateID.Int64)
	assert.Equal(t, "NY-123-456", registrant.StateIDNumber.String)
	assert.True(t, registrant.Volunteer)
	assert.False(t, registrant.PartnerVolunteer)
	assert.Equal(t, "canvass-2026", registrant.TrackingSource.String)
	assert.Equal(t, "track-42", registrant.TrackingID.String)

	assert.Equal(t, 1, f.registrants.count())
	require.Equal(t, 1, f.dispatcher.count())
	assert.Equal(t, registrant.ID, f.dispatcher.dispatched[0])
}

func TestCreateRecord_StorageFailurePropagates(t *testing.T) {
	f := newRegistrationFixture(t)
	storageErr := errors.New("connection reset")
	f.registrants.createErr = storageErr

	_, err := f.service.CreateRecord(context.Background(), maximalData())

	require.ErrorIs(t, err, storageErr)
	assert.Zero(t, f.dispatcher.count())
}

func TestCreateRecord_DispatchFailurePropagates(t *testing.T) {
	f := newRegistrationFixture(t)
	dispatchErr := errors.New("queue unavailable")
	f.dispatcher.err = dispatchErr

	_, err := f.service.CreateRecord(context.Background(), maximalData())

	require.ErrorIs(t, err, dispatchErr)
}

func TestFindRecords_InvalidPartnerID(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.FindRecords(context.Background(), 0, "default-key", repository.RegistrantFilters{})
	assert.ErrorIs(t, err, ErrInvalidPartnerOrAPIKey)

	_, err = f.service.FindRecords(context.Background(), 9999, "default-key", repository.RegistrantFilters{})
	assert.ErrorIs(t, err, ErrInvalidPartnerOrAPIKey)
}

func TestFindRecords_InvalidAPIKey(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.FindRecords(context.Background(), 1, "not_the_key", repository.RegistrantFilters{})

	// Indistinguishable from the bad-id failure.
	assert.ErrorIs(t, err, ErrInvalidPartnerOrAPIKey)
}

func TestFindRecords_ProjectsTheFullRecord(t *testing.T) {
	f := newRegistrationFixture(t)

	created, err := f.service.CreateRecord(context.Background(), maximalData())
	require.NoError(t, err)

	records, err := f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, RegistrantRecord{
		Status:                "complete",
		CreateTime:            created.CreatedAt.Format("2006-01-02 15:04:05"),
		CompleteTime:          created.UpdatedAt.Format("2006-01-02 15:04:05"),
		Lang:                  "en",
		FirstReg:              true,
		HomeZipCode:           "10001",
		UsCitizen:             true,
		NameTitle:             "Mr.",
		FirstName:             "John",
		MiddleName:            "Quincy",
		LastName:              "Public",
		NameSuffix:            "Jr.",
		HomeAddress:           "123 Civic Center Plaza",
		HomeUnit:              "Apt 4",
		HomeCity:              "New York",
		HomeStateID:           33,
		HasMailingAddress:     true,
		MailingAddress:        "PO Box 99",
		MailingUnit:           "",
		MailingCity:           "Newark",
		MailingStateID:        31,
		MailingZipCode:        "07101",
		Race:                  "Decline to State",
		Party:                 "None",
		Phone:                 "212-555-0101",
		PhoneType:             "mobile",
		EmailAddress:          "john@example.com",
		OptInEmail:            true,
		OptInSms:              false,
		OptInVolunteer:        true,
		PartnerOptInEmail:     true,
		PartnerOptInSms:       false,
		PartnerOptInVolunteer: false,
		SurveyQuestion1:       "What is your favorite color?",
		SurveyAnswer1:         "Blue",
		SurveyQuestion2:       "Do you have a pet?",
		SurveyAnswer2:         "Yes",
	}, record)
}

func TestFindRecords_SurveyQuestionTextFollowsLocale(t *testing.T) {
	f := newRegistrationFixture(t)

	data := maximalData()
	data["lang"] = "es"
	_, err := f.service.CreateRecord(context.Background(), data)
	require.NoError(t, err)

	records, err := f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "¿Cuál es tu color favorito?", records[0].SurveyQuestion1)
	assert.Equal(t, "¿Tienes una mascota?", records[0].SurveyQuestion2)
}

func TestFindRecords_SinceInTheFutureReturnsNothing(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.CreateRecord(context.Background(), maximalData())
	require.NoError(t, err)

	since := time.Now().Add(time.Minute)
	records, err := f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{Since: &since})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFindRecords_FiltersByEmail(t *testing.T) {
	f := newRegistrationFixture(t)

	first := maximalData()
	first["email_address"] = "test@example.org"
	_, err := f.service.CreateRecord(context.Background(), first)
	require.NoError(t, err)

	second := maximalData()
	second["email_address"] = "test2@example.org"
	_, err = f.service.CreateRecord(context.Background(), second)
	require.NoError(t, err)

	email := "test@example.org"
	records, err := f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{Email: &email})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "test@example.org", records[0].EmailAddress)

	email = "test2@example.org"
	records, err = f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{Email: &email})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "test2@example.org", records[0].EmailAddress)
}

func TestFindRecords_FiltersByEmailAndSince(t *testing.T) {
	f := newRegistrationFixture(t)

	data := maximalData()
	data["email_address"] = "test@example.org"
	_, err := f.service.CreateRecord(context.Background(), data)
	require.NoError(t, err)

	email := "test@example.org"
	future := time.Now().Add(time.Minute)
	records, err := f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{Email: &email, Since: &future})
	require.NoError(t, err)
	assert.Empty(t, records)

	past := time.Now().Add(-24 * time.Hour)
	records, err = f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{Email: &email, Since: &past})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "test@example.org", records[0].EmailAddress)
}

func TestFindRecords_NeverLeaksAcrossPartners(t *testing.T) {
	f := newRegistrationFixture(t)

	other := &domain.Partner{Name: "Other Partner", APIKey: "other-key"}
	require.NoError(t, f.partnerRepo.Create(context.Background(), other))

	mine := maximalData()
	_, err := f.service.CreateRecord(context.Background(), mine)
	require.NoError(t, err)

	theirs := maximalData()
	theirs["partner_id"] = other.ID
	theirs["email_address"] = "them@example.org"
	_, err = f.service.CreateRecord(context.Background(), theirs)
	require.NoError(t, err)

	records, err := f.service.FindRecords(context.Background(), other.ID, "other-key", repository.RegistrantFilters{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "them@example.org", records[0].EmailAddress)

	records, err = f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "john@example.com", records[0].EmailAddress)
}

func TestFindRecords_OrderingIsStable(t *testing.T) {
	f := newRegistrationFixture(t)

	for _, email := range []string{"a@example.org", "b@example.org", "c@example.org"} {
		data := maximalData()
		data["email_address"] = email
		_, err := f.service.CreateRecord(context.Background(), data)
		require.NoError(t, err)
	}

	first, err := f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{})
	require.NoError(t, err)
	second, err := f.service.FindRecords(context.Background(), 1, "default-key", repository.RegistrantFilters{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "a@example.org", first[0].EmailAddress)
	assert.Equal(t, "b@example.org", first[1].EmailAddress)
	assert.Equal(t, "c@example.org", first[2].EmailAddress)
}
