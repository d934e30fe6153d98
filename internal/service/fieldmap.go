package service

import (
	"strconv"
	"strings"

	"github.com/voterworks/backend/internal/domain"
)

// dataRenames translates the partner-facing field vocabulary into registrant
// attribute names. Partners evolve independently of the internal schema; this
// table absorbs the drift in one place.
var dataRenames = map[string]string{
	"lang":                     "locale",
	"survey_question_1":        "original_survey_question_1",
	"survey_question_2":        "original_survey_question_2",
	"source_tracking_id":       "tracking_source",
	"partner_tracking_id":      "tracking_id",
	"opt_in_volunteer":         "volunteer",
	"partner_opt_in_volunteer": "partner_volunteer",
	"id_number":                "state_id_number",
}

// attrRenames is the inverse table, used to report validation failures under
// the names partners actually sent.
var attrRenames = map[string]string{
	"locale":                     "lang",
	"original_survey_question_1": "survey_question_1",
	"original_survey_question_2": "survey_question_2",
	"tracking_source":            "source_tracking_id",
	"tracking_id":                "partner_tracking_id",
	"volunteer":                  "opt_in_volunteer",
	"partner_volunteer":          "partner_opt_in_volunteer",
	"state_id_number":            "id_number",
}

var stateAttrPrefixes = []string{"home_state", "mailing_state", "prev_state"}

// dataToAttrs maps a raw partner field map onto registrant attributes. It is
// total: any input map is accepted, nothing fails, unrecognized keys pass
// through untouched for the validator to judge.
func dataToAttrs(data map[string]any, states *domain.GeoStates) map[string]any {
	attrs := make(map[string]any, len(data))
	for key, value := range data {
		if attr, ok := dataRenames[key]; ok {
			attrs[attr] = value
			continue
		}
		if prefix, ok := stateAttrPrefix(key); ok {
			if id, ok := resolveStateID(value, states); ok {
				attrs[prefix+"_id"] = id
			}
			continue
		}
		attrs[key] = value
	}
	return attrs
}

func externalFieldName(attr string) string {
	if name, ok := attrRenames[attr]; ok {
		return name
	}
	return attr
}

func stateAttrPrefix(key string) (string, bool) {
	for _, prefix := range stateAttrPrefixes {
		if key == prefix || key == prefix+"_id" {
			return prefix, true
		}
	}
	return "", false
}

// resolveStateID accepts either a numeric state identifier or a two letter
// abbreviation. Blank and unresolvable values drop the field entirely rather
// than erroring; admission control happens later.
func resolveStateID(value any, states *domain.GeoStates) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			return id, true
		}
		if states != nil {
			if state, ok := states.ByAbbreviation(s); ok {
				return state.ID, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func asBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no", "":
			return false, true
		}
		return false, false
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	case nil:
		return false, true
	default:
		return false, false
	}
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}

// blank mirrors presence semantics for admission checks: nil and whitespace
// strings count as absent, any other value counts as present.
func blank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}
