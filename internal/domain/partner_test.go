package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartnerNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5185550123", "518-555-0123"},
		{"(518) 555-0123", "518-555-0123"},
		{"518.555.0123", "518-555-0123"},
		{"518-555-0123", "518-555-0123"},
		{"555-0123", "555-0123"},   // too short, left for validation
		{"+1 518 555 0123", "+1 518 555 0123"}, // 11 digits, left as-is
		{"", ""},
	}

	for _, tc := range cases {
		p := &Partner{Phone: tc.in}
		p.NormalizePhone()
		assert.Equal(t, tc.want, p.Phone, "input %q", tc.in)
	}
}

func TestPartnerSurveyQuestion(t *testing.T) {
	p := &Partner{
		SurveyQuestion1En: "q1 en",
		SurveyQuestion1Es: "q1 es",
		SurveyQuestion2En: "q2 en",
		SurveyQuestion2Es: "q2 es",
	}

	assert.Equal(t, "q1 en", p.SurveyQuestion(1, "en"))
	assert.Equal(t, "q1 es", p.SurveyQuestion(1, "es"))
	assert.Equal(t, "q2 en", p.SurveyQuestion(2, "en"))
	assert.Equal(t, "q2 es", p.SurveyQuestion(2, "es"))
	assert.Empty(t, p.SurveyQuestion(3, "en"))
	assert.Empty(t, p.SurveyQuestion(1, "fr"))
}
