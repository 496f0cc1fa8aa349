package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResponder(t *testing.T) *Responder {
	responder, err := NewResponder()
	require.NoError(t, err)
	return responder
}

func TestRespondCategories(t *testing.T) {
	responder := newTestResponder(t)

	tests := []struct {
		question string
		category string
	}{
		{"How do I renew my driver's LICENSE?", CategoryLicenses},
		{"I need a building permit", CategoryLicenses},
		{"When is the next ELECTION?", CategoryVoting},
		{"where do I cast my ballot", CategoryVoting},
		{"When will I get my tax refund?", CategoryTax},
		{"I have a question about the IRS", CategoryTax},
		{"Am I eligible for food stamps?", CategorySocialServices},
		{"Can I get welfare benefits", CategorySocialServices},
		{"I got a parking ticket", CategoryLegal},
		{"How do I file a lawsuit", CategoryLegal},
		{"What time does the library open?", CategoryGeneral},
		{"", CategoryGeneral},
	}

	for _, tc := range tests {
		t.Run(tc.question, func(t *testing.T) {
			reply := responder.Respond(tc.question)
			assert.Equal(t, tc.category, reply.Category)
			assert.NotEmpty(t, reply.Text)
		})
	}
}

func TestRespondPriority(t *testing.T) {
	responder := newTestResponder(t)

	reply := responder.Respond("I want a permit to vote and pay tax")
	assert.Equal(t, CategoryLicenses, reply.Category)

	reply = responder.Respond("Voting on tax refunds")
	assert.Equal(t, CategoryVoting, reply.Category)

	reply = responder.Respond("Tax court hearing")
	assert.Equal(t, CategoryTax, reply.Category)
}

func TestRespondSubstringMatch(t *testing.T) {
	responder := newTestResponder(t)

	// "did" contains "id"
	reply := responder.Respond("Why did this happen")
	assert.Equal(t, CategoryLicenses, reply.Category)
}

func TestRespondTexts(t *testing.T) {
	responder := newTestResponder(t)

	assert.Contains(t, responder.Respond("permit").Text, "Regarding your question about licenses and permits:")
	assert.Contains(t, responder.Respond("ballot").Text, "Regarding voting and elections:")
	assert.Contains(t, responder.Respond("taxes").Text, "Regarding tax matters:")
	assert.Contains(t, responder.Respond("welfare").Text, "Regarding social services and benefits:")
	assert.Contains(t, responder.Respond("court").Text, "Regarding legal and court matters:")
	assert.Contains(t, responder.Respond("hello").Text, "Thank you for your question about government services.")
}

func TestRespondDeterministic(t *testing.T) {
	responder := newTestResponder(t)
	assert.Equal(t, responder.Respond("my tax refund"), responder.Respond("my tax refund"))
}

func TestLoadResponderValidation(t *testing.T) {
	_, err := loadResponder([]byte("categories: [\n"))
	assert.Error(t, err)

	_, err = loadResponder([]byte(`
categories:
  - name: licenses
    keywords: [license]
    reply: text
default:
  name: general
  reply: text
`))
	assert.ErrorContains(t, err, "expected 5")

	_, err = loadResponder([]byte(`
categories:
  - {name: voting, keywords: [vote], reply: a}
  - {name: licenses, keywords: [license], reply: b}
  - {name: tax, keywords: [tax], reply: c}
  - {name: social_services, keywords: [food], reply: d}
  - {name: legal, keywords: [court], reply: e}
default: {name: general, reply: f}
`))
	assert.ErrorContains(t, err, "expected \"licenses\"")

	_, err = loadResponder([]byte(`
categories:
  - {name: licenses, keywords: [license], reply: b}
  - {name: voting, keywords: [vote], reply: a}
  - {name: tax, keywords: [tax], reply: c}
  - {name: social_services, keywords: [food], reply: d}
  - {name: legal, keywords: [court], reply: e}
`))
	assert.ErrorContains(t, err, "default reply")
}
