package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadingInt(t *testing.T) {
	cases := map[string]int{
		"0":          0,
		"3":          3,
		"5+":         5,
		"10 or more": 10,
		"  7":        7,
		"-2":         -2,
		"many":       0,
		"":           0,
		"+":          0,
	}
	for in, want := range cases {
		assert.Equal(t, want, LeadingInt(in), "input %q", in)
	}
}

func TestNormalizeBirdCategory(t *testing.T) {
	cases := map[string]string{
		"Origami Birds":                          "Origami Birds",
		"  night birds\n":                        "Night Birds",
		"\"Sea Birds\"":                          "Sea Birds",
		"**Birds of Prey**.":                     "Birds of Prey",
		"I would say Mechanical Birds for sure.": "Mechanical Birds",
		"":                                       DefaultBirdCategory,
		"Penguins":                               DefaultBirdCategory,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeBirdCategory(in), "input %q", in)
	}
}

func TestBirdFamiliesCoverEveryCategory(t *testing.T) {
	require.Len(t, BirdCategories, 12)
	for _, c := range BirdCategories {
		assert.True(t, IsBirdCategory(c))
		video, ok := BirdVideo(c)
		assert.True(t, ok)
		assert.NotEmpty(t, video)
		collective, ok := BirdCollective(c)
		assert.True(t, ok)
		assert.NotEmpty(t, collective)
		assert.NotEmpty(t, BirdTraits(c))
	}

	video, _ := BirdVideo("Origami Birds")
	assert.Equal(t, "Folded Birds.mp4", video)
	assert.False(t, IsBirdCategory("Walking Birds"))
}

func TestRegistrationPayload_Decode(t *testing.T) {
	raw := `{
		"identity": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
			"phone": "+41", "referredBy": "Bob", "previousVoyages": "0", "genderIdentity": "woman"},
		"logistics": {"nights": ["thursday", "sunday"], "transportation": "train", "city": "Zug",
			"country": "Switzerland", "sleepingArrangement": "tent", "takeMealLead": true},
		"contribution": {"contributionAmount": "150"},
		"birdCategory": "Chicks"
	}`

	var p RegistrationPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.NoError(t, p.Validate())
	assert.True(t, p.FirstVoyage())
	assert.Equal(t, 0, p.PreviousVoyageCount())
	assert.True(t, p.Logistics.AttendsNight(NightThursday))
	assert.False(t, p.Logistics.AttendsNight(NightFriday))
	assert.True(t, p.Logistics.TakeMealLead)
	assert.Equal(t, WorkshopsMusic{}, p.Workshops())
	assert.Equal(t, OracleAnswers{}, p.Answers())
	assert.Equal(t, "Chicks", p.BirdCategory)
}

func TestRegistrationPayload_ValidateListsMissingFields(t *testing.T) {
	err := RegistrationPayload{Identity: Identity{FirstName: "Ada"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identity.email")
	assert.Contains(t, err.Error(), "identity.lastName")
	assert.NotContains(t, err.Error(), "identity.firstName")
}

func TestCategorizeRequest(t *testing.T) {
	req := CategorizeRequest{Question1: "other", Question1Other: "the moon"}
	assert.Equal(t, Answer{Value: "other", Other: "the moon"}, req.Answers()[0])
	assert.Len(t, req.Answers(), 6)
}

func TestConfirmationRequest_ResolvedCategory(t *testing.T) {
	assert.Equal(t, "Chicks", ConfirmationRequest{BirdCategory: "Chicks"}.ResolvedCategory())
	assert.Equal(t, "Sea Birds", ConfirmationRequest{Category: "Sea Birds", BirdCategory: "Chicks"}.ResolvedCategory())
}
