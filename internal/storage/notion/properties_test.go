package notion

import (
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mettaway/ventara/internal/models"
)

func sampleRecord() models.RegistrationRecord {
	return models.RegistrationRecord{
		SubmissionID: "0b7c3f4e-1111-4c1e-9d3a-2f6f1c1e0001",
		SubmittedAt:  time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		RegistrationPayload: models.RegistrationPayload{
			Identity: models.Identity{
				FirstName:       "Ada",
				LastName:        "Lovelace",
				Email:           "ada@example.com",
				Phone:           "@ada",
				ReferredBy:      "Charles",
				PreviousVoyages: "3+",
				GenderIdentity:  "woman",
				Allergies:       "peanuts",
			},
			Logistics: models.Logistics{
				Nights:               []string{"thursday", "saturday"},
				Transportation:       "train",
				City:                 "Zug",
				Country:              "Switzerland",
				SleepingArrangement:  "tent",
				CanTransportMaterial: true,
				HasMedicalEducation:  true,
				MedicalBackground:    "nurse",
			},
			WorkshopsMusic: &models.WorkshopsMusic{
				OrganizeWorkshop: true,
				WorkshopSpace:    "dome",
			},
			Contribution: models.Contribution{ContributionAmount: "150"},
			Oracle: &models.OracleAnswers{
				Question1: "the stars",
				Question6: "a slow dance",
			},
			BirdCategory: "Night Birds",
		},
	}
}

func richTextValue(t *testing.T, props notionapi.Properties, name string) string {
	t.Helper()
	p, ok := props[name].(notionapi.RichTextProperty)
	require.True(t, ok, "%s should be rich text", name)
	require.Len(t, p.RichText, 1)
	return p.RichText[0].Text.Content
}

func checkboxValue(t *testing.T, props notionapi.Properties, name string) bool {
	t.Helper()
	p, ok := props[name].(notionapi.CheckboxProperty)
	require.True(t, ok, "%s should be a checkbox", name)
	return p.Checkbox
}

func selectValue(t *testing.T, props notionapi.Properties, name string) string {
	t.Helper()
	p, ok := props[name].(notionapi.SelectProperty)
	require.True(t, ok, "%s should be a select", name)
	return p.Select.Name
}

func TestPageProperties_FullMapping(t *testing.T) {
	props := pageProperties(sampleRecord())

	title, ok := props["Submission ID"].(notionapi.TitleProperty)
	require.True(t, ok)
	assert.Equal(t, "0b7c3f4e-1111-4c1e-9d3a-2f6f1c1e0001", title.Title[0].Text.Content)

	date, ok := props["Submitted at"].(notionapi.DateProperty)
	require.True(t, ok)
	require.NotNil(t, date.Date.Start)
	assert.True(t, time.Time(*date.Date.Start).Equal(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, "Ada", richTextValue(t, props, "First Name"))
	assert.Equal(t, "Lovelace", richTextValue(t, props, "Family Name"))
	assert.Equal(t, "Charles", richTextValue(t, props, "Invited by"))
	assert.Equal(t, "@ada", richTextValue(t, props, "Phone"))
	assert.Equal(t, "ada@example.com", richTextValue(t, props, "Email"))
	assert.Equal(t, "Zug", richTextValue(t, props, "City"))
	assert.Equal(t, "peanuts", richTextValue(t, props, "Allergies"))
	assert.Equal(t, "", richTextValue(t, props, "Stuff to know about me"))
	assert.Equal(t, "nurse", richTextValue(t, props, "Medical Experience"))
	assert.Equal(t, "dome", richTextValue(t, props, "Workshop Space"))
	assert.Equal(t, "", richTextValue(t, props, "Kitchen Lead Wishes"))
	assert.Equal(t, "", richTextValue(t, props, "Unplugged description"))

	assert.Equal(t, "woman", selectValue(t, props, "Gender"))
	assert.Equal(t, "Switzerland", selectValue(t, props, "Country"))
	assert.Equal(t, "train", selectValue(t, props, "Travelling by"))
	assert.Equal(t, "tent", selectValue(t, props, "Sleeping Arrangement"))
	assert.Equal(t, "Night Birds", selectValue(t, props, "Bird Category"))

	assert.False(t, checkboxValue(t, props, "Checked In"))
	assert.False(t, checkboxValue(t, props, "Paid"))
	assert.False(t, checkboxValue(t, props, "First Time"))
	assert.True(t, checkboxValue(t, props, "Thu"))
	assert.False(t, checkboxValue(t, props, "Fri"))
	assert.True(t, checkboxValue(t, props, "Sat"))
	assert.False(t, checkboxValue(t, props, "Sun"))
	assert.True(t, checkboxValue(t, props, "Transport"))
	assert.False(t, checkboxValue(t, props, "Kitchen lead"))
	assert.True(t, checkboxValue(t, props, "Doctors"))
	assert.True(t, checkboxValue(t, props, "Workshop"))
	assert.False(t, checkboxValue(t, props, "Unplugged"))

	voyages, ok := props["# of previous Mettaways"].(notionapi.NumberProperty)
	require.True(t, ok)
	assert.Equal(t, float64(3), voyages.Number)

	assert.Equal(t, "the stars", richTextValue(t, props, "Soul Answer"))
	assert.Equal(t, "", richTextValue(t, props, "Flying Answer"))
	assert.Equal(t, "", richTextValue(t, props, "Nest Answer"))
	assert.Equal(t, "", richTextValue(t, props, "Call Group Answer"))
	assert.Equal(t, "", richTextValue(t, props, "Environment Answer"))
	assert.Equal(t, "a slow dance", richTextValue(t, props, "Mating Ritual Answer"))

	assert.NotContains(t, props, "Amount Paid CHF")
}

func TestPageProperties_OptionalSectionsMissing(t *testing.T) {
	rec := sampleRecord()
	rec.WorkshopsMusic = nil
	rec.Oracle = nil
	rec.BirdCategory = ""
	rec.Identity.PreviousVoyages = "0"

	props := pageProperties(rec)

	assert.True(t, checkboxValue(t, props, "First Time"))
	assert.Equal(t, float64(0), props["# of previous Mettaways"].(notionapi.NumberProperty).Number)
	assert.False(t, checkboxValue(t, props, "Workshop"))
	assert.Equal(t, "", richTextValue(t, props, "Workshop Space"))
	assert.Equal(t, "", richTextValue(t, props, "Soul Answer"))
	assert.NotContains(t, props, "Bird Category")
}

func TestStoredFromPage(t *testing.T) {
	page := notionapi.Page{
		ID: "page-1",
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: "26732652-a3f3-817b-9ba5-ca78b8725aca",
		},
		Properties: notionapi.Properties{
			"Submission ID": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "sub-1"}}},
			"Email":         &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: "ada@example.com"}}},
			"Bird Category": &notionapi.SelectProperty{Select: notionapi.Option{Name: "Chicks"}},
		},
	}

	got := storedFromPage(page)
	assert.Equal(t, "page-1", got.ID)
	assert.Equal(t, "26732652-a3f3-817b-9ba5-ca78b8725aca", got.CollectionID)
	assert.Equal(t, "sub-1", got.Title)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "Chicks", got.Category)
}

func TestStoredFromPage_Template(t *testing.T) {
	page := notionapi.Page{
		ID: "template",
		Properties: notionapi.Properties{
			"Submission ID": &notionapi.TitleProperty{},
			"Email":         &notionapi.RichTextProperty{},
		},
	}

	got := storedFromPage(page)
	assert.Empty(t, got.Title)
	assert.Empty(t, got.Email)
	assert.Empty(t, got.Category)
}
