package notion

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/mettaway/ventara/internal/models"
	"github.com/mettaway/ventara/internal/registration"
)

// Column names of the registration database.
const (
	propSubmissionID      = "Submission ID"
	propSubmittedAt       = "Submitted at"
	propFirstName         = "First Name"
	propFamilyName        = "Family Name"
	propCheckedIn         = "Checked In"
	propFirstTime         = "First Time"
	propInvitedBy         = "Invited by"
	propPaid              = "Paid"
	propThu               = "Thu"
	propFri               = "Fri"
	propSat               = "Sat"
	propSun               = "Sun"
	propCity              = "City"
	propCountry           = "Country"
	propAllergies         = "Allergies"
	propConditions        = "Stuff to know about me"
	propTravellingBy      = "Travelling by"
	propPhone             = "Phone"
	propTransport         = "Transport"
	propUnplugged         = "Unplugged"
	propWorkshop          = "Workshop"
	propWorkshopSpace     = "Workshop Space"
	propEmail             = "Email"
	propKitchenLead       = "Kitchen lead"
	propKitchenWishes     = "Kitchen Lead Wishes"
	propKitchenExperience = "Kitchen Experience"
	propUnpluggedDesc     = "Unplugged description"
	propDoctors           = "Doctors"
	propMedicalExperience = "Medical Experience"
	propPreviousVoyages   = "# of previous Mettaways"
	propSleeping          = "Sleeping Arrangement"
	propBirdCategory      = "Bird Category"
	propSoulAnswer        = "Soul Answer"
	propFlyingAnswer      = "Flying Answer"
	propNestAnswer        = "Nest Answer"
	propCallGroupAnswer   = "Call Group Answer"
	propEnvironmentAnswer = "Environment Answer"
	propMatingAnswer      = "Mating Ritual Answer"
	propGender            = "Gender"
)

// pageProperties maps rec onto the database columns. "Amount Paid CHF" is
// omitted: Notion stores an absent number the same as null, and operators
// fill it in later.
func pageProperties(rec models.RegistrationRecord) notionapi.Properties {
	id := rec.Identity
	lg := rec.Logistics
	ws := rec.Workshops()
	oracle := rec.Answers()

	props := notionapi.Properties{
		propSubmissionID: notionapi.TitleProperty{Title: richText(rec.SubmissionID)},
		propSubmittedAt:  dateProperty(rec.SubmittedAt),

		propFirstName:  text(id.FirstName),
		propFamilyName: text(id.LastName),
		propInvitedBy:  text(id.ReferredBy),
		propPhone:      text(id.Phone),
		propEmail:      text(id.Email),
		propGender:     selectOption(id.GenderIdentity),

		propCheckedIn:       checkbox(false),
		propPaid:            checkbox(false),
		propFirstTime:       checkbox(rec.FirstVoyage()),
		propPreviousVoyages: notionapi.NumberProperty{Number: float64(rec.PreviousVoyageCount())},

		propThu: checkbox(lg.AttendsNight(models.NightThursday)),
		propFri: checkbox(lg.AttendsNight(models.NightFriday)),
		propSat: checkbox(lg.AttendsNight(models.NightSaturday)),
		propSun: checkbox(lg.AttendsNight(models.NightSunday)),

		propCity:         text(lg.City),
		propCountry:      selectOption(lg.Country),
		propTravellingBy: selectOption(lg.Transportation),
		propSleeping:     selectOption(lg.SleepingArrangement),

		propAllergies:  text(id.Allergies),
		propConditions: text(id.Conditions),

		propTransport:         checkbox(lg.CanTransportMaterial),
		propKitchenLead:       checkbox(lg.TakeMealLead),
		propKitchenWishes:     text(lg.MealPreference),
		propKitchenExperience: text(lg.KitchenExperience),
		propDoctors:           checkbox(lg.HasMedicalEducation),
		propMedicalExperience: text(lg.MedicalBackground),

		propUnplugged:     checkbox(ws.PlayUnplugged),
		propUnpluggedDesc: text(ws.UnpluggedDescription),
		propWorkshop:      checkbox(ws.OrganizeWorkshop),
		propWorkshopSpace: text(ws.WorkshopSpace),

		propSoulAnswer:        text(oracle.Question1),
		propFlyingAnswer:      text(oracle.Question2),
		propNestAnswer:        text(oracle.Question3),
		propCallGroupAnswer:   text(oracle.Question4),
		propEnvironmentAnswer: text(oracle.Question5),
		propMatingAnswer:      text(oracle.Question6),
	}

	if rec.BirdCategory != "" {
		props[propBirdCategory] = selectOption(rec.BirdCategory)
	}

	return props
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{{Text: &notionapi.Text{Content: content}}}
}

func text(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{RichText: richText(content)}
}

func checkbox(v bool) notionapi.CheckboxProperty {
	return notionapi.CheckboxProperty{Checkbox: v}
}

func selectOption(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

func dateProperty(t time.Time) notionapi.DateProperty {
	d := notionapi.Date(t)
	return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}

// storedFromPage extracts the fields used for duplicate detection and
// tallying. Pages whose parent is not a database get an empty CollectionID.
func storedFromPage(page notionapi.Page) registration.StoredRegistration {
	return registration.StoredRegistration{
		ID:           page.ID.String(),
		CollectionID: page.Parent.DatabaseID.String(),
		Title:        titleOf(page.Properties),
		Email:        plainText(page.Properties[propEmail]),
		Category:     selectName(page.Properties[propBirdCategory]),
	}
}

// titleOf returns the text of whichever column is the title.
func titleOf(props notionapi.Properties) string {
	for _, p := range props {
		var title []notionapi.RichText
		switch v := p.(type) {
		case *notionapi.TitleProperty:
			title = v.Title
		case notionapi.TitleProperty:
			title = v.Title
		default:
			continue
		}
		return joinPlain(title)
	}
	return ""
}

// plainText returns the first rich text fragment, which is where the form
// writes the whole value.
func plainText(p notionapi.Property) string {
	var rt []notionapi.RichText
	switch v := p.(type) {
	case *notionapi.RichTextProperty:
		rt = v.RichText
	case notionapi.RichTextProperty:
		rt = v.RichText
	}
	if len(rt) == 0 {
		return ""
	}
	return fragment(rt[0])
}

func selectName(p notionapi.Property) string {
	switch v := p.(type) {
	case *notionapi.SelectProperty:
		return v.Select.Name
	case notionapi.SelectProperty:
		return v.Select.Name
	}
	return ""
}

func joinPlain(rt []notionapi.RichText) string {
	var s string
	for _, r := range rt {
		s += fragment(r)
	}
	return s
}

func fragment(r notionapi.RichText) string {
	if r.PlainText != "" {
		return r.PlainText
	}
	if r.Text != nil {
		return r.Text.Content
	}
	return ""
}
