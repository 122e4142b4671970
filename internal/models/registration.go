package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mettaway/ventara/internal/utils"
)

// Night identifiers sent by the wizard in logistics.nights.
const (
	NightThursday = "thursday"
	NightFriday   = "friday"
	NightSaturday = "saturday"
	NightSunday   = "sunday"
)

// Identity is the "who are you" step of the wizard.
type Identity struct {
	FirstName       string `json:"firstName" dynamodbav:"first_name"`
	LastName        string `json:"lastName" dynamodbav:"last_name"`
	Email           string `json:"email" dynamodbav:"email"`
	Phone           string `json:"phone" dynamodbav:"phone"`
	ReferredBy      string `json:"referredBy" dynamodbav:"referred_by"`
	PreviousVoyages string `json:"previousVoyages" dynamodbav:"previous_voyages"` // free text, e.g. "0", "3", "5+"
	GenderIdentity  string `json:"genderIdentity" dynamodbav:"gender_identity"`
	Allergies       string `json:"allergies,omitempty" dynamodbav:"allergies"`
	Conditions      string `json:"conditions,omitempty" dynamodbav:"conditions"`
}

// Logistics covers travel, lodging and volunteering.
type Logistics struct {
	Nights               []string `json:"nights" dynamodbav:"nights"`
	Transportation       string   `json:"transportation" dynamodbav:"transportation"`
	City                 string   `json:"city" dynamodbav:"city"`
	Country              string   `json:"country" dynamodbav:"country"`
	SleepingArrangement  string   `json:"sleepingArrangement" dynamodbav:"sleeping_arrangement"`
	CanTransportMaterial bool     `json:"canTransportMaterial,omitempty" dynamodbav:"can_transport_material"`
	TakeMealLead         bool     `json:"takeMealLead,omitempty" dynamodbav:"take_meal_lead"`
	MealPreference       string   `json:"mealPreference,omitempty" dynamodbav:"meal_preference"`
	KitchenExperience    string   `json:"kitchenExperience,omitempty" dynamodbav:"kitchen_experience"`
	HasMedicalEducation  bool     `json:"hasMedicalEducation,omitempty" dynamodbav:"has_medical_education"`
	MedicalBackground    string   `json:"medicalBackground,omitempty" dynamodbav:"medical_background"`
}

// AttendsNight reports whether night (e.g. NightFriday) was selected.
func (l Logistics) AttendsNight(night string) bool {
	return utils.ContainsString(l.Nights, night)
}

type WorkshopsMusic struct {
	OrganizeWorkshop     bool   `json:"organizeWorkshop,omitempty" dynamodbav:"organize_workshop"`
	WorkshopTitle        string `json:"workshopTitle,omitempty" dynamodbav:"workshop_title"`
	WorkshopDayTime      string `json:"workshopDayTime,omitempty" dynamodbav:"workshop_day_time"`
	WorkshopDescription  string `json:"workshopDescription,omitempty" dynamodbav:"workshop_description"`
	WorkshopSpace        string `json:"workshopSpace,omitempty" dynamodbav:"workshop_space"`
	ShareSpace           string `json:"shareSpace,omitempty" dynamodbav:"share_space"`
	PlayDJSet            bool   `json:"playDjSet,omitempty" dynamodbav:"play_dj_set"`
	DJDayTime            string `json:"djDayTime,omitempty" dynamodbav:"dj_day_time"`
	SoundcloudLink       string `json:"soundcloudLink,omitempty" dynamodbav:"soundcloud_link"`
	MusicStyle           string `json:"musicStyle,omitempty" dynamodbav:"music_style"`
	PlayUnplugged        bool   `json:"playUnplugged,omitempty" dynamodbav:"play_unplugged"`
	UnpluggedDescription string `json:"unpluggedDescription,omitempty" dynamodbav:"unplugged_description"`
}

type Contribution struct {
	ContributionAmount string `json:"contributionAmount" dynamodbav:"contribution_amount"`
}

// OracleAnswers are the six quiz answers as stored with the registration.
type OracleAnswers struct {
	Question1    string `json:"question1" dynamodbav:"question1"`
	Question2    string `json:"question2" dynamodbav:"question2"`
	Question3    string `json:"question3" dynamodbav:"question3"`
	Question4    string `json:"question4" dynamodbav:"question4"`
	Question5    string `json:"question5" dynamodbav:"question5"`
	Question6    string `json:"question6" dynamodbav:"question6"`
	BirdCategory string `json:"birdCategory,omitempty" dynamodbav:"bird_category"`
}

// RegistrationPayload is the body of POST /api/submit-registration.
type RegistrationPayload struct {
	Identity       Identity        `json:"identity" dynamodbav:"identity"`
	Logistics      Logistics       `json:"logistics" dynamodbav:"logistics"`
	WorkshopsMusic *WorkshopsMusic `json:"workshopsMusic,omitempty" dynamodbav:"workshops_music,omitempty"`
	Contribution   Contribution    `json:"contribution" dynamodbav:"contribution"`
	Oracle         *OracleAnswers  `json:"oracle,omitempty" dynamodbav:"oracle,omitempty"`
	BirdCategory   string          `json:"birdCategory,omitempty" dynamodbav:"bird_category"`
}

// Validate checks the fields the coordinator cannot work without.
func (p RegistrationPayload) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Identity.Email) == "" {
		missing = append(missing, "identity.email")
	}
	if strings.TrimSpace(p.Identity.FirstName) == "" {
		missing = append(missing, "identity.firstName")
	}
	if strings.TrimSpace(p.Identity.LastName) == "" {
		missing = append(missing, "identity.lastName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Workshops returns the workshop step, or its zero value when it was skipped.
func (p RegistrationPayload) Workshops() WorkshopsMusic {
	if p.WorkshopsMusic == nil {
		return WorkshopsMusic{}
	}
	return *p.WorkshopsMusic
}

// Answers returns the oracle step, or its zero value when it was skipped.
func (p RegistrationPayload) Answers() OracleAnswers {
	if p.Oracle == nil {
		return OracleAnswers{}
	}
	return *p.Oracle
}

// FirstVoyage is true only for the literal answer "0".
func (p RegistrationPayload) FirstVoyage() bool {
	return p.Identity.PreviousVoyages == "0"
}

// PreviousVoyageCount parses the leading integer of the free-text answer
// ("5+" is 5, "many" is 0).
func (p RegistrationPayload) PreviousVoyageCount() int {
	return LeadingInt(p.Identity.PreviousVoyages)
}

// LeadingInt parses an optionally signed run of digits at the start of s,
// ignoring leading whitespace. It returns 0 when there is none.
func LeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// RegistrationRecord is a payload accepted for persistence.
type RegistrationRecord struct {
	SubmissionID string
	SubmittedAt  time.Time
	RegistrationPayload
}

// RegistrationResponse is returned by POST /api/submit-registration.
type RegistrationResponse struct {
	Success      bool   `json:"success"`
	SubmissionID string `json:"submissionId"`
	RecordID     string `json:"recordId"`
	NotionPageID string `json:"notionPageId,omitempty"`
}

// CountResponse is returned by GET /api/registration-count.
type CountResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}
