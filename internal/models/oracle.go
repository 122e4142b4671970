package models

// CategorizeRequest is the body of POST /api/categorize-bird. The *Other
// fields carry free text for answers submitted as "other".
type CategorizeRequest struct {
	Question1      string `json:"question1"`
	Question1Other string `json:"question1Other,omitempty"`
	Question2      string `json:"question2"`
	Question2Other string `json:"question2Other,omitempty"`
	Question3      string `json:"question3"`
	Question3Other string `json:"question3Other,omitempty"`
	Question4      string `json:"question4"`
	Question4Other string `json:"question4Other,omitempty"`
	Question5      string `json:"question5"`
	Question5Other string `json:"question5Other,omitempty"`
	Question6      string `json:"question6"`
	Question6Other string `json:"question6Other,omitempty"`
}

// Answer is one quiz answer with its optional "other" elaboration.
type Answer struct {
	Value string
	Other string
}

// Answers returns the six answers in question order.
func (r CategorizeRequest) Answers() []Answer {
	return []Answer{
		{r.Question1, r.Question1Other},
		{r.Question2, r.Question2Other},
		{r.Question3, r.Question3Other},
		{r.Question4, r.Question4Other},
		{r.Question5, r.Question5Other},
		{r.Question6, r.Question6Other},
	}
}

// CategorizeResponse is returned by POST /api/categorize-bird. Category and
// BirdCategory carry the same label; the latter is what the wizard reads.
type CategorizeResponse struct {
	Success      bool   `json:"success"`
	Category     string `json:"category"`
	BirdCategory string `json:"birdCategory"`
}

// ConfirmationRequest is the body of POST /api/send-confirmation-email.
type ConfirmationRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	SubmissionID string `json:"submissionId"`
	Category     string `json:"category,omitempty"`
	BirdCategory string `json:"birdCategory,omitempty"`
}

// ResolvedCategory prefers Category and falls back to BirdCategory.
func (r ConfirmationRequest) ResolvedCategory() string {
	if r.Category != "" {
		return r.Category
	}
	return r.BirdCategory
}

// ConfirmationResponse is returned by POST /api/send-confirmation-email.
type ConfirmationResponse struct {
	Success bool   `json:"success"`
	EmailID string `json:"emailId"`
}
