package models

import "strings"

// DefaultBirdCategory is assigned whenever the oracle has nothing usable to say.
const DefaultBirdCategory = "Birds of Paradise"

type birdFamily struct {
	video      string
	collective string
	traits     string
}

// BirdCategories lists the fixed set of flocks in display order.
var BirdCategories = []string{
	"Birds of Paradise",
	"Origami Birds",
	"Ground Birds",
	"Sea Birds",
	"Ancient Birds",
	"Fancy Birds",
	"Chicks",
	"Mechanical Birds",
	"Night Birds",
	"Dark Birds",
	"Mythical Birds",
	"Birds of Prey",
}

var birdFamilies = map[string]birdFamily{
	"Birds of Paradise": {"Birds of Paradise.mp4", "a kaleidoscope of birds of paradise", "tropical, exotic, vibrant"},
	"Origami Birds":     {"Folded Birds.mp4", "a fold of origami birds", "delicate, crafted, paper-like"},
	"Ground Birds":      {"Walking Birds.mp4", "a stroll of ground birds", "grounded, functional, terrestrial"},
	"Sea Birds":         {"Birds of the seas.mp4", "a plunge of sea birds", "coastal, water-loving, shore-dwelling"},
	"Ancient Birds":     {"Ancient Birds.mp4", "a relic of ancient birds", "prehistoric, ancient, primal"},
	"Fancy Birds":       {"Fancy Birds.mp4", "a fantasy of fancy birds", "playful, flamboyant, animated"},
	"Chicks":            {"Chicks.mp4", "a curiosity of chicks", "young, fresh, energetic"},
	"Mechanical Birds":  {"Mecha Birds.mp4", "a craft of mechanical birds", "futuristic, technological, mechanical"},
	"Night Birds":       {"Night Birds.mp4", "a noctuid of night birds", "nocturnal, wise, watchful"},
	"Dark Birds":        {"Dark Birds.mp4", "a blackout of dark birds", "mysterious, shadowy, intense"},
	"Mythical Birds":    {"Mythical Birds.mp4", "a divine of mystical birds", "mystical, legendary, otherworldly"},
	"Birds of Prey":     {"Birds of Prey.mp4", "a cast of birds of prey", "powerful, precise, aerodynamic"},
}

// IsBirdCategory reports whether name is one of the fixed labels.
func IsBirdCategory(name string) bool {
	_, ok := birdFamilies[name]
	return ok
}

// BirdVideo returns the video filename shown for a category.
func BirdVideo(category string) (string, bool) {
	f, ok := birdFamilies[category]
	return f.video, ok
}

// BirdCollective returns the collective noun phrase, e.g. "a fold of origami birds".
func BirdCollective(category string) (string, bool) {
	f, ok := birdFamilies[category]
	return f.collective, ok
}

// BirdTraits returns the personality hints used when prompting the oracle.
func BirdTraits(category string) string {
	return birdFamilies[category].traits
}

// NormalizeBirdCategory maps free text onto a fixed label: case-insensitive
// exact match first, then the first label contained in the text. Anything
// else yields DefaultBirdCategory.
func NormalizeBirdCategory(raw string) string {
	cleaned := strings.Trim(strings.TrimSpace(raw), "\"'*.` ")
	if cleaned == "" {
		return DefaultBirdCategory
	}

	for _, c := range BirdCategories {
		if strings.EqualFold(c, cleaned) {
			return c
		}
	}

	// Prefer the longest contained label.
	lower := strings.ToLower(cleaned)
	best := ""
	for _, c := range BirdCategories {
		if strings.Contains(lower, strings.ToLower(c)) && len(c) > len(best) {
			best = c
		}
	}
	if best != "" {
		return best
	}
	return DefaultBirdCategory
}
