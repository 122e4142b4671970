package oracle

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mettaway/ventara/internal/models"
)

const persona = "You are the Metta-Oracle, a mystical guide helping people discover their spirit bird for a magical journey to Ventara."

var questionContext = []string{
	`"Your soul is definitely from" - reveals their connection to different eras and realms`,
	`"For good flying, it's best to be" - shows their essence and way of being`,
	`"A good nest is" - indicates their comfort zone and lifestyle`,
	`"To call your flock, you" - demonstrates how they connect with others`,
	`"Your favourite sky is" - reveals the environment where they thrive`,
	`"Your mating ritual is" - shows how they express themselves`,
}

// buildPrompt renders the classification prompt. Blank answers are left out.
// flocks may be empty, in which case no balancing hint is added.
func buildPrompt(answers []models.Answer, flocks map[string]int) string {
	var b strings.Builder

	b.WriteString(persona)
	b.WriteString("\n\nCategorize this person based on their answers to the following questions into one of these ")
	fmt.Fprintf(&b, "%d bird categories:\n", len(models.BirdCategories))
	for i, c := range models.BirdCategories {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}

	b.WriteString("\nContext about the questions:\n")
	for i, q := range questionContext {
		fmt.Fprintf(&b, "- Question %d: %s\n", i+1, q)
	}

	b.WriteString("\nTheir answers:\n")
	for i, a := range answers {
		if a.Value == "" {
			continue
		}
		fmt.Fprintf(&b, "Question %d: %s", i+1, a.Value)
		if a.Value == "other" && a.Other != "" {
			fmt.Fprintf(&b, " (%s)", a.Other)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nBased on their personality traits, temporal origins, and spiritual essence revealed through these answers, which bird category best represents them?\n")

	b.WriteString("\nConsider:\n")
	for _, c := range models.BirdCategories {
		fmt.Fprintf(&b, "- %s: %s\n", c, models.BirdTraits(c))
	}

	if len(flocks) > 0 {
		b.WriteString("\nCurrent flock sizes:\n")
		for _, c := range sortedFlocks(flocks) {
			fmt.Fprintf(&b, "- %s: %d\n", c, flocks[c])
		}
		b.WriteString("When several categories fit equally well, prefer the one with fewer members so the flocks stay balanced.\n")
	}

	b.WriteString("\nRespond with ONLY the exact bird category name from the list above, nothing else.")
	return b.String()
}

// sortedFlocks lists tallied categories in display order, followed by any
// unknown labels alphabetically.
func sortedFlocks(flocks map[string]int) []string {
	out := make([]string, 0, len(flocks))
	for _, c := range models.BirdCategories {
		if _, ok := flocks[c]; ok {
			out = append(out, c)
		}
	}

	var extra []string
	for c := range flocks {
		if !models.IsBirdCategory(c) {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
