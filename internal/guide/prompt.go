// Package guide builds strategy-sheet prompts for achievements and hands
// them to an AI chat provider, either as a launch URL or through an
// OpenAI-compatible API.
package guide

import (
	"fmt"
	"strings"

	"github.com/robottwo/trophy/internal/trophy"
)

const DefaultLanguage = "Chinese"

// Languages offered by the settings command. Any other value is accepted too.
var Languages = []string{"Chinese", "English", "Japanese", "Korean", "Spanish", "French", "German", "Russian"}

// SinglePrompt asks for a step table covering one achievement
func SinglePrompt(a trophy.Achievement, language string) string {
	language = orDefault(language)

	var b strings.Builder
	b.WriteString("INSTRUCTION: SINGLE ACHIEVEMENT DATA SHEET\n")
	fmt.Fprintf(&b, "GAME: \"%s\"\n", a.Game)
	fmt.Fprintf(&b, "ACHIEVEMENT: \"%s\"\n", a.Name)
	fmt.Fprintf(&b, "DESCRIPTION: \"%s\"\n", a.Description)
	b.WriteString(`
STRICT OUTPUT RULES:
1. FORMAT: A single Markdown Table.
2. COLUMNS: | Step | Technical Task | Location/Prerequisite | Optimization Notes |
3. EXHAUSTIVE FACTORIZATION: Deconstruct the solution into its full technical roadmap.
4. TONE: Command-line style. No intro/outro text.
5. NO LISTS: Use only the table format for the guide content.
`)
	fmt.Fprintf(&b, "6. LANGUAGE: Generate the entire response in %s.\n\n", language)
	fmt.Fprintf(&b, "EXAMPLE (IN %s):\n", language)
	b.WriteString(`| Step | Technical Task | Location/Prerequisite | Optimization Notes |
| :--- | :--- | :--- | :--- |
| 1 | Unlock [Skill] | Skill Tree | Required for Step 2 |
| 2 | Execute [Action] | [Specific Location] | Must be done during Night |`)
	return b.String()
}

// BulkPrompt asks for one master table covering every incomplete
// achievement of game, in list order.
func BulkPrompt(game string, list []trophy.Achievement, language string) string {
	language = orDefault(language)

	lines := make([]string, 0, len(list))
	for _, a := range list {
		if a.Game != game || a.Achieved {
			continue
		}
		lines = append(lines, a.Name+": "+a.Description)
	}

	var b strings.Builder
	b.WriteString("INSTRUCTION: COMPREHENSIVE ACHIEVEMENT MASTER STRATEGY SHEET\n")
	fmt.Fprintf(&b, "GAME: \"%s\"\n", game)
	b.WriteString("DATASET:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString(`

STRICT OUTPUT RULES:
1. FORMAT: A SINGLE unified Markdown Table for all data.
2. COLUMNS: | Achievement | Step | Technical Task | Location/Prerequisite | Optimization Notes |
3. EXHAUSTIVE FACTORIZATION: You MUST deconstruct every achievement into its FULL technical roadmap.
4. NO SUMMARIES: If an achievement needs 5 actions to solve, it MUST occupy 5 separate rows. Do not collapse details into "Step 1".
5. SORTING: All rows MUST be grouped by Achievement Name. All steps for a single achievement must appear consecutively from Step 1 to Final Step.
6. NO LISTS: Use only table rows. No checkboxes, no bullets.
7. MISSABLES: Put "!!MISSABLE!!" in the Notes column for critical steps.
`)
	fmt.Fprintf(&b, "8. LANGUAGE: Generate the entire response, including headers and descriptions, in %s.\n\n", language)
	fmt.Fprintf(&b, "EXAMPLE MASTER SHEET (IN %s):\n", language)
	b.WriteString(`| Achievement | Step | Technical Task | Location/Prerequisite | Optimization Notes |
| :--- | :--- | :--- | :--- | :--- |
| Treasure Hunter | 1 | Unlock [Skill: Sight] | Skill Menu | Required to see hidden chests |
| Treasure Hunter | 2 | Secure [Chest A] | [Area 1] | !!MISSABLE!! Before boss fight |
| Combat Master | 1 | Kill 10 [Enemy X] | [Area 1] | Use [Weapon A] |
| Treasure Hunter | 3 | Secure [Chest B] | [Area 2] | Use Key from Area 1 |`)
	return b.String()
}

func orDefault(language string) string {
	if strings.TrimSpace(language) == "" {
		return DefaultLanguage
	}
	return language
}
