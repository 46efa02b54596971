// Package normalize rewrites raw model answers into terse, user-facing text.
// It is an ordered pipeline of stateless string rules; the order matters
// because later rules assume earlier cleanup already happened. Normalize is
// total and never returns an empty string. It is NOT idempotent: re-running it
// on its own output may add a duplicate opener prefix.
package normalize

import "strings"

// Fallback is returned when every rule together strips the answer to nothing.
const Fallback = "I can help you with that based on the system documentation."

// noAnswerMarkers signal an intentional "no answer" that must not be reworded.
var noAnswerMarkers = []string{
	"cannot answer",
	"not available",
	"don't have information",
}

// formalLeadIns are removed by exact substring match wherever they occur.
var formalLeadIns = []string{
	"According to the documentation, ",
	"This is explicitly stated in the documentation. ",
	"The system documentation specifies that ",
	"As documented in the system, ",
	"The documentation indicates ",
	"As outlined in the documentation, ",
	"The official procedure is: ",
	"Documented steps are: ",
	"System requirements include: ",
	"These are the documented requirements",
	"This process is fully documented",
	"This information is documented in the official system documentation.",
}

var toneRewrites = [][2]string{
	{"The system requires", "You need to"},
	{"The documentation specifies", ""},
	{"official system procedures", "steps"},
	{"documented procedures", "steps"},
	{"cannot be added", "can't be used in"},
	{"can only be added", "can only be used in"},
}

var transitionPhrases = []string{
	"you need to follow these steps:",
	"the process is as follows:",
	"the way to do this is:",
}

// fillerPhrases drop the whole line they appear on.
var fillerPhrases = []string{
	"that's it!",
	"you've successfully",
	"once you've filled",
}

var recognizedOpeners = []string{
	"to", "you", "here", "first", "steps", "simply", "just", "when", "if",
	"1.", "yes", "no", "there are", "the system",
}

var actionVerbs = []string{"click", "press", "go to", "navigate"}

var equipmentWords = []string{"machine", "vehicle", "trailer", "equipment"}

// Normalize applies the rewrite rules in order and returns the final answer.
func Normalize(raw string) string {
	if isNoAnswer(raw) {
		return raw
	}
	s := stripFormalLeadIns(raw)
	s = stripMarkdownMarkers(s)
	s = applyToneRewrites(s)
	s = strings.TrimSpace(s)
	s = stripTransitions(s)
	s = dropFillerLines(s)
	if s == "" {
		return Fallback
	}
	return applyOpener(s)
}

func isNoAnswer(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range noAnswerMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func stripFormalLeadIns(s string) string {
	for _, phrase := range formalLeadIns {
		s = strings.ReplaceAll(s, phrase, "")
	}
	return s
}

func stripMarkdownMarkers(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "- ", "")
	return strings.ReplaceAll(s, "* ", "")
}

func applyToneRewrites(s string) string {
	for _, r := range toneRewrites {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}

func stripTransitions(s string) string {
	for _, phrase := range transitionPhrases {
		s = strings.ReplaceAll(s, phrase, "")
	}
	return s
}

func dropFillerLines(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || containsFiller(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func containsFiller(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range fillerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// applyOpener prefixes the answer with a natural opener when it does not
// already begin with a recognized one. At most one prefix is applied, checked
// in priority order.
func applyOpener(s string) string {
	lower := strings.ToLower(s)
	for _, opener := range recognizedOpeners {
		if strings.HasPrefix(lower, opener) {
			return s
		}
	}
	if containsAny(head(lower, 30), actionVerbs) {
		return "To do this: " + s
	}
	if strings.HasPrefix(lower, "1.") {
		return "Steps:\n" + s
	}
	if containsAny(head(lower, 20), equipmentWords) {
		return "Here's how equipment works: " + s
	}
	return s
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
