// Package respond turns candidate posts into humanized, quality-scored
// reply text.
package respond

import (
	"regexp"
	"strings"
)

const (
	maxSentences   = 3
	maxResponseLen = 1000
	minResponseLen = 100
)

const followUpInvite = "Feel free to ask if you need more specific guidance on any of these points!"

// aiSelfReferences are stripped outright, case-insensitively.
var aiSelfReferences = regexp.MustCompile(`(?i)As an AI|I am an AI|As a language model`)

// casualReplacements swap formal phrasing for how a person actually writes.
// Patterns are case-sensitive as listed.
var casualReplacements = []struct{ from, to string }{
	{"I understand that you", "You"},
	{"I would recommend", "I'd try"},
	{"Based on my experience", "In my experience"},
	{"It is important to note", "Just keep in mind"},
	{"Additionally,", "Also,"},
	{"Furthermore,", "Plus,"},
	{"Please feel free to", "Feel free to"},
	{"I hope this helps!", "Hope this helps!"},
	{"Best of luck!", "Good luck!"},
}

// contractions are applied on word boundaries. Each replacement is
// fixed-point stable: no output re-contains its own pattern.
var contractions = []struct {
	pattern *regexp.Regexp
	to      string
}{
	{regexp.MustCompile(`\bdo not\b`), "don't"},
	{regexp.MustCompile(`\bcannot\b`), "can't"},
	{regexp.MustCompile(`\bwill not\b`), "won't"},
	{regexp.MustCompile(`\bshould not\b`), "shouldn't"},
	{regexp.MustCompile(`\bwould not\b`), "wouldn't"},
	{regexp.MustCompile(`\bit is\b`), "it's"},
	{regexp.MustCompile(`\byou are\b`), "you're"},
	{regexp.MustCompile(`\bthat is\b`), "that's"},
}

var (
	sentenceEnd    = regexp.MustCompile(`[.!?]+`)
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	headerLine     = regexp.MustCompile(`^\w+:`)
)

// Humanize post-processes generated text into a concise, contraction-using,
// non-corporate reply. Deterministic; never fails.
func Humanize(raw string) string {
	text := raw

	text = aiSelfReferences.ReplaceAllString(text, "")

	for _, r := range casualReplacements {
		text = strings.ReplaceAll(text, r.from, r.to)
	}

	for _, c := range contractions {
		text = c.pattern.ReplaceAllString(text, c.to)
	}

	text = capSentences(text)
	text = enforceCeiling(text)

	if len(text) < minResponseLen {
		text += "\n\n" + followUpInvite
	}

	text = formatMarkdown(text)

	return strings.TrimSpace(text)
}

// capSentences keeps at most maxSentences sentences, re-terminated with
// a period.
func capSentences(text string) string {
	parts := sentenceEnd.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	if len(sentences) <= maxSentences {
		return text
	}
	return strings.Join(sentences[:maxSentences], ". ") + "."
}

// enforceCeiling truncates an overlong reply to roughly the first 70% of
// its sentences and closes it off.
func enforceCeiling(text string) string {
	if len(text) <= maxResponseLen {
		return text
	}
	sentences := strings.Split(text, ".")
	keep := int(float64(len(sentences)) * 0.7)
	if keep < 1 {
		keep = 1
	}
	truncated := strings.Join(sentences[:keep], ".")
	return strings.TrimRight(truncated, ". ") + ". Hope this helps!"
}

// formatMarkdown normalizes spacing and bolds "Label:" header lines,
// leaving existing list markers untouched.
func formatMarkdown(text string) string {
	text = excessNewlines.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isListItem(line) {
			lines[i] = line
			continue
		}
		if headerLine.MatchString(line) {
			line = "**" + line + "**"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func isListItem(line string) bool {
	for _, prefix := range []string{"1.", "2.", "3.", "4.", "5.", "•", "-", "*"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
