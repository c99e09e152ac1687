// Package conversation turns typed or spoken commands into intents.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/healthmate/internal/domain"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches input against short command phrases. Anything that
// is not a command is handed back as a search.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(next|forward|n|next one|show me the next one)$`), domain.IntentNext},
		{regexp.MustCompile(`(?i)^(back|previous|prev|p|go back|last one)$`), domain.IntentPrevious},
		{regexp.MustCompile(`(?i)^(exercises?|show exercises|workouts?)$`), domain.IntentShowExercises},
		{regexp.MustCompile(`(?i)^(recipes?|show recipes|food|meals?)$`), domain.IntentShowRecipes},
		{regexp.MustCompile(`(?i)^(switch|other tab|tab)$`), domain.IntentToggleTab},
		{regexp.MustCompile(`(?i)^(home|catalog|menu|start over)$`), domain.IntentHome},
		{regexp.MustCompile(`(?i)^(read|read it|speak|say it|read (this|that|card))$`), domain.IntentReadCard},
		{regexp.MustCompile(`(?i)^(intro|introduction|listen)$`), domain.IntentIntro},
		{regexp.MustCompile(`(?i)^(tips|read tips|helpful tips)$`), domain.IntentReadTips},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|bye|goodbye|q)$`), domain.IntentQuit},
	}
	return p
}

// Parse converts user input into an intent. Spoken input usually arrives
// with trailing punctuation ("Next."), which is ignored.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := normalize(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// Catalog selection by position ("1", "2").
	if len(trimmed) <= 2 && isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentSelect, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	// "search for joint pain", "find diabetes", "show me low energy".
	for _, prefix := range searchPrefixes {
		if len(trimmed) > len(prefix) && strings.EqualFold(trimmed[:len(prefix)], prefix) {
			rest := strings.TrimSpace(trimmed[len(prefix):])
			if rest != "" {
				return &domain.Intent{Type: domain.IntentSearch, Payload: rest}, nil
			}
		}
	}

	p.log.Debug("no command matched, treating as search")
	return &domain.Intent{Type: domain.IntentSearch, Payload: trimmed}, nil
}

// searchPrefixes are lead-ins stripped from a spoken search.
var searchPrefixes = []string{
	"search for ",
	"search ",
	"find ",
	"look up ",
	"show me ",
	"i have ",
	"i've got ",
}

// normalize trims whitespace and the sentence punctuation speech-to-text adds.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!,")
	return strings.TrimSpace(s)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
