package nlp

import (
	"RomiioBot/pkg/catalog"
	"regexp"
	"strings"
)

type keywordRule[T any] struct {
	result   T
	patterns []*regexp.Regexp
	keywords []string
}

func (r keywordRule[T]) match(text string) bool {
	for _, p := range r.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return containsAny(text, r.keywords)
}

var greetingTokens = []string{
	"hi", "hii", "hello", "helo", "hey", "heyy", "start", "menu",
	"namaste", "namaskar", "salaam", "salam", "yo", "sup",
}

var commandRules = []keywordRule[Intent]{
	{result: IntentMenu, keywords: []string{"menu", "start", "help", "options"}},
	{result: IntentContact, keywords: []string{"contact", "support", "phone", "number", "reach"}},
	{result: IntentAbout, keywords: []string{"about", "info", "information", "services", "company"}},
	{result: IntentBook, keywords: []string{"book", "booking", "reserve", "schedule", "appointment"}},
}

// "text" and "call" also select additional packages once a category is
// chosen; both readings are kept on purpose.
var categoryRules = []keywordRule[catalog.Category]{
	{result: catalog.CategoryRegular, patterns: []*regexp.Regexp{wordPattern("1")}, keywords: []string{"regular"}},
	{result: catalog.CategoryEvent, patterns: []*regexp.Regexp{wordPattern("2")}, keywords: []string{"event"}},
	{result: catalog.CategorySpecial, patterns: []*regexp.Regexp{wordPattern("3")}, keywords: []string{"special", "specialized"}},
	{result: catalog.CategoryAdditional, patterns: []*regexp.Regexp{wordPattern("4")}, keywords: []string{"additional", "extra", "text", "call"}},
}

var durationRules = []keywordRule[catalog.PackageKey]{
	{result: catalog.Package1Hr, patterns: []*regexp.Regexp{durationPattern("1")}},
	{result: catalog.Package3Hr, patterns: []*regexp.Regexp{durationPattern("3")}},
	{result: catalog.Package6Hr, patterns: []*regexp.Regexp{durationPattern("6")}},
}

var specialRules = []keywordRule[catalog.PackageKey]{
	{result: catalog.PackageBike, keywords: []string{"bike", "ride"}},
	{result: catalog.PackageMovie, keywords: []string{"movie", "film", "cinema"}},
	{result: catalog.PackageTravel, keywords: []string{"travel", "trip", "tour"}},
	{result: catalog.PackageWeekend, keywords: []string{"weekend", "saturday", "sunday"}},
}

// text8 before text and late/night calls before plain calls.
var additionalRules = []keywordRule[catalog.PackageKey]{
	{result: catalog.PackageText8, keywords: []string{"text8", "8 hour text", "8 hr text", "text 8"}},
	{result: catalog.PackageText, keywords: []string{"text", "chat"}},
	{result: catalog.PackageLateCall, keywords: []string{"latecall", "late call", "late night", "night call"}},
	{result: catalog.PackageCall, keywords: []string{"call", "voice"}},
}

var (
	greetingPatterns = buildWordPatterns(greetingTokens)
	paymentPattern   = regexp.MustCompile(`done|paid|payment|upi|qr`)
)

type classifier struct {
	packageRules map[catalog.Category][]keywordRule[catalog.PackageKey]
}

func New() IClassifier {
	return &classifier{
		packageRules: map[catalog.Category][]keywordRule[catalog.PackageKey]{
			catalog.CategoryRegular:    durationRules,
			catalog.CategoryEvent:      durationRules,
			catalog.CategorySpecial:    specialRules,
			catalog.CategoryAdditional: additionalRules,
		},
	}
}

func (c *classifier) Normalize(text string) string {
	return Normalize(text)
}

func (c *classifier) IsGreeting(text string) bool {
	for _, p := range greetingPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func (c *classifier) DetectCommand(text string) (Intent, bool) {
	return firstMatch(commandRules, text)
}

func (c *classifier) DetectCategory(text string) (catalog.Category, bool) {
	return firstMatch(categoryRules, text)
}

// MapPackageKey resolves free text to a package key of the category. When no
// rule matches the normalized text itself is returned so customers can type
// an exact key; callers check the result against the catalog.
func (c *classifier) MapPackageKey(text string, category catalog.Category) catalog.PackageKey {
	if key, ok := firstMatch(c.packageRules[category], text); ok {
		return key
	}
	return catalog.PackageKey(text)
}

func (c *classifier) HasWord(text, word string) bool {
	if word == "" {
		return false
	}
	for _, tok := range strings.Fields(text) {
		if tok == word {
			return true
		}
	}
	return false
}

func (c *classifier) IsPaymentMention(text string) bool {
	return paymentPattern.MatchString(text)
}

func firstMatch[T any](rules []keywordRule[T], text string) (T, bool) {
	for _, r := range rules {
		if r.match(text) {
			return r.result, true
		}
	}
	var zero T
	return zero, false
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func wordPattern(token string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
}

func durationPattern(digit string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + digit + `(\s*(hours?|hrs?))?\b`)
}

func buildWordPatterns(tokens []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(tokens))
	for _, tok := range tokens {
		patterns = append(patterns, wordPattern(tok))
	}
	return patterns
}
