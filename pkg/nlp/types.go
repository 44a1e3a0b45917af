package nlp

import "RomiioBot/pkg/catalog"

type Intent string

const (
	IntentNone    Intent = ""
	IntentMenu    Intent = "menu"
	IntentContact Intent = "contact"
	IntentAbout   Intent = "about"
	IntentBook    Intent = "book"
)

func (i Intent) String() string {
	if i == IntentNone {
		return "none"
	}
	return string(i)
}

// IClassifier exposes the rule based probes used by the conversation engine.
// Every probe expects text that already went through Normalize.
type IClassifier interface {
	Normalize(text string) string
	IsGreeting(text string) bool
	DetectCommand(text string) (Intent, bool)
	DetectCategory(text string) (catalog.Category, bool)
	MapPackageKey(text string, category catalog.Category) catalog.PackageKey
	HasWord(text, word string) bool
	IsPaymentMention(text string) bool
}
