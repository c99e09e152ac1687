package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentNext               // move forward in the active carousel
	IntentPrevious           // move back in the active carousel
	IntentShowExercises
	IntentShowRecipes
	IntentToggleTab
	IntentSelect // open a catalog entry by position
	IntentSearch // free text resolved against the catalog
	IntentHome
	IntentReadCard
	IntentIntro
	IntentReadTips
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentShowExercises:
		return "show_exercises"
	case IntentShowRecipes:
		return "show_recipes"
	case IntentToggleTab:
		return "toggle_tab"
	case IntentSelect:
		return "select"
	case IntentSearch:
		return "search"
	case IntentHome:
		return "home"
	case IntentReadCard:
		return "read_card"
	case IntentIntro:
		return "intro"
	case IntentReadTips:
		return "read_tips"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // search text or catalog position
}
