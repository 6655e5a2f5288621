package models

type QuoteMood string

const (
	MoodMotivational  QuoteMood = "motivational"
	MoodInspirational QuoteMood = "inspirational"
	MoodCalming       QuoteMood = "calming"
	MoodEnergizing    QuoteMood = "energizing"
	MoodReflective    QuoteMood = "reflective"
)

type QuoteContext string

const (
	ContextMorning   QuoteContext = "morning"
	ContextAfternoon QuoteContext = "afternoon"
	ContextEvening   QuoteContext = "evening"
	ContextStruggle  QuoteContext = "struggle"
	ContextSuccess   QuoteContext = "success"
	ContextAnytime   QuoteContext = "anytime"
)

type Quote struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Author   string       `json:"author"`
	Category []string     `json:"category"`
	Mood     QuoteMood    `json:"mood"`
	Context  QuoteContext `json:"context"`
}
