package session

// Style is the learner's pedagogical mode. It shapes both generation
// requests and how the session frames its panels. A style is chosen
// directly or derived from the style-discovery quiz, and is immutable
// for the lifetime of a Session.
type Style string

const (
	StyleVisual       Style = "Visual"
	StyleFeynman      Style = "Feynman"
	StyleCornellNotes Style = "Cornell Notes"
	StyleSQ3R         Style = "SQ3R Method"
)

// DefaultStyle is the fallback when style classification returns
// something that is not a recognized style name.
const DefaultStyle = StyleFeynman

// AllStyles lists the styles in display order.
var AllStyles = []Style{StyleVisual, StyleFeynman, StyleCornellNotes, StyleSQ3R}

// ParseStyle maps a raw style name to a Style. Returns ("", false) when
// the name does not match any known style.
func ParseStyle(s string) (Style, bool) {
	for _, st := range AllStyles {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Valid reports whether the style is one of the enumerated set.
func (s Style) Valid() bool {
	_, ok := ParseStyle(string(s))
	return ok
}

// StyleInfo describes a learning style for pickers and the results screen.
type StyleInfo struct {
	Style       Style
	Description string
}

// StyleCatalog is the fixed set of styles offered to the learner.
var StyleCatalog = []StyleInfo{
	{StyleVisual, "I learn best with mind maps, diagrams, and visual aids."},
	{StyleFeynman, "I prefer breaking down complex topics into simple explanations."},
	{StyleCornellNotes, "I like to organize information with structured notes."},
	{StyleSQ3R, "I use a system: Survey, Question, Read, Recite, Review."},
}

// Describe returns the catalog description for a style, or "" if unknown.
func Describe(s Style) string {
	for _, info := range StyleCatalog {
		if info.Style == s {
			return info.Description
		}
	}
	return ""
}

// DiscoveryQuestion is one question of the fixed style-discovery quiz.
// Option order matches StyleCatalog order so that each answer leans
// toward one style, but classification is left to the model.
type DiscoveryQuestion struct {
	Question string
	Options  []string
}

// DiscoveryQuiz is the fixed four-question style-discovery quiz.
var DiscoveryQuiz = []DiscoveryQuestion{
	{
		Question: "When faced with a new, complex topic, what is your first instinct?",
		Options: []string{
			"To find a video or diagram that explains it.",
			"To try and explain it to someone else in simple terms.",
			"To start taking structured notes with questions in the margins.",
			"To skim through the material to get a general overview first.",
		},
	},
	{
		Question: "How do you prefer to study for a test?",
		Options: []string{
			"Drawing charts and creating color-coded notes.",
			"Talking through the concepts out loud as if teaching a class.",
			"Reviewing my organized notes and summarizing the summaries.",
			"Answering pre-made questions and reviewing sections I get wrong.",
		},
	},
	{
		Question: "What's most helpful when you get 'stuck' on an idea?",
		Options: []string{
			"Seeing a real-world example or a visual metaphor.",
			"Finding a very simple analogy to relate it to something I know.",
			"Writing down specific questions I have about it.",
			"Going back to the beginning and re-reading the material methodically.",
		},
	},
	{
		Question: "When you assemble furniture, what is your approach?",
		Options: []string{
			"I rely heavily on the diagrams and pictures in the manual.",
			"I read the steps and then try to explain them to myself before I do them.",
			"I lay out all the pieces and make notes on the instructions.",
			"I quickly scan all the instructions first to understand the whole process.",
		},
	},
}
