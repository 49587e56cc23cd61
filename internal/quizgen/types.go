package quizgen

// Difficulty labels accepted from the model.
const (
	DifficultyEasy   = "facile"
	DifficultyMedium = "moyen"
	DifficultyHard   = "difficile"
)

// OptionCount is the number of answer candidates every MCQ carries.
const OptionCount = 4

// MCQ is one multiple-choice question. Options are in presentation order
// and Answer indexes the correct one.
type MCQ struct {
	Question    string   `json:"question"`
	Difficulty  string   `json:"difficulty"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Items []MCQ `json:"items"`
}
