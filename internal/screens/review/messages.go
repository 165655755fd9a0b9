package review

import (
	"github.com/abhisek/quizflip/internal/catalog"
	"github.com/abhisek/quizflip/internal/explain"
)

// catalogLoadedMsg carries the result of a catalog load.
type catalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
	// First marks the run's initial load, which restores the saved record.
	First bool
	Sets  []string
}

// explainedMsg carries an LLM explanation for a question.
type explainedMsg struct {
	QuestionID  string
	Explanation *explain.Explanation
	Err         error
}
