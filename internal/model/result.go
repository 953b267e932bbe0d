package model

import "fmt"

// Source identifies which stage of the engine produced a result.
type Source string

const (
	SourceCache    Source = "Cache"
	SourceLexical  Source = "LexicalMatch"
	SourceSemantic Source = "SemanticMatch"
	SourceNoMatch  Source = "NoMatch"
	SourceError    Source = "Error"
)

// Result is the outcome of one classification call.
type Result struct {
	Code         string   `json:"code"`
	Title        string   `json:"title,omitempty"`
	Confidence   int      `json:"confidence"` // [0,100]
	Source       Source   `json:"source"`
	// Alternatives holds up to two runner-up candidates formatted
	// "code (score%)", second-best first.
	Alternatives []string `json:"alternatives,omitempty"`
}

// ErrorResult builds an Error-sourced result carrying the reason in the
// code payload. Classification never fails with a Go error; failures are
// data.
func ErrorResult(reason string) Result {
	return Result{
		Code:       fmt.Sprintf("NC - %s", reason),
		Confidence: 0,
		Source:     SourceError,
	}
}

// NoMatchResult is returned when no candidate clears the scorer's floor.
func NoMatchResult() Result {
	return Result{
		Code:       "NC - Unclassified",
		Confidence: 0,
		Source:     SourceNoMatch,
	}
}
