package router

import "strings"

// Task types assigned by IdentifyTaskType.
const (
	TaskCoding      = "coding"
	TaskAnalysis    = "analysis"
	TaskCreative    = "creative"
	TaskCasual      = "casual"
	TaskCurrentInfo = "current_info"
	TaskGeneral     = "general"
)

// Question types assigned by ClassifyQuestion.
const (
	QuestionProblemSolving = "problem_solving"
	QuestionFactual        = "factual"
	QuestionYesNo          = "yes_no"
	QuestionAnalysis       = "analysis"
	QuestionCasual         = "casual"
	QuestionOpenEnded      = "open_ended"
)

var (
	codingKeywords      = []string{"code", "program", "function", "debug"}
	analysisKeywords    = []string{"analyze", "compare", "evaluate"}
	creativeKeywords    = []string{"create", "generate", "write"}
	casualKeywords      = []string{"hi", "hello", "hey", "how are you"}
	currentInfoKeywords = []string{"news", "current events", "latest", "today"}

	problemKeywords  = []string{"how", "why", "explain"}
	factualKeywords  = []string{"what", "who", "where", "when"}
	yesNoPrefixes    = []string{"is", "are", "can", "do", "does"}
	compareKeywords  = []string{"compare", "contrast", "analyze"}
	greetingKeywords = []string{"hi", "hello", "hey", "how are you"}
)

// IdentifyTaskType tags a query with a coarse task type via case-insensitive
// keyword containment. First matching category wins; the priority order is
// fixed and deliberate (coding outranks creative so "write a function" codes).
func IdentifyTaskType(query string) string {
	queryLower := strings.ToLower(query)
	switch {
	case containsAny(queryLower, codingKeywords):
		return TaskCoding
	case containsAny(queryLower, analysisKeywords):
		return TaskAnalysis
	case containsAny(queryLower, creativeKeywords):
		return TaskCreative
	case containsAny(queryLower, casualKeywords):
		return TaskCasual
	case containsAny(queryLower, currentInfoKeywords):
		return TaskCurrentInfo
	default:
		return TaskGeneral
	}
}

// ClassifyQuestion tags the question form of a query, again first match wins.
func ClassifyQuestion(query string) string {
	queryLower := strings.ToLower(query)
	switch {
	case containsAny(queryLower, problemKeywords):
		return QuestionProblemSolving
	case containsAny(queryLower, factualKeywords):
		return QuestionFactual
	case hasAnyPrefix(queryLower, yesNoPrefixes):
		return QuestionYesNo
	case containsAny(queryLower, compareKeywords):
		return QuestionAnalysis
	case containsAny(queryLower, greetingKeywords):
		return QuestionCasual
	default:
		return QuestionOpenEnded
	}
}

// ResponseStrategy picks the answer shape for a question/task pairing.
func ResponseStrategy(questionType, taskType string) string {
	if taskType == TaskCasual || questionType == QuestionCasual {
		return "casual_conversation"
	}

	switch questionType {
	case QuestionProblemSolving:
		return "chain_of_thought"
	case QuestionFactual:
		return "direct_answer"
	case QuestionYesNo:
		return "boolean_with_explanation"
	case QuestionAnalysis:
		return "comparative_analysis"
	case QuestionOpenEnded:
		return "open_discussion"
	default:
		return "default"
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
