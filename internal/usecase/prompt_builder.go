package usecase

import (
	"strings"
)

// PromptBuilder renders the generation prompt from the question and the
// assembled context.
type PromptBuilder interface {
	Build(question, context string) string
}

// TAPromptBuilder renders the fixed course teaching-assistant template,
// instructing the model to answer strictly from the supplied context.
type TAPromptBuilder struct {
	courseName string
}

// NewTAPromptBuilder creates a prompt builder for the named course.
func NewTAPromptBuilder(courseName string) *TAPromptBuilder {
	return &TAPromptBuilder{courseName: courseName}
}

// Build renders the prompt with the context and question embedded.
func (b *TAPromptBuilder) Build(question, context string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful Virtual TA for the ")
	sb.WriteString(b.courseName)
	sb.WriteString(" course.\n")
	sb.WriteString("Answer the following question based on this context:\n\n")
	sb.WriteString(context)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n")
	return sb.String()
}

var _ PromptBuilder = (*TAPromptBuilder)(nil)
