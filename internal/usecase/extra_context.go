package usecase

import (
	"strings"

	"vta-orchestrator/internal/domain"
)

// ExtraContext accumulates optional context sections (image OCR text, link
// search results) appended after the fused retrieval context. Each section
// carries a labeled header so the prompt can distinguish provenance.
type ExtraContext struct {
	b strings.Builder
}

// AddImageText appends an "[Image Text]" section. Empty text is ignored.
func (e *ExtraContext) AddImageText(text string) {
	if text == "" {
		return
	}
	e.b.WriteString("\n\n[Image Text]\n")
	e.b.WriteString(text)
}

// AddLinkContext appends a "[Link Context]" section built from the passage
// contents, newline-joined. An empty result set is ignored.
func (e *ExtraContext) AddLinkContext(passages []domain.Passage) {
	if len(passages) == 0 {
		return
	}
	contents := make([]string, len(passages))
	for i, p := range passages {
		contents[i] = p.Content
	}
	e.b.WriteString("\n\n[Link Context]\n")
	e.b.WriteString(strings.Join(contents, "\n"))
}

// String returns the accumulated blob; empty when no section was added.
func (e *ExtraContext) String() string {
	return e.b.String()
}
