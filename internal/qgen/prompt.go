package qgen

import (
	"fmt"
	"strings"
)

const generationSystemPrompt = `You are converting study material into multiple choice quiz questions.

Rules:
- Cover the material: write as many questions as it supports, typically with four options each.
- Every question needs a clear prompt, at least two non-empty options, the correct answer, and a brief explanation.
- correctAnswer is the 0-based index of the correct option, or an array of indices for multi-answer questions.
- For multi-answer questions, say so in the question text (for example "Select all that apply").
- Distractors should reflect plausible misunderstandings of the material, not random values.
- Respond with JSON only, no surrounding text.`

// buildGenerationMessage wraps the study material for the prompt.
func buildGenerationMessage(material string) string {
	var b strings.Builder

	b.WriteString("Convert the following study material into multiple choice questions.\n\n")
	b.WriteString("Study material:\n")
	b.WriteString(material)
	b.WriteString("\n\nRespond with JSON in this exact shape:\n")
	fmt.Fprintf(&b, `{"questions":[{"question":"...","options":["...","..."],"correctAnswer":0,"explanation":"..."}]}`)

	return b.String()
}
