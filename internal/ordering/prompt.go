package ordering

import (
	"encoding/json"
	"fmt"
	"strings"
)

const orderingSystemPrompt = `You are a spaced-repetition tutor deciding the order a learner should practice quiz questions in.

Rules:
- You will receive one entry per question with its id, text, and practice history.
- Prioritize questions the learner gets wrong most often (low timesCorrect relative to timesAnswered) first.
- Among those, prefer questions not attempted for the longest time.
- Questions whose nextReview time has passed are overdue and should come early.
- Never-practiced questions go after struggling ones but before well-known ones.
- Return every id you were given exactly once. Do not invent ids.`

// buildOrderingMessage formats the performance snapshots for the prompt.
func buildOrderingMessage(snapshots []snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order these %d questions for the next practice session.\n\n", len(snapshots))
	b.WriteString("Questions:\n")
	for _, s := range snapshots {
		line, err := json.Marshal(s)
		if err != nil {
			continue
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	b.WriteString("\nRespond with the orderedIds list and a one-sentence reasoning.")

	return b.String()
}
