package domain

import (
	"strings"
	"unicode/utf8"
)

// turnOverhead accounts for the role labels and separators added when a
// turn is rendered into the prompt.
const turnOverhead = 8

// MemoryBuffer is a token-bounded rolling window over a conversation's
// turns. It is rebuilt per request by replaying stored history in order;
// once the token budget is exceeded the oldest turns are dropped first.
// Not safe for concurrent use - each request builds its own.
type MemoryBuffer struct {
	maxTokens int
	turns     []Turn
	costs     []int
	total     int
}

// NewMemoryBuffer creates a buffer holding at most maxTokens estimated
// tokens of history.
func NewMemoryBuffer(maxTokens int) *MemoryBuffer {
	if maxTokens <= 0 {
		maxTokens = 3000
	}
	return &MemoryBuffer{maxTokens: maxTokens}
}

// Add appends a turn and evicts from the front until the buffer fits the
// token budget again. A single oversized turn is kept on its own so the
// most recent exchange is never lost.
func (b *MemoryBuffer) Add(t Turn) {
	cost := estimateTokens(t.Question) + estimateTokens(t.Answer) + turnOverhead
	b.turns = append(b.turns, t)
	b.costs = append(b.costs, cost)
	b.total += cost

	for b.total > b.maxTokens && len(b.turns) > 1 {
		b.total -= b.costs[0]
		b.turns = b.turns[1:]
		b.costs = b.costs[1:]
	}
}

// Len returns the number of turns currently held.
func (b *MemoryBuffer) Len() int {
	return len(b.turns)
}

// Render formats the retained history for prompt inclusion, oldest first.
func (b *MemoryBuffer) Render() string {
	if len(b.turns) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, t := range b.turns {
		sb.WriteString("Human: ")
		sb.WriteString(t.Question)
		sb.WriteString("\nAssistant: ")
		sb.WriteString(t.Answer)
		sb.WriteString("\n")
	}
	return sb.String()
}

// estimateTokens is a deterministic heuristic: roughly one token per four
// runes, floored at the word count for short CJK/Arabic-script text.
func estimateTokens(s string) int {
	runes := utf8.RuneCountInString(s) / 4
	words := len(strings.Fields(s))
	if words > runes {
		return words
	}
	return runes
}
