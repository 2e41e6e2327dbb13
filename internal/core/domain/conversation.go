package domain

// Turn is one question/answer exchange within a conversation.
// Turns are immutable once written and ordered by arrival.
// Conversations themselves are append-only logs of turns keyed by an
// opaque id; deleting an id frees it for reuse.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
