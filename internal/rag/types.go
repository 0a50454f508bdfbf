package rag

// AskRequest represents a repository Q&A request.
type AskRequest struct {
	// Repo is the repository identifier in "owner/name" form.
	Repo string `json:"repo"`
	// Question is the user's question about the repository.
	Question string `json:"question"`
	// K optionally overrides the number of chunks retrieved as context.
	K int `json:"k,omitempty"`
}

// Source identifies a retrieved chunk that grounded the answer.
type Source struct {
	// File is the relative path of the chunk's source file.
	File string `json:"file"`
	// Score is the similarity score reported by the vector store (higher is
	// more similar).
	Score float32 `json:"score"`
	// Preview is a bounded-length prefix of the chunk content, for displaying
	// provenance without re-fetching the chunk.
	Preview string `json:"preview"`
}

// AskResponse represents the answer to a repository question.
type AskResponse struct {
	// Answer is the generated answer, returned verbatim from the model.
	Answer string `json:"answer"`
	// Sources are the chunks used as context, in retrieval rank order.
	Sources []Source `json:"sources"`
}
