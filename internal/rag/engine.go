package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"repoqa/internal/contextutil"
	"repoqa/internal/llm"
	"repoqa/internal/vectorstore"
)

const (
	// DefaultTopK is the number of chunks retrieved as context when the
	// request does not override it.
	DefaultTopK = 5
	// maxTopK caps caller-provided K.
	maxTopK = 20
	// previewSize is the length of the source preview prefix, in runes.
	previewSize = 150
)

// Engine answers questions about indexed repositories.
type Engine interface {
	// Ask retrieves the most relevant chunks for the question and generates a
	// grounded answer citing them.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	batcher     *llm.Batcher
	vectorStore vectorstore.VectorStore
	collection  string
	generator   llm.Generator
	topK        int
}

// NewEngine creates a new query engine.
// topK <= 0 falls back to DefaultTopK.
func NewEngine(
	batcher *llm.Batcher,
	vectorStore vectorstore.VectorStore,
	collection string,
	generator llm.Generator,
	topK int,
) Engine {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &ragEngine{
		batcher:     batcher,
		vectorStore: vectorStore,
		collection:  collection,
		generator:   generator,
		topK:        topK,
	}
}

// Ask answers a question about a repository.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	logger.InfoContext(ctx, "query started", "repo", req.Repo, "question_length", len(req.Question))

	vectors, err := e.batcher.EmbedTexts(ctx, []string{req.Question})
	if err != nil {
		return AskResponse{}, &QueryError{Repo: req.Repo, Stage: StageEmbed, Err: err}
	}
	if len(vectors) == 0 {
		return AskResponse{}, &QueryError{Repo: req.Repo, Stage: StageEmbed, Err: fmt.Errorf("no embedding returned for question")}
	}
	queryVector := vectors[0]

	k := req.K
	if k <= 0 {
		k = e.topK
	}
	if k > maxTopK {
		k = maxTopK
	}

	results, err := e.vectorStore.Search(ctx, e.collection, req.Repo, queryVector, k)
	if err != nil {
		return AskResponse{}, &QueryError{Repo: req.Repo, Stage: StageSearch, Err: err}
	}

	if len(results) == 0 {
		logger.InfoContext(ctx, "no stored chunks for repository", "repo", req.Repo)
		return AskResponse{}, &QueryError{Repo: req.Repo, Stage: StageSearch, Err: ErrNotIndexed}
	}

	// The store returns hits ranked by similarity; keep the order defensive
	// against adapters that do not.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > 0 {
		topScores := make([]float32, 0, 3)
		for i := 0; i < len(results) && i < 3; i++ {
			topScores = append(topScores, results[i].Score)
		}
		logger.DebugContext(ctx, "retrieval completed", "repo", req.Repo, "results", len(results), "top_scores", topScores)
	}

	prompt := buildPrompt(req.Repo, req.Question, results)
	logger.DebugContext(ctx, "prompt built", "prompt_length", len(prompt), "chunks_included", len(results))

	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return AskResponse{}, &QueryError{Repo: req.Repo, Stage: StageGenerate, Err: err}
	}

	sources := make([]Source, 0, len(results))
	for _, result := range results {
		file, _ := result.Meta[vectorstore.MetaPath].(string)
		content, _ := result.Meta[vectorstore.MetaContent].(string)
		sources = append(sources, Source{
			File:    file,
			Score:   result.Score,
			Preview: preview(content),
		})
	}

	logger.InfoContext(ctx, "query completed", "repo", req.Repo, "chunks_used", len(results), "answer_length", len(answer))

	return AskResponse{
		Answer:  answer,
		Sources: sources,
	}, nil
}

// buildPrompt assembles a single grounded prompt: retrieved chunks labeled by
// source file, followed by instructions and the question.
func buildPrompt(repo, question string, results []vectorstore.SearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are answering a question about the %s repository using only the source excerpts below.\n\n", repo)

	for i, result := range results {
		file, _ := result.Meta[vectorstore.MetaPath].(string)
		content, _ := result.Meta[vectorstore.MetaContent].(string)
		fmt.Fprintf(&b, "[%d] File: %s\n%s\n\n", i+1, file, content)
	}

	b.WriteString("Answer the question using only the excerpts above. ")
	b.WriteString("Reference the relevant files by name. ")
	b.WriteString("If the excerpts do not contain enough information to answer, say so explicitly.\n\n")
	fmt.Fprintf(&b, "Question: %s", question)

	return b.String()
}

// preview returns a bounded-length prefix of the chunk content.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewSize {
		return content
	}
	return string(runes[:previewSize]) + "..."
}
