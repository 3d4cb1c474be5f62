package llm

import (
	"context"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
)

// Classifier is the Stage 1 relevance collaborator. Implementations must return
// a complete Stage1Result or an error; a malformed model response is an error.
type Classifier interface {
	Classify(ctx context.Context, article model.RawArticle) (*model.Stage1Result, error)
}

// Extractor is the Stage 2 structured-extraction collaborator under the same
// always-complete-or-error contract. It is responsible for emitting the five
// identity fields the normalized signature is built from.
type Extractor interface {
	Extract(ctx context.Context, article model.RawArticle) (*model.Stage2Extraction, error)
}
