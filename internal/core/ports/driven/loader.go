package driven

import "github.com/clearbrook-labs/supportrag/internal/core/domain"

// DocumentLoader extracts documents from local files. Implementations
// process every eligible file in their directory; a single file's
// failure is logged and skipped, never surfaced as a batch error.
type DocumentLoader interface {
	Load() []domain.Document
}
