package pdf

import "quotedesk/go_backend/internal/domain/quotation"

type Generator interface {
	Generate(doc quotation.Document) ([]byte, error)
}
