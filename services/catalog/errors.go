package catalog

import "fmt"

// CatalogError carries a stable code so handlers can choose a response status
// without inspecting message text.
type CatalogError struct {
	Code    string
	Message string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidService = "invalidService"
	CodeInvalidBlock   = "invalidBlock"
	CodeUnknownBlock   = "unknownBlock"
	CodeBadReorder     = "badReorder"
)

func newInvalidBlockError(format string, args ...any) error {
	return &CatalogError{Code: CodeInvalidBlock, Message: fmt.Sprintf(format, args...)}
}
