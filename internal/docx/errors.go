package docx

import "fmt"

// OpenError reports a file that could not be opened or parsed as a
// WordprocessingML container.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open document %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SaveError reports a failure while persisting a document.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save document %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
