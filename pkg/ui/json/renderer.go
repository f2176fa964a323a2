// Package json prints results, messages and coded errors as indented JSON
// documents, one per call.
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/warforge/pkg/errors"
)

type errorDoc struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type messageDoc struct {
	Message string `json:"message"`
}

// Renderer encodes to a single writer.
type Renderer struct {
	enc *json.Encoder
}

// New creates a JSON renderer writing to output.
func New(output io.Writer) (*Renderer, error) {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return &Renderer{enc: enc}, nil
}

// RenderResult encodes result as is. Reports and packaging results carry
// their own JSON field names.
func (r *Renderer) RenderResult(result interface{}) error {
	return r.enc.Encode(result)
}

// RenderError encodes err with its code and details. Errors that carry no
// code leave both out.
func (r *Renderer) RenderError(err error) error {
	doc := errorDoc{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		doc.Code = code
		doc.Details = errors.GetErrorDetails(err)
	}
	return r.enc.Encode(doc)
}

// RenderMessage encodes msg as {"message": msg}.
func (r *Renderer) RenderMessage(msg string) error {
	return r.enc.Encode(messageDoc{Message: msg})
}
