// Package result defines the JSON envelope printed by chward commands.
package result

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/multierr"
)

type Result struct {
	Data  *Data  `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

func New(kind string) *Result {
	return &Result{
		Data: NewData(kind),
	}
}

// AddErrors records err, dropping any data items added before. Errors
// combined by multierr are recorded one by one.
func (r *Result) AddErrors(err error) {
	if err == nil {
		return
	}
	if r.Error == nil {
		r.Error = new(Error)
	}
	r.Data = nil
	for _, e := range multierr.Errors(err) {
		r.Error.AddError(e)
	}
}

func (r *Result) AddDataItems(items ...any) {
	if r.Error != nil {
		panic("result having errors")
	}
	for _, item := range items {
		r.Data.AddItem(item)
	}
}

func (r *Result) GetDataItem(idx int) (item any, ok bool) {
	if r.Data != nil && idx < len(r.Data.Items) {
		item = r.Data.Items[idx]
		ok = true
	}
	return
}

func (r *Result) NumberOfDataItem() int {
	if r.Data != nil {
		return len(r.Data.Items)
	}
	return 0
}

func (r *Result) Err() (err error) {
	if r.Error == nil {
		return nil
	}
	for i := range r.Error.Errors {
		err = multierr.Append(err, errors.New(r.Error.Errors[i].Message))
	}
	return err
}

type Data struct {
	Kind  string `json:"kind"`
	Items []any  `json:"items"`
}

func NewData(kind string) *Data {
	return &Data{
		Kind:  kind,
		Items: make([]any, 0),
	}
}

func (d *Data) AddItem(item any) {
	d.Items = append(d.Items, item)
}

type Error struct {
	Message string         `json:"message,omitempty"`
	Errors  []*ErrorDetail `json:"errors,omitempty"`
}

func (e *Error) AddError(err error) {
	if len(e.Message) == 0 {
		e.Message = err.Error()
	}
	e.Errors = append(e.Errors, NewErrorDetailWithError(err))
}

// ErrorDetail describes an error. Reason is the innermost cause, and Message
// is the error with its context.
type ErrorDetail struct {
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func NewErrorDetailWithError(err error) *ErrorDetail {
	return &ErrorDetail{
		Reason:  rootCause(err).Error(),
		Message: err.Error(),
	}
}

func rootCause(err error) error {
	for {
		cause := pkgerrors.Cause(err)
		next := errors.Unwrap(cause)
		if next == nil {
			return cause
		}
		err = next
	}
}
