// Package patch applies RFC 6902 JSON Patch documents to typed records.
//
// A record is encoded to its JSON representation, the operations are applied
// in order on that generic tree, and the result is decoded back into the
// record type. Untyped merging never leaks past this package.
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"spacecrew/internal/domain"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

var supportedOps = map[string]bool{
	"add": true, "remove": true, "replace": true, "move": true, "copy": true, "test": true,
}

// Document is a decoded, ordered list of patch operations.
type Document struct {
	ops jsonpatch.Patch
}

// Decode parses a raw JSON Patch document. Anything that is not an array of
// operation objects is reported as a malformed PatchError.
func Decode(raw []byte) (Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, domain.PatchError{Malformed: true, Msg: "empty patch document"}
	}
	ops, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return Document{}, domain.PatchError{Malformed: true, Err: err}
	}
	for _, op := range ops {
		if !supportedOps[op.Kind()] {
			return Document{}, domain.PatchError{Malformed: true, Msg: "unsupported operation " + strconv.Quote(op.Kind())}
		}
		if _, err := op.Path(); err != nil {
			return Document{}, domain.PatchError{Malformed: true, Msg: "operation " + op.Kind() + " has no path", Err: err}
		}
	}
	return Document{ops: ops}, nil
}

// Len is the number of operations in the document.
func (d Document) Len() int { return len(d.ops) }

// Apply runs the operations against a raw JSON document and returns the new
// document. The input is never modified.
func (d Document) Apply(doc []byte) ([]byte, error) {
	if len(d.ops) == 0 {
		return doc, nil
	}
	out, err := d.ops.Apply(doc)
	if err != nil {
		return nil, domain.PatchError{Msg: failureReason(err), Err: err}
	}
	return out, nil
}

// ApplyTo patches a copy of current and decodes the result into a fresh T.
// Fields the patched document introduces but T does not declare make the
// patch fail; type or enum errors in the result surface as validation errors.
// Every key in required must still be present and non-null after the patch.
func ApplyTo[T any](d Document, current T, required ...string) (T, error) {
	var zero T
	doc, err := json.Marshal(current)
	if err != nil {
		return zero, domain.InternalError{Msg: "encode record for patching", Err: err}
	}
	patched, err := d.Apply(doc)
	if err != nil {
		return zero, err
	}
	if err := checkRequired(patched, required); err != nil {
		return zero, err
	}

	var out T
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		if field, ok := unknownField(err); ok {
			return zero, domain.PatchError{Msg: "path /" + field + " does not exist", Err: err}
		}
		if domain.IsValidation(err) {
			return zero, err
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return zero, domain.ValidationError{Field: typeErr.Field, Msg: "has the wrong type", Err: err}
		}
		return zero, domain.ValidationError{Msg: "patched document is not a valid record", Err: err}
	}
	return out, nil
}

func checkRequired(doc []byte, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return domain.ValidationError{Msg: "patched document is not an object", Err: err}
	}
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return domain.ValidationError{Field: key, Msg: "is required"}
		}
	}
	return nil
}

func unknownField(err error) (string, bool) {
	const prefix = `json: unknown field "`
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(msg, prefix), `"`), true
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, jsonpatch.ErrTestFailed):
		return "test operation failed"
	case errors.Is(err, jsonpatch.ErrMissing):
		return "path does not exist"
	default:
		return err.Error()
	}
}
