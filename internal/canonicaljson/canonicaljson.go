// Package canonicaljson implements a canonical JSON form: keys sorted
// ascending by Unicode code point, "," and ":" separators with no
// insignificant whitespace, UTF-8, no trailing newline.
//
// encoding/json already encodes map[string]interface{} with keys sorted by
// byte order and without extra whitespace; with HTML escaping turned off
// that is this form, so canonicalization is "decode then re-encode" plus a
// byte-identity check. Number literals are re-emitted as written.
package canonicaljson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ErrNotCanonical names the case of valid JSON that differs from its
// canonical form (extra whitespace, unsorted keys, ...). IsCanonical reports
// that case as false; no function in this package returns this error.
var ErrNotCanonical = errors.New("canonicaljson: input is not in canonical form")

// ErrTrailingData is returned when data contains more than one JSON value.
var ErrTrailingData = errors.New("canonicaljson: trailing data after JSON value")

// Canonicalize parses data as JSON and re-serializes it in canonical form.
func Canonicalize(data []byte) ([]byte, error) {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// IsCanonical reports whether data is already byte-identical to its
// canonical form.
func IsCanonical(data []byte) bool {
	canon, err := Canonicalize(data)
	if err != nil {
		return false
	}
	return bytes.Equal(canon, data)
}
