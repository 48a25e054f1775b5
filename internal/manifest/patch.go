package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/canseyran/create-ts-cli-app/internal/model"
)

// NameField is the manifest field that identifies the project.
const NameField = "name"

// field is one top-level member of a JSON object, value kept verbatim.
type field struct {
	key   string
	value json.RawMessage
}

// Patch sets the name field of the JSON manifest at path and writes the
// file back in place.
//
// Returns a CLIError with ErrManifestReadOrParseFailure if the file is
// missing, is not a JSON object, or cannot be written.
func Patch(path, name string) error {
	subject := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return model.WrapCLIError(model.ErrManifestReadOrParseFailure, subject, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.WrapCLIError(model.ErrManifestReadOrParseFailure, subject, err)
	}

	out, err := SetName(data, name)
	if err != nil {
		return model.WrapCLIError(model.ErrManifestReadOrParseFailure, subject, err)
	}

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return model.WrapCLIError(model.ErrManifestReadOrParseFailure, subject, err)
	}
	return nil
}

// SetName returns data with its top-level name field set to name.
//
// Key order is preserved; a manifest without a name gets one appended.
// The result uses two-space indentation and ends with a newline.
func SetName(data []byte, name string) ([]byte, error) {
	fields, err := decodeObject(jsonc.ToJSON(data))
	if err != nil {
		return nil, err
	}

	nameJSON, err := marshalNoEscape(name)
	if err != nil {
		return nil, fmt.Errorf("encoding name: %w", err)
	}

	replaced := false
	for i := range fields {
		if fields[i].key == NameField {
			fields[i].value = nameJSON
			replaced = true
		}
	}
	if !replaced {
		fields = append(fields, field{key: NameField, value: nameJSON})
	}

	return encodeObject(fields)
}

// decodeObject splits a JSON object into its members without touching
// their values.
func decodeObject(data []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("parsing manifest: top-level value must be a JSON object")
	}

	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing manifest: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing manifest: unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parsing manifest field %q: %w", key, err)
		}
		fields = append(fields, field{key: key, value: value})
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("parsing manifest: unexpected data after top-level object")
	}
	return fields, nil
}

// encodeObject joins members back into an indented JSON object.
func encodeObject(fields []field) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := marshalNoEscape(f.key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", f.key, err)
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(f.value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting manifest: %w", err)
	}
	// Trailing newline, as npm itself writes package.json.
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// marshalNoEscape encodes v without HTML escaping, so "<" and "&" stay
// readable the way JSON.stringify writes them.
func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
