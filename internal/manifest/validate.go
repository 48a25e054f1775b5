package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/jsonc"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

const schemaURL = "package.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of checking a manifest.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single problem found in the manifest.
type ValidationIssue struct {
	Path    string // Instance location, e.g. "/name"
	Message string
	Keyword string // Schema keyword that failed, or "semver"
}

// String formats the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks manifest bytes against the package.json schema and, when
// a version string is present, against semantic versioning.
// The error return is for parse or schema compilation failures only.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	clean := jsonc.ToJSON(data)
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(clean))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	var issues []ValidationIssue
	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = extractIssues(validationErr)
	}

	if issue, ok := checkVersion(clean); !ok {
		issues = append(issues, issue)
	}

	return &ValidationResult{Valid: len(issues) == 0, Issues: issues}, nil
}

// ValidateFile reads a manifest from disk and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Validate(data)
}

// checkVersion reports a semver issue for a version string npm would reject.
func checkVersion(data []byte) (ValidationIssue, bool) {
	var fields struct {
		Version interface{} `json:"version"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return ValidationIssue{}, true
	}
	v, ok := fields.Version.(string)
	if !ok {
		// Absent, or a non-string the schema already reports.
		return ValidationIssue{}, true
	}
	if _, err := semver.StrictNewVersion(v); err != nil {
		return ValidationIssue{
			Path:    "/version",
			Message: fmt.Sprintf("%q is not a valid semantic version: %v", v, err),
			Keyword: "semver",
		}, false
	}
	return ValidationIssue{}, true
}

// dependencyFields are the package.json maps of package name to version range.
var dependencyFields = map[string]bool{
	"dependencies":         true,
	"devDependencies":      true,
	"peerDependencies":     true,
	"optionalDependencies": true,
}

// npmMessage rewords schema failures on fields npm itself checks, so the
// warning names the npm rule rather than the regular expression behind it.
// Other failures keep the validator's message.
func npmMessage(location []string, keyword, fallback string) string {
	switch {
	case len(location) == 1 && location[0] == NameField:
		switch keyword {
		case "pattern":
			return "does not follow npm naming rules: use lowercase letters, digits, '-', '.', '_' or '~', " +
				"optionally scoped as @scope/name, and do not start with '.' or '_'"
		case "maxLength":
			return "npm package names are limited to 214 characters"
		case "minLength":
			return "npm package names must not be empty"
		}
	case len(location) == 2 && dependencyFields[location[0]] && keyword == "type":
		return fmt.Sprintf("version range for %q must be a string", location[1])
	}
	return fallback
}

// issueCollector flattens a jsonschema error tree into one issue per
// failing leaf, dropping repeats.
type issueCollector struct {
	seen   map[string]bool
	issues []ValidationIssue
}

// extractIssues returns the leaf-level issues of a validation error.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	c := &issueCollector{seen: make(map[string]bool)}
	c.walk(ve)

	// A tree with no usable leaf still failed; report the summary.
	if len(c.issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return c.issues
}

func (c *issueCollector) walk(ve *jsonschema.ValidationError) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			c.walk(cause)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	keyword := ""
	if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
		keyword = kwPath[len(kwPath)-1]
	}
	// Combinators only summarize their causes. A "bin" that is neither a
	// string nor a map fails both oneOf branches; the branch leaves say why.
	switch keyword {
	case "", "oneOf", "allOf", "$ref":
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	msg := npmMessage(ve.InstanceLocation, keyword, ve.ErrorKind.LocalizedString(printer))

	key := path + "|" + keyword + "|" + msg
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.issues = append(c.issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
}
