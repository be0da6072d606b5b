package contentapi

import (
	"fmt"
	"sort"
	"strings"
)

// Op names the step of a fetch that failed.
type Op string

const (
	OpRequest   Op = "request"
	OpTransport Op = "transport"
	OpRead      Op = "read"
	OpDecode    Op = "decode"
	OpValidate  Op = "validate"
)

// FetchError is the single failure kind of the articles endpoint:
// the call could not be made, or its body was not a valid article list.
type FetchError struct {
	Op  Op
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch articles: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError lists payload fields that failed validation, keyed by
// their JSON path (e.g. "data[0].content[1].type").
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid payload: " + strings.Join(parts, ", ")
}
