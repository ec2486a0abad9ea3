package storage

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

// Identifiers double as file names and NATS subject tokens, so dots and
// path separators are not allowed.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type ValidatingSpec interface {
	Validate() error
}

// Revisioned is implemented by documents that take part in optimistic
// concurrency. Stores only accept a save whose revision matches the stored
// one, and bump it on success.
type Revisioned interface {
	Revision() int64
	SetRevision(int64)
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// ValidateIdentifier reports whether id can be used as a record key.
func ValidateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("id must be set")
	}
	if !identifierPattern.MatchString(id) {
		return fmt.Errorf("id %q must contain only letters, digits, '-' and '_'", id)
	}
	return nil
}

// Asset is the on-disk envelope around a stored record.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	el.Add(ValidateIdentifier(a.Identifier.String()))

	if isNil(a.Spec) {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(a.Spec.Validate())
	}

	return el.Err()
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
