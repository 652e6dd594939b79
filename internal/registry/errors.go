package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSealed indicates a mutation attempted after the registry was sealed.
var ErrSealed = errors.New("registry: sealed")

// SealedError reports which service could not be added to a sealed registry.
type SealedError struct {
	Name string
}

func (e *SealedError) Error() string {
	return fmt.Sprintf("unable to add service %q: services cannot be added once the registry is sealed", e.Name)
}

func (e *SealedError) Unwrap() error { return ErrSealed }

// OrphanedChildError reports child declarations whose parent service name
// was never registered as a primary service. It carries every offending
// name, not just the first.
type OrphanedChildError struct {
	Names []string
}

func (e *OrphanedChildError) Error() string {
	return fmt.Sprintf("child services [%s] have no parent service", strings.Join(e.Names, ", "))
}

// NotAcceptorError reports a parent service that has declared children but
// does not implement ChildAcceptor.
type NotAcceptorError struct {
	Name string
	Type string
}

func (e *NotAcceptorError) Error() string {
	return fmt.Sprintf("service %q (%s) has declared children but does not implement AcceptChild", e.Name, e.Type)
}
