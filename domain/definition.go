package domain

import (
	"strconv"
	"strings"
)

// DefinitionNamePrefix starts every definition name chosen by the server.
const DefinitionNamePrefix = "definitions/"

// Definition describes a product (and version) the PIM service can start.
// Name is arbitrary and chosen by the server; do not rely on its value.
type Definition struct {
	Name           string
	ProductName    string
	ProductVersion string
	// AvailableServiceNames lists the services an instance of this definition exposes ("grpc", "http", ...).
	AvailableServiceNames []string
}

// ValidateDefinition checks a definition received from the server: Name starts with "definitions/",
// ProductName and ProductVersion are set and at least one service name is listed.
//
// Returns nil when valid, *RecordError on the first problem found.
func ValidateDefinition(d Definition) error {
	if !strings.HasPrefix(d.Name, DefinitionNamePrefix) {
		return &RecordError{Record: "definition", Index: -1, Reason: "name must start with " + DefinitionNamePrefix}
	}
	if d.ProductName == "" {
		return &RecordError{Record: "definition", Index: -1, Reason: "product name is required"}
	}
	if d.ProductVersion == "" {
		return &RecordError{Record: "definition", Index: -1, Reason: "product version is required"}
	}
	if len(d.AvailableServiceNames) == 0 {
		return &RecordError{Record: "definition", Index: -1, Reason: "at least one service name is required"}
	}
	for i, name := range d.AvailableServiceNames {
		if strings.TrimSpace(name) == "" {
			return &RecordError{Record: "definition", Index: i, Reason: "service name must be non-empty"}
		}
	}
	return nil
}

// RecordError is returned when a record sent by the PIM server is malformed.
// Index is the offending element inside the record, or -1 when the record itself is wrong.
type RecordError struct {
	Record string
	Index  int
	Reason string
}

func (e *RecordError) Error() string {
	if e.Index < 0 {
		return e.Record + ": " + e.Reason
	}
	return e.Record + "[" + strconv.Itoa(e.Index) + "]: " + e.Reason
}
