package domain

import "strings"

// InstanceNamePrefix starts every instance name chosen by the server.
const InstanceNamePrefix = "instances/"

// InstanceState is a snapshot of a remote product instance as reported by the PIM service.
// Services is empty or incomplete until Ready is true.
type InstanceState struct {
	Name           string
	DefinitionName string
	Ready          bool
	StatusMessage  string
	Services       map[string]Service
}

// ValidateInstanceState checks an instance received from the server: the name is set and every service has a URI.
func ValidateInstanceState(s InstanceState) error {
	if strings.TrimSpace(s.Name) == "" {
		return &RecordError{Record: "instance", Index: -1, Reason: "name is required"}
	}
	for name, svc := range s.Services {
		if err := ValidateService(svc); err != nil {
			return &RecordError{Record: "instance service " + name, Index: -1, Reason: err.(*RecordError).Reason}
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s InstanceState) Clone() InstanceState {
	out := s
	out.Services = make(map[string]Service, len(s.Services))
	for k, v := range s.Services {
		out.Services[k] = v.Clone()
	}
	return out
}
