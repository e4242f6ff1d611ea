package pimv1

import (
	"maps"
	"slices"

	"google.golang.org/protobuf/encoding/protowire"
)

// Definition is a product and version the server can instantiate.
type Definition struct {
	Name                  string
	ProductName           string
	ProductVersion        string
	AvailableServiceNames []string
}

// Marshal encodes m in the proto3 wire format.
func (m *Definition) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.ProductName)
	b = appendString(b, 3, m.ProductVersion)
	return appendRepeatedString(b, 4, m.AvailableServiceNames)
}

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *Definition) Unmarshal(b []byte) error {
	*m = Definition{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name), nil
		case 2:
			return consumeString(typ, b, &m.ProductName), nil
		case 3:
			return consumeString(typ, b, &m.ProductVersion), nil
		case 4:
			var s string
			n := consumeString(typ, b, &s)
			if n > 0 {
				m.AvailableServiceNames = append(m.AvailableServiceNames, s)
			}
			return n, nil
		}
		return 0, nil
	})
}

// Service is one endpoint of an instance.
type Service struct {
	URI     string
	Headers map[string]string
}

// Marshal encodes m in the proto3 wire format.
func (m *Service) Marshal() []byte {
	b := appendString(nil, 1, m.URI)
	return appendStringMap(b, 2, m.Headers)
}

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *Service) Unmarshal(b []byte) error {
	*m = Service{Headers: map[string]string{}}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.URI), nil
		case 2:
			return consumeMessage(typ, b, func(entry []byte) error {
				return consumeStringMapEntry(entry, m.Headers)
			})
		}
		return 0, nil
	})
}

// Instance is the server view of a product instance.
type Instance struct {
	Name           string
	DefinitionName string
	Ready          bool
	StatusMessage  string
	Services       map[string]Service
}

// Marshal encodes m in the proto3 wire format.
func (m *Instance) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.DefinitionName)
	b = appendBool(b, 3, m.Ready)
	b = appendString(b, 4, m.StatusMessage)
	for _, k := range slices.Sorted(maps.Keys(m.Services)) {
		svc := m.Services[k]
		entry := appendString(nil, 1, k)
		entry = appendMessage(entry, 2, svc.Marshal())
		b = appendMessage(b, 5, entry)
	}
	return b
}

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *Instance) Unmarshal(b []byte) error {
	*m = Instance{Services: map[string]Service{}}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name), nil
		case 2:
			return consumeString(typ, b, &m.DefinitionName), nil
		case 3:
			return consumeBool(typ, b, &m.Ready), nil
		case 4:
			return consumeString(typ, b, &m.StatusMessage), nil
		case 5:
			return consumeMessage(typ, b, m.consumeServiceEntry)
		}
		return 0, nil
	})
}

func (m *Instance) consumeServiceEntry(b []byte) error {
	var key string
	var svc Service
	err := decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &key), nil
		case 2:
			return consumeMessage(typ, b, svc.Unmarshal)
		}
		return 0, nil
	})
	if err != nil {
		return err
	}
	m.Services[key] = svc
	return nil
}

// ListDefinitionsRequest filters definitions by product; empty fields match all.
type ListDefinitionsRequest struct {
	ProductName    string
	ProductVersion string
}

// Marshal encodes m in the proto3 wire format.
func (m *ListDefinitionsRequest) Marshal() []byte {
	b := appendString(nil, 1, m.ProductName)
	return appendString(b, 2, m.ProductVersion)
}

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *ListDefinitionsRequest) Unmarshal(b []byte) error {
	*m = ListDefinitionsRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ProductName), nil
		case 2:
			return consumeString(typ, b, &m.ProductVersion), nil
		}
		return 0, nil
	})
}

// ListDefinitionsResponse lists definitions in server order.
type ListDefinitionsResponse struct {
	Definitions []Definition
}

// Marshal encodes m in the proto3 wire format.
func (m *ListDefinitionsResponse) Marshal() []byte {
	var b []byte
	for i := range m.Definitions {
		b = appendMessage(b, 1, m.Definitions[i].Marshal())
	}
	return b
}

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *ListDefinitionsResponse) Unmarshal(b []byte) error {
	*m = ListDefinitionsResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeMessage(typ, b, func(b []byte) error {
			var d Definition
			if err := d.Unmarshal(b); err != nil {
				return err
			}
			m.Definitions = append(m.Definitions, d)
			return nil
		})
	})
}

// ListInstancesRequest has no fields.
type ListInstancesRequest struct{}

// Marshal encodes m in the proto3 wire format.
func (m *ListInstancesRequest) Marshal() []byte { return nil }

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *ListInstancesRequest) Unmarshal(b []byte) error {
	return decode(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil })
}

// ListInstancesResponse lists the instances known to the server.
type ListInstancesResponse struct {
	Instances []Instance
}

// Marshal encodes m in the proto3 wire format.
func (m *ListInstancesResponse) Marshal() []byte {
	var b []byte
	for i := range m.Instances {
		b = appendMessage(b, 1, m.Instances[i].Marshal())
	}
	return b
}

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *ListInstancesResponse) Unmarshal(b []byte) error {
	*m = ListInstancesResponse{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return 0, nil
		}
		return consumeMessage(typ, b, func(b []byte) error {
			var inst Instance
			if err := inst.Unmarshal(b); err != nil {
				return err
			}
			m.Instances = append(m.Instances, inst)
			return nil
		})
	})
}

// GetInstanceRequest names the instance to read.
type GetInstanceRequest struct {
	Name string
}

// Marshal encodes m in the proto3 wire format.
func (m *GetInstanceRequest) Marshal() []byte { return appendString(nil, 1, m.Name) }

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *GetInstanceRequest) Unmarshal(b []byte) error {
	*m = GetInstanceRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Name), nil
		}
		return 0, nil
	})
}

// CreateInstanceRequest carries the instance to create; only DefinitionName is read by the server.
type CreateInstanceRequest struct {
	Instance Instance
}

// Marshal encodes m in the proto3 wire format.
func (m *CreateInstanceRequest) Marshal() []byte {
	return appendMessage(nil, 1, m.Instance.Marshal())
}

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *CreateInstanceRequest) Unmarshal(b []byte) error {
	*m = CreateInstanceRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeMessage(typ, b, m.Instance.Unmarshal)
		}
		return 0, nil
	})
}

// DeleteInstanceRequest names the instance to remove.
type DeleteInstanceRequest struct {
	Name string
}

// Marshal encodes m in the proto3 wire format.
func (m *DeleteInstanceRequest) Marshal() []byte { return appendString(nil, 1, m.Name) }

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *DeleteInstanceRequest) Unmarshal(b []byte) error {
	*m = DeleteInstanceRequest{}
	return decode(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Name), nil
		}
		return 0, nil
	})
}

// Empty is the response of DeleteInstance.
type Empty struct{}

// Marshal encodes m in the proto3 wire format.
func (m *Empty) Marshal() []byte { return nil }

// Unmarshal replaces m with the message decoded from b. Unknown fields are skipped.
func (m *Empty) Unmarshal(b []byte) error {
	return decode(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil })
}
