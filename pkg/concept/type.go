package concept

import (
	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// base answers every kind predicate negatively; concrete handles override
// the predicates of their own kind.
type base struct{}

func (base) IsRemote() bool        { return false }
func (base) IsType() bool          { return false }
func (base) IsThingType() bool     { return false }
func (base) IsEntityType() bool    { return false }
func (base) IsRelationType() bool  { return false }
func (base) IsAttributeType() bool { return false }
func (base) IsRoleType() bool      { return false }
func (base) IsThing() bool         { return false }
func (base) IsEntity() bool        { return false }
func (base) IsRelation() bool      { return false }
func (base) IsAttribute() bool     { return false }

type typeBase struct {
	base
	label label.Label
	root  bool
}

func (t typeBase) Label() label.Label { return t.label }
func (t typeBase) IsRoot() bool       { return t.root }
func (typeBase) IsType() bool         { return true }
func (t typeBase) String() string     { return t.label.String() }

type thingType struct{ typeBase }

func (thingType) IsThingType() bool { return true }
func (thingType) thingTypeKind()    {}

func (t thingType) AsRemote(tx Transaction) RemoteConcept {
	return &remoteThingType{thingType: t, thingTypeOps: newThingTypeOps(tx, t.label)}
}

type entityType struct{ thingType }

func (entityType) IsEntityType() bool { return true }
func (entityType) entityTypeKind()    {}

func (t entityType) AsRemote(tx Transaction) RemoteConcept {
	return &remoteEntityType{entityType: t, thingTypeOps: newThingTypeOps(tx, t.label)}
}

type relationType struct{ thingType }

func (relationType) IsRelationType() bool { return true }
func (relationType) relationTypeKind()    {}

func (t relationType) AsRemote(tx Transaction) RemoteConcept {
	return &remoteRelationType{relationType: t, thingTypeOps: newThingTypeOps(tx, t.label)}
}

type attributeType struct {
	thingType
	valueType protocol.ValueType
}

func (attributeType) IsAttributeType() bool           { return true }
func (attributeType) attributeTypeKind()              {}
func (t attributeType) ValueType() protocol.ValueType { return t.valueType }

func (t attributeType) AsRemote(tx Transaction) RemoteConcept {
	return &remoteAttributeType{attributeType: t, thingTypeOps: newThingTypeOps(tx, t.label)}
}

type roleType struct{ typeBase }

func (roleType) IsRoleType() bool { return true }
func (roleType) roleTypeKind()    {}

func (t roleType) AsRemote(tx Transaction) RemoteConcept {
	return &remoteRoleType{roleType: t, typeOps: typeOps{tx: tx, target: t.label}}
}

// typeProto encodes a type handle as a request argument.
func typeProto(t Type) *protocol.Type {
	p := &protocol.Type{
		Label:    t.Label().Name,
		Scope:    t.Label().Scope,
		Encoding: protocol.TypeEncodingThingType,
		Root:     t.IsRoot(),
	}

	switch {
	case t.IsEntityType():
		p.Encoding = protocol.TypeEncodingEntityType
	case t.IsRelationType():
		p.Encoding = protocol.TypeEncodingRelationType
	case t.IsAttributeType():
		p.Encoding = protocol.TypeEncodingAttributeType
		if at, ok := t.(AttributeType); ok {
			p.ValueType = at.ValueType()
		}
	case t.IsRoleType():
		p.Encoding = protocol.TypeEncodingRoleType
	}
	return p
}

func typeProtos[T Type](types []T) []*protocol.Type {
	if len(types) == 0 {
		return nil
	}
	protos := make([]*protocol.Type, 0, len(types))
	for _, t := range types {
		protos = append(protos, typeProto(t))
	}
	return protos
}
