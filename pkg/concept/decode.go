package concept

import (
	"fmt"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// TypeOf decodes a type of any kind.
func TypeOf(p *protocol.Type) (Type, error) {
	if p == nil {
		return nil, graknerrors.MissingResponse.New("type")
	}
	if p.Encoding == protocol.TypeEncodingRoleType {
		return RoleTypeOf(p)
	}
	return ThingTypeOf(p)
}

// ThingTypeOf decodes an entity, relation, attribute or root thing type.
func ThingTypeOf(p *protocol.Type) (ThingType, error) {
	if p == nil {
		return nil, graknerrors.MissingResponse.New("type")
	}

	switch p.Encoding {
	case protocol.TypeEncodingEntityType:
		return EntityTypeOf(p)
	case protocol.TypeEncodingRelationType:
		return RelationTypeOf(p)
	case protocol.TypeEncodingAttributeType:
		return AttributeTypeOf(p)
	case protocol.TypeEncodingThingType:
		return thingType{typeBase: typeBaseOf(p)}, nil
	default:
		return nil, badEncoding(p.Encoding)
	}
}

// EntityTypeOf decodes an entity type.
func EntityTypeOf(p *protocol.Type) (EntityType, error) {
	if err := expectType(p, protocol.TypeEncodingEntityType); err != nil {
		return nil, err
	}
	return entityType{thingType{typeBase: typeBaseOf(p)}}, nil
}

// RelationTypeOf decodes a relation type.
func RelationTypeOf(p *protocol.Type) (RelationType, error) {
	if err := expectType(p, protocol.TypeEncodingRelationType); err != nil {
		return nil, err
	}
	return relationType{thingType{typeBase: typeBaseOf(p)}}, nil
}

// AttributeTypeOf decodes an attribute type. OBJECT is only a valid value type
// for the root attribute type.
func AttributeTypeOf(p *protocol.Type) (AttributeType, error) {
	if err := expectType(p, protocol.TypeEncodingAttributeType); err != nil {
		return nil, err
	}

	switch p.ValueType {
	case protocol.ValueTypeBoolean, protocol.ValueTypeLong, protocol.ValueTypeDouble,
		protocol.ValueTypeString, protocol.ValueTypeDateTime:
	case protocol.ValueTypeObject:
		if !p.Root {
			return nil, graknerrors.BadValueType.New(p.ValueType)
		}
	default:
		return nil, graknerrors.BadValueType.New(p.ValueType)
	}

	return attributeType{
		thingType: thingType{typeBase: typeBaseOf(p)},
		valueType: p.ValueType,
	}, nil
}

// RoleTypeOf decodes a role type along with the relation type scoping it.
func RoleTypeOf(p *protocol.Type) (RoleType, error) {
	if err := expectType(p, protocol.TypeEncodingRoleType); err != nil {
		return nil, err
	}
	return roleType{typeBase: typeBaseOf(p)}, nil
}

func typeBaseOf(p *protocol.Type) typeBase {
	return typeBase{label: label.Scoped(p.Scope, p.Label), root: p.Root}
}

func expectType(p *protocol.Type, encoding protocol.TypeEncoding) error {
	if p == nil {
		return graknerrors.MissingResponse.New("type")
	}
	if p.Encoding != encoding {
		return badEncoding(p.Encoding)
	}
	return nil
}

// ThingOf decodes a thing of any kind.
func ThingOf(p *protocol.Thing) (Thing, error) {
	if p == nil {
		return nil, graknerrors.MissingResponse.New("thing")
	}

	switch p.Encoding {
	case protocol.ThingEncodingEntity:
		return EntityOf(p)
	case protocol.ThingEncodingRelation:
		return RelationOf(p)
	case protocol.ThingEncodingAttribute:
		return AttributeOf(p)
	case protocol.ThingEncodingThing:
		typ, err := ThingTypeOf(p.Type)
		if err != nil {
			return nil, err
		}
		return thing{iid: p.IID, inferred: p.Inferred, typ: typ}, nil
	default:
		return nil, badEncoding(p.Encoding)
	}
}

// EntityOf decodes an entity.
func EntityOf(p *protocol.Thing) (Entity, error) {
	if err := expectThing(p, protocol.ThingEncodingEntity); err != nil {
		return nil, err
	}
	typ, err := EntityTypeOf(p.Type)
	if err != nil {
		return nil, err
	}
	return entity{
		thing:      thing{iid: p.IID, inferred: p.Inferred, typ: typ},
		entityType: typ,
	}, nil
}

// RelationOf decodes a relation.
func RelationOf(p *protocol.Thing) (Relation, error) {
	if err := expectThing(p, protocol.ThingEncodingRelation); err != nil {
		return nil, err
	}
	typ, err := RelationTypeOf(p.Type)
	if err != nil {
		return nil, err
	}
	return relation{
		thing:        thing{iid: p.IID, inferred: p.Inferred, typ: typ},
		relationType: typ,
	}, nil
}

// AttributeOf decodes an attribute. Its value must match the value type of its
// attribute type.
func AttributeOf(p *protocol.Thing) (Attribute, error) {
	if err := expectThing(p, protocol.ThingEncodingAttribute); err != nil {
		return nil, err
	}
	typ, err := AttributeTypeOf(p.Type)
	if err != nil {
		return nil, err
	}
	value, err := valueOf(p.Value, typ.ValueType())
	if err != nil {
		return nil, err
	}
	return attribute{
		thing:         thing{iid: p.IID, inferred: p.Inferred, typ: typ},
		attributeType: typ,
		value:         value,
	}, nil
}

func expectThing(p *protocol.Thing, encoding protocol.ThingEncoding) error {
	if p == nil {
		return graknerrors.MissingResponse.New("thing")
	}
	if p.Encoding != encoding {
		return badEncoding(p.Encoding)
	}
	return nil
}

// ConceptOf decodes the thing or type held by a concept message.
func ConceptOf(p *protocol.Concept) (Concept, error) {
	switch {
	case p.HasThing():
		return ThingOf(p.Thing)
	case p.HasType():
		return TypeOf(p.Type)
	default:
		return nil, graknerrors.MissingConcept.New()
	}
}

func badEncoding(encoding any) error {
	return graknerrors.BadEncodingMessage.New(encoding).WithMetadata("encoding", fmt.Sprintf("%d", encoding))
}
