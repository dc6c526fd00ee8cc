package requests

import (
	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

func typeReq(l label.Label, req *protocol.TypeReq) *protocol.TransactionReq {
	req.Label = l.Name
	req.Scope = l.Scope
	return &protocol.TransactionReq{TypeReq: req}
}

func TypeDeleteReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{TypeDeleteReq: &protocol.TypeDeleteReq{}})
}

func TypeSetLabelReq(l label.Label, newLabel string) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{TypeSetLabelReq: &protocol.TypeSetLabelReq{Label: newLabel}})
}

func TypeIsAbstractReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{TypeIsAbstractReq: &protocol.TypeIsAbstractReq{}})
}

func TypeGetSupertypeReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{TypeGetSupertypeReq: &protocol.TypeGetSupertypeReq{}})
}

func TypeSetSupertypeReq(l label.Label, supertype *protocol.Type) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{TypeSetSupertypeReq: &protocol.TypeSetSupertypeReq{Type: supertype}})
}

func TypeGetSupertypesReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{TypeGetSupertypesReq: &protocol.TypeGetSupertypesReq{}})
}

func TypeGetSubtypesReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{TypeGetSubtypesReq: &protocol.TypeGetSubtypesReq{}})
}

func RoleTypeGetRelationTypeReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{RoleTypeGetRelationTypeReq: &protocol.RoleTypeGetRelationTypeReq{}})
}

func RoleTypeGetRelationTypesReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{RoleTypeGetRelationTypesReq: &protocol.RoleTypeGetRelationTypesReq{}})
}

func RoleTypeGetPlayersReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{RoleTypeGetPlayersReq: &protocol.RoleTypeGetPlayersReq{}})
}

func ThingTypeSetAbstractReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeSetAbstractReq: &protocol.ThingTypeSetAbstractReq{}})
}

func ThingTypeUnsetAbstractReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeUnsetAbstractReq: &protocol.ThingTypeUnsetAbstractReq{}})
}

func ThingTypeGetInstancesReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeGetInstancesReq: &protocol.ThingTypeGetInstancesReq{}})
}

// ThingTypeGetOwnsReq lists the attribute types owned by the type. A nil
// valueType disables value type filtering.
func ThingTypeGetOwnsReq(l label.Label, valueType *protocol.ValueType, keysOnly bool) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeGetOwnsReq: &protocol.ThingTypeGetOwnsReq{
		ValueType: valueType,
		KeysOnly:  keysOnly,
	}})
}

// ThingTypeSetOwnsReq declares ownership of attributeType. overriddenType may
// be nil.
func ThingTypeSetOwnsReq(l label.Label, attributeType, overriddenType *protocol.Type, isKey bool) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeSetOwnsReq: &protocol.ThingTypeSetOwnsReq{
		AttributeType:  attributeType,
		OverriddenType: overriddenType,
		IsKey:          isKey,
	}})
}

func ThingTypeUnsetOwnsReq(l label.Label, attributeType *protocol.Type) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeUnsetOwnsReq: &protocol.ThingTypeUnsetOwnsReq{AttributeType: attributeType}})
}

func ThingTypeGetPlaysReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeGetPlaysReq: &protocol.ThingTypeGetPlaysReq{}})
}

// ThingTypeSetPlaysReq declares that instances may play role. overriddenRole
// may be nil.
func ThingTypeSetPlaysReq(l label.Label, role, overriddenRole *protocol.Type) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeSetPlaysReq: &protocol.ThingTypeSetPlaysReq{
		Role:           role,
		OverriddenRole: overriddenRole,
	}})
}

func ThingTypeUnsetPlaysReq(l label.Label, role *protocol.Type) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{ThingTypeUnsetPlaysReq: &protocol.ThingTypeUnsetPlaysReq{Role: role}})
}

func EntityTypeCreateReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{EntityTypeCreateReq: &protocol.EntityTypeCreateReq{}})
}

func RelationTypeCreateReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{RelationTypeCreateReq: &protocol.RelationTypeCreateReq{}})
}

func RelationTypeGetRelatesForRoleLabelReq(l label.Label, roleLabel string) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{RelationTypeGetRelatesForRoleLabelReq: &protocol.RelationTypeGetRelatesForRoleLabelReq{Label: roleLabel}})
}

func RelationTypeGetRelatesReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{RelationTypeGetRelatesReq: &protocol.RelationTypeGetRelatesReq{}})
}

// RelationTypeSetRelatesReq declares the role roleLabel. An empty
// overriddenLabel declares no override.
func RelationTypeSetRelatesReq(l label.Label, roleLabel, overriddenLabel string) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{RelationTypeSetRelatesReq: &protocol.RelationTypeSetRelatesReq{
		Label:           roleLabel,
		OverriddenLabel: overriddenLabel,
	}})
}

func RelationTypeUnsetRelatesReq(l label.Label, roleLabel string) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{RelationTypeUnsetRelatesReq: &protocol.RelationTypeUnsetRelatesReq{Label: roleLabel}})
}

func AttributeTypePutReq(l label.Label, value *protocol.AttributeValue) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{AttributeTypePutReq: &protocol.AttributeTypePutReq{Value: value}})
}

func AttributeTypeGetReq(l label.Label, value *protocol.AttributeValue) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{AttributeTypeGetReq: &protocol.AttributeTypeGetReq{Value: value}})
}

func AttributeTypeGetRegexReq(l label.Label) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{AttributeTypeGetRegexReq: &protocol.AttributeTypeGetRegexReq{}})
}

func AttributeTypeSetRegexReq(l label.Label, regex string) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{AttributeTypeSetRegexReq: &protocol.AttributeTypeSetRegexReq{Regex: regex}})
}

func AttributeTypeGetOwnersReq(l label.Label, onlyKey bool) *protocol.TransactionReq {
	return typeReq(l, &protocol.TypeReq{AttributeTypeGetOwnersReq: &protocol.AttributeTypeGetOwnersReq{OnlyKey: onlyKey}})
}
