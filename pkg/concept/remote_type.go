package concept

import (
	"context"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/requests"
	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
)

// typeOps implements the requests shared by every remote type. It addresses
// the type only by the label the handle was decoded with.
type typeOps struct {
	tx     Transaction
	target label.Label
}

func (o typeOps) Transaction() Transaction { return o.tx }

func (o typeOps) SetLabel(ctx context.Context, name string) error {
	if name == "" {
		return graknerrors.MissingLabel.New()
	}
	_, err := executeType(ctx, o.tx, requests.TypeSetLabelReq(o.target, name))
	return err
}

func (o typeOps) IsAbstract(ctx context.Context) (bool, error) {
	res, err := executeType(ctx, o.tx, requests.TypeIsAbstractReq(o.target))
	if err != nil {
		return false, err
	}
	if res.TypeIsAbstractRes == nil {
		return false, graknerrors.MissingResponse.New("type_is_abstract_res")
	}
	return res.TypeIsAbstractRes.Abstract, nil
}

func (o typeOps) GetSupertype(ctx context.Context) (Type, error) {
	res, err := executeType(ctx, o.tx, requests.TypeGetSupertypeReq(o.target))
	if err != nil {
		return nil, err
	}
	if res.TypeGetSupertypeRes == nil {
		return nil, graknerrors.MissingResponse.New("type_get_supertype_res")
	}
	if res.TypeGetSupertypeRes.Type == nil {
		return nil, nil
	}
	return TypeOf(res.TypeGetSupertypeRes.Type)
}

func (o typeOps) GetSupertypes(ctx context.Context) *stream.Stream[Type] {
	parts := streamType(ctx, o.tx, requests.TypeGetSupertypesReq(o.target))
	return pages(parts, "type_get_supertypes_res_part", func(p *protocol.TypeResPart) ([]*protocol.Type, bool) {
		return typesIn(p.TypeGetSupertypesResPart)
	}, TypeOf)
}

func (o typeOps) GetSubtypes(ctx context.Context) *stream.Stream[Type] {
	parts := streamType(ctx, o.tx, requests.TypeGetSubtypesReq(o.target))
	return pages(parts, "type_get_subtypes_res_part", func(p *protocol.TypeResPart) ([]*protocol.Type, bool) {
		return typesIn(p.TypeGetSubtypesResPart)
	}, TypeOf)
}

func (o typeOps) Delete(ctx context.Context) error {
	_, err := executeType(ctx, o.tx, requests.TypeDeleteReq(o.target))
	return err
}

// thingTypeOps implements the requests shared by every remote thing type.
type thingTypeOps struct {
	typeOps
}

func newThingTypeOps(tx Transaction, target label.Label) thingTypeOps {
	return thingTypeOps{typeOps{tx: tx, target: target}}
}

func (o thingTypeOps) IsDeleted(ctx context.Context) (bool, error) {
	found, err := o.tx.Concepts().GetThingType(ctx, o.target.Name)
	if err != nil {
		return false, err
	}
	return found == nil, nil
}

func (o thingTypeOps) GetInstances(ctx context.Context) *stream.Stream[Thing] {
	parts := streamType(ctx, o.tx, requests.ThingTypeGetInstancesReq(o.target))
	return pages(parts, "thing_type_get_instances_res_part", func(p *protocol.TypeResPart) ([]*protocol.Thing, bool) {
		return thingsIn(p.ThingTypeGetInstancesResPart)
	}, ThingOf)
}

func (o thingTypeOps) GetOwns(ctx context.Context, opts ...GetOwnsOption) *stream.Stream[AttributeType] {
	args := applyOptions(opts)
	parts := streamType(ctx, o.tx, requests.ThingTypeGetOwnsReq(o.target, args.valueType, args.keysOnly))
	return pages(parts, "thing_type_get_owns_res_part", func(p *protocol.TypeResPart) ([]*protocol.Type, bool) {
		return typesIn(p.ThingTypeGetOwnsResPart)
	}, AttributeTypeOf)
}

func (o thingTypeOps) SetOwns(ctx context.Context, attributeType AttributeType, opts ...SetOwnsOption) error {
	if attributeType == nil {
		return graknerrors.MissingArgument.New("attributeType")
	}
	args := applyOptions(opts)

	var overridden *protocol.Type
	if args.overriddenType != nil {
		overridden = typeProto(args.overriddenType)
	}
	_, err := executeType(ctx, o.tx, requests.ThingTypeSetOwnsReq(o.target, typeProto(attributeType), overridden, args.isKey))
	return err
}

func (o thingTypeOps) UnsetOwns(ctx context.Context, attributeType AttributeType) error {
	if attributeType == nil {
		return graknerrors.MissingArgument.New("attributeType")
	}
	_, err := executeType(ctx, o.tx, requests.ThingTypeUnsetOwnsReq(o.target, typeProto(attributeType)))
	return err
}

func (o thingTypeOps) GetPlays(ctx context.Context) *stream.Stream[RoleType] {
	parts := streamType(ctx, o.tx, requests.ThingTypeGetPlaysReq(o.target))
	return pages(parts, "thing_type_get_plays_res_part", func(p *protocol.TypeResPart) ([]*protocol.Type, bool) {
		return typesIn(p.ThingTypeGetPlaysResPart)
	}, RoleTypeOf)
}

func (o thingTypeOps) SetPlays(ctx context.Context, role RoleType) error {
	return o.setPlays(ctx, role, nil)
}

func (o thingTypeOps) SetPlaysOverriding(ctx context.Context, role, overriddenRole RoleType) error {
	if overriddenRole == nil {
		return graknerrors.MissingArgument.New("overriddenRole")
	}
	return o.setPlays(ctx, role, overriddenRole)
}

func (o thingTypeOps) setPlays(ctx context.Context, role, overriddenRole RoleType) error {
	if role == nil {
		return graknerrors.MissingArgument.New("role")
	}

	var overridden *protocol.Type
	if overriddenRole != nil {
		overridden = typeProto(overriddenRole)
	}
	_, err := executeType(ctx, o.tx, requests.ThingTypeSetPlaysReq(o.target, typeProto(role), overridden))
	return err
}

func (o thingTypeOps) UnsetPlays(ctx context.Context, role RoleType) error {
	if role == nil {
		return graknerrors.MissingArgument.New("role")
	}
	_, err := executeType(ctx, o.tx, requests.ThingTypeUnsetPlaysReq(o.target, typeProto(role)))
	return err
}

func (o thingTypeOps) SetAbstract(ctx context.Context) error {
	_, err := executeType(ctx, o.tx, requests.ThingTypeSetAbstractReq(o.target))
	return err
}

func (o thingTypeOps) UnsetAbstract(ctx context.Context) error {
	_, err := executeType(ctx, o.tx, requests.ThingTypeUnsetAbstractReq(o.target))
	return err
}

func (o thingTypeOps) SetSupertype(ctx context.Context, supertype ThingType) error {
	if supertype == nil {
		return graknerrors.MissingArgument.New("supertype")
	}
	_, err := executeType(ctx, o.tx, requests.TypeSetSupertypeReq(o.target, typeProto(supertype)))
	return err
}

type remoteThingType struct {
	thingType
	thingTypeOps
}

func (t *remoteThingType) IsRemote() bool { return true }

type remoteEntityType struct {
	entityType
	thingTypeOps
}

func (t *remoteEntityType) IsRemote() bool { return true }

func (t *remoteEntityType) Create(ctx context.Context) (Entity, error) {
	res, err := executeType(ctx, t.tx, requests.EntityTypeCreateReq(t.target))
	if err != nil {
		return nil, err
	}
	if res.EntityTypeCreateRes == nil {
		return nil, graknerrors.MissingResponse.New("entity_type_create_res")
	}
	return EntityOf(res.EntityTypeCreateRes.Entity)
}

type remoteRelationType struct {
	relationType
	thingTypeOps
}

func (t *remoteRelationType) IsRemote() bool { return true }

func (t *remoteRelationType) Create(ctx context.Context) (Relation, error) {
	res, err := executeType(ctx, t.tx, requests.RelationTypeCreateReq(t.target))
	if err != nil {
		return nil, err
	}
	if res.RelationTypeCreateRes == nil {
		return nil, graknerrors.MissingResponse.New("relation_type_create_res")
	}
	return RelationOf(res.RelationTypeCreateRes.Relation)
}

func (t *remoteRelationType) GetRelates(ctx context.Context) *stream.Stream[RoleType] {
	parts := streamType(ctx, t.tx, requests.RelationTypeGetRelatesReq(t.target))
	return pages(parts, "relation_type_get_relates_res_part", func(p *protocol.TypeResPart) ([]*protocol.Type, bool) {
		return typesIn(p.RelationTypeGetRelatesResPart)
	}, RoleTypeOf)
}

func (t *remoteRelationType) GetRelatesForRoleLabel(ctx context.Context, roleLabel string) (RoleType, error) {
	if roleLabel == "" {
		return nil, graknerrors.MissingLabel.New()
	}
	res, err := executeType(ctx, t.tx, requests.RelationTypeGetRelatesForRoleLabelReq(t.target, roleLabel))
	if err != nil {
		return nil, err
	}
	if res.RelationTypeGetRelatesForRoleLabelRes == nil {
		return nil, graknerrors.MissingResponse.New("relation_type_get_relates_for_role_label_res")
	}
	if res.RelationTypeGetRelatesForRoleLabelRes.RoleType == nil {
		return nil, nil
	}
	return RoleTypeOf(res.RelationTypeGetRelatesForRoleLabelRes.RoleType)
}

func (t *remoteRelationType) SetRelates(ctx context.Context, roleLabel string) error {
	return t.setRelates(ctx, roleLabel, "")
}

func (t *remoteRelationType) SetRelatesOverriding(ctx context.Context, roleLabel, overriddenLabel string) error {
	if overriddenLabel == "" {
		return graknerrors.MissingLabel.New()
	}
	return t.setRelates(ctx, roleLabel, overriddenLabel)
}

func (t *remoteRelationType) setRelates(ctx context.Context, roleLabel, overriddenLabel string) error {
	if roleLabel == "" {
		return graknerrors.MissingLabel.New()
	}
	_, err := executeType(ctx, t.tx, requests.RelationTypeSetRelatesReq(t.target, roleLabel, overriddenLabel))
	return err
}

func (t *remoteRelationType) UnsetRelates(ctx context.Context, roleLabel string) error {
	if roleLabel == "" {
		return graknerrors.MissingLabel.New()
	}
	_, err := executeType(ctx, t.tx, requests.RelationTypeUnsetRelatesReq(t.target, roleLabel))
	return err
}

type remoteAttributeType struct {
	attributeType
	thingTypeOps
}

func (t *remoteAttributeType) IsRemote() bool { return true }

// checkValue rejects values that cannot belong to the attribute type before
// any request is sent.
func (t *remoteAttributeType) checkValue(value Value) error {
	if value.ValueType() != t.valueType {
		return graknerrors.ValueTypeMismatch.New(value.ValueType(), t.label.String(), t.valueType)
	}
	return value.validate()
}

func (t *remoteAttributeType) Put(ctx context.Context, value Value) (Attribute, error) {
	if err := t.checkValue(value); err != nil {
		return nil, err
	}
	p, err := value.proto()
	if err != nil {
		return nil, err
	}
	res, err := executeType(ctx, t.tx, requests.AttributeTypePutReq(t.target, p))
	if err != nil {
		return nil, err
	}
	if res.AttributeTypePutRes == nil {
		return nil, graknerrors.MissingResponse.New("attribute_type_put_res")
	}
	return AttributeOf(res.AttributeTypePutRes.Attribute)
}

func (t *remoteAttributeType) Get(ctx context.Context, value Value) (Attribute, error) {
	if err := t.checkValue(value); err != nil {
		return nil, err
	}
	p, err := value.proto()
	if err != nil {
		return nil, err
	}
	res, err := executeType(ctx, t.tx, requests.AttributeTypeGetReq(t.target, p))
	if err != nil {
		return nil, err
	}
	if res.AttributeTypeGetRes == nil {
		return nil, graknerrors.MissingResponse.New("attribute_type_get_res")
	}
	if res.AttributeTypeGetRes.Attribute == nil {
		return nil, nil
	}
	return AttributeOf(res.AttributeTypeGetRes.Attribute)
}

func (t *remoteAttributeType) GetOwners(ctx context.Context, onlyKey bool) *stream.Stream[ThingType] {
	parts := streamType(ctx, t.tx, requests.AttributeTypeGetOwnersReq(t.target, onlyKey))
	return pages(parts, "attribute_type_get_owners_res_part", func(p *protocol.TypeResPart) ([]*protocol.Type, bool) {
		return typesIn(p.AttributeTypeGetOwnersResPart)
	}, ThingTypeOf)
}

func (t *remoteAttributeType) GetRegex(ctx context.Context) (string, error) {
	if t.valueType != protocol.ValueTypeString {
		return "", graknerrors.RegexOnNonString.New(t.valueType)
	}
	res, err := executeType(ctx, t.tx, requests.AttributeTypeGetRegexReq(t.target))
	if err != nil {
		return "", err
	}
	if res.AttributeTypeGetRegexRes == nil {
		return "", graknerrors.MissingResponse.New("attribute_type_get_regex_res")
	}
	return res.AttributeTypeGetRegexRes.Regex, nil
}

func (t *remoteAttributeType) SetRegex(ctx context.Context, regex string) error {
	if t.valueType != protocol.ValueTypeString {
		return graknerrors.RegexOnNonString.New(t.valueType)
	}
	_, err := executeType(ctx, t.tx, requests.AttributeTypeSetRegexReq(t.target, regex))
	return err
}

type remoteRoleType struct {
	roleType
	typeOps
}

func (t *remoteRoleType) IsRemote() bool { return true }

// IsDeleted reports whether the scoping relation type no longer exists or no
// longer relates the role.
func (t *remoteRoleType) IsDeleted(ctx context.Context) (bool, error) {
	relationType, err := t.tx.Concepts().GetRelationType(ctx, t.target.Scope)
	if err != nil {
		return false, err
	}
	if relationType == nil {
		return true, nil
	}

	remote, err := Remote[RemoteRelationType](relationType, t.tx)
	if err != nil {
		return false, err
	}
	role, err := remote.GetRelatesForRoleLabel(ctx, t.target.Name)
	if err != nil {
		return false, err
	}
	return role == nil, nil
}

func (t *remoteRoleType) GetRelationType(ctx context.Context) (RelationType, error) {
	res, err := executeType(ctx, t.tx, requests.RoleTypeGetRelationTypeReq(t.target))
	if err != nil {
		return nil, err
	}
	if res.RoleTypeGetRelationTypeRes == nil {
		return nil, graknerrors.MissingResponse.New("role_type_get_relation_type_res")
	}
	return RelationTypeOf(res.RoleTypeGetRelationTypeRes.RelationType)
}

func (t *remoteRoleType) GetRelationTypes(ctx context.Context) *stream.Stream[RelationType] {
	parts := streamType(ctx, t.tx, requests.RoleTypeGetRelationTypesReq(t.target))
	return pages(parts, "role_type_get_relation_types_res_part", func(p *protocol.TypeResPart) ([]*protocol.Type, bool) {
		return typesIn(p.RoleTypeGetRelationTypesResPart)
	}, RelationTypeOf)
}

func (t *remoteRoleType) GetPlayers(ctx context.Context) *stream.Stream[ThingType] {
	parts := streamType(ctx, t.tx, requests.RoleTypeGetPlayersReq(t.target))
	return pages(parts, "role_type_get_players_res_part", func(p *protocol.TypeResPart) ([]*protocol.Type, bool) {
		return typesIn(p.RoleTypeGetPlayersResPart)
	}, ThingTypeOf)
}
