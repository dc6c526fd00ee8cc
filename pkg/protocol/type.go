package protocol

// TypeReq is a request addressed to the schema type identified by Label and
// Scope. Exactly one operation field is set.
type TypeReq struct {
	Label string `json:"label"`
	Scope string `json:"scope,omitempty"`

	TypeDeleteReq        *TypeDeleteReq        `json:"type_delete_req,omitempty"`
	TypeSetLabelReq      *TypeSetLabelReq      `json:"type_set_label_req,omitempty"`
	TypeIsAbstractReq    *TypeIsAbstractReq    `json:"type_is_abstract_req,omitempty"`
	TypeGetSupertypeReq  *TypeGetSupertypeReq  `json:"type_get_supertype_req,omitempty"`
	TypeSetSupertypeReq  *TypeSetSupertypeReq  `json:"type_set_supertype_req,omitempty"`
	TypeGetSupertypesReq *TypeGetSupertypesReq `json:"type_get_supertypes_req,omitempty"`
	TypeGetSubtypesReq   *TypeGetSubtypesReq   `json:"type_get_subtypes_req,omitempty"`

	RoleTypeGetRelationTypeReq  *RoleTypeGetRelationTypeReq  `json:"role_type_get_relation_type_req,omitempty"`
	RoleTypeGetRelationTypesReq *RoleTypeGetRelationTypesReq `json:"role_type_get_relation_types_req,omitempty"`
	RoleTypeGetPlayersReq       *RoleTypeGetPlayersReq       `json:"role_type_get_players_req,omitempty"`

	ThingTypeSetAbstractReq   *ThingTypeSetAbstractReq   `json:"thing_type_set_abstract_req,omitempty"`
	ThingTypeUnsetAbstractReq *ThingTypeUnsetAbstractReq `json:"thing_type_unset_abstract_req,omitempty"`
	ThingTypeGetInstancesReq  *ThingTypeGetInstancesReq  `json:"thing_type_get_instances_req,omitempty"`
	ThingTypeGetOwnsReq       *ThingTypeGetOwnsReq       `json:"thing_type_get_owns_req,omitempty"`
	ThingTypeSetOwnsReq       *ThingTypeSetOwnsReq       `json:"thing_type_set_owns_req,omitempty"`
	ThingTypeUnsetOwnsReq     *ThingTypeUnsetOwnsReq     `json:"thing_type_unset_owns_req,omitempty"`
	ThingTypeGetPlaysReq      *ThingTypeGetPlaysReq      `json:"thing_type_get_plays_req,omitempty"`
	ThingTypeSetPlaysReq      *ThingTypeSetPlaysReq      `json:"thing_type_set_plays_req,omitempty"`
	ThingTypeUnsetPlaysReq    *ThingTypeUnsetPlaysReq    `json:"thing_type_unset_plays_req,omitempty"`

	EntityTypeCreateReq *EntityTypeCreateReq `json:"entity_type_create_req,omitempty"`

	RelationTypeCreateReq                 *RelationTypeCreateReq                 `json:"relation_type_create_req,omitempty"`
	RelationTypeGetRelatesForRoleLabelReq *RelationTypeGetRelatesForRoleLabelReq `json:"relation_type_get_relates_for_role_label_req,omitempty"`
	RelationTypeGetRelatesReq             *RelationTypeGetRelatesReq             `json:"relation_type_get_relates_req,omitempty"`
	RelationTypeSetRelatesReq             *RelationTypeSetRelatesReq             `json:"relation_type_set_relates_req,omitempty"`
	RelationTypeUnsetRelatesReq           *RelationTypeUnsetRelatesReq           `json:"relation_type_unset_relates_req,omitempty"`

	AttributeTypePutReq       *AttributeTypePutReq       `json:"attribute_type_put_req,omitempty"`
	AttributeTypeGetReq       *AttributeTypeGetReq       `json:"attribute_type_get_req,omitempty"`
	AttributeTypeGetRegexReq  *AttributeTypeGetRegexReq  `json:"attribute_type_get_regex_req,omitempty"`
	AttributeTypeSetRegexReq  *AttributeTypeSetRegexReq  `json:"attribute_type_set_regex_req,omitempty"`
	AttributeTypeGetOwnersReq *AttributeTypeGetOwnersReq `json:"attribute_type_get_owners_req,omitempty"`
}

type TypeDeleteReq struct{}

type TypeSetLabelReq struct {
	Label string `json:"label"`
}

type TypeIsAbstractReq struct{}

type TypeGetSupertypeReq struct{}

type TypeSetSupertypeReq struct {
	Type *Type `json:"type"`
}

type TypeGetSupertypesReq struct{}

type TypeGetSubtypesReq struct{}

type RoleTypeGetRelationTypeReq struct{}

type RoleTypeGetRelationTypesReq struct{}

type RoleTypeGetPlayersReq struct{}

type ThingTypeSetAbstractReq struct{}

type ThingTypeUnsetAbstractReq struct{}

type ThingTypeGetInstancesReq struct{}

type ThingTypeGetPlaysReq struct{}

type ThingTypeUnsetOwnsReq struct {
	AttributeType *Type `json:"attribute_type"`
}

type ThingTypeUnsetPlaysReq struct {
	Role *Type `json:"role"`
}

type EntityTypeCreateReq struct{}

type RelationTypeCreateReq struct{}

type RelationTypeGetRelatesForRoleLabelReq struct {
	Label string `json:"label"`
}

type RelationTypeGetRelatesReq struct{}

type RelationTypeUnsetRelatesReq struct {
	Label string `json:"label"`
}

type AttributeTypePutReq struct {
	Value *AttributeValue `json:"value"`
}

type AttributeTypeGetReq struct {
	Value *AttributeValue `json:"value"`
}

type AttributeTypeGetRegexReq struct{}

type AttributeTypeSetRegexReq struct {
	Regex string `json:"regex"`
}

type AttributeTypeGetOwnersReq struct {
	OnlyKey bool `json:"only_key,omitempty"`
}

// ThingTypeGetOwnsReq lists owned attribute types, optionally filtered by value
// type and to keys only.
type ThingTypeGetOwnsReq struct {
	ValueType *ValueType `json:"value_type,omitempty"`
	KeysOnly  bool       `json:"keys_only,omitempty"`
}

// ThingTypeSetOwnsReq declares ownership of an attribute type.
type ThingTypeSetOwnsReq struct {
	AttributeType  *Type `json:"attribute_type"`
	OverriddenType *Type `json:"overridden_type,omitempty"`
	IsKey          bool  `json:"is_key,omitempty"`
}

// ThingTypeSetPlaysReq declares that instances may play a role.
type ThingTypeSetPlaysReq struct {
	Role           *Type `json:"role"`
	OverriddenRole *Type `json:"overridden_role,omitempty"`
}

// RelationTypeSetRelatesReq declares a role of a relation type.
type RelationTypeSetRelatesReq struct {
	Label           string `json:"label"`
	OverriddenLabel string `json:"overridden_label,omitempty"`
}

// TypeRes is the single response to a non-streaming TypeReq.
type TypeRes struct {
	TypeDeleteRes       *TypeDeleteRes       `json:"type_delete_res,omitempty"`
	TypeSetLabelRes     *TypeSetLabelRes     `json:"type_set_label_res,omitempty"`
	TypeIsAbstractRes   *TypeIsAbstractRes   `json:"type_is_abstract_res,omitempty"`
	TypeGetSupertypeRes *TypeGetSupertypeRes `json:"type_get_supertype_res,omitempty"`
	TypeSetSupertypeRes *TypeSetSupertypeRes `json:"type_set_supertype_res,omitempty"`

	RoleTypeGetRelationTypeRes *RoleTypeGetRelationTypeRes `json:"role_type_get_relation_type_res,omitempty"`

	ThingTypeSetAbstractRes   *ThingTypeSetAbstractRes   `json:"thing_type_set_abstract_res,omitempty"`
	ThingTypeUnsetAbstractRes *ThingTypeUnsetAbstractRes `json:"thing_type_unset_abstract_res,omitempty"`
	ThingTypeSetOwnsRes       *ThingTypeSetOwnsRes       `json:"thing_type_set_owns_res,omitempty"`
	ThingTypeUnsetOwnsRes     *ThingTypeUnsetOwnsRes     `json:"thing_type_unset_owns_res,omitempty"`
	ThingTypeSetPlaysRes      *ThingTypeSetPlaysRes      `json:"thing_type_set_plays_res,omitempty"`
	ThingTypeUnsetPlaysRes    *ThingTypeUnsetPlaysRes    `json:"thing_type_unset_plays_res,omitempty"`

	EntityTypeCreateRes *EntityTypeCreateRes `json:"entity_type_create_res,omitempty"`

	RelationTypeCreateRes                 *RelationTypeCreateRes                 `json:"relation_type_create_res,omitempty"`
	RelationTypeGetRelatesForRoleLabelRes *RelationTypeGetRelatesForRoleLabelRes `json:"relation_type_get_relates_for_role_label_res,omitempty"`
	RelationTypeSetRelatesRes             *RelationTypeSetRelatesRes             `json:"relation_type_set_relates_res,omitempty"`
	RelationTypeUnsetRelatesRes           *RelationTypeUnsetRelatesRes           `json:"relation_type_unset_relates_res,omitempty"`

	AttributeTypePutRes      *AttributeTypePutRes      `json:"attribute_type_put_res,omitempty"`
	AttributeTypeGetRes      *AttributeTypeGetRes      `json:"attribute_type_get_res,omitempty"`
	AttributeTypeGetRegexRes *AttributeTypeGetRegexRes `json:"attribute_type_get_regex_res,omitempty"`
	AttributeTypeSetRegexRes *AttributeTypeSetRegexRes `json:"attribute_type_set_regex_res,omitempty"`
}

type TypeDeleteRes struct{}

type TypeSetLabelRes struct{}

type TypeIsAbstractRes struct {
	Abstract bool `json:"abstract,omitempty"`
}

type TypeGetSupertypeRes struct {
	Type *Type `json:"type,omitempty"`
}

type TypeSetSupertypeRes struct{}

type RoleTypeGetRelationTypeRes struct {
	RelationType *Type `json:"relation_type"`
}

type ThingTypeSetAbstractRes struct{}

type ThingTypeUnsetAbstractRes struct{}

type ThingTypeSetOwnsRes struct{}

type ThingTypeUnsetOwnsRes struct{}

type ThingTypeSetPlaysRes struct{}

type ThingTypeUnsetPlaysRes struct{}

type EntityTypeCreateRes struct {
	Entity *Thing `json:"entity"`
}

type RelationTypeCreateRes struct {
	Relation *Thing `json:"relation"`
}

type RelationTypeGetRelatesForRoleLabelRes struct {
	RoleType *Type `json:"role_type,omitempty"`
}

type RelationTypeSetRelatesRes struct{}

type RelationTypeUnsetRelatesRes struct{}

type AttributeTypePutRes struct {
	Attribute *Thing `json:"attribute"`
}

type AttributeTypeGetRes struct {
	Attribute *Thing `json:"attribute,omitempty"`
}

type AttributeTypeGetRegexRes struct {
	Regex string `json:"regex,omitempty"`
}

type AttributeTypeSetRegexRes struct{}

// TypeResPart is one page of a streaming TypeReq.
type TypeResPart struct {
	TypeGetSupertypesResPart *TypesResPart `json:"type_get_supertypes_res_part,omitempty"`
	TypeGetSubtypesResPart   *TypesResPart `json:"type_get_subtypes_res_part,omitempty"`

	RoleTypeGetRelationTypesResPart *TypesResPart `json:"role_type_get_relation_types_res_part,omitempty"`
	RoleTypeGetPlayersResPart       *TypesResPart `json:"role_type_get_players_res_part,omitempty"`

	ThingTypeGetInstancesResPart *ThingsResPart `json:"thing_type_get_instances_res_part,omitempty"`
	ThingTypeGetOwnsResPart      *TypesResPart  `json:"thing_type_get_owns_res_part,omitempty"`
	ThingTypeGetPlaysResPart     *TypesResPart  `json:"thing_type_get_plays_res_part,omitempty"`

	RelationTypeGetRelatesResPart *TypesResPart `json:"relation_type_get_relates_res_part,omitempty"`

	AttributeTypeGetOwnersResPart *TypesResPart `json:"attribute_type_get_owners_res_part,omitempty"`
}

// TypesResPart is a page of types.
type TypesResPart struct {
	Types []*Type `json:"types"`
}

// ThingsResPart is a page of things.
type ThingsResPart struct {
	Things []*Thing `json:"things"`
}
