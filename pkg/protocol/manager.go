package protocol

// ConceptManagerReq is a transaction-level request to look up or create
// concepts. Exactly one operation field is set.
type ConceptManagerReq struct {
	GetThingTypeReq     *GetThingTypeReq     `json:"get_thing_type_req,omitempty"`
	GetThingReq         *GetThingReq         `json:"get_thing_req,omitempty"`
	PutEntityTypeReq    *PutEntityTypeReq    `json:"put_entity_type_req,omitempty"`
	PutRelationTypeReq  *PutRelationTypeReq  `json:"put_relation_type_req,omitempty"`
	PutAttributeTypeReq *PutAttributeTypeReq `json:"put_attribute_type_req,omitempty"`
}

type GetThingTypeReq struct {
	Label string `json:"label"`
}

type GetThingReq struct {
	IID string `json:"iid"`
}

type PutEntityTypeReq struct {
	Label string `json:"label"`
}

type PutRelationTypeReq struct {
	Label string `json:"label"`
}

// PutAttributeTypeReq creates an attribute type if it does not exist.
type PutAttributeTypeReq struct {
	Label     string    `json:"label"`
	ValueType ValueType `json:"value_type"`
}

// ConceptManagerRes is the response to a ConceptManagerReq.
type ConceptManagerRes struct {
	GetThingTypeRes     *GetThingTypeRes     `json:"get_thing_type_res,omitempty"`
	GetThingRes         *GetThingRes         `json:"get_thing_res,omitempty"`
	PutEntityTypeRes    *PutEntityTypeRes    `json:"put_entity_type_res,omitempty"`
	PutRelationTypeRes  *PutRelationTypeRes  `json:"put_relation_type_res,omitempty"`
	PutAttributeTypeRes *PutAttributeTypeRes `json:"put_attribute_type_res,omitempty"`
}

type GetThingTypeRes struct {
	ThingType *Type `json:"thing_type,omitempty"`
}

type GetThingRes struct {
	Thing *Thing `json:"thing,omitempty"`
}

type PutEntityTypeRes struct {
	EntityType *Type `json:"entity_type"`
}

type PutRelationTypeRes struct {
	RelationType *Type `json:"relation_type"`
}

type PutAttributeTypeRes struct {
	AttributeType *Type `json:"attribute_type"`
}
