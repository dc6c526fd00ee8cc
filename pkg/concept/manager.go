package concept

import (
	"context"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/requests"
)

// Labels of the root types every schema contains.
const (
	RootThing     = "thing"
	RootEntity    = "entity"
	RootRelation  = "relation"
	RootAttribute = "attribute"
	RootRole      = "role"
)

// Manager looks up and creates concepts within a transaction. Lookups of
// concepts that do not exist return nil without an error.
type Manager interface {
	GetThingType(ctx context.Context, name string) (ThingType, error)
	GetEntityType(ctx context.Context, name string) (EntityType, error)
	GetRelationType(ctx context.Context, name string) (RelationType, error)
	GetAttributeType(ctx context.Context, name string) (AttributeType, error)

	PutEntityType(ctx context.Context, name string) (EntityType, error)
	PutRelationType(ctx context.Context, name string) (RelationType, error)
	PutAttributeType(ctx context.Context, name string, valueType protocol.ValueType) (AttributeType, error)

	GetThing(ctx context.Context, iid string) (Thing, error)

	GetRootThingType(ctx context.Context) (ThingType, error)
	GetRootEntityType(ctx context.Context) (EntityType, error)
	GetRootRelationType(ctx context.Context) (RelationType, error)
	GetRootAttributeType(ctx context.Context) (AttributeType, error)
}

type manager struct {
	tx Transaction
}

// NewManager returns a Manager issuing its requests against tx.
func NewManager(tx Transaction) Manager {
	return &manager{tx: tx}
}

func (m *manager) execute(ctx context.Context, req *protocol.TransactionReq) (*protocol.ConceptManagerRes, error) {
	res, err := m.tx.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if res == nil || res.ConceptManagerRes == nil {
		return nil, graknerrors.MissingResponse.New("concept_manager_res")
	}
	return res.ConceptManagerRes, nil
}

func (m *manager) GetThingType(ctx context.Context, name string) (ThingType, error) {
	if name == "" {
		return nil, graknerrors.MissingLabel.New()
	}
	res, err := m.execute(ctx, requests.ConceptManagerGetThingTypeReq(name))
	if err != nil {
		return nil, err
	}
	if res.GetThingTypeRes == nil {
		return nil, graknerrors.MissingResponse.New("get_thing_type_res")
	}
	if res.GetThingTypeRes.ThingType == nil {
		return nil, nil
	}
	return ThingTypeOf(res.GetThingTypeRes.ThingType)
}

// getAs looks up a thing type and narrows it to the kind K, returning nil if
// the type exists but is of another kind.
func getAs[K ThingType](ctx context.Context, m *manager, name string) (K, error) {
	var zero K
	found, err := m.GetThingType(ctx, name)
	if err != nil || found == nil {
		return zero, err
	}
	narrowed, ok := found.(K)
	if !ok {
		return zero, nil
	}
	return narrowed, nil
}

func (m *manager) GetEntityType(ctx context.Context, name string) (EntityType, error) {
	return getAs[EntityType](ctx, m, name)
}

func (m *manager) GetRelationType(ctx context.Context, name string) (RelationType, error) {
	return getAs[RelationType](ctx, m, name)
}

func (m *manager) GetAttributeType(ctx context.Context, name string) (AttributeType, error) {
	return getAs[AttributeType](ctx, m, name)
}

func (m *manager) PutEntityType(ctx context.Context, name string) (EntityType, error) {
	if name == "" {
		return nil, graknerrors.MissingLabel.New()
	}
	res, err := m.execute(ctx, requests.ConceptManagerPutEntityTypeReq(name))
	if err != nil {
		return nil, err
	}
	if res.PutEntityTypeRes == nil {
		return nil, graknerrors.MissingResponse.New("put_entity_type_res")
	}
	return EntityTypeOf(res.PutEntityTypeRes.EntityType)
}

func (m *manager) PutRelationType(ctx context.Context, name string) (RelationType, error) {
	if name == "" {
		return nil, graknerrors.MissingLabel.New()
	}
	res, err := m.execute(ctx, requests.ConceptManagerPutRelationTypeReq(name))
	if err != nil {
		return nil, err
	}
	if res.PutRelationTypeRes == nil {
		return nil, graknerrors.MissingResponse.New("put_relation_type_res")
	}
	return RelationTypeOf(res.PutRelationTypeRes.RelationType)
}

func (m *manager) PutAttributeType(ctx context.Context, name string, valueType protocol.ValueType) (AttributeType, error) {
	if name == "" {
		return nil, graknerrors.MissingLabel.New()
	}
	if valueType == protocol.ValueTypeObject {
		return nil, graknerrors.BadValueType.New(valueType)
	}
	res, err := m.execute(ctx, requests.ConceptManagerPutAttributeTypeReq(name, valueType))
	if err != nil {
		return nil, err
	}
	if res.PutAttributeTypeRes == nil {
		return nil, graknerrors.MissingResponse.New("put_attribute_type_res")
	}
	return AttributeTypeOf(res.PutAttributeTypeRes.AttributeType)
}

func (m *manager) GetThing(ctx context.Context, iid string) (Thing, error) {
	if iid == "" {
		return nil, graknerrors.MissingIID.New()
	}
	res, err := m.execute(ctx, requests.ConceptManagerGetThingReq(iid))
	if err != nil {
		return nil, err
	}
	if res.GetThingRes == nil {
		return nil, graknerrors.MissingResponse.New("get_thing_res")
	}
	if res.GetThingRes.Thing == nil {
		return nil, nil
	}
	return ThingOf(res.GetThingRes.Thing)
}

func (m *manager) GetRootThingType(ctx context.Context) (ThingType, error) {
	return m.GetThingType(ctx, RootThing)
}

func (m *manager) GetRootEntityType(ctx context.Context) (EntityType, error) {
	return m.GetEntityType(ctx, RootEntity)
}

func (m *manager) GetRootRelationType(ctx context.Context) (RelationType, error) {
	return m.GetRelationType(ctx, RootRelation)
}

func (m *manager) GetRootAttributeType(ctx context.Context) (AttributeType, error) {
	return m.GetAttributeType(ctx, RootAttribute)
}
