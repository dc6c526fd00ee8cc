package concept

import (
	"context"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
)

// Transaction is the live transaction a remote handle issues its requests
// against.
type Transaction interface {
	// Execute sends a request and waits for its single response.
	Execute(ctx context.Context, req *protocol.TransactionReq) (*protocol.TransactionRes, error)

	// Stream sends a streaming request and returns its response parts. Parts
	// are fetched lazily as the stream is pulled.
	Stream(ctx context.Context, req *protocol.TransactionReq) *stream.Stream[*protocol.TransactionResPart]

	// Concepts returns the concept manager of the transaction.
	Concepts() Manager
}

// Concept is either a Type or a Thing.
type Concept interface {
	IsRemote() bool

	IsType() bool
	IsThingType() bool
	IsEntityType() bool
	IsRelationType() bool
	IsAttributeType() bool
	IsRoleType() bool

	IsThing() bool
	IsEntity() bool
	IsRelation() bool
	IsAttribute() bool

	// AsRemote binds the concept to tx. The result implements the remote
	// interface matching the concept's kind, such as RemoteRelationType for a
	// RelationType.
	AsRemote(tx Transaction) RemoteConcept
}

// RemoteConcept is a concept bound to a transaction.
type RemoteConcept interface {
	Concept

	// Transaction returns the transaction the concept is bound to.
	Transaction() Transaction
}

// Remote binds c to tx and returns it as the remote kind R.
func Remote[R RemoteConcept](c Concept, tx Transaction) (R, error) {
	var zero R
	if c == nil {
		return zero, graknerrors.MissingArgument.New("concept")
	}
	remote, ok := c.AsRemote(tx).(R)
	if !ok {
		return zero, graknerrors.InvalidRemote.New(describe(c))
	}
	return remote, nil
}

func describe(c Concept) string {
	switch c := c.(type) {
	case Type:
		return c.Label().String()
	case Thing:
		return c.IID()
	default:
		return "unknown"
	}
}

// Type is a schema type.
type Type interface {
	Concept
	Label() label.Label
	IsRoot() bool
}

// ThingType is the type of things: entity, relation and attribute types and
// the root `thing` type.
type ThingType interface {
	Type
	thingTypeKind()
}

// EntityType is the type of entities.
type EntityType interface {
	ThingType
	entityTypeKind()
}

// RelationType is the type of relations. It relates role types.
type RelationType interface {
	ThingType
	relationTypeKind()
}

// AttributeType is an attribute type along with the type of its values.
type AttributeType interface {
	ThingType
	ValueType() protocol.ValueType
	attributeTypeKind()
}

// RoleType is a role of a relation type. Its label is scoped by the relation
// type that declares it.
type RoleType interface {
	Type
	roleTypeKind()
}

// Thing is an instance of a ThingType.
type Thing interface {
	Concept
	IID() string
	Type() ThingType
	IsInferred() bool
}

// Entity is an instance of an EntityType.
type Entity interface {
	Thing
	EntityType() EntityType
}

// Relation is an instance of a RelationType, connecting role players.
type Relation interface {
	Thing
	RelationType() RelationType
}

// Attribute is an instance of an AttributeType holding a value.
type Attribute interface {
	Thing
	AttributeType() AttributeType
	Value() Value
}
