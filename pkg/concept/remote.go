package concept

import (
	"context"

	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
)

// RemoteType is a Type bound to a transaction.
type RemoteType interface {
	Type
	RemoteConcept

	// SetLabel renames the type. The handle keeps its original label, so
	// subsequent calls on it address a type that no longer exists.
	SetLabel(ctx context.Context, name string) error
	IsAbstract(ctx context.Context) (bool, error)

	// GetSupertype returns the direct supertype, or nil for a root type.
	GetSupertype(ctx context.Context) (Type, error)

	// GetSupertypes returns the type and all of its supertypes.
	GetSupertypes(ctx context.Context) *stream.Stream[Type]

	// GetSubtypes returns the type and all of its subtypes.
	GetSubtypes(ctx context.Context) *stream.Stream[Type]

	Delete(ctx context.Context) error

	// IsDeleted reports whether the label of the handle no longer resolves in
	// the transaction.
	IsDeleted(ctx context.Context) (bool, error)
}

// RemoteThingType is a ThingType bound to a transaction.
type RemoteThingType interface {
	ThingType
	RemoteType

	GetInstances(ctx context.Context) *stream.Stream[Thing]
	GetOwns(ctx context.Context, opts ...GetOwnsOption) *stream.Stream[AttributeType]
	SetOwns(ctx context.Context, attributeType AttributeType, opts ...SetOwnsOption) error
	UnsetOwns(ctx context.Context, attributeType AttributeType) error
	GetPlays(ctx context.Context) *stream.Stream[RoleType]
	SetPlays(ctx context.Context, role RoleType) error
	SetPlaysOverriding(ctx context.Context, role, overriddenRole RoleType) error
	UnsetPlays(ctx context.Context, role RoleType) error
	SetAbstract(ctx context.Context) error
	UnsetAbstract(ctx context.Context) error
	SetSupertype(ctx context.Context, supertype ThingType) error
}

type RemoteEntityType interface {
	EntityType
	RemoteThingType

	Create(ctx context.Context) (Entity, error)
}

type RemoteRelationType interface {
	RelationType
	RemoteThingType

	Create(ctx context.Context) (Relation, error)
	GetRelates(ctx context.Context) *stream.Stream[RoleType]

	// GetRelatesForRoleLabel returns the role named roleLabel, or nil if the
	// relation type has no such role.
	GetRelatesForRoleLabel(ctx context.Context, roleLabel string) (RoleType, error)
	SetRelates(ctx context.Context, roleLabel string) error
	SetRelatesOverriding(ctx context.Context, roleLabel, overriddenLabel string) error
	UnsetRelates(ctx context.Context, roleLabel string) error
}

type RemoteAttributeType interface {
	AttributeType
	RemoteThingType

	// Put returns the attribute holding value, creating it if necessary.
	Put(ctx context.Context, value Value) (Attribute, error)

	// Get returns the attribute holding value, or nil if there is none.
	Get(ctx context.Context, value Value) (Attribute, error)
	GetOwners(ctx context.Context, onlyKey bool) *stream.Stream[ThingType]
	GetRegex(ctx context.Context) (string, error)
	SetRegex(ctx context.Context, regex string) error
}

type RemoteRoleType interface {
	RoleType
	RemoteType

	GetRelationType(ctx context.Context) (RelationType, error)
	GetRelationTypes(ctx context.Context) *stream.Stream[RelationType]
	GetPlayers(ctx context.Context) *stream.Stream[ThingType]
}

// RemoteThing is a Thing bound to a transaction.
type RemoteThing interface {
	Thing
	RemoteConcept

	GetHas(ctx context.Context, opts ...GetHasOption) *stream.Stream[Attribute]
	SetHas(ctx context.Context, attribute Attribute) error
	UnsetHas(ctx context.Context, attribute Attribute) error

	// GetRelations returns the relations the thing plays a role in, limited to
	// roleTypes when any are given.
	GetRelations(ctx context.Context, roleTypes ...RoleType) *stream.Stream[Relation]
	GetPlaying(ctx context.Context) *stream.Stream[RoleType]
	Delete(ctx context.Context) error
	IsDeleted(ctx context.Context) (bool, error)
}

type RemoteEntity interface {
	Entity
	RemoteThing
}

type RemoteRelation interface {
	Relation
	RemoteThing

	AddPlayer(ctx context.Context, roleType RoleType, player Thing) error
	RemovePlayer(ctx context.Context, roleType RoleType, player Thing) error
	GetPlayers(ctx context.Context, roleTypes ...RoleType) *stream.Stream[Thing]

	// GetPlayersByRoleType groups the players of the relation by role, in the
	// order the roles were first reported.
	GetPlayersByRoleType(ctx context.Context) ([]RolePlayers, error)
	GetRelating(ctx context.Context) *stream.Stream[RoleType]
}

// RolePlayers are the players of one role of a relation.
type RolePlayers struct {
	RoleType RoleType
	Players  []Thing
}

type RemoteAttribute interface {
	Attribute
	RemoteThing

	GetOwners(ctx context.Context) *stream.Stream[Thing]
	GetOwnersOfType(ctx context.Context, ownerType ThingType) *stream.Stream[Thing]
}
