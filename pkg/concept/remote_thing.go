package concept

import (
	"context"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/requests"
	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
)

// thingOps implements the requests shared by every remote thing.
type thingOps struct {
	tx  Transaction
	iid string
}

func (o thingOps) Transaction() Transaction { return o.tx }

func (o thingOps) IsDeleted(ctx context.Context) (bool, error) {
	found, err := o.tx.Concepts().GetThing(ctx, o.iid)
	if err != nil {
		return false, err
	}
	return found == nil, nil
}

func (o thingOps) Delete(ctx context.Context) error {
	_, err := executeThing(ctx, o.tx, requests.ThingDeleteReq(o.iid))
	return err
}

func (o thingOps) GetHas(ctx context.Context, opts ...GetHasOption) *stream.Stream[Attribute] {
	args := applyOptions(opts)
	parts := streamThing(ctx, o.tx, requests.ThingGetHasReq(o.iid, typeProtos(args.attributeTypes), args.keysOnly))
	return pages(parts, "thing_get_has_res_part", func(p *protocol.ThingResPart) ([]*protocol.Thing, bool) {
		return thingsIn(p.ThingGetHasResPart)
	}, AttributeOf)
}

func (o thingOps) SetHas(ctx context.Context, attribute Attribute) error {
	if attribute == nil {
		return graknerrors.MissingArgument.New("attribute")
	}
	arg, err := thingProto(attribute)
	if err != nil {
		return err
	}
	_, err = executeThing(ctx, o.tx, requests.ThingSetHasReq(o.iid, arg))
	return err
}

func (o thingOps) UnsetHas(ctx context.Context, attribute Attribute) error {
	if attribute == nil {
		return graknerrors.MissingArgument.New("attribute")
	}
	arg, err := thingProto(attribute)
	if err != nil {
		return err
	}
	_, err = executeThing(ctx, o.tx, requests.ThingUnsetHasReq(o.iid, arg))
	return err
}

func (o thingOps) GetRelations(ctx context.Context, roleTypes ...RoleType) *stream.Stream[Relation] {
	parts := streamThing(ctx, o.tx, requests.ThingGetRelationsReq(o.iid, typeProtos(roleTypes)))
	return pages(parts, "thing_get_relations_res_part", func(p *protocol.ThingResPart) ([]*protocol.Thing, bool) {
		return thingsIn(p.ThingGetRelationsResPart)
	}, RelationOf)
}

func (o thingOps) GetPlaying(ctx context.Context) *stream.Stream[RoleType] {
	parts := streamThing(ctx, o.tx, requests.ThingGetPlayingReq(o.iid))
	return pages(parts, "thing_get_playing_res_part", func(p *protocol.ThingResPart) ([]*protocol.Type, bool) {
		return typesIn(p.ThingGetPlayingResPart)
	}, RoleTypeOf)
}

type remoteThing struct {
	thing
	thingOps
}

func (t *remoteThing) IsRemote() bool { return true }

type remoteEntity struct {
	entity
	thingOps
}

func (e *remoteEntity) IsRemote() bool { return true }

type remoteRelation struct {
	relation
	thingOps
}

func (r *remoteRelation) IsRemote() bool { return true }

func (r *remoteRelation) AddPlayer(ctx context.Context, roleType RoleType, player Thing) error {
	if roleType == nil || player == nil {
		return graknerrors.MissingArgument.New("roleType, player")
	}
	arg, err := thingProto(player)
	if err != nil {
		return err
	}
	_, err = executeThing(ctx, r.tx, requests.RelationAddPlayerReq(r.iid, typeProto(roleType), arg))
	return err
}

func (r *remoteRelation) RemovePlayer(ctx context.Context, roleType RoleType, player Thing) error {
	if roleType == nil || player == nil {
		return graknerrors.MissingArgument.New("roleType, player")
	}
	arg, err := thingProto(player)
	if err != nil {
		return err
	}
	_, err = executeThing(ctx, r.tx, requests.RelationRemovePlayerReq(r.iid, typeProto(roleType), arg))
	return err
}

func (r *remoteRelation) GetPlayers(ctx context.Context, roleTypes ...RoleType) *stream.Stream[Thing] {
	parts := streamThing(ctx, r.tx, requests.RelationGetPlayersReq(r.iid, typeProtos(roleTypes)))
	return pages(parts, "relation_get_players_res_part", func(p *protocol.ThingResPart) ([]*protocol.Thing, bool) {
		return thingsIn(p.RelationGetPlayersResPart)
	}, ThingOf)
}

type rolePlayer struct {
	roleType RoleType
	player   Thing
}

func rolePlayerOf(p *protocol.RoleTypeWithPlayer) (rolePlayer, error) {
	roleType, err := RoleTypeOf(p.RoleType)
	if err != nil {
		return rolePlayer{}, err
	}
	player, err := ThingOf(p.Player)
	if err != nil {
		return rolePlayer{}, err
	}
	return rolePlayer{roleType: roleType, player: player}, nil
}

func (r *remoteRelation) GetPlayersByRoleType(ctx context.Context) ([]RolePlayers, error) {
	parts := streamThing(ctx, r.tx, requests.RelationGetPlayersByRoleTypeReq(r.iid))
	pairs := pages(parts, "relation_get_players_by_role_type_res_part", func(p *protocol.ThingResPart) ([]*protocol.RoleTypeWithPlayer, bool) {
		if p.RelationGetPlayersByRoleTypeResPart == nil {
			return nil, false
		}
		return p.RelationGetPlayersByRoleTypeResPart.RoleTypesWithPlayers, true
	}, rolePlayerOf)

	var grouped []RolePlayers
	index := make(map[label.Label]int)
	err := pairs.ForEach(ctx, func(pair rolePlayer) error {
		i, ok := index[pair.roleType.Label()]
		if !ok {
			i = len(grouped)
			index[pair.roleType.Label()] = i
			grouped = append(grouped, RolePlayers{RoleType: pair.roleType})
		}
		grouped[i].Players = append(grouped[i].Players, pair.player)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grouped, nil
}

func (r *remoteRelation) GetRelating(ctx context.Context) *stream.Stream[RoleType] {
	parts := streamThing(ctx, r.tx, requests.RelationGetRelatingReq(r.iid))
	return pages(parts, "relation_get_relating_res_part", func(p *protocol.ThingResPart) ([]*protocol.Type, bool) {
		return typesIn(p.RelationGetRelatingResPart)
	}, RoleTypeOf)
}

type remoteAttribute struct {
	attribute
	thingOps
}

func (a *remoteAttribute) IsRemote() bool { return true }

func (a *remoteAttribute) GetOwners(ctx context.Context) *stream.Stream[Thing] {
	return a.getOwners(ctx, nil)
}

func (a *remoteAttribute) GetOwnersOfType(ctx context.Context, ownerType ThingType) *stream.Stream[Thing] {
	if ownerType == nil {
		return stream.Failed[Thing](graknerrors.MissingArgument.New("ownerType"))
	}
	return a.getOwners(ctx, typeProto(ownerType))
}

func (a *remoteAttribute) getOwners(ctx context.Context, ownerType *protocol.Type) *stream.Stream[Thing] {
	parts := streamThing(ctx, a.tx, requests.AttributeGetOwnersReq(a.iid, ownerType))
	return pages(parts, "attribute_get_owners_res_part", func(p *protocol.ThingResPart) ([]*protocol.Thing, bool) {
		return thingsIn(p.AttributeGetOwnersResPart)
	}, ThingOf)
}
