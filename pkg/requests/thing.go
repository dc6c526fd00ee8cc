package requests

import (
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

func thingReq(iid string, req *protocol.ThingReq) *protocol.TransactionReq {
	req.IID = iid
	return &protocol.TransactionReq{ThingReq: req}
}

func ThingDeleteReq(iid string) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{ThingDeleteReq: &protocol.ThingDeleteReq{}})
}

// ThingGetHasReq lists owned attributes. Empty attributeTypes disables
// attribute type filtering.
func ThingGetHasReq(iid string, attributeTypes []*protocol.Type, keysOnly bool) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{ThingGetHasReq: &protocol.ThingGetHasReq{
		AttributeTypes: attributeTypes,
		KeysOnly:       keysOnly,
	}})
}

func ThingSetHasReq(iid string, attribute *protocol.Thing) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{ThingSetHasReq: &protocol.ThingSetHasReq{Attribute: attribute}})
}

func ThingUnsetHasReq(iid string, attribute *protocol.Thing) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{ThingUnsetHasReq: &protocol.ThingUnsetHasReq{Attribute: attribute}})
}

func ThingGetRelationsReq(iid string, roleTypes []*protocol.Type) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{ThingGetRelationsReq: &protocol.ThingGetRelationsReq{RoleTypes: roleTypes}})
}

func ThingGetPlayingReq(iid string) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{ThingGetPlayingReq: &protocol.ThingGetPlayingReq{}})
}

func RelationAddPlayerReq(iid string, roleType *protocol.Type, player *protocol.Thing) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{RelationAddPlayerReq: &protocol.RelationAddPlayerReq{
		RoleType: roleType,
		Player:   player,
	}})
}

func RelationRemovePlayerReq(iid string, roleType *protocol.Type, player *protocol.Thing) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{RelationRemovePlayerReq: &protocol.RelationRemovePlayerReq{
		RoleType: roleType,
		Player:   player,
	}})
}

func RelationGetPlayersReq(iid string, roleTypes []*protocol.Type) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{RelationGetPlayersReq: &protocol.RelationGetPlayersReq{RoleTypes: roleTypes}})
}

func RelationGetPlayersByRoleTypeReq(iid string) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{RelationGetPlayersByRoleTypeReq: &protocol.RelationGetPlayersByRoleTypeReq{}})
}

func RelationGetRelatingReq(iid string) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{RelationGetRelatingReq: &protocol.RelationGetRelatingReq{}})
}

// AttributeGetOwnersReq lists the owners of an attribute, optionally only
// those of thingType.
func AttributeGetOwnersReq(iid string, thingType *protocol.Type) *protocol.TransactionReq {
	return thingReq(iid, &protocol.ThingReq{AttributeGetOwnersReq: &protocol.AttributeGetOwnersReq{ThingType: thingType}})
}
