package testserver

import (
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// thingParts streams one part per thing.
func thingParts(things []*protocol.Thing, wrap func(*protocol.ThingsResPart) *protocol.TransactionResPart) answer {
	parts := make([]*protocol.TransactionResPart, 0, len(things))
	for _, t := range things {
		parts = append(parts, wrap(&protocol.ThingsResPart{Things: []*protocol.Thing{t}}))
	}
	return streamed(parts)
}

func thingRes(res *protocol.ThingRes) answer {
	return single(&protocol.TransactionRes{ThingRes: res})
}

func thingPart(part *protocol.ThingResPart) *protocol.TransactionResPart {
	return &protocol.TransactionResPart{ThingResPart: part}
}

// typeFilter returns the keys of the given types and all their subtypes, or
// nil if no types are given.
func typeFilter(s store, types []*protocol.Type) (map[string]bool, error) {
	if len(types) == 0 {
		return nil, nil
	}
	keys := map[string]bool{}
	for _, proto := range types {
		t, err := s.getTypeOf(proto, "type")
		if err != nil {
			return nil, err
		}
		subtypes, err := s.subtypes(t)
		if err != nil {
			return nil, err
		}
		for _, sub := range subtypes {
			keys[sub.key] = true
		}
	}
	return keys, nil
}

func (tx *transaction) thingRequest(req *protocol.ThingReq) (answer, error) {
	s := tx.store()
	thing, err := s.getThing(req.IID)
	if err != nil {
		return answer{}, err
	}

	switch {
	case req.ThingDeleteReq != nil:
		if err := tx.writeData(); err != nil {
			return answer{}, err
		}
		if err := s.deleteThing(thing); err != nil {
			return answer{}, err
		}
		return thingRes(&protocol.ThingRes{ThingDeleteRes: &protocol.ThingDeleteRes{}}), nil

	case req.ThingGetHasReq != nil:
		return tx.getHas(s, thing, req.ThingGetHasReq)

	case req.ThingSetHasReq != nil:
		if err := tx.setHas(s, thing, req.ThingSetHasReq.Attribute); err != nil {
			return answer{}, err
		}
		return thingRes(&protocol.ThingRes{ThingSetHasRes: &protocol.ThingSetHasRes{}}), nil

	case req.ThingUnsetHasReq != nil:
		if err := tx.writeData(); err != nil {
			return answer{}, err
		}
		attribute, err := s.getThingOf(req.ThingUnsetHasReq.Attribute, "attribute")
		if err != nil {
			return answer{}, err
		}
		edge, err := first[*hasRecord](s.txn.First(tableHas, indexID, thing.iid, attribute.iid))
		if err != nil {
			return answer{}, err
		}
		if edge == nil {
			return answer{}, notFound("ownership", thing.iid+" has "+attribute.iid)
		}
		if err := s.txn.Delete(tableHas, edge); err != nil {
			return answer{}, err
		}
		return thingRes(&protocol.ThingRes{ThingUnsetHasRes: &protocol.ThingUnsetHasRes{}}), nil

	case req.ThingGetRelationsReq != nil:
		return tx.getRelations(s, thing, req.ThingGetRelationsReq.RoleTypes)

	case req.ThingGetPlayingReq != nil:
		edges, err := collect[*rolePlayerRecord](s.txn.Get(tableRolePlayer, indexPlayer, thing.iid))
		if err != nil {
			return answer{}, err
		}
		seen := map[string]bool{}
		var roles []*typeRecord
		for _, e := range edges {
			if seen[e.role] {
				continue
			}
			seen[e.role] = true
			role, err := s.getType(e.role)
			if err != nil {
				return answer{}, err
			}
			roles = append(roles, role)
		}
		return typesAnswer(roles, func(p *protocol.TypesResPart) *protocol.TransactionResPart {
			return thingPart(&protocol.ThingResPart{ThingGetPlayingResPart: p})
		}), nil

	case req.AttributeGetOwnersReq != nil:
		if thing.encoding != protocol.ThingEncodingAttribute {
			return answer{}, invalidArgument("'%s' is not an attribute", thing.iid)
		}
		return tx.getOwners(s, thing, req.AttributeGetOwnersReq.ThingType)
	}

	if thing.encoding == protocol.ThingEncodingRelation {
		return tx.relationRequest(s, thing, req)
	}
	return answer{}, invalidArgument("operation is not supported by %s '%s'", thing.encoding, thing.iid)
}

func (tx *transaction) getHas(s store, thing *thingRecord, req *protocol.ThingGetHasReq) (answer, error) {
	filter, err := typeFilter(s, req.AttributeTypes)
	if err != nil {
		return answer{}, err
	}
	owner, err := s.getType(thing.typ)
	if err != nil {
		return answer{}, err
	}
	edges, err := collect[*hasRecord](s.txn.Get(tableHas, indexOwner, thing.iid))
	if err != nil {
		return answer{}, err
	}

	var attributes []*thingRecord
	for _, e := range edges {
		attribute, err := s.getThing(e.attribute)
		if err != nil {
			return answer{}, err
		}
		if filter != nil && !filter[attribute.typ] {
			continue
		}
		if req.KeysOnly {
			attributeType, err := s.getType(attribute.typ)
			if err != nil {
				return answer{}, err
			}
			owns, err := s.ownsAttributeType(owner, attributeType)
			if err != nil {
				return answer{}, err
			}
			if owns == nil || !owns.isKey {
				continue
			}
		}
		attributes = append(attributes, attribute)
	}

	protos, err := s.thingProtos(attributes)
	if err != nil {
		return answer{}, err
	}
	return thingParts(protos, func(p *protocol.ThingsResPart) *protocol.TransactionResPart {
		return thingPart(&protocol.ThingResPart{ThingGetHasResPart: p})
	}), nil
}

func (tx *transaction) setHas(s store, thing *thingRecord, attribute *protocol.Thing) error {
	if err := tx.writeData(); err != nil {
		return err
	}
	owned, err := s.getThingOf(attribute, "attribute")
	if err != nil {
		return err
	}
	if owned.encoding != protocol.ThingEncodingAttribute {
		return invalidArgument("'%s' is not an attribute", owned.iid)
	}

	ownerType, err := s.getType(thing.typ)
	if err != nil {
		return err
	}
	attributeType, err := s.getType(owned.typ)
	if err != nil {
		return err
	}
	owns, err := s.ownsAttributeType(ownerType, attributeType)
	if err != nil {
		return err
	}
	if owns == nil {
		return schemaViolation("'%s' does not own attribute type '%s'", ownerType.key, attributeType.key)
	}
	return s.insert(tableHas, &hasRecord{owner: thing.iid, attribute: owned.iid})
}

func (tx *transaction) getRelations(s store, thing *thingRecord, roleTypes []*protocol.Type) (answer, error) {
	filter, err := typeFilter(s, roleTypes)
	if err != nil {
		return answer{}, err
	}
	edges, err := collect[*rolePlayerRecord](s.txn.Get(tableRolePlayer, indexPlayer, thing.iid))
	if err != nil {
		return answer{}, err
	}

	seen := map[string]bool{}
	var relations []*thingRecord
	for _, e := range edges {
		if seen[e.relation] || (filter != nil && !filter[e.role]) {
			continue
		}
		seen[e.relation] = true
		relation, err := s.getThing(e.relation)
		if err != nil {
			return answer{}, err
		}
		relations = append(relations, relation)
	}

	protos, err := s.thingProtos(relations)
	if err != nil {
		return answer{}, err
	}
	return thingParts(protos, func(p *protocol.ThingsResPart) *protocol.TransactionResPart {
		return thingPart(&protocol.ThingResPart{ThingGetRelationsResPart: p})
	}), nil
}

func (tx *transaction) getOwners(s store, attribute *thingRecord, thingType *protocol.Type) (answer, error) {
	var filter map[string]bool
	if thingType != nil {
		var err error
		if filter, err = typeFilter(s, []*protocol.Type{thingType}); err != nil {
			return answer{}, err
		}
	}
	edges, err := collect[*hasRecord](s.txn.Get(tableHas, indexAttribute, attribute.iid))
	if err != nil {
		return answer{}, err
	}

	var owners []*thingRecord
	for _, e := range edges {
		owner, err := s.getThing(e.owner)
		if err != nil {
			return answer{}, err
		}
		if filter != nil && !filter[owner.typ] {
			continue
		}
		owners = append(owners, owner)
	}

	protos, err := s.thingProtos(owners)
	if err != nil {
		return answer{}, err
	}
	return thingParts(protos, func(p *protocol.ThingsResPart) *protocol.TransactionResPart {
		return thingPart(&protocol.ThingResPart{AttributeGetOwnersResPart: p})
	}), nil
}

func (tx *transaction) relationRequest(s store, relation *thingRecord, req *protocol.ThingReq) (answer, error) {
	switch {
	case req.RelationAddPlayerReq != nil:
		if err := tx.addPlayer(s, relation, req.RelationAddPlayerReq); err != nil {
			return answer{}, err
		}
		return thingRes(&protocol.ThingRes{RelationAddPlayerRes: &protocol.RelationAddPlayerRes{}}), nil

	case req.RelationRemovePlayerReq != nil:
		if err := tx.writeData(); err != nil {
			return answer{}, err
		}
		role, err := s.getTypeOf(req.RelationRemovePlayerReq.RoleType, "role type")
		if err != nil {
			return answer{}, err
		}
		player, err := s.getThingOf(req.RelationRemovePlayerReq.Player, "player")
		if err != nil {
			return answer{}, err
		}
		edge, err := first[*rolePlayerRecord](s.txn.First(tableRolePlayer, indexID, relation.iid, role.key, player.iid))
		if err != nil {
			return answer{}, err
		}
		if edge == nil {
			return answer{}, notFound("role player", player.iid+" as "+role.key)
		}
		if err := s.txn.Delete(tableRolePlayer, edge); err != nil {
			return answer{}, err
		}
		return thingRes(&protocol.ThingRes{RelationRemovePlayerRes: &protocol.RelationRemovePlayerRes{}}), nil

	case req.RelationGetPlayersReq != nil:
		filter, err := typeFilter(s, req.RelationGetPlayersReq.RoleTypes)
		if err != nil {
			return answer{}, err
		}
		edges, err := collect[*rolePlayerRecord](s.txn.Get(tableRolePlayer, indexRelation, relation.iid))
		if err != nil {
			return answer{}, err
		}
		seen := map[string]bool{}
		var players []*thingRecord
		for _, e := range edges {
			if seen[e.player] || (filter != nil && !filter[e.role]) {
				continue
			}
			seen[e.player] = true
			player, err := s.getThing(e.player)
			if err != nil {
				return answer{}, err
			}
			players = append(players, player)
		}
		protos, err := s.thingProtos(players)
		if err != nil {
			return answer{}, err
		}
		return thingParts(protos, func(p *protocol.ThingsResPart) *protocol.TransactionResPart {
			return thingPart(&protocol.ThingResPart{RelationGetPlayersResPart: p})
		}), nil

	case req.RelationGetPlayersByRoleTypeReq != nil:
		edges, err := collect[*rolePlayerRecord](s.txn.Get(tableRolePlayer, indexRelation, relation.iid))
		if err != nil {
			return answer{}, err
		}
		parts := make([]*protocol.TransactionResPart, 0, len(edges))
		for _, e := range edges {
			role, err := s.getType(e.role)
			if err != nil {
				return answer{}, err
			}
			player, err := s.getThing(e.player)
			if err != nil {
				return answer{}, err
			}
			proto, err := s.thingProto(player)
			if err != nil {
				return answer{}, err
			}
			parts = append(parts, thingPart(&protocol.ThingResPart{
				RelationGetPlayersByRoleTypeResPart: &protocol.RelationGetPlayersByRoleTypeResPart{
					RoleTypesWithPlayers: []*protocol.RoleTypeWithPlayer{{RoleType: role.proto(), Player: proto}},
				},
			}))
		}
		return streamed(parts), nil

	case req.RelationGetRelatingReq != nil:
		relationType, err := s.getType(relation.typ)
		if err != nil {
			return answer{}, err
		}
		visible, err := s.relates(relationType)
		if err != nil {
			return answer{}, err
		}
		roles := make([]*typeRecord, 0, len(visible))
		for _, r := range visible {
			role, err := s.getType(r.role)
			if err != nil {
				return answer{}, err
			}
			roles = append(roles, role)
		}
		return typesAnswer(roles, func(p *protocol.TypesResPart) *protocol.TransactionResPart {
			return thingPart(&protocol.ThingResPart{RelationGetRelatingResPart: p})
		}), nil
	}
	return answer{}, invalidArgument("operation is not supported by relation '%s'", relation.iid)
}

func (tx *transaction) addPlayer(s store, relation *thingRecord, req *protocol.RelationAddPlayerReq) error {
	if err := tx.writeData(); err != nil {
		return err
	}
	role, err := s.getTypeOf(req.RoleType, "role type")
	if err != nil {
		return err
	}
	player, err := s.getThingOf(req.Player, "player")
	if err != nil {
		return err
	}

	relationType, err := s.getType(relation.typ)
	if err != nil {
		return err
	}
	visible, err := s.relates(relationType)
	if err != nil {
		return err
	}
	relates := false
	for _, r := range visible {
		if r.role == role.key {
			relates = true
			break
		}
	}
	if !relates {
		return schemaViolation("relation type '%s' does not relate role '%s'", relationType.key, role.key)
	}

	playerType, err := s.getType(player.typ)
	if err != nil {
		return err
	}
	plays, err := s.playsRole(playerType, role)
	if err != nil {
		return err
	}
	if !plays {
		return schemaViolation("type '%s' does not play role '%s'", playerType.key, role.key)
	}
	return s.insert(tableRolePlayer, &rolePlayerRecord{relation: relation.iid, role: role.key, player: player.iid})
}

func (tx *transaction) concepts(req *protocol.ConceptManagerReq) (*protocol.ConceptManagerRes, error) {
	s := tx.store()

	switch {
	case req.GetThingTypeReq != nil:
		res := &protocol.GetThingTypeRes{}
		t, err := s.findType(req.GetThingTypeReq.Label)
		if err != nil {
			return nil, err
		}
		if t != nil && t.encoding != protocol.TypeEncodingRoleType {
			res.ThingType = t.proto()
		}
		return &protocol.ConceptManagerRes{GetThingTypeRes: res}, nil

	case req.GetThingReq != nil:
		res := &protocol.GetThingRes{}
		thing, err := s.findThing(req.GetThingReq.IID)
		if err != nil {
			return nil, err
		}
		if thing != nil {
			if res.Thing, err = s.thingProto(thing); err != nil {
				return nil, err
			}
		}
		return &protocol.ConceptManagerRes{GetThingRes: res}, nil

	case req.PutEntityTypeReq != nil:
		if err := tx.writeSchema(); err != nil {
			return nil, err
		}
		t, err := s.putThingType(req.PutEntityTypeReq.Label, "entity", protocol.TypeEncodingEntityType, protocol.ValueTypeObject)
		if err != nil {
			return nil, err
		}
		return &protocol.ConceptManagerRes{PutEntityTypeRes: &protocol.PutEntityTypeRes{EntityType: t.proto()}}, nil

	case req.PutRelationTypeReq != nil:
		if err := tx.writeSchema(); err != nil {
			return nil, err
		}
		t, err := s.putThingType(req.PutRelationTypeReq.Label, "relation", protocol.TypeEncodingRelationType, protocol.ValueTypeObject)
		if err != nil {
			return nil, err
		}
		return &protocol.ConceptManagerRes{PutRelationTypeRes: &protocol.PutRelationTypeRes{RelationType: t.proto()}}, nil

	case req.PutAttributeTypeReq != nil:
		if err := tx.writeSchema(); err != nil {
			return nil, err
		}
		if req.PutAttributeTypeReq.ValueType == protocol.ValueTypeObject {
			return nil, invalidArgument("attribute types require a value type")
		}
		t, err := s.putThingType(req.PutAttributeTypeReq.Label, "attribute", protocol.TypeEncodingAttributeType, req.PutAttributeTypeReq.ValueType)
		if err != nil {
			return nil, err
		}
		return &protocol.ConceptManagerRes{PutAttributeTypeRes: &protocol.PutAttributeTypeRes{AttributeType: t.proto()}}, nil
	}
	return nil, invalidArgument("concept manager request carries no operation")
}
