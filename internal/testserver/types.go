package testserver

import (
	"regexp"

	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

func typeRes(res *protocol.TypeRes) answer {
	return single(&protocol.TransactionRes{TypeRes: res})
}

// typesAnswer streams one part per type.
func typesAnswer(types []*typeRecord, wrap func(*protocol.TypesResPart) *protocol.TransactionResPart) answer {
	parts := make([]*protocol.TransactionResPart, 0, len(types))
	for _, t := range types {
		parts = append(parts, wrap(&protocol.TypesResPart{Types: []*protocol.Type{t.proto()}}))
	}
	return streamed(parts)
}

func typeParts(types []*typeRecord, wrap func(*protocol.TypesResPart) *protocol.TypeResPart) answer {
	return typesAnswer(types, func(p *protocol.TypesResPart) *protocol.TransactionResPart {
		return &protocol.TransactionResPart{TypeResPart: wrap(p)}
	})
}

func requireEncoding(t *typeRecord, encodings ...protocol.TypeEncoding) error {
	for _, e := range encodings {
		if t.encoding == e {
			return nil
		}
	}
	return invalidArgument("type '%s' is a %s", t.key, t.encoding)
}

func (tx *transaction) typeRequest(req *protocol.TypeReq) (answer, error) {
	s := tx.store()
	t, err := s.getType(label.Scoped(req.Scope, req.Label).String())
	if err != nil {
		return answer{}, err
	}

	switch {
	case req.TypeDeleteReq != nil:
		if err := tx.writeSchema(); err != nil {
			return answer{}, err
		}
		if err := s.deleteType(t); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{TypeDeleteRes: &protocol.TypeDeleteRes{}}), nil

	case req.TypeSetLabelReq != nil:
		if err := tx.setLabel(s, t, req.TypeSetLabelReq.Label); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{TypeSetLabelRes: &protocol.TypeSetLabelRes{}}), nil

	case req.TypeIsAbstractReq != nil:
		return typeRes(&protocol.TypeRes{TypeIsAbstractRes: &protocol.TypeIsAbstractRes{Abstract: t.abstract}}), nil

	case req.TypeGetSupertypeReq != nil:
		res := &protocol.TypeGetSupertypeRes{}
		if t.supertype != "" {
			sup, err := s.getType(t.supertype)
			if err != nil {
				return answer{}, err
			}
			res.Type = sup.proto()
		}
		return typeRes(&protocol.TypeRes{TypeGetSupertypeRes: res}), nil

	case req.TypeSetSupertypeReq != nil:
		if err := tx.setSupertype(s, t, req.TypeSetSupertypeReq.Type); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{TypeSetSupertypeRes: &protocol.TypeSetSupertypeRes{}}), nil

	case req.TypeGetSupertypesReq != nil:
		types, err := s.supertypes(t)
		if err != nil {
			return answer{}, err
		}
		return typeParts(types, func(p *protocol.TypesResPart) *protocol.TypeResPart {
			return &protocol.TypeResPart{TypeGetSupertypesResPart: p}
		}), nil

	case req.TypeGetSubtypesReq != nil:
		types, err := s.subtypes(t)
		if err != nil {
			return answer{}, err
		}
		return typeParts(types, func(p *protocol.TypesResPart) *protocol.TypeResPart {
			return &protocol.TypeResPart{TypeGetSubtypesResPart: p}
		}), nil
	}

	if t.encoding == protocol.TypeEncodingRoleType {
		return tx.roleTypeRequest(s, t, req)
	}
	return tx.thingTypeRequest(s, t, req)
}

func (tx *transaction) setLabel(s store, t *typeRecord, name string) error {
	if err := tx.writeSchema(); err != nil {
		return err
	}
	if name == "" {
		return invalidArgument("type label must not be empty")
	}
	if t.root {
		return schemaViolation("root type '%s' cannot be relabelled", t.key)
	}

	to := label.Scoped(t.scope, name)
	existing, err := s.findType(to.String())
	if err != nil {
		return err
	}
	if existing != nil {
		return schemaViolation("type '%s' already exists", to)
	}

	renames := map[string]label.Label{t.key: to}
	if t.encoding == protocol.TypeEncodingRelationType {
		declared, err := collect[*relatesRecord](s.txn.Get(tableRelates, indexRelation, t.key))
		if err != nil {
			return err
		}
		for _, r := range declared {
			role, err := s.getType(r.role)
			if err != nil {
				return err
			}
			renames[role.key] = label.Scoped(name, role.name)
		}
	}
	return s.relabel(renames)
}

func (tx *transaction) setSupertype(s store, t *typeRecord, supertype *protocol.Type) error {
	if err := tx.writeSchema(); err != nil {
		return err
	}
	sup, err := s.getTypeOf(supertype, "supertype")
	if err != nil {
		return err
	}
	if t.root {
		return schemaViolation("the supertype of root type '%s' cannot be changed", t.key)
	}
	if sup.encoding != t.encoding {
		return schemaViolation("'%s' is a %s and cannot be the supertype of %s '%s'", sup.key, sup.encoding, t.encoding, t.key)
	}
	cycle, err := s.isSubtype(sup, t.key)
	if err != nil {
		return err
	}
	if cycle {
		return schemaViolation("setting '%s' as the supertype of '%s' creates a cycle", sup.key, t.key)
	}
	if t.encoding == protocol.TypeEncodingAttributeType && !sup.root && sup.valueType != t.valueType {
		return schemaViolation("attribute type '%s' has value type %s, its supertype '%s' has %s", t.key, t.valueType, sup.key, sup.valueType)
	}

	updated := *t
	updated.supertype = sup.key
	return s.insert(tableType, &updated)
}

func (tx *transaction) roleTypeRequest(s store, role *typeRecord, req *protocol.TypeReq) (answer, error) {
	switch {
	case req.RoleTypeGetRelationTypeReq != nil:
		relation, err := s.getType(role.scope)
		if err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{RoleTypeGetRelationTypeRes: &protocol.RoleTypeGetRelationTypeRes{RelationType: relation.proto()}}), nil

	case req.RoleTypeGetRelationTypesReq != nil:
		relations, err := relatingTypes(s, role)
		if err != nil {
			return answer{}, err
		}
		return typeParts(relations, func(p *protocol.TypesResPart) *protocol.TypeResPart {
			return &protocol.TypeResPart{RoleTypeGetRelationTypesResPart: p}
		}), nil

	case req.RoleTypeGetPlayersReq != nil:
		players, err := playingTypes(s, role)
		if err != nil {
			return answer{}, err
		}
		return typeParts(players, func(p *protocol.TypesResPart) *protocol.TypeResPart {
			return &protocol.TypeResPart{RoleTypeGetPlayersResPart: p}
		}), nil
	}
	return answer{}, invalidArgument("operation is not supported by role type '%s'", role.key)
}

// inheriting returns the declaring types and those of their subtypes for
// which visible reports the declaration as not overridden.
func inheriting(s store, declaring []string, visible func(*typeRecord) (bool, error)) ([]*typeRecord, error) {
	seen := map[string]bool{}
	var out []*typeRecord
	for _, key := range declaring {
		declarer, err := s.getType(key)
		if err != nil {
			return nil, err
		}
		types, err := s.subtypes(declarer)
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			if seen[t.key] {
				continue
			}
			ok, err := visible(t)
			if err != nil {
				return nil, err
			}
			if ok {
				seen[t.key] = true
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func relatingTypes(s store, role *typeRecord) ([]*typeRecord, error) {
	declared, err := collect[*relatesRecord](s.txn.Get(tableRelates, indexRole, role.key))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(declared))
	for _, r := range declared {
		keys = append(keys, r.relation)
	}
	return inheriting(s, keys, func(t *typeRecord) (bool, error) {
		visible, err := s.relates(t)
		if err != nil {
			return false, err
		}
		for _, r := range visible {
			if r.role == role.key {
				return true, nil
			}
		}
		return false, nil
	})
}

func playingTypes(s store, role *typeRecord) ([]*typeRecord, error) {
	declared, err := collect[*playsRecord](s.txn.Get(tablePlays, indexRole, role.key))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(declared))
	for _, p := range declared {
		keys = append(keys, p.player)
	}
	return inheriting(s, keys, func(t *typeRecord) (bool, error) {
		visible, err := s.plays(t)
		if err != nil {
			return false, err
		}
		for _, p := range visible {
			if p.role == role.key {
				return true, nil
			}
		}
		return false, nil
	})
}

func owningTypes(s store, attribute *typeRecord, onlyKey bool) ([]*typeRecord, error) {
	declared, err := collect[*ownsRecord](s.txn.Get(tableOwns, indexAttribute, attribute.key))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(declared))
	for _, o := range declared {
		if onlyKey && !o.isKey {
			continue
		}
		keys = append(keys, o.owner)
	}
	return inheriting(s, keys, func(t *typeRecord) (bool, error) {
		visible, err := s.owns(t)
		if err != nil {
			return false, err
		}
		for _, o := range visible {
			if o.attribute == attribute.key && (!onlyKey || o.isKey) {
				return true, nil
			}
		}
		return false, nil
	})
}

func (tx *transaction) thingTypeRequest(s store, t *typeRecord, req *protocol.TypeReq) (answer, error) {
	switch {
	case req.ThingTypeSetAbstractReq != nil:
		if err := tx.writeSchema(); err != nil {
			return answer{}, err
		}
		if t.root {
			return answer{}, schemaViolation("root type '%s' is always abstract", t.key)
		}
		instance, err := s.txn.First(tableThing, indexThingType, t.key)
		if err != nil {
			return answer{}, err
		}
		if instance != nil {
			return answer{}, schemaViolation("type '%s' has instances and cannot be abstract", t.key)
		}
		updated := *t
		updated.abstract = true
		if err := s.insert(tableType, &updated); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{ThingTypeSetAbstractRes: &protocol.ThingTypeSetAbstractRes{}}), nil

	case req.ThingTypeUnsetAbstractReq != nil:
		if err := tx.writeSchema(); err != nil {
			return answer{}, err
		}
		if t.root {
			return answer{}, schemaViolation("root type '%s' is always abstract", t.key)
		}
		updated := *t
		updated.abstract = false
		if err := s.insert(tableType, &updated); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{ThingTypeUnsetAbstractRes: &protocol.ThingTypeUnsetAbstractRes{}}), nil

	case req.ThingTypeGetInstancesReq != nil:
		things, err := s.instances(t)
		if err != nil {
			return answer{}, err
		}
		protos, err := s.thingProtos(things)
		if err != nil {
			return answer{}, err
		}
		return thingParts(protos, func(p *protocol.ThingsResPart) *protocol.TransactionResPart {
			return &protocol.TransactionResPart{TypeResPart: &protocol.TypeResPart{ThingTypeGetInstancesResPart: p}}
		}), nil

	case req.ThingTypeGetOwnsReq != nil:
		return tx.getOwns(s, t, req.ThingTypeGetOwnsReq)

	case req.ThingTypeSetOwnsReq != nil:
		if err := tx.setOwns(s, t, req.ThingTypeSetOwnsReq); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{ThingTypeSetOwnsRes: &protocol.ThingTypeSetOwnsRes{}}), nil

	case req.ThingTypeUnsetOwnsReq != nil:
		if err := tx.writeSchema(); err != nil {
			return answer{}, err
		}
		attribute, err := s.getTypeOf(req.ThingTypeUnsetOwnsReq.AttributeType, "attribute type")
		if err != nil {
			return answer{}, err
		}
		declared, err := first[*ownsRecord](s.txn.First(tableOwns, indexID, t.key, attribute.key))
		if err != nil {
			return answer{}, err
		}
		if declared == nil {
			return answer{}, notFound("ownership", t.key+" owns "+attribute.key)
		}
		if err := s.txn.Delete(tableOwns, declared); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{ThingTypeUnsetOwnsRes: &protocol.ThingTypeUnsetOwnsRes{}}), nil

	case req.ThingTypeGetPlaysReq != nil:
		visible, err := s.plays(t)
		if err != nil {
			return answer{}, err
		}
		roles := make([]*typeRecord, 0, len(visible))
		for _, p := range visible {
			role, err := s.getType(p.role)
			if err != nil {
				return answer{}, err
			}
			roles = append(roles, role)
		}
		return typeParts(roles, func(p *protocol.TypesResPart) *protocol.TypeResPart {
			return &protocol.TypeResPart{ThingTypeGetPlaysResPart: p}
		}), nil

	case req.ThingTypeSetPlaysReq != nil:
		if err := tx.setPlays(s, t, req.ThingTypeSetPlaysReq); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{ThingTypeSetPlaysRes: &protocol.ThingTypeSetPlaysRes{}}), nil

	case req.ThingTypeUnsetPlaysReq != nil:
		if err := tx.writeSchema(); err != nil {
			return answer{}, err
		}
		role, err := s.getTypeOf(req.ThingTypeUnsetPlaysReq.Role, "role")
		if err != nil {
			return answer{}, err
		}
		declared, err := first[*playsRecord](s.txn.First(tablePlays, indexID, t.key, role.key))
		if err != nil {
			return answer{}, err
		}
		if declared == nil {
			return answer{}, notFound("role playing", t.key+" plays "+role.key)
		}
		if err := s.txn.Delete(tablePlays, declared); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{ThingTypeUnsetPlaysRes: &protocol.ThingTypeUnsetPlaysRes{}}), nil

	case req.EntityTypeCreateReq != nil:
		thing, err := tx.create(s, t, protocol.TypeEncodingEntityType)
		if err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{EntityTypeCreateRes: &protocol.EntityTypeCreateRes{Entity: thing}}), nil

	case req.RelationTypeCreateReq != nil:
		thing, err := tx.create(s, t, protocol.TypeEncodingRelationType)
		if err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{RelationTypeCreateRes: &protocol.RelationTypeCreateRes{Relation: thing}}), nil
	}

	switch t.encoding {
	case protocol.TypeEncodingRelationType:
		return tx.relationTypeRequest(s, t, req)
	case protocol.TypeEncodingAttributeType:
		return tx.attributeTypeRequest(s, t, req)
	}
	return answer{}, invalidArgument("operation is not supported by %s '%s'", t.encoding, t.key)
}

func (tx *transaction) create(s store, t *typeRecord, encoding protocol.TypeEncoding) (*protocol.Thing, error) {
	if err := requireEncoding(t, encoding); err != nil {
		return nil, err
	}
	if err := tx.writeData(); err != nil {
		return nil, err
	}
	thing, err := s.createThing(t, nil)
	if err != nil {
		return nil, err
	}
	return s.thingProto(thing)
}

func (tx *transaction) getOwns(s store, t *typeRecord, req *protocol.ThingTypeGetOwnsReq) (answer, error) {
	visible, err := s.owns(t)
	if err != nil {
		return answer{}, err
	}

	var attributes []*typeRecord
	for _, o := range visible {
		if req.KeysOnly && !o.isKey {
			continue
		}
		attribute, err := s.getType(o.attribute)
		if err != nil {
			return answer{}, err
		}
		if req.ValueType != nil && attribute.valueType != *req.ValueType {
			continue
		}
		attributes = append(attributes, attribute)
	}
	return typeParts(attributes, func(p *protocol.TypesResPart) *protocol.TypeResPart {
		return &protocol.TypeResPart{ThingTypeGetOwnsResPart: p}
	}), nil
}

func (tx *transaction) setOwns(s store, t *typeRecord, req *protocol.ThingTypeSetOwnsReq) error {
	if err := tx.writeSchema(); err != nil {
		return err
	}
	attribute, err := s.getTypeOf(req.AttributeType, "attribute type")
	if err != nil {
		return err
	}
	if err := requireEncoding(attribute, protocol.TypeEncodingAttributeType); err != nil {
		return err
	}
	if attribute.root {
		return schemaViolation("the root attribute type cannot be owned")
	}

	record := &ownsRecord{owner: t.key, attribute: attribute.key, isKey: req.IsKey}
	if req.OverriddenType != nil {
		overridden, err := s.getTypeOf(req.OverriddenType, "overridden attribute type")
		if err != nil {
			return err
		}
		inherits, err := s.isSubtype(attribute, overridden.key)
		if err != nil {
			return err
		}
		if !inherits || overridden.key == attribute.key {
			return schemaViolation("'%s' is not a supertype of '%s'", overridden.key, attribute.key)
		}
		if err := tx.requireInheritedOwns(s, t, overridden); err != nil {
			return err
		}
		record.overridden = overridden.key
	}
	return s.insert(tableOwns, record)
}

func (tx *transaction) requireInheritedOwns(s store, t *typeRecord, attribute *typeRecord) error {
	if t.supertype != "" {
		sup, err := s.getType(t.supertype)
		if err != nil {
			return err
		}
		visible, err := s.owns(sup)
		if err != nil {
			return err
		}
		for _, o := range visible {
			if o.attribute == attribute.key {
				return nil
			}
		}
	}
	return schemaViolation("'%s' does not inherit the ownership of '%s'", t.key, attribute.key)
}

func (tx *transaction) setPlays(s store, t *typeRecord, req *protocol.ThingTypeSetPlaysReq) error {
	if err := tx.writeSchema(); err != nil {
		return err
	}
	role, err := s.getTypeOf(req.Role, "role")
	if err != nil {
		return err
	}
	if err := requireEncoding(role, protocol.TypeEncodingRoleType); err != nil {
		return err
	}
	if role.root {
		return schemaViolation("the root role type cannot be played")
	}

	record := &playsRecord{player: t.key, role: role.key}
	if req.OverriddenRole != nil {
		overridden, err := s.getTypeOf(req.OverriddenRole, "overridden role")
		if err != nil {
			return err
		}
		inherits, err := s.isSubtype(role, overridden.key)
		if err != nil {
			return err
		}
		if !inherits || overridden.key == role.key {
			return schemaViolation("'%s' is not a supertype of '%s'", overridden.key, role.key)
		}
		record.overridden = overridden.key
	}
	return s.insert(tablePlays, record)
}

func (tx *transaction) relationTypeRequest(s store, relation *typeRecord, req *protocol.TypeReq) (answer, error) {
	switch {
	case req.RelationTypeGetRelatesForRoleLabelReq != nil:
		role, err := s.relatesRole(relation, req.RelationTypeGetRelatesForRoleLabelReq.Label)
		if err != nil {
			return answer{}, err
		}
		res := &protocol.RelationTypeGetRelatesForRoleLabelRes{}
		if role != nil {
			res.RoleType = role.proto()
		}
		return typeRes(&protocol.TypeRes{RelationTypeGetRelatesForRoleLabelRes: res}), nil

	case req.RelationTypeGetRelatesReq != nil:
		visible, err := s.relates(relation)
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
		return typeParts(roles, func(p *protocol.TypesResPart) *protocol.TypeResPart {
			return &protocol.TypeResPart{RelationTypeGetRelatesResPart: p}
		}), nil

	case req.RelationTypeSetRelatesReq != nil:
		if err := tx.setRelates(s, relation, req.RelationTypeSetRelatesReq); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{RelationTypeSetRelatesRes: &protocol.RelationTypeSetRelatesRes{}}), nil

	case req.RelationTypeUnsetRelatesReq != nil:
		if err := tx.writeSchema(); err != nil {
			return answer{}, err
		}
		key := label.Scoped(relation.key, req.RelationTypeUnsetRelatesReq.Label).String()
		declared, err := s.txn.First(tableRelates, indexID, relation.key, key)
		if err != nil {
			return answer{}, err
		}
		if declared == nil {
			return answer{}, notFound("role", key)
		}
		role, err := s.getType(key)
		if err != nil {
			return answer{}, err
		}
		if err := s.deleteType(role); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{RelationTypeUnsetRelatesRes: &protocol.RelationTypeUnsetRelatesRes{}}), nil
	}
	return answer{}, invalidArgument("operation is not supported by relation type '%s'", relation.key)
}

func (tx *transaction) setRelates(s store, relation *typeRecord, req *protocol.RelationTypeSetRelatesReq) error {
	if err := tx.writeSchema(); err != nil {
		return err
	}
	if relation.root {
		return schemaViolation("the root relation type cannot relate new roles")
	}
	if req.Label == "" {
		return invalidArgument("role label must not be empty")
	}

	supertype := "relation:role"
	var overridden string
	if req.OverriddenLabel != "" {
		sup, err := s.getType(relation.supertype)
		if err != nil {
			return err
		}
		inherited, err := s.relatesRole(sup, req.OverriddenLabel)
		if err != nil {
			return err
		}
		if inherited == nil {
			return notFound("role", label.Scoped(relation.supertype, req.OverriddenLabel).String())
		}
		supertype, overridden = inherited.key, inherited.key
	}

	key := label.Scoped(relation.key, req.Label).String()
	role, err := s.findType(key)
	if err != nil {
		return err
	}
	if role == nil {
		role = &typeRecord{key: key, name: req.Label, scope: relation.key, encoding: protocol.TypeEncodingRoleType}
	} else {
		copied := *role
		role = &copied
	}
	role.supertype = supertype
	if err := s.insert(tableType, role); err != nil {
		return err
	}
	return s.insert(tableRelates, &relatesRecord{relation: relation.key, role: key, overridden: overridden})
}

func (tx *transaction) attributeTypeRequest(s store, attribute *typeRecord, req *protocol.TypeReq) (answer, error) {
	switch {
	case req.AttributeTypePutReq != nil:
		thing, err := tx.putAttribute(s, attribute, req.AttributeTypePutReq.Value)
		if err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{AttributeTypePutRes: &protocol.AttributeTypePutRes{Attribute: thing}}), nil

	case req.AttributeTypeGetReq != nil:
		value := req.AttributeTypeGetReq.Value
		if value == nil {
			return answer{}, invalidArgument("missing value")
		}
		res := &protocol.AttributeTypeGetRes{}
		found, err := s.findAttribute(attribute, value)
		if err != nil {
			return answer{}, err
		}
		if found != nil {
			if res.Attribute, err = s.thingProto(found); err != nil {
				return answer{}, err
			}
		}
		return typeRes(&protocol.TypeRes{AttributeTypeGetRes: res}), nil

	case req.AttributeTypeGetRegexReq != nil:
		return typeRes(&protocol.TypeRes{AttributeTypeGetRegexRes: &protocol.AttributeTypeGetRegexRes{Regex: attribute.regex}}), nil

	case req.AttributeTypeSetRegexReq != nil:
		if err := tx.setRegex(s, attribute, req.AttributeTypeSetRegexReq.Regex); err != nil {
			return answer{}, err
		}
		return typeRes(&protocol.TypeRes{AttributeTypeSetRegexRes: &protocol.AttributeTypeSetRegexRes{}}), nil

	case req.AttributeTypeGetOwnersReq != nil:
		owners, err := owningTypes(s, attribute, req.AttributeTypeGetOwnersReq.OnlyKey)
		if err != nil {
			return answer{}, err
		}
		return typeParts(owners, func(p *protocol.TypesResPart) *protocol.TypeResPart {
			return &protocol.TypeResPart{AttributeTypeGetOwnersResPart: p}
		}), nil
	}
	return answer{}, invalidArgument("operation is not supported by attribute type '%s'", attribute.key)
}

func (tx *transaction) putAttribute(s store, attribute *typeRecord, value *protocol.AttributeValue) (*protocol.Thing, error) {
	if err := tx.writeData(); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, invalidArgument("missing value")
	}
	if value.ValueType != attribute.valueType {
		return nil, schemaViolation("attribute type '%s' has value type %s, not %s", attribute.key, attribute.valueType, value.ValueType)
	}
	if attribute.regex != "" && value.ValueType == protocol.ValueTypeString {
		matches, err := regexp.MatchString(attribute.regex, value.String)
		if err != nil {
			return nil, err
		}
		if !matches {
			return nil, schemaViolation("value '%s' does not match the regex '%s' of '%s'", value.String, attribute.regex, attribute.key)
		}
	}

	existing, err := s.findAttribute(attribute, value)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if existing, err = s.createThing(attribute, value); err != nil {
			return nil, err
		}
	}
	return s.thingProto(existing)
}

func (tx *transaction) setRegex(s store, attribute *typeRecord, regex string) error {
	if err := tx.writeSchema(); err != nil {
		return err
	}
	if attribute.valueType != protocol.ValueTypeString {
		return schemaViolation("regex can only be set on string attribute types, '%s' is %s", attribute.key, attribute.valueType)
	}

	if regex != "" {
		compiled, err := regexp.Compile(regex)
		if err != nil {
			return invalidArgument("invalid regex '%s': %s", regex, err)
		}
		things, err := s.instances(attribute)
		if err != nil {
			return err
		}
		for _, thing := range things {
			if !compiled.MatchString(thing.value.String) {
				return schemaViolation("existing attribute '%s' does not match the regex '%s'", thing.value.String, regex)
			}
		}
	}

	updated := *attribute
	updated.regex = regex
	return s.insert(tableType, &updated)
}
