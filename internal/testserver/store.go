package testserver

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// store implements the schema and data semantics on top of one memdb
// transaction.
type store struct {
	txn *memdb.Txn
}

func collect[T any](it memdb.ResultIterator, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	var out []T
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(T))
	}
	return out, nil
}

func first[T any](raw any, err error) (T, error) {
	var zero T
	if err != nil || raw == nil {
		return zero, err
	}
	return raw.(T), nil
}

// indexAll with an empty prefix lists a whole table.
const indexAll = indexID + "_prefix"

func protoKey(t *protocol.Type) string {
	return label.Scoped(t.Scope, t.Label).String()
}

func (s store) findType(key string) (*typeRecord, error) {
	return first[*typeRecord](s.txn.First(tableType, indexID, key))
}

func (s store) getType(key string) (*typeRecord, error) {
	t, err := s.findType(key)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFound("type", key)
	}
	return t, nil
}

func (s store) getTypeOf(t *protocol.Type, argument string) (*typeRecord, error) {
	if t == nil {
		return nil, invalidArgument("missing %s", argument)
	}
	return s.getType(protoKey(t))
}

func (s store) children(key string) ([]*typeRecord, error) {
	return collect[*typeRecord](s.txn.Get(tableType, indexSupertype, key))
}

// supertypes returns t followed by its ancestors up to the root.
func (s store) supertypes(t *typeRecord) ([]*typeRecord, error) {
	chain := []*typeRecord{t}
	for current := t; current.supertype != ""; {
		parent, err := s.getType(current.supertype)
		if err != nil {
			return nil, err
		}
		chain = append(chain, parent)
		current = parent
	}
	return chain, nil
}

// subtypes returns t followed by its descendants in breadth-first order.
func (s store) subtypes(t *typeRecord) ([]*typeRecord, error) {
	out := []*typeRecord{t}
	for i := 0; i < len(out); i++ {
		children, err := s.children(out[i].key)
		if err != nil {
			return nil, err
		}
		out = append(out, children...)
	}
	return out, nil
}

func keysOf(types []*typeRecord) map[string]bool {
	keys := make(map[string]bool, len(types))
	for _, t := range types {
		keys[t.key] = true
	}
	return keys
}

func (s store) isSubtype(t *typeRecord, of string) (bool, error) {
	chain, err := s.supertypes(t)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(chain, func(c *typeRecord) bool { return c.key == of }), nil
}

func (s store) insert(table string, obj any) error {
	return s.txn.Insert(table, obj)
}

// putThingType returns the type with the name, creating it below root if
// absent.
func (s store) putThingType(name string, root string, encoding protocol.TypeEncoding, valueType protocol.ValueType) (*typeRecord, error) {
	if name == "" {
		return nil, invalidArgument("type label must not be empty")
	}
	existing, err := s.findType(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.encoding != encoding {
			return nil, schemaViolation("type '%s' already exists as %s", name, existing.encoding)
		}
		if encoding == protocol.TypeEncodingAttributeType && existing.valueType != valueType {
			return nil, schemaViolation("attribute type '%s' already exists with value type %s", name, existing.valueType)
		}
		return existing, nil
	}

	t := &typeRecord{key: name, name: name, encoding: encoding, valueType: valueType, supertype: root}
	if err := s.insert(tableType, t); err != nil {
		return nil, err
	}
	return t, nil
}

// owns returns the ownerships visible on t: declared on t or inherited and
// not overridden below.
func (s store) owns(t *typeRecord) ([]*ownsRecord, error) {
	chain, err := s.supertypes(t)
	if err != nil {
		return nil, err
	}

	hidden := map[string]bool{}
	var out []*ownsRecord
	for _, current := range chain {
		declared, err := collect[*ownsRecord](s.txn.Get(tableOwns, indexOwner, current.key))
		if err != nil {
			return nil, err
		}
		for _, o := range declared {
			if hidden[o.attribute] {
				continue
			}
			hidden[o.attribute] = true
			if o.overridden != "" {
				hidden[o.overridden] = true
			}
			out = append(out, o)
		}
	}
	return out, nil
}

func (s store) plays(t *typeRecord) ([]*playsRecord, error) {
	chain, err := s.supertypes(t)
	if err != nil {
		return nil, err
	}

	hidden := map[string]bool{}
	var out []*playsRecord
	for _, current := range chain {
		declared, err := collect[*playsRecord](s.txn.Get(tablePlays, indexPlayer, current.key))
		if err != nil {
			return nil, err
		}
		for _, p := range declared {
			if hidden[p.role] {
				continue
			}
			hidden[p.role] = true
			if p.overridden != "" {
				hidden[p.overridden] = true
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (s store) relates(t *typeRecord) ([]*relatesRecord, error) {
	chain, err := s.supertypes(t)
	if err != nil {
		return nil, err
	}

	hidden := map[string]bool{}
	var out []*relatesRecord
	for _, current := range chain {
		declared, err := collect[*relatesRecord](s.txn.Get(tableRelates, indexRelation, current.key))
		if err != nil {
			return nil, err
		}
		for _, r := range declared {
			if hidden[r.role] {
				continue
			}
			hidden[r.role] = true
			if r.overridden != "" {
				hidden[r.overridden] = true
			}
			out = append(out, r)
		}
	}
	return out, nil
}

// relatesRole returns the role named name visible on the relation type, or
// nil.
func (s store) relatesRole(relation *typeRecord, name string) (*typeRecord, error) {
	visible, err := s.relates(relation)
	if err != nil {
		return nil, err
	}
	for _, r := range visible {
		role, err := s.getType(r.role)
		if err != nil {
			return nil, err
		}
		if role.name == name {
			return role, nil
		}
	}
	return nil, nil
}

func (s store) ownsAttributeType(owner *typeRecord, attribute *typeRecord) (*ownsRecord, error) {
	visible, err := s.owns(owner)
	if err != nil {
		return nil, err
	}
	chain, err := s.supertypes(attribute)
	if err != nil {
		return nil, err
	}
	allowed := keysOf(chain)
	for _, o := range visible {
		if allowed[o.attribute] {
			return o, nil
		}
	}
	return nil, nil
}

func (s store) playsRole(player *typeRecord, role *typeRecord) (bool, error) {
	visible, err := s.plays(player)
	if err != nil {
		return false, err
	}
	chain, err := s.supertypes(role)
	if err != nil {
		return false, err
	}
	allowed := keysOf(chain)
	return slices.ContainsFunc(visible, func(p *playsRecord) bool { return allowed[p.role] }), nil
}

func (s store) findThing(iid string) (*thingRecord, error) {
	return first[*thingRecord](s.txn.First(tableThing, indexID, iid))
}

func (s store) getThing(iid string) (*thingRecord, error) {
	t, err := s.findThing(iid)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFound("thing", iid)
	}
	return t, nil
}

func (s store) getThingOf(t *protocol.Thing, argument string) (*thingRecord, error) {
	if t == nil {
		return nil, invalidArgument("missing %s", argument)
	}
	return s.getThing(t.IID)
}

func (s store) thingProto(t *thingRecord) (*protocol.Thing, error) {
	typ, err := s.getType(t.typ)
	if err != nil {
		return nil, err
	}
	return &protocol.Thing{
		IID:      t.iid,
		Encoding: t.encoding,
		Type:     typ.proto(),
		Value:    t.value,
	}, nil
}

func (s store) thingProtos(things []*thingRecord) ([]*protocol.Thing, error) {
	out := make([]*protocol.Thing, 0, len(things))
	for _, t := range things {
		p, err := s.thingProto(t)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

var thingEncodings = map[protocol.TypeEncoding]protocol.ThingEncoding{
	protocol.TypeEncodingEntityType:    protocol.ThingEncodingEntity,
	protocol.TypeEncodingRelationType:  protocol.ThingEncodingRelation,
	protocol.TypeEncodingAttributeType: protocol.ThingEncodingAttribute,
}

func newIID() string {
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s store) createThing(t *typeRecord, value *protocol.AttributeValue) (*thingRecord, error) {
	if t.abstract {
		return nil, schemaViolation("cannot create instances of abstract type '%s'", t.key)
	}
	encoding, ok := thingEncodings[t.encoding]
	if !ok {
		return nil, schemaViolation("type '%s' cannot have instances", t.key)
	}

	thing := &thingRecord{iid: newIID(), typ: t.key, encoding: encoding, value: value}
	if value != nil {
		thing.valueKey = valueKey(t.key, value)
	}
	if err := s.insert(tableThing, thing); err != nil {
		return nil, err
	}
	return thing, nil
}

func valueKey(typ string, v *protocol.AttributeValue) string {
	var rendered string
	switch v.ValueType {
	case protocol.ValueTypeBoolean:
		rendered = strconv.FormatBool(v.Boolean)
	case protocol.ValueTypeLong:
		rendered = strconv.FormatInt(v.Long, 10)
	case protocol.ValueTypeDouble:
		rendered = strconv.FormatFloat(v.Double, 'g', -1, 64)
	case protocol.ValueTypeString:
		rendered = v.String
	case protocol.ValueTypeDateTime:
		rendered = strconv.FormatInt(v.DateTime, 10)
	}
	return fmt.Sprintf("%s|%d|%s", typ, v.ValueType, rendered)
}

func (s store) findAttribute(t *typeRecord, value *protocol.AttributeValue) (*thingRecord, error) {
	return first[*thingRecord](s.txn.First(tableThing, indexValueKey, valueKey(t.key, value)))
}

// instances returns the things whose type is t or one of its subtypes.
func (s store) instances(t *typeRecord) ([]*thingRecord, error) {
	types, err := s.subtypes(t)
	if err != nil {
		return nil, err
	}
	var out []*thingRecord
	for _, typ := range types {
		things, err := collect[*thingRecord](s.txn.Get(tableThing, indexThingType, typ.key))
		if err != nil {
			return nil, err
		}
		out = append(out, things...)
	}
	return out, nil
}

// deleteAll deletes every object of the table matching the index arguments.
func (s store) deleteAll(table, index string, args ...any) error {
	_, err := s.txn.DeleteAll(table, index, args...)
	return err
}

func (s store) deleteThing(t *thingRecord) error {
	if err := s.deleteAll(tableHas, indexOwner, t.iid); err != nil {
		return err
	}
	if err := s.deleteAll(tableHas, indexAttribute, t.iid); err != nil {
		return err
	}
	if err := s.deleteAll(tableRolePlayer, indexRelation, t.iid); err != nil {
		return err
	}
	if err := s.deleteAll(tableRolePlayer, indexPlayer, t.iid); err != nil {
		return err
	}
	return s.txn.Delete(tableThing, t)
}

// deleteType deletes a non-root type without subtypes or instances, along
// with every declaration referring to it.
func (s store) deleteType(t *typeRecord) error {
	if t.root {
		return schemaViolation("root type '%s' cannot be deleted", t.key)
	}
	children, err := s.children(t.key)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return schemaViolation("type '%s' has subtypes and cannot be deleted", t.key)
	}

	if t.encoding == protocol.TypeEncodingRoleType {
		return s.deleteRole(t)
	}

	things, err := collect[*thingRecord](s.txn.Get(tableThing, indexThingType, t.key))
	if err != nil {
		return err
	}
	if len(things) > 0 {
		return schemaViolation("type '%s' has instances and cannot be deleted", t.key)
	}

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
			if err := s.deleteType(role); err != nil {
				return err
			}
		}
	}

	for _, cleanup := range []struct{ table, index string }{
		{tableOwns, indexOwner},
		{tableOwns, indexAttribute},
		{tablePlays, indexPlayer},
	} {
		if err := s.deleteAll(cleanup.table, cleanup.index, t.key); err != nil {
			return err
		}
	}
	return s.txn.Delete(tableType, t)
}

func (s store) deleteRole(role *typeRecord) error {
	played, err := s.txn.First(tableRolePlayer, indexRole, role.key)
	if err != nil {
		return err
	}
	if played != nil {
		return schemaViolation("role '%s' is played in existing relations and cannot be deleted", role.key)
	}

	if err := s.deleteAll(tableRelates, indexRole, role.key); err != nil {
		return err
	}
	if err := s.deleteAll(tablePlays, indexRole, role.key); err != nil {
		return err
	}
	return s.txn.Delete(tableType, role)
}

// relabel renames types, rewriting every record referring to them.
func (s store) relabel(renames map[string]label.Label) error {
	rename := func(key string) string {
		if to, ok := renames[key]; ok {
			return to.String()
		}
		return key
	}

	types, err := collect[*typeRecord](s.txn.Get(tableType, indexAll, ""))
	if err != nil {
		return err
	}
	for _, t := range types {
		updated := *t
		if to, ok := renames[t.key]; ok {
			updated.key, updated.scope, updated.name = to.String(), to.Scope, to.Name
		}
		updated.supertype = rename(t.supertype)
		if updated == *t {
			continue
		}
		if err := s.txn.Delete(tableType, t); err != nil {
			return err
		}
		if err := s.insert(tableType, &updated); err != nil {
			return err
		}
	}

	owns, err := collect[*ownsRecord](s.txn.Get(tableOwns, indexAll, ""))
	if err != nil {
		return err
	}
	for _, o := range owns {
		updated := ownsRecord{owner: rename(o.owner), attribute: rename(o.attribute), overridden: rename(o.overridden), isKey: o.isKey}
		if err := s.replace(tableOwns, o, &updated, updated == *o); err != nil {
			return err
		}
	}

	plays, err := collect[*playsRecord](s.txn.Get(tablePlays, indexAll, ""))
	if err != nil {
		return err
	}
	for _, p := range plays {
		updated := playsRecord{player: rename(p.player), role: rename(p.role), overridden: rename(p.overridden)}
		if err := s.replace(tablePlays, p, &updated, updated == *p); err != nil {
			return err
		}
	}

	relates, err := collect[*relatesRecord](s.txn.Get(tableRelates, indexAll, ""))
	if err != nil {
		return err
	}
	for _, r := range relates {
		updated := relatesRecord{relation: rename(r.relation), role: rename(r.role), overridden: rename(r.overridden)}
		if err := s.replace(tableRelates, r, &updated, updated == *r); err != nil {
			return err
		}
	}

	things, err := collect[*thingRecord](s.txn.Get(tableThing, indexAll, ""))
	if err != nil {
		return err
	}
	for _, t := range things {
		if _, ok := renames[t.typ]; !ok {
			continue
		}
		updated := *t
		updated.typ = rename(t.typ)
		if t.value != nil {
			updated.valueKey = valueKey(updated.typ, t.value)
		}
		if err := s.replace(tableThing, t, &updated, false); err != nil {
			return err
		}
	}

	players, err := collect[*rolePlayerRecord](s.txn.Get(tableRolePlayer, indexAll, ""))
	if err != nil {
		return err
	}
	for _, p := range players {
		updated := rolePlayerRecord{relation: p.relation, role: rename(p.role), player: p.player}
		if err := s.replace(tableRolePlayer, p, &updated, updated == *p); err != nil {
			return err
		}
	}
	return nil
}

func (s store) replace(table string, old, updated any, unchanged bool) error {
	if unchanged {
		return nil
	}
	if err := s.txn.Delete(table, old); err != nil {
		return err
	}
	return s.insert(table, updated)
}
