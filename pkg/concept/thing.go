package concept

import "github.com/flyingsilverfin/grakn-client-go/pkg/protocol"

type thing struct {
	base
	iid      string
	inferred bool
	typ      ThingType
}

func (t thing) IID() string      { return t.iid }
func (t thing) Type() ThingType  { return t.typ }
func (t thing) IsInferred() bool { return t.inferred }
func (thing) IsThing() bool      { return true }
func (t thing) String() string   { return t.typ.Label().String() + "[" + t.iid + "]" }

func (t thing) AsRemote(tx Transaction) RemoteConcept {
	return &remoteThing{thing: t, thingOps: thingOps{tx: tx, iid: t.iid}}
}

type entity struct {
	thing
	entityType EntityType
}

func (entity) IsEntity() bool           { return true }
func (e entity) EntityType() EntityType { return e.entityType }

func (e entity) AsRemote(tx Transaction) RemoteConcept {
	return &remoteEntity{entity: e, thingOps: thingOps{tx: tx, iid: e.iid}}
}

type relation struct {
	thing
	relationType RelationType
}

func (relation) IsRelation() bool             { return true }
func (r relation) RelationType() RelationType { return r.relationType }

func (r relation) AsRemote(tx Transaction) RemoteConcept {
	return &remoteRelation{relation: r, thingOps: thingOps{tx: tx, iid: r.iid}}
}

type attribute struct {
	thing
	attributeType AttributeType
	value         Value
}

func (attribute) IsAttribute() bool              { return true }
func (a attribute) AttributeType() AttributeType { return a.attributeType }
func (a attribute) Value() Value                 { return a.value }

func (a attribute) AsRemote(tx Transaction) RemoteConcept {
	return &remoteAttribute{attribute: a, thingOps: thingOps{tx: tx, iid: a.iid}}
}

// thingProto encodes a thing handle as a request argument.
func thingProto(t Thing) (*protocol.Thing, error) {
	p := &protocol.Thing{
		IID:      t.IID(),
		Encoding: protocol.ThingEncodingThing,
		Inferred: t.IsInferred(),
	}
	if t.Type() != nil {
		p.Type = typeProto(t.Type())
	}

	switch {
	case t.IsEntity():
		p.Encoding = protocol.ThingEncodingEntity
	case t.IsRelation():
		p.Encoding = protocol.ThingEncodingRelation
	case t.IsAttribute():
		p.Encoding = protocol.ThingEncodingAttribute
		if a, ok := t.(Attribute); ok {
			value, err := a.Value().proto()
			if err != nil {
				return nil, err
			}
			p.Value = value
		}
	}
	return p, nil
}
