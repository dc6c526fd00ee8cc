package protocol

import "strconv"

// TypeEncoding is the discriminant identifying the kind of a Type message.
type TypeEncoding int32

const (
	TypeEncodingThingType     TypeEncoding = 0
	TypeEncodingEntityType    TypeEncoding = 1
	TypeEncodingRelationType  TypeEncoding = 2
	TypeEncodingAttributeType TypeEncoding = 3
	TypeEncodingRoleType      TypeEncoding = 4
)

var typeEncodingNames = map[TypeEncoding]string{
	TypeEncodingThingType:     "THING_TYPE",
	TypeEncodingEntityType:    "ENTITY_TYPE",
	TypeEncodingRelationType:  "RELATION_TYPE",
	TypeEncodingAttributeType: "ATTRIBUTE_TYPE",
	TypeEncodingRoleType:      "ROLE_TYPE",
}

func (e TypeEncoding) String() string {
	if name, ok := typeEncodingNames[e]; ok {
		return name
	}
	return strconv.Itoa(int(e))
}

// ThingEncoding is the discriminant identifying the kind of a Thing message.
type ThingEncoding int32

const (
	ThingEncodingEntity    ThingEncoding = 0
	ThingEncodingRelation  ThingEncoding = 1
	ThingEncodingAttribute ThingEncoding = 2
	ThingEncodingThing     ThingEncoding = 3
)

var thingEncodingNames = map[ThingEncoding]string{
	ThingEncodingEntity:    "ENTITY",
	ThingEncodingRelation:  "RELATION",
	ThingEncodingAttribute: "ATTRIBUTE",
	ThingEncodingThing:     "THING",
}

func (e ThingEncoding) String() string {
	if name, ok := thingEncodingNames[e]; ok {
		return name
	}
	return strconv.Itoa(int(e))
}

// ValueType is the value type tag of an attribute type.
type ValueType int32

const (
	ValueTypeObject   ValueType = 0
	ValueTypeBoolean  ValueType = 1
	ValueTypeLong     ValueType = 2
	ValueTypeDouble   ValueType = 3
	ValueTypeString   ValueType = 4
	ValueTypeDateTime ValueType = 5
)

var valueTypeNames = map[ValueType]string{
	ValueTypeObject:   "OBJECT",
	ValueTypeBoolean:  "BOOLEAN",
	ValueTypeLong:     "LONG",
	ValueTypeDouble:   "DOUBLE",
	ValueTypeString:   "STRING",
	ValueTypeDateTime: "DATETIME",
}

func (v ValueType) String() string {
	if name, ok := valueTypeNames[v]; ok {
		return name
	}
	return strconv.Itoa(int(v))
}

// Type is the wire form of a schema type.
type Type struct {
	Label     string       `json:"label"`
	Scope     string       `json:"scope,omitempty"`
	Encoding  TypeEncoding `json:"encoding"`
	ValueType ValueType    `json:"value_type,omitempty"`
	Root      bool         `json:"root,omitempty"`
}

// AttributeValue is the wire form of an attribute value. ValueType selects the
// populated field; DateTime holds milliseconds since the Unix epoch.
type AttributeValue struct {
	ValueType ValueType `json:"value_type"`
	Boolean   bool      `json:"boolean,omitempty"`
	Long      int64     `json:"long,omitempty"`
	Double    float64   `json:"double,omitempty"`
	String    string    `json:"string,omitempty"`
	DateTime  int64     `json:"date_time,omitempty"`
}

// Thing is the wire form of a thing instance.
type Thing struct {
	IID      string          `json:"iid"`
	Encoding ThingEncoding   `json:"encoding"`
	Type     *Type           `json:"type,omitempty"`
	Value    *AttributeValue `json:"value,omitempty"`
	Inferred bool            `json:"inferred,omitempty"`
}

// Concept is either a Thing or a Type.
type Concept struct {
	Thing *Thing `json:"thing,omitempty"`
	Type  *Type  `json:"type,omitempty"`
}

// HasThing returns whether the concept holds a thing.
func (c *Concept) HasThing() bool {
	return c != nil && c.Thing != nil
}

// HasType returns whether the concept holds a type.
func (c *Concept) HasType() bool {
	return c != nil && c.Type != nil
}
