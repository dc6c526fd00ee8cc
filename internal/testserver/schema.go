package testserver

import (
	"github.com/hashicorp/go-memdb"
	"github.com/rs/zerolog"

	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

const (
	tableType = "type"
	indexID   = "id"

	indexSupertype = "supertype"

	tableOwns      = "owns"
	indexOwner     = "owner"
	indexAttribute = "attribute"

	tablePlays  = "plays"
	indexPlayer = "player"
	indexRole   = "role"

	tableRelates  = "relates"
	indexRelation = "relation"

	tableThing      = "thing"
	indexThingType  = "type"
	indexValueKey   = "valueKey"
	tableHas        = "has"
	tableRolePlayer = "roleplayer"
)

// typeRecord is a schema type. key is the rendered label, scoped for role
// types.
type typeRecord struct {
	key       string
	name      string
	scope     string
	encoding  protocol.TypeEncoding
	valueType protocol.ValueType
	supertype string
	abstract  bool
	regex     string
	root      bool
}

func (t typeRecord) MarshalZerologObject(e *zerolog.Event) {
	e.Str("label", t.key).Stringer("encoding", t.encoding)
}

func (t *typeRecord) proto() *protocol.Type {
	return &protocol.Type{
		Label:     t.name,
		Scope:     t.scope,
		Encoding:  t.encoding,
		ValueType: t.valueType,
		Root:      t.root,
	}
}

type ownsRecord struct {
	owner      string
	attribute  string
	overridden string
	isKey      bool
}

type playsRecord struct {
	player     string
	role       string
	overridden string
}

type relatesRecord struct {
	relation   string
	role       string
	overridden string
}

type thingRecord struct {
	iid      string
	typ      string
	encoding protocol.ThingEncoding
	value    *protocol.AttributeValue
	valueKey string
}

type hasRecord struct {
	owner     string
	attribute string
}

type rolePlayerRecord struct {
	relation string
	role     string
	player   string
}

func stringIndex(name, field string, unique bool) *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:         name,
		Unique:       unique,
		AllowMissing: !unique,
		Indexer:      &memdb.StringFieldIndex{Field: field},
	}
}

func compoundID(fields ...string) *memdb.IndexSchema {
	indexes := make([]memdb.Indexer, 0, len(fields))
	for _, field := range fields {
		indexes = append(indexes, &memdb.StringFieldIndex{Field: field})
	}
	return &memdb.IndexSchema{
		Name:    indexID,
		Unique:  true,
		Indexer: &memdb.CompoundIndex{Indexes: indexes},
	}
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableType: {
			Name: tableType,
			Indexes: map[string]*memdb.IndexSchema{
				indexID:        stringIndex(indexID, "key", true),
				indexSupertype: stringIndex(indexSupertype, "supertype", false),
			},
		},
		tableOwns: {
			Name: tableOwns,
			Indexes: map[string]*memdb.IndexSchema{
				indexID:        compoundID("owner", "attribute"),
				indexOwner:     stringIndex(indexOwner, "owner", false),
				indexAttribute: stringIndex(indexAttribute, "attribute", false),
			},
		},
		tablePlays: {
			Name: tablePlays,
			Indexes: map[string]*memdb.IndexSchema{
				indexID:     compoundID("player", "role"),
				indexPlayer: stringIndex(indexPlayer, "player", false),
				indexRole:   stringIndex(indexRole, "role", false),
			},
		},
		tableRelates: {
			Name: tableRelates,
			Indexes: map[string]*memdb.IndexSchema{
				indexID:       compoundID("relation", "role"),
				indexRelation: stringIndex(indexRelation, "relation", false),
				indexRole:     stringIndex(indexRole, "role", false),
			},
		},
		tableThing: {
			Name: tableThing,
			Indexes: map[string]*memdb.IndexSchema{
				indexID:        stringIndex(indexID, "iid", true),
				indexThingType: stringIndex(indexThingType, "typ", false),
				indexValueKey:  stringIndex(indexValueKey, "valueKey", false),
			},
		},
		tableHas: {
			Name: tableHas,
			Indexes: map[string]*memdb.IndexSchema{
				indexID:        compoundID("owner", "attribute"),
				indexOwner:     stringIndex(indexOwner, "owner", false),
				indexAttribute: stringIndex(indexAttribute, "attribute", false),
			},
		},
		tableRolePlayer: {
			Name: tableRolePlayer,
			Indexes: map[string]*memdb.IndexSchema{
				indexID:       compoundID("relation", "role", "player"),
				indexRelation: stringIndex(indexRelation, "relation", false),
				indexRole:     stringIndex(indexRole, "role", false),
				indexPlayer:   stringIndex(indexPlayer, "player", false),
			},
		},
	},
}

// Root types present in every database.
var rootTypes = []*typeRecord{
	{key: "thing", name: "thing", encoding: protocol.TypeEncodingThingType, abstract: true, root: true},
	{key: "entity", name: "entity", encoding: protocol.TypeEncodingEntityType, supertype: "thing", abstract: true, root: true},
	{key: "relation", name: "relation", encoding: protocol.TypeEncodingRelationType, supertype: "thing", abstract: true, root: true},
	{key: "attribute", name: "attribute", encoding: protocol.TypeEncodingAttributeType, valueType: protocol.ValueTypeObject, supertype: "thing", abstract: true, root: true},
	{key: "relation:role", name: "role", scope: "relation", encoding: protocol.TypeEncodingRoleType, abstract: true, root: true},
}

func newDatabase() (*memdb.MemDB, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}

	txn := db.Txn(true)
	defer txn.Abort()
	for _, root := range rootTypes {
		if err := txn.Insert(tableType, root); err != nil {
			return nil, err
		}
	}
	if err := txn.Insert(tableRelates, &relatesRecord{relation: "relation", role: "relation:role"}); err != nil {
		return nil, err
	}
	txn.Commit()
	return db, nil
}
