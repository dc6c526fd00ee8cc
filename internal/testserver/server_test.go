package testserver_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/authzed/grpcutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc/codes"

	"github.com/flyingsilverfin/grakn-client-go/internal/testserver"
	"github.com/flyingsilverfin/grakn-client-go/pkg/client"
	"github.com/flyingsilverfin/grakn-client-go/pkg/concept"
	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/testutil"
	"github.com/flyingsilverfin/grakn-client-go/pkg/transaction"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, testutil.GoLeakIgnores()...)
}

const database = "grakn"

type fixture struct {
	server *testserver.Server
	client *client.Client
}

func newFixture(t *testing.T, opts ...testserver.Option) *fixture {
	t.Helper()

	srv := testserver.NewServer(opts...)
	c, err := client.New(testserver.BufferedTarget,
		client.WithDialOptions(srv.ServeBuffered(t)),
		client.WithPulseInterval(time.Hour),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})

	require.NoError(t, c.Databases().Create(context.Background(), database))
	return &fixture{server: srv, client: c}
}

// run passes a transaction opened in a new session to fn. Write transactions
// still open afterwards are committed.
func (f *fixture) run(t *testing.T, sessionType protocol.SessionType, txType protocol.TransactionType, fn func(ctx context.Context, tx *transaction.Transaction), opts ...transaction.Option) {
	t.Helper()
	ctx := context.Background()

	sess, err := f.client.Session(ctx, database, sessionType)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, sess.Close())
	}()

	tx, err := sess.Transaction(ctx, txType, opts...)
	require.NoError(t, err)
	fn(ctx, tx)

	if txType == protocol.TransactionTypeWrite && tx.IsOpen() {
		require.NoError(t, tx.Commit(ctx))
	}
	require.NoError(t, tx.Close())
}

func remote[R concept.RemoteConcept](t *testing.T, c concept.Concept, tx concept.Transaction) R {
	t.Helper()
	r, err := concept.Remote[R](c, tx)
	require.NoError(t, err)
	return r
}

func TestDatabases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dbs := f.client.Databases()

	require.NoError(t, dbs.Create(ctx, "alpha"))
	err := dbs.Create(ctx, "alpha")
	grpcutil.RequireStatus(t, codes.AlreadyExists, err)

	names, err := dbs.All(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", database}, names)

	contains, err := dbs.Contains(ctx, "alpha")
	require.NoError(t, err)
	require.True(t, contains)

	require.NoError(t, dbs.Delete(ctx, "alpha"))
	err = dbs.Delete(ctx, "alpha")
	require.True(t, graknerrors.IsKind(err, graknerrors.NotFound))

	_, err = f.client.Session(ctx, "alpha", protocol.SessionTypeData)
	require.True(t, graknerrors.IsKind(err, graknerrors.NotFound))
}

func TestFriendship(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		person, err := tx.Concepts().PutEntityType(ctx, "person")
		require.NoError(t, err)
		friendship, err := tx.Concepts().PutRelationType(ctx, "friendship")
		require.NoError(t, err)
		name, err := tx.Concepts().PutAttributeType(ctx, "name", protocol.ValueTypeString)
		require.NoError(t, err)

		remoteFriendship := remote[concept.RemoteRelationType](t, friendship, tx)
		require.NoError(t, remoteFriendship.SetRelates(ctx, "friend"))
		friend, err := remoteFriendship.GetRelatesForRoleLabel(ctx, "friend")
		require.NoError(t, err)
		require.Equal(t, label.Scoped("friendship", "friend"), friend.Label())

		remotePerson := remote[concept.RemoteEntityType](t, person, tx)
		require.NoError(t, remotePerson.SetPlays(ctx, friend))
		require.NoError(t, remotePerson.SetOwns(ctx, name, concept.AsKey()))
	})

	var aliceIID string
	f.run(t, protocol.SessionTypeData, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		person, err := tx.Concepts().GetEntityType(ctx, "person")
		require.NoError(t, err)
		require.NotNil(t, person)
		friendship, err := tx.Concepts().GetRelationType(ctx, "friendship")
		require.NoError(t, err)
		name, err := tx.Concepts().GetAttributeType(ctx, "name")
		require.NoError(t, err)

		remotePerson := remote[concept.RemoteEntityType](t, person, tx)
		alice, err := remotePerson.Create(ctx)
		require.NoError(t, err)
		bob, err := remotePerson.Create(ctx)
		require.NoError(t, err)
		aliceIID = alice.IID()

		aliceName, err := remote[concept.RemoteAttributeType](t, name, tx).Put(ctx, concept.StringValue("alice"))
		require.NoError(t, err)
		require.NoError(t, remote[concept.RemoteEntity](t, alice, tx).SetHas(ctx, aliceName))

		remoteFriendship := remote[concept.RemoteRelationType](t, friendship, tx)
		friend, err := remoteFriendship.GetRelatesForRoleLabel(ctx, "friend")
		require.NoError(t, err)
		friends, err := remoteFriendship.Create(ctx)
		require.NoError(t, err)

		remoteFriends := remote[concept.RemoteRelation](t, friends, tx)
		require.NoError(t, remoteFriends.AddPlayer(ctx, friend, alice))
		require.NoError(t, remoteFriends.AddPlayer(ctx, friend, bob))
	})

	f.run(t, protocol.SessionTypeData, protocol.TransactionTypeRead, func(ctx context.Context, tx *transaction.Transaction) {
		alice, err := tx.Concepts().GetThing(ctx, aliceIID)
		require.NoError(t, err)
		require.NotNil(t, alice)
		require.True(t, alice.IsEntity())

		remoteAlice := remote[concept.RemoteThing](t, alice, tx)
		keys, err := remoteAlice.GetHas(ctx, concept.HasKeysOnly()).Collect(ctx)
		require.NoError(t, err)
		require.Len(t, keys, 1)
		require.Equal(t, "alice", keys[0].Value().AsString())

		relations, err := remoteAlice.GetRelations(ctx).Collect(ctx)
		require.NoError(t, err)
		require.Len(t, relations, 1)

		byRole, err := remote[concept.RemoteRelation](t, relations[0], tx).GetPlayersByRoleType(ctx)
		require.NoError(t, err)
		require.Len(t, byRole, 1)
		require.Equal(t, label.Scoped("friendship", "friend"), byRole[0].RoleType.Label())
		require.Len(t, byRole[0].Players, 2)

		person, err := tx.Concepts().GetEntityType(ctx, "person")
		require.NoError(t, err)
		instances, err := remote[concept.RemoteEntityType](t, person, tx).GetInstances(ctx).Collect(ctx)
		require.NoError(t, err)
		require.Len(t, instances, 2)

		name, err := tx.Concepts().GetAttributeType(ctx, "name")
		require.NoError(t, err)
		owners, err := remote[concept.RemoteAttributeType](t, name, tx).GetOwners(ctx, true).Collect(ctx)
		require.NoError(t, err)
		require.Len(t, owners, 1)
		require.Equal(t, label.Of("person"), owners[0].Label())
	})
}

func TestUnsetOwnsOfUnownedAttributeType(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		person, err := tx.Concepts().PutEntityType(ctx, "person")
		require.NoError(t, err)
		name, err := tx.Concepts().PutAttributeType(ctx, "name", protocol.ValueTypeString)
		require.NoError(t, err)

		err = remote[concept.RemoteEntityType](t, person, tx).UnsetOwns(ctx, name)
		require.True(t, graknerrors.IsKind(err, graknerrors.NotFound))
		grpcutil.RequireStatus(t, codes.NotFound, err)
		require.True(t, tx.IsOpen())
	})
}

func TestStreamsArePaginated(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		for i := range 7 {
			_, err := tx.Concepts().PutEntityType(ctx, fmt.Sprintf("type%d", i))
			require.NoError(t, err)
		}

		root, err := tx.Concepts().GetRootEntityType(ctx)
		require.NoError(t, err)
		subtypes := remote[concept.RemoteEntityType](t, root, tx).GetSubtypes(ctx)

		first, err := subtypes.Limit(ctx, 3)
		require.NoError(t, err)
		require.Len(t, first, 3)
		require.Equal(t, label.Of(concept.RootEntity), first[0].Label())

		rest, err := subtypes.Collect(ctx)
		require.NoError(t, err)
		require.Len(t, rest, 5)
	}, transaction.WithPrefetchSize(2))
}

func TestIsDeleted(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		person, err := tx.Concepts().PutEntityType(ctx, "person")
		require.NoError(t, err)
		friendship, err := tx.Concepts().PutRelationType(ctx, "friendship")
		require.NoError(t, err)
		remoteFriendship := remote[concept.RemoteRelationType](t, friendship, tx)
		require.NoError(t, remoteFriendship.SetRelates(ctx, "friend"))
		friend, err := remoteFriendship.GetRelatesForRoleLabel(ctx, "friend")
		require.NoError(t, err)

		remotePerson := remote[concept.RemoteEntityType](t, person, tx)
		deleted, err := remotePerson.IsDeleted(ctx)
		require.NoError(t, err)
		require.False(t, deleted)

		remoteFriend := remote[concept.RemoteRoleType](t, friend, tx)
		deleted, err = remoteFriend.IsDeleted(ctx)
		require.NoError(t, err)
		require.False(t, deleted)

		require.NoError(t, remoteFriendship.UnsetRelates(ctx, "friend"))
		deleted, err = remoteFriend.IsDeleted(ctx)
		require.NoError(t, err)
		require.True(t, deleted)

		require.NoError(t, remotePerson.Delete(ctx))
		deleted, err = remotePerson.IsDeleted(ctx)
		require.NoError(t, err)
		require.True(t, deleted)

		animal, err := tx.Concepts().PutEntityType(ctx, "animal")
		require.NoError(t, err)
		dog, err := remote[concept.RemoteEntityType](t, animal, tx).Create(ctx)
		require.NoError(t, err)
		remoteDog := remote[concept.RemoteEntity](t, dog, tx)

		deleted, err = remoteDog.IsDeleted(ctx)
		require.NoError(t, err)
		require.False(t, deleted)

		require.NoError(t, remoteDog.Delete(ctx))
		deleted, err = remoteDog.IsDeleted(ctx)
		require.NoError(t, err)
		require.True(t, deleted)
	})
}

func TestSetLabelRenamesRoles(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		friendship, err := tx.Concepts().PutRelationType(ctx, "friendship")
		require.NoError(t, err)
		remoteFriendship := remote[concept.RemoteRelationType](t, friendship, tx)
		require.NoError(t, remoteFriendship.SetRelates(ctx, "friend"))
		friend, err := remoteFriendship.GetRelatesForRoleLabel(ctx, "friend")
		require.NoError(t, err)

		require.NoError(t, remoteFriendship.SetLabel(ctx, "bond"))

		gone, err := tx.Concepts().GetRelationType(ctx, "friendship")
		require.NoError(t, err)
		require.Nil(t, gone)

		bond, err := tx.Concepts().GetRelationType(ctx, "bond")
		require.NoError(t, err)
		require.NotNil(t, bond)
		renamed, err := remote[concept.RemoteRelationType](t, bond, tx).GetRelatesForRoleLabel(ctx, "friend")
		require.NoError(t, err)
		require.Equal(t, label.Scoped("bond", "friend"), renamed.Label())

		deleted, err := remote[concept.RemoteRoleType](t, friend, tx).IsDeleted(ctx)
		require.NoError(t, err)
		require.True(t, deleted)
	})
}

func TestWritesRequireAccess(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeRead, func(ctx context.Context, tx *transaction.Transaction) {
		_, err := tx.Concepts().PutEntityType(ctx, "person")
		require.True(t, graknerrors.IsKind(err, graknerrors.Client))
		grpcutil.RequireStatus(t, codes.InvalidArgument, err)
	})

	f.run(t, protocol.SessionTypeData, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		_, err := tx.Concepts().PutEntityType(ctx, "person")
		require.True(t, graknerrors.IsKind(err, graknerrors.Client))
	})
}

func TestSchemaViolations(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		person, err := tx.Concepts().PutEntityType(ctx, "person")
		require.NoError(t, err)
		animal, err := tx.Concepts().PutEntityType(ctx, "animal")
		require.NoError(t, err)
		remotePerson := remote[concept.RemoteEntityType](t, person, tx)
		remoteAnimal := remote[concept.RemoteEntityType](t, animal, tx)

		require.NoError(t, remotePerson.SetAbstract(ctx))
		abstract, err := remotePerson.IsAbstract(ctx)
		require.NoError(t, err)
		require.True(t, abstract)
		_, err = remotePerson.Create(ctx)
		require.True(t, graknerrors.IsKind(err, graknerrors.SchemaViolation))

		require.NoError(t, remotePerson.SetSupertype(ctx, animal))
		supertype, err := remotePerson.GetSupertype(ctx)
		require.NoError(t, err)
		require.Equal(t, label.Of("animal"), supertype.Label())
		err = remoteAnimal.SetSupertype(ctx, person)
		require.True(t, graknerrors.IsKind(err, graknerrors.SchemaViolation))

		supertypes, err := remotePerson.GetSupertypes(ctx).Collect(ctx)
		require.NoError(t, err)
		require.Len(t, supertypes, 4)

		_, err = tx.Concepts().PutAttributeType(ctx, "person", protocol.ValueTypeLong)
		require.True(t, graknerrors.IsKind(err, graknerrors.SchemaViolation))

		err = remoteAnimal.Delete(ctx)
		require.True(t, graknerrors.IsKind(err, graknerrors.SchemaViolation))

		root, err := tx.Concepts().GetRootEntityType(ctx)
		require.NoError(t, err)
		err = remote[concept.RemoteEntityType](t, root, tx).Delete(ctx)
		require.True(t, graknerrors.IsKind(err, graknerrors.SchemaViolation))
	})
}

func TestAttributes(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		name, err := tx.Concepts().PutAttributeType(ctx, "name", protocol.ValueTypeString)
		require.NoError(t, err)
		remoteName := remote[concept.RemoteAttributeType](t, name, tx)

		require.NoError(t, remoteName.SetRegex(ctx, "^[a-z]+$"))
		regex, err := remoteName.GetRegex(ctx)
		require.NoError(t, err)
		require.Equal(t, "^[a-z]+$", regex)

		first, err := remoteName.Put(ctx, concept.StringValue("alice"))
		require.NoError(t, err)
		second, err := remoteName.Put(ctx, concept.StringValue("alice"))
		require.NoError(t, err)
		require.Equal(t, first.IID(), second.IID())

		found, err := remoteName.Get(ctx, concept.StringValue("alice"))
		require.NoError(t, err)
		require.Equal(t, first.IID(), found.IID())

		missing, err := remoteName.Get(ctx, concept.StringValue("bob"))
		require.NoError(t, err)
		require.Nil(t, missing)

		_, err = remoteName.Put(ctx, concept.StringValue("Bob"))
		require.True(t, graknerrors.IsKind(err, graknerrors.SchemaViolation))

		age, err := tx.Concepts().PutAttributeType(ctx, "age", protocol.ValueTypeLong)
		require.NoError(t, err)
		owned, err := remote[concept.RemoteAttributeType](t, age, tx).Put(ctx, concept.LongValue(42))
		require.NoError(t, err)
		require.EqualValues(t, 42, owned.Value().Long())
	})
}

func TestRollbackDiscardsChanges(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		_, err := tx.Concepts().PutEntityType(ctx, "person")
		require.NoError(t, err)
		require.NoError(t, tx.Rollback(ctx))

		person, err := tx.Concepts().GetEntityType(ctx, "person")
		require.NoError(t, err)
		require.Nil(t, person)
	})
}

func TestCommittedChangesAreVisible(t *testing.T) {
	f := newFixture(t)

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		_, err := tx.Concepts().PutEntityType(ctx, "person")
		require.NoError(t, err)
	})

	f.run(t, protocol.SessionTypeData, protocol.TransactionTypeRead, func(ctx context.Context, tx *transaction.Transaction) {
		person, err := tx.Concepts().GetEntityType(ctx, "person")
		require.NoError(t, err)
		require.NotNil(t, person)
	})
}

func TestQueriesAreDelegated(t *testing.T) {
	count := int64(4)
	f := newFixture(t, testserver.WithQueryHandler(testserver.StaticQueries(map[string]testserver.QueryResult{
		"match $x sub entity;": {Parts: []*protocol.QueryManagerResPart{{
			MatchResPart: &protocol.ConceptMapsResPart{Answers: []*protocol.ConceptMap{{
				Map: map[string]*protocol.Concept{"x": {Type: &protocol.Type{Label: "entity", Encoding: protocol.TypeEncodingEntityType, Root: true}}},
			}}},
		}}},
		"match $x sub thing; count;": {Res: &protocol.QueryManagerRes{
			MatchAggregateRes: &protocol.MatchAggregateRes{Answer: &protocol.Numeric{LongValue: &count}},
		}},
		"define person sub entity;": {},
	})))

	f.run(t, protocol.SessionTypeData, protocol.TransactionTypeRead, func(ctx context.Context, tx *transaction.Transaction) {
		answers, err := tx.Query().Match(ctx, "match $x sub entity;").Collect(ctx)
		require.NoError(t, err)
		require.Len(t, answers, 1)
		x, ok := answers[0].Get("x")
		require.True(t, ok)
		require.Equal(t, label.Of("entity"), x.(concept.Type).Label())

		n, err := tx.Query().MatchAggregate(ctx, "match $x sub thing; count;")
		require.NoError(t, err)
		require.EqualValues(t, 4, n.AsLong())

		_, err = tx.Query().Match(ctx, "match $x isa person;").Collect(ctx)
		grpcutil.RequireStatus(t, codes.Unimplemented, err)
	})

	f.run(t, protocol.SessionTypeSchema, protocol.TransactionTypeWrite, func(ctx context.Context, tx *transaction.Transaction) {
		require.NoError(t, tx.Query().Define(ctx, "define person sub entity;"))
	})
}

func TestPresharedKey(t *testing.T) {
	srv := testserver.NewServer(testserver.WithPresharedKey("secret"))
	dial := srv.ServeBuffered(t)
	ctx := context.Background()

	anonymous, err := client.New(testserver.BufferedTarget, client.WithDialOptions(dial))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, anonymous.Close())
	})
	_, err = anonymous.Databases().All(ctx)
	grpcutil.RequireStatus(t, codes.Unauthenticated, err)

	authenticated, err := client.New(testserver.BufferedTarget, client.WithDialOptions(dial), client.WithBearerToken("secret"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, authenticated.Close())
	})
	names, err := authenticated.Databases().All(ctx)
	require.NoError(t, err)
	require.Empty(t, names)
}
