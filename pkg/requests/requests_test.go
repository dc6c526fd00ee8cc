package requests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"

	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/testutil"
)

func roundTrip[T any](t *testing.T, msg *T) *T {
	t.Helper()

	c := encoding.GetCodec(protocol.CodecName)
	require.NotNil(t, c)

	encoded, err := c.Marshal(msg)
	require.NoError(t, err)

	decoded := new(T)
	require.NoError(t, c.Unmarshal(encoded, decoded))
	return decoded
}

func TestScopedLabelRoundTrip(t *testing.T) {
	original := label.Scoped("marriage", "husband")

	decoded := roundTrip(t, RoleTypeGetPlayersReq(original))
	require.NotNil(t, decoded.TypeReq.RoleTypeGetPlayersReq)

	back := label.Scoped(decoded.TypeReq.Scope, decoded.TypeReq.Label)
	require.Equal(t, original, back)
	require.Equal(t, "marriage:husband", back.String())
}

func TestUnscopedLabelRoundTrip(t *testing.T) {
	original := label.Of("friendship")

	decoded := roundTrip(t, RelationTypeCreateReq(original))
	require.NotNil(t, decoded.TypeReq.RelationTypeCreateReq)
	require.Equal(t, original, label.Scoped(decoded.TypeReq.Scope, decoded.TypeReq.Label))
	require.False(t, label.Scoped(decoded.TypeReq.Scope, decoded.TypeReq.Label).HasScope())
}

func TestOptionalArgumentsAreOmitted(t *testing.T) {
	req := ThingTypeSetOwnsReq(label.Of("person"), &protocol.Type{Label: "name"}, nil, false)
	decoded := roundTrip(t, req)
	require.Nil(t, decoded.TypeReq.ThingTypeSetOwnsReq.OverriddenType)
	require.False(t, decoded.TypeReq.ThingTypeSetOwnsReq.IsKey)

	owns := roundTrip(t, ThingTypeGetOwnsReq(label.Of("person"), nil, true))
	require.Nil(t, owns.TypeReq.ThingTypeGetOwnsReq.ValueType)
	require.True(t, owns.TypeReq.ThingTypeGetOwnsReq.KeysOnly)
}

func TestRoleTypeArgumentsRoundTrip(t *testing.T) {
	roleTypes := []*protocol.Type{
		{Label: "wife", Scope: "marriage", Encoding: protocol.TypeEncodingRoleType},
		{Label: "husband", Scope: "marriage", Encoding: protocol.TypeEncodingRoleType},
		{Label: "friend", Scope: "friendship", Encoding: protocol.TypeEncodingRoleType},
	}
	byLabel := func(a, b *protocol.Type) int { return strings.Compare(a.Label, b.Label) }

	relations := roundTrip(t, ThingGetRelationsReq("0x01", roleTypes))
	testutil.RequireMessagesEqual(t, roleTypes, relations.ThingReq.ThingGetRelationsReq.RoleTypes, nil, "relations request role types")

	players := roundTrip(t, RelationGetPlayersReq("0x02", roleTypes[:2]))
	testutil.RequireMessagesEqual(t, []*protocol.Type{roleTypes[1], roleTypes[0]}, players.ThingReq.RelationGetPlayersReq.RoleTypes, byLabel, "players request role types")

	unfiltered := roundTrip(t, RelationGetPlayersReq("0x02", []*protocol.Type{}))
	testutil.RequireEqualEmptyNil(t, []*protocol.Type{}, unfiltered.ThingReq.RelationGetPlayersReq.RoleTypes)
}

func TestEachBuilderSetsExactlyItsOperation(t *testing.T) {
	l := label.Of("person")
	tcs := []struct {
		name  string
		req   *protocol.TransactionReq
		check func(*protocol.TransactionReq) bool
	}{
		{"delete", TypeDeleteReq(l), func(r *protocol.TransactionReq) bool { return r.TypeReq.TypeDeleteReq != nil }},
		{"supertypes", TypeGetSupertypesReq(l), func(r *protocol.TransactionReq) bool { return r.TypeReq.TypeGetSupertypesReq != nil }},
		{"instances", ThingTypeGetInstancesReq(l), func(r *protocol.TransactionReq) bool { return r.TypeReq.ThingTypeGetInstancesReq != nil }},
		{"thing has", ThingGetHasReq("0x01", nil, false), func(r *protocol.TransactionReq) bool { return r.ThingReq.ThingGetHasReq != nil }},
		{"players", RelationGetPlayersByRoleTypeReq("0x02"), func(r *protocol.TransactionReq) bool {
			return r.ThingReq.RelationGetPlayersByRoleTypeReq != nil
		}},
		{"get thing type", ConceptManagerGetThingTypeReq("person"), func(r *protocol.TransactionReq) bool {
			return r.ConceptManagerReq.GetThingTypeReq.Label == "person"
		}},
		{"commit", CommitReq(), func(r *protocol.TransactionReq) bool { return r.CommitReq != nil }},
		{"continue", StreamContinueReq("abc"), func(r *protocol.TransactionReq) bool { return r.StreamReq != nil && r.ReqID == "abc" }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.check(roundTrip(t, tc.req)))
		})
	}
}
