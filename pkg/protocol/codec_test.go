package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecIsRegistered(t *testing.T) {
	registered := encoding.GetCodec(CodecName)
	require.NotNil(t, registered)
	require.Equal(t, CodecName, registered.Name())
}

func TestCodecRoundTrip(t *testing.T) {
	valueType := ValueTypeString
	req := &TransactionReq{
		ReqID: "some-id",
		TypeReq: &TypeReq{
			Label: "person",
			ThingTypeGetOwnsReq: &ThingTypeGetOwnsReq{
				ValueType: &valueType,
				KeysOnly:  true,
			},
		},
	}

	c := codec{}
	encoded, err := c.Marshal(req)
	require.NoError(t, err)
	require.NotContains(t, string(encoded), "thing_req")
	require.NotContains(t, string(encoded), "type_delete_req")

	decoded := new(TransactionReq)
	require.NoError(t, c.Unmarshal(encoded, decoded))
	require.Empty(t, cmp.Diff(req, decoded))
}

func TestEmptyOperationSurvivesRoundTrip(t *testing.T) {
	res := &TransactionServer{
		ResPart: &TransactionResPart{
			ReqID:         "some-id",
			StreamResPart: &StreamResPart{State: StreamStateDone},
		},
	}

	c := codec{}
	encoded, err := c.Marshal(&TransactionReq{ReqID: "x", StreamReq: &StreamReq{}})
	require.NoError(t, err)

	decodedReq := new(TransactionReq)
	require.NoError(t, c.Unmarshal(encoded, decodedReq))
	require.NotNil(t, decodedReq.StreamReq)

	encoded, err = c.Marshal(res)
	require.NoError(t, err)
	decoded := new(TransactionServer)
	require.NoError(t, c.Unmarshal(encoded, decoded))
	require.Nil(t, decoded.Res)
	require.Equal(t, StreamStateDone, decoded.ResPart.StreamResPart.State)
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "RELATION_TYPE", TypeEncodingRelationType.String())
	require.Equal(t, "42", TypeEncoding(42).String())
	require.Equal(t, "ATTRIBUTE", ThingEncodingAttribute.String())
	require.Equal(t, "DATETIME", ValueTypeDateTime.String())
	require.Equal(t, "MATCH_GROUP_AGGREGATE", QueryTypeMatchGroupAggregate.String())
	require.True(t, QueryTypeInsert.IsStreaming())
	require.False(t, QueryTypeDefine.IsStreaming())
}
