package protocol

import "strconv"

// QueryType selects how the server executes a query.
type QueryType int32

const (
	QueryTypeMatch               QueryType = 0
	QueryTypeMatchAggregate      QueryType = 1
	QueryTypeMatchGroup          QueryType = 2
	QueryTypeMatchGroupAggregate QueryType = 3
	QueryTypeInsert              QueryType = 4
	QueryTypeDelete              QueryType = 5
	QueryTypeDefine              QueryType = 6
	QueryTypeUndefine            QueryType = 7
)

var queryTypeNames = map[QueryType]string{
	QueryTypeMatch:               "MATCH",
	QueryTypeMatchAggregate:      "MATCH_AGGREGATE",
	QueryTypeMatchGroup:          "MATCH_GROUP",
	QueryTypeMatchGroupAggregate: "MATCH_GROUP_AGGREGATE",
	QueryTypeInsert:              "INSERT",
	QueryTypeDelete:              "DELETE",
	QueryTypeDefine:              "DEFINE",
	QueryTypeUndefine:            "UNDEFINE",
}

func (q QueryType) String() string {
	if name, ok := queryTypeNames[q]; ok {
		return name
	}
	return strconv.Itoa(int(q))
}

// IsStreaming returns whether answers to the query arrive as response parts.
func (q QueryType) IsStreaming() bool {
	switch q {
	case QueryTypeMatch, QueryTypeMatchGroup, QueryTypeMatchGroupAggregate, QueryTypeInsert:
		return true
	default:
		return false
	}
}

// QueryManagerReq carries a query string to the server.
type QueryManagerReq struct {
	Type    QueryType `json:"type"`
	Query   string    `json:"query"`
	Options *Options  `json:"options,omitempty"`
}

// QueryManagerRes is the single response to a non-streaming query.
type QueryManagerRes struct {
	MatchAggregateRes *MatchAggregateRes `json:"match_aggregate_res,omitempty"`
	DeleteRes         *QueryDoneRes      `json:"delete_res,omitempty"`
	DefineRes         *QueryDoneRes      `json:"define_res,omitempty"`
	UndefineRes       *QueryDoneRes      `json:"undefine_res,omitempty"`
}

// MatchAggregateRes holds the result of an aggregate query.
type MatchAggregateRes struct {
	Answer *Numeric `json:"answer"`
}

// QueryDoneRes acknowledges a query without answers.
type QueryDoneRes struct{}

// QueryManagerResPart is one page of answers to a streaming query.
type QueryManagerResPart struct {
	MatchResPart               *ConceptMapsResPart      `json:"match_res_part,omitempty"`
	MatchGroupResPart          *ConceptMapGroupsResPart `json:"match_group_res_part,omitempty"`
	MatchGroupAggregateResPart *NumericGroupsResPart    `json:"match_group_aggregate_res_part,omitempty"`
	InsertResPart              *ConceptMapsResPart      `json:"insert_res_part,omitempty"`
}

// ConceptMapsResPart is a page of concept maps.
type ConceptMapsResPart struct {
	Answers []*ConceptMap `json:"answers"`
}

// ConceptMapGroupsResPart is a page of concept map groups.
type ConceptMapGroupsResPart struct {
	Answers []*ConceptMapGroup `json:"answers"`
}

// NumericGroupsResPart is a page of numeric groups.
type NumericGroupsResPart struct {
	Answers []*NumericGroup `json:"answers"`
}
