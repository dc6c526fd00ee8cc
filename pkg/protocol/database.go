package protocol

import "strconv"

// SessionType is the kind of a session.
type SessionType int32

const (
	SessionTypeData   SessionType = 0
	SessionTypeSchema SessionType = 1
)

func (t SessionType) String() string {
	switch t {
	case SessionTypeData:
		return "DATA"
	case SessionTypeSchema:
		return "SCHEMA"
	default:
		return strconv.Itoa(int(t))
	}
}

type DatabasesContainsReq struct {
	Name string `json:"name"`
}

type DatabasesContainsRes struct {
	Contains bool `json:"contains,omitempty"`
}

type DatabasesCreateReq struct {
	Name string `json:"name"`
}

type DatabasesCreateRes struct{}

type DatabasesAllReq struct{}

type DatabasesAllRes struct {
	Names []string `json:"names"`
}

type DatabaseDeleteReq struct {
	Name string `json:"name"`
}

type DatabaseDeleteRes struct{}

type SessionCloseReq struct {
	SessionID string `json:"session_id"`
}

type SessionCloseRes struct{}

type SessionPulseReq struct {
	SessionID string `json:"session_id"`
}

type SessionPulseRes struct {
	Alive bool `json:"alive,omitempty"`
}

// SessionOpenReq opens a session on a database.
type SessionOpenReq struct {
	Database string      `json:"database"`
	Type     SessionType `json:"type"`
	Options  *Options    `json:"options,omitempty"`
}

// SessionOpenRes carries the identifier of a newly opened session.
type SessionOpenRes struct {
	SessionID            string `json:"session_id"`
	ServerDurationMillis int32  `json:"server_duration_millis,omitempty"`
}
