package protocol

// ThingReq is a request addressed to the thing identified by IID. Exactly one
// operation field is set.
type ThingReq struct {
	IID string `json:"iid"`

	ThingDeleteReq       *ThingDeleteReq       `json:"thing_delete_req,omitempty"`
	ThingGetHasReq       *ThingGetHasReq       `json:"thing_get_has_req,omitempty"`
	ThingSetHasReq       *ThingSetHasReq       `json:"thing_set_has_req,omitempty"`
	ThingUnsetHasReq     *ThingUnsetHasReq     `json:"thing_unset_has_req,omitempty"`
	ThingGetRelationsReq *ThingGetRelationsReq `json:"thing_get_relations_req,omitempty"`
	ThingGetPlayingReq   *ThingGetPlayingReq   `json:"thing_get_playing_req,omitempty"`

	RelationAddPlayerReq            *RelationAddPlayerReq            `json:"relation_add_player_req,omitempty"`
	RelationRemovePlayerReq         *RelationRemovePlayerReq         `json:"relation_remove_player_req,omitempty"`
	RelationGetPlayersReq           *RelationGetPlayersReq           `json:"relation_get_players_req,omitempty"`
	RelationGetPlayersByRoleTypeReq *RelationGetPlayersByRoleTypeReq `json:"relation_get_players_by_role_type_req,omitempty"`
	RelationGetRelatingReq          *RelationGetRelatingReq          `json:"relation_get_relating_req,omitempty"`

	AttributeGetOwnersReq *AttributeGetOwnersReq `json:"attribute_get_owners_req,omitempty"`
}

type ThingDeleteReq struct{}

type ThingSetHasReq struct {
	Attribute *Thing `json:"attribute"`
}

type ThingUnsetHasReq struct {
	Attribute *Thing `json:"attribute"`
}

type ThingGetRelationsReq struct {
	RoleTypes []*Type `json:"role_types,omitempty"`
}

type ThingGetPlayingReq struct{}

type RelationGetPlayersReq struct {
	RoleTypes []*Type `json:"role_types,omitempty"`
}

type RelationGetPlayersByRoleTypeReq struct{}

type RelationGetRelatingReq struct{}

type AttributeGetOwnersReq struct {
	ThingType *Type `json:"thing_type,omitempty"`
}

// ThingGetHasReq lists owned attributes, optionally filtered by attribute type
// and to keys only.
type ThingGetHasReq struct {
	AttributeTypes []*Type `json:"attribute_types,omitempty"`
	KeysOnly       bool    `json:"keys_only,omitempty"`
}

// RelationAddPlayerReq adds a role player to a relation.
type RelationAddPlayerReq struct {
	RoleType *Type  `json:"role_type"`
	Player   *Thing `json:"player"`
}

// RelationRemovePlayerReq removes a role player from a relation.
type RelationRemovePlayerReq struct {
	RoleType *Type  `json:"role_type"`
	Player   *Thing `json:"player"`
}

// ThingRes is the single response to a non-streaming ThingReq.
type ThingRes struct {
	ThingDeleteRes   *ThingDeleteRes   `json:"thing_delete_res,omitempty"`
	ThingSetHasRes   *ThingSetHasRes   `json:"thing_set_has_res,omitempty"`
	ThingUnsetHasRes *ThingUnsetHasRes `json:"thing_unset_has_res,omitempty"`

	RelationAddPlayerRes    *RelationAddPlayerRes    `json:"relation_add_player_res,omitempty"`
	RelationRemovePlayerRes *RelationRemovePlayerRes `json:"relation_remove_player_res,omitempty"`
}

type ThingDeleteRes struct{}

type ThingSetHasRes struct{}

type ThingUnsetHasRes struct{}

type RelationAddPlayerRes struct{}

type RelationRemovePlayerRes struct{}

// ThingResPart is one page of a streaming ThingReq.
type ThingResPart struct {
	ThingGetHasResPart       *ThingsResPart `json:"thing_get_has_res_part,omitempty"`
	ThingGetRelationsResPart *ThingsResPart `json:"thing_get_relations_res_part,omitempty"`
	ThingGetPlayingResPart   *TypesResPart  `json:"thing_get_playing_res_part,omitempty"`

	RelationGetPlayersResPart           *ThingsResPart                       `json:"relation_get_players_res_part,omitempty"`
	RelationGetPlayersByRoleTypeResPart *RelationGetPlayersByRoleTypeResPart `json:"relation_get_players_by_role_type_res_part,omitempty"`
	RelationGetRelatingResPart          *TypesResPart                        `json:"relation_get_relating_res_part,omitempty"`

	AttributeGetOwnersResPart *ThingsResPart `json:"attribute_get_owners_res_part,omitempty"`
}

// RoleTypeWithPlayer pairs a role type with one of its players in a relation.
type RoleTypeWithPlayer struct {
	RoleType *Type  `json:"role_type"`
	Player   *Thing `json:"player"`
}

// RelationGetPlayersByRoleTypeResPart is a page of role players.
type RelationGetPlayersByRoleTypeResPart struct {
	RoleTypesWithPlayers []*RoleTypeWithPlayer `json:"role_types_with_players"`
}
