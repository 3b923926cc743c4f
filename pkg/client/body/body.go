package body

import (
	"fmt"
	"strconv"
)

const resourceType = "body"

// Body is an organisational unit such as a local antenna, working group or commission.
type Body struct {
	Id           int    `json:"id,omitempty"`
	Name         string `json:"name"`
	LegacyKey    string `json:"legacy_key,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Description  string `json:"description,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Type         string `json:"type,omitempty"`
	// ShadowCircleId is the circle mirroring the body's membership. Nil means none and is sent as null.
	ShadowCircleId *int `json:"shadow_circle_id"`
}

func path(id int) string {
	return fmt.Sprintf("/bodies/%d", id)
}

func idString(id int) string {
	return strconv.Itoa(id)
}
