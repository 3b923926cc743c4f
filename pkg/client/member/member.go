package member

import (
	"fmt"
	"strconv"
)

const resourceType = "membership"

// Candidate is a person to be created as a user and made a member of a body in one step.
type Candidate struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Username    string `json:"username,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	University  string `json:"university,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

type User struct {
	Id        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

// Membership binds a user to a body.
type Membership struct {
	Id      int    `json:"id,omitempty"`
	BodyId  int    `json:"body_id,omitempty"`
	UserId  int    `json:"user_id,omitempty"`
	Comment string `json:"comment,omitempty"`
	Fee     string `json:"fee,omitempty"`
	User    *User  `json:"user,omitempty"`
}

func membersPath(bodyId int) string {
	return fmt.Sprintf("/bodies/%d/members", bodyId)
}

func membershipPath(bodyId, id int) string {
	return fmt.Sprintf("/bodies/%d/members/%d", bodyId, id)
}

func idString(id int) string {
	return strconv.Itoa(id)
}
