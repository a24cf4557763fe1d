package models

import "time"

var ShareholderRoles = []string{"chairperson", "vice-chairperson", "secretary", "treasurer", "member"}

var TeamPositions = []string{"ceo", "manager", "assistant-manager", "accountant", "loan-officer", "cashier", "staff"}

type Shareholder struct {
	ID        string      `firestore:"id" json:"id"`
	Name      string      `firestore:"name" json:"name"`
	Email     string      `firestore:"email" json:"email"`
	Phone     string      `firestore:"phone,omitempty" json:"phone,omitempty"`
	Address   string      `firestore:"address,omitempty" json:"address,omitempty"`
	Role      string      `firestore:"role" json:"role"`
	Shares    int         `firestore:"shares" json:"shares"`
	Photo     *Attachment `firestore:"photo,omitempty" json:"photo,omitempty"`
	IsActive  bool        `firestore:"isActive" json:"isActive"`
	CreatedAt time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

type TeamMember struct {
	ID        string      `firestore:"id" json:"id"`
	Name      string      `firestore:"name" json:"name"`
	Position  string      `firestore:"position" json:"position"`
	Email     string      `firestore:"email,omitempty" json:"email,omitempty"`
	Phone     string      `firestore:"phone,omitempty" json:"phone,omitempty"`
	Bio       string      `firestore:"bio,omitempty" json:"bio,omitempty"`
	Photo     *Attachment `firestore:"photo,omitempty" json:"photo,omitempty"`
	Order     int         `firestore:"order" json:"order"`
	IsActive  bool        `firestore:"isActive" json:"isActive"`
	CreatedAt time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var UserRoles = []string{RoleAdmin, RoleEditor}

// User is a back office account. UID is the Firebase Auth uid and doubles as
// the document id.
type User struct {
	UID         string    `firestore:"uid" json:"uid"`
	Email       string    `firestore:"email" json:"email"`
	DisplayName string    `firestore:"displayName" json:"displayName"`
	Role        string    `firestore:"role" json:"role"`
	Disabled    bool      `firestore:"disabled" json:"disabled"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}
