// internal/domain/models/user.go
package models

import (
	"time"
)

// User is anyone who signs in: administrators, donors who registered, and
// organizations that run campaigns.
//
// NOTE:
//   - LoginCI is the folded login name and carries the uniqueness constraint.
//   - PaymentAccount is only meaningful for organizations; financial donations
//     to their campaigns are routed to it when present.
type User struct {
	ID               int64        `bson:"_id" json:"id"`
	Login            string       `bson:"login" json:"login"`
	LoginCI          string       `bson:"login_ci" json:"-"`
	PasswordHash     string       `bson:"password_hash" json:"-"`
	FullName         string       `bson:"full_name" json:"name"`
	Email            string       `bson:"email" json:"email"`
	Role             string       `bson:"role" json:"role"` // admin | user | organization
	OrganizationName string       `bson:"organization_name,omitempty" json:"organizationName,omitempty"`
	PaymentAccount   *AccountInfo `bson:"payment_account,omitempty" json:"paymentAccount,omitempty"`
	CreatedAt        time.Time    `bson:"created_at" json:"createdAt"`
}

// UserPatch carries the mutable profile fields of a User. Nil fields are left
// untouched.
type UserPatch struct {
	FullName         *string
	Email            *string
	OrganizationName *string
	PaymentAccount   *AccountInfo
}

// Set renders the patch as a field-name keyed update document.
func (p UserPatch) Set() map[string]any {
	set := map[string]any{}
	if p.FullName != nil {
		set["full_name"] = *p.FullName
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.OrganizationName != nil {
		set["organization_name"] = *p.OrganizationName
	}
	if p.PaymentAccount != nil {
		set["payment_account"] = *p.PaymentAccount
	}
	return set
}
