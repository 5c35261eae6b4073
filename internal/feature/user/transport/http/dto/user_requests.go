// Package dto defines the request and response shapes of the user API.
package dto

import (
	"newsportal/internal/feature/user/domain/entity"
	"newsportal/internal/feature/user/usecase"
)

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,max=40"`
	Name       string `json:"name" binding:"omitempty,max=20"`
	Surname    string `json:"surname" binding:"omitempty,max=20"`
	ParentName string `json:"parentName" binding:"omitempty,max=20"`
	Role       string `json:"role" binding:"required,oneof=ADMIN JOURNALIST SUBSCRIBER"`
}

// ToInput maps the request onto a usecase input. Password, id and the
// deleted flag are system-managed and have no request counterpart.
func (r CreateUserRequest) ToInput() usecase.CreateInput {
	return usecase.CreateInput{
		Username:   r.Username,
		Name:       r.Name,
		Surname:    r.Surname,
		ParentName: r.ParentName,
		Role:       entity.Role(r.Role),
	}
}

// UpdateUserRequest is the body of PUT /api/users/:id. Optional fields
// left out of the JSON keep their stored values.
type UpdateUserRequest struct {
	Username   string  `json:"username" binding:"required,max=40"`
	Name       *string `json:"name" binding:"omitempty,max=20"`
	Surname    *string `json:"surname" binding:"omitempty,max=20"`
	ParentName *string `json:"parentName" binding:"omitempty,max=20"`
	Role       *string `json:"role" binding:"omitempty,oneof=ADMIN JOURNALIST SUBSCRIBER"`
}

// ToInput maps the request onto a usecase input.
func (r UpdateUserRequest) ToInput() usecase.UpdateInput {
	in := usecase.UpdateInput{
		Username:   r.Username,
		Name:       r.Name,
		Surname:    r.Surname,
		ParentName: r.ParentName,
	}
	if r.Role != nil {
		role := entity.Role(*r.Role)
		in.Role = &role
	}
	return in
}

// ChangePasswordRequest is the body of POST /api/users/:id/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required,max=80"`
	NewPassword string `json:"newPassword" binding:"required,max=80"`
}
