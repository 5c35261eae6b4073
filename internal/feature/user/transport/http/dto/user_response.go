package dto

import "newsportal/internal/feature/user/domain/entity"

// UserResponse is the read shape of a user. The password hash has no
// counterpart here on purpose.
type UserResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name,omitempty"`
	Surname    string `json:"surname,omitempty"`
	ParentName string `json:"parentName,omitempty"`
	Role       string `json:"role"`
}

// NewUserResponse maps a user entity to its read shape.
func NewUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Name:       user.Name,
		Surname:    user.Surname,
		ParentName: user.ParentName,
		Role:       string(user.Role),
	}
}

// NewUserResponses maps a slice of user entities.
func NewUserResponses(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
