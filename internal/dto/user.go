package dto

import "github.com/yukikurage/todo-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}
}
