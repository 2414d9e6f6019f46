package dto

import (
	"github.com/uniem/uniem-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	Role           string   `json:"role,omitempty"`
	Bio            string   `json:"bio"`
	ProfilePicture string   `json:"profile_picture"`
	Points         int      `json:"points"`
	Rank           string   `json:"rank"`
	Thanks         int      `json:"thanks"`
	Badges         []string `json:"badges"`
	Title          string   `json:"title"`
}

// ToUserDTO converts a user to its full API representation (owner/admin view)
func ToUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Points:         u.Points,
		Rank:           u.Rank,
		Thanks:         u.Thanks,
		Badges:         u.Badges,
		Title:          u.Title,
	}
}

// ToPublicUserDTO converts a user to the representation shown to other users
func ToPublicUserDTO(u *models.User) UserDTO {
	dto := ToUserDTO(u)
	dto.Email = ""
	dto.Role = ""
	return dto
}
