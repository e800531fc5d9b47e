package response

import (
	"time"

	"product-app/internal/data/entity"
)

// UserResponse mirrors the stored user record with the password hash removed.
type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	PhoneNumber string  `json:"phoneNumber"`
	DOB         string  `json:"dob"`
	Password    *string `json:"password"`
	CreatedOn   string  `json:"createdOn"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		PhoneNumber: user.PhoneNumber,
		DOB:         user.DateOfBirth.UTC().Format(time.RFC3339Nano),
		Password:    nil,
		CreatedOn:   user.CreatedOn.UTC().Format(time.RFC3339Nano),
	}
}
