package request

type SignupRequest struct {
	Username    string `json:"username" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	DOB         string `json:"dob" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// SigninRequest identifies the user by username, or by phone number when no
// username is given.
type SigninRequest struct {
	Username    string `json:"username" validate:"required_without=PhoneNumber"`
	PhoneNumber string `json:"phoneNumber" validate:"required_without=Username"`
	Password    string `json:"password" validate:"required"`
}
