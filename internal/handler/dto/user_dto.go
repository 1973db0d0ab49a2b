package dto

type RegisterUserRequest struct {
	Email            string `json:"email" binding:"required,email"`
	UniqueIdentifier string `json:"uniqueIdentifier" binding:"required"`
}

type RegisterUserResponse struct {
	Message string `json:"message"`
}
