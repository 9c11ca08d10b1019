package dto

// CreateUserRequest creates an account in the identity store.
type CreateUserRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email"`
	Password   string `json:"password"   binding:"required,min=6,max=64"`
	Role       string `json:"role"       binding:"required,oneof=admin principal hod faculty student"`
	Department string `json:"department"`
}

// UpdateUserRequest edits an account; nil fields are left untouched.
type UpdateUserRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Department *string `json:"department"`
	Status     *string `json:"status"     binding:"omitempty,oneof=active inactive"`
}

// UserListRequest filters the account listing.
type UserListRequest struct {
	PaginationRequest
	Role       string `form:"role"       binding:"omitempty,oneof=admin principal hod faculty student"`
	Department string `form:"department"`
	Status     string `form:"status"     binding:"omitempty,oneof=active inactive"`
	Keyword    string `form:"keyword"`
}

// UserResponse is the sanitized account view.
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status"`
	LastLogin  string `json:"last_login,omitempty"`
}
