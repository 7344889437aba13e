package models

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,max=150"`
}

type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateUserRequest struct {
	Username  string   `json:"username" binding:"required,max=150"`
	Email     string   `json:"email" binding:"required,email,max=254"`
	FirstName string   `json:"first_name" binding:"max=150"`
	LastName  string   `json:"last_name" binding:"max=150"`
	Bio       string   `json:"bio" binding:"max=256"`
	Role      UserRole `json:"role,omitempty"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
// Role is honored only on the admin endpoint, never on /users/me.
type UpdateUserRequest struct {
	Email     *string   `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string   `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string   `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string   `json:"bio" binding:"omitempty,max=256"`
	Role      *UserRole `json:"role"`
}

type CreateSlugRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

type ListParams struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

type TitleListParams struct {
	Name     string `form:"name"`
	Year     *int   `form:"year"`
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}
