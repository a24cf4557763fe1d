package dto

type CreateShareholderRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Role     string `json:"role,omitempty"`
	Shares   int    `json:"shares,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type UpdateShareholderRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Role        *string `json:"role,omitempty"`
	Shares      *int    `json:"shares,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	RemovePhoto bool    `json:"removePhoto,omitempty"`
}

type ShareholderFilter struct {
	Role       string
	Search     string
	ActiveOnly bool
}

type CreateTeamMemberRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Order    int    `json:"order,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type UpdateTeamMemberRequest struct {
	Name        *string `json:"name,omitempty"`
	Position    *string `json:"position,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Order       *int    `json:"order,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	RemovePhoto bool    `json:"removePhoto,omitempty"`
}

type TeamFilter struct {
	Position   string
	Search     string
	ActiveOnly bool
}

type CreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
