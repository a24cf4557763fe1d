package dto

type CreateServiceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Category     string   `json:"category"`
	InterestRate float64  `json:"interestRate,omitempty"`
	Features     []string `json:"features,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
	Order        int      `json:"order,omitempty"`
}

type UpdateServiceRequest struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Category     *string   `json:"category,omitempty"`
	InterestRate *float64  `json:"interestRate,omitempty"`
	Features     *[]string `json:"features,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
	Order        *int      `json:"order,omitempty"`
}

type ServiceFilter struct {
	Category   string
	ActiveOnly bool
}

type UpdateAboutRequest struct {
	Mission     *string   `json:"mission,omitempty"`
	Vision      *string   `json:"vision,omitempty"`
	History     *string   `json:"history,omitempty"`
	Values      *[]string `json:"values,omitempty"`
	RemoveImage bool      `json:"removeImage,omitempty"`
}

type CreateBusinessRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

type UpdateBusinessRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Owner       *string `json:"owner,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	RemoveLogo  bool    `json:"removeLogo,omitempty"`
}

type BusinessFilter struct {
	Category   string
	Featured   *bool
	Search     string
	ActiveOnly bool
}

type CreateProductRequest struct {
	BusinessID  string  `json:"businessId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
	RemoveImage bool     `json:"removeImage,omitempty"`
}

type ProductFilter struct {
	BusinessID string
	Search     string
}

type TranslateRequest struct {
	Text   string   `json:"text,omitempty"`
	Texts  []string `json:"texts,omitempty"`
	Target string   `json:"target"`
}

type TranslateResponse struct {
	Target       string   `json:"target"`
	Translations []string `json:"translations"`
}
