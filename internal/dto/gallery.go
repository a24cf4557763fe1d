package dto

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	IsPublished bool   `json:"isPublished,omitempty"`
}

type UpdateEventRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

type PublishRequest struct {
	IsPublished bool `json:"isPublished"`
}

type EventFilter struct {
	IsPublished *bool
	Search      string
}

type CreateHeroRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	CTAText  string `json:"ctaText,omitempty"`
	CTALink  string `json:"ctaLink,omitempty"`
	IsActive bool   `json:"isActive,omitempty"`
}

type UpdateHeroRequest struct {
	Title    *string `json:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty"`
	CTAText  *string `json:"ctaText,omitempty"`
	CTALink  *string `json:"ctaLink,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type SetCurrentMediaRequest struct {
	Index int `json:"index"`
}
