package dto

import "github.com/GregMSThompson/sahakari-backend/internal/models"

type CreateNoticeRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Type      string `json:"type,omitempty"`
	Status    string `json:"status,omitempty"`
	Important bool   `json:"important,omitempty"`
}

type UpdateNoticeRequest struct {
	Title          *string `json:"title,omitempty"`
	Content        *string `json:"content,omitempty"`
	Type           *string `json:"type,omitempty"`
	Status         *string `json:"status,omitempty"`
	Important      *bool   `json:"important,omitempty"`
	RemoveDocument bool    `json:"removeDocument,omitempty"`
}

type NoticeFilter struct {
	Type          string
	Status        string
	Important     *bool
	Search        string
	PublishedOnly bool
}

type UpdateNoticeModalRequest struct {
	Enabled             bool   `json:"enabled"`
	SelectedNoticeID    string `json:"selectedNoticeId"`
	DelaySeconds        int    `json:"delaySeconds"`
	DaysBeforeShowAgain int    `json:"daysBeforeShowAgain"`
}

// NoticeModalDecision tells the public site whether to open the notice modal
// for the current visitor session.
type NoticeModalDecision struct {
	Show         bool           `json:"show"`
	DelaySeconds int            `json:"delaySeconds"`
	Notice       *models.Notice `json:"notice,omitempty"`
}
