package models

import "time"

const (
	NoticeAnnouncement = "announcement"
	NoticeNews         = "news"
	NoticeCircular     = "circular"

	NoticeDraft     = "draft"
	NoticePublished = "published"
	NoticeArchived  = "archived"
)

var NoticeTypes = []string{NoticeAnnouncement, NoticeNews, NoticeCircular}

var NoticeStatuses = []string{NoticeDraft, NoticePublished, NoticeArchived}

type Notice struct {
	ID        string      `firestore:"id" json:"id"`
	Title     string      `firestore:"title" json:"title"`
	Content   string      `firestore:"content" json:"content"`
	Type      string      `firestore:"type" json:"type"`
	Status    string      `firestore:"status" json:"status"`
	Important bool        `firestore:"important" json:"important"`
	Date      *time.Time  `firestore:"date,omitempty" json:"date,omitempty"` // set on entering published
	Document  *Attachment `firestore:"document,omitempty" json:"document,omitempty"`
	CreatedAt time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

// SetStatus changes the status and stamps Date when the notice moves into
// published.
func (n *Notice) SetStatus(status string, now time.Time) {
	if status == NoticePublished && n.Status != NoticePublished {
		n.Date = &now
	}
	n.Status = status
}

// NoticeModalSettings is the operator-selected notice shown once per session
// on the public site.
type NoticeModalSettings struct {
	Enabled             bool      `firestore:"enabled" json:"enabled"`
	SelectedNoticeID    string    `firestore:"selectedNoticeId" json:"selectedNoticeId"`
	DelaySeconds        int       `firestore:"delaySeconds" json:"delaySeconds"`
	DaysBeforeShowAgain int       `firestore:"daysBeforeShowAgain" json:"daysBeforeShowAgain"`
	UpdatedAt           time.Time `firestore:"updatedAt" json:"updatedAt"`
}
