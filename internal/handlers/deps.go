package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/sahakari-backend/internal/kv"
	"github.com/GregMSThompson/sahakari-backend/internal/response"
	"github.com/GregMSThompson/sahakari-backend/internal/upload"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler

	// Staff admits any back office role, Admin only administrators.
	Staff func(http.Handler) http.Handler
	Admin func(http.Handler) http.Handler

	// Images guards photo and media uploads, Documents also accepts PDFs.
	Images    *upload.Middleware
	Documents *upload.Middleware

	// Visitor state for the notice modal gate.
	SessionKV kv.Store
	VisitorKV kv.Store

	AccountSvc     accountApplicationService
	LoanSvc        loanApplicationService
	NoticeSvc      noticeService
	NoticeModalSvc noticeModalService
	GallerySvc     galleryService
	HeroSvc        heroService
	ShareholderSvc shareholderService
	TeamSvc        teamService
	OfferingSvc    offeringService
	AboutSvc       aboutService
	BusinessSvc    businessService
	ProductSvc     productService
	UserSvc        userService
	TranslateSvc   translateService
}

// maxGalleryFiles bounds one bulk media upload.
const maxGalleryFiles = 20
