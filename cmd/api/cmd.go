package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/sahakari-backend/internal/bootstrap"
	"github.com/GregMSThompson/sahakari-backend/internal/config"
	"github.com/GregMSThompson/sahakari-backend/internal/handlers"
	"github.com/GregMSThompson/sahakari-backend/internal/kv"
	"github.com/GregMSThompson/sahakari-backend/internal/metrics"
	"github.com/GregMSThompson/sahakari-backend/internal/middleware"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/internal/response"
	"github.com/GregMSThompson/sahakari-backend/internal/router"
	"github.com/GregMSThompson/sahakari-backend/internal/services"
	"github.com/GregMSThompson/sahakari-backend/internal/store"
	"github.com/GregMSThompson/sahakari-backend/internal/translation"
	"github.com/GregMSThompson/sahakari-backend/internal/upload"
)

const (
	sessionTTL = 24 * time.Hour
	visitorTTL = 365 * 24 * time.Hour

	memorySweepInterval = 10 * time.Minute
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// local runs keep SDK settings such as emulator hosts in .env
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	m := metrics.New()

	// key/value stores
	var sessionKV, visitorKV, translateKV kv.Store
	if bs.Redis != nil {
		sessionKV = kv.NewRedis(bs.Redis, sessionTTL)
		visitorKV = kv.NewRedis(bs.Redis, visitorTTL)
		translateKV = kv.Prefixed(kv.NewRedis(bs.Redis, cfg.TranslateTTL), "translate:")
	} else {
		bs.Log.Warn("REDISADDR not set, using in-process key/value storage")
		mems := []*kv.Memory{
			kv.NewMemory(sessionTTL),
			kv.NewMemory(visitorTTL, kv.WithMaxEntries(5*kv.DefaultMaxEntries)),
			kv.NewMemory(cfg.TranslateTTL),
		}
		for _, mem := range mems {
			go mem.Run(ctx, memorySweepInterval)
		}
		sessionKV, visitorKV, translateKV = mems[0], mems[1], mems[2]
	}

	// stores
	accstore := store.NewAccountApplicationStore(bs.Firestore, bs.Cipher)
	loanstore := store.NewLoanApplicationStore(bs.Firestore, bs.Cipher)
	nstore := store.NewNoticeStore(bs.Firestore)
	nmstore := store.NewNoticeModalStore(bs.Firestore)
	gstore := store.NewGalleryStore(bs.Firestore)
	hstore := store.NewHeroStore(bs.Firestore)
	shstore := store.NewShareholderStore(bs.Firestore)
	tmstore := store.NewTeamStore(bs.Firestore)
	ofstore := store.NewServiceOfferingStore(bs.Firestore)
	abstore := store.NewAboutStore(bs.Firestore)
	bzstore := store.NewBusinessStore(bs.Firestore)
	prstore := store.NewProductStore(bs.Firestore)
	ustore := store.NewUserStore(bs.Firestore)

	// services
	accserv := services.NewAccountApplicationService(accstore, bs.Storage, m)
	loanserv := services.NewLoanApplicationService(loanstore, bs.Storage, m)
	nserv := services.NewNoticeService(nstore, bs.Storage, m)
	nmserv := services.NewNoticeModalService(nmstore, nstore)
	gserv := services.NewGalleryService(gstore, bs.Storage, m)
	hserv := services.NewHeroService(hstore, bs.Storage, m)
	shserv := services.NewShareholderService(shstore, bs.Storage, m)
	tmserv := services.NewTeamService(tmstore, bs.Storage, m)
	ofserv := services.NewOfferingService(ofstore)
	abserv := services.NewAboutService(abstore, bs.Storage, m)
	bzserv := services.NewBusinessService(bzstore, prstore, bs.Storage, m)
	prserv := services.NewProductService(prstore, bzstore, bs.Storage, m)
	userv := services.NewUserService(ustore, bs.Firebase)

	httpClient := &http.Client{Timeout: cfg.TranslateTimeout}
	providers := []translation.Provider{
		&translation.GoogleWeb{BaseURL: cfg.GoogleTranslateURL, Client: httpClient},
		&translation.MyMemory{BaseURL: cfg.MyMemoryURL, Client: httpClient},
		&translation.Libre{BaseURL: cfg.LibreTranslateURL, APIKey: cfg.LibreTranslateKey, Client: httpClient},
	}
	if bs.Vertex != nil {
		providers = append(providers, bs.Vertex)
	}
	trserv := translation.NewService(translateKV, providers, translation.Options{
		Budget:   cfg.TranslateBudget,
		TTL:      cfg.TranslateTTL,
		Cooldown: cfg.TranslateCooldown,
		Timeout:  cfg.TranslateTimeout,
		Recorder: m,
	})

	// response handler
	rh := response.New(bs.Log)

	// middleware
	auth := middleware.NewMiddleware(bs.Firebase, rh.HandleError)
	staff := chain(auth.FirebaseAuth, auth.RequireRole(models.RoleAdmin, models.RoleEditor))
	admin := chain(auth.FirebaseAuth, auth.RequireRole(models.RoleAdmin))

	images := upload.NewMiddleware(upload.Policy{MaxBytes: cfg.MediaMaxBytes, AllowedTypes: cfg.MediaAllowedTypes}, rh.HandleError)
	documents := upload.NewMiddleware(upload.Policy{MaxBytes: cfg.DocumentMaxBytes, AllowedTypes: cfg.DocumentAllowedTypes}, rh.HandleError)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Staff = staff
	deps.Admin = admin
	deps.Images = images
	deps.Documents = documents
	deps.SessionKV = sessionKV
	deps.VisitorKV = visitorKV
	deps.AccountSvc = accserv
	deps.LoanSvc = loanserv
	deps.NoticeSvc = nserv
	deps.NoticeModalSvc = nmserv
	deps.GallerySvc = gserv
	deps.HeroSvc = hserv
	deps.ShareholderSvc = shserv
	deps.TeamSvc = tmserv
	deps.OfferingSvc = ofserv
	deps.AboutSvc = abserv
	deps.BusinessSvc = bzserv
	deps.ProductSvc = prserv
	deps.UserSvc = userv
	deps.TranslateSvc = trserv

	// router
	r := router.NewRouter(deps, m, cfg.CORSOrigins)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		exitOnError("server start failed", err, bs.Log)
	}
}

func chain(mws ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
