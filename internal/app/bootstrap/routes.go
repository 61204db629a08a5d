// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	assistantfeature "github.com/parivartan/platform/internal/app/features/assistant"
	attendancefeature "github.com/parivartan/platform/internal/app/features/attendance"
	authgooglefeature "github.com/parivartan/platform/internal/app/features/authgoogle"
	campaignsfeature "github.com/parivartan/platform/internal/app/features/campaigns"
	chatfeature "github.com/parivartan/platform/internal/app/features/chat"
	eventsfeature "github.com/parivartan/platform/internal/app/features/events"
	feedfeature "github.com/parivartan/platform/internal/app/features/feed"
	feedbackfeature "github.com/parivartan/platform/internal/app/features/feedback"
	healthfeature "github.com/parivartan/platform/internal/app/features/health"
	logoutfeature "github.com/parivartan/platform/internal/app/features/logout"
	notificationsfeature "github.com/parivartan/platform/internal/app/features/notifications"
	slidesfeature "github.com/parivartan/platform/internal/app/features/slides"
	studiofeature "github.com/parivartan/platform/internal/app/features/studio"
	sysconfigfeature "github.com/parivartan/platform/internal/app/features/sysconfig"
	tasksfeature "github.com/parivartan/platform/internal/app/features/tasks"
	userinfofeature "github.com/parivartan/platform/internal/app/features/userinfo"
	usersfeature "github.com/parivartan/platform/internal/app/features/users"
	attendancestore "github.com/parivartan/platform/internal/app/store/attendance"
	campaignstore "github.com/parivartan/platform/internal/app/store/campaigns"
	chatstore "github.com/parivartan/platform/internal/app/store/chat"
	commentstore "github.com/parivartan/platform/internal/app/store/comments"
	eventstore "github.com/parivartan/platform/internal/app/store/events"
	feedbackstore "github.com/parivartan/platform/internal/app/store/feedback"
	loginstore "github.com/parivartan/platform/internal/app/store/logins"
	notificationstore "github.com/parivartan/platform/internal/app/store/notifications"
	"github.com/parivartan/platform/internal/app/store/oauthstate"
	poststore "github.com/parivartan/platform/internal/app/store/posts"
	profilestore "github.com/parivartan/platform/internal/app/store/profiles"
	slidestore "github.com/parivartan/platform/internal/app/store/slides"
	sysconfigstore "github.com/parivartan/platform/internal/app/store/sysconfig"
	taskstore "github.com/parivartan/platform/internal/app/store/tasks"
	"github.com/parivartan/platform/internal/app/system/ai"
	"github.com/parivartan/platform/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. Parivartan creates the session
// manager, wires every store against the shared database handle, and
// mounts the feature routers for the whole API surface.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	// Fresh user data is fetched on each request so role changes and
	// 2FA state take effect immediately, not at next sign-in.
	sessionMgr.SetUserFetcher(profilestore.NewFetcher(db))

	profiles := profilestore.New(db)
	posts := poststore.New(db)
	comments := commentstore.New(db)
	events := eventstore.New(db)
	tasks := taskstore.New(db)
	campaigns := campaignstore.New(db)
	slides := slidestore.New(db)
	sessions := attendancestore.New(db)
	messages := chatstore.New(db)
	notifications := notificationstore.New(db)
	feedback := feedbackstore.New(db)
	sysCfg := sysconfigstore.New(db)
	states := oauthstate.New(db)
	logins := loginstore.New(db)

	aiClient := ai.NewClient(appCfg.GeminiAPIKey, appCfg.GeminiModel, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Global auth middleware: loads the session user into the request
	// context so every handler can call auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	authgooglefeature.MountRoutes(r, authgooglefeature.NewHandler(
		profiles, states, logins, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		appCfg.SuperAdminEmails, logger))
	logoutfeature.MountRoutes(r, logoutfeature.NewHandler(sessionMgr, logger))
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	usersfeature.MountRoutes(r, usersfeature.NewHandler(profiles, appCfg.ProtectedEmails, logger))
	feedfeature.MountRoutes(r, feedfeature.NewHandler(posts, comments, notifications, aiClient, logger))
	eventsfeature.MountRoutes(r, eventsfeature.NewHandler(events, logger))
	tasksfeature.MountRoutes(r, tasksfeature.NewHandler(tasks, notifications, logger))
	campaignsfeature.MountRoutes(r, campaignsfeature.NewHandler(campaigns, logger))
	slidesfeature.MountRoutes(r, slidesfeature.NewHandler(slides, logger))
	attendancefeature.MountRoutes(r, attendancefeature.NewHandler(sessions, profiles, logger))
	chatfeature.MountRoutes(r, chatfeature.NewHandler(messages, logger))
	notificationsfeature.MountRoutes(r, notificationsfeature.NewHandler(notifications, logger))
	feedbackfeature.MountRoutes(r, feedbackfeature.NewHandler(feedback, logger))
	sysconfigfeature.MountRoutes(r, sysconfigfeature.NewHandler(sysCfg, logger))
	studiofeature.MountRoutes(r, studiofeature.NewHandler(aiClient, logger))
	assistantfeature.MountRoutes(r, assistantfeature.NewHandler(aiClient, logger))

	return r, nil
}
