package botapp

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/config"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/infra/telegram"
	pgrepo "github.com/PavelMaximov/NoDramaClub-bot/internal/repo/postgres"
	redisrepo "github.com/PavelMaximov/NoDramaClub-bot/internal/repo/redis"
	contactssvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/contacts"
	feedbacksvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/feedback"
	invitessvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/invites"
	lifecyclesvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/lifecycle"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/posting"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/rate"
	reportssvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/reports"
	supportsvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/support"
	topicssvc "github.com/PavelMaximov/NoDramaClub-bot/internal/services/topics"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/services/wizard"
)

// pendingKind marks what the next free-text message from a chat is for.
type pendingKind string

const (
	pendingAdminEdit pendingKind = "admin_edit"
	pendingContact   pendingKind = "contact"
	pendingReport    pendingKind = "report"
	pendingFeedback  pendingKind = "feedback"
	pendingSupport   pendingKind = "support"
	pendingSupReply  pendingKind = "support_reply"
)

type pendingInput struct {
	Kind         pendingKind
	TargetUserID int64
}

type App struct {
	cfg    config.Config
	logger *zap.Logger
	redis  *goredis.Client
	tg     *telegram.Client

	profileRepo *pgrepo.ProfileRepo
	photoRepo   *pgrepo.PhotoRepo
	userRepo    *pgrepo.UserRepo

	wizardService    *wizard.Service
	lifecycleService *lifecyclesvc.Service
	topicsService    *topicssvc.Service
	contactsService  *contactssvc.Service
	reportsService   *reportssvc.Service
	feedbackService  *feedbacksvc.Service
	supportService   *supportsvc.Service
	poster           *posting.Poster

	pool *pgxpool.Pool

	sessionMu     sync.Mutex
	wizardByChat  map[int64]wizard.Session
	pendingMu     sync.Mutex
	pendingByChat map[int64]pendingInput
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		cfg:           cfg,
		logger:        logger,
		wizardByChat:  make(map[int64]wizard.Session),
		pendingByChat: make(map[int64]pendingInput),
	}

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Warn("postgres unavailable, continuing without database", zap.Error(err))
		pool = nil
	}
	app.pool = pool

	if pool != nil {
		if err := pgrepo.Migrate(cfg.Postgres.DSN); err != nil {
			logger.Warn("schema migration failed", zap.Error(err))
		}
	}

	redisClient, err := redisrepo.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("redis unavailable, cooldowns are disabled", zap.Error(err))
		redisClient = nil
	}
	app.redis = redisClient

	app.tg, err = telegram.NewClient(cfg.Bot.Token, cfg.Bot.PollTimeoutSeconds, logger, app.routeUpdate)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	app.profileRepo = pgrepo.NewProfileRepo(pool)
	app.photoRepo = pgrepo.NewPhotoRepo(pool)
	app.userRepo = pgrepo.NewUserRepo(pool)
	topicRepo := pgrepo.NewTopicRepo(pool)
	contactRepo := pgrepo.NewContactRequestRepo(pool)
	reportRepo := pgrepo.NewReportRepo(pool)
	feedbackRepo := pgrepo.NewFeedbackRepo(pool)

	var feedbackLimiter, supportLimiter *rate.Limiter
	if redisClient != nil {
		rateRepo := redisrepo.NewRateRepo(redisClient)
		feedbackLimiter = rate.NewLimiter(rateRepo, "feedback", cfg.Limits.FeedbackCooldown, 1)
		supportLimiter = rate.NewLimiter(rateRepo, "support", cfg.Limits.SupportCooldown, 1)
	}

	app.poster = posting.NewPoster(app.tg, logger, cfg.Bot.AdminIDs, cfg.Bot.GroupChatID)
	app.topicsService = topicssvc.NewService(topicRepo)
	inviteService := invitessvc.NewService(app.tg, cfg.Bot.GroupChatID, cfg.Bot.InviteTTL)
	app.lifecycleService = lifecyclesvc.NewService(
		app.profileRepo,
		app.photoRepo,
		app.topicsService,
		app.poster,
		app.poster,
		inviteService,
	)
	app.wizardService = wizard.NewService(app.profileRepo, app.photoRepo, app.lifecycleService, cfg.Cities)
	app.contactsService = contactssvc.NewService(contactRepo, cfg.Limits.ContactRequestsPerDay)
	app.reportsService = reportssvc.NewService(reportRepo)
	app.feedbackService = feedbacksvc.NewService(feedbackRepo, feedbackLimiter)
	app.supportService = supportsvc.NewService(app.poster, supportLimiter)

	return app, nil
}

// Run consumes updates until the context is cancelled. With a configured
// webhook domain it serves HTTP; otherwise it long-polls.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if a.cfg.IsWebhookEnabled() {
		return a.runWebhook(ctx)
	}
	return a.tg.Start(ctx)
}

func (a *App) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("close redis", zap.Error(err))
		}
	}
}

func (a *App) session(chatID int64) (wizard.Session, bool) {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	sess, ok := a.wizardByChat[chatID]
	return sess, ok
}

func (a *App) setSession(chatID int64, sess wizard.Session) {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	a.wizardByChat[chatID] = sess
}

// dropSession clears the chat's wizard state; clearing an absent session is
// a no-op.
func (a *App) dropSession(chatID int64) bool {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()
	_, ok := a.wizardByChat[chatID]
	delete(a.wizardByChat, chatID)
	return ok
}

func (a *App) pending(chatID int64) (pendingInput, bool) {
	a.pendingMu.Lock()
	defer a.pendingMu.Unlock()
	p, ok := a.pendingByChat[chatID]
	return p, ok
}

func (a *App) setPending(chatID int64, p pendingInput) {
	a.pendingMu.Lock()
	defer a.pendingMu.Unlock()
	a.pendingByChat[chatID] = p
}

func (a *App) dropPending(chatID int64) {
	a.pendingMu.Lock()
	defer a.pendingMu.Unlock()
	delete(a.pendingByChat, chatID)
}
