package provider

import (
	"github.com/anup1414/AffiliateEngine/internal/cache"
	"github.com/anup1414/AffiliateEngine/internal/config"
	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/models"
	"github.com/anup1414/AffiliateEngine/internal/queue"
	"github.com/anup1414/AffiliateEngine/internal/repository"
	"github.com/anup1414/AffiliateEngine/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	MembershipRepo repository.MembershipRepository
	EarningRepo    repository.EarningRepository
	QRCodeRepo     repository.QRCodeRepository

	// Services
	UserService       *service.UserService
	PricingService    *service.PricingService
	MembershipService *service.MembershipService
	EarningService    *service.EarningService
	AdminService      *service.AdminService
	QRCodeService     *service.QRCodeService
	UploadService     *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.MembershipRepo = repository.NewMembershipRepository(db)
	c.EarningRepo = repository.NewEarningRepository(db)
	c.QRCodeRepo = repository.NewQRCodeRepository(db)
}

func (c *Container) initServices() {
	c.UserService = service.NewUserService(c.Config, c.UserRepo)
	c.PricingService = service.NewPricingService(c.Config.Membership)
	c.MembershipService = service.NewMembershipService(
		c.MembershipRepo,
		c.EarningRepo,
		c.UserRepo,
		c.PricingService,
		c.QueueClient,
		c.Config.Referral.RewardAmount,
	)
	c.EarningService = service.NewEarningService(c.EarningRepo, c.UserRepo)
	c.AdminService = service.NewAdminService(c.UserRepo, c.MembershipRepo, c.EarningRepo)
	c.QRCodeService = service.NewQRCodeService(c.QRCodeRepo)
	c.UploadService = service.NewUploadService(c.Config)
}
