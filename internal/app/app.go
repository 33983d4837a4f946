package app

import (
	"net/http"

	"roomie-app-go/internal/auth"
	"roomie-app-go/internal/config"
	"roomie-app-go/internal/db"
	chatdomain "roomie-app-go/internal/domain/chat"
	cleaningdomain "roomie-app-go/internal/domain/cleaning"
	roomdomain "roomie-app-go/internal/domain/room"
	shoppingdomain "roomie-app-go/internal/domain/shopping"
	tasksdomain "roomie-app-go/internal/domain/tasks"
	userdomain "roomie-app-go/internal/domain/user"
	chatrepo "roomie-app-go/internal/repository/chat"
	cleaningrepo "roomie-app-go/internal/repository/cleaning"
	roomrepo "roomie-app-go/internal/repository/room"
	shoppingrepo "roomie-app-go/internal/repository/shopping"
	tasksrepo "roomie-app-go/internal/repository/tasks"
	userrepo "roomie-app-go/internal/repository/user"
	"roomie-app-go/internal/transport/httpserver"
	"roomie-app-go/internal/transport/httpserver/handler"
	"roomie-app-go/pkg/logger"

	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	rooms := roomdomain.NewService(roomrepo.NewPostgres(dbConn))
	users := userdomain.NewService(userrepo.NewPostgres(dbConn), tokens)
	tasks := tasksdomain.NewService(tasksrepo.NewPostgres(dbConn), rooms)
	shopping := shoppingdomain.NewService(shoppingrepo.NewPostgres(dbConn), rooms)
	cleaning := cleaningdomain.NewService(cleaningrepo.NewPostgres(dbConn), rooms)
	chat := chatdomain.NewService(chatrepo.NewPostgres(dbConn), rooms, chatdomain.Config{
		PollInterval: cfg.Chat.PollInterval,
		MaxPollWait:  cfg.Chat.MaxPollTimeout,
		FetchLimit:   cfg.Chat.FetchLimit,
	})

	handlers := handler.New(users, rooms, tasks, shopping, cleaning, chat, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, tokens, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
