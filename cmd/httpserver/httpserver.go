// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/securebank/ledger/internal/accountdelivery"
	"github.com/securebank/ledger/internal/accountrepo"
	"github.com/securebank/ledger/internal/accountservice"
	"github.com/securebank/ledger/internal/auditdelivery"
	"github.com/securebank/ledger/internal/auditrepo"
	"github.com/securebank/ledger/internal/auditservice"
	"github.com/securebank/ledger/internal/middleware"
	"github.com/securebank/ledger/internal/transactiondelivery"
	"github.com/securebank/ledger/internal/transactionrepo"
	"github.com/securebank/ledger/internal/transactionservice"
	"github.com/securebank/ledger/internal/userdelivery"
	"github.com/securebank/ledger/internal/userrepo"
	"github.com/securebank/ledger/internal/userservice"
	"github.com/securebank/ledger/pkg/configpkg"
	"github.com/securebank/ledger/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	auditRepo := auditrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	auditService := auditservice.New(auditRepo)
	userService := userservice.New(userRepo, config, tokenMaker)
	accountService := accountservice.New(accountRepo, auditService)
	transactionService := transactionservice.New(transactionRepo, accountService, auditService)

	userHandler := userdelivery.NewHandler(userService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	auditHandler := auditdelivery.NewHandler(auditService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Register)
	engine.POST("/users/login", userHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/users/me", userHandler.Profile)

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts", accountHandler.List)

	authRoutes.POST("/transactions/deposit", transactionHandler.Deposit)
	authRoutes.POST("/transactions/withdraw", transactionHandler.Withdraw)
	authRoutes.POST("/transactions/transfer", transactionHandler.Transfer)
	authRoutes.GET("/transactions/account/:id", transactionHandler.History)

	adminRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker), middleware.AdminOnly())

	adminRoutes.POST("/accounts/:id/freeze", accountHandler.Freeze)
	adminRoutes.POST("/accounts/:id/unfreeze", accountHandler.Unfreeze)
	adminRoutes.GET("/audit/accounts/:id", auditHandler.ListByAccount)
	adminRoutes.GET("/audit/users/:id", auditHandler.ListByUser)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("money", transactiondelivery.ValidMoney); err != nil {
			return nil, errors.New("cannot register money validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
