package cmd

import (
	"database/sql"
	"net"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/taskforge/taskforge/app/controller"
	"github.com/taskforge/taskforge/app/middleware"
	"github.com/taskforge/taskforge/app/notify"
	"github.com/taskforge/taskforge/app/repository"
	"github.com/taskforge/taskforge/app/service"
	"github.com/taskforge/taskforge/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	notifier := notify.New(cfg)

	authService := service.NewAuthService(userRepo, notifier, cfg)
	passwordService := service.NewPasswordService(userRepo, notifier, authService, cfg)
	userService := service.NewUserService(userRepo)
	todoService := service.NewTodoService(todoRepo)

	startHTTPServer(cfg, authService, passwordService, userService, todoService, userRepo)
}

func startHTTPServer(
	cfg *config.Config,
	authService service.AuthService,
	passwordService service.PasswordService,
	userService service.UserService,
	todoService service.TodoService,
	userRepo *repository.UserRepository,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	authController := controller.NewAuthController(authService)
	passwordController := controller.NewPasswordController(passwordService)
	userController := controller.NewUserController(userService)
	todoController := controller.NewTodoController(todoService)
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/verify-otp", authController.VerifyOTP)
	auth.POST("/login", authController.Login)
	auth.GET("/logout", authController.Logout)

	password := api.Group("/password")
	password.POST("/forgot", passwordController.ForgotPassword)
	password.PUT("/reset/:token", passwordController.ResetPassword)
	password.PUT("/update", passwordController.UpdatePassword, authMiddleware.RequireAuth)

	user := api.Group("/user", authMiddleware.RequireAuth)
	user.GET("/me", userController.Me)
	user.PUT("/me/update", userController.UpdateProfile)

	todo := api.Group("/todo", authMiddleware.RequireAuth)
	todo.POST("/new", todoController.Create)
	todo.GET("/me", todoController.ListMine)
	todo.PUT("/:id", todoController.Update)
	todo.DELETE("/:id", todoController.Delete)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}
