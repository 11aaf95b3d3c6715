package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/authority"
	"github.com/inkstream/inkstream-go/internal/config"
	"github.com/inkstream/inkstream-go/internal/handler"
	"github.com/inkstream/inkstream-go/internal/middleware"
	"github.com/inkstream/inkstream-go/internal/payment"
	"github.com/inkstream/inkstream-go/internal/repository"
	"github.com/inkstream/inkstream-go/internal/response"
	"github.com/inkstream/inkstream-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	redisClient, err := authority.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer redisClient.Close()
	sessions := authority.NewRedisStore(redisClient, cfg.SessionTTL)

	codec, err := payment.New(payment.Config{
		MerchantID: cfg.Newebpay.MerchantID,
		HashKey:    cfg.Newebpay.HashKey,
		HashIV:     cfg.Newebpay.HashIV,
		Version:    cfg.Newebpay.Version,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid payment gateway credentials")
	}

	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := service.NewAuthService(userRepo, sessions, cfg.TokenSecret, cfg.ResetTokenTTL)
	userService := service.NewUserService(userRepo)
	articleService := service.NewArticleService(articleRepo, categoryRepo, commentRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	commentService := service.NewCommentService(commentRepo)
	creatorService := service.NewCreatorService(userRepo)
	orderService := service.NewOrderService(orderRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.ClientURL)
	userHandler := handler.NewUserHandler(userService, articleService, orderService, codec)
	articleHandler := handler.NewArticleHandler(articleService, userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	commentHandler := handler.NewCommentHandler(commentService)
	creatorHandler := handler.NewCreatorHandler(creatorService)
	orderHandler := handler.NewOrderHandler(orderService, codec, cfg.ClientURL)

	auth := middleware.NewAuth(sessions)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, apperr.RouteNotFound())
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			response.OK(w, "Hello World!", nil)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/auth/register", authHandler.HandleRegister)
			r.Post("/auth/login", authHandler.HandleLogin)
			r.Post("/auth/verify-email", authHandler.HandleVerifyEmail)
			r.Post("/auth/forgot-password", authHandler.HandleForgotPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Required)
			r.Post("/auth/logout", authHandler.HandleLogout)
			r.Patch("/auth/reset-password", authHandler.HandleResetPassword)

			r.Get("/user", userHandler.HandleInfo)
			r.Patch("/user", userHandler.HandleUpdate)
			r.Get("/user/followers", userHandler.HandleFollowers)
			r.Get("/user/followings", userHandler.HandleFollowings)
			r.Get("/user/articles", userHandler.HandleArticles)
			r.Post("/user/{userId}/follow", userHandler.HandleFollow)
			r.Delete("/user/{userId}/follow", userHandler.HandleUnfollow)
			r.Post("/user/{userId}/subscribe", userHandler.HandleSubscribe)

			r.Post("/article", articleHandler.HandleCreate)
			r.Patch("/article/{articleId}", articleHandler.HandleUpdate)
			r.Delete("/article/{articleId}", articleHandler.HandleDelete)
			r.Post("/article/{articleId}/like", articleHandler.HandleLike)
			r.Delete("/article/{articleId}/like", articleHandler.HandleUnlike)
			r.Post("/article/{articleId}/comment", articleHandler.HandleAddComment)

			r.Patch("/comment/{commentId}", commentHandler.HandleUpdate)
			r.Delete("/comment/{commentId}", commentHandler.HandleDelete)

			r.Post("/category", categoryHandler.HandleCreate)
			r.Put("/category/{categoryId}", categoryHandler.HandleUpdate)
			r.Delete("/category/{categoryId}", categoryHandler.HandleDelete)

			r.Get("/order/{orderNo}", orderHandler.HandleGet)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)
			r.Get("/article/{articleId}", articleHandler.HandleGet)
		})

		r.Get("/articles", articleHandler.HandleList)
		r.Get("/hot-articles", articleHandler.HandleListHot)
		r.Get("/article/{articleId}/comments", articleHandler.HandleComments)

		r.Get("/creator", creatorHandler.HandleList)
		r.Get("/creator/{creatorId}/followers", creatorHandler.HandleFollowers)
		r.Get("/creator/{creatorId}/followings", creatorHandler.HandleFollowings)

		r.Get("/category", categoryHandler.HandleList)

		r.Post("/payment/notify", orderHandler.HandleNotify)
		r.Post("/payment/return", orderHandler.HandleReturn)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced shutdown")
	}

	log.Info().Msg("Server stopped")
}
