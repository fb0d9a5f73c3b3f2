package main

import (
	"context"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"membership_backend/internal/app/di"
	"membership_backend/internal/app/router"
	authadapters "membership_backend/internal/feature/auth/adapters"
	authhandler "membership_backend/internal/feature/auth/transport/handler"
	authusecase "membership_backend/internal/feature/auth/usecase"
	membershipadapters "membership_backend/internal/feature/membership/adapters"
	membershiphandler "membership_backend/internal/feature/membership/transport/handler"
	membershipusecase "membership_backend/internal/feature/membership/usecase"
	paymentadapters "membership_backend/internal/feature/payments/adapters"
	paymenthandler "membership_backend/internal/feature/payments/transport/handler"
	paymentusecase "membership_backend/internal/feature/payments/usecase"
	planhandler "membership_backend/internal/feature/plans/transport/handler"
	planusecase "membership_backend/internal/feature/plans/usecase"
	receipthandler "membership_backend/internal/feature/receiptscan/transport/handler"
	settingsadapters "membership_backend/internal/feature/settings/adapters"
	settingshandler "membership_backend/internal/feature/settings/transport/handler"
	settingsusecase "membership_backend/internal/feature/settings/usecase"
	infradb "membership_backend/internal/platform/db"
	jwtmw "membership_backend/internal/platform/jwt"
	infraredis "membership_backend/internal/platform/redis"
	"membership_backend/internal/platform/upload"
)

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	accountRepo := authadapters.NewAccountMySQL(db)
	memberRepo := membershipadapters.NewMemberMySQL(db)
	counterRepo := membershipadapters.NewCounterMySQL(db)
	txRunner := membershipadapters.NewTxRunner(db)
	planRepo := di.NewPlanRepository(rdb, db)
	paymentRepo := paymentadapters.NewPaymentMySQL(db)
	settingsRepo := settingsadapters.NewSettingsMySQL(db)

	// JWT
	tokens := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), jwtmw.DefaultExpiration)

	// Usecase
	planUC := planusecase.NewPlanUsecase(planRepo)
	authUC := authusecase.NewAuthUsecase(accountRepo, tokens, authusecase.AdminCredentials{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	})
	paymentUC := paymentusecase.NewPaymentUsecase(paymentRepo)
	memberUC := membershipusecase.NewMemberUsecase(memberRepo, accountRepo, counterRepo, planUC, paymentUC, txRunner)
	settingsUC := settingsusecase.NewSettingsUsecase(settingsRepo, planUC)
	receiptUC := di.NewReceiptScanUsecase(ctx)

	// Uploads
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	images := upload.NewSaver(uploadDir)

	// Handler
	handlers := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Members:   membershiphandler.NewMemberHandler(memberUC, images),
		Plans:     planhandler.NewPlanHandler(planUC),
		Payments:  paymenthandler.NewPaymentHandler(paymentUC, images),
		Settings:  settingshandler.NewSettingsHandler(settingsUC, images),
		Receipts:  receipthandler.NewReceiptScanHandler(receiptUC),
		UploadDir: uploadDir,
	}

	r := router.NewRouter(handlers)

	// Configuration warnings for development
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	if os.Getenv("ADMIN_EMAIL") == "" || os.Getenv("ADMIN_PASSWORD") == "" {
		log.Println("[WARN] ADMIN_EMAIL/ADMIN_PASSWORD are not set. Admin login is disabled.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
