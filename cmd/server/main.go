package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/config"
	httpAPI "storefront-backend/internal/http"
	"storefront-backend/internal/http/controller"
	"storefront-backend/internal/logger"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/repository/sql"
	"storefront-backend/internal/service"
	"storefront-backend/internal/sqs"
	"storefront-backend/internal/storage"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)

	ctx := context.Background()
	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	productRepository := sql.NewProductRepository(db)

	store, uploadDir, err := buildStore(ctx, conf)
	handleErr("initializing media storage", err)

	// Publishing is optional: without a queue URL the service simply
	// skips notifications.
	var publisher *sqs.Publisher
	if conf.AWS.SQSQueueURL != "" {
		sqsClient, err := sqs.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
		handleErr("initializing SQS client", err)
		publisher = sqs.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)
	}

	productService := service.NewProductService(productRepository, store, publisher)

	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctr := controller.New()
	productCtr := controller.NewProductController(productService)
	adminCtr := controller.NewAdminController(productService, conf.Media)
	authCtr := controller.NewAuthController(conf)

	httpServer := gin.Default()
	httpServer, err = httpAPI.InitRouter(conf, httpServer, uploadDir, ctr, productCtr, adminCtr, authCtr)
	handleErr("initializing router", err)

	go func() {
		err = httpServer.Run(":" + conf.HTTPServer.Port)
		if err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
}

// buildStore picks the media backend from config. The returned dir is
// only meaningful for the local backend, where the router serves it.
func buildStore(ctx context.Context, conf *config.Config) (storage.Store, string, error) {
	switch conf.Media.Backend {
	case config.MediaBackendS3:
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  conf.Media.S3Endpoint,
			Region:    conf.Media.S3Region,
			Bucket:    conf.Media.S3Bucket,
			AccessKey: conf.Media.S3AccessKey,
			SecretKey: conf.Media.S3SecretKey,
		})
		return store, "", err
	default:
		store, err := storage.NewLocalStore(conf.Media.UploadDir)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
