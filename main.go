package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	httpservermod "github.com/example/image-compress-service/modules/httpserver"
	imageservicemod "github.com/example/image-compress-service/modules/imageservice"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	httpPort := getEnvInt("HTTP_PORT", 3000)
	maxUploadSize := getEnvInt64("MAX_UPLOAD_SIZE", 50*1024*1024) // 50MiB default
	storagePath := getEnv("STORAGE_PATH", "uploads")
	allowedOrigins := splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))
	if len(allowedOrigins) == 0 {
		log.Fatal("ALLOWED_ORIGINS must name at least one origin (or *)")
	}

	log.Println("=== Image Compress Service ===")
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Max Upload Size: %d bytes", maxUploadSize)
	log.Printf("Storage Path: %s", storagePath)
	log.Printf("Allowed Origins: %s", strings.Join(allowedOrigins, ", "))

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Create modules
	imageServiceModule := imageservicemod.NewModule(storagePath, app.Logger())
	httpServerModule := httpservermod.NewModule(httpPort, maxUploadSize, allowedOrigins, app.Logger())

	// Wire up dependencies
	httpServerModule.SetImageModule(imageServiceModule)

	// Register modules; the image service must start first so the HTTP
	// module can mount the storage tree it creates.
	app.Register(imageServiceModule)
	app.Register(httpServerModule)

	// Start the application
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)
	log.Println("Endpoints:")
	log.Println("  GET    /health                 - Health check")
	log.Println("  POST   /api/images/upload      - Upload and compress an image")
	log.Println("  GET    /uploads/*path          - Retrieve a stored artifact")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	// Wait for shutdown signal
	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// splitAndTrim parses a comma-separated origin list.
func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvInt64 returns environment variable as int64 or default.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int64 value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}
