package main

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"simplimed/internal/config"
	"simplimed/internal/extract"
	"simplimed/internal/handler"
	"simplimed/internal/llm/groq"
	"simplimed/internal/port"
	"simplimed/internal/repository/postgres"
	"simplimed/internal/router"
	"simplimed/internal/service"
	"simplimed/internal/storage/local"
	s3storage "simplimed/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Optional persistence backend. Connection failure degrades the uploads
	// log and health reporting, nothing else.
	var db *sqlx.DB
	var uploadRepo port.UploadRepository
	if cfg.DB.Enabled() {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			log.Printf("database connection failed: %v", err)
			log.Printf("continuing without database")
		} else {
			defer db.Close()
			uploadRepo = postgres.NewUploadRepo(db)
			log.Printf("connected to postgres at %s", cfg.DB.Host)
		}
	}

	store, err := local.NewStore(cfg.Upload.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}
	log.Printf("upload directory: %s", store.Dir())

	// Optional archive bucket.
	var archive port.ObjectStorage
	if cfg.S3.Enabled() {
		archive, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
		log.Printf("archiving uploads to s3 bucket %s", cfg.S3.Bucket)
	}

	// Missing credentials are reported, not fatal: /api/analyze degrades to
	// a 400 until a key is configured.
	var completer port.ChatCompleter
	if cfg.Groq.Configured() {
		completer = groq.NewClient(&cfg.Groq)
		log.Printf("groq API configured (model %s)", cfg.Groq.Model)
	} else {
		log.Printf("GROQ_API_KEY not set; /api/analyze disabled")
	}

	extractor := extract.NewRouter()
	uploadSvc := service.NewUploadService(store, extractor, archive, uploadRepo, &cfg.Upload)
	analysisSvc := service.NewAnalysisService(completer)

	uploadH := handler.NewUploadHandler(uploadSvc)
	analyzeH := handler.NewAnalyzeHandler(analysisSvc)
	healthH := handler.NewHealthHandler(db, cfg.Groq.Configured())

	r := router.Setup(uploadH, analyzeH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
