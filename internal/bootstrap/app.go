package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmentor-backend/internal/analyses"
	"cvmentor-backend/internal/gemini"
	"cvmentor-backend/internal/mentees"
	"cvmentor-backend/internal/resumes"
	"cvmentor-backend/internal/shared/config"
	"cvmentor-backend/internal/shared/server"
	"cvmentor-backend/internal/shared/storage/db"
	"cvmentor-backend/internal/shared/storage/object"
	localstore "cvmentor-backend/internal/shared/storage/object/local"
	s3store "cvmentor-backend/internal/shared/storage/object/s3"
	"cvmentor-backend/internal/uploads"
)

// App holds shared dependencies wired from config.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store

	MenteesRepo  mentees.Repo
	ResumesRepo  resumes.Repo
	AnalysesRepo analyses.Repo

	Analyzer      gemini.Analyzer
	UploadService *uploads.Service

	UploadHandler   *uploads.Handler
	AnalysisHandler *analyses.Handler
	GeminiHandler   *gemini.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, staticDir, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Analyzer: analyzer,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		UploadHandler:   app.UploadHandler,
		AnalysisHandler: app.AnalysisHandler,
		GeminiHandler:   app.GeminiHandler,
		StaticDir:       staticDir,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

// buildStore returns the object store plus the directory to serve statically,
// empty unless the store is local.
func buildStore(ctx context.Context, cfg config.Config) (object.Store, string, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, "", fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.AppBaseURL), cfg.LocalStoreDir, nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.MenteesRepo = &mentees.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		menteeRepo := mentees.NewMemoryRepo()
		resumeRepo := resumes.NewMemoryRepo()
		app.MenteesRepo = menteeRepo
		app.ResumesRepo = resumeRepo
		app.AnalysesRepo = analyses.NewMemoryRepo(resumeRepo, menteeRepo)
	}

	app.UploadService = uploads.NewService(app.Store, app.MenteesRepo, app.ResumesRepo, app.AnalysesRepo, app.Analyzer)
	app.UploadHandler = uploads.NewHandler(app.UploadService)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesRepo)
	app.GeminiHandler = gemini.NewHandler(app.Analyzer)
}

func buildAnalyzer(cfg config.Config) (gemini.Analyzer, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: GEMINI_API_KEY empty; analysis requests will fail until configured")
			return placeholderAnalyzer{}, nil
		}
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiAPIURL)
}

type placeholderAnalyzer struct{}

func (placeholderAnalyzer) Analyze(context.Context, gemini.Request) (gemini.Response, error) {
	return gemini.Response{}, errors.New("gemini client not configured")
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
