package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreypavlenko/matchengine/internal/config"
	"github.com/andreypavlenko/matchengine/internal/platform/embedding"
	"github.com/andreypavlenko/matchengine/internal/platform/geocache"
	"github.com/andreypavlenko/matchengine/internal/platform/geogateway"
	"github.com/andreypavlenko/matchengine/internal/platform/geoprovider"
	"github.com/andreypavlenko/matchengine/internal/platform/geoprovider/geoprovidertest"
	"github.com/andreypavlenko/matchengine/internal/platform/logger"
	"github.com/andreypavlenko/matchengine/internal/platform/matrixstore"
	"github.com/andreypavlenko/matchengine/internal/platform/redis"
	"github.com/andreypavlenko/matchengine/internal/platform/sentryx"
	"github.com/andreypavlenko/matchengine/internal/platform/transporthttp"
	"github.com/andreypavlenko/matchengine/modules/engine"
	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/andreypavlenko/matchengine/modules/scoring"
	"github.com/andreypavlenko/matchengine/modules/transportfilter"
	"github.com/andreypavlenko/matchengine/modules/weights"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting match engine",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	if err := sentryx.Init(cfg.Sentry.DSN, cfg.Sentry.Environment); err != nil {
		zapLogger.Warn("Sentry initialization failed, panics will only be logged", zap.Error(err))
	}

	ctx := context.Background()

	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			zapLogger.Warn("Failed to connect to Redis, geo cache will run L1-only", zap.Error(err))
		} else {
			defer redisClient.Close()
			zapLogger.Info("Connected to Redis")
		}
	}

	var redisForCache *goredis.Client
	if redisClient != nil {
		redisForCache = redisClient.Client
	}
	cache := geocache.New(redisForCache, cfg.Cache.GeocodeTTL, cfg.Cache.RouteTTL)

	var geo transportfilter.Geocoder
	if cfg.Geo.ClientID != "" && cfg.Geo.ClientSecret != "" && cfg.Geo.TokenURL != "" {
		provider, err := geoprovider.New(ctx, geoprovider.Config{
			BaseURL:      cfg.Geo.BaseURL,
			ClientID:     cfg.Geo.ClientID,
			ClientSecret: cfg.Geo.ClientSecret,
			TokenURL:     cfg.Geo.TokenURL,
		})
		if err != nil {
			zapLogger.Fatal("Failed to initialize geo provider", zap.Error(err))
		}
		gw := geogateway.New(provider, cache, cfg.Geo.RPS, cfg.Geo.DailyQuota)
		geo = gw
		zapLogger.Info("Geo provider configured against production routing service")
	} else {
		zapLogger.Warn("GEO_PROVIDER_CLIENT_ID/SECRET/TOKEN_URL not set, using deterministic fake geo provider")
		fake := &geoprovidertest.Fake{}
		geo = geogateway.New(fake, cache, cfg.Geo.RPS, cfg.Geo.DailyQuota)
	}

	matrixS3 := matrixstore.New(matrixstore.S3Config{
		Endpoint:  cfg.Matrix.S3Endpoint,
		Region:    cfg.Matrix.S3Region,
		AccessKey: cfg.Matrix.S3AccessKey,
		SecretKey: cfg.Matrix.S3SecretKey,
	})

	reg, err := loadWeights(ctx, matrixS3, cfg.Matrix.Path, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to load weight matrices", zap.Error(err))
	}

	synonyms, err := loadSynonyms(ctx, matrixS3, cfg.Matrix.SynonymsPath, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to load synonym table", zap.Error(err))
	}

	embeddingProvider, enabled := embedding.New(cfg.Anthropic.APIKey)
	if enabled {
		zapLogger.Info("Title-embedding bonus enabled")
	} else {
		zapLogger.Info("ANTHROPIC_API_KEY not set, title-embedding bonus disabled")
	}

	scorers := scoring.NewRegistry(scoring.Deps{
		TransportFilter: transportFilterAdapter(geo),
		HierarchyOf:     engine.HierarchyAdapter,
		Synonyms:        synonyms,
		Embedding:       embeddingProvider,
	})

	engCfg := engine.DefaultConfig()
	engCfg.DeadlineTotal = time.Duration(cfg.Engine.DeadlineMSTotal) * time.Millisecond
	engCfg.DeadlinePerScorer = time.Duration(cfg.Engine.DeadlineMSPerScorer) * time.Millisecond
	engCfg.ConcurrencyLimit = cfg.Engine.ConcurrencyLimit
	engCfg.HardGateMode = cfg.Engine.HardGateDefault

	eng := engine.New(engCfg, scorers, reg, zapLogger.Logger, sentryx.CaptureScorerPanic)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(sentryx.GinMiddleware())
	router.Use(transporthttp.MatchIDMiddleware())
	router.Use(transporthttp.LoggerMiddleware(zapLogger))
	router.Use(transporthttp.CORSMiddleware())

	handler := transporthttp.NewHandler(eng.Match)
	router.GET("/healthz", handler.Healthz)
	v1 := router.Group("/v1")
	{
		v1.POST("/match", handler.PostMatch)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

// loadWeights resolves the matrix config path (local or s3://) and
// parses it; an unreadable path falls back to the compiled-in
// defaults rather than failing startup, since those defaults are
// already a complete, validated matrix set.
func loadWeights(ctx context.Context, store *matrixstore.Store, path string, log *logger.Logger) (*weights.Registry, error) {
	raw, err := store.Load(ctx, path)
	if err != nil {
		log.Warn("Could not load matrix config, using compiled-in defaults", zap.String("path", path), zap.Error(err))
		return weights.NewRegistry()
	}
	return weights.LoadFromBytes(raw)
}

// loadSynonyms resolves the synonym config path the same way loadWeights does.
func loadSynonyms(ctx context.Context, store *matrixstore.Store, path string, log *logger.Logger) (scoring.SynonymTable, error) {
	raw, err := store.Load(ctx, path)
	if err != nil {
		log.Warn("Could not load synonym config, using compiled-in defaults", zap.String("path", path), zap.Error(err))
		return scoring.DefaultSynonyms(), nil
	}
	return scoring.LoadSynonymsFromBytes(raw)
}

// transportFilterAdapter binds modules/transportfilter.Evaluate to
// scoring.Deps.TransportFilter, translating between transportfilter's
// own Result type and scoring's narrower TransportFilterResult.
func transportFilterAdapter(geo transportfilter.Geocoder) scoring.TransportFilterFunc {
	return func(ctx context.Context, c *matching.CandidateProfile, j *matching.JobPosting) scoring.TransportFilterResult {
		res := transportfilter.Evaluate(ctx, geo, c.HomeAddress, c.TransportModes, c.MaxTravelTimeMin, j.Location)
		return scoring.TransportFilterResult{
			Feasible:         res.Feasible,
			LocationSubScore: res.LocationSubScore,
			Reason:           res.Reason,
		}
	}
}
