package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/ParthJhaveri10/Lumeo/cache"
	"github.com/ParthJhaveri10/Lumeo/catalog"
	"github.com/ParthJhaveri10/Lumeo/config"
	"github.com/ParthJhaveri10/Lumeo/logger"
)

// CORS header values attached to every response. The proxy exists so
// that browser apps on other origins can use it, hence the permissive
// set.
const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	corsAllowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version"
)

// corsMiddleware attaches the CORS header set to every response and
// short-circuits preflight requests with an empty 200.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", corsAllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter wires the proxy and catalog routes onto a mux router.
// The returned handler carries the CORS middleware on every path,
// matched or not, so preflight always succeeds.
func NewRouter(cfg *config.Config, client *catalog.Client) (http.Handler, error) {
	proxy, err := NewProxyHandler(cfg.UpstreamBaseURL, cfg.ProxyPrefix)
	if err != nil {
		return nil, err
	}
	catalogHandler := NewCatalogHandler(client)

	router := mux.NewRouter()

	// Transparent passthrough: anything under the prefix goes to the
	// upstream catalog as-is.
	router.PathPrefix(cfg.ProxyPrefix).Handler(proxy)

	router.HandleFunc("/api/search", catalogHandler.HandleSearch).Methods(http.MethodGet)
	router.HandleFunc("/api/search/songs", catalogHandler.HandleSearchSongs).Methods(http.MethodGet)
	router.HandleFunc("/api/search/albums", catalogHandler.HandleSearchAlbums).Methods(http.MethodGet)
	router.HandleFunc("/api/search/artists", catalogHandler.HandleSearchArtists).Methods(http.MethodGet)
	router.HandleFunc("/api/search/playlists", catalogHandler.HandleSearchPlaylists).Methods(http.MethodGet)

	router.HandleFunc("/api/songs", catalogHandler.HandleGetSongs).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", catalogHandler.HandleGetSong).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}/suggestions", catalogHandler.HandleSongSuggestions).Methods(http.MethodGet)

	router.HandleFunc("/api/albums", catalogHandler.HandleGetAlbum).Methods(http.MethodGet)

	router.HandleFunc("/api/artists", catalogHandler.HandleGetArtist).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{id}", catalogHandler.HandleGetArtistByID).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{id}/songs", catalogHandler.HandleArtistSongs).Methods(http.MethodGet)
	router.HandleFunc("/api/artists/{id}/albums", catalogHandler.HandleArtistAlbums).Methods(http.MethodGet)

	router.HandleFunc("/api/playlists", catalogHandler.HandleGetPlaylist).Methods(http.MethodGet)

	return corsMiddleware(router), nil
}

// Start initializes dependencies and runs the HTTP server until
// interrupted.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogOutputPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	// The response cache is optional: without Redis every catalog
	// call just goes upstream.
	var store catalog.Store
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, running without response cache", logger.ErrorField(err))
	} else {
		defer cache.CloseRedis()
		store = cache.NewCatalogCache(cache.RedisClient, cfg.CacheTTL)
	}

	client := catalog.FromAppConfig(cfg, store)

	router, err := NewRouter(cfg, client)
	if err != nil {
		logger.Fatal("failed to build router", logger.ErrorField(err))
	}

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			logger.String("addr", cfg.ServerAddr),
			logger.String("upstream", cfg.UpstreamBaseURL),
			logger.String("proxyPrefix", cfg.ProxyPrefix),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}
