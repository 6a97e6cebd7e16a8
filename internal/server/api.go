// Package server wires the member and task services, the geocoding
// client and the message catalogs into one gin engine and serves it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"kyri56xcaesar/teamdash/internal/geo"
	"kyri56xcaesar/teamdash/internal/members"
	"kyri56xcaesar/teamdash/internal/schema"
	"kyri56xcaesar/teamdash/internal/store"
	"kyri56xcaesar/teamdash/internal/tasks"
	"kyri56xcaesar/teamdash/pkg/messages"
)

const (
	apiVersion = "/api/v1"

	membersKey = "members"
	tasksKey   = "tasks"
)

var (
	config Config
	engine *gin.Engine
)

// stores bundles the two collection backends behind their interfaces.
type stores struct {
	members store.Store[schema.Member]
	tasks   store.Store[schema.Task]
	cleanup func()
}

func initStores() (stores, error) {
	noop := func() {}

	switch strings.ToLower(config.StoreBackend) {
	case "memory":
		return stores{
			members: store.NewMemory[schema.Member](),
			tasks:   store.NewMemory[schema.Task](),
			cleanup: noop,
		}, nil

	case "file":
		return stores{
			members: store.NewFile[schema.Member](config.DataDir, membersKey),
			tasks:   store.NewFile[schema.Task](config.DataDir, tasksKey),
			cleanup: noop,
		}, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddress,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return stores{}, fmt.Errorf("failed to ping redis: %w", err)
		}

		return stores{
			members: store.NewRedis[schema.Member](rdb, membersKey),
			tasks:   store.NewRedis[schema.Task](rdb, tasksKey),
			cleanup: func() { rdb.Close() },
		}, nil

	case "postgres":
		pool, err := pgxpool.New(
			context.Background(),
			fmt.Sprintf(
				"postgres://%s:%s@%s/%s?sslmode=disable",
				config.DBUser,
				config.DBPassword,
				config.DBAddress,
				config.DBName,
			),
		)
		if err != nil {
			return stores{}, fmt.Errorf("could not connect to the database: %w", err)
		}
		if err := pool.Ping(context.Background()); err != nil {
			return stores{}, fmt.Errorf("failed to ping the db: %w", err)
		}

		ms, err := store.NewPostgres[schema.Member](context.Background(), pool, membersKey)
		if err != nil {
			return stores{}, err
		}
		ts, err := store.NewPostgres[schema.Task](context.Background(), pool, tasksKey)
		if err != nil {
			return stores{}, err
		}

		return stores{members: ms, tasks: ts, cleanup: pool.Close}, nil

	case "remote":
		// the mock REST service only owns the member collection;
		// tasks stay on local files
		return stores{
			members: store.NewRemoteMembers(config.RemoteBaseURL),
			tasks:   store.NewFile[schema.Task](config.DataDir, tasksKey),
			cleanup: noop,
		}, nil

	default:
		return stores{}, fmt.Errorf("unknown store backend: %s", config.StoreBackend)
	}
}

func setCors() {
	corsconfig := cors.DefaultConfig()
	corsconfig.AllowOrigins = config.AllowedOrigins
	corsconfig.AllowMethods = config.AllowedMethods
	corsconfig.AllowHeaders = config.AllowedHeaders
	engine.Use(cors.New(corsconfig))
}

func setRoutes(membersSvc *members.Service, tasksSvc *tasks.Service, geoClient *geo.Client, msgs *messages.Catalog) {
	root := engine.Group("/")
	{
		root.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "alive"})
		})
	}

	mh := members.NewHandler(membersSvc, msgs, config.DefaultLang)
	th := tasks.NewHandler(tasksSvc, msgs, config.DefaultLang)

	api := engine.Group(apiVersion)
	{
		api.GET("/members", mh.List)
		api.GET("/members/:id", mh.Get)
		api.POST("/members", mh.Create)
		api.PUT("/members/:id", mh.Update)
		api.DELETE("/members/:id", mh.Delete)

		api.GET("/tasks", th.List)
		api.GET("/tasks/:id", th.Get)
		api.POST("/tasks", th.Create)
		api.PUT("/tasks/:id", th.Update)
		api.DELETE("/tasks/:id", th.Delete)

		api.GET("/geo/search", handleGeoSearch(geoClient))
		api.GET("/geo/reverse", handleGeoReverse(geoClient))

		api.GET("/stats", handleStats(membersSvc, tasksSvc))
	}
}

func InitAndServe(confPath string) {
	config = loadConfig(confPath)

	engine = gin.Default()
	setGinMode(config.ApiGinMode)

	setCors()

	st, err := initStores()
	if err != nil {
		log.Fatalf("failed to initialize the stores: %v", err)
	}

	msgs := messages.NewCatalog(config.MessagesDir, config.DefaultLang)
	membersSvc := members.NewService(st.members)
	tasksSvc := tasks.NewService(st.tasks, st.members)
	geoClient := geo.NewClient(config.GeoBaseURL)

	setRoutes(membersSvc, tasksSvc, geoClient, msgs)

	// serve http
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           engine,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-ctx.Done()

	stop()
	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// release the store backends
	st.cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

func setGinMode(mode string) {
	switch strings.ToLower(mode) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "envgin":
		gin.SetMode(gin.EnvGinMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
