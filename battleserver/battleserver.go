package battleserver

import (
	"context"
	"fmt"
	"time"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/entities"
	"github.com/AmirRezaM75/algobattle/handlers"
	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"github.com/AmirRezaM75/algobattle/services"
	"github.com/AmirRezaM75/algobattle/storage/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

var _ services.ResultRepository = (*sqlite.Store)(nil)

// BattleServer encapsulates all battle server functionality
type BattleServer struct {
	router        *chi.Mux
	hub           *entities.Hub
	roomService   services.RoomService
	battleService *services.BattleService
	store         *sqlite.Store
	publisher     *services.PublisherService
	sweepInterval time.Duration
}

// NewBattleServer wires the battle server. The caller owns the logger and
// must call Run to start the hub.
func NewBattleServer(config Config) (*BattleServer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}

	hub := entities.NewHub(ctx, config.DispatchBufferSize)

	var publisher *services.PublisherService

	if config.Publisher.Redis.Host != "" {
		publisherService := services.NewPublisherService(
			config.Publisher.Redis.Host,
			config.Publisher.Redis.Port,
			config.Publisher.Redis.Password,
			config.Publisher.Redis.Channel,
		)
		publisher = &publisherService
	}

	var (
		store      *sqlite.Store
		repository services.ResultRepository
	)

	if config.Storage.SQLitePath != "" {
		opened, err := sqlite.Open(config.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = opened
		repository = store
	}

	notifier := services.NewEventBus(hub, publisher)
	registry := algorithms.NewDefaultRegistry()

	battleService := services.NewBattleService(
		config.Battle.Weights(),
		config.Battle.StrategyTimeout,
		notifier,
		repository,
	)

	roomService := services.NewRoomService(
		hub,
		registry,
		battleService,
		notifier,
		repository,
		services.NewInputGenerator(time.Now().UnixNano()),
		config.Rooms.MaxAge,
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.Router.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers.NewAlgorithmHandler(router, registry)
	handlers.NewRoomHandler(router, roomService)
	handlers.NewStreamHandler(router, hub, roomService, config.Router.AllowedOrigins)

	return &BattleServer{
		router:        router,
		hub:           hub,
		roomService:   roomService,
		battleService: battleService,
		store:         store,
		publisher:     publisher,
		sweepInterval: config.Rooms.SweepInterval,
	}, nil
}

// GetRouter returns the configured router
func (bs *BattleServer) GetRouter() *chi.Mux {
	return bs.router
}

// GetHub returns the hub instance
func (bs *BattleServer) GetHub() *entities.Hub {
	return bs.hub
}

// Run dispatches events until the configured context is cancelled.
func (bs *BattleServer) Run() {
	bs.hub.Run()
}

// RunSweeper removes expired rooms until ctx is done.
func (bs *BattleServer) RunSweeper(ctx context.Context) error {
	return bs.roomService.RunSweeper(ctx, bs.sweepInterval)
}

// Shutdown waits for running battles, then releases the store and the
// publisher. Cancel the configured context first so battles stop early.
func (bs *BattleServer) Shutdown() {
	bs.battleService.Wait()

	if bs.store != nil {
		if err := bs.store.Close(); err != nil {
			logx.Logger.Error(err.Error(), zap.String("desc", "could not close store"))
		}
	}

	if bs.publisher != nil {
		if err := bs.publisher.Close(); err != nil {
			logx.Logger.Error(err.Error(), zap.String("desc", "could not close publisher"))
		}
	}
}
