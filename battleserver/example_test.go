package battleserver_test

import (
	"context"
	"net/http"
	"time"

	"github.com/AmirRezaM75/algobattle/battleserver"
)

// ExampleNewBattleServer shows how to wire the server by hand instead of
// reading the environment.
func ExampleNewBattleServer() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := battleserver.Config{
		Context:            ctx,
		Address:            ":8080",
		DispatchBufferSize: 500,
		Battle: battleserver.BattleConfig{
			StrategyTimeout:   5 * time.Second,
			CorrectnessWeight: 0.5,
			TimeWeight:        0.3,
			MemoryWeight:      0.2,
		},
		Rooms: battleserver.RoomsConfig{
			MaxAge:        24 * time.Hour,
			SweepInterval: 10 * time.Minute,
		},
		Publisher: battleserver.PublisherConfig{
			Redis: battleserver.RedisConfig{
				Host:    "localhost",
				Port:    "6379",
				Channel: "battle-service",
			},
		},
		Router: battleserver.RouterConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	server, err := battleserver.NewBattleServer(config)
	if err != nil {
		panic(err)
	}
	defer server.Shutdown()

	go server.Run()

	_ = http.ListenAndServe(config.Address, server.GetRouter())
}
