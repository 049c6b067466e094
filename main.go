package main

import (
	"context"
	"flag"
	"time"

	"campuseventhub-backend/config"
	"campuseventhub-backend/events"
	"campuseventhub-backend/handler"
	"campuseventhub-backend/log"
	"campuseventhub-backend/registration"
	"campuseventhub-backend/store"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	flag.Parse()
	log.EnsureLogger()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Logger.Fatal("failed connecting to database", zap.Error(err))
	}

	events.Init(cfg.AMQPURI)

	s := store.NewMongo(client, cfg.DatabaseName)
	svc := registration.NewService(s)

	r := handler.NewRouter(cfg.JWTKey, s, svc)

	log.Logger.Info("Listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Logger.Fatal("server exited", zap.Error(err))
	}
}
