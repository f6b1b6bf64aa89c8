// File: cmd/server/providers.go
package main

import (
	"log"

	"donation_backend/internal/config"
	"donation_backend/internal/firebase"
	"donation_backend/internal/platform/logger"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
)

// provideLogger builds the zap logger and a cleanup that flushes it.
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	zapLogger, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := zapLogger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}
	return zapLogger, cleanup, nil
}

// provideFirebaseService builds the Firebase platform service and a cleanup
// that releases its Firestore connection.
func provideFirebaseService(cfg *config.Config, zapLogger *zap.Logger) (*firebase.Service, func(), error) {
	service, err := firebase.NewService(cfg, zapLogger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := service.Close(); err != nil {
			zapLogger.Error("Failed to close Firebase service during cleanup", zap.Error(err))
		}
	}
	return service, cleanup, nil
}

func provideFirestoreClient(service *firebase.Service) *firestore.Client {
	return service.Firestore()
}
