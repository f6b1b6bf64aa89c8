// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"donation_backend/internal/app"
	"donation_backend/internal/auth"
	"donation_backend/internal/config"
	"donation_backend/internal/donation"
	"donation_backend/internal/firebase"
	"donation_backend/internal/jobs"
	"donation_backend/internal/profile"
	"donation_backend/internal/shared"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,

		// Firebase Platform Services
		provideFirebaseService,
		provideFirestoreClient,
		firebase.NewIdentityClient,
		wire.Bind(new(shared.IdentityService), new(*firebase.IdentityClient)),

		// Auth Module
		auth.NewService,
		auth.NewHandler,

		// Profile Module
		profile.NewFirestoreRepository,
		profile.NewService,
		profile.NewHandler,

		// Donation Module
		donation.NewFirestoreRepository,
		donation.NewRazorpayGateway,
		donation.NewService,
		donation.NewHandler,
		donation.NewWebhookHandler,

		// Jobs
		jobs.NewReconcileJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
