// File: internal/profile/repository.go
package profile

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"donation_backend/internal/common"
)

const usersCollection = "users"

// Repository defines the interface for profile document operations.
type Repository interface {
	Get(ctx context.Context, uid string) (*Profile, error)
	Set(ctx context.Context, uid string, p *Profile) error
}

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore-backed profile repository.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

// Get reads the profile document keyed by the user's UID.
// Returns common.ErrNotFound when no document exists.
func (r *firestoreRepository) Get(ctx context.Context, uid string) (*Profile, error) {
	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails("No profile exists for this user.")
		}
		return nil, fmt.Errorf("failed to read profile document: %w", err)
	}

	var p Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile document: %w", err)
	}
	return &p, nil
}

// Set overwrites the whole profile document. The store supports partial
// patches, but the update flow writes the full in-memory form back;
// last writer wins.
func (r *firestoreRepository) Set(ctx context.Context, uid string, p *Profile) error {
	if _, err := r.client.Collection(usersCollection).Doc(uid).Set(ctx, p); err != nil {
		return fmt.Errorf("failed to write profile document: %w", err)
	}
	return nil
}
