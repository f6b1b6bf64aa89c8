// File: internal/donation/repository.go
package donation

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"

	"donation_backend/internal/common"
)

const donationsCollection = "donations"

// Repository defines the interface for the append-only donation log.
type Repository interface {
	Add(ctx context.Context, d *Donation) (string, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*Donation, error)
	List(ctx context.Context, offset, limit int) ([]Donation, error)
	Count(ctx context.Context) (int64, error)
}

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore-backed donation repository.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) donations() *firestore.CollectionRef {
	return r.client.Collection(donationsCollection)
}

// Add appends a donation record and returns the generated document ID.
func (r *firestoreRepository) Add(ctx context.Context, d *Donation) (string, error) {
	ref, _, err := r.donations().Add(ctx, d)
	if err != nil {
		return "", fmt.Errorf("failed to add donation document: %w", err)
	}
	return ref.ID, nil
}

// FindByPaymentID looks up a donation record by its gateway payment
// reference. Returns common.ErrNotFound when no record exists.
func (r *firestoreRepository) FindByPaymentID(ctx context.Context, paymentID string) (*Donation, error) {
	iter := r.donations().Where("paymentId", "==", paymentID).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, common.ErrNotFound.WithDetails("No donation record exists for this payment.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query donations by payment ID: %w", err)
	}

	var d Donation
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode donation document: %w", err)
	}
	return &d, nil
}

// List returns donation records in date-descending order.
func (r *firestoreRepository) List(ctx context.Context, offset, limit int) ([]Donation, error) {
	iter := r.donations().
		OrderBy("date", firestore.Desc).
		Offset(offset).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var results []Donation
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list donation documents: %w", err)
		}
		var d Donation
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode donation document: %w", err)
		}
		results = append(results, d)
	}
	return results, nil
}

// Count returns the total number of donation records using a server-side
// aggregation so the collection is never paged through client-side.
func (r *firestoreRepository) Count(ctx context.Context) (int64, error) {
	result, err := r.donations().NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count donation documents: %w", err)
	}
	value, ok := result["total"]
	if !ok {
		return 0, fmt.Errorf("count aggregation returned no total")
	}
	countValue, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count aggregation returned unexpected type %T", value)
	}
	return countValue.GetIntegerValue(), nil
}
