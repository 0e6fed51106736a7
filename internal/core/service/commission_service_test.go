package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

func validCommissionInput() ports.CreateCommissionInput {
	return ports.CreateCommissionInput{
		ArtistID: testArtistID,
		UserID:   testUserID,
		Title:    testTitle,
		Details:  testDetails,
		Price:    40,
	}
}

func TestCommissionCreate(t *testing.T) {
	users := newStubUserRepo(newTestArtist(testArtistID), newTestUser(testUserID))
	commissions := newStubCommissionRepo()
	svc := NewCommissionService(users, commissions, zerolog.Nop())

	created, err := svc.Create(context.Background(), validCommissionInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != domain.StatusPending {
		t.Errorf("status = %q, want %q", created.Status, domain.StatusPending)
	}
	if created.ProgressUpdates == nil || len(created.ProgressUpdates) != 0 {
		t.Errorf("progress updates = %v, want empty slice", created.ProgressUpdates)
	}
	if created.DateCreated.IsZero() {
		t.Error("date created not set")
	}

	artist := users.users[testArtistID]
	if len(artist.ArtistProfile.CreatedCommissions) != 1 || artist.ArtistProfile.CreatedCommissions[0] != created.ID {
		t.Errorf("artist created_commissions = %v, want [%s]", artist.ArtistProfile.CreatedCommissions, created.ID)
	}
	user := users.users[testUserID]
	if len(user.RequestedCommissions) != 1 || user.RequestedCommissions[0] != created.ID {
		t.Errorf("user requested_commissions = %v, want [%s]", user.RequestedCommissions, created.ID)
	}
}

func TestCommissionCreateValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ports.CreateCommissionInput)
	}{
		{"malformed artist id", func(in *ports.CreateCommissionInput) { in.ArtistID = "not-an-id" }},
		{"empty user id", func(in *ports.CreateCommissionInput) { in.UserID = "" }},
		{"title too short", func(in *ports.CreateCommissionInput) { in.Title = "cat" }},
		{"details too short", func(in *ports.CreateCommissionInput) { in.Details = "draw a cat" }},
		{"price below minimum", func(in *ports.CreateCommissionInput) { in.Price = 2.99 }},
		{"price above maximum", func(in *ports.CreateCommissionInput) { in.Price = 150.01 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newStubUserRepo(newTestArtist(testArtistID), newTestUser(testUserID))
			commissions := newStubCommissionRepo()
			svc := NewCommissionService(users, commissions, zerolog.Nop())

			input := validCommissionInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if len(commissions.commissions) != 0 {
				t.Errorf("commission was written despite rejected input")
			}
		})
	}
}

func TestCommissionCreateArtistNotFound(t *testing.T) {
	// testOtherID exists but is a plain user, not an artist.
	users := newStubUserRepo(newTestUser(testUserID), newTestUser(testOtherID))
	commissions := newStubCommissionRepo()
	svc := NewCommissionService(users, commissions, zerolog.Nop())

	input := validCommissionInput()
	input.ArtistID = testOtherID

	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, domain.ErrArtistNotFound) {
		t.Fatalf("err = %v, want ErrArtistNotFound", err)
	}
	if len(commissions.commissions) != 0 {
		t.Error("commission was written despite missing artist")
	}
}

func TestCommissionCreateAppendFailureKeepsCommission(t *testing.T) {
	users := newStubUserRepo(newTestArtist(testArtistID), newTestUser(testUserID))
	users.failAppendCreated = true
	commissions := newStubCommissionRepo()
	svc := NewCommissionService(users, commissions, zerolog.Nop())

	_, err := svc.Create(context.Background(), validCommissionInput())
	var wc *domain.WriteConflictError
	if !errors.As(err, &wc) {
		t.Fatalf("err = %v, want WriteConflictError", err)
	}
	// The commission row is already committed: no rollback on a failed
	// cross-reference append.
	if len(commissions.commissions) != 1 {
		t.Errorf("commissions in store = %d, want 1 (committed without rollback)", len(commissions.commissions))
	}
}

func TestCommissionUpdateStatus(t *testing.T) {
	users := newStubUserRepo(newTestArtist(testArtistID), newTestUser(testUserID))
	commissions := newStubCommissionRepo()
	seeded := commissions.seed(&domain.Commission{
		ArtistID: testArtistID,
		UserID:   testUserID,
		Status:   domain.StatusPending,
	})
	svc := NewCommissionService(users, commissions, zerolog.Nop())

	updated, err := svc.UpdateStatus(context.Background(), seeded.ID, domain.StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.StatusInProgress {
		t.Errorf("status = %q, want %q", updated.Status, domain.StatusInProgress)
	}
}

func TestCommissionUpdateStatusTerminal(t *testing.T) {
	users := newStubUserRepo(newTestArtist(testArtistID), newTestUser(testUserID))
	commissions := newStubCommissionRepo()
	seeded := commissions.seed(&domain.Commission{
		ArtistID: testArtistID,
		UserID:   testUserID,
		Status:   domain.StatusCompleted,
	})
	svc := NewCommissionService(users, commissions, zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), seeded.ID, domain.StatusCancelled)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if commissions.commissions[seeded.ID].Status != domain.StatusCompleted {
		t.Error("terminal status was overwritten")
	}
}

func TestCommissionAddProgressUpdate(t *testing.T) {
	users := newStubUserRepo(newTestArtist(testArtistID), newTestUser(testUserID))
	commissions := newStubCommissionRepo()
	seeded := commissions.seed(&domain.Commission{
		ArtistID: testArtistID,
		UserID:   testUserID,
		Status:   domain.StatusInProgress,
	})
	svc := NewCommissionService(users, commissions, zerolog.Nop())

	updated, err := svc.AddProgressUpdate(context.Background(), seeded.ID, "lineart done")
	if err != nil {
		t.Fatalf("AddProgressUpdate: %v", err)
	}
	if len(updated.ProgressUpdates) != 1 {
		t.Fatalf("progress updates = %d, want 1", len(updated.ProgressUpdates))
	}
	if updated.ProgressUpdates[0].Message != "lineart done" {
		t.Errorf("message = %q, want %q", updated.ProgressUpdates[0].Message, "lineart done")
	}
	if updated.ProgressUpdates[0].Date.IsZero() {
		t.Error("progress update date not set")
	}
}

func TestCommissionAddProgressUpdateTerminal(t *testing.T) {
	for _, status := range []domain.CommissionStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			users := newStubUserRepo(newTestArtist(testArtistID), newTestUser(testUserID))
			commissions := newStubCommissionRepo()
			seeded := commissions.seed(&domain.Commission{
				ArtistID: testArtistID,
				UserID:   testUserID,
				Status:   status,
			})
			svc := NewCommissionService(users, commissions, zerolog.Nop())

			_, err := svc.AddProgressUpdate(context.Background(), seeded.ID, "one more thing")
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
		})
	}
}
