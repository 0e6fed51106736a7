package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

func userFixture(seed ...*domain.User) (*stubUserRepo, *stubCardRepo, *UserService) {
	users := newStubUserRepo(seed...)
	cardRepo := newStubCardRepo()
	cards := NewCardService(users, cardRepo, zerolog.Nop())
	svc := NewUserService(users, cards, zerolog.Nop())
	return users, cardRepo, svc
}

func TestUserUpdateArtistProfileSyncsCard(t *testing.T) {
	artist := newTestArtist(testArtistID)
	users, cardRepo, svc := userFixture(artist)

	// Give the artist a card so the post-update sync has a target.
	cards := NewCardService(users, cardRepo, zerolog.Nop())
	if _, err := cards.CreateForArtist(context.Background(), artist); err != nil {
		t.Fatalf("CreateForArtist: %v", err)
	}

	bio := "now also doing gouache"
	available := false
	updated, err := svc.UpdateArtistProfile(context.Background(), testArtistID, ports.ArtistProfileUpdate{
		Bio:          &bio,
		Availability: &available,
	})
	if err != nil {
		t.Fatalf("UpdateArtistProfile: %v", err)
	}
	if updated.ArtistProfile.Bio != bio {
		t.Errorf("bio = %q, want %q", updated.ArtistProfile.Bio, bio)
	}
	if updated.ArtistProfile.Availability {
		t.Error("availability not updated")
	}
	// Untouched fields keep their values.
	if updated.ArtistProfile.TOS != "no refunds after sketch approval" {
		t.Errorf("tos = %q, clobbered by partial update", updated.ArtistProfile.TOS)
	}

	card := cardRepo.cards[artist.ArtistProfile.CardID]
	if card.Snapshot.Bio != bio {
		t.Errorf("card snapshot bio = %q, not re-synced", card.Snapshot.Bio)
	}
	if card.Snapshot.Availability {
		t.Error("card snapshot availability not re-synced")
	}
}

func TestUserUpdateArtistProfileRejectsNonArtist(t *testing.T) {
	users, _, svc := userFixture(newTestUser(testUserID))

	bio := "i paint sometimes"
	_, err := svc.UpdateArtistProfile(context.Background(), testUserID, ports.ArtistProfileUpdate{Bio: &bio})
	if !errors.Is(err, domain.ErrArtistNotFound) {
		t.Fatalf("err = %v, want ErrArtistNotFound", err)
	}
	if users.users[testUserID].ArtistProfile != nil {
		t.Error("profile appeared on a non-artist")
	}
}

func TestUserChangeRolePromote(t *testing.T) {
	users, cardRepo, svc := userFixture(newTestUser(testUserID))

	updated, err := svc.ChangeRole(context.Background(), testUserID, domain.RoleArtist)
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	if !updated.IsArtist() {
		t.Fatal("promotion did not attach an artist profile")
	}
	if updated.ArtistProfile.CardID == "" {
		t.Fatal("promotion did not create a card")
	}
	if _, ok := cardRepo.cards[updated.ArtistProfile.CardID]; !ok {
		t.Error("card id recorded but card not persisted")
	}
	if users.users[testUserID].Role != domain.RoleArtist {
		t.Error("role not persisted")
	}
}

func TestUserChangeRoleDemote(t *testing.T) {
	users, _, svc := userFixture(newTestArtist(testArtistID))

	updated, err := svc.ChangeRole(context.Background(), testArtistID, domain.RoleUser)
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	if updated.ArtistProfile != nil {
		t.Error("demotion kept the artist profile")
	}
	if users.users[testArtistID].Role != domain.RoleUser {
		t.Error("role not persisted")
	}
}

func TestUserChangeRoleNoop(t *testing.T) {
	users, cardRepo, svc := userFixture(newTestArtist(testArtistID))
	users.users[testArtistID].ArtistProfile.Rating = 4.2

	updated, err := svc.ChangeRole(context.Background(), testArtistID, domain.RoleArtist)
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	// Re-assigning the current role must not reset the profile.
	if updated.ArtistProfile.Rating != 4.2 {
		t.Errorf("rating = %v, profile was reset", updated.ArtistProfile.Rating)
	}
	if len(cardRepo.cards) != 0 {
		t.Error("no-op role change created a card")
	}
}

func TestUserChangeRoleInvalid(t *testing.T) {
	_, _, svc := userFixture(newTestUser(testUserID))

	_, err := svc.ChangeRole(context.Background(), testUserID, "moderator")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
