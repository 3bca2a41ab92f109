package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ddfriends/places/internal/core/domain"
	"github.com/ddfriends/places/internal/core/usecases"
)

// --- Mock Verifier ---

type mockVerifier struct {
	verifyFn func(ctx context.Context, userID, sessionKey string) error
}

func (m *mockVerifier) Verify(ctx context.Context, userID, sessionKey string) error {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, userID, sessionKey)
	}
	return nil
}

func validWrite() *usecases.WriteRequest {
	return &usecases.WriteRequest{
		Verification: &domain.Credentials{UserID: "42", SessionKey: "abc"},
		Location: &domain.LocationInput{
			Name:        "Studentencafé Ascii",
			Description: "Gemütliches Café in der Fak. Informatik der TU Dresden.",
			Address:     "Nöthnitzer Str. 46, 01187 Dresden",
			Tags:        []string{"calm", "inexpensive"},
			Categories:  []string{"Cafe"},
		},
	}
}

// --- Create ---

func TestMutationService_Create_OwnerFromVerifiedIdentity(t *testing.T) {
	repo := &mockLocationRepo{
		createFn: func(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
			if loc.UserID != "42" {
				t.Errorf("expected owner forced to verified identity, got %q", loc.UserID)
			}
			loc.ID = 1
			return loc, nil
		},
	}

	svc := usecases.NewMutationService(repo, &mockVerifier{}, nil, nil)
	loc, err := svc.Create(context.Background(), validWrite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.ID != 1 {
		t.Errorf("expected server-assigned id, got %d", loc.ID)
	}
	if len(loc.Tags) != 2 || len(loc.Categories) != 1 {
		t.Errorf("labels not carried through: %+v", loc)
	}
}

func TestMutationService_Create_RejectsIDInBody(t *testing.T) {
	verifierCalled := false
	svc := usecases.NewMutationService(&mockLocationRepo{}, &mockVerifier{
		verifyFn: func(ctx context.Context, userID, sessionKey string) error {
			verifierCalled = true
			return nil
		},
	}, nil, nil)

	req := validWrite()
	id := int64(99)
	req.Location.ID = &id

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, domain.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
	if verifierCalled {
		t.Error("verifier must not be called for a malformed payload")
	}
}

func TestMutationService_Create_MissingBlocks(t *testing.T) {
	svc := usecases.NewMutationService(&mockLocationRepo{}, &mockVerifier{}, nil, nil)

	_, err := svc.Create(context.Background(), &usecases.WriteRequest{
		Location: &domain.LocationInput{Name: "x"},
	})
	if !errors.Is(err, domain.ErrMalformedPayload) {
		t.Errorf("missing verification block: expected ErrMalformedPayload, got %v", err)
	}

	_, err = svc.Create(context.Background(), &usecases.WriteRequest{
		Verification: &domain.Credentials{UserID: "42", SessionKey: "abc"},
	})
	if !errors.Is(err, domain.ErrMalformedPayload) {
		t.Errorf("missing location block: expected ErrMalformedPayload, got %v", err)
	}
}

func TestMutationService_Create_VerificationFailurePropagates(t *testing.T) {
	repoCalled := false
	repo := &mockLocationRepo{
		createFn: func(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
			repoCalled = true
			return loc, nil
		},
	}

	for _, sentinel := range []error{
		domain.ErrMissingUserID,
		domain.ErrMissingSessionKey,
		domain.ErrCredentialsRejected,
		domain.ErrVerifierUnavailable,
	} {
		svc := usecases.NewMutationService(repo, &mockVerifier{
			verifyFn: func(ctx context.Context, userID, sessionKey string) error {
				return sentinel
			},
		}, nil, nil)

		_, err := svc.Create(context.Background(), validWrite())
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v to propagate, got %v", sentinel, err)
		}
	}
	if repoCalled {
		t.Error("store must not be touched when verification fails")
	}
}

func TestMutationService_Create_DuplicateSurfaces(t *testing.T) {
	repo := &mockLocationRepo{
		createFn: func(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
			return nil, domain.ErrDuplicateLocation
		},
	}

	svc := usecases.NewMutationService(repo, &mockVerifier{}, nil, nil)
	_, err := svc.Create(context.Background(), validWrite())
	if !errors.Is(err, domain.ErrDuplicateLocation) {
		t.Fatalf("expected ErrDuplicateLocation, got %v", err)
	}
}

// --- Edit ---

func TestMutationService_Edit_OwnerMismatchIsCredentialsFailure(t *testing.T) {
	updateCalled := false
	repo := &mockLocationRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Location, error) {
			return &domain.Location{ID: id, Name: "Turtle Bay Dresden", UserID: "7"}, nil
		},
		updateFn: func(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
			updateCalled = true
			return loc, nil
		},
	}

	svc := usecases.NewMutationService(repo, &mockVerifier{}, nil, nil)
	_, err := svc.Edit(context.Background(), 2, validWrite()) // verified as "42", owned by "7"
	if !errors.Is(err, domain.ErrCredentialsRejected) {
		t.Fatalf("expected ErrCredentialsRejected, got %v", err)
	}
	if updateCalled {
		t.Error("record must stay unchanged on owner mismatch")
	}
}

func TestMutationService_Edit_NotFound(t *testing.T) {
	repo := &mockLocationRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Location, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := usecases.NewMutationService(repo, &mockVerifier{}, nil, nil)
	_, err := svc.Edit(context.Background(), 404, validWrite())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMutationService_Edit_RejectsIDInBody(t *testing.T) {
	repo := &mockLocationRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Location, error) {
			return &domain.Location{ID: id, UserID: "42"}, nil
		},
	}

	svc := usecases.NewMutationService(repo, &mockVerifier{}, nil, nil)
	req := validWrite()
	id := int64(5)
	req.Location.ID = &id

	_, err := svc.Edit(context.Background(), 2, req)
	if !errors.Is(err, domain.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestMutationService_Edit_KeepsRouteIDAndOwner(t *testing.T) {
	repo := &mockLocationRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Location, error) {
			return &domain.Location{ID: id, Name: "Old name", UserID: "42"}, nil
		},
		updateFn: func(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
			if loc.ID != 2 {
				t.Errorf("expected route id 2, got %d", loc.ID)
			}
			if loc.UserID != "42" {
				t.Errorf("owner must stay %q, got %q", "42", loc.UserID)
			}
			return loc, nil
		},
	}

	svc := usecases.NewMutationService(repo, &mockVerifier{}, nil, nil)
	loc, err := svc.Edit(context.Background(), 2, validWrite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "Studentencafé Ascii" {
		t.Errorf("scalar fields not applied: %q", loc.Name)
	}
}

func TestMutationService_Edit_NilLabelsLeaveAssociations(t *testing.T) {
	repo := &mockLocationRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Location, error) {
			return &domain.Location{ID: id, UserID: "42"}, nil
		},
		updateFn: func(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
			if loc.Tags != nil || loc.Categories != nil {
				t.Errorf("unsupplied labels must stay nil, got %+v / %+v", loc.Tags, loc.Categories)
			}
			return loc, nil
		},
	}

	svc := usecases.NewMutationService(repo, &mockVerifier{}, nil, nil)
	req := validWrite()
	req.Location.Tags = nil
	req.Location.Categories = nil

	if _, err := svc.Edit(context.Background(), 2, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
