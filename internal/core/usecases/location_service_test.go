package usecases_test

import (
	"context"
	"testing"

	"github.com/ddfriends/places/internal/core/domain"
	"github.com/ddfriends/places/internal/core/ports"
	"github.com/ddfriends/places/internal/core/usecases"
)

// --- Mock LocationRepository ---

type mockLocationRepo struct {
	findFn    func(ctx context.Context, filter ports.LocationFilter) ([]domain.Location, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.Location, error)
	createFn  func(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	updateFn  func(ctx context.Context, loc *domain.Location) (*domain.Location, error)
}

func (m *mockLocationRepo) Find(ctx context.Context, filter ports.LocationFilter) ([]domain.Location, error) {
	if m.findFn != nil {
		return m.findFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockLocationRepo) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLocationRepo) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	if m.createFn != nil {
		return m.createFn(ctx, loc)
	}
	return loc, nil
}

func (m *mockLocationRepo) Update(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, loc)
	}
	return loc, nil
}

// --- Tests ---

func TestLocationService_Find_PassesFilters(t *testing.T) {
	var got ports.LocationFilter
	repo := &mockLocationRepo{
		findFn: func(ctx context.Context, filter ports.LocationFilter) ([]domain.Location, error) {
			got = filter
			return []domain.Location{{ID: 1, Name: "Studentencafé Ascii"}}, nil
		},
	}

	svc := usecases.NewLocationService(repo, nil, 100)
	locs, err := svc.Find(context.Background(), usecases.FindQuery{
		UserID:   "7",
		Name:     "ascii",
		Category: "cafe",
		Tag:      "calm",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locs))
	}
	if got.UserID != "7" || got.Name != "ascii" || got.Category != "cafe" || got.Tag != "calm" {
		t.Errorf("filter not forwarded: %+v", got)
	}
	if got.Limit != 100 {
		t.Errorf("expected limit 100, got %d", got.Limit)
	}
}

func TestLocationService_Find_UnknownLabelIsEmptyNotError(t *testing.T) {
	repo := &mockLocationRepo{
		findFn: func(ctx context.Context, filter ports.LocationFilter) ([]domain.Location, error) {
			return nil, nil
		},
	}

	svc := usecases.NewLocationService(repo, nil, 100)
	locs, err := svc.Find(context.Background(), usecases.FindQuery{Category: "no-such-category"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 0 {
		t.Errorf("expected empty result, got %d", len(locs))
	}
}

func TestLocationService_FindNearby_AnnotatesDistance(t *testing.T) {
	repo := &mockLocationRepo{
		findFn: func(ctx context.Context, filter ports.LocationFilter) ([]domain.Location, error) {
			if filter.Bounds == nil {
				t.Error("expected a bounds filter")
			}
			return []domain.Location{
				{ID: 1, Name: "Turtle Bay Dresden", Coordinate: &domain.GeoPoint{Lat: 51.0516273, Lon: 13.732316}},
			}, nil
		},
	}

	svc := usecases.NewLocationService(repo, nil, 100)
	locs, err := svc.FindNearby(context.Background(), 51.0250869, 13.7210005, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locs))
	}
	if locs[0].Distance == nil {
		t.Fatal("expected distance annotation")
	}
	if *locs[0].Distance < 3000 || *locs[0].Distance > 3100 {
		t.Errorf("expected ~3 km, got %v", *locs[0].Distance)
	}
}

func TestLocationService_FindNearby_BoundsContainCenter(t *testing.T) {
	repo := &mockLocationRepo{
		findFn: func(ctx context.Context, filter ports.LocationFilter) ([]domain.Location, error) {
			b := filter.Bounds
			if b == nil {
				t.Fatal("expected bounds")
			}
			if !(b.MinLat < 51.0250869 && 51.0250869 < b.MaxLat) {
				t.Errorf("lat bounds do not contain center: %+v", b)
			}
			if !(b.MinLon < 13.7210005 && 13.7210005 < b.MaxLon) {
				t.Errorf("lon bounds do not contain center: %+v", b)
			}
			return nil, nil
		},
	}

	svc := usecases.NewLocationService(repo, nil, 100)
	if _, err := svc.FindNearby(context.Background(), 51.0250869, 13.7210005, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLocationService_FindNearby_RejectsNonPositiveRadius(t *testing.T) {
	svc := usecases.NewLocationService(&mockLocationRepo{}, nil, 100)
	if _, err := svc.FindNearby(context.Background(), 51.0, 13.7, 0); err == nil {
		t.Error("expected error for zero radius")
	}
	if _, err := svc.FindNearby(context.Background(), 51.0, 13.7, -5); err == nil {
		t.Error("expected error for negative radius")
	}
}

func TestLocationService_GetByID(t *testing.T) {
	repo := &mockLocationRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Location, error) {
			return &domain.Location{ID: id, Name: "Steak Royal"}, nil
		},
	}

	svc := usecases.NewLocationService(repo, nil, 100)
	loc, err := svc.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.ID != 3 {
		t.Errorf("expected id 3, got %d", loc.ID)
	}
}
