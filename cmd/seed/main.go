package main

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/ddfriends/places/internal/adapters/postgres"
	"github.com/ddfriends/places/internal/core/domain"
	"github.com/ddfriends/places/internal/pkg/config"
	"github.com/ddfriends/places/internal/pkg/logging"
)

func point(lat, lon float64) *domain.GeoPoint {
	return &domain.GeoPoint{Lat: lat, Lon: lon}
}

// Dresden sample data for local development.
var fixtures = []domain.Location{
	{
		Name:        "Studentencafé Ascii",
		Description: "Gemütliches Café in der Fak. Informatik der TU Dresden.",
		Address:     "Nöthnitzer Str. 46, 01187 Dresden",
		UserID:      "0",
		Coordinate:  point(51.0250869, 13.7210005),
		Categories:  []domain.Category{{Name: "Cafe"}},
		Tags:        []domain.Tag{{Name: "calm"}, {Name: "inexpensive"}, {Name: "insider"}},
	},
	{
		Name:        "Turtle Bay Dresden",
		Description: "Karibisches Restaurant in gemütlicher Atmosphäre mit Gerichten aus Trinidad, Jamaika und Martinique.",
		Address:     "Kleine Brüdergasse, 01067 Dresden",
		UserID:      "0",
		Coordinate:  point(51.0516273, 13.732316),
		Categories:  []domain.Category{{Name: "Restaurant"}, {Name: "Bar"}},
		Tags:        []domain.Tag{{Name: "popular"}, {Name: "caribbean"}, {Name: "dresden-for-friends"}},
	},
	{
		Name:        "Steak Royal",
		Description: "Steak-Spezialitäten vom Grill und vieles mehr.",
		Address:     "Weiße Gasse 4, 01067 Dresden",
		UserID:      "0",
		Coordinate:  point(51.0491, 13.738407),
		Categories:  []domain.Category{{Name: "Restaurant"}},
		Tags:        []domain.Tag{{Name: "popular"}, {Name: "calm"}, {Name: "dresden-for-friends"}},
	},
}

func main() {
	logging.Setup("info", "text")

	cfg, err := config.Load("places-seed")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLocationRepo(db)

	for i := range fixtures {
		loc := fixtures[i]
		created, err := repo.Create(ctx, &loc)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateLocation) {
				slog.Info("already seeded", "name", loc.Name)
				continue
			}
			log.Fatalf("seed %q: %v", loc.Name, err)
		}
		slog.Info("seeded", "id", created.ID, "name", created.Name)
	}
}
