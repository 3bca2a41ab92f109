package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ddfriends/places/internal/core/domain"
	"github.com/ddfriends/places/internal/core/ports"
)

// LocationRepo implements ports.LocationRepository with pgx.
type LocationRepo struct {
	db *DB
}

// NewLocationRepo creates a new LocationRepo.
func NewLocationRepo(db *DB) *LocationRepo {
	return &LocationRepo{db: db}
}

const locationColumns = `id, name, description, address, user_id,
	       latitude, longitude,
	       COALESCE(website, ''), COALESCE(telephone, ''), created_at`

// Find returns locations matching the filter's conjunction of conditions.
// The WHERE clause is composed from the supplied criteria only; an unknown
// category or tag name simply matches nothing.
func (r *LocationRepo) Find(ctx context.Context, f ports.LocationFilter) ([]domain.Location, error) {
	var (
		conds []string
		args  []any
	)

	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM location_categories lc WHERE lc.location_id = locations.id AND lower(lc.category_name) = lower($%d))",
			len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM location_tags lt WHERE lt.location_id = locations.id AND lower(lt.tag_name) = lower($%d))",
			len(args)))
	}
	if b := f.Bounds; b != nil {
		// Excludes rows without a coordinate: NULL never satisfies the range.
		args = append(args, b.MinLat, b.MaxLat)
		conds = append(conds, fmt.Sprintf("latitude BETWEEN $%d AND $%d", len(args)-1, len(args)))
		args = append(args, b.MinLon, b.MaxLon)
		conds = append(conds, fmt.Sprintf("longitude BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	query := "SELECT " + locationColumns + " FROM locations"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []domain.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locs = append(locs, *loc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachLabels(ctx, locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// GetByID returns a location with its resolved labels.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	row := r.db.Pool.QueryRow(ctx,
		"SELECT "+locationColumns+" FROM locations WHERE id = $1", id)

	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("location %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	one := []domain.Location{*loc}
	if err := r.attachLabels(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// Create inserts the scalar fields and attaches the supplied labels in one
// transaction, so a failed label write leaves no half-created record.
func (r *LocationRepo) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	lat, lon := coordinateArgs(loc.Coordinate)
	err = tx.QueryRow(ctx, `
		INSERT INTO locations (name, description, address, user_id, latitude, longitude, website, telephone)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
		RETURNING id, created_at
	`, loc.Name, loc.Description, loc.Address, loc.UserID, lat, lon,
		loc.Website, loc.Telephone).Scan(&loc.ID, &loc.CreatedAt)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}

	if err := r.replaceLabels(ctx, tx, loc.ID, "categories", "location_categories", "category_name", categoryNames(loc.Categories)); err != nil {
		return nil, err
	}
	if err := r.replaceLabels(ctx, tx, loc.ID, "tags", "location_tags", "tag_name", tagNames(loc.Tags)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return r.GetByID(ctx, loc.ID)
}

// Update rewrites the scalar fields and, when label sets are supplied,
// replaces the associations, all in one transaction. A nil label slice
// leaves the existing set untouched.
func (r *LocationRepo) Update(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	lat, lon := coordinateArgs(loc.Coordinate)
	tag, err := tx.Exec(ctx, `
		UPDATE locations
		SET name = $2, description = $3, address = $4,
		    latitude = $5, longitude = $6,
		    website = NULLIF($7, ''), telephone = NULLIF($8, '')
		WHERE id = $1
	`, loc.ID, loc.Name, loc.Description, loc.Address, lat, lon,
		loc.Website, loc.Telephone)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("location %d: %w", loc.ID, domain.ErrNotFound)
	}

	if loc.Categories != nil {
		if err := r.replaceLabels(ctx, tx, loc.ID, "categories", "location_categories", "category_name", categoryNames(loc.Categories)); err != nil {
			return nil, err
		}
	}
	if loc.Tags != nil {
		if err := r.replaceLabels(ctx, tx, loc.ID, "tags", "location_tags", "tag_name", tagNames(loc.Tags)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return r.GetByID(ctx, loc.ID)
}

// replaceLabels makes the location's associations in joinTable exactly the
// given name set, creating unknown labels on the way (get-or-create by name).
func (r *LocationRepo) replaceLabels(ctx context.Context, tx pgx.Tx, locationID int64, labelTable, joinTable, nameCol string, names []string) error {
	if _, err := tx.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE location_id = $1", joinTable), locationID); err != nil {
		return fmt.Errorf("clear %s: %w", joinTable, err)
	}
	if len(names) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		batch.Queue(fmt.Sprintf(
			"INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", labelTable), name)
		batch.Queue(fmt.Sprintf(
			"INSERT INTO %s (location_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING", joinTable, nameCol),
			locationID, name)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("attach %s: %w", labelTable, err)
		}
	}
	return nil
}

// attachLabels loads the category and tag sets for all locations in place.
func (r *LocationRepo) attachLabels(ctx context.Context, locs []domain.Location) error {
	byID := make(map[int64]*domain.Location, len(locs))
	ids := make([]int64, 0, len(locs))
	for i := range locs {
		locs[i].Categories = []domain.Category{}
		locs[i].Tags = []domain.Tag{}
		byID[locs[i].ID] = &locs[i]
		ids = append(ids, locs[i].ID)
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT location_id, category_name FROM location_categories
		WHERE location_id = ANY($1) ORDER BY category_name
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return err
		}
		if loc := byID[id]; loc != nil {
			loc.Categories = append(loc.Categories, domain.Category{Name: name})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Pool.Query(ctx, `
		SELECT location_id, tag_name FROM location_tags
		WHERE location_id = ANY($1) ORDER BY tag_name
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		if loc := byID[id]; loc != nil {
			loc.Tags = append(loc.Tags, domain.Tag{Name: name})
		}
	}
	return rows.Err()
}

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var (
		loc      domain.Location
		lat, lon *float64
	)
	if err := row.Scan(
		&loc.ID, &loc.Name, &loc.Description, &loc.Address, &loc.UserID,
		&lat, &lon,
		&loc.Website, &loc.Telephone, &loc.CreatedAt,
	); err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		loc.Coordinate = &domain.GeoPoint{Lat: *lat, Lon: *lon}
	}
	return &loc, nil
}

func coordinateArgs(c *domain.GeoPoint) (lat, lon *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lon
}

func categoryNames(cs []domain.Category) []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	return names
}

func tagNames(ts []domain.Tag) []string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.Name)
	}
	return names
}

// mapUniqueViolation turns a Postgres unique-constraint error (duplicate
// name, address, or coordinate pair) into domain.ErrDuplicateLocation.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, domain.ErrDuplicateLocation)
	}
	return err
}
