package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const siteColumns = "id, uuid, name, url, description, rating, network, parent, logo, home_directory"

func scanSite(scanner interface{ Scan(dest ...any) error }) (*Site, error) {
	var (
		site        Site
		url         sql.NullString
		description sql.NullString
		rating      sql.NullFloat64
		network     sql.NullString
		parent      sql.NullString
		logo        sql.NullString
		home        sql.NullString
	)
	if err := scanner.Scan(&site.ID, &site.UUID, &site.Name, &url, &description, &rating, &network, &parent, &logo, &home); err != nil {
		return nil, err
	}
	site.URL = url.String
	site.Description = description.String
	site.Rating = floatPtr(rating)
	site.Network = network.String
	site.Parent = parent.String
	site.Logo = logo.String
	site.HomeDirectory = home.String
	return &site, nil
}

// ImportSite inserts the site and its scenes, or, when a site with the same
// UUID exists, updates its metadata and replaces all of its scenes. A blank
// UUID is assigned a new one. The home directory of an existing site is kept.
// created reports whether a new site row was inserted.
func (s *Store) ImportSite(ctx context.Context, in SiteImport) (*Site, bool, error) {
	if err := validateImport(in); err != nil {
		return nil, false, err
	}
	siteUUID := strings.TrimSpace(in.Site.UUID)
	if siteUUID == "" {
		siteUUID = uuid.NewString()
	}

	var (
		siteID  int64
		created bool
	)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		created = false
		err := tx.QueryRowContext(ctx, "SELECT id FROM sites WHERE uuid = ?", siteUUID).Scan(&siteID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			res, err := tx.ExecContext(ctx,
				`INSERT INTO sites (uuid, name, url, description, rating, network, parent, logo)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				siteUUID, strings.TrimSpace(in.Site.Name), nullableString(in.Site.URL), nullableString(in.Site.Description),
				nullableFloat(in.Site.Rating.Value()), nullableString(in.Site.Network), nullableString(in.Site.Parent),
				nullableString(in.Site.Logo),
			)
			if err != nil {
				return fmt.Errorf("insert site: %w", err)
			}
			if siteID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("last insert id: %w", err)
			}
			created = true
		case err != nil:
			return fmt.Errorf("lookup site: %w", err)
		default:
			if _, err := tx.ExecContext(ctx,
				`UPDATE sites SET name = ?, url = ?, description = ?, rating = ?, network = ?, parent = ?, logo = ?
                 WHERE id = ?`,
				strings.TrimSpace(in.Site.Name), nullableString(in.Site.URL), nullableString(in.Site.Description),
				nullableFloat(in.Site.Rating.Value()), nullableString(in.Site.Network), nullableString(in.Site.Parent),
				nullableString(in.Site.Logo), siteID,
			); err != nil {
				return fmt.Errorf("update site: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM scenes WHERE site_id = ?", siteID); err != nil {
				return fmt.Errorf("clear scenes: %w", err)
			}
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO scenes (site_id, title, date, duration, image, performers) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare scene insert: %w", err)
		}
		defer stmt.Close()
		for _, scene := range in.Scenes {
			if _, err := stmt.ExecContext(ctx, siteID, strings.TrimSpace(scene.Title), nullableStringPtr(scene.Date),
				nullableFloat(scene.Duration), nullableString(scene.Image), nullableString(scene.Performers)); err != nil {
				return fmt.Errorf("insert scene %q: %w", scene.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	site, err := s.Site(ctx, siteUUID)
	if err != nil {
		return nil, false, err
	}
	return site, created, nil
}

func validateImport(in SiteImport) error {
	if strings.TrimSpace(in.Site.Name) == "" {
		return fmt.Errorf("%w: site name is required", ErrInvalid)
	}
	for i, scene := range in.Scenes {
		if strings.TrimSpace(scene.Title) == "" {
			return fmt.Errorf("%w: scene %d has no title", ErrInvalid, i+1)
		}
	}
	return nil
}

// Site fetches a site by UUID.
func (s *Store) Site(ctx context.Context, siteUUID string) (*Site, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+siteColumns+" FROM sites WHERE uuid = ?", siteUUID)
	site, err := scanSite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("site %s: %w", siteUUID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get site: %w", err)
	}
	return site, nil
}

// Sites lists every site with scene totals, ordered by name.
func (s *Store) Sites(ctx context.Context) ([]SiteSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+prefixColumns("s", siteColumns)+`,
            COUNT(sc.id), COUNT(CASE WHEN sc.status = ? THEN 1 END)
        FROM sites s LEFT JOIN scenes sc ON sc.site_id = s.id
        GROUP BY s.id ORDER BY s.name COLLATE NOCASE, s.id`, StatusFound)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var out []SiteSummary
	for rows.Next() {
		var (
			summary SiteSummary
			total   int
			matched int
		)
		site, err := scanSite(scanFunc(func(dest ...any) error {
			return rows.Scan(append(dest, &total, &matched)...)
		}))
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		summary.Site = *site
		summary.Scenes = total
		summary.Matched = matched
		out = append(out, summary)
	}
	return out, rows.Err()
}

// Collection returns every site with all of its scenes, sites in insertion order.
func (s *Store) Collection(ctx context.Context) ([]SiteCollection, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+siteColumns+" FROM sites ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	var collection []SiteCollection
	index := make(map[int64]int)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan site: %w", err)
		}
		index[site.ID] = len(collection)
		collection = append(collection, SiteCollection{Site: *site, Scenes: []Scene{}})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	sceneRows, err := s.db.QueryContext(ctx, "SELECT "+sceneColumns+" FROM scenes ORDER BY site_id, id")
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer sceneRows.Close()
	for sceneRows.Next() {
		scene, err := scanScene(sceneRows)
		if err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		if i, ok := index[scene.SiteID]; ok {
			collection[i].Scenes = append(collection[i].Scenes, *scene)
		}
	}
	if collection == nil {
		collection = []SiteCollection{}
	}
	return collection, sceneRows.Err()
}

// RemoveSite deletes a site and all of its scenes.
func (s *Store) RemoveSite(ctx context.Context, siteUUID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var siteID int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM sites WHERE uuid = ?", siteUUID).Scan(&siteID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("site %s: %w", siteUUID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lookup site: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM scenes WHERE site_id = ?", siteID); err != nil {
			return fmt.Errorf("delete scenes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", siteID); err != nil {
			return fmt.Errorf("delete site: %w", err)
		}
		return nil
	})
}

// SetHomeDirectory records where the site's files live. A blank directory clears it.
func (s *Store) SetHomeDirectory(ctx context.Context, siteUUID, dir string) error {
	res, err := s.execWithRetry(ctx, "UPDATE sites SET home_directory = ? WHERE uuid = ?",
		nullableString(strings.TrimSpace(dir)), siteUUID)
	if err != nil {
		return fmt.Errorf("set home directory: %w", err)
	}
	return requireRow(res, "site "+siteUUID)
}

// SiteHomeDirectory returns the site's home directory, or "" when none is set.
func (s *Store) SiteHomeDirectory(ctx context.Context, siteUUID string) (string, error) {
	site, err := s.Site(ctx, siteUUID)
	if err != nil {
		return "", err
	}
	return site.HomeDirectory, nil
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, part := range parts {
		parts[i] = alias + "." + part
	}
	return strings.Join(parts, ", ")
}

func requireRow(res sql.Result, subject string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", subject, ErrNotFound)
	}
	return nil
}
