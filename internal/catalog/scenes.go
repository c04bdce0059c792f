package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"scenarr/internal/matching"
)

const sceneColumns = "id, site_id, title, date, duration, image, performers, status, local_path"

func scanScene(scanner interface{ Scan(dest ...any) error }) (*Scene, error) {
	var (
		scene      Scene
		date       sql.NullString
		duration   sql.NullFloat64
		image      sql.NullString
		performers sql.NullString
		status     sql.NullString
		localPath  sql.NullString
	)
	if err := scanner.Scan(&scene.ID, &scene.SiteID, &scene.Title, &date, &duration, &image, &performers, &status, &localPath); err != nil {
		return nil, err
	}
	scene.Date = stringPtr(date)
	scene.Duration = floatPtr(duration)
	scene.Image = image.String
	scene.Performers = performers.String
	scene.Status = status.String
	scene.LocalPath = localPath.String
	return &scene, nil
}

// Scene fetches a scene by ID.
func (s *Store) Scene(ctx context.Context, id int64) (*Scene, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sceneColumns+" FROM scenes WHERE id = ?", id)
	scene, err := scanScene(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scene %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get scene: %w", err)
	}
	return scene, nil
}

// ScenesForSite lists a site's scenes in insertion order.
func (s *Store) ScenesForSite(ctx context.Context, siteUUID string) ([]Scene, error) {
	site, err := s.Site(ctx, siteUUID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT "+sceneColumns+" FROM scenes WHERE site_id = ? ORDER BY id", site.ID)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	scenes := []Scene{}
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		scenes = append(scenes, *scene)
	}
	return scenes, rows.Err()
}

// EntriesForSite returns the site's scenes as matching entries.
func (s *Store) EntriesForSite(ctx context.Context, siteUUID string) ([]matching.Entry, error) {
	scenes, err := s.ScenesForSite(ctx, siteUUID)
	if err != nil {
		return nil, err
	}
	entries := make([]matching.Entry, 0, len(scenes))
	for _, scene := range scenes {
		entries = append(entries, scene.Entry())
	}
	return entries, nil
}

// Entry converts the scene into the shape scored by the matching engine.
func (sc Scene) Entry() matching.Entry {
	return matching.Entry{
		ID:       sc.ID,
		Title:    sc.Title,
		Date:     sc.Date,
		Duration: sc.Duration,
	}
}

// RemoveScene deletes one scene.
func (s *Store) RemoveScene(ctx context.Context, id int64) error {
	res, err := s.execWithRetry(ctx, "DELETE FROM scenes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	return requireRow(res, fmt.Sprintf("scene %d", id))
}

// MatchScene records the confirmed local file for a scene and marks it found.
func (s *Store) MatchScene(ctx context.Context, id int64, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("%w: file path is required", ErrInvalid)
	}
	res, err := s.execWithRetry(ctx, "UPDATE scenes SET local_path = ?, status = ? WHERE id = ?", path, StatusFound, id)
	if err != nil {
		return fmt.Errorf("match scene: %w", err)
	}
	return requireRow(res, fmt.Sprintf("scene %d", id))
}
