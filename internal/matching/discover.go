package matching

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"scenarr/internal/logging"
)

// DirWalker lists regular files under a root directory. Unreadable entries
// and broken symlinks are skipped with a warning. Symlinks to regular files
// are listed; symlinked directories below the root are not descended. A
// symlinked root is followed and its paths are reported under root.
type DirWalker struct {
	Logger *slog.Logger
}

// Files walks root in lexical order and returns the regular files found.
func (w DirWalker) Files(ctx context.Context, root string) ([]string, error) {
	logger := w.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "discover")

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %q: not a directory", root)
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %q: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(resolved, func(walked string, d fs.DirEntry, walkErr error) error {
		path := walked
		if resolved != root {
			rel, err := filepath.Rel(resolved, walked)
			if err != nil {
				return err
			}
			path = filepath.Join(root, rel)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if walked == resolved {
				return walkErr
			}
			skipWarning(logger, path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		switch {
		case d.Type().IsRegular():
			files = append(files, path)
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Stat(walked)
			if err != nil {
				skipWarning(logger, path, err)
				return nil
			}
			if target.Mode().IsRegular() {
				files = append(files, path)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("scan root %q: %w", root, err)
	}
	return files, nil
}

// Discover is shorthand for DirWalker{Logger: logger}.Files.
func Discover(ctx context.Context, root string, logger *slog.Logger) ([]string, error) {
	return DirWalker{Logger: logger}.Files(ctx, root)
}

func skipWarning(logger *slog.Logger, path string, err error) {
	logging.WarnWithContext(logger, "skipping unreadable path", "scan_skipped",
		logging.String(logging.FieldPath, path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check permissions or remove dangling links"),
		logging.String(logging.FieldImpact, "path excluded from match suggestions"),
	)
}
