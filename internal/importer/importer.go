package importer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/session"
)

// Stats tracks import progress.
type Stats struct {
	FilesTotal    int
	FilesImported int
	FilesSkipped  int
	FilesErrored  int
	WorkoutsSent  int
}

// Importer walks a directory of JSON export files, converts each entry to a
// workout draft, and POSTs them to the IronLog server.
type Importer struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Importer.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Importer {
	return &Importer{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run executes the import pipeline over all .json files in the directory.
// Files already recorded in the state database with an unchanged size and
// hash are skipped.
func (im *Importer) Run() (*Stats, error) {
	entries, err := os.ReadDir(im.dir)
	if err != nil {
		return &im.stats, fmt.Errorf("reading %s: %w", im.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		im.stats.FilesTotal++

		path := filepath.Join(im.dir, entry.Name())
		if err := im.processFile(path, entry.Name()); err != nil {
			im.stats.FilesErrored++
			im.log.Error("import failed", "file", entry.Name(), "error", err)
		}
	}

	return &im.stats, nil
}

func (im *Importer) processFile(path, relPath string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	done, err := im.state.IsImported(relPath, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("checking state: %w", err)
	}
	if done {
		im.stats.FilesSkipped++
		im.log.Debug("already imported", "file", relPath)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading: %w", err)
	}

	drafts, err := ParseExport(data)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	if im.dryRun {
		im.log.Info("dry run", "file", relPath, "workouts", len(drafts))
		im.stats.FilesImported++
		return nil
	}

	for _, draft := range drafts {
		if err := im.client.SendWorkout(draft); err != nil {
			return fmt.Errorf("sending workout dated %s: %w", draft.Date.Format("2006-01-02"), err)
		}
		im.stats.WorkoutsSent++
	}

	if err := im.state.MarkImported(relPath, info.Size(), hash); err != nil {
		return fmt.Errorf("marking imported: %w", err)
	}
	im.stats.FilesImported++
	im.log.Info("imported", "file", relPath, "workouts", len(drafts))
	return nil
}

// ParseExport decodes an export file into workout drafts. The file holds
// either a bare JSON array of workout records or an object with a
// "workouts" array. Records missing a total weight get it recomputed from
// their completed sets.
func ParseExport(data []byte) ([]models.WorkoutDraft, error) {
	var drafts []models.WorkoutDraft
	if err := json.Unmarshal(data, &drafts); err != nil {
		var wrapper struct {
			Workouts []models.WorkoutDraft `json:"workouts"`
		}
		if err2 := json.Unmarshal(data, &wrapper); err2 != nil {
			return nil, fmt.Errorf("decoding export: %w", err)
		}
		drafts = wrapper.Workouts
	}

	valid := drafts[:0]
	for _, d := range drafts {
		if d.Date.IsZero() {
			return nil, fmt.Errorf("workout record without a date")
		}
		if d.TotalWeight == 0 {
			d.TotalWeight = session.TotalWeight(d.Exercises)
		}
		valid = append(valid, d)
	}
	return valid, nil
}
