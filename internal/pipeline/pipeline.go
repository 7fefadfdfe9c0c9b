package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexbodian/bootlegtag/internal/config"
	"github.com/alexbodian/bootlegtag/internal/logger"
	"github.com/alexbodian/bootlegtag/internal/metadata"
	"github.com/alexbodian/bootlegtag/internal/provider/setlistfm"
	"github.com/alexbodian/bootlegtag/internal/setlist"
	"github.com/alexbodian/bootlegtag/pkg/utils"
)

// Hooks let callers take part in the run. Confirm is the gate between the
// preview and any change on disk; a nil Confirm counts as approval. The other
// hooks report progress and may be nil.
type Hooks struct {
	Confirm       func(s *setlist.Session) bool
	OnFilesListed func(total int)
	OnFileDone    func()
}

// Run fetches the setlists for the given dates, shows the preview, and after
// approval tags and renames the folder's files and the folder itself.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger, folder string, dates []time.Time, hooks Hooks) error {
	client, err := setlistfm.New(setlistfm.Config{
		APIKey:     cfg.APIKey,
		ArtistName: cfg.ArtistName,
	})
	if err != nil {
		return err
	}

	return run(ctx, cfg, log, client, folder, dates, hooks)
}

// run is the injectable core of Run: fetch -> preview -> gate -> tag and
// rename files -> rename folder. Nothing on disk changes before the gate.
func run(ctx context.Context, cfg config.Config, log *logger.Logger, provider setlist.Provider, folder string, dates []time.Time, hooks Hooks) error {
	folder = filepath.Clean(folder)

	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("folder not found: %s", folder)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", folder)
	}
	if len(dates) == 0 {
		return fmt.Errorf("at least one date is required")
	}

	session := &setlist.Session{}
	for _, date := range dates {
		log.Info("Querying setlist.fm for %s on %s ...", cfg.ArtistName, date.Format("2006-01-02"))
		concert, err := provider.FetchSetlist(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to fetch setlist: %w", err)
		}
		session.Concerts = append(session.Concerts, concert)
	}

	log.Info("%s", session.Render())

	if cfg.DryRun {
		log.Info("Dry run, nothing was changed")
		return nil
	}

	if hooks.Confirm != nil && !hooks.Confirm(session) {
		log.Info("Aborted. No changes were made.")
		return nil
	}

	files, err := utils.ListFiles(folder)
	if err != nil {
		return err
	}

	albumName := session.AlbumName()
	counts := session.DiscCounts(len(files))

	if hooks.OnFilesListed != nil {
		hooks.OnFilesListed(len(files))
	}

	for i, path := range files {
		select {
		case <-ctx.Done():
			return fmt.Errorf("tagging cancelled")
		default:
		}

		disc := setlist.DiscForIndex(i, counts)
		if err := processFile(cfg, log, path, albumName, disc, session.Concerts[disc-1]); err != nil {
			return err
		}

		if hooks.OnFileDone != nil {
			hooks.OnFileDone()
		}
	}

	return renameFolder(log, folder, albumName)
}

// processFile tags and renames one file. Non-audio files are noted and
// skipped. Unreadable audio is logged and skipped, it is the only per-file
// failure the run survives.
func processFile(cfg config.Config, log *logger.Logger, path, albumName string, disc int, concert setlist.Concert) error {
	name := filepath.Base(path)
	log.Info("Processing: %s", name)

	if !utils.IsAudioFile(path) {
		log.Info("  Skipping (not audio)")
		return nil
	}

	titleTag, err := metadata.ReadTitle(path)
	if err != nil {
		log.Warn("  Could not read audio file: %v", err)
		return nil
	}

	id := metadata.ResolveTrackIdentity(titleTag, utils.Stem(path))
	log.Debug("  disc=%d date=%s track=%d title=%q", disc, concert.ISODate(), id.Number, id.Title)

	tags := metadata.TrackTags{
		Album:       albumName,
		Artist:      cfg.ArtistName,
		AlbumArtist: cfg.ArtistName,
		Genre:       cfg.Genre,
		DiscNumber:  disc,
		DiscDate:    concert.ISODate(),
		Title:       id.Title,
		TrackNumber: id.Number,
		Kind:        metadata.KindForPath(path),
	}
	if err := metadata.WriteTrackTags(path, tags); err != nil {
		return err
	}

	return renameFile(log, path, id)
}

// renameFile renames a file to "NN Title.ext" with a lowercased extension,
// or just "Title.ext" without a track number. The rename is skipped when the
// target already exists or the name would not change.
func renameFile(log *logger.Logger, path string, id metadata.TrackIdentity) error {
	safeTitle := metadata.SanitizeFileName(id.Title)
	if safeTitle == "" {
		safeTitle = "Unknown"
	}

	newBase := safeTitle
	if id.Number > 0 {
		newBase = fmt.Sprintf("%02d %s", id.Number, safeTitle)
	}
	newPath := filepath.Join(filepath.Dir(path), newBase+utils.LowerExt(path))

	if newPath == path {
		log.Debug("  Filename unchanged")
		return nil
	}
	if _, err := os.Stat(newPath); err == nil {
		log.Info("  Filename unchanged (target exists)")
		return nil
	}

	log.Info("  Renaming to %s", filepath.Base(newPath))
	if err := os.Rename(path, newPath); err != nil {
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return nil
}

// renameFolder renames the concert folder to the sanitized album name. An
// existing target, including the folder already carrying that name from an
// earlier run, means the rename is skipped.
func renameFolder(log *logger.Logger, folder, albumName string) error {
	safeName := metadata.SanitizeFileName(albumName)
	newPath := filepath.Join(filepath.Dir(folder), safeName)

	if _, err := os.Stat(newPath); err == nil {
		log.Info("Folder already exists, skipping folder rename: %s", safeName)
	} else {
		log.Info("Renaming folder to: %s", safeName)
		if err := os.Rename(folder, newPath); err != nil {
			return fmt.Errorf("failed to rename folder: %w", err)
		}
	}

	log.Info("Done.")
	return nil
}
