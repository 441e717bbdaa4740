package adapters

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pz-mod-installer/internal/ports"
)

// FolderFlattenAdapter moves <workshop>/<item>/mods/<name> to <dest>/<name>.
type FolderFlattenAdapter struct{}

func NewFolderFlattenAdapter() FolderFlattenAdapter {
	return FolderFlattenAdapter{}
}

// Flatten replaces existing destination folders of the same name. Items
// without a mods folder are skipped; a folder that cannot be moved is
// recorded in Failed and the rest continue.
func (a FolderFlattenAdapter) Flatten(workshopPath string, destDir string) (ports.FlattenResult, error) {
	var result ports.FlattenResult
	if strings.TrimSpace(workshopPath) == "" || strings.TrimSpace(destDir) == "" {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workshop path and destination are required")
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create mods directory").
			WithCause(err)
	}
	items, err := os.ReadDir(workshopPath)
	if errors.Is(err, fs.ErrNotExist) {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("workshop path not found: " + workshopPath).
			WithCause(err)
	}
	if err != nil {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read workshop path").
			WithCause(err)
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		modsDir := filepath.Join(workshopPath, item.Name(), "mods")
		contents, err := os.ReadDir(modsDir)
		if err != nil {
			log.Warn().Str("mod_id", item.Name()).Msg("no mods folder found")
			result.Skipped = append(result.Skipped, item.Name())
			continue
		}
		for _, content := range contents {
			src := filepath.Join(modsDir, content.Name())
			dest := filepath.Join(destDir, content.Name())
			if err := replacePath(src, dest); err != nil {
				log.Error().
					Err(err).
					Str("mod_id", item.Name()).
					Str("folder", content.Name()).
					Msg("failed to move mod folder")
				result.Failed = append(result.Failed, content.Name())
				continue
			}
			log.Debug().Str("folder", content.Name()).Str("dest", dest).Msg("mod folder moved")
			result.Moved = append(result.Moved, content.Name())
		}
	}
	log.Info().
		Int("moved", len(result.Moved)).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failed)).
		Str("dest", destDir).
		Msg("mod folders reorganized")
	return result, nil
}

func replacePath(src string, dest string) error {
	if _, err := os.Lstat(dest); err == nil {
		log.Debug().Str("dest", dest).Msg("removing existing folder")
		if err := os.RemoveAll(dest); err != nil {
			return err
		}
	}
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyTree(src, dest); err != nil {
		_ = os.RemoveAll(dest)
		return err
	}
	return os.RemoveAll(src)
}

func copyTree(src string, dest string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		info, err := entry.Info()
		if err != nil {
			return err
		}
		switch {
		case entry.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src string, dest string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

var _ ports.FolderFlattenPort = FolderFlattenAdapter{}
