package principals

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/mmcdole/viking-permd/pkg/logging"
)

// playerRecord is the on-disk shape of a player file. Player files carry
// many game fields; only the group attribute matters here, the rest are
// ignored.
type playerRecord struct {
	Group string `yaml:"group"`
}

// FileSource implements Resolver over a directory of player files. Files
// are laid out as <rootDir>/<first-letter>/<name>.yml, the same sharding
// the game uses for its character store.
type FileSource struct {
	fs      afero.Fs
	rootDir string
}

// NewFileSource creates a FileSource over the OS filesystem
func NewFileSource(rootDir string) *FileSource {
	return NewFileSourceFs(afero.NewOsFs(), rootDir)
}

// NewFileSourceFs creates a FileSource over the given filesystem
func NewFileSourceFs(fs afero.Fs, rootDir string) *FileSource {
	return &FileSource{
		fs:      fs,
		rootDir: rootDir,
	}
}

// playerPath returns the full path to a player file
func (s *FileSource) playerPath(name string) string {
	if name == "" {
		return ""
	}
	firstLetter := strings.ToLower(name[0:1])
	return filepath.Join(s.rootDir, firstLetter, name+".yml")
}

// ResolvePrincipal implements Resolver
func (s *FileSource) ResolvePrincipal(sender string) (*Principal, error) {
	path := s.playerPath(sender)
	if path == "" {
		return nil, fmt.Errorf("invalid sender name")
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.App.Debug("player file not found", "sender", sender, "path", path)
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("reading player file: %w", err)
	}

	var record playerRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		logging.App.Debug("player file failed to parse", "sender", sender, "path", path, "error", err)
		return nil, fmt.Errorf("parsing player file %s: %w", path, ErrInvalidRecord)
	}

	return &Principal{
		Name:        sender,
		Kind:        KindPlayer,
		StoredGroup: record.Group,
	}, nil
}
