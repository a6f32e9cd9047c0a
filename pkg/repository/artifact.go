package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sitesmith/pkg/domain"
)

// reservedArtifactNames are files in the public dir that are not project
// artifacts and never show up in listings.
var reservedArtifactNames = map[string]struct{}{
	"index.html":    {},
	"template.html": {},
}

type artifactRepository struct {
	publicDir string
}

func NewArtifactRepository(publicDir string) (*artifactRepository, error) {
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating public dir: %w", err)
	}
	return &artifactRepository{publicDir: publicDir}, nil
}

func (a *artifactRepository) Path(project string) string {
	return filepath.Join(a.publicDir, safeName(project)+".html")
}

// Get returns the project's current artifact and whether one exists.
func (a *artifactRepository) Get(project string) (string, bool, error) {
	data, err := os.ReadFile(a.Path(project))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading artifact for %q: %w", project, err)
	}
	return string(data), true, nil
}

// Save overwrites the project's artifact in full.
func (a *artifactRepository) Save(project, content string) error {
	if err := atomicWriteFile(a.Path(project), []byte(content)); err != nil {
		return fmt.Errorf("saving artifact for %q: %w", project, err)
	}
	return nil
}

// List enumerates all stored artifacts, newest first.
func (a *artifactRepository) List() ([]domain.ArtifactInfo, error) {
	entries, err := os.ReadDir(a.publicDir)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}

	var infos []domain.ArtifactInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}
		if _, reserved := reservedArtifactNames[name]; reserved {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, domain.ArtifactInfo{
			Filename:     name,
			ProjectName:  strings.TrimSuffix(name, ".html"),
			LastModified: fi.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].LastModified.After(infos[j].LastModified)
	})
	return infos, nil
}
