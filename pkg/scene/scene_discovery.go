package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier
	Name        string // Scene name
	DisplayName string // Display name for listings
	Description string // Optional description
	Type        string // "builtin" or "file"
	FilePath    string // Path to scene file (file type only)
}

// ListSceneFiles scans dir for YAML and TOML scene files. A missing directory yields
// an empty list; files that fail to decode are still listed with fallback metadata.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml", "*.toml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, ParseSceneMetadata(filePath))
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts the name and description of a scene file
func ParseSceneMetadata(filePath string) SceneInfo {
	// Extract filename without extension for fallback values
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("file:%s", nameWithoutExt),
		Name:        nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := ReadFile(filePath)
	if err != nil {
		sceneInfo.Description = fmt.Sprintf("unreadable: %v", err)
		return sceneInfo
	}

	if file.Name != nameWithoutExt {
		sceneInfo.Name = file.Name
		sceneInfo.DisplayName = titleCase(file.Name)
	}
	sceneInfo.Description = file.Description
	return sceneInfo
}

// ListAllScenes returns the built-in scenes followed by the scene files found in dir
func ListAllScenes(registry *Registry, dir string) ([]SceneInfo, error) {
	var all []SceneInfo
	for _, builtin := range registry.Scenes() {
		all = append(all, SceneInfo{
			ID:          builtin.Name,
			Name:        builtin.Name,
			DisplayName: titleCase(builtin.Name),
			Description: builtin.Description,
			Type:        "builtin",
		})
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	return append(all, files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
