package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ModelsFile declares the model priority list for the generation client.
// Models are tried in order: most capable / cheapest first, per deployment
// policy.
type ModelsFile struct {
	Models []string `yaml:"models"`
}

// LoadModels loads the model priority list from a YAML file
func LoadModels(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read models file: %w", err)
	}

	var mf ModelsFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse models YAML: %w", err)
	}
	if len(mf.Models) == 0 {
		return nil, fmt.Errorf("models file %s declares no models", filePath)
	}

	return mf.Models, nil
}

// WatchModels watches the models file and invokes onChange with the new
// priority list whenever it is rewritten. Blocks; run in a goroutine.
func WatchModels(filePath string, onChange func([]string)) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("⚠️  Failed to create models file watcher: %v", err)
		return
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		log.Printf("⚠️  Failed to resolve %s: %v", filePath, err)
		watcher.Close()
		return
	}

	// Watch the directory, not the file: editors replace files on save
	dir := filepath.Dir(absPath)
	filename := filepath.Base(absPath)

	if err := watcher.Add(dir); err != nil {
		log.Printf("⚠️  Failed to watch directory %s: %v", dir, err)
		watcher.Close()
		return
	}

	log.Printf("👁️  Watching %s for model list changes (hot-reload enabled)", filePath)

	var debounceTimer *time.Timer
	debounceDuration := 500 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					models, err := LoadModels(filePath)
					if err != nil {
						log.Printf("❌ Failed to reload models file: %v", err)
						return
					}
					log.Printf("🔄 Model priority list reloaded from %s: %v", filePath, models)
					onChange(models)
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("⚠️  Models file watcher error: %v", err)
		}
	}
}
