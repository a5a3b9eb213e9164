// Package watcher re-runs a callback when a YAML file changes on disk,
// debouncing bursts of fsnotify events.
package watcher
