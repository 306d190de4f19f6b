// Package web provides the bundled site pages served by the router.
//
// The www/ directory is embedded at build time. During development, if a
// www/ directory exists on the filesystem, it is used instead so pages can
// be edited without rebuilding.
package web

import (
	"embed"
	"io/fs"
	"os"
)

// assets holds the embedded site files from www/.
//
//go:embed www/*
var assets embed.FS

// GetAssets returns a filesystem containing the site pages.
//
// The devPath parameter specifies the directory to check for development
// mode. If empty, it defaults to "./www" (relative to the working
// directory). When that directory exists, the live filesystem is returned;
// otherwise the embedded assets are used.
func GetAssets(devPath string) fs.FS {
	if devPath == "" {
		devPath = "./www"
	}

	// Development: check filesystem first
	if stat, err := os.Stat(devPath); err == nil && stat.IsDir() {
		return os.DirFS(devPath)
	}

	// Production: use embedded assets.
	// The assets FS has a "www/" prefix, so strip it with Sub.
	subFS, err := fs.Sub(assets, "www")
	if err != nil {
		// This should never happen with properly embedded assets
		panic("failed to access embedded site assets: " + err.Error())
	}
	return subFS
}
