package inkwell

import "embed"

// EmbeddedAssets contains static assets shipped with the app: style.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
