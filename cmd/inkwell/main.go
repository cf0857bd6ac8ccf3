package main

import (
	"log"
	"strings"

	"inkwell"
)

func main() {
	cfg := inkwell.SiteConfig{
		Name:        inkwell.EnvOr("SITE_NAME", "Blog"),
		URL:         strings.TrimSuffix(inkwell.EnvOr("SITE_URL", "http://localhost:3000"), "/"),
		Description: inkwell.EnvOr("SITE_DESCRIPTION", ""),
		Author:      inkwell.EnvOr("SITE_AUTHOR", ""),

		Addr:         inkwell.EnvOr("ADDR", ":3000"),
		DatabasePath: databasePath(),

		SessionSecret: inkwell.MustEnv("SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(inkwell.EnvOr("COOKIE_SECURE", ""), "true"),
	}

	app := inkwell.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// databasePath resolves DATABASE_URL to a SQLite file path. A sqlite://
// prefix is accepted for compatibility with connection-string style values.
func databasePath() string {
	v := inkwell.EnvOr("DATABASE_URL", "data/blog.db")
	v = strings.TrimPrefix(v, "sqlite:///")
	v = strings.TrimPrefix(v, "sqlite://")
	return v
}
