package appfs

import "embed"

//go:embed migrations
var Migrations embed.FS

//go:embed templates
var Templates embed.FS
