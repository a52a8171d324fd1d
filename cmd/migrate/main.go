package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"storefront-checkout/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

// Applies the versioned migrations under -dir using the atlas CLI.
func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	bin := flag.String("atlas", "atlas", "path to the atlas binary")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	flag.Parse()

	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to load database config", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", *bin)
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DirURL: *dir,
	})
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
}
