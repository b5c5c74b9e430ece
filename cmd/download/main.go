package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"course-offline/internal/api"
	"course-offline/internal/config"
	"course-offline/internal/offline"
	"course-offline/internal/storage"
)

func main() {
	var (
		course = flag.String("course", "", "course type to download (required)")
		root   = flag.String("root", "", "offline storage root (default from OFFLINE_ROOT)")
		force  = flag.Bool("force", false, "skip the free disk space check")
	)
	flag.Parse()

	if *course == "" {
		log.Fatal("missing -course")
	}

	cfg := config.Load()
	if *root == "" {
		*root = cfg.OfflineRoot
	}

	store := storage.NewStore(*root)
	store.MinFreeBytes = cfg.MinFreeDiskMB * 1024 * 1024

	if !*force && !store.HasEnoughDiskSpace() {
		log.Fatalf("not enough free disk space (need %d MB); rerun with -force to skip the check", cfg.MinFreeDiskMB)
	}

	// Ctrl-C cancels and rolls the partial download back.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	orch := offline.NewOrchestrator(api.New(cfg.APIBaseURL, cfg.APIToken), store, cfg.MediaHosts)

	res := orch.DownloadCourse(ctx, *course, func(p offline.Progress) {
		if p.Label != "" {
			fmt.Printf("%s %d/%d %s\n", p.Phase, p.Current, p.Total, p.Label)
			return
		}
		fmt.Printf("%s %d/%d\n", p.Phase, p.Current, p.Total)
	})

	if !res.Success {
		if res.Code != "" {
			log.Fatalf("download failed: %s (code=%s)", res.Error, res.Code)
		}
		log.Fatalf("download failed: %s", res.Error)
	}
	fmt.Printf("OK: %s downloaded (version %s)\n", *course, res.Version)
}
