package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"course-offline/internal/api"
	"course-offline/internal/config"
	"course-offline/internal/offline"
	"course-offline/internal/storage"
)

func main() {
	var (
		root         = flag.String("root", "", "offline storage root (default from OFFLINE_ROOT)")
		del          = flag.String("delete", "", "delete this course's offline data and exit")
		checkUpdates = flag.Bool("check-updates", false, "ask the API whether downloaded courses have updates")
	)
	flag.Parse()

	cfg := config.Load()
	if *root == "" {
		*root = cfg.OfflineRoot
	}
	store := storage.NewStore(*root)

	if *del != "" {
		if err := store.DeleteCourseData(*del); err != nil {
			log.Fatalf("delete error: %v", err)
		}
		fmt.Printf("OK: deleted %s\n", *del)
		return
	}

	types := store.OfflineCourseTypes()
	if len(types) == 0 {
		fmt.Println("no offline courses")
		return
	}

	var orch *offline.Orchestrator
	if *checkUpdates {
		orch = offline.NewOrchestrator(api.New(cfg.APIBaseURL, cfg.APIToken), store, cfg.MediaHosts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, ct := range types {
		meta, ok := store.CourseMeta(ct)
		if !ok {
			// Directory exists but metadata is missing/corrupt/outdated:
			// treated as not downloaded.
			fmt.Printf("%s\t(invalid metadata, re-download needed)\n", ct)
			continue
		}

		line := fmt.Sprintf("%s\t%s\tdownloaded=%s", ct, meta.Course.Name, meta.DownloadedAt)
		if orch != nil {
			updated, err := orch.HasCourseUpdate(ctx, ct)
			switch {
			case err != nil:
				line += "\tupdate=?"
			case updated:
				line += "\tupdate=available"
			default:
				line += "\tupdate=none"
			}
		}
		fmt.Println(line)
	}
}
