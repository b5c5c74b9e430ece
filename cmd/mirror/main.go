package main

import (
	"context"
	"flag"
	"log"
	"time"

	"course-offline/internal/config"
	"course-offline/internal/sftpclient"
	"course-offline/internal/storage"
)

// Mirrors a downloaded course tree to a remote host over SFTP, so a device
// backup survives reinstalls without re-downloading media.
func main() {
	var (
		course  = flag.String("course", "", "course type to mirror (required)")
		root    = flag.String("root", "", "offline storage root (default from OFFLINE_ROOT)")
		timeout = flag.Duration("timeout", 15*time.Minute, "upload timeout")
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

	if _, ok := store.CourseMeta(*course); !ok {
		log.Fatalf("course %s is not downloaded (no valid meta.json under %s)", *course, *root)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	upCfg := sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
	}

	if err := sftpclient.UploadCourseDir(ctx, upCfg, store.CourseDir(*course), *course); err != nil {
		log.Fatalf("mirror error: %v", err)
	}
	log.Printf("mirrored to sftp://%s:%d%s/%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir, *course)
}
