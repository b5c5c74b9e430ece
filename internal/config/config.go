package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Training API
	APIBaseURL string
	APIToken   string

	// Offline storage
	OfflineRoot   string
	MinFreeDiskMB int64

	// Media CDN hosts allowed for offline video download
	MediaHosts []string

	// SFTP mirror (cmd/mirror)
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
}

func Load() Config {
	return Config{
		APIBaseURL: getenv("API_BASE_URL", "https://api.gopaws.app"),
		APIToken:   os.Getenv("API_TOKEN"),

		OfflineRoot:   getenv("OFFLINE_ROOT", "offline"),
		MinFreeDiskMB: int64(getenvInt("MIN_FREE_DISK_MB", 500)),

		MediaHosts: splitList(getenv("MEDIA_HOSTS", "cdn.gopaws.app,media.gopaws.app")),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/backups"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
