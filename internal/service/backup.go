package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/drinklog/internal/app"
)

const backupExt = ".db"

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// BackupFileName is the default name for a backup taken at t.
func BackupFileName(t time.Time) string {
	return "drinklog-" + t.Format("20060102-150405") + backupExt
}

// CreateBackup copies a SQLite database file and writes a .sha256 sidecar.
func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return BackupInfo{}, fmt.Errorf("stat database: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup verifies the sidecar checksum when present and copies the
// backup over dbPath.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

// ListBackups returns backups in dir, newest first. A missing dir is empty.
func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), backupExt) {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Path > out[j].Path
	})
	return out, nil
}

// LatestBackup names the newest backup in a Backups directory.
const LatestBackup = "latest"

// Backups manages snapshot files of one SQLite database.
type Backups struct {
	DBPath string
	Dir    string
	now    func() time.Time
}

// NewBackups keeps snapshots in dir, or next to the database when dir is empty.
func NewBackups(dbPath, dir string) Backups {
	if strings.TrimSpace(dir) == "" {
		dir = app.DefaultBackupDir(dbPath)
	}
	return Backups{DBPath: dbPath, Dir: dir, now: time.Now}
}

// Create snapshots the database to out, or to a timestamped file in Dir.
func (b Backups) Create(out string) (BackupInfo, error) {
	if strings.TrimSpace(out) == "" {
		now := time.Now
		if b.now != nil {
			now = b.now
		}
		out = filepath.Join(b.Dir, BackupFileName(now()))
	}
	return CreateBackup(b.DBPath, out)
}

func (b Backups) List() ([]BackupInfo, error) {
	return ListBackups(b.Dir)
}

// Resolve maps "latest" to the newest snapshot in Dir, and a bare file name
// to a file inside Dir when it does not exist as given.
func (b Backups) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", fmt.Errorf("backup file is required")
	case name == LatestBackup:
		items, err := b.List()
		if err != nil {
			return "", err
		}
		if len(items) == 0 {
			return "", fmt.Errorf("no backups in %s", b.Dir)
		}
		return items[0].Path, nil
	}
	if _, err := os.Stat(name); err == nil || filepath.Base(name) != name {
		return name, nil
	}
	return filepath.Join(b.Dir, name), nil
}

// Restore copies the resolved snapshot over the database and returns its path.
func (b Backups) Restore(name string, force bool) (string, error) {
	path, err := b.Resolve(name)
	if err != nil {
		return "", err
	}
	if err := RestoreBackup(path, b.DBPath, force); err != nil {
		return "", err
	}
	return path, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
