package helper

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type ReaperConfig struct {
	Prefixes      []string // bucket logis, mis. student-photos/, payment-proofs/
	RetentionDays int
	CronSchedule  string
	DryRun        bool
}

// ReferencedURLs mengembalikan semua URL file yang masih dipakai (submission, tiket).
type ReferencedURLs func(ctx context.Context) ([]string, error)

// MergeReferenced menggabungkan beberapa sumber URL yang masih dipakai.
// Satu sumber gagal = satu putaran reaper batal.
func MergeReferenced(sources ...ReferencedURLs) ReferencedURLs {
	return func(ctx context.Context) ([]string, error) {
		var all []string
		for _, src := range sources {
			urls, err := src(ctx)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}
}

// StartOrphanReaperCron: jadwalkan pembersihan upload yatim (tidak dirujuk
// submission mana pun dan lebih tua dari retention). Caller wajib Stop().
func StartOrphanReaperCron(cfg ReaperConfig, store BlobStore, referenced ReferencedURLs) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		if _, err := RunOrphanReaper(ctx, store, referenced, cfg.Prefixes, retention, cfg.DryRun, time.Now()); err != nil {
			log.Printf("[UPLOAD-REAPER] error: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[UPLOAD-REAPER] started schedule=%q prefixes=%v retention=%dd dryRun=%v",
		cfg.CronSchedule, cfg.Prefixes, cfg.RetentionDays, cfg.DryRun)
	c.Start()
	return c, nil
}

// RunOrphanReaper satu putaran; mengembalikan key yang dihapus (atau akan
// dihapus bila dryRun).
func RunOrphanReaper(
	ctx context.Context,
	store BlobStore,
	referenced ReferencedURLs,
	prefixes []string,
	retention time.Duration,
	dryRun bool,
	now time.Time,
) ([]string, error) {
	urls, err := referenced(ctx)
	if err != nil {
		return nil, err
	}
	inUse := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if k, ok := store.KeyFromURL(u); ok {
			inUse[k] = struct{}{}
		}
	}

	threshold := now.Add(-retention)
	var orphans []string
	total := 0
	for _, prefix := range prefixes {
		objs, err := store.List(ctx, prefix)
		if err != nil {
			return nil, err
		}
		for _, obj := range objs {
			total++
			if _, ok := inUse[obj.Key]; ok {
				continue
			}
			if obj.LastModified.Before(threshold) {
				orphans = append(orphans, obj.Key)
			}
		}
	}

	if len(orphans) == 0 {
		log.Printf("[UPLOAD-REAPER] nothing to delete; scanned=%d", total)
		return nil, nil
	}
	if dryRun {
		log.Printf("[UPLOAD-REAPER] DRY-RUN would delete %d/%d objects", len(orphans), total)
		return orphans, nil
	}
	if err := store.Delete(ctx, orphans); err != nil {
		return nil, err
	}
	log.Printf("[UPLOAD-REAPER] deleted %d objects (scanned=%d)", len(orphans), total)
	return orphans, nil
}
