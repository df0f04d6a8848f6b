// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tfctl/cliwire/internal/cacheutil"
	"github.com/tfctl/cliwire/internal/config"
	"github.com/tfctl/cliwire/internal/log"
)

// defaultCleanHours is the cache.clean fallback. Entries for plugin files
// that were deleted or moved are never rewritten, so age is what retires them.
const defaultCleanHours = 24 * 7

// cacheSubdirs places scan entries beneath the cache base directory.
var cacheSubdirs = []string{"scan"}

// cachedRecord is the on-disk form of a parse result. Size and ModTime
// identify the version of the file it was parsed from.
type cachedRecord struct {
	Size     int64    `json:"size"`
	ModTime  int64    `json:"modTime"`
	Declared []string `json:"declared"`
	Excluded []string `json:"excluded"`
}

// cacheKey identifies a file under one option set. Each file has a single
// entry that is overwritten when the file changes.
func (s *Scanner) cacheKey(path string) string {
	return fmt.Sprintf("%s|%s", path, s.version)
}

func (cr cachedRecord) current(info os.FileInfo) bool {
	return cr.Size == info.Size() && cr.ModTime == info.ModTime().UnixNano()
}

func (s *Scanner) readCache(path string, info os.FileInfo) (Record, bool) {
	entry, ok := cacheutil.Read(cacheSubdirs, s.cacheKey(path))
	if !ok {
		return Record{}, false
	}
	var cr cachedRecord
	if err := json.Unmarshal(entry.Data, &cr); err != nil {
		log.Debugf("ignoring corrupt scan cache entry %s: %v", entry.Path, err)
		return Record{}, false
	}
	if !cr.current(info) {
		log.Tracef("stale scan cache entry for %s", path)
		return Record{}, false
	}
	if cr.Declared == nil {
		cr.Declared = []string{}
	}
	if cr.Excluded == nil {
		cr.Excluded = []string{}
	}
	return Record{Declared: cr.Declared, Excluded: cr.Excluded}, true
}

func (s *Scanner) writeCache(path string, info os.FileInfo, rec Record) {
	data, err := json.Marshal(cachedRecord{
		Size:     info.Size(),
		ModTime:  info.ModTime().UnixNano(),
		Declared: rec.Declared,
		Excluded: rec.Excluded,
	})
	if err != nil {
		return
	}
	if err := cacheutil.Write(cacheSubdirs, s.cacheKey(path), data); err != nil {
		log.WithError(err).Warnf("failed to cache scan of %s", path)
	}
}

// PurgeCache removes cache entries older than the cache.clean config value
// in hours. Zero or a negative value disables purging.
func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean", defaultCleanHours)
	return cacheutil.Purge(cleanHours)
}
