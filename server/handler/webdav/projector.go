package webdav

import (
	"strings"
	"time"

	"github.com/xxxsen/objdav/server/httpkit"
	"github.com/xxxsen/objdav/store"
	"github.com/xxxsen/objdav/utils"
)

// PropertyRecord is the WebDAV view of one resource, built per response.
type PropertyRecord struct {
	Key             string
	CreationDate    time.Time
	DisplayName     string
	ContentLanguage string
	ContentLength   int64
	ContentType     string
	ETag            string
	LastModified    time.Time
	Collection      bool
}

func displayName(key string) string {
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

// project converts a store object into its property record. A nil info is
// an implicit collection, a prefix with no marker object.
func project(key string, info *store.ObjectInfo, collection bool) *PropertyRecord {
	if info == nil {
		now := time.Now().UTC()
		return &PropertyRecord{
			Key:          key,
			CreationDate: now,
			DisplayName:  displayName(key),
			LastModified: now,
			Collection:   true,
		}
	}
	rec := &PropertyRecord{
		Key:             key,
		CreationDate:    info.Uploaded,
		DisplayName:     displayName(key),
		ContentLanguage: info.ContentLanguage,
		ContentLength:   info.Size,
		ContentType:     info.ContentType,
		ETag:            utils.QuoteETag(info.ETag),
		LastModified:    info.Uploaded,
		Collection:      collection || info.IsCollectionMarker(),
	}
	if name, ok := info.Metadata[store.MetaDisplayName]; ok && len(name) > 0 {
		rec.DisplayName = name
	}
	if rec.Collection {
		rec.ContentLength = 0
		rec.ContentType = ""
		return rec
	}
	// s3 列举结果不带类型, 按扩展名补齐, 与 GET 的取值保持一致
	if len(rec.ContentType) == 0 {
		rec.ContentType = httpkit.DetermineMimeType(key)
	}
	return rec
}
