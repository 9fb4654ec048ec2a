package webdav

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/xxxsen/objdav/server/model"
)

const statusOK = "HTTP/1.1 200 OK"

func toResponse(r *PathResolver, rec *PropertyRecord) *model.Response {
	resp := &model.Response{
		Href: r.Href(rec.Key, rec.Collection),
		Propstat: model.Propstat{
			Prop: model.Prop{
				CreationDate:    rec.CreationDate.UTC().Format(time.RFC3339),
				DisplayName:     rec.DisplayName,
				ContentLanguage: rec.ContentLanguage,
				ContentLength:   rec.ContentLength,
				ContentType:     rec.ContentType,
				ETag:            rec.ETag,
				LastModified:    rec.LastModified.UTC().Format(http.TimeFormat),
			},
			Status: statusOK,
		},
	}
	if rec.Collection {
		resp.Propstat.Prop.ResourceType.Collection = &struct{}{}
	}
	return resp
}

// serialize renders records as a DAV: multistatus document. encoding/xml
// escapes every text node.
func serialize(r *PathResolver, records []*PropertyRecord) ([]byte, error) {
	ms := &model.Multistatus{
		XMLNS:     "DAV:",
		Responses: make([]*model.Response, 0, len(records)),
	}
	for _, rec := range records {
		ms.Responses = append(ms.Responses, toResponse(r, rec))
	}
	buf := bytes.NewBufferString(xml.Header)
	if err := xml.NewEncoder(buf).Encode(ms); err != nil {
		return nil, fmt.Errorf("encode multistatus failed, err:%w", err)
	}
	return buf.Bytes(), nil
}
