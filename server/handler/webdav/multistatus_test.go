package webdav

import (
	"encoding/xml"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/objdav/store"
)

type testProp struct {
	CreationDate    string `xml:"creationdate"`
	DisplayName     string `xml:"displayname"`
	ContentLanguage string `xml:"getcontentlanguage"`
	ContentLength   string `xml:"getcontentlength"`
	ContentType     string `xml:"getcontenttype"`
	ETag            string `xml:"getetag"`
	LastModified    string `xml:"getlastmodified"`
	ResourceType    struct {
		Collection *struct{} `xml:"collection"`
	} `xml:"resourcetype"`
}

type testMultistatus struct {
	XMLName   xml.Name `xml:"DAV: multistatus"`
	Responses []struct {
		Href   string   `xml:"href"`
		Prop   testProp `xml:"propstat>prop"`
		Status string   `xml:"propstat>status"`
	} `xml:"response"`
}

func TestProjectFile(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	rec := project("docs/a.txt", &store.ObjectInfo{Key: "docs/a.txt", Size: 5, ETag: "abc", Uploaded: ts}, false)
	assert.False(t, rec.Collection)
	assert.Equal(t, "a.txt", rec.DisplayName)
	assert.Equal(t, "text/plain; charset=utf-8", rec.ContentType)
	assert.Equal(t, `"abc"`, rec.ETag)
	assert.Equal(t, int64(5), rec.ContentLength)
	assert.Equal(t, ts, rec.LastModified)
}

func TestProjectContentType(t *testing.T) {
	info := &store.ObjectInfo{Key: "x", ETag: "e"}
	assert.Equal(t, "application/octet-stream", project("bin/noext", info, false).ContentType)
	assert.Equal(t, "application/json", project("a.json", info, false).ContentType)
	info.ContentType = "image/x-custom"
	assert.Equal(t, "image/x-custom", project("a.json", info, false).ContentType)
}

func TestProjectCollection(t *testing.T) {
	rec := project("docs/sub", nil, true)
	assert.True(t, rec.Collection)
	assert.Equal(t, "sub", rec.DisplayName)
	assert.Empty(t, rec.ETag)
	assert.Equal(t, int64(0), rec.ContentLength)
	assert.False(t, rec.LastModified.IsZero())

	marker := &store.ObjectInfo{
		Key:      "docs/sub/",
		Metadata: map[string]string{store.MetaResourceType: store.ResourceCollection, store.MetaDisplayName: "Sub Folder"},
	}
	rec = project("docs/sub", marker, false)
	assert.True(t, rec.Collection)
	assert.Equal(t, "Sub Folder", rec.DisplayName)
	assert.Empty(t, rec.ContentType)
}

func TestSerializeEscapes(t *testing.T) {
	r := NewPathResolver("/dav")
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	raw, err := serialize(r, []*PropertyRecord{
		{Key: "", DisplayName: "", CreationDate: ts, LastModified: ts, Collection: true},
		{Key: `a<&".txt`, DisplayName: `a<&".txt`, ContentType: `text/x-<&">`, ContentLength: 3, ETag: `"e"`, CreationDate: ts, LastModified: ts},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), xml.Header))

	ms := &testMultistatus{}
	require.NoError(t, xml.Unmarshal(raw, ms))
	require.Len(t, ms.Responses, 2)
	assert.Equal(t, "/dav/", ms.Responses[0].Href)
	assert.NotNil(t, ms.Responses[0].Prop.ResourceType.Collection)
	file := ms.Responses[1]
	assert.Equal(t, `a<&".txt`, file.Prop.DisplayName)
	assert.Equal(t, `text/x-<&">`, file.Prop.ContentType)
	assert.Equal(t, "3", file.Prop.ContentLength)
	assert.Equal(t, `"e"`, file.Prop.ETag)
	assert.Nil(t, file.Prop.ResourceType.Collection)
	assert.Equal(t, "HTTP/1.1 200 OK", file.Status)
	assert.Equal(t, ts.Format(time.RFC3339), file.Prop.CreationDate)
	assert.Equal(t, ts.Format(http.TimeFormat), file.Prop.LastModified)
	assert.Equal(t, "/dav/a%3C&%22.txt", file.Href)
}
