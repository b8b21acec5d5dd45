package acquire

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
)

var driveFileID = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

type gdriveResolver struct {
	http *httpResolver
}

func (r *gdriveResolver) Name() string { return "gdrive" }

func (r *gdriveResolver) Resolve(ctx context.Context, req Request) (string, error) {
	id, err := DriveFileID(req.Source)
	if err != nil {
		return "", err
	}
	return r.http.download(ctx, DriveDownloadURL(id), "gdrive_"+id+".mp4", nil)
}

// DriveFileID extracts the file id from a /d/<id> share link or an id= query
func DriveFileID(raw string) (string, error) {
	if m := driveFileID.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}
	if u, err := url.Parse(raw); err == nil {
		if id := u.Query().Get("id"); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not extract file id from google drive url %s", raw)
}

func DriveDownloadURL(id string) string {
	return "https://drive.google.com/uc?export=download&id=" + url.QueryEscape(id)
}
