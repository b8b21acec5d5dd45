package acquire

import (
	"net/url"
	"strings"
)

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// Detect guesses the Kind of a source string
func Detect(source string) Kind {
	source = strings.TrimSpace(source)
	if strings.HasPrefix(source, "s3://") {
		return KindS3
	}

	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return KindLocal
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case youtubeHosts[host]:
		return KindYouTube
	case host == "drive.google.com":
		return KindGDrive
	default:
		return KindHTTP
	}
}

// resolveKind applies the requested kind, except that YouTube URLs always go
// to the YouTube resolver
func resolveKind(source string, requested Kind) Kind {
	detected := Detect(source)
	if detected == KindYouTube || requested == "" || requested == KindAuto {
		return detected
	}
	return requested
}
