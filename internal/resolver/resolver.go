// Package resolver turns free-form channel URLs into canonical channel ids.
//
// Four path shapes are accepted: /channel/<id>, /@<handle>, /c/<name>, and
// /user/<name>. The first two resolve locally; the legacy shapes need a
// network round-trip through the media capability to learn the canonical id.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tubescribe/internal/media"
)

// ErrInvalidInput marks a URL that is not a recognized channel reference.
// Fatal before any pipeline I/O happens.
var ErrInvalidInput = errors.New("invalid channel URL")

// ChannelRef is a validated, canonical channel identifier. Immutable once
// resolved.
type ChannelRef struct {
	// ID is the platform-assigned opaque channel id.
	ID string
	// RawURL is the input the id was resolved from.
	RawURL string
}

// Resolver extracts channel ids from URLs, delegating legacy custom-name and
// username shapes to the remote resolver.
type Resolver struct {
	remote media.ChannelResolver
}

// New builds a resolver. remote may be nil, in which case legacy URL shapes
// fail with ErrInvalidInput.
func New(remote media.ChannelResolver) *Resolver {
	return &Resolver{remote: remote}
}

// Resolve parses rawURL and returns the canonical channel reference.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (ChannelRef, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ChannelRef{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	host := strings.ToLower(parsed.Hostname())
	if host != "youtube.com" && !strings.HasSuffix(host, ".youtube.com") {
		return ChannelRef{}, fmt.Errorf("%w: host %q is not a YouTube domain", ErrInvalidInput, parsed.Hostname())
	}

	segments := splitPath(parsed.Path)

	if id, ok := segmentAfter(segments, "channel"); ok {
		return ChannelRef{ID: id, RawURL: rawURL}, nil
	}

	for _, segment := range segments {
		if handle, ok := strings.CutPrefix(segment, "@"); ok && handle != "" {
			return ChannelRef{ID: handle, RawURL: rawURL}, nil
		}
	}

	_, isCustom := segmentAfter(segments, "c")
	_, isUser := segmentAfter(segments, "user")
	if isCustom || isUser {
		if r.remote == nil {
			return ChannelRef{}, fmt.Errorf("%w: legacy URL %q needs remote resolution", ErrInvalidInput, rawURL)
		}
		id, err := r.remote.ResolveChannelID(ctx, rawURL)
		if err != nil {
			return ChannelRef{}, err
		}
		if id == "" {
			return ChannelRef{}, fmt.Errorf("%w: empty channel id for %q", ErrInvalidInput, rawURL)
		}
		return ChannelRef{ID: id, RawURL: rawURL}, nil
	}

	return ChannelRef{}, fmt.Errorf("%w: could not extract a channel id from %q", ErrInvalidInput, rawURL)
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// segmentAfter returns the path segment following marker, if any.
func segmentAfter(segments []string, marker string) (string, bool) {
	for i, segment := range segments {
		if segment == marker && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], true
		}
	}
	return "", false
}
