package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tubescribe/internal/media"
)

type fakeRemote struct {
	id    string
	err   error
	calls []string
}

func (f *fakeRemote) ResolveChannelID(_ context.Context, channelURL string) (string, error) {
	f.calls = append(f.calls, channelURL)
	return f.id, f.err
}

func TestResolveLocalShapes(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		wantID string
	}{
		{"channel id", "https://www.youtube.com/channel/UCabc123", "UCabc123"},
		{"channel id with trailing path", "https://www.youtube.com/channel/UCabc123/videos", "UCabc123"},
		{"handle", "https://www.youtube.com/@SomeCreator", "SomeCreator"},
		{"handle with trailing path", "https://www.youtube.com/@SomeCreator/videos", "SomeCreator"},
		{"bare domain", "https://youtube.com/channel/UCabc123", "UCabc123"},
		{"mobile domain", "https://m.youtube.com/channel/UCabc123", "UCabc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{}
			ref, err := New(remote).Resolve(context.Background(), tt.rawURL)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.rawURL, err)
			}
			if ref.ID != tt.wantID {
				t.Errorf("id = %q, want %q", ref.ID, tt.wantID)
			}
			if ref.ID == "" {
				t.Error("resolver returned empty identifier")
			}
			if len(remote.calls) != 0 {
				t.Errorf("local shape hit the network: %v", remote.calls)
			}
		})
	}
}

func TestResolveLegacyShapesDelegate(t *testing.T) {
	for _, rawURL := range []string{
		"https://www.youtube.com/c/SomeName",
		"https://www.youtube.com/user/somename",
	} {
		t.Run(rawURL, func(t *testing.T) {
			remote := &fakeRemote{id: "UCresolved"}
			ref, err := New(remote).Resolve(context.Background(), rawURL)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", rawURL, err)
			}
			if ref.ID != "UCresolved" {
				t.Errorf("id = %q", ref.ID)
			}
			if len(remote.calls) != 1 || remote.calls[0] != rawURL {
				t.Errorf("remote calls = %v", remote.calls)
			}
		})
	}
}

func TestResolveLegacyShapePropagatesRemoteError(t *testing.T) {
	wantErr := fmt.Errorf("%w: boom", media.ErrChannelFetch)
	remote := &fakeRemote{err: wantErr}
	_, err := New(remote).Resolve(context.Background(), "https://www.youtube.com/c/SomeName")
	if !errors.Is(err, media.ErrChannelFetch) {
		t.Fatalf("expected channel fetch error, got %v", err)
	}
}

func TestResolveRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
	}{
		{"wrong domain", "https://vimeo.com/channel/UCabc123"},
		{"lookalike domain", "https://notyoutube.com/channel/UCabc123"},
		{"no recognized shape", "https://www.youtube.com/watch?v=abc"},
		{"empty path", "https://www.youtube.com/"},
		{"bare channel marker", "https://www.youtube.com/channel/"},
		{"bare at sign", "https://www.youtube.com/@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&fakeRemote{id: "UCx"}).Resolve(context.Background(), tt.rawURL)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Resolve(%q) = %v, want ErrInvalidInput", tt.rawURL, err)
			}
		})
	}
}

func TestResolveLegacyWithoutRemote(t *testing.T) {
	_, err := New(nil).Resolve(context.Background(), "https://www.youtube.com/user/somename")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
