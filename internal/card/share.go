package card

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"roaster-backend/internal/models"
)

const (
	msgRendererMissing  = "Canvas not supported or context could not be created."
	msgEncodeFailed     = "Failed to create image blob."
	msgShareFailed      = "An error occurred while trying to share the image."
	msgShareUnsupported = "Sharing is not supported on this device. You can copy the text instead."
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName is the export name for a card of the given subject.
func FileName(name string) string {
	return fmt.Sprintf("%s_%s.png", FileNamePrefix, whitespaceRun.ReplaceAllString(name, "_"))
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type ShareData struct {
	Files []File
	Title string
	Text  string
}

// Platform is the native share capability. A nil Platform means the host
// cannot share at all.
type Platform interface {
	CanShare(data ShareData) bool
	Share(ctx context.Context, data ShareData) error
}

type Clipboard interface {
	Copy(text string) error
}

// Notifier shows a transient, non-fatal message to the user.
type Notifier interface {
	Notify(msg string)
}

type ShareOutcome int

const (
	ShareAborted ShareOutcome = iota
	SharedFile
	SharedText
	CopiedToClipboard
	ShareFailed
)

func (o ShareOutcome) String() string {
	switch o {
	case SharedFile:
		return "shared-file"
	case SharedText:
		return "shared-text"
	case CopiedToClipboard:
		return "copied"
	case ShareFailed:
		return "failed"
	default:
		return "aborted"
	}
}

// Sharer runs the export flow: render, encode, then the first share path
// the platform supports.
type Sharer struct {
	Renderer  Renderer
	Platform  Platform
	Clipboard Clipboard
	Notifier  Notifier
}

// ClipboardText is the plain-text form of a result.
func ClipboardText(in Input) string {
	return fmt.Sprintf("AI %s for %s (%s):\n\n%s", in.Mode.Label(), in.Name, in.Career, in.Text)
}

func shareData(in Input, file File) ShareData {
	return ShareData{
		Files: []File{file},
		Title: fmt.Sprintf("AI %s for %s", in.Mode.Label(), in.Name),
		Text: fmt.Sprintf("Check out this AI %s for %s (%s)! Generated by AI Roaster & Praiser.",
			lowerLabel(in.Mode), in.Name, in.Career),
	}
}

func lowerLabel(mode models.Mode) string {
	if mode == models.ModeRoast {
		return "roast"
	}
	return "praise"
}

// Share never returns an error: every failure becomes a notice.
func (s *Sharer) Share(ctx context.Context, in Input) ShareOutcome {
	if s.Renderer == nil {
		s.notify(msgRendererMissing)
		return ShareAborted
	}

	c, err := s.Renderer.Render(in)
	if err != nil {
		log.Printf("Error rendering share card: %v", err)
		s.notify(msgShareFailed)
		return ShareFailed
	}
	data, err := c.PNG()
	if err != nil || len(data) == 0 {
		log.Printf("Error encoding share card: %v", err)
		s.notify(msgEncodeFailed)
		return ShareFailed
	}

	sd := shareData(in, File{Name: FileName(in.Name), ContentType: "image/png", Data: data})

	switch {
	case s.Platform != nil && s.Platform.CanShare(sd):
		if err := s.Platform.Share(ctx, sd); err != nil {
			log.Printf("Error sharing card image: %v", err)
			s.notify(msgShareFailed)
			return ShareFailed
		}
		return SharedFile
	case s.Platform != nil:
		textOnly := ShareData{
			Title: sd.Title,
			Text:  fmt.Sprintf("%s\n\n\"%s\"", sd.Text, in.Text),
		}
		if err := s.Platform.Share(ctx, textOnly); err != nil {
			log.Printf("Error sharing card text: %v", err)
			s.notify(msgShareFailed)
			return ShareFailed
		}
		return SharedText
	default:
		s.notify(msgShareUnsupported)
		return s.Copy(in)
	}
}

// Copy puts the plain-text form of a result on the clipboard. No platform is
// consulted and no notice is shown.
func (s *Sharer) Copy(in Input) ShareOutcome {
	if s.Clipboard == nil {
		return ShareFailed
	}
	if err := s.Clipboard.Copy(ClipboardText(in)); err != nil {
		log.Printf("Failed to copy text: %v", err)
		return ShareFailed
	}
	return CopiedToClipboard
}

func (s *Sharer) notify(msg string) {
	if s.Notifier != nil {
		s.Notifier.Notify(msg)
	}
}
