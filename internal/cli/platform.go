package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"roaster-backend/internal/card"
)

// DirPlatform is the terminal's share target: files land in a directory and
// the share text is printed.
type DirPlatform struct {
	dir string
	out io.Writer
}

func NewDirPlatform(dir string, out io.Writer) *DirPlatform {
	return &DirPlatform{dir: dir, out: out}
}

func (p *DirPlatform) CanShare(data card.ShareData) bool {
	if len(data.Files) == 0 {
		return true
	}
	info, err := os.Stat(p.dir)
	return err == nil && info.IsDir()
}

func (p *DirPlatform) Share(ctx context.Context, data card.ShareData) error {
	for _, f := range data.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(p.dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(p.out, "Saved %s\n", path)
	}
	fmt.Fprintf(p.out, "%s\n%s\n", data.Title, data.Text)
	return nil
}

// Clipboard copies text with the platform's clipboard tool.
type Clipboard struct{}

func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Copy(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("wl-copy"); err == nil {
			cmd = exec.Command("wl-copy")
		} else {
			return fmt.Errorf("clipboard utilities not found")
		}
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	cmd.Stdin = bytes.NewBufferString(text)
	return cmd.Run()
}

// Notifier prints share notices.
type Notifier struct {
	w io.Writer
}

func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

func (n *Notifier) Notify(msg string) {
	fmt.Fprintln(n.w, msg)
}

var (
	_ card.Platform  = (*DirPlatform)(nil)
	_ card.Clipboard = (*Clipboard)(nil)
	_ card.Notifier  = (*Notifier)(nil)
)
