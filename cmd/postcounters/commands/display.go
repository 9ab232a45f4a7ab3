package commands

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/clear-ness/postcounters/app"
)

var (
	likedIcon   = color.New(color.FgRed)
	pulseIcon   = color.New(color.FgRed, color.Bold)
	unlikedIcon = color.New(color.FgWhite)
	viewsLabel  = color.New(color.FgCyan)
)

// terminalDisplay redraws one status line every time a counter or the icon changes.
type terminalDisplay struct {
	out io.Writer
	mu  sync.Mutex

	views *app.MemoryCounter
	likes *app.MemoryCounter
	icon  *app.MemoryIcon
}

func newTerminalDisplay(out io.Writer, views, likes int, liked bool) *terminalDisplay {
	d := &terminalDisplay{
		out:   out,
		views: app.NewMemoryCounter(views),
		likes: app.NewMemoryCounter(likes),
		icon:  app.NewMemoryIcon(liked),
	}

	d.views.OnChange = func(int) { d.Render() }
	d.likes.OnChange = func(int) { d.Render() }
	d.icon.OnChange = d.Render

	return d
}

func (d *terminalDisplay) PageContext(postId string, credential app.CredentialProvider) app.PageContext {
	return app.PageContext{
		PostId:      postId,
		ViewCounter: d.views,
		LikeCounter: d.likes,
		LikeIcon:    d.icon,
		Credential:  credential,
	}
}

func (d *terminalDisplay) iconString() string {
	switch {
	case d.icon.Pulsing() && d.icon.Liked():
		return pulseIcon.Sprint("♥")
	case d.icon.Pulsing():
		return pulseIcon.Sprint("♡")
	case d.icon.Liked():
		return likedIcon.Sprint("♥")
	default:
		return unlikedIcon.Sprint("♡")
	}
}

func (d *terminalDisplay) Render() {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.out, "\r%s %-8d %s %-8d", viewsLabel.Sprint("views"), d.views.Value(), d.iconString(), d.likes.Value())
}

// Message prints msg on its own line and redraws the status line below it.
func (d *terminalDisplay) Message(msg string) {
	d.mu.Lock()
	fmt.Fprintf(d.out, "\n%s\n", msg)
	d.mu.Unlock()

	d.Render()
}
