package view

import (
	"errors"
	"log/slog"

	"github.com/soocke/droidcast-go/domain/capture"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// MessageNotifier shows errors in a modal Tk message box. Must be called on
// the Tk thread; returns once the operator dismissed the box.
type MessageNotifier struct {
	Title  string
	Logger *slog.Logger
}

func (n *MessageNotifier) Notify(err error) {
	if err == nil {
		return
	}
	if n.Logger != nil {
		n.Logger.Error("notify", "error", err)
	}
	title := n.Title
	if title == "" {
		title = "droidcast"
	}
	MessageBox(Icon(iconFor(err)), Title(title), Msg(headline(err)), Detail(err.Error()))
}

func headline(err error) string {
	switch {
	case errors.Is(err, capture.ErrProcessStart):
		return "Could not start adb. Check the adb path in the settings."
	case errors.Is(err, capture.ErrCaptureIO):
		return "Screen capture failed. Mirroring has stopped."
	case errors.Is(err, capture.ErrDecode):
		return "A frame could not be decoded and was skipped."
	default:
		return "Error"
	}
}

func iconFor(err error) string {
	if capture.Fatal(err) {
		return "error"
	}
	return "warning"
}
