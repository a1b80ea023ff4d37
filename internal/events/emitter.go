package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var Emit = func(ctx context.Context, name string, evt StoryEvent) {}

// EnableRuntimeEmitter forwards terminal events to the frontend and logs all
// of them through the Wails runtime logger. ctx must be the Wails app context.
func EnableRuntimeEmitter(appCtx context.Context) {
	Emit = func(ctx context.Context, name string, evt StoryEvent) {
		if evt.SessionKey == "" {
			if session := SessionFromContext(ctx); session != "" {
				evt.SessionKey = session
			}
		}

		if evt.Type == EventSuccess || evt.Type == EventError {
			runtime.EventsEmit(appCtx, name, evt)
		}

		logRuntimeEvent(appCtx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt StoryEvent)) {
	if f == nil {
		Emit = func(context.Context, string, StoryEvent) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt StoryEvent) {
		if evt.SessionKey == "" {
			if session := SessionFromContext(ctx); session != "" {
				evt.SessionKey = session
			}
		}
		f(ctx, name, evt)
	}
}
