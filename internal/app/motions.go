package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/hxmotion/internal/dispatcher/handler"
	motionhandler "github.com/dshills/hxmotion/internal/dispatcher/handlers/motion"
	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/input"
	"github.com/dshills/hxmotion/internal/motion"
)

// RepeatKey names the repeat-last-motion step in a motion list.
const RepeatKey = "."

// Landing is where one motion left the primary cursor.
type Landing struct {
	Kind   motion.Kind
	Offset buffer.ByteOffset
	Point  buffer.Point

	// Found is false when the scan ran out of text.
	Found bool
}

// String formats the landing as 1-based "line:col" followed by whether
// a boundary was found.
func (l Landing) String() string {
	state := "found"
	if !l.Found {
		state = "clamped"
	}
	return fmt.Sprintf("%d:%d %s", l.Point.Line+1, l.Point.Column+1, state)
}

// RunMotion dispatches kind count times from the primary cursor.
func (app *Application) RunMotion(kind motion.Kind, count int) (Landing, error) {
	return app.runAction(kind.String(), motionhandler.ActionFor(kind), count)
}

// RunMotions runs each named motion in order. Names may be motion names
// ("next_word_start"), keys ("w") or RepeatKey.
func (app *Application) RunMotions(names []string, count int) ([]Landing, error) {
	landings := make([]Landing, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		action := motionhandler.ActionRepeatLast
		if name != RepeatKey {
			kind, err := motion.ParseKind(name)
			if err != nil {
				return landings, &MotionError{Motion: name, Err: err}
			}
			action = motionhandler.ActionFor(kind)
		}

		l, err := app.runAction(name, action, count)
		if err != nil {
			return landings, err
		}
		landings = append(landings, l)
	}
	return landings, nil
}

func (app *Application) runAction(name, action string, count int) (Landing, error) {
	result := app.dispatcher.DispatchWithContext(input.Action{
		Name:   action,
		Count:  count,
		Source: input.SourceCommandLine,
	}, app.inputCtx)
	if _, ok := result.GetData("motion"); !ok && action == motionhandler.ActionRepeatLast && !result.IsError() {
		return Landing{}, &MotionError{Motion: name, Err: motionhandler.ErrNoLastMotion}
	}
	return app.landingFrom(name, result)
}

// landingFrom reads the motion outcome from a dispatch result.
func (app *Application) landingFrom(name string, result handler.Result) (Landing, error) {
	if result.IsError() {
		err := result.Error
		if err == nil {
			err = errors.New(result.Message)
		}
		return Landing{}, &MotionError{Motion: name, Err: err}
	}

	kind, err := motion.ParseKind(result.GetDataString("motion"))
	if err != nil {
		return Landing{}, &MotionError{Motion: name, Err: err}
	}
	off := buffer.ByteOffset(result.GetDataInt("head"))
	return Landing{
		Kind:   kind,
		Offset: off,
		Point:  app.doc.Snapshot().OffsetToPoint(off),
		Found:  result.GetDataBool("found"),
	}, nil
}
