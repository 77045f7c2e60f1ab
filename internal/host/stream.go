package host

import (
	"go.uber.org/zap"

	"github.com/GriffinCanCode/framewidget/internal/shared/id"
)

const streamBuffer = 4

// Subscribe returns a channel that receives the instance's current page and
// then every re-rendering. Slow subscribers skip intermediate frames; the
// newest frame is always delivered. The channel is closed when the instance
// is destroyed or cancel is called.
func (m *Manager) Subscribe(wid id.WidgetID) (<-chan Frame, func(), error) {
	inst, err := m.lookup(wid)
	if err != nil {
		return nil, nil, err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.closed {
		return nil, nil, ErrNotFound
	}

	page, err := inst.doc.Render()
	if err != nil {
		return nil, nil, err
	}

	key := inst.nextSub
	inst.nextSub++
	ch := make(chan Frame, streamBuffer)
	ch <- Frame{Revision: inst.revision, HTML: page}
	inst.subs[key] = ch

	cancel := func() {
		inst.mu.Lock()
		defer inst.mu.Unlock()
		if sub, ok := inst.subs[key]; ok {
			delete(inst.subs, key)
			close(sub)
		}
	}
	return ch, cancel, nil
}

// publish pushes the current page to every subscriber. Called with inst.mu
// held, so it is the only sender on the channels.
func (m *Manager) publish(inst *instance) {
	if len(inst.subs) == 0 {
		return
	}
	page, err := inst.doc.Render()
	if err != nil {
		inst.logger.Error("Failed to render page for subscribers", zap.Error(err))
		return
	}

	frame := Frame{Revision: inst.revision, HTML: page}
	for _, ch := range inst.subs {
		select {
		case ch <- frame:
		default:
			// Drop the oldest frame to make room
			select {
			case <-ch:
			default:
			}
			ch <- frame
		}
		if m.metrics != nil {
			m.metrics.FramePushed()
		}
	}
}
