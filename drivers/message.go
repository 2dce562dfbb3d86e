package drivers

import (
	"log"

	"github.com/retrohost/retrohost/abi"
)

// LoggerMessageInterface routes SET_MESSAGE / SET_MESSAGE_EXT to the same
// logger the rest of the frontend uses, named after original_source's
// LoggerMessageInterface. A headless session has no OSD, so logging is the
// baseline message sink every session gets for free.
type LoggerMessageInterface struct {
	Logger *log.Logger
}

func NewLoggerMessageInterface(logger *log.Logger) *LoggerMessageInterface {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggerMessageInterface{Logger: logger}
}

func (m *LoggerMessageInterface) InterfaceVersion() int { return 1 }

func (m *LoggerMessageInterface) ShowMessage(msg abi.Message) bool {
	m.Logger.Printf("[core message] %s", msg.Msg)
	return true
}

func (m *LoggerMessageInterface) ShowMessageExt(msg abi.MessageExt) bool {
	m.Logger.Printf("[core message] %s (priority=%d duration=%dms)", msg.Msg, msg.Priority, msg.Duration)
	return true
}

// ClipboardMessageInterface decorates another MessageDriver by additionally
// mirroring each message to the system clipboard, useful for headless
// debugging sessions where there is no OSD to read messages off of.
type ClipboardMessageInterface struct {
	Inner MessageDriver
	Write func([]byte) error
}

func (m *ClipboardMessageInterface) InterfaceVersion() int {
	return m.Inner.InterfaceVersion()
}

func (m *ClipboardMessageInterface) ShowMessage(msg abi.Message) bool {
	ok := m.Inner.ShowMessage(msg)
	m.mirror(msg.Msg)
	return ok
}

func (m *ClipboardMessageInterface) ShowMessageExt(msg abi.MessageExt) bool {
	ok := m.Inner.ShowMessageExt(msg)
	m.mirror(msg.Msg)
	return ok
}

func (m *ClipboardMessageInterface) mirror(text string) {
	if m.Write == nil {
		return
	}
	_ = m.Write([]byte(text))
}
