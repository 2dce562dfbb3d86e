package builder

import (
	"testing"

	"github.com/retrohost/retrohost/drivers"
)

func TestDefaults_WiresCoreDrivers(t *testing.T) {
	b := Defaults("/nonexistent/core.so")

	if b.video == nil {
		t.Error("expected a default VideoDriver")
	}
	if b.audio == nil {
		t.Error("expected a default AudioDriver")
	}
	if b.input == nil {
		t.Error("expected a default InputDriver")
	}
	if b.options == nil {
		t.Error("expected a default OptionDriver")
	}
	if b.content == nil {
		t.Error("expected a default ContentDriver")
	}
	if b.message == nil {
		t.Error("expected a default MessageDriver")
	}
}

func TestWithPaths_DefersPathDriverToBuild(t *testing.T) {
	b := New("/nonexistent/core.so").WithPaths("/sys", "/save", "/content")
	if b.path != nil {
		t.Fatal("WithPaths should not set path directly, only at Build time")
	}
	if b.systemDir != "/sys" || b.saveDir != "/save" || b.contentDir != "/content" {
		t.Errorf("unexpected directories: %+v", b)
	}
}

func TestWithClipboardMirror_WrapsExistingMessageDriver(t *testing.T) {
	logger := drivers.NewLoggerMessageInterface(nil)
	b := New("/nonexistent/core.so").WithMessage(logger).WithClipboardMirror()

	wrapped, ok := b.message.(*drivers.ClipboardMessageInterface)
	if !ok {
		t.Fatalf("expected *drivers.ClipboardMessageInterface, got %T", b.message)
	}
	if wrapped.Inner != logger {
		t.Error("expected the clipboard wrapper to keep the original MessageDriver as Inner")
	}
}
