package drivers

// StubCameraDriver reports the capability flags it was configured with but
// never starts a real capture device, mirroring original_source's
// GeneratorCameraDriver (every method there is a bare pass/TODO). A host
// that needs real camera frames should provide its own CameraDriver;
// nothing in this frontend's scope drives a capture device.
type StubCameraDriver struct {
	caps uint64
}

func NewStubCameraDriver(caps uint64) *StubCameraDriver {
	return &StubCameraDriver{caps: caps}
}

func (d *StubCameraDriver) Start() bool       { return false }
func (d *StubCameraDriver) Stop()             {}
func (d *StubCameraDriver) Capabilities() uint64 { return d.caps }
