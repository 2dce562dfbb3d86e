package drivers

// DefaultPathDriver answers the GET_*_DIRECTORY / GET_LIBRETRO_PATH family
// from a fixed set of directories configured once at session setup, named
// after original_source's DefaultPathDriver.
type DefaultPathDriver struct {
	System    string
	Save      string
	Content   string
	Playlist  string
	CorePath  string
}

func (d DefaultPathDriver) SystemDirectory() (string, bool) {
	return d.System, d.System != ""
}

func (d DefaultPathDriver) SaveDirectory() (string, bool) {
	return d.Save, d.Save != ""
}

func (d DefaultPathDriver) ContentDirectory() (string, bool) {
	return d.Content, d.Content != ""
}

func (d DefaultPathDriver) LibretroPath() (string, bool) {
	return d.CorePath, d.CorePath != ""
}

func (d DefaultPathDriver) PlaylistDirectory() (string, bool) {
	return d.Playlist, d.Playlist != ""
}
