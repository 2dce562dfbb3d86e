package drivers

import "github.com/retrohost/retrohost/abi"

// DefaultUserDriver reports a fixed username and language, named after
// original_source's DefaultUserDriver.
type DefaultUserDriver struct {
	Name string
	Lang int
}

func NewDefaultUserDriver() *DefaultUserDriver {
	return &DefaultUserDriver{Name: "retrohost", Lang: abi.LanguageEnglish}
}

func (d *DefaultUserDriver) Username() (string, bool) {
	return d.Name, d.Name != ""
}

func (d *DefaultUserDriver) Language() (int, bool) {
	return d.Lang, true
}
