package gpio

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// DefaultSysfsRoot is where gpio-admin exported lines appear
const DefaultSysfsRoot = "/sys/devices/virtual/gpio"

func attrPath(root string, chip int, attr string) string {
	return filepath.Join(root, "gpio"+strconv.Itoa(chip), attr)
}

/* Attributes are replaced with a single write, the file is never created */
func writeAttr(path string, value string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}

	_, err = file.Write([]byte(value))
	err2 := file.Close()
	if err == nil {
		err = err2
	}
	return err
}

func readAttr(path string) (string, error) {
	file, err := os.OpenFile(path, os.O_RDONLY|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
