package tft

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

type output struct {
	file string
	data []byte
}

var rename = os.Rename

// writeFiles writes every output to a temporary file next to its
// destination and only renames them into place once all of them have been
// written successfully. Any destination that already exists is moved aside
// first so that if a later rename fails, the earlier ones are undone and
// every destination is left as it was.
func writeFiles(outputs ...output) (err error) {
	temps := make([]string, 0, len(outputs))
	backups := make([]string, len(outputs))
	placed := make([]bool, len(outputs))
	defer func() {
		if err == nil {
			for _, b := range backups {
				if b != "" {
					os.Remove(b)
				}
			}
			return
		}
		for _, t := range temps {
			os.Remove(t)
		}
		for i := len(outputs) - 1; i >= 0; i-- {
			switch {
			case backups[i] != "":
				rename(backups[i], outputs[i].file)
			case placed[i]:
				os.Remove(outputs[i].file)
			}
		}
	}()

	for _, o := range outputs {
		f, err := os.CreateTemp(filepath.Dir(o.file), "."+filepath.Base(o.file)+".*")
		if err != nil {
			return err
		}
		temps = append(temps, f.Name())

		if _, err := f.Write(o.data); err != nil {
			f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		if err := os.Chmod(f.Name(), 0644); err != nil {
			return err
		}
	}

	for i, o := range outputs {
		if _, err := os.Lstat(o.file); err == nil {
			if err := rename(o.file, temps[i]+".bak"); err != nil {
				return err
			}
			backups[i] = temps[i] + ".bak"
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		if err := rename(temps[i], o.file); err != nil {
			return err
		}
		placed[i] = true
	}

	return nil
}
