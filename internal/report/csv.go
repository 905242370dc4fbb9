package report

import (
	"bufio"
	"encoding/csv"
	"os"

	"github.com/auditgrid/shadowmap/pkg/constants"
	"github.com/auditgrid/shadowmap/pkg/errors"
)

// WriteCSV writes a table to path, header row first.
func WriteCSV(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = f.Close() }()

	buf := bufio.NewWriterSize(f, constants.WriteBufferSize)
	w := csv.NewWriter(buf)
	if err := w.Write(t.Headers); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := buf.Flush(); err != nil {
		return errors.WrapIO("write", path, err)
	}

	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}
