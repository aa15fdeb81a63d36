package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

func writeCSV(t table) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCSV(w io.Writer, t table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return err
	}
	rec := make([]string, len(t.header))
	for _, row := range t.rows {
		for i, v := range row {
			rec[i] = fmt.Sprint(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeCSVZip 每个候选人一个 csv
func writeCSVZip(ts []table) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := map[string]bool{}
	for _, t := range ts {
		name := fileStem(t.name, used) + "_progress.csv"
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if err := encodeCSV(w, t); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fileStem(name string, used map[string]bool) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r), r < 0x20:
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		s = "candidate"
	}
	cand := s
	for i := 2; used[cand]; i++ {
		cand = fmt.Sprintf("%s_%d", s, i)
	}
	used[cand] = true
	return cand
}
