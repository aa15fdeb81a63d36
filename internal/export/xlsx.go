package export

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// sheetName Excel 规则：<=31 字符，不能含 : \ / ? * [ ]，不能以 ' 开头或结尾，且不区分大小写唯一
func sheetName(name string, used map[string]bool) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	s = clip(s, maxSheetName)
	cand := s
	for i := 2; used[strings.ToLower(cand)]; i++ {
		suffix := " (" + strconv.Itoa(i) + ")"
		cand = clip(s, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(cand)] = true
	return cand
}

// clip 截断后再去掉首尾的 ' 和空白
func clip(s string, n int) string {
	s = strings.Trim(strings.TrimSpace(truncate(strings.Trim(strings.TrimSpace(s), "'"), n)), "' ")
	if s == "" {
		return "Sheet"
	}
	return s
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func writeXLSX(ts []table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	used := map[string]bool{}
	for i, t := range ts {
		name := sheetName(t.name, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, name, t); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, t table) error {
	header := make([]any, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}
