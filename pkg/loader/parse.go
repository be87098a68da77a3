package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"courseplanner/pkg/catalog"

	"go.uber.org/zap"
)

// fieldCutset is what gets trimmed from both ends of every field.
const fieldCutset = " \t\n\r"

// Parse reads the comma separated record format from r into store.
//
// The first line is a header and is always skipped. Blank lines are
// skipped. Every other line becomes one course (see ParseRecord). There is
// no quoting: a comma always separates fields. Lines may be of any length.
func Parse(r io.Reader, store *catalog.Store) (Result, error) {
	return parseText(r, store, zap.NewNop())
}

func parseText(r io.Reader, store *catalog.Store, log *zap.Logger) (Result, error) {
	var res Result

	br := bufio.NewReader(r)

	// Header
	if _, err := readRecordLine(br); err != nil {
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		return res, fmt.Errorf("failed to read header: %w", err)
	}

	lineNo := 1
	for {
		line, err := readRecordLine(br)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("failed to read line %d: %w", lineNo+1, err)
		}
		lineNo++

		if line == "" {
			res.Skipped++
			log.Debug("skipping blank line", zap.Int("line", lineNo))
			continue
		}

		course := ParseRecord(line)
		if course.Number == "" {
			log.Debug("record has an empty course number", zap.Int("line", lineNo))
		}
		store.Insert(course)
		res.Records++
	}
}

// readRecordLine returns the next line without its "\n" or "\r\n"
// terminator. A final line without a terminator is returned as is; io.EOF
// is only reported once nothing is left.
func readRecordLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// ParseRecord turns one data line into a course: field 1 is the course
// number, field 2 the name, and every further non-empty field a
// prerequisite number.
func ParseRecord(line string) catalog.Course {
	return courseFromFields(strings.Split(line, ","))
}

func courseFromFields(fields []string) catalog.Course {
	var course catalog.Course
	if len(fields) > 0 {
		course.Number = trimField(fields[0])
	}
	if len(fields) > 1 {
		course.Name = trimField(fields[1])
	}
	if len(fields) > 2 {
		for _, f := range fields[2:] {
			if f = trimField(f); f != "" {
				course.Prerequisites = append(course.Prerequisites, f)
			}
		}
	}
	return course
}

func trimField(s string) string {
	return strings.Trim(s, fieldCutset)
}
