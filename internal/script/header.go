// SPDX-License-Identifier: MPL-2.0

// Package script reads the container header embedded in a script file.
//
// A script runnable by docker-script starts with two shebang-style lines:
//
//	#!/usr/bin/env docker-script
//	#!python:3.12 python3 -u
//
// The first line is for the host shell and is skipped unvalidated. The second
// line names the container image and the interpreter to run the script with.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Marker prefixes the header line.
const Marker = "#!"

const (
	// DefectMissingLine means the file has no second line.
	DefectMissingLine HeaderDefect = "missing second line"
	// DefectMissingMarker means the second line does not start with "#!".
	DefectMissingMarker HeaderDefect = "second line does not start with #!"
	// DefectMissingSeparator means no space separates the image from the interpreter.
	DefectMissingSeparator HeaderDefect = "no space between image and interpreter"
	// DefectEmptyImage means the image token is empty.
	DefectEmptyImage HeaderDefect = "empty image name"
	// DefectImageWhitespace means the image token contains whitespace.
	DefectImageWhitespace HeaderDefect = "image name contains whitespace"
	// DefectEmptyInterpreter means nothing follows the separator.
	DefectEmptyInterpreter HeaderDefect = "empty interpreter"
)

var (
	// ErrMalformedHeader is the sentinel error wrapped by MalformedHeaderError.
	ErrMalformedHeader = errors.New("malformed script header")

	// ErrFileOpen is the sentinel error wrapped by FileOpenError.
	ErrFileOpen = errors.New("failed to open script file")
)

type (
	// Header is the parsed second line of a script file.
	Header struct {
		// Image is the container image reference, possibly tagged.
		Image string
		// Interpreter is the rest of the line after the first space,
		// passed to the container as a single argument.
		Interpreter string
	}

	// HeaderDefect describes why a header line was rejected.
	HeaderDefect string

	// MalformedHeaderError is returned when the header line is missing or invalid.
	MalformedHeaderError struct {
		// Line is the offending line, empty when it could not be read.
		Line   string
		Defect HeaderDefect
		// Err is the read error, if reading the line failed.
		Err error
	}

	// FileOpenError is returned when the script file cannot be opened.
	FileOpenError struct {
		Path string
		Err  error
	}
)

// String returns the header in its on-disk form, without the line terminator.
func (h Header) String() string {
	return Marker + h.Image + " " + h.Interpreter
}

// String returns the defect description.
func (d HeaderDefect) String() string { return string(d) }

// Error implements the error interface.
func (e *MalformedHeaderError) Error() string {
	msg := fmt.Sprintf("invalid second shebang line (%s)", e.Defect)
	if e.Line != "" {
		msg += fmt.Sprintf(": %q", e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrMalformedHeader and the read error, if any.
func (e *MalformedHeaderError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedHeader, e.Err}
	}
	return []error{ErrMalformedHeader}
}

// Error implements the error interface.
func (e *FileOpenError) Error() string {
	return fmt.Sprintf("failed to open script file %q: %v", e.Path, e.Err)
}

// Unwrap returns ErrFileOpen and the underlying error.
func (e *FileOpenError) Unwrap() []error { return []error{ErrFileOpen, e.Err} }

// ReadHeaderFile opens the script at path and parses its header.
func ReadHeaderFile(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, &FileOpenError{Path: path, Err: err}
	}
	defer f.Close()

	// A directory opens fine on Unix but cannot be read.
	if info, statErr := f.Stat(); statErr == nil && info.IsDir() {
		return Header{}, &FileOpenError{Path: path, Err: errors.New("is a directory")}
	}

	return ReadHeader(f)
}

// ReadHeader reads the first two lines from r and parses the second.
// Only the header lines are consumed; the rest of r is left unread.
func ReadHeader(r io.Reader) (Header, error) {
	br := bufio.NewReader(r)

	// The first line must be complete: without its terminator there is no
	// second line to read.
	if _, err := br.ReadString('\n'); err != nil {
		return Header{}, missingLine(err)
	}

	line, err := br.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
		// last line of the file without a terminator
	default:
		return Header{}, missingLine(err)
	}

	return ParseHeaderLine(trimEOL(line))
}

// ParseHeaderLine parses a single header line of the form "#!IMAGE INTERPRETER".
// The image is everything between the marker and the first space; the
// interpreter is everything after that space, kept verbatim.
func ParseHeaderLine(line string) (Header, error) {
	body, ok := strings.CutPrefix(line, Marker)
	if !ok {
		return Header{}, &MalformedHeaderError{Line: line, Defect: DefectMissingMarker}
	}

	image, interpreter, found := strings.Cut(body, " ")
	switch {
	case !found:
		return Header{}, &MalformedHeaderError{Line: line, Defect: DefectMissingSeparator}
	case image == "":
		return Header{}, &MalformedHeaderError{Line: line, Defect: DefectEmptyImage}
	case strings.ContainsFunc(image, unicode.IsSpace):
		return Header{}, &MalformedHeaderError{Line: line, Defect: DefectImageWhitespace}
	case interpreter == "":
		return Header{}, &MalformedHeaderError{Line: line, Defect: DefectEmptyInterpreter}
	}

	return Header{Image: image, Interpreter: interpreter}, nil
}

func missingLine(err error) error {
	if errors.Is(err, io.EOF) {
		return &MalformedHeaderError{Defect: DefectMissingLine}
	}
	return &MalformedHeaderError{Defect: DefectMissingLine, Err: err}
}

// trimEOL removes a single trailing "\n" or "\r\n". A "\r" not directly
// before the "\n" is content and stays.
func trimEOL(line string) string {
	line, ok := strings.CutSuffix(line, "\n")
	if !ok {
		return line
	}
	return strings.TrimSuffix(line, "\r")
}
