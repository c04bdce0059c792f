package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type checkStatus int

const (
	checkPassed checkStatus = iota
	checkFailed
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const (
	checkLabelWidth = 24
	checkIndent     = "  "
)

func renderCheckLine(label string, status checkStatus, detail string, colorize bool) string {
	marker := "[OK]"
	color := ansiGreen
	if status == checkFailed {
		marker = "[FAIL]"
		color = ansiRed
	}
	if detail != "" {
		marker = fmt.Sprintf("%s %s", marker, detail)
	}
	line := fmt.Sprintf("%s%-*s %s", checkIndent, checkLabelWidth, label+":", marker)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
