package ui

import "github.com/fatih/color"

// General Purpose Colors
var (
	InfoColor    = color.New(color.FgCyan).SprintFunc()
	SuccessColor = color.New(color.FgGreen).SprintFunc()
	WarningColor = color.New(color.FgYellow).SprintFunc()
	ErrorColor   = color.New(color.FgRed).SprintFunc()
	PromptColor  = color.New(color.FgMagenta).SprintFunc()
	CodeColor    = color.New(color.FgWhite).SprintFunc()   // For command lines
	DetailColor  = color.New(color.FgHiBlack).SprintFunc() // For hints and log tails
)

// Shortcut Specific Colors
var (
	ShortcutNameColor = color.New(color.FgYellow).SprintFunc()
	DefaultMarkColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// Header Colors
var (
	HeaderColor = color.New(color.FgGreen, color.Bold).SprintFunc()
)
